package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter estimates token counts for providers that report no usage.
type TokenCounter interface {
	Count(text string) int
}

// TiktokenCounter counts tokens with a tiktoken encoding. The encoding is
// loaded on first use; if it cannot be loaded, Count returns 0.
type TiktokenCounter struct {
	encoding string

	once sync.Once
	tke  *tiktoken.Tiktoken
}

// NewTiktokenCounter returns a counter for the named encoding, e.g.
// "cl100k_base". Gemini and Ollama models have no tiktoken encoding of
// their own, so estimates use a generic one.
func NewTiktokenCounter(encoding string) *TiktokenCounter {
	if encoding == "" {
		encoding = "cl100k_base"
	}
	return &TiktokenCounter{encoding: encoding}
}

func (c *TiktokenCounter) Count(text string) int {
	c.once.Do(func() {
		tke, err := tiktoken.GetEncoding(c.encoding)
		if err == nil {
			c.tke = tke
		}
	})
	if c.tke == nil || text == "" {
		return 0
	}
	return len(c.tke.Encode(text, nil, nil))
}
