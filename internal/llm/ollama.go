package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaProvider implements Provider against a local Ollama server using
// the non-streaming chat endpoint.
type OllamaProvider struct {
	client *api.Client
	model  string
}

// NewOllamaProvider creates a provider for the Ollama server at cfg.Host.
func NewOllamaProvider(cfg OllamaConfig, httpClient *http.Client) (*OllamaProvider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	// api.NewClient expects the server root without an OpenAI-style /v1 suffix.
	host := strings.TrimSuffix(strings.TrimSuffix(cfg.Host, "/"), "/v1")
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("parse ollama host %q: %w", cfg.Host, err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OllamaProvider{
		client: api.NewClient(base, httpClient),
		model:  cfg.Model,
	}, nil
}

func (p *OllamaProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model:    p.model,
		Messages: buildOllamaMessages(req),
		Stream:   &stream,
		Options:  ollamaOptions(req),
	}

	if req.Schema != nil {
		schemaBytes, err := json.Marshal(req.Schema.Definition)
		if err != nil {
			return nil, fmt.Errorf("marshal schema: %w", err)
		}
		chatReq.Format = json.RawMessage(schemaBytes)
	}

	var final api.ChatResponse
	err := p.client.Chat(ctx, chatReq, func(r api.ChatResponse) error {
		final = r
		return nil
	})
	if err != nil {
		return nil, mapOllamaError(err)
	}

	text := final.Message.Content
	if text == "" {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty content in Ollama response")}
	}
	content := json.RawMessage(text)

	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	model := final.Model
	if model == "" {
		model = p.model
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  final.PromptEvalCount,
			OutputTokens: final.EvalCount,
			TotalTokens:  final.PromptEvalCount + final.EvalCount,
		},
		Model:      model,
		StopReason: mapOllamaStopReason(final.DoneReason),
		Parts:      []string{text},
	}, nil
}

func (p *OllamaProvider) ModelID() string {
	return p.model
}

func buildOllamaMessages(req Request) []api.Message {
	var msgs []api.Message
	if req.System != "" {
		msgs = append(msgs, api.Message{Role: "system", Content: req.System})
	}
	for _, m := range req.Messages {
		role := "user"
		if m.Role == RoleAssistant {
			role = "assistant"
		}
		msgs = append(msgs, api.Message{Role: role, Content: m.Content})
	}
	return msgs
}

func ollamaOptions(req Request) map[string]any {
	opts := map[string]any{}
	if req.Temperature > 0 {
		opts["temperature"] = req.Temperature
	}
	if req.TopP > 0 {
		opts["top_p"] = req.TopP
	}
	if req.TopK > 0 {
		opts["top_k"] = req.TopK
	}
	if req.MaxTokens > 0 {
		opts["num_predict"] = req.MaxTokens
	}
	return opts
}

func mapOllamaStopReason(reason string) string {
	if reason == "length" {
		return "max_tokens"
	}
	return "end"
}

func mapOllamaError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var statusErr api.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
