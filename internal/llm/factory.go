package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// eventRepo may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo EventRecorder, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error
	var counter TokenCounter

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "ollama":
		base, err = NewOllamaProvider(cfg.Ollama, nil)
		// Some Ollama builds omit eval counts.
		counter = NewTiktokenCounter("")
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, LoggingOptions{
		Provider: cfg.Provider,
		Repo:     eventRepo,
		Logger:   logger,
		Counter:  counter,
	})
	if cfg.Retry.MaxAttempts <= 1 {
		return logged, nil
	}
	return WithRetry(logged, cfg.Retry), nil
}
