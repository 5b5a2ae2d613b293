package llm

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestMockProvider_FIFOAndParts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{
			Content: json.RawMessage(`{"basic_stats":{}}`),
			Usage:   Usage{InputTokens: 12, OutputTokens: 8, TotalTokens: 20},
		},
		MockResponse{
			Content: json.RawMessage("Foundation Tier\nText: ..."),
			Parts:   []string{"", "Foundation Tier\nText: ..."},
		},
	)

	first, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "analyze"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Text() != `{"basic_stats":{}}` {
		t.Fatalf("unexpected content: %s", first.Content)
	}
	if !reflect.DeepEqual(first.Parts, []string{`{"basic_stats":{}}`}) {
		t.Fatalf("default parts = %q", first.Parts)
	}
	if first.Usage.TotalTokens != 20 || first.StopReason != "end" {
		t.Fatalf("unexpected response metadata: %+v", first)
	}

	second, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(second.Parts) != 2 || second.Parts[0] != "" {
		t.Fatalf("explicit parts not preserved: %q", second.Parts)
	}
}

func TestMockProvider_ExhaustedQueue(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})

	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
}

func TestMockProvider_RecordsRequests(t *testing.T) {
	mock := NewMockProvider()
	mock.AddText("ok")

	_, _ = mock.Generate(context.Background(), Request{
		System:   "당신은 영어 교육 전문가입니다.",
		Messages: []Message{{Role: RoleUser, Content: "passage"}},
		TopK:     40,
	})

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	if mock.Calls[0].TopK != 40 || mock.Calls[0].Messages[0].Content != "passage" {
		t.Fatalf("request not recorded: %+v", mock.Calls[0])
	}
}

func TestMockProvider_QueuedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}})
	_, err := mock.Generate(context.Background(), Request{})

	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T", err)
	}
}

func TestResponse_TextNil(t *testing.T) {
	var r *Response
	if r.Text() != "" {
		t.Fatal("nil response should have empty text")
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithPurpose(ctx, "gapfill")
	if p := PurposeFrom(ctx); p != "gapfill" {
		t.Fatalf("expected 'gapfill', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		cfg        Config
		wantErr    bool
		missingKey bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, true, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g-test"}}, false, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true, true},
		{"ollama needs a host", Config{Provider: "ollama"}, true, false},
		{"ollama with host", Config{Provider: "ollama", Ollama: OllamaConfig{Host: "http://localhost:11434"}}, false, false},
		{"mock needs no key", Config{Provider: "mock"}, false, false},
		{"unknown provider", Config{Provider: "palm"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got := errors.Is(err, ErrMissingAPIKey); got != tt.missingKey {
				t.Fatalf("errors.Is(ErrMissingAPIKey) = %v, want %v", got, tt.missingKey)
			}
		})
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("GAPFILL_LLM_PROVIDER", "")
	t.Setenv("GAPFILL_GEMINI_API_KEY", "")
	t.Setenv("GAPFILL_GEMINI_MODEL", "")
	t.Setenv("GEMINI_API_KEY", "plain-key")
	t.Setenv("GAPFILL_LLM_MAX_ATTEMPTS", "3")
	t.Setenv("GAPFILL_LLM_TIMEOUT", "45s")
	t.Setenv("GAPFILL_OLLAMA_MODEL", "qwen2.5")

	cfg := ConfigFromEnv()

	if cfg.Provider != "gemini" {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "plain-key" {
		t.Fatalf("gemini key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Retry.MaxAttempts != 3 {
		t.Fatalf("max attempts = %d", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout.String() != "45s" {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if cfg.Ollama.Model != "qwen2.5" || cfg.ProviderModel() != "gemini-pro" {
		t.Fatalf("unexpected models: %q %q", cfg.Ollama.Model, cfg.ProviderModel())
	}
}

func TestDefaultConfig_NoRetry(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Retry.MaxAttempts != 1 {
		t.Fatalf("expected retries off by default, got %d attempts", cfg.Retry.MaxAttempts)
	}
	if cfg.Gemini.SafetyThreshold != "BLOCK_MEDIUM_AND_ABOVE" {
		t.Fatalf("safety threshold = %q", cfg.Gemini.SafetyThreshold)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != "openai" || cfg.OpenAI.APIKey != "o-key" {
		t.Fatalf("expected openai to win over anthropic, got %+v", cfg)
	}
}

func TestNewProvider_MockAndUnknown(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q", p.ModelID())
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "palm"}, nil, nil); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestNewProvider_RetryOnlyWhenConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = "openai"
	cfg.OpenAI.APIKey = "sk-test"

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*LoggingProvider); !ok {
		t.Fatalf("expected logging decorator only, got %T", p)
	}

	cfg.Retry.MaxAttempts = 3
	p, err = NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*RetryProvider); !ok {
		t.Fatalf("expected retry decorator, got %T", p)
	}
}
