package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-gapfill",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 300, "completion_tokens": 700, "total_tokens": 1000},
	}
}

func openAIServer(t *testing.T, status int, body any) (string, *map[string]any) {
	t.Helper()
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server.URL + "/v1", &captured
}

func TestOpenAIProvider_PlainTextResponse(t *testing.T) {
	baseURL, captured := openAIServer(t, http.StatusOK, chatCompletion("Foundation Tier\nText: The cat sat.", "length"))
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{
		System:      "You write gap-fill exercises.",
		Messages:    []Message{{Role: RoleUser, Content: "passage"}},
		MaxTokens:   8192,
		Temperature: 0.2,
		TopP:        0.8,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Parts) != 1 || resp.Parts[0] != "Foundation Tier\nText: The cat sat." {
		t.Fatalf("parts = %q", resp.Parts)
	}
	if resp.StopReason != "max_tokens" {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}
	if resp.Usage.InputTokens != 300 || resp.Usage.OutputTokens != 700 {
		t.Fatalf("usage = %+v", resp.Usage)
	}

	msgs, _ := (*captured)["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Fatalf("first message role = %v", first["role"])
	}
}

func TestOpenAIProvider_SchemaValidated(t *testing.T) {
	baseURL, captured := openAIServer(t, http.StatusOK, chatCompletion(`{"foundation":{"text":"a"}}`, "stop"))
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: baseURL})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}

	_, err = p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "passage"}},
		MaxTokens: 100,
		Schema:    tierSchema(),
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse for missing answers, got %T (%v)", err, err)
	}
	format, _ := (*captured)["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Fatalf("response_format not sent: %v", (*captured)["response_format"])
	}
}

func TestOpenAIProvider_TruncatedStructuredReply(t *testing.T) {
	baseURL, _ := openAIServer(t, http.StatusOK, chatCompletion(`{"foundation":{"text":"a`, "length"))
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: baseURL})

	_, err := p.Generate(context.Background(), Request{MaxTokens: 10, Schema: tierSchema()})
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
	if Classify(err) != KindMaxTokens {
		t.Fatalf("kind = %q", Classify(err))
	}
}

func TestOpenAIProvider_TruncatedPlainReplyPassesThrough(t *testing.T) {
	baseURL, _ := openAIServer(t, http.StatusOK, chatCompletion("기초 단계\n본문:", "length"))
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: baseURL})

	resp, err := p.Generate(context.Background(), Request{MaxTokens: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StopReason != "max_tokens" {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	body := chatCompletion("", "stop")
	body["choices"] = []map[string]any{}
	baseURL, _ := openAIServer(t, http.StatusOK, body)
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: baseURL})

	_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	errBody := map[string]any{"error": map[string]any{"type": "x", "message": "nope"}}

	baseURL, _ := openAIServer(t, http.StatusTooManyRequests, errBody)
	p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: baseURL})
	_, err := p.Generate(context.Background(), Request{MaxTokens: 10})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("429 mapped to %T (%v)", err, err)
	}

	baseURL, _ = openAIServer(t, http.StatusBadGateway, errBody)
	p, _ = NewOpenAIProvider(OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: baseURL})
	_, err = p.Generate(context.Background(), Request{MaxTokens: 10})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("502 mapped to %T (%v)", err, err)
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"}); err == nil {
		t.Fatal("expected error without API key")
	}
}
