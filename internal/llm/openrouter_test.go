package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"}); err == nil {
		t.Fatal("expected error for empty API key")
	}

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "anthropic/claude-3-haiku"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "anthropic/claude-3-haiku" {
		t.Fatalf("vendor-prefixed IDs pass through, got %q", p.ModelID())
	}
}

func TestOpenRouterProvider_UsesCustomBaseURL(t *testing.T) {
	baseURL, captured := openAIServer(t, http.StatusOK, chatCompletion("ok", "stop"))

	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.0-flash-exp",
		BaseURL: baseURL,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "ok" {
		t.Fatalf("content = %q", resp.Content)
	}
	if (*captured)["model"] != "google/gemini-2.0-flash-exp" {
		t.Fatalf("model sent = %v", (*captured)["model"])
	}
}

func TestOpenRouterProvider_SendsTitleAndDefaultModel(t *testing.T) {
	var title string
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		title = r.Header.Get("X-Title")
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(chatCompletion("ok", "stop"))
	}))
	t.Cleanup(server.Close)

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", BaseURL: server.URL + "/v1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Generate(context.Background(), Request{MaxTokens: 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != openRouterTitle {
		t.Fatalf("X-Title = %q", title)
	}
	if body["model"] != defaultOpenRouterModel {
		t.Fatalf("model sent = %v", body["model"])
	}
}
