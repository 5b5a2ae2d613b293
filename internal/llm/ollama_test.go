package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func ollamaServer(t *testing.T, status int, body map[string]any) (*OllamaProvider, *map[string]any) {
	t.Helper()
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	p, err := NewOllamaProvider(OllamaConfig{Host: server.URL + "/v1/", Model: "llama3.1"}, server.Client())
	if err != nil {
		t.Fatalf("NewOllamaProvider: %v", err)
	}
	return p, &captured
}

func TestOllamaProvider_Generate(t *testing.T) {
	p, captured := ollamaServer(t, http.StatusOK, map[string]any{
		"model":             "llama3.1",
		"created_at":        "2026-01-01T00:00:00Z",
		"message":           map[string]any{"role": "assistant", "content": "Foundation Tier\nText: ..."},
		"done":              true,
		"done_reason":       "stop",
		"prompt_eval_count": 55,
		"eval_count":        145,
	})

	resp, err := p.Generate(context.Background(), Request{
		System:      "You write gap-fill exercises.",
		Messages:    []Message{{Role: RoleUser, Content: "The cat sat."}},
		MaxTokens:   8192,
		Temperature: 0.2,
		TopK:        40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "Foundation Tier\nText: ..." || len(resp.Parts) != 1 {
		t.Fatalf("unexpected content: %q / %q", resp.Content, resp.Parts)
	}
	if resp.Usage.TotalTokens != 200 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Fatalf("stop reason = %q", resp.StopReason)
	}

	if (*captured)["stream"] != false {
		t.Fatalf("stream should be false, got %v", (*captured)["stream"])
	}
	opts, _ := (*captured)["options"].(map[string]any)
	if opts["num_predict"] != float64(8192) || opts["top_k"] != float64(40) {
		t.Fatalf("options = %v", opts)
	}
	msgs, _ := (*captured)["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %v", msgs)
	}
}

func TestOllamaProvider_EmptyContent(t *testing.T) {
	p, _ := ollamaServer(t, http.StatusOK, map[string]any{
		"model":   "llama3.1",
		"message": map[string]any{"role": "assistant", "content": ""},
		"done":    true,
	})
	_, err := p.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOllamaProvider_ServerError(t *testing.T) {
	p, _ := ollamaServer(t, http.StatusInternalServerError, map[string]any{"error": "model not loaded"})
	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
}

func TestNewOllamaProvider_Validation(t *testing.T) {
	if _, err := NewOllamaProvider(OllamaConfig{Host: "http://localhost:11434"}, nil); err == nil {
		t.Fatal("expected error without model")
	}
	if _, err := NewOllamaProvider(OllamaConfig{Host: "://bad", Model: "m"}, nil); err == nil {
		t.Fatal("expected error for unparsable host")
	}
}
