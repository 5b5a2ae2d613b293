package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"google.golang.org/genai"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := map[string]string{
		"gemini-pro":       "gemini-2.5-pro-preview-03-25",
		"gemini-flash":     "gemini-2.0-flash",
		"gemini-2.5-flash": "gemini-2.5-flash",
	}
	for in, want := range tests {
		if got := resolveModel(in, geminiModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestBuildGeminiSafety(t *testing.T) {
	settings := buildGeminiSafety("BLOCK_MEDIUM_AND_ABOVE")
	if len(settings) != 4 {
		t.Fatalf("expected 4 safety settings, got %d", len(settings))
	}
	for _, s := range settings {
		if s.Threshold != genai.HarmBlockThresholdBlockMediumAndAbove {
			t.Fatalf("threshold = %q", s.Threshold)
		}
	}
	if buildGeminiSafety("") != nil {
		t.Fatal("empty threshold should leave provider defaults")
	}
}

func TestBuildGeminiSchema_Exercise(t *testing.T) {
	schema := buildGeminiSchema(tierSchema().Definition)

	if schema.Type != genai.TypeObject {
		t.Fatalf("expected OBJECT, got %s", schema.Type)
	}
	foundation := schema.Properties["foundation"]
	if foundation == nil || foundation.Type != genai.TypeObject {
		t.Fatalf("foundation property missing or wrong type: %+v", foundation)
	}
	if foundation.Properties["answers"].Items.Type != genai.TypeString {
		t.Fatalf("answers items should be STRING")
	}
	if !reflect.DeepEqual(schema.Properties["level"].Enum, []string{"foundation", "expert"}) {
		t.Fatalf("enum = %v", schema.Properties["level"].Enum)
	}
	if !reflect.DeepEqual(schema.Required, []string{"foundation"}) {
		t.Fatalf("required = %v", schema.Required)
	}
}

func geminiServer(t *testing.T, status int, body map[string]any) (*GeminiProvider, *map[string]any) {
	t.Helper()
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&captured)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{
		APIKey:          "g-test",
		Model:           "gemini-pro",
		SafetyThreshold: "BLOCK_MEDIUM_AND_ABOVE",
		BaseURL:         server.URL,
	})
	if err != nil {
		t.Fatalf("NewGeminiProvider: %v", err)
	}
	return p, &captured
}

func TestGeminiProvider_Generate(t *testing.T) {
	p, captured := geminiServer(t, http.StatusOK, map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role": "model",
				"parts": []map[string]any{
					{"text": "```json\n{\"a\":1}\n```"},
				},
			},
			"finishReason": "STOP",
		}},
		"usageMetadata": map[string]any{
			"promptTokenCount":     40,
			"candidatesTokenCount": 60,
			"totalTokenCount":      100,
		},
	})

	resp, err := p.Generate(context.Background(), Request{
		System:      "분석하세요.",
		Messages:    []Message{{Role: RoleUser, Content: "The cat sat."}},
		MaxTokens:   8192,
		Temperature: 0.2,
		TopP:        0.8,
		TopK:        40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(resp.Parts, []string{"```json\n{\"a\":1}\n```"}) {
		t.Fatalf("parts = %q", resp.Parts)
	}
	if resp.Model != "gemini-2.5-pro-preview-03-25" || resp.StopReason != "end" {
		t.Fatalf("unexpected metadata: %+v", resp)
	}
	if resp.Usage.TotalTokens != 100 {
		t.Fatalf("usage = %+v", resp.Usage)
	}

	cfg, _ := (*captured)["generationConfig"].(map[string]any)
	if cfg["topK"] != float64(40) || cfg["maxOutputTokens"] != float64(8192) {
		t.Fatalf("generationConfig = %v", cfg)
	}
	safety, _ := (*captured)["safetySettings"].([]any)
	if len(safety) != 4 {
		t.Fatalf("expected 4 safety settings on the wire, got %v", (*captured)["safetySettings"])
	}
}

func TestGeminiProvider_RateLimit(t *testing.T) {
	p, _ := geminiServer(t, http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"code": 429, "message": "quota", "status": "RESOURCE_EXHAUSTED"},
	})

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "x"}},
		MaxTokens: 10,
	})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestMapGeminiError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		rateLimit bool
	}{
		{"value 429", genai.APIError{Code: http.StatusTooManyRequests}, true},
		{"wrapped value 429", fmt.Errorf("generate: %w", genai.APIError{Code: http.StatusTooManyRequests}), true},
		{"pointer 429", &genai.APIError{Code: http.StatusTooManyRequests}, true},
		{"value 503", genai.APIError{Code: http.StatusServiceUnavailable}, false},
		{"value 400", genai.APIError{Code: http.StatusBadRequest}, false},
		{"plain error", errors.New("dial tcp: refused"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapGeminiError(tt.err)
			var rl *ErrRateLimit
			if got := errors.As(err, &rl); got != tt.rateLimit {
				t.Fatalf("rate limit = %v, want %v (%T)", got, tt.rateLimit, err)
			}
			if !tt.rateLimit {
				var pu *ErrProviderUnavailable
				if !errors.As(err, &pu) {
					t.Fatalf("expected ErrProviderUnavailable, got %T", err)
				}
			}
		})
	}
}

func TestGeminiParts_SkipsThoughtsAndEmpty(t *testing.T) {
	result := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{Text: "thinking...", Thought: true},
				{Text: ""},
				{Text: "answer"},
			}},
		}},
	}
	if got := geminiParts(result); !reflect.DeepEqual(got, []string{"answer"}) {
		t.Fatalf("parts = %q", got)
	}
	if got := geminiParts(&genai.GenerateContentResponse{}); got != nil {
		t.Fatalf("no candidates should give nil, got %q", got)
	}
}
