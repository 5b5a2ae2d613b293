package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2.0,
	}
}

const exerciseJSON = `{"tiers":{"foundation":{"text":"The ___ sat.","answers":["cat"]}}}`

func TestRetry_FirstAttemptWins(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(exerciseJSON)})
	p := WithRetry(mock, fastRetry(3))

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != exerciseJSON {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_RecoversFromOutage(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}},
		MockResponse{Content: json.RawMessage(exerciseJSON)},
	)
	p := WithRetry(mock, fastRetry(3))

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("still down")}},
		MockResponse{Content: json.RawMessage(exerciseJSON)},
	)
	p := WithRetry(mock, fastRetry(2))

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T (%v)", err, err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithRetry(mock, fastRetry(0))

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected the provider error, got nil")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_MaxTokensIsFinal(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{}},
		MockResponse{Content: json.RawMessage(exerciseJSON)},
	)
	p := WithRetry(mock, fastRetry(3))

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected no retry, got %d calls", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	bad := func() MockResponse {
		return MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`{"tiers":`), Err: errors.New("truncated")}}
	}
	mock := NewMockProvider(bad(), bad(), MockResponse{Content: json.RawMessage(exerciseJSON)})
	p := WithRetry(mock, fastRetry(5))

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_CancelledContextStopsWaiting(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(exerciseJSON)},
	)
	cfg := fastRetry(3)
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour
	p := WithRetry(mock, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_HonoursRetryAfter(t *testing.T) {
	r := &RetryProvider{config: fastRetry(3)}
	wait := r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Millisecond})
	if wait != 7*time.Millisecond {
		t.Fatalf("expected RetryAfter to be used, got %s", wait)
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r := &RetryProvider{config: fastRetry(10)}
	for attempt := range 10 {
		wait := r.backoff(attempt, errors.New("x"))
		// MaxWait plus the 20% jitter band.
		if wait > 6*time.Millisecond {
			t.Fatalf("attempt %d waited %s, above cap", attempt, wait)
		}
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), fastRetry(3))
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&ErrRateLimit{Err: errors.New("429")}, KindRateLimit},
		{fmt.Errorf("gapfill: %w", &ErrRateLimit{}), KindRateLimit},
		{&ErrProviderUnavailable{}, KindUnavailable},
		{&ErrInvalidResponse{Err: errors.New("empty")}, KindInvalidResponse},
		{&ErrMaxTokensExceeded{}, KindMaxTokens},
		{&ErrProviderUnavailable{Err: context.DeadlineExceeded}, KindCanceled},
		{errors.New("boom"), KindOther},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
