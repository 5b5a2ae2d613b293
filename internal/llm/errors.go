package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit is returned when a backend answers 429 or an equivalent
// quota error. RetryAfter is zero when the backend gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("model gateway rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("model gateway rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the backend answered but the content could not be
// used: empty, truncated JSON, or a schema mismatch. Content keeps the reply
// for the event log.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("model gateway returned an unusable response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx answers, refused connections and any
// backend failure not classified more precisely.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "model gateway unavailable"
	}
	return fmt.Sprintf("model gateway unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the reply stopped at the output token cap.
// Gap-fill exercises for long passages are the usual cause.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "model gateway response truncated at the output token limit"
}

// Error kinds reported by Classify.
const (
	KindRateLimit       = "rate_limit"
	KindUnavailable     = "unavailable"
	KindInvalidResponse = "invalid_response"
	KindMaxTokens       = "max_tokens"
	KindCanceled        = "canceled"
	KindOther           = "other"
)

// Classify names the gateway failure behind err. It drives the retry
// decision and the error_kind log field.
func Classify(err error) string {
	var (
		rl      *ErrRateLimit
		invalid *ErrInvalidResponse
		unavail *ErrProviderUnavailable
		maxTok  *ErrMaxTokensExceeded
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.As(err, &maxTok):
		return KindMaxTokens
	case errors.As(err, &rl):
		return KindRateLimit
	case errors.As(err, &invalid):
		return KindInvalidResponse
	case errors.As(err, &unavail):
		return KindUnavailable
	default:
		return KindOther
	}
}
