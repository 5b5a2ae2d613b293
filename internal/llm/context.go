package llm

import "context"

// Pipeline stages that issue model calls. The purpose labels the event log,
// the request metrics and the cache namespace.
const (
	PurposeAnalysis = "analysis"
	PurposeGapfill  = "gapfill"
	PurposeRender   = "render"
	PurposeUnknown  = "unknown"
)

type ctxKey int

const (
	purposeKey ctxKey = iota
	requestIDKey
)

// WithPurpose tags the context with the stage making the call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the stage tag, or PurposeUnknown for untagged calls
// such as the `llm` CLI.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}

// WithRequestID carries the HTTP request ID down to the gateway so model
// calls can be matched to the request that triggered them.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
