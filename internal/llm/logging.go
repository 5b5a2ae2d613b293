package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/gapfill/internal/metrics"
	"github.com/abhisek/gapfill/internal/store"
)

// EventRecorder is the part of the event store the decorator needs.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingOptions configures the logging decorator. All fields are optional.
type LoggingOptions struct {
	// Provider labels events and metrics. Defaults to the inner ModelID.
	Provider string

	// Repo receives one LLM request event per call. Nil disables the event log.
	Repo EventRecorder

	Logger *zap.Logger

	// Counter estimates tokens when the provider reports no usage.
	Counter TokenCounter
}

// LoggingProvider is a decorator that records every LLM request as an
// event, a log line and a metric sample.
type LoggingProvider struct {
	inner Provider
	opts  LoggingOptions
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, opts LoggingOptions) Provider {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Provider == "" {
		opts.Provider = p.ModelID()
	}
	return &LoggingProvider{inner: p, opts: opts}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	elapsed := time.Since(start)

	data := store.LLMRequestEventData{
		Provider:    l.opts.Provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		if resp.Usage.TotalTokens == 0 && l.opts.Counter != nil {
			resp.Usage = l.estimateUsage(req, resp)
		}
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	metrics.ObserveLLMRequest(l.opts.Provider, purpose, err == nil, elapsed.Seconds())
	metrics.AddLLMTokens(l.opts.Provider, data.InputTokens, data.OutputTokens)

	fields := []zap.Field{
		zap.String("provider", l.opts.Provider),
		zap.String("model", data.Model),
		zap.String("purpose", purpose),
		zap.Duration("latency", elapsed),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if id := RequestIDFrom(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if err != nil {
		l.opts.Logger.Warn("LLM request failed", append(fields, zap.String("error_kind", Classify(err)), zap.Error(err))...)
	} else {
		l.opts.Logger.Debug("LLM request", fields...)
	}

	// Logging must never fail the request.
	if l.opts.Repo != nil {
		if logErr := l.opts.Repo.AppendLLMRequest(ctx, data); logErr != nil {
			l.opts.Logger.Warn("failed to record LLM request event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) estimateUsage(req Request, resp *Response) Usage {
	in := l.opts.Counter.Count(req.System)
	for _, m := range req.Messages {
		in += l.opts.Counter.Count(m.Content)
	}
	out := l.opts.Counter.Count(string(resp.Content))
	return Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out}
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	}

	return b.String()
}
