package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on top of the query builder and the
// global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var llmEventColumns = []string{
	"id", "sequence", "timestamp", "provider", "model", "purpose",
	"input_tokens", "output_tokens", "latency_ms", "success",
	"error_message", "request_body", "response_body",
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(tableLLMRequestEvents).
		Columns(llmEventColumns[1:]...).
		Values(
			seqNum,
			time.Now().UTC(),
			data.Provider,
			data.Model,
			data.Purpose,
			data.InputTokens,
			data.OutputTokens,
			data.LatencyMs,
			data.Success,
			data.ErrorMessage,
			data.RequestBody,
			data.ResponseBody,
		).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	b := builder()
	t := b.Table(tableLLMRequestEvents)
	sel := b.Select(columnsOf(t, llmEventColumns)...).From(t)
	applyOpts(sel, t, opts)
	if opts.Purpose != "" {
		sel.Where(entsql.EQ(t.C("purpose"), opts.Purpose))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var events []LLMRequestEvent
	for rows.Next() {
		ev, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate LLM events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error) {
	b := builder()
	t := b.Table(tableLLMRequestEvents)
	query, args := b.Select(columnsOf(t, llmEventColumns)...).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	ev, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return ev, err
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	b := builder()
	t := b.Table(tableLLMRequestEvents)
	query, args := b.Select(
		t.C("purpose"),
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("COALESCE(SUM(CASE WHEN `success` THEN 0 ELSE 1 END), 0)", "failures"),
		entsql.As("COALESCE(SUM(`input_tokens`), 0)", "input_tokens"),
		entsql.As("COALESCE(SUM(`output_tokens`), 0)", "output_tokens"),
		entsql.As("CAST(COALESCE(AVG(`latency_ms`), 0) AS INTEGER)", "avg_latency_ms"),
	).
		From(t).
		GroupBy(t.C("purpose")).
		OrderBy(entsql.Desc("calls")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	defer rows.Close()

	var stats []PurposeUsage
	for rows.Next() {
		var st PurposeUsage
		if err := rows.Scan(&st.Purpose, &st.Calls, &st.Failures, &st.InputTokens, &st.OutputTokens, &st.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan purpose usage: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	b := builder()
	t := b.Table(tableLLMRequestEvents)
	query, args := b.Select(
		t.C("model"),
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As("COALESCE(SUM(`input_tokens`), 0)", "input_tokens"),
		entsql.As("COALESCE(SUM(`output_tokens`), 0)", "output_tokens"),
	).
		From(t).
		GroupBy(t.C("model")).
		OrderBy(entsql.Desc("calls")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	defer rows.Close()

	var stats []ModelUsage
	for rows.Next() {
		var mu ModelUsage
		if err := rows.Scan(&mu.Model, &mu.Calls, &mu.InputTokens, &mu.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		stats = append(stats, mu)
	}
	return stats, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMRequestEvent, error) {
	var ev LLMRequestEvent
	err := row.Scan(
		&ev.ID,
		&ev.Sequence,
		&ev.Timestamp,
		&ev.Provider,
		&ev.Model,
		&ev.Purpose,
		&ev.InputTokens,
		&ev.OutputTokens,
		&ev.LatencyMs,
		&ev.Success,
		&ev.ErrorMessage,
		&ev.RequestBody,
		&ev.ResponseBody,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	return &ev, nil
}

func columnsOf(t *entsql.SelectTable, names []string) []string {
	cols := make([]string, len(names))
	for i, n := range names {
		cols[i] = t.C(n)
	}
	return cols
}

// applyOpts adds the shared sequence/time filters, newest-first ordering
// and the limit to sel.
func applyOpts(sel *entsql.Selector, t *entsql.SelectTable, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT(t.C("sequence"), opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT(t.C("sequence"), opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE(t.C("timestamp"), opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE(t.C("timestamp"), opts.To.UTC()))
	}
	sel.OrderBy(entsql.Desc(t.C("sequence")))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
