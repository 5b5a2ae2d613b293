package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var generationEventColumns = []string{
	"id", "sequence", "timestamp", "passage_hash", "passage_preview",
	"provider", "success", "error_stage", "error_message", "blank_count",
	"misaligned_tiers", "degraded", "artifact", "latency_ms", "exercise_json",
}

func (r *eventRepo) AppendGeneration(ctx context.Context, data GenerationEventData) (*GenerationEvent, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	now := time.Now().UTC()
	query, args := builder().Insert(tableGenerationEvents).
		Columns(generationEventColumns[1:]...).
		Values(
			seqNum,
			now,
			data.PassageHash,
			data.PassagePreview,
			data.Provider,
			data.Success,
			data.ErrorStage,
			data.ErrorMessage,
			data.BlankCount,
			strings.Join(data.MisalignedTiers, ","),
			data.Degraded,
			data.Artifact,
			data.LatencyMs,
			data.ExerciseJSON,
		).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("save generation event: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("generation event id: %w", err)
	}

	return &GenerationEvent{
		ID:                  int(id),
		Sequence:            seqNum,
		Timestamp:           now,
		GenerationEventData: data,
	}, nil
}

func (r *eventRepo) QueryGenerations(ctx context.Context, opts QueryOpts) ([]GenerationEvent, error) {
	b := builder()
	t := b.Table(tableGenerationEvents)
	sel := b.Select(columnsOf(t, generationEventColumns)...).From(t)
	applyOpts(sel, t, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query generation events: %w", err)
	}
	defer rows.Close()

	var events []GenerationEvent
	for rows.Next() {
		ev, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate generation events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) GetGeneration(ctx context.Context, id int) (*GenerationEvent, error) {
	b := builder()
	t := b.Table(tableGenerationEvents)
	query, args := b.Select(columnsOf(t, generationEventColumns)...).
		From(t).
		Where(entsql.EQ(t.C("id"), id)).
		Query()

	ev, err := scanGeneration(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return ev, err
}

func scanGeneration(row rowScanner) (*GenerationEvent, error) {
	var (
		ev         GenerationEvent
		misaligned string
	)
	err := row.Scan(
		&ev.ID,
		&ev.Sequence,
		&ev.Timestamp,
		&ev.PassageHash,
		&ev.PassagePreview,
		&ev.Provider,
		&ev.Success,
		&ev.ErrorStage,
		&ev.ErrorMessage,
		&ev.BlankCount,
		&misaligned,
		&ev.Degraded,
		&ev.Artifact,
		&ev.LatencyMs,
		&ev.ExerciseJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan generation event: %w", err)
	}
	if misaligned != "" {
		ev.MisalignedTiers = strings.Split(misaligned, ",")
	}
	return &ev, nil
}
