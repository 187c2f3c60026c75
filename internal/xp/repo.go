package xp

import (
	"context"
	"errors"
	"fmt"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, event Event) (_ *Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.xp.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO xp_event
				(kind, amount, exercise, note, created_at)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		event.Kind, event.Amount, event.Exercise, event.Note, event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("event.id", id))

	event.ID = id
	return &event, nil
}

// TotalXP sums the whole ledger. The recent events listing limit is a
// display concern and never feeds this number.
func (r *Repo) TotalXP(ctx context.Context) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.xp.total")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var total int
	if err := r.db.QueryRow(
		ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM xp_event;`,
	).Scan(&total); err != nil {
		return 0, err
	}

	return total, nil
}

func (r *Repo) ListRecent(ctx context.Context, limit int) (_ []Event, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.xp.listRecent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, kind, amount, exercise, note, created_at
			FROM xp_event
			ORDER BY created_at DESC, id DESC
			LIMIT $1;`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Kind, &e.Amount, &e.Exercise, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
