package adherence

import (
	"context"
	"fmt"

	"github.com/liftlog-app/liftlog/internal/daykey"
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

// Upsert writes the day state atomically, postgres resolves concurrent
// toggles for the same day on the primary key.
func (r *Repo) Upsert(ctx context.Context, log DayLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.adherence.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("day", string(log.Day)),
		attribute.Bool("taken", log.Taken),
	)

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO adherence_day (day, taken) VALUES ($1, $2)
			ON CONFLICT (day) DO UPDATE SET taken = EXCLUDED.taken;`,
		string(log.Day), log.Taken,
	)
	return err
}

func (r *Repo) ListAll(ctx context.Context) (_ []DayLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.adherence.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT day, taken FROM adherence_day ORDER BY day;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []DayLog
	for rows.Next() {
		var (
			l      DayLog
			dayStr string
		)
		if err := rows.Scan(&dayStr, &l.Taken); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		l.Day = daykey.DayKey(dayStr)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
