package bodyweight

import (
	"context"
	"errors"
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

func (r *Repo) Add(ctx context.Context, sample Sample) (_ *Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO bodyweight
				(day, weight_lb, created_at)
				VALUES ($1, $2, $3)
			RETURNING id;`,
		string(sample.Day), sample.WeightLb, sample.CreatedAt,
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

	span.SetAttributes(attribute.Int("sample.id", id))

	sample.ID = id
	return &sample, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM bodyweight WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSampleNotFound
	}
	return nil
}

func (r *Repo) ListAll(ctx context.Context) (_ []Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.bodyweight.listAll")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, day, weight_lb, created_at
			FROM bodyweight
			ORDER BY day, created_at;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var (
			s      Sample
			dayStr string
		)
		if err := rows.Scan(&s.ID, &dayStr, &s.WeightLb, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		s.Day = daykey.DayKey(dayStr)
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}
