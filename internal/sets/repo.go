package sets

import (
	"context"
	"errors"
	"fmt"

	"github.com/liftlog-app/liftlog/internal/daykey"
	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
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

func (r *Repo) Add(ctx context.Context, set Set) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO lift_set
				(exercise, weight, reps, day, created_at)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		set.Exercise, set.Weight, set.Reps, string(set.Day), set.CreatedAt,
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

	span.SetAttributes(attribute.Int("set.id", id))

	set.ID = id
	return &set, nil
}

func (r *Repo) Delete(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM lift_set WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

func (r *Repo) ListExercise(ctx context.Context, exercise string) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.listExercise")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exercise))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, exercise, weight, reps, day, created_at
			FROM lift_set
			WHERE exercise = $1
			ORDER BY day, created_at;`,
		exercise,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2sets(rows)
}

func (r *Repo) ListExerciseDay(ctx context.Context, exercise string, day daykey.DayKey) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.listExerciseDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("exercise", exercise),
		attribute.String("day", string(day)),
	)

	rows, err := r.db.Query(
		ctx,
		`SELECT id, exercise, weight, reps, day, created_at
			FROM lift_set
			WHERE exercise = $1 AND day = $2
			ORDER BY created_at;`,
		exercise, string(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2sets(rows)
}

func (r *Repo) ListDay(ctx context.Context, day daykey.DayKey) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sets.listDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", string(day)))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, exercise, weight, reps, day, created_at
			FROM lift_set
			WHERE day = $1
			ORDER BY created_at;`,
		string(day),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2sets(rows)
}

func (r *Repo) rows2sets(rows pgx.Rows) ([]Set, error) {
	var sets []Set
	for rows.Next() {
		var (
			s      Set
			dayStr string
		)
		if err := rows.Scan(&s.ID, &s.Exercise, &s.Weight, &s.Reps, &dayStr, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		s.Day = daykey.DayKey(dayStr)
		sets = append(sets, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}
