package exercises

import (
	"context"
	"fmt"

	"github.com/liftlog-app/liftlog/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

func (r *Repo) ListCustom(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT name FROM exercise_custom;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2names(rows)
}

func (r *Repo) ListHiddenDefaults(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.listHidden")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `SELECT name FROM exercise_hidden_default;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.rows2names(rows)
}

func (r *Repo) AddCustom(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.addCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO exercise_custom (name) VALUES ($1) ON CONFLICT (name) DO NOTHING;`,
		name,
	)
	return err
}

func (r *Repo) DeleteCustom(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.deleteCustom")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM exercise_custom WHERE name = $1;`,
		name,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrExerciseNotFound
	}
	return nil
}

func (r *Repo) HideDefault(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.hideDefault")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO exercise_hidden_default (name) VALUES ($1) ON CONFLICT (name) DO NOTHING;`,
		name,
	)
	return err
}

func (r *Repo) UnhideDefault(ctx context.Context, name string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.unhideDefault")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise.name", name))

	_, err = r.db.Exec(
		ctx,
		`DELETE FROM exercise_hidden_default WHERE name = $1;`,
		name,
	)
	return err
}

type RenameParams struct {
	Old string
	New string
	// OldIsDefault hides the old default instead of deleting a custom row.
	OldIsDefault bool
	// NewIsHiddenDefault restores the hidden default instead of inserting
	// a custom row. New must hold the canonical default casing then.
	NewIsHiddenDefault bool
}

// Rename applies the delete and add halves of a catalog rename in a
// single transaction, so the old name can never disappear without the
// new one showing up.
func (r *Repo) Rename(ctx context.Context, params RenameParams) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.exercises.rename")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("exercise.old", params.Old),
		attribute.String("exercise.new", params.New),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("%w [rollback err: %s]", err, rollbackErr)
			}
		}
	}()

	if params.OldIsDefault {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO exercise_hidden_default (name) VALUES ($1) ON CONFLICT (name) DO NOTHING;`,
			params.Old,
		); err != nil {
			return err
		}
	} else {
		var tag pgconn.CommandTag
		tag, err = tx.Exec(ctx, `DELETE FROM exercise_custom WHERE name = $1;`, params.Old)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrExerciseNotFound
		}
	}

	if params.NewIsHiddenDefault {
		if _, err = tx.Exec(
			ctx,
			`DELETE FROM exercise_hidden_default WHERE name = $1;`,
			params.New,
		); err != nil {
			return err
		}
	} else {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO exercise_custom (name) VALUES ($1) ON CONFLICT (name) DO NOTHING;`,
			params.New,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *Repo) rows2names(rows pgx.Rows) ([]string, error) {
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}
