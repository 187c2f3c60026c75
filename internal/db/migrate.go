package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate bootstraps the schema. All statements are idempotent so it is
// safe to run on every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS lift_set (
			id SERIAL PRIMARY KEY,
			exercise TEXT NOT NULL,
			weight DOUBLE PRECISION NOT NULL CHECK (weight > 0),
			reps INTEGER NOT NULL CHECK (reps > 0),
			day TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE INDEX IF NOT EXISTS lift_set_exercise_idx ON lift_set (exercise);`,
		`CREATE INDEX IF NOT EXISTS lift_set_day_idx ON lift_set (day);`,
		`CREATE TABLE IF NOT EXISTS xp_event (
			id SERIAL PRIMARY KEY,
			kind TEXT NOT NULL,
			amount INTEGER NOT NULL,
			exercise TEXT,
			note TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS bodyweight (
			id SERIAL PRIMARY KEY,
			day TEXT NOT NULL,
			weight_lb DOUBLE PRECISION NOT NULL CHECK (weight_lb > 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS adherence_day (
			day TEXT PRIMARY KEY,
			taken BOOLEAN NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS exercise_custom (
			name TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS exercise_hidden_default (
			name TEXT PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
