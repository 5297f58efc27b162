package generation

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/noble-hunt/AXLE-sub000/internal/sqlite"
)

// repository persists workouts and their seeds as JSON payloads. The indexed
// columns exist for queries; the payload is the source of truth.
type repository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func newRepository(db *sqlite.Database, logger *slog.Logger) *repository {
	return &repository{db: db, logger: logger}
}

// SaveWorkout inserts the workout and its seed in one transaction.
func (r *repository) SaveWorkout(ctx context.Context, userID string, w Workout, seed Seed) (err error) {
	workoutPayload, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal workout: %w", err)
	}
	seedPayload, err := json.Marshal(seed)
	if err != nil {
		return fmt.Errorf("marshal seed: %w", err)
	}

	tx, err := r.db.ReadWrite.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = stderrors.Join(err, fmt.Errorf("rollback: %w", rollbackErr))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO workouts (id, user_id, style, duration_minutes, hardness_score, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		w.ID, userID, string(w.Style), w.DurationMinutes, w.HardnessScore,
		string(workoutPayload), seed.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert workout: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO generator_seeds (token, workout_id, generator_version, payload, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		seed.Token, w.ID, seed.GeneratorVersion,
		string(seedPayload), seed.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert seed: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetWorkout loads a workout by ID.
func (r *repository) GetWorkout(ctx context.Context, id string) (Workout, error) {
	var payload string
	err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT payload FROM workouts WHERE id = ?`, id).Scan(&payload)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return Workout{}, fmt.Errorf("workout %s: %w", id, ErrNotFound)
		}
		return Workout{}, fmt.Errorf("query workout: %w", err)
	}

	var w Workout
	if err := json.Unmarshal([]byte(payload), &w); err != nil {
		return Workout{}, fmt.Errorf("unmarshal workout payload: %w", err)
	}
	return w, nil
}

// GetSeed loads a seed by its token.
func (r *repository) GetSeed(ctx context.Context, token string) (Seed, error) {
	var payload string
	err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT payload FROM generator_seeds WHERE token = ?`, token).Scan(&payload)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return Seed{}, fmt.Errorf("seed %s: %w", token, ErrNotFound)
		}
		return Seed{}, fmt.Errorf("query seed: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal([]byte(payload), &seed); err != nil {
		return Seed{}, fmt.Errorf("unmarshal seed payload: %w", err)
	}
	return seed, nil
}

// GetSeedForWorkout loads the seed minted with a given workout.
func (r *repository) GetSeedForWorkout(ctx context.Context, workoutID string) (Seed, error) {
	var payload string
	err := r.db.ReadOnly.QueryRowContext(ctx,
		`SELECT payload FROM generator_seeds WHERE workout_id = ?`, workoutID).Scan(&payload)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return Seed{}, fmt.Errorf("seed for workout %s: %w", workoutID, ErrNotFound)
		}
		return Seed{}, fmt.Errorf("query seed by workout: %w", err)
	}

	var seed Seed
	if err := json.Unmarshal([]byte(payload), &seed); err != nil {
		return Seed{}, fmt.Errorf("unmarshal seed payload: %w", err)
	}
	return seed, nil
}

// ListWorkouts returns the most recent workouts for a user, newest first.
func (r *repository) ListWorkouts(ctx context.Context, userID string, limit int) (_ []Workout, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `
		SELECT payload FROM workouts
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = stderrors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	var workouts []Workout
	for rows.Next() {
		var payload string
		if err = rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan workout row: %w", err)
		}
		var w Workout
		if err = json.Unmarshal([]byte(payload), &w); err != nil {
			return nil, fmt.Errorf("unmarshal workout payload: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return workouts, nil
}
