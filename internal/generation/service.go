package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/noble-hunt/AXLE-sub000/internal/sqlite"
)

// Service is the application-facing surface: generate and persist, replay
// from a seed or a stored workout, and preview without persistence.
type Service struct {
	engine *Engine
	repo   *repository
	logger *slog.Logger
}

// NewService wires the engine to persistence.
func NewService(engine *Engine, db *sqlite.Database, logger *slog.Logger) *Service {
	return &Service{
		engine: engine,
		repo:   newRepository(db, logger),
		logger: logger,
	}
}

// Generate composes a workout for the request, persists it together with its
// seed, and returns both.
func (s *Service) Generate(ctx context.Context, userID string, req Request) (Workout, Seed, error) {
	sctx := SeedContext{UserID: userID}
	w, seed, err := s.engine.Generate(ctx, req, sctx)
	if err != nil {
		return Workout{}, Seed{}, fmt.Errorf("generate workout: %w", err)
	}

	w.ID = uuid.NewString()
	if err := s.repo.SaveWorkout(ctx, userID, w, seed); err != nil {
		return Workout{}, Seed{}, fmt.Errorf("persist workout: %w", err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "workout generated",
		slog.String("workout_id", w.ID),
		slog.String("seed_token", seed.Token),
		slog.String("style", string(w.Style)),
		slog.Float64("hardness_score", w.HardnessScore))
	return w, seed, nil
}

// RegenerateFromToken replays the pipeline for a stored seed token. The
// result is not persisted; it is byte-for-byte reproducible from the seed.
func (s *Service) RegenerateFromToken(ctx context.Context, token string) (Workout, error) {
	seed, err := s.repo.GetSeed(ctx, token)
	if err != nil {
		return Workout{}, fmt.Errorf("load seed: %w", err)
	}
	w, err := s.engine.Regenerate(ctx, seed)
	if err != nil {
		return Workout{}, fmt.Errorf("regenerate workout: %w", err)
	}
	return w, nil
}

// RegenerateFromWorkout replays the pipeline for the seed that produced a
// stored workout.
func (s *Service) RegenerateFromWorkout(ctx context.Context, workoutID string) (Workout, error) {
	seed, err := s.repo.GetSeedForWorkout(ctx, workoutID)
	if err != nil {
		return Workout{}, fmt.Errorf("load seed for workout: %w", err)
	}
	w, err := s.engine.Regenerate(ctx, seed)
	if err != nil {
		return Workout{}, fmt.Errorf("regenerate workout: %w", err)
	}
	return w, nil
}

// Preview composes a workout without persisting anything. The caller
// supplies the token, so repeated previews with the same token and request
// are identical.
func (s *Service) Preview(ctx context.Context, req Request, token string) (Workout, error) {
	w, err := s.engine.Preview(ctx, req, token)
	if err != nil {
		return Workout{}, fmt.Errorf("preview workout: %w", err)
	}
	return w, nil
}

// Get loads a stored workout by ID.
func (s *Service) Get(ctx context.Context, id string) (Workout, error) {
	w, err := s.repo.GetWorkout(ctx, id)
	if err != nil {
		return Workout{}, fmt.Errorf("get workout: %w", err)
	}
	return w, nil
}

// History returns a user's recent workouts, newest first.
func (s *Service) History(ctx context.Context, userID string, limit int) ([]Workout, error) {
	const defaultLimit = 20
	if limit <= 0 {
		limit = defaultLimit
	}
	workouts, err := s.repo.ListWorkouts(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return workouts, nil
}
