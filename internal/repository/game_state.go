package repository

import (
	"context"
	"fmt"

	"draft-order/internal/db"
	"draft-order/internal/domain"

	"github.com/rs/zerolog"
)

type GameStateRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewGameStateRepository(queries *db.Queries, logger zerolog.Logger) *GameStateRepository {
	return &GameStateRepository{
		queries: queries,
		logger:  logger,
	}
}

// Get returns the singleton, creating the default row first if it is missing.
func (r *GameStateRepository) Get(ctx context.Context) (*domain.GameState, error) {
	if err := r.queries.EnsureGameState(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure game state: %w", err)
	}

	row, err := r.queries.GetGameState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get game state: %w", err)
	}

	gs := &domain.GameState{
		Phase:              domain.Phase(row.Phase),
		WinnerID:           row.WinnerID,
		TargetNumber:       row.TargetNumber,
		AverageGuess:       row.AverageGuess,
		NumTeams:           int(row.NumTeams),
		SubmissionDeadline: row.SubmissionDeadline,
		DevMode:            row.DevMode,
		LeagueName:         row.LeagueName,
		IsSimulation:       row.IsSimulation,
		IsInitialized:      row.IsInitialized,
	}
	if gs.SubmissionDeadline != nil {
		utc := gs.SubmissionDeadline.UTC()
		gs.SubmissionDeadline = &utc
	}
	if !gs.Phase.Valid() {
		return nil, fmt.Errorf("%w: stored phase %q", domain.ErrState, row.Phase)
	}
	return gs, nil
}

func (r *GameStateRepository) Save(ctx context.Context, gs *domain.GameState) error {
	if !gs.Phase.Valid() {
		return fmt.Errorf("%w: phase %q", domain.ErrState, gs.Phase)
	}

	params := db.UpdateGameStateParams{
		Phase:         string(gs.Phase),
		WinnerID:      gs.WinnerID,
		TargetNumber:  gs.TargetNumber,
		AverageGuess:  gs.AverageGuess,
		NumTeams:      int64(gs.NumTeams),
		DevMode:       gs.DevMode,
		LeagueName:    gs.LeagueName,
		IsSimulation:  gs.IsSimulation,
		IsInitialized: gs.IsInitialized,
	}
	if gs.SubmissionDeadline != nil {
		utc := gs.SubmissionDeadline.UTC()
		params.SubmissionDeadline = &utc
	}

	if err := r.queries.UpdateGameState(ctx, params); err != nil {
		return fmt.Errorf("failed to save game state: %w", err)
	}

	r.logger.Debug().Str("phase", string(gs.Phase)).Msg("game state saved")
	return nil
}

// Recreate drops the singleton and returns a fresh default one.
func (r *GameStateRepository) Recreate(ctx context.Context) (*domain.GameState, error) {
	if err := r.queries.DeleteGameState(ctx); err != nil {
		return nil, fmt.Errorf("failed to delete game state: %w", err)
	}
	return r.Get(ctx)
}
