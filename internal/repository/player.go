package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"draft-order/internal/db"
	"draft-order/internal/domain"

	"github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewPlayerRepository(queries *db.Queries, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		queries: queries,
		logger:  logger,
	}
}

func toDomainPlayer(p db.Player) domain.Player {
	return domain.Player{
		ID:            p.ID,
		Name:          p.Name,
		Email:         p.Email,
		Guess:         intPtr(p.Guess),
		Timestamp:     p.Timestamp,
		DraftPosition: intPtr(p.DraftPosition),
		IPAddress:     strVal(p.IpAddress),
	}
}

func (r *PlayerRepository) Get(ctx context.Context, id int64) (*domain.Player, error) {
	player, err := r.queries.GetPlayer(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", domain.ErrPlayerNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	p := toDomainPlayer(player)
	return &p, nil
}

// FindByName matches on domain.NameKey and returns nil when nobody has the name.
func (r *PlayerRepository) FindByName(ctx context.Context, name string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerByName(ctx, domain.NameKey(name))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p := toDomainPlayer(player)
	return &p, nil
}

// FindByEmail matches case-insensitively and returns nil when the email is unused.
func (r *PlayerRepository) FindByEmail(ctx context.Context, email string) (*domain.Player, error) {
	player, err := r.queries.GetPlayerByEmail(ctx, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p := toDomainPlayer(player)
	return &p, nil
}

// List returns every player in insertion order.
func (r *PlayerRepository) List(ctx context.Context) ([]domain.Player, error) {
	players, err := r.queries.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Player, len(players))
	for i, p := range players {
		result[i] = toDomainPlayer(p)
	}
	return result, nil
}

func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	id, err := r.queries.CreatePlayer(ctx, db.CreatePlayerParams{
		Name:      player.Name,
		Email:     player.Email,
		Guess:     int64Ptr(player.Guess),
		Timestamp: player.Timestamp.UTC(),
		IpAddress: strPtr(player.IPAddress),
		NameKey:   domain.NameKey(player.Name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create player %s: %w", player.Name, err)
	}

	r.logger.Debug().Int64("player_id", id).Str("name", player.Name).Msg("player created")
	return r.Get(ctx, id)
}

func (r *PlayerRepository) UpdateSubmission(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	err := r.queries.UpdatePlayerSubmission(ctx, db.UpdatePlayerSubmissionParams{
		Email:     player.Email,
		Guess:     int64Ptr(player.Guess),
		Timestamp: player.Timestamp.UTC(),
		IpAddress: strPtr(player.IPAddress),
		ID:        player.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update player %d: %w", player.ID, err)
	}
	return r.Get(ctx, player.ID)
}

// SetDraftPosition assigns position once. The schema's unique index backs up
// the service-level checks.
func (r *PlayerRepository) SetDraftPosition(ctx context.Context, id int64, position int) error {
	pos := int64(position)
	n, err := r.queries.SetDraftPosition(ctx, db.SetDraftPositionParams{
		DraftPosition: &pos,
		ID:            id,
	})
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%w: position %d", domain.ErrPositionTaken, position)
	}
	if err != nil {
		return fmt.Errorf("failed to set draft position: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", domain.ErrAlreadyPicked, id)
	}
	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, id int64) error {
	return r.queries.DeletePlayer(ctx, id)
}

func (r *PlayerRepository) DeleteAll(ctx context.Context) error {
	if err := r.queries.DeleteAllPlayers(ctx); err != nil {
		return fmt.Errorf("failed to delete players: %w", err)
	}
	r.logger.Debug().Msg("all players deleted")
	return nil
}
