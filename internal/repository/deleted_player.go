package repository

import (
	"context"
	"fmt"
	"time"

	"draft-order/internal/db"
	"draft-order/internal/domain"

	"github.com/rs/zerolog"
)

type DeletedPlayerRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewDeletedPlayerRepository(queries *db.Queries, logger zerolog.Logger) *DeletedPlayerRepository {
	return &DeletedPlayerRepository{
		queries: queries,
		logger:  logger,
	}
}

// Archive copies player into the audit log.
func (r *DeletedPlayerRepository) Archive(ctx context.Context, player domain.Player, reason string, deletedAt time.Time) error {
	err := r.queries.CreateDeletedPlayer(ctx, db.CreateDeletedPlayerParams{
		OriginalID:        player.ID,
		Name:              player.Name,
		Email:             player.Email,
		Guess:             int64Ptr(player.Guess),
		OriginalTimestamp: player.Timestamp.UTC(),
		DeletedTimestamp:  deletedAt.UTC(),
		DeletedReason:     reason,
		IpAddress:         strPtr(player.IPAddress),
	})
	if err != nil {
		return fmt.Errorf("failed to archive player %d: %w", player.ID, err)
	}
	return nil
}

// List returns the audit log, most recent deletion first.
func (r *DeletedPlayerRepository) List(ctx context.Context) ([]domain.DeletedPlayer, error) {
	rows, err := r.queries.ListDeletedPlayers(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.DeletedPlayer, len(rows))
	for i, d := range rows {
		result[i] = domain.DeletedPlayer{
			ID:                d.ID,
			OriginalID:        d.OriginalID,
			Name:              d.Name,
			Email:             d.Email,
			Guess:             intPtr(d.Guess),
			OriginalTimestamp: d.OriginalTimestamp,
			DeletedTimestamp:  d.DeletedTimestamp,
			DeletedReason:     d.DeletedReason,
			IPAddress:         strVal(d.IpAddress),
		}
	}
	return result, nil
}

func (r *DeletedPlayerRepository) DeleteAll(ctx context.Context) error {
	return r.queries.DeleteAllDeletedPlayers(ctx)
}
