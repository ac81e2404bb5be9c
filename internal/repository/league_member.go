package repository

import (
	"context"
	"fmt"
	"time"

	"draft-order/internal/db"
	"draft-order/internal/domain"

	"github.com/rs/zerolog"
)

type LeagueMemberRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewLeagueMemberRepository(queries *db.Queries, logger zerolog.Logger) *LeagueMemberRepository {
	return &LeagueMemberRepository{
		queries: queries,
		logger:  logger,
	}
}

// Create reports false when the name already exists.
func (r *LeagueMemberRepository) Create(ctx context.Context, name string, createdAt time.Time) (bool, error) {
	n, err := r.queries.CreateLeagueMember(ctx, db.CreateLeagueMemberParams{
		Name:      name,
		CreatedAt: createdAt.UTC(),
	})
	if err != nil {
		return false, fmt.Errorf("failed to create league member %s: %w", name, err)
	}
	return n > 0, nil
}

func (r *LeagueMemberRepository) ListActive(ctx context.Context) ([]domain.LeagueMember, error) {
	rows, err := r.queries.ListActiveLeagueMembers(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainMembers(rows), nil
}

func (r *LeagueMemberRepository) List(ctx context.Context) ([]domain.LeagueMember, error) {
	rows, err := r.queries.ListLeagueMembers(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainMembers(rows), nil
}

func (r *LeagueMemberRepository) DeleteAll(ctx context.Context) error {
	return r.queries.DeleteAllLeagueMembers(ctx)
}

func toDomainMembers(rows []db.LeagueMember) []domain.LeagueMember {
	result := make([]domain.LeagueMember, len(rows))
	for i, m := range rows {
		result[i] = domain.LeagueMember{
			ID:        m.ID,
			Name:      m.Name,
			Active:    m.Active,
			CreatedAt: m.CreatedAt,
		}
	}
	return result
}
