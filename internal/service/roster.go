package service

import (
	"context"
	"io"

	"draft-order/internal/constants"
	"draft-order/internal/domain"
	"draft-order/internal/repository"
	"draft-order/internal/roster"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type RosterService struct {
	base
}

func NewRosterService(store *repository.Store, notifier Notifier, clock clockwork.Clock, logger zerolog.Logger) *RosterService {
	return &RosterService{base: newBase(store, notifier, clock, logger)}
}

// Upload replaces the roster with rows. Blank and repeated names are skipped.
// It returns the number of members stored.
func (s *RosterService) Upload(ctx context.Context, rows []roster.Row) (int, error) {
	names := roster.Normalize(rows)

	added := 0
	err := s.mutate(ctx, "roster_upload", func(ctx context.Context, r repository.Repos) error {
		if err := r.LeagueMembers.DeleteAll(ctx); err != nil {
			return err
		}
		now := s.clock.Now()
		for _, name := range names {
			ok, err := r.LeagueMembers.Create(ctx, name, now)
			if err != nil {
				return err
			}
			if ok {
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Int("members", added).Int("rows", len(rows)).Msg("roster uploaded")
	return added, nil
}

func (s *RosterService) UploadCSV(ctx context.Context, r io.Reader) (int, error) {
	rows, err := roster.ParseCSV(r)
	if err != nil {
		return 0, err
	}
	return s.Upload(ctx, rows)
}

func (s *RosterService) Clear(ctx context.Context) error {
	err := s.mutate(ctx, "roster_clear", func(ctx context.Context, r repository.Repos) error {
		return r.LeagueMembers.DeleteAll(ctx)
	})
	if err != nil {
		return err
	}

	s.logger.Info().Msg("roster cleared")
	return nil
}

// List returns active members sorted by name.
func (s *RosterService) List(ctx context.Context) ([]domain.LeagueMember, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.Read().LeagueMembers.ListActive(ctx)
}
