package service

import (
	"context"

	"draft-order/internal/domain"
	"draft-order/internal/draft"
	"draft-order/internal/game"
	"draft-order/internal/repository"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type SelectionView struct {
	Game  domain.GameState
	Board draft.State
}

type DraftService struct {
	base
}

func NewDraftService(store *repository.Store, notifier Notifier, clock clockwork.Clock, logger zerolog.Logger) *DraftService {
	return &DraftService{base: newBase(store, notifier, clock, logger)}
}

func (s *DraftService) SelectionState(ctx context.Context) (*SelectionView, error) {
	gs, err := s.gameState(ctx)
	if err != nil {
		return nil, err
	}
	if err := game.CanViewSelection(gs.Phase); err != nil {
		return nil, err
	}

	players, err := s.players(ctx)
	if err != nil {
		return nil, err
	}

	return &SelectionView{
		Game:  *gs,
		Board: draft.Build(players, gs.TargetNumber, gs.NumTeams),
	}, nil
}

// SelectPosition claims position for playerID. When the last player picks,
// the game moves to completed in the same transaction.
func (s *DraftService) SelectPosition(ctx context.Context, playerID int64, position int) (*SelectionView, error) {
	var view *SelectionView
	err := s.mutate(ctx, "select_position", func(ctx context.Context, r repository.Repos) error {
		gs, err := r.GameState.Get(ctx)
		if err != nil {
			return err
		}
		if err := game.CanSelect(gs.Phase); err != nil {
			return err
		}

		players, err := r.Players.List(ctx)
		if err != nil {
			return err
		}
		if err := draft.Validate(players, gs.TargetNumber, gs.NumTeams, playerID, position); err != nil {
			return err
		}
		if err := r.Players.SetDraftPosition(ctx, playerID, position); err != nil {
			return err
		}

		if players, err = r.Players.List(ctx); err != nil {
			return err
		}
		if draft.AllSelected(players) {
			gs.Phase = domain.PhaseCompleted
			if err := r.GameState.Save(ctx, gs); err != nil {
				return err
			}
		}

		view = &SelectionView{Game: *gs, Board: draft.Build(players, gs.TargetNumber, gs.NumTeams)}
		return nil
	})
	if err != nil {
		s.logger.Debug().Err(err).Int64("player_id", playerID).Int("position", position).Msg("selection rejected")
		return nil, err
	}

	s.logger.Info().Int64("player_id", playerID).Int("position", position).Msg("draft position selected")
	if view.Board.AllSelected {
		s.logger.Info().Msg("draft order complete")
	}
	return view, nil
}
