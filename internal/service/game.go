package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"draft-order/internal/constants"
	"draft-order/internal/domain"
	"draft-order/internal/game"
	"draft-order/internal/repository"
	"draft-order/internal/scoring"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type Submission struct {
	Name     string
	Email    string
	Guess    int
	ClientIP string
}

type GameService struct {
	base
}

func NewGameService(store *repository.Store, notifier Notifier, clock clockwork.Clock, logger zerolog.Logger) *GameService {
	return &GameService{base: newBase(store, notifier, clock, logger)}
}

func (s *GameService) GetGameState(ctx context.Context) (*domain.GameState, error) {
	return s.gameState(ctx)
}

func (s *GameService) ListPlayers(ctx context.Context) ([]domain.Player, error) {
	return s.players(ctx)
}

// SubmitGuess records a guess. With dev mode on, a repeated name updates the
// existing player in place instead of failing.
func (s *GameService) SubmitGuess(ctx context.Context, sub Submission) (*domain.Player, error) {
	name, err := normalizeName(sub.Name)
	if err != nil {
		return nil, err
	}
	if sub.Guess < constants.MinGuess || sub.Guess > constants.MaxGuess {
		return nil, fmt.Errorf("%w: got %d", domain.ErrInvalidGuess, sub.Guess)
	}
	email := strings.TrimSpace(sub.Email)
	if email == "" {
		email = placeholderEmail(name)
	}

	var player *domain.Player
	err = s.mutate(ctx, "submit_guess", func(ctx context.Context, r repository.Repos) error {
		gs, err := r.GameState.Get(ctx)
		if err != nil {
			return err
		}
		now := s.clock.Now().UTC()
		if err := game.CanSubmit(*gs, now); err != nil {
			return err
		}

		existing, err := r.Players.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil && !gs.DevMode {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
		}

		if !gs.DevMode && !isPlaceholderEmail(email) {
			owner, err := r.Players.FindByEmail(ctx, email)
			if err != nil {
				return err
			}
			if owner != nil {
				return fmt.Errorf("%w: %s", domain.ErrDuplicateEmail, email)
			}
		}

		guess := sub.Guess
		if existing != nil {
			existing.Email = email
			existing.Guess = &guess
			existing.Timestamp = now
			existing.IPAddress = sub.ClientIP
			player, err = r.Players.UpdateSubmission(ctx, existing)
			return err
		}

		player, err = r.Players.Create(ctx, &domain.Player{
			Name:      name,
			Email:     email,
			Guess:     &guess,
			Timestamp: now,
			IPAddress: sub.ClientIP,
		})
		return err
	})
	if err != nil {
		s.logger.Debug().Err(err).Str("name", name).Msg("submission rejected")
		return nil, err
	}

	s.logger.Info().Int64("player_id", player.ID).Str("name", player.Name).Int("guess", sub.Guess).Msg("guess submitted")
	return player, nil
}

// AdvancePhase performs the explicit transition out of the current phase.
func (s *GameService) AdvancePhase(ctx context.Context) (*domain.GameState, error) {
	var (
		gs *domain.GameState
		tr game.Transition
	)
	err := s.mutate(ctx, "advance_phase", func(ctx context.Context, r repository.Repos) error {
		var err error
		if gs, err = r.GameState.Get(ctx); err != nil {
			return err
		}
		players, err := r.Players.List(ctx)
		if err != nil {
			return err
		}

		tr, err = game.Advance(gs.Phase, len(scoring.Scored(players)))
		if err != nil {
			return err
		}

		switch tr.Effect {
		case game.EffectScore:
			res, err := scoring.Compute(players)
			if err != nil {
				return err
			}
			applyResult(gs, res)
		case game.EffectClearResults:
			gs.ClearResults()
		case game.EffectResetPool:
			gs.ClearResults()
			if err := r.Players.DeleteAll(ctx); err != nil {
				return err
			}
		}

		gs.Phase = tr.To
		return r.GameState.Save(ctx, gs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("from", string(tr.From)).
		Str("to", string(tr.To)).
		Str("effect", string(tr.Effect)).
		Msg("phase advanced")
	return gs, nil
}

// ComputeResults returns average, target and winner of the round. Before the
// draft starts the pool is scored and the outcome stored; the state is only
// written, and a backup only raised, when that outcome changed. From selecting
// on the stored outcome is served unchanged so the pick order stays fixed.
// The phase is left untouched.
func (s *GameService) ComputeResults(ctx context.Context) (*scoring.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	var (
		res     *scoring.Result
		changed bool
	)
	err := s.store.InTx(ctx, func(r repository.Repos) error {
		gs, err := r.GameState.Get(ctx)
		if err != nil {
			return err
		}
		if !gs.IsInitialized && gs.Phase == domain.PhaseSetup {
			return domain.ErrNotInitialized
		}
		players, err := r.Players.List(ctx)
		if err != nil {
			return err
		}

		if gs.Phase == domain.PhaseSelecting || gs.Phase == domain.PhaseCompleted {
			res, err = storedResult(ctx, r, gs, players)
			return err
		}

		res, err = scoring.Compute(players)
		if errors.Is(err, scoring.ErrEmptyInput) {
			return domain.ErrNoSubmissions
		}
		if err != nil {
			return err
		}
		if sameResult(gs, res) {
			return nil
		}

		applyResult(gs, res)
		changed = true
		return r.GameState.Save(ctx, gs)
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.notifier.Committed(ctx, "compute_results")
		s.logger.Info().
			Float64("average", res.Average).
			Float64("target", res.Target).
			Int64("winner_id", res.Winner.ID).
			Msg("results computed")
	}
	return res, nil
}

// storedResult rebuilds the outcome persisted on gs. A winner deleted since
// scoring is taken from the archive.
func storedResult(ctx context.Context, r repository.Repos, gs *domain.GameState, players []domain.Player) (*scoring.Result, error) {
	if gs.AverageGuess == nil || gs.TargetNumber == nil || gs.WinnerID == nil {
		return nil, domain.ErrNoSubmissions
	}

	target := *gs.TargetNumber
	res := &scoring.Result{
		Average: *gs.AverageGuess,
		Target:  target,
		Ranked:  scoring.Rank(scoring.Scored(players), target),
		Winner:  domain.Player{ID: *gs.WinnerID},
	}

	for _, p := range players {
		if p.ID == *gs.WinnerID {
			res.Winner = p
			return res, nil
		}
	}

	deleted, err := r.DeletedPlayers.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range deleted {
		if d.OriginalID == *gs.WinnerID {
			res.Winner = domain.Player{
				ID:        d.OriginalID,
				Name:      d.Name,
				Email:     d.Email,
				Guess:     d.Guess,
				Timestamp: d.OriginalTimestamp,
				IPAddress: d.IPAddress,
			}
		}
	}
	return res, nil
}

func sameResult(gs *domain.GameState, res *scoring.Result) bool {
	return gs.AverageGuess != nil && *gs.AverageGuess == res.Average &&
		gs.TargetNumber != nil && *gs.TargetNumber == res.Target &&
		gs.WinnerID != nil && *gs.WinnerID == res.Winner.ID
}

func applyResult(gs *domain.GameState, res *scoring.Result) {
	average, target, winner := res.Average, res.Target, res.Winner.ID
	gs.AverageGuess = &average
	gs.TargetNumber = &target
	gs.WinnerID = &winner
}
