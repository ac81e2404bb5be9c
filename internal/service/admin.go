package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"draft-order/internal/constants"
	"draft-order/internal/domain"
	"draft-order/internal/draft"
	"draft-order/internal/game"
	"draft-order/internal/repository"
	"draft-order/internal/scoring"
	"draft-order/internal/simulation"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type GameConfig struct {
	LeagueName   string
	NumTeams     int
	IsSimulation bool
	DevMode      bool
	Deadline     *time.Time
}

type AdminService struct {
	base
	intn func(int) int
}

func NewAdminService(store *repository.Store, notifier Notifier, clock clockwork.Clock, logger zerolog.Logger) *AdminService {
	return &AdminService{
		base: newBase(store, notifier, clock, logger),
		intn: rand.IntN,
	}
}

// InitializeGame leaves setup and opens submissions with a fresh player pool.
func (s *AdminService) InitializeGame(ctx context.Context, cfg GameConfig) (*domain.GameState, error) {
	if err := validateNumTeams(cfg.NumTeams); err != nil {
		return nil, err
	}
	leagueName := constants.DefaultLeagueName
	if strings.TrimSpace(cfg.LeagueName) != "" {
		var err error
		if leagueName, err = validateLeagueName(cfg.LeagueName); err != nil {
			return nil, err
		}
	}

	var gs *domain.GameState
	err := s.mutate(ctx, "initialize_game", func(ctx context.Context, r repository.Repos) error {
		var err error
		if gs, err = r.GameState.Get(ctx); err != nil {
			return err
		}
		if err := game.CanInitialize(gs.Phase); err != nil {
			return err
		}
		if err := r.Players.DeleteAll(ctx); err != nil {
			return err
		}

		gs.LeagueName = leagueName
		gs.NumTeams = cfg.NumTeams
		gs.DevMode = cfg.DevMode
		gs.IsSimulation = cfg.IsSimulation
		gs.SubmissionDeadline = utcPtr(cfg.Deadline)
		gs.ClearResults()

		if cfg.IsSimulation {
			if err := s.insertEntrants(ctx, r, simulation.Generate(cfg.NumTeams, s.intn)); err != nil {
				return err
			}
		}

		gs.Phase = domain.PhaseSubmission
		gs.IsInitialized = true
		return r.GameState.Save(ctx, gs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("league_name", gs.LeagueName).
		Int("num_teams", gs.NumTeams).
		Bool("dev_mode", gs.DevMode).
		Bool("is_simulation", gs.IsSimulation).
		Msg("game initialized")
	return gs, nil
}

// Simulate replaces the player pool with num_teams synthetic entrants.
func (s *AdminService) Simulate(ctx context.Context) (*domain.GameState, error) {
	var gs *domain.GameState
	err := s.mutate(ctx, "simulate", func(ctx context.Context, r repository.Repos) error {
		var err error
		if gs, err = r.GameState.Get(ctx); err != nil {
			return err
		}
		if err := r.Players.DeleteAll(ctx); err != nil {
			return err
		}
		if err := s.insertEntrants(ctx, r, simulation.Generate(gs.NumTeams, s.intn)); err != nil {
			return err
		}

		gs.ClearResults()
		gs.Phase = domain.PhaseSubmission
		gs.IsSimulation = true
		gs.IsInitialized = true
		return r.GameState.Save(ctx, gs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int("players", gs.NumTeams).Msg("simulated players generated")
	return gs, nil
}

// QuickTest loads the fixed five-player round and jumps straight to results.
func (s *AdminService) QuickTest(ctx context.Context) (*domain.GameState, error) {
	var gs *domain.GameState
	err := s.mutate(ctx, "quick_test", func(ctx context.Context, r repository.Repos) error {
		var err error
		if gs, err = r.GameState.Get(ctx); err != nil {
			return err
		}
		if err := r.Players.DeleteAll(ctx); err != nil {
			return err
		}
		if err := s.insertEntrants(ctx, r, simulation.QuickTest); err != nil {
			return err
		}

		players, err := r.Players.List(ctx)
		if err != nil {
			return err
		}
		res, err := scoring.Compute(players)
		if err != nil {
			return err
		}
		applyResult(gs, res)

		gs.Phase = domain.PhaseResults
		gs.IsInitialized = true
		return r.GameState.Save(ctx, gs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("winner_id", *gs.WinnerID).Msg("quick test loaded")
	return gs, nil
}

// ResetToSetup empties the player pool and returns to setup. Settings are kept.
func (s *AdminService) ResetToSetup(ctx context.Context) (*domain.GameState, error) {
	var gs *domain.GameState
	err := s.mutate(ctx, "reset_to_setup", func(ctx context.Context, r repository.Repos) error {
		var err error
		if gs, err = r.GameState.Get(ctx); err != nil {
			return err
		}
		if err := r.Players.DeleteAll(ctx); err != nil {
			return err
		}

		gs.ClearResults()
		gs.Phase = domain.PhaseSetup
		gs.IsInitialized = false
		return r.GameState.Save(ctx, gs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Msg("game reset to setup")
	return gs, nil
}

// FullReset drops players, the deletion log and the game state, then opens a
// fresh submission round with default settings. The roster survives.
func (s *AdminService) FullReset(ctx context.Context) (*domain.GameState, error) {
	var gs *domain.GameState
	err := s.mutate(ctx, "full_reset", func(ctx context.Context, r repository.Repos) error {
		if err := r.Players.DeleteAll(ctx); err != nil {
			return err
		}
		if err := r.DeletedPlayers.DeleteAll(ctx); err != nil {
			return err
		}

		var err error
		if gs, err = r.GameState.Recreate(ctx); err != nil {
			return err
		}
		gs.Phase = domain.PhaseSubmission
		gs.IsInitialized = true
		return r.GameState.Save(ctx, gs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Warn().Msg("game fully reset")
	return gs, nil
}

func (s *AdminService) ToggleDevMode(ctx context.Context) (*domain.GameState, error) {
	return s.updateState(ctx, "toggle_dev_mode", func(gs *domain.GameState) error {
		gs.DevMode = !gs.DevMode
		return nil
	})
}

func (s *AdminService) ToggleSimulation(ctx context.Context) (*domain.GameState, error) {
	return s.updateState(ctx, "toggle_simulation", func(gs *domain.GameState) error {
		gs.IsSimulation = !gs.IsSimulation
		return nil
	})
}

func (s *AdminService) UpdateLeagueName(ctx context.Context, name string) (*domain.GameState, error) {
	name, err := validateLeagueName(name)
	if err != nil {
		return nil, err
	}
	return s.updateState(ctx, "update_league_name", func(gs *domain.GameState) error {
		gs.LeagueName = name
		return nil
	})
}

// SetDeadline sets or, with nil, clears the submission deadline.
func (s *AdminService) SetDeadline(ctx context.Context, deadline *time.Time) (*domain.GameState, error) {
	return s.updateState(ctx, "set_deadline", func(gs *domain.GameState) error {
		gs.SubmissionDeadline = utcPtr(deadline)
		return nil
	})
}

// DeleteSubmission archives the player with reason and removes it from the pool.
func (s *AdminService) DeleteSubmission(ctx context.Context, playerID int64, reason string) (*domain.Player, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = constants.DefaultDeleteReason
	}

	var player *domain.Player
	err := s.mutate(ctx, "delete_submission", func(ctx context.Context, r repository.Repos) error {
		var err error
		if player, err = r.Players.Get(ctx, playerID); err != nil {
			return err
		}
		if err := r.DeletedPlayers.Archive(ctx, *player, reason, s.clock.Now()); err != nil {
			return err
		}
		if err := r.Players.Delete(ctx, playerID); err != nil {
			return err
		}
		return completeIfDrafted(ctx, r)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("player_id", playerID).Str("name", player.Name).Str("reason", reason).Msg("submission deleted")
	return player, nil
}

// completeIfDrafted ends the draft when removing a player left only players
// that already hold a position.
func completeIfDrafted(ctx context.Context, r repository.Repos) error {
	gs, err := r.GameState.Get(ctx)
	if err != nil {
		return err
	}
	if gs.Phase != domain.PhaseSelecting {
		return nil
	}

	players, err := r.Players.List(ctx)
	if err != nil {
		return err
	}
	if len(players) == 0 || !draft.AllSelected(players) {
		return nil
	}

	gs.Phase = domain.PhaseCompleted
	return r.GameState.Save(ctx, gs)
}

// AddLatePlayer adds a player without a guess once submissions are over.
func (s *AdminService) AddLatePlayer(ctx context.Context, name, email string) (*domain.Player, error) {
	name, err := normalizeName(name)
	if err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		email = placeholderEmail(name)
	}

	var player *domain.Player
	err = s.mutate(ctx, "add_late_player", func(ctx context.Context, r repository.Repos) error {
		gs, err := r.GameState.Get(ctx)
		if err != nil {
			return err
		}
		if err := game.CanAddLatePlayer(gs.Phase); err != nil {
			return err
		}

		if !gs.DevMode {
			existing, err := r.Players.FindByName(ctx, name)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("%w: %s", domain.ErrDuplicateName, name)
			}
		}

		player, err = r.Players.Create(ctx, &domain.Player{
			Name:      name,
			Email:     email,
			Timestamp: s.clock.Now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("player_id", player.ID).Str("name", player.Name).Msg("late player added")
	return player, nil
}

func (s *AdminService) ListDeletedPlayers(ctx context.Context) ([]domain.DeletedPlayer, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return s.store.Read().DeletedPlayers.List(ctx)
}

func (s *AdminService) updateState(ctx context.Context, reason string, fn func(gs *domain.GameState) error) (*domain.GameState, error) {
	var gs *domain.GameState
	err := s.mutate(ctx, reason, func(ctx context.Context, r repository.Repos) error {
		var err error
		if gs, err = r.GameState.Get(ctx); err != nil {
			return err
		}
		if err := fn(gs); err != nil {
			return err
		}
		return r.GameState.Save(ctx, gs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("change", reason).Msg("game state updated")
	return gs, nil
}

func (s *AdminService) insertEntrants(ctx context.Context, r repository.Repos, entrants []simulation.Entrant) error {
	now := s.clock.Now()
	for _, e := range entrants {
		guess := e.Guess
		if _, err := r.Players.Create(ctx, &domain.Player{
			Name:      e.Name,
			Email:     e.Email,
			Guess:     &guess,
			Timestamp: now,
		}); err != nil {
			return err
		}
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
