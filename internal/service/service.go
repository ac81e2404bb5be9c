package service

import (
	"context"
	"fmt"
	"strings"

	"draft-order/internal/constants"
	"draft-order/internal/domain"
	"draft-order/internal/repository"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

// Notifier is told about every committed mutation, after the commit.
type Notifier interface {
	Committed(ctx context.Context, reason string)
}

type NopNotifier struct{}

func (NopNotifier) Committed(context.Context, string) {}

type base struct {
	store    *repository.Store
	notifier Notifier
	clock    clockwork.Clock
	logger   zerolog.Logger
}

func newBase(store *repository.Store, notifier Notifier, clock clockwork.Clock, logger zerolog.Logger) base {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return base{store: store, notifier: notifier, clock: clock, logger: logger}
}

// mutate runs fn as one critical section and raises reason once it committed.
func (b *base) mutate(ctx context.Context, reason string, fn func(ctx context.Context, r repository.Repos) error) error {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if err := b.store.InTx(ctx, func(r repository.Repos) error { return fn(ctx, r) }); err != nil {
		return err
	}

	b.notifier.Committed(ctx, reason)
	return nil
}

func (b *base) gameState(ctx context.Context) (*domain.GameState, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return b.store.Read().GameState.Get(ctx)
}

func (b *base) players(ctx context.Context) ([]domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	return b.store.Read().Players.List(ctx)
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrInvalidName
	}
	return name, nil
}

// placeholderEmail derives a non-deliverable address from a player name.
func placeholderEmail(name string) string {
	local := strings.Join(strings.Fields(strings.ToLower(name)), ".")
	return fmt.Sprintf("%s@%s", local, constants.PlaceholderDomain)
}

func isPlaceholderEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), "@"+constants.PlaceholderDomain)
}

func validateLeagueName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > constants.MaxLeagueNameLength {
		return "", domain.ErrInvalidLeagueName
	}
	return name, nil
}

func validateNumTeams(n int) error {
	if n < constants.MinTeams || n > constants.MaxTeams {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidTeamCount, n)
	}
	return nil
}
