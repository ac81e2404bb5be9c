package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"draft-order/internal/database"
	"draft-order/internal/db"
	"draft-order/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "game.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewStore(sqlDB, db.New(sqlDB), zerolog.Nop())
}

func intp(v int) *int { return &v }

var ts = time.Date(2025, 8, 20, 18, 30, 0, 0, time.UTC)

func TestPlayerRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	repo := store.Read().Players

	alice, err := repo.Create(ctx, &domain.Player{Name: "Alice", Email: "alice@test.com", Guess: intp(300), Timestamp: ts, IPAddress: "10.0.0.1"})
	require.NoError(t, err)
	assert.NotZero(t, alice.ID)
	assert.Equal(t, 300, *alice.Guess)
	assert.True(t, alice.Timestamp.Equal(ts))
	assert.Equal(t, "10.0.0.1", alice.IPAddress)
	assert.Nil(t, alice.DraftPosition)

	late, err := repo.Create(ctx, &domain.Player{Name: "Late", Email: "late@noemail.local", Timestamp: ts})
	require.NoError(t, err)
	assert.Nil(t, late.Guess)
	assert.Empty(t, late.IPAddress)

	found, err := repo.FindByName(ctx, "ALICE")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, alice.ID, found.ID)

	found, err = repo.FindByEmail(ctx, "Alice@Test.com")
	require.NoError(t, err)
	require.NotNil(t, found)

	missing, err := repo.FindByName(ctx, "Nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = repo.Get(ctx, 999)
	require.ErrorIs(t, err, domain.ErrPlayerNotFound)

	alice.Guess = intp(275)
	alice.Timestamp = ts.Add(time.Hour)
	updated, err := repo.UpdateSubmission(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, updated.ID)
	assert.Equal(t, 275, *updated.Guess)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Alice", all[0].Name)
	assert.Equal(t, "Late", all[1].Name)
}

func TestSetDraftPosition(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Read().Players

	a, err := repo.Create(ctx, &domain.Player{Name: "A", Email: "a@x", Guess: intp(1), Timestamp: ts})
	require.NoError(t, err)
	b, err := repo.Create(ctx, &domain.Player{Name: "B", Email: "b@x", Guess: intp(2), Timestamp: ts})
	require.NoError(t, err)

	require.NoError(t, repo.SetDraftPosition(ctx, a.ID, 3))
	require.ErrorIs(t, repo.SetDraftPosition(ctx, a.ID, 4), domain.ErrAlreadyPicked)
	require.ErrorIs(t, repo.SetDraftPosition(ctx, b.ID, 3), domain.ErrPositionTaken)

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DraftPosition)
	assert.Equal(t, 3, *got.DraftPosition)
}

func TestGameStateRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Read().GameState

	gs, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSetup, gs.Phase)
	assert.Equal(t, 12, gs.NumTeams)
	assert.Equal(t, "Fantasy Football League", gs.LeagueName)
	assert.False(t, gs.IsInitialized)
	assert.Nil(t, gs.SubmissionDeadline)

	eastern := time.FixedZone("EDT", -4*60*60)
	deadline := time.Date(2025, 8, 28, 23, 59, 0, 0, eastern)
	target, average, winner := 200.0, 300.0, int64(5)
	gs.Phase = domain.PhaseResults
	gs.SubmissionDeadline = &deadline
	gs.TargetNumber, gs.AverageGuess, gs.WinnerID = &target, &average, &winner
	gs.DevMode = true
	gs.NumTeams = 10
	require.NoError(t, repo.Save(ctx, gs))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseResults, got.Phase)
	require.NotNil(t, got.SubmissionDeadline)
	assert.True(t, got.SubmissionDeadline.Equal(deadline))
	assert.Equal(t, time.UTC, got.SubmissionDeadline.Location())
	assert.Equal(t, 200.0, *got.TargetNumber)
	assert.Equal(t, int64(5), *got.WinnerID)
	assert.True(t, got.DevMode)
	assert.Equal(t, 10, got.NumTeams)

	fresh, err := repo.Recreate(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.PhaseSetup, fresh.Phase)
	assert.Nil(t, fresh.TargetNumber)
	assert.False(t, fresh.DevMode)

	gs.Phase = domain.Phase("bogus")
	require.ErrorIs(t, repo.Save(ctx, gs), domain.ErrState)
}

func TestDeletedPlayerRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Read().DeletedPlayers

	first := domain.Player{ID: 4, Name: "Spam", Email: "spam@x", Guess: intp(999), Timestamp: ts, IPAddress: "::1"}
	second := domain.Player{ID: 7, Name: "Dupe", Email: "dupe@x", Timestamp: ts}
	require.NoError(t, repo.Archive(ctx, first, "spam entry", ts.Add(time.Minute)))
	require.NoError(t, repo.Archive(ctx, second, "duplicate", ts.Add(2*time.Minute)))

	rows, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(7), rows[0].OriginalID)
	assert.Nil(t, rows[0].Guess)
	assert.Equal(t, "spam entry", rows[1].DeletedReason)
	assert.Equal(t, 999, *rows[1].Guess)
	assert.Equal(t, "::1", rows[1].IPAddress)

	require.NoError(t, repo.DeleteAll(ctx))
	rows, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLeagueMemberRepository(t *testing.T) {
	ctx := context.Background()
	repo := newTestStore(t).Read().LeagueMembers

	created, err := repo.Create(ctx, "Mike", ts)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(ctx, "mike", ts)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = repo.Create(ctx, "alex", ts)
	require.NoError(t, err)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "alex", active[0].Name)
	assert.True(t, active[0].Active)

	require.NoError(t, repo.DeleteAll(ctx))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	boom := errors.New("boom")

	err := store.InTx(ctx, func(r Repos) error {
		if _, err := r.Players.Create(ctx, &domain.Player{Name: "Ghost", Email: "g@x", Guess: intp(1), Timestamp: ts}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	players, err := store.Read().Players.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, players)
}
