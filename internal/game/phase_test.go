package game

import (
	"testing"
	"time"

	"draft-order/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance(t *testing.T) {
	cases := []struct {
		name    string
		from    domain.Phase
		scored  int
		want    Transition
		wantErr error
	}{
		{
			name:    "setup cannot advance",
			from:    domain.PhaseSetup,
			scored:  3,
			wantErr: domain.ErrNotInitialized,
		},
		{
			name:   "submission with guesses goes to results",
			from:   domain.PhaseSubmission,
			scored: 2,
			want:   Transition{From: domain.PhaseSubmission, To: domain.PhaseResults, Effect: EffectScore},
		},
		{
			name:   "submission without guesses skips to selecting",
			from:   domain.PhaseSubmission,
			scored: 0,
			want:   Transition{From: domain.PhaseSubmission, To: domain.PhaseSelecting, Effect: EffectClearResults},
		},
		{
			name: "results goes to selecting",
			from: domain.PhaseResults,
			want: Transition{From: domain.PhaseResults, To: domain.PhaseSelecting, Effect: EffectNone},
		},
		{
			name: "selecting resets to submission",
			from: domain.PhaseSelecting,
			want: Transition{From: domain.PhaseSelecting, To: domain.PhaseSubmission, Effect: EffectResetPool},
		},
		{
			name: "completed resets to submission",
			from: domain.PhaseCompleted,
			want: Transition{From: domain.PhaseCompleted, To: domain.PhaseSubmission, Effect: EffectResetPool},
		},
		{
			name:    "unknown phase",
			from:    domain.Phase("drafting"),
			wantErr: domain.ErrState,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Advance(tc.from, tc.scored)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAdvanceCoversEveryPhase(t *testing.T) {
	for _, p := range domain.Phases {
		_, err := Advance(p, 1)
		if p == domain.PhaseSetup {
			assert.ErrorIs(t, err, domain.ErrNotInitialized)
			continue
		}
		assert.NoError(t, err, "phase %s", p)
	}
}

func TestCanSubmit(t *testing.T) {
	now := time.Date(2025, 8, 28, 20, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Minute)

	cases := []struct {
		name    string
		state   domain.GameState
		wantErr bool
	}{
		{"open without deadline", domain.GameState{Phase: domain.PhaseSubmission}, false},
		{"open before deadline", domain.GameState{Phase: domain.PhaseSubmission, SubmissionDeadline: &later}, false},
		{"open exactly at deadline", domain.GameState{Phase: domain.PhaseSubmission, SubmissionDeadline: &now}, false},
		{"closed after deadline", domain.GameState{Phase: domain.PhaseSubmission, SubmissionDeadline: &earlier}, true},
		{"closed in results", domain.GameState{Phase: domain.PhaseResults}, true},
		{"closed in setup", domain.GameState{Phase: domain.PhaseSetup}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CanSubmit(tc.state, now)
			if tc.wantErr {
				require.ErrorIs(t, err, domain.ErrSubmissionClosed)
				require.ErrorIs(t, err, domain.ErrState)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestCanSubmitComparesInUTC(t *testing.T) {
	eastern := time.FixedZone("EDT", -4*60*60)
	deadline := time.Date(2025, 8, 28, 23, 59, 0, 0, eastern)
	gs := domain.GameState{Phase: domain.PhaseSubmission, SubmissionDeadline: &deadline}

	// 03:58 UTC on the 29th is still before 23:59 EDT on the 28th
	require.NoError(t, CanSubmit(gs, time.Date(2025, 8, 29, 3, 58, 0, 0, time.UTC)))
	require.ErrorIs(t, CanSubmit(gs, time.Date(2025, 8, 29, 4, 0, 0, 0, time.UTC)), domain.ErrSubmissionClosed)
}

func TestPhaseGuards(t *testing.T) {
	for _, p := range domain.Phases {
		t.Run(string(p), func(t *testing.T) {
			if p == domain.PhaseSetup {
				assert.NoError(t, CanInitialize(p))
			} else {
				assert.ErrorIs(t, CanInitialize(p), domain.ErrAlreadyInitialized)
			}

			if p == domain.PhaseSelecting || p == domain.PhaseResults {
				assert.NoError(t, CanAddLatePlayer(p))
			} else {
				assert.ErrorIs(t, CanAddLatePlayer(p), domain.ErrWrongPhase)
			}

			if p == domain.PhaseSelecting {
				assert.NoError(t, CanSelect(p))
			} else {
				assert.ErrorIs(t, CanSelect(p), domain.ErrState)
			}
		})
	}
}
