// Package game holds the phase state machine of a draft-order round.
package game

import (
	"fmt"
	"time"

	"draft-order/internal/domain"
)

type Effect string

const (
	// EffectScore runs the scoring engine and stores average, target and winner.
	EffectScore Effect = "score"
	// EffectClearResults drops average, target and winner.
	EffectClearResults Effect = "clear_results"
	// EffectResetPool clears results and deletes every player.
	EffectResetPool Effect = "reset_pool"
	EffectNone      Effect = "none"
)

type Transition struct {
	From   domain.Phase
	To     domain.Phase
	Effect Effect
}

/*
	submission --(scored > 0)--> results     [score]
	submission --(scored == 0)-> selecting   [clear results]
	results    ------------------> selecting
	selecting  ------------------> submission [reset pool]
	completed  ------------------> submission [reset pool]
	selecting  --(all picked)----> completed  (draft protocol, not Advance)
*/

// Advance returns the transition an explicit "advance" performs from the given
// phase. scored is the number of players holding a guess.
func Advance(from domain.Phase, scored int) (Transition, error) {
	switch from {
	case domain.PhaseSetup:
		return Transition{}, domain.ErrNotInitialized
	case domain.PhaseSubmission:
		if scored > 0 {
			return Transition{From: from, To: domain.PhaseResults, Effect: EffectScore}, nil
		}
		return Transition{From: from, To: domain.PhaseSelecting, Effect: EffectClearResults}, nil
	case domain.PhaseResults:
		return Transition{From: from, To: domain.PhaseSelecting, Effect: EffectNone}, nil
	case domain.PhaseSelecting, domain.PhaseCompleted:
		return Transition{From: from, To: domain.PhaseSubmission, Effect: EffectResetPool}, nil
	default:
		return Transition{}, fmt.Errorf("%w: unknown phase %q", domain.ErrState, from)
	}
}

// CanSubmit reports whether a guess may be accepted at now.
func CanSubmit(gs domain.GameState, now time.Time) error {
	if gs.Phase != domain.PhaseSubmission {
		return domain.ErrSubmissionClosed
	}
	if gs.SubmissionDeadline != nil && now.UTC().After(gs.SubmissionDeadline.UTC()) {
		return domain.ErrSubmissionClosed
	}
	return nil
}

func CanInitialize(phase domain.Phase) error {
	if phase != domain.PhaseSetup {
		return domain.ErrAlreadyInitialized
	}
	return nil
}

func CanAddLatePlayer(phase domain.Phase) error {
	switch phase {
	case domain.PhaseSelecting, domain.PhaseResults:
		return nil
	}
	return fmt.Errorf("%w: late players can only be added during results or selecting, not %s", domain.ErrWrongPhase, phase)
}

func CanSelect(phase domain.Phase) error {
	if phase != domain.PhaseSelecting {
		return fmt.Errorf("%w: game not in selection phase", domain.ErrWrongPhase)
	}
	return nil
}

// CanViewSelection allows reading the draft board while picking and after it finished.
func CanViewSelection(phase domain.Phase) error {
	switch phase {
	case domain.PhaseSelecting, domain.PhaseCompleted:
		return nil
	}
	return fmt.Errorf("%w: game not in selection phase", domain.ErrWrongPhase)
}

// CanViewResults hides guesses and the target while submissions may still change them.
func CanViewResults(phase domain.Phase) error {
	switch phase {
	case domain.PhaseResults, domain.PhaseSelecting, domain.PhaseCompleted:
		return nil
	}
	return fmt.Errorf("%w: results are not available during %s", domain.ErrWrongPhase, phase)
}
