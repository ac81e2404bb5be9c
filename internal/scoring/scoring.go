// Package scoring computes the "two-thirds of the average" outcome of a round.
package scoring

import (
	"errors"
	"math"
	"slices"

	"draft-order/internal/domain"
)

var ErrEmptyInput = errors.New("scoring: no guesses to score")

type Result struct {
	Average float64
	Target  float64
	// Ranked holds every scored player ordered by distance from Target.
	// Ties keep their input order.
	Ranked []domain.Player
	Winner domain.Player
}

// Compute scores players that carry a guess. Players without one are ignored.
//
// The winner is the first player, in input order, whose guess is closest to
// the target.
func Compute(players []domain.Player) (*Result, error) {
	scored := Scored(players)
	if len(scored) == 0 {
		return nil, ErrEmptyInput
	}

	var sum float64
	for _, p := range scored {
		sum += float64(*p.Guess)
	}
	average := sum / float64(len(scored))
	target := (2.0 / 3.0) * average

	winner := scored[0]
	best := Distance(winner, target)
	for _, p := range scored[1:] {
		if d := Distance(p, target); d < best {
			winner, best = p, d
		}
	}

	return &Result{
		Average: average,
		Target:  target,
		Ranked:  Rank(scored, target),
		Winner:  winner,
	}, nil
}

// Distance is |guess - target|. Players without a guess are infinitely far.
func Distance(p domain.Player, target float64) float64 {
	if p.Guess == nil {
		return math.Inf(1)
	}
	return math.Abs(float64(*p.Guess) - target)
}

// Rank returns a copy of players sorted by distance from target, stable for ties.
func Rank(players []domain.Player, target float64) []domain.Player {
	ranked := slices.Clone(players)
	slices.SortStableFunc(ranked, func(a, b domain.Player) int {
		da, db := Distance(a, target), Distance(b, target)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return ranked
}

func Scored(players []domain.Player) []domain.Player {
	scored := make([]domain.Player, 0, len(players))
	for _, p := range players {
		if p.HasGuess() {
			scored = append(scored, p)
		}
	}
	return scored
}
