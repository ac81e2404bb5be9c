// Package draft implements the turn-based draft position selection.
//
// Selection order is recomputed from the player pool on every call: guessed
// players by distance from the stored target (ties keep insertion order),
// followed by players without a guess in insertion order. The current picker
// is the first player in that order without a draft position.
package draft

import (
	"fmt"
	"slices"

	"draft-order/internal/domain"
	"draft-order/internal/scoring"
)

type State struct {
	Order         []domain.Player
	CurrentPicker *domain.Player
	// CurrentIndex is the picker's index in Order, or -1 when everyone has picked.
	CurrentIndex int
	Taken        map[int]string
	AllSelected  bool
	MaxPosition  int
}

// Order expects players in insertion order.
func Order(players []domain.Player, target *float64) []domain.Player {
	guessed := scoring.Scored(players)
	if target != nil {
		guessed = scoring.Rank(guessed, *target)
	}

	order := make([]domain.Player, 0, len(players))
	order = append(order, guessed...)
	for _, p := range players {
		if !p.HasGuess() {
			order = append(order, p)
		}
	}
	return order
}

func CurrentPicker(order []domain.Player) (*domain.Player, int) {
	for i := range order {
		if !order[i].HasPosition() {
			p := order[i]
			return &p, i
		}
	}
	return nil, -1
}

func AllSelected(players []domain.Player) bool {
	for _, p := range players {
		if !p.HasPosition() {
			return false
		}
	}
	return true
}

// MaxPosition is the highest claimable slot: the league size, or the pool size
// when more players than teams entered.
func MaxPosition(numTeams, players int) int {
	return max(numTeams, players)
}

func Build(players []domain.Player, target *float64, numTeams int) State {
	order := Order(players, target)
	picker, idx := CurrentPicker(order)

	taken := make(map[int]string)
	for _, p := range players {
		if p.HasPosition() {
			taken[*p.DraftPosition] = p.Name
		}
	}

	return State{
		Order:         order,
		CurrentPicker: picker,
		CurrentIndex:  idx,
		Taken:         taken,
		AllSelected:   AllSelected(players),
		MaxPosition:   MaxPosition(numTeams, len(players)),
	}
}

// Validate checks a pick of position by playerID against the current pool.
func Validate(players []domain.Player, target *float64, numTeams int, playerID int64, position int) error {
	idx := slices.IndexFunc(players, func(p domain.Player) bool { return p.ID == playerID })
	if idx < 0 {
		return fmt.Errorf("%w: id %d", domain.ErrPlayerNotFound, playerID)
	}
	player := players[idx]

	if position < 1 || position > MaxPosition(numTeams, len(players)) {
		return fmt.Errorf("%w: %d is outside 1..%d", domain.ErrInvalidPosition, position, MaxPosition(numTeams, len(players)))
	}

	for _, p := range players {
		if p.HasPosition() && *p.DraftPosition == position {
			return fmt.Errorf("%w: position %d held by %s", domain.ErrPositionTaken, position, p.Name)
		}
	}

	if player.HasPosition() {
		return fmt.Errorf("%w: %s holds position %d", domain.ErrAlreadyPicked, player.Name, *player.DraftPosition)
	}

	picker, _ := CurrentPicker(Order(players, target))
	if picker == nil || picker.ID != playerID {
		return domain.ErrNotYourTurn
	}
	return nil
}
