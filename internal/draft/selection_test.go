package draft

import (
	"testing"

	"draft-order/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func f64(v float64) *float64 { return &v }

// guesses 300,250,400,350,200 -> target 200
func quickTestPool() []domain.Player {
	return []domain.Player{
		{ID: 1, Name: "Alice", Guess: intp(300)},
		{ID: 2, Name: "Bob", Guess: intp(250)},
		{ID: 3, Name: "Charlie", Guess: intp(400)},
		{ID: 4, Name: "Diana", Guess: intp(350)},
		{ID: 5, Name: "Eve", Guess: intp(200)},
	}
}

func ids(players []domain.Player) []int64 {
	out := make([]int64, 0, len(players))
	for _, p := range players {
		out = append(out, p.ID)
	}
	return out
}

func TestOrder(t *testing.T) {
	cases := []struct {
		name    string
		players []domain.Player
		target  *float64
		want    []int64
	}{
		{
			name:    "by distance from target",
			players: quickTestPool(),
			target:  f64(200),
			want:    []int64{5, 2, 1, 4, 3},
		},
		{
			name: "ties keep insertion order",
			players: []domain.Player{
				{ID: 1, Guess: intp(110)},
				{ID: 2, Guess: intp(90)},
				{ID: 3, Guess: intp(100)},
			},
			target: f64(100),
			want:   []int64{3, 1, 2},
		},
		{
			name: "players without guess go last",
			players: []domain.Player{
				{ID: 1, Name: "Late A"},
				{ID: 2, Guess: intp(500)},
				{ID: 3, Name: "Late B"},
				{ID: 4, Guess: intp(100)},
			},
			target: f64(100),
			want:   []int64{4, 2, 1, 3},
		},
		{
			name: "no target keeps insertion order",
			players: []domain.Player{
				{ID: 1, Name: "Late A"},
				{ID: 2, Guess: intp(10)},
				{ID: 3, Guess: intp(5)},
			},
			want: []int64{2, 3, 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Order(tc.players, tc.target)))
		})
	}
}

func TestOrderIsStaticAsPicksAreMade(t *testing.T) {
	pool := quickTestPool()
	before := ids(Order(pool, f64(200)))

	pool[4].DraftPosition = intp(3) // Eve picks
	pool[1].DraftPosition = intp(1) // Bob picks

	assert.Equal(t, before, ids(Order(pool, f64(200))))

	picker, idx := CurrentPicker(Order(pool, f64(200)))
	require.NotNil(t, picker)
	assert.Equal(t, int64(1), picker.ID)
	assert.Equal(t, 2, idx)
}

func TestValidate(t *testing.T) {
	target := f64(200)

	cases := []struct {
		name     string
		mutate   func(pool []domain.Player)
		playerID int64
		position int
		wantErr  error
	}{
		{name: "winner picks first", playerID: 5, position: 1},
		{name: "not your turn", playerID: 1, position: 1, wantErr: domain.ErrNotYourTurn},
		{
			name:     "position taken",
			mutate:   func(pool []domain.Player) { pool[4].DraftPosition = intp(1) },
			playerID: 2,
			position: 1,
			wantErr:  domain.ErrPositionTaken,
		},
		{
			name:     "already picked",
			mutate:   func(pool []domain.Player) { pool[4].DraftPosition = intp(1) },
			playerID: 5,
			position: 2,
			wantErr:  domain.ErrAlreadyPicked,
		},
		{
			name:     "second pick goes to runner up",
			mutate:   func(pool []domain.Player) { pool[4].DraftPosition = intp(1) },
			playerID: 2,
			position: 12,
		},
		{name: "unknown player", playerID: 99, position: 1, wantErr: domain.ErrPlayerNotFound},
		{name: "position zero", playerID: 5, position: 0, wantErr: domain.ErrInvalidPosition},
		{name: "position past league size", playerID: 5, position: 13, wantErr: domain.ErrInvalidPosition},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pool := quickTestPool()
			if tc.mutate != nil {
				tc.mutate(pool)
			}
			err := Validate(pool, target, 12, tc.playerID, tc.position)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateErrorCategories(t *testing.T) {
	pool := quickTestPool()
	assert.ErrorIs(t, Validate(pool, f64(200), 12, 1, 1), domain.ErrConflict)
	assert.ErrorIs(t, Validate(pool, f64(200), 12, 42, 1), domain.ErrNotFound)
	assert.ErrorIs(t, Validate(pool, f64(200), 12, 5, -1), domain.ErrValidation)

	// an unknown player is reported before the position is checked
	assert.ErrorIs(t, Validate(pool, f64(200), 12, 42, 99), domain.ErrPlayerNotFound)
}

func TestBuild(t *testing.T) {
	pool := quickTestPool()
	pool[4].DraftPosition = intp(4)

	st := Build(pool, f64(200), 12)
	assert.Equal(t, []int64{5, 2, 1, 4, 3}, ids(st.Order))
	require.NotNil(t, st.CurrentPicker)
	assert.Equal(t, "Bob", st.CurrentPicker.Name)
	assert.Equal(t, 1, st.CurrentIndex)
	assert.Equal(t, map[int]string{4: "Eve"}, st.Taken)
	assert.False(t, st.AllSelected)
	assert.Equal(t, 12, st.MaxPosition)

	for i := range pool {
		pool[i].DraftPosition = intp(i + 1)
	}
	st = Build(pool, f64(200), 2)
	assert.Nil(t, st.CurrentPicker)
	assert.Equal(t, -1, st.CurrentIndex)
	assert.True(t, st.AllSelected)
	assert.Equal(t, 5, st.MaxPosition)
}
