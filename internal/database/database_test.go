package database

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMigratesAndSeedsGameState(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "game.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	var phase string
	var initialized bool
	require.NoError(t, db.QueryRow("SELECT phase, is_initialized FROM game_state WHERE id = 1").Scan(&phase, &initialized))
	assert.Equal(t, "setup", phase)
	assert.False(t, initialized)

	for _, table := range []string{"players", "deleted_players", "league_members"} {
		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n), table)
		assert.Zero(t, n, table)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.db")

	db, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM game_state").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestSchemaRejectsDuplicateDraftPositions(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "game.db"), zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`INSERT INTO players (name, email, timestamp, draft_position) VALUES ('a', 'a@x', datetime('now'), 1)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO players (name, email, timestamp, draft_position) VALUES ('b', 'b@x', datetime('now'), 1)`)
	require.Error(t, err)

	_, err = db.Exec(`INSERT INTO players (name, email, timestamp, guess) VALUES ('c', 'c@x', datetime('now'), 1001)`)
	require.Error(t, err)
}
