package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"draft-order/internal/db"

	"github.com/rs/zerolog"
)

// Repos groups the per-collection repositories bound to one query handle.
type Repos struct {
	Players        *PlayerRepository
	DeletedPlayers *DeletedPlayerRepository
	GameState      *GameStateRepository
	LeagueMembers  *LeagueMemberRepository
}

// Store owns the database handle. Every state-mutating operation runs through
// InTx, which serializes writers in-process and commits atomically.
type Store struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
	mu      sync.Mutex
}

func NewStore(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *Store {
	return &Store{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (s *Store) repos(q *db.Queries) Repos {
	return Repos{
		Players:        NewPlayerRepository(q, s.logger),
		DeletedPlayers: NewDeletedPlayerRepository(q, s.logger),
		GameState:      NewGameStateRepository(q, s.logger),
		LeagueMembers:  NewLeagueMemberRepository(q, s.logger),
	}
}

// Read returns repositories outside any transaction.
func (s *Store) Read() Repos {
	return s.repos(s.queries)
}

func (s *Store) InTx(ctx context.Context, fn func(Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(s.repos(s.queries.WithTx(tx))); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Exclusive hands fn a dedicated connection while no InTx can run.
func (s *Store) Exclusive(ctx context.Context, fn func(conn *sql.Conn) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

func (s *Store) DB() *sql.DB {
	return s.db
}
