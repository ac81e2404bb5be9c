package backup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"draft-order/internal/config"
	"draft-order/internal/constants"
	"draft-order/internal/db"
	"draft-order/internal/domain"
	"draft-order/internal/repository"

	"github.com/jonboulle/clockwork"
	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	idTimeLayout   = "20060102T150405.000000000"
	idAlphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixLength = 6
	reasonSep      = "__"
	snapshotExt    = ".db"
	exportExt      = ".yaml"
	maxReasonLen   = 48
	defaultReason  = "manual"
	PreRestore     = "pre_restore"
)

// Tables copied back on restore, with their full column lists.
var tables = []struct {
	name    string
	columns string
}{
	{"players", "id, name, email, guess, timestamp, draft_position, ip_address, name_key"},
	{"deleted_players", "id, original_id, name, email, guess, original_timestamp, deleted_timestamp, deleted_reason, ip_address"},
	{"game_state", "id, phase, winner_id, target_number, average_guess, num_teams, submission_deadline, dev_mode, league_name, is_simulation, is_initialized"},
	{"league_members", "id, name, active, created_at"},
}

type Export struct {
	ID             string                 `yaml:"id"`
	Reason         string                 `yaml:"reason"`
	CreatedAt      time.Time              `yaml:"created_at"`
	GameState      *domain.GameState      `yaml:"game_state"`
	Players        []domain.Player        `yaml:"players"`
	DeletedPlayers []domain.DeletedPlayer `yaml:"deleted_players"`
	LeagueMembers  []domain.LeagueMember  `yaml:"league_members"`
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Manager writes point-in-time snapshots of the database into a directory and
// keeps at most retention of them.
type Manager struct {
	store     *repository.Store
	dir       string
	retention int
	clock     clockwork.Clock
	logger    zerolog.Logger
}

func NewManager(cfg *config.Config, store *repository.Store, clock clockwork.Clock, logger zerolog.Logger) (*Manager, error) {
	return New(store, cfg.BackupDir, cfg.BackupRetention, clock, logger)
}

func New(store *repository.Store, dir string, retention int, clock clockwork.Clock, logger zerolog.Logger) (*Manager, error) {
	if retention < 1 {
		return nil, fmt.Errorf("backup retention must be at least 1, got %d", retention)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &Manager{
		store:     store,
		dir:       dir,
		retention: retention,
		clock:     clock,
		logger:    logger.With().Str("component", "backup").Logger(),
	}, nil
}

// Committed snapshots the database after a successful mutation. Failures are
// logged and never reach the caller.
func (m *Manager) Committed(ctx context.Context, reason string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.BackupTimeout)
	defer cancel()

	if _, err := m.Create(ctx, reason); err != nil {
		m.logger.Warn().Err(err).Str("reason", reason).Msg("automatic backup failed")
	}
}

func (m *Manager) Create(ctx context.Context, reason string) (*domain.Backup, error) {
	var backup *domain.Backup
	err := m.store.Exclusive(ctx, func(conn *sql.Conn) error {
		var err error
		backup, err = m.snapshot(ctx, conn, reason, "")
		return err
	})
	if err != nil {
		return nil, err
	}
	return backup, nil
}

// List returns the available snapshots, newest first.
func (m *Manager) List(ctx context.Context) ([]domain.Backup, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := make([]domain.Backup, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		b, ok := parseFileName(entry.Name())
		if !ok {
			continue
		}
		if info, err := entry.Info(); err == nil {
			b.SizeBytes = info.Size()
		}
		backups = append(backups, b)
	}

	slices.SortFunc(backups, func(a, b domain.Backup) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return backups, nil
}

// Restore replaces the live data with the snapshot id. A pre_restore snapshot
// of the current data is taken first, inside the same critical section.
func (m *Manager) Restore(ctx context.Context, id string) (*domain.Backup, error) {
	target, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}
	path := m.snapshotPath(*target)

	var safety *domain.Backup
	err = m.store.Exclusive(ctx, func(conn *sql.Conn) error {
		safety, err = m.snapshot(ctx, conn, PreRestore, target.ID)
		if err != nil {
			return fmt.Errorf("failed to create safety backup: %w", err)
		}
		return m.copyFrom(ctx, conn, path)
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info().
		Str("backup_id", target.ID).
		Str("safety_backup_id", safety.ID).
		Msg("database restored from backup")
	return safety, nil
}

// Delete removes a snapshot and its export. Unknown ids are ignored.
func (m *Manager) Delete(ctx context.Context, id string) error {
	target, err := m.find(ctx, id)
	if errors.Is(err, domain.ErrBackupNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return m.remove(*target)
}

// Export returns the YAML rendering written alongside snapshot id.
func (m *Manager) Export(ctx context.Context, id string) ([]byte, error) {
	target, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(m.exportPath(*target))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: no export for %s", domain.ErrBackupNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	return data, nil
}

func (m *Manager) snapshot(ctx context.Context, conn execer, reason, keep string) (*domain.Backup, error) {
	now := m.clock.Now().UTC()
	suffix, err := gonanoid.Generate(idAlphabet, idSuffixLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate backup id: %w", err)
	}

	b := domain.Backup{
		ID:        now.Format(idTimeLayout) + "Z-" + suffix,
		Reason:    sanitizeReason(reason),
		CreatedAt: now,
	}
	path := m.snapshotPath(b)
	tmp := path + ".tmp"

	if _, err := conn.ExecContext(ctx, "VACUUM INTO ?", tmp); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("failed to finalize snapshot: %w", err)
	}

	if err := m.writeExport(ctx, b, path); err != nil {
		m.remove(b)
		return nil, err
	}

	if info, err := os.Stat(path); err == nil {
		b.SizeBytes = info.Size()
	}

	m.logger.Info().Str("backup_id", b.ID).Str("reason", b.Reason).Msg("backup created")

	if err := m.prune(ctx, keep); err != nil {
		m.logger.Warn().Err(err).Msg("failed to prune backups")
	}
	return &b, nil
}

// writeExport reads the snapshot file back and renders it as YAML.
func (m *Manager) writeExport(ctx context.Context, b domain.Backup, path string) error {
	snapDB, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer snapDB.Close()

	repos := repository.NewStore(snapDB, db.New(snapDB), m.logger).Read()
	export := Export{ID: b.ID, Reason: b.Reason, CreatedAt: b.CreatedAt}

	if export.GameState, err = repos.GameState.Get(ctx); err != nil {
		return err
	}
	if export.Players, err = repos.Players.List(ctx); err != nil {
		return fmt.Errorf("failed to export players: %w", err)
	}
	if export.DeletedPlayers, err = repos.DeletedPlayers.List(ctx); err != nil {
		return fmt.Errorf("failed to export deleted players: %w", err)
	}
	if export.LeagueMembers, err = repos.LeagueMembers.List(ctx); err != nil {
		return fmt.Errorf("failed to export league members: %w", err)
	}

	data, err := yaml.Marshal(&export)
	if err != nil {
		return fmt.Errorf("failed to marshal export: %w", err)
	}
	if err := os.WriteFile(m.exportPath(b), data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func (m *Manager) copyFrom(ctx context.Context, conn *sql.Conn, path string) error {
	if _, err := conn.ExecContext(ctx, "ATTACH DATABASE ? AS snapshot", path); err != nil {
		return fmt.Errorf("failed to attach snapshot: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.WithoutCancel(ctx), "DETACH DATABASE snapshot"); err != nil {
			m.logger.Warn().Err(err).Msg("failed to detach snapshot")
		}
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin restore: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM main."+t.name); err != nil {
			return fmt.Errorf("failed to clear %s: %w", t.name, err)
		}
		q := fmt.Sprintf("INSERT INTO main.%s (%s) SELECT %s FROM snapshot.%s", t.name, t.columns, t.columns, t.name)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to restore %s: %w", t.name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}

func (m *Manager) prune(ctx context.Context, keep string) error {
	backups, err := m.List(ctx)
	if err != nil {
		return err
	}

	kept := 0
	for _, b := range backups {
		if kept < m.retention || b.ID == keep {
			kept++
			continue
		}
		if err := m.remove(b); err != nil {
			return err
		}
		m.logger.Debug().Str("backup_id", b.ID).Msg("backup pruned")
	}
	return nil
}

func (m *Manager) find(ctx context.Context, id string) (*domain.Backup, error) {
	backups, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range backups {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrBackupNotFound, id)
}

func (m *Manager) remove(b domain.Backup) error {
	path := m.snapshotPath(b)
	for _, p := range []string{path, path + "-wal", path + "-shm", m.exportPath(b)} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", filepath.Base(p), err)
		}
	}
	return nil
}

func (m *Manager) snapshotPath(b domain.Backup) string {
	return filepath.Join(m.dir, b.ID+reasonSep+b.Reason+snapshotExt)
}

func (m *Manager) exportPath(b domain.Backup) string {
	return filepath.Join(m.dir, b.ID+reasonSep+b.Reason+exportExt)
}

func parseFileName(name string) (domain.Backup, bool) {
	base := strings.TrimSuffix(name, snapshotExt)
	id, reason, ok := strings.Cut(base, reasonSep)
	if !ok {
		return domain.Backup{}, false
	}
	stamp, _, ok := strings.Cut(id, "Z-")
	if !ok {
		return domain.Backup{}, false
	}
	createdAt, err := time.ParseInLocation(idTimeLayout, stamp, time.UTC)
	if err != nil {
		return domain.Backup{}, false
	}
	return domain.Backup{ID: id, Reason: reason, CreatedAt: createdAt}, true
}

// sanitizeReason maps reason onto [a-z0-9_] so it is safe inside a file name.
func sanitizeReason(reason string) string {
	var sb strings.Builder
	lastUnderscore := true
	for _, r := range strings.ToLower(strings.TrimSpace(reason)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			sb.WriteByte('_')
			lastUnderscore = true
		}
		if sb.Len() >= maxReasonLen {
			break
		}
	}
	s := strings.TrimRight(sb.String(), "_")
	if s == "" {
		return defaultReason
	}
	return s
}
