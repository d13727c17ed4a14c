package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/dupes-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/dupes-cli/internal/core/domain"
	"github.com/custodia-labs/dupes-cli/internal/core/ports/driven"
)

// DatabaseFile is the name of the history database inside the data directory.
const DatabaseFile = "history.db"

// Store is a SQLite-based storage for run history.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store in the specified data directory.
// If dataDir is empty, defaults to ~/.dupes/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".dupes")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets the history command read while a search records a run
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

const runColumns = `id, directories, extra_args, size_filter, toggle_flags, program, command,
	exit_code, exit_signal, entries, started_at, finished_at`

// Save stores or replaces a run.
func (s *historyStore) Save(ctx context.Context, record domain.RunRecord) error {
	dirsJSON, err := marshalStrings(record.Search.Directories)
	if err != nil {
		return fmt.Errorf("marshalling directories: %w", err)
	}
	flagsJSON, err := marshalStrings(record.Search.ToggleFlags)
	if err != nil {
		return fmt.Errorf("marshalling toggle flags: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO runs (`+runColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			directories = excluded.directories,
			extra_args = excluded.extra_args,
			size_filter = excluded.size_filter,
			toggle_flags = excluded.toggle_flags,
			program = excluded.program,
			command = excluded.command,
			exit_code = excluded.exit_code,
			exit_signal = excluded.exit_signal,
			entries = excluded.entries,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at
	`, record.ID, dirsJSON, record.Search.ExtraArgs, record.Search.SizeFilter, flagsJSON,
		record.Program, record.Command, record.Status.Code, record.Status.Signal,
		record.Entries, toUnix(record.StartedAt), toUnix(record.FinishedAt))

	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// Get retrieves a run by ID or unique ID prefix.
func (s *historyStore) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	record, err := scanRun(row)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, domain.ErrNotFound) || id == "" {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM runs
		WHERE substr(id, 1, ?) = ?
		LIMIT 2
	`, len(id), id)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	records, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(records) != 1 {
		return nil, domain.ErrNotFound
	}
	return &records[0], nil
}

// List returns the most recent runs first.
func (s *historyStore) List(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as no limit
	}
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM runs
		ORDER BY finished_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// Prune keeps the newest keep runs and deletes the rest.
func (s *historyStore) Prune(ctx context.Context, keep int) error {
	if keep < 0 {
		return nil
	}
	_, err := s.store.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY finished_at DESC, id DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return fmt.Errorf("pruning runs: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*domain.RunRecord, error) {
	var record domain.RunRecord
	var dirsJSON, flagsJSON string
	var startedAt, finishedAt int64
	if err := row.Scan(&record.ID, &dirsJSON, &record.Search.ExtraArgs, &record.Search.SizeFilter,
		&flagsJSON, &record.Program, &record.Command, &record.Status.Code, &record.Status.Signal,
		&record.Entries, &startedAt, &finishedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	if err := json.Unmarshal([]byte(dirsJSON), &record.Search.Directories); err != nil {
		return nil, fmt.Errorf("unmarshalling directories: %w", err)
	}
	if err := json.Unmarshal([]byte(flagsJSON), &record.Search.ToggleFlags); err != nil {
		return nil, fmt.Errorf("unmarshalling toggle flags: %w", err)
	}
	record.StartedAt = fromUnix(startedAt)
	record.FinishedAt = fromUnix(finishedAt)

	return &record, nil
}

func scanRuns(rows *sql.Rows) ([]domain.RunRecord, error) {
	var records []domain.RunRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return records, nil
}

// marshalStrings encodes a string slice, storing nil as an empty array.
func marshalStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnix(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}
