package probecache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"speechset/internal/logging"
)

const schema = `
CREATE TABLE IF NOT EXISTS durations (
    path        TEXT PRIMARY KEY,
    size        INTEGER NOT NULL,
    mtime_ns    INTEGER NOT NULL,
    duration_ms REAL NOT NULL,
    cached_at   TEXT NOT NULL
);`

// Store manages duration persistence backed by SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the cache database at dbPath.
func Open(dbPath string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{
		db:     db,
		path:   dbPath,
		logger: logging.NewComponentLogger(logger, "probecache"),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// canonicalPath keys cache rows by absolute path so a file probed from
// different working directories resolves to one entry.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// Lookup returns the cached duration for path if the file's current size and
// modification time still match the stored entry. Errors degrade to a miss.
func (s *Store) Lookup(ctx context.Context, path string) (float64, bool) {
	path = canonicalPath(path)
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}

	var size, mtime int64
	var durationMS float64
	row := s.db.QueryRowContext(ctx,
		`SELECT size, mtime_ns, duration_ms FROM durations WHERE path = ?`, path)
	if err := row.Scan(&size, &mtime, &durationMS); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("cache lookup failed", logging.Args(logging.String("path", path), logging.Error(err))...)
		}
		return 0, false
	}
	if size != info.Size() || mtime != info.ModTime().UnixNano() {
		return 0, false
	}
	return durationMS, true
}

// Remember stores the probed duration for path alongside its current size
// and modification time.
func (s *Store) Remember(ctx context.Context, path string, durationMS float64) error {
	path = canonicalPath(path)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO durations (path, size, mtime_ns, duration_ms, cached_at)
         VALUES (?, ?, ?, ?, ?)
         ON CONFLICT(path) DO UPDATE SET
             size = excluded.size,
             mtime_ns = excluded.mtime_ns,
             duration_ms = excluded.duration_ms,
             cached_at = excluded.cached_at`,
		path, info.Size(), info.ModTime().UnixNano(), durationMS,
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("store duration: %w", err)
	}
	return nil
}

// Clear removes every cached entry.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM durations`); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Count returns the number of cached entries.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM durations`)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count cache entries: %w", err)
	}
	return count, nil
}
