package statestore

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

	"pagewatch/internal/logging"
	"pagewatch/internal/signals"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS watch_state (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`

// SQLiteStore keeps the record in a one-row SQLite table.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	kind   signals.Kind
	logger *slog.Logger
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite initializes or connects to the state database.
func OpenSQLite(path string, kind signals.Kind, logger *slog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, wrapIO("open", path, fmt.Errorf("create directory: %w", err))
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, wrapIO("open", path, fmt.Errorf("open sqlite db: %w", err))
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, wrapIO("open", path, fmt.Errorf("apply pragma %q: %w", pragma, execErr))
		}
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, wrapIO("open", path, fmt.Errorf("init schema: %w", err))
	}

	return &SQLiteStore{
		db:     db,
		path:   path,
		kind:   kind,
		logger: logging.NewComponentLogger(logger, "statestore"),
	}, nil
}

func (s *SQLiteStore) Location() string { return "sqlite:" + s.path }

func (s *SQLiteStore) Read(ctx context.Context) (signals.Signal, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM watch_state WHERE id = 1`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		logging.WithContext(ctx, s.logger).Debug("no state record", logging.String("path", s.path))
		return signals.Signal{}, false, nil
	}
	if err != nil {
		return signals.Signal{}, false, wrapIO("read", s.path, err)
	}
	sig, ok := signals.Decode(s.kind, value)
	return sig, ok, nil
}

func (s *SQLiteStore) Write(ctx context.Context, sig signals.Signal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO watch_state (id, value, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		signals.Encode(sig), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return wrapIO("write", s.path, err)
	}
	logging.WithContext(ctx, s.logger).Debug("state record written",
		logging.String("path", s.path),
		logging.String("signal", sig.String()))
	return nil
}

func (s *SQLiteStore) Reset(ctx context.Context) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM watch_state WHERE id = 1`)
	if err != nil {
		return false, wrapIO("reset", s.path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapIO("reset", s.path, err)
	}
	return n > 0, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
