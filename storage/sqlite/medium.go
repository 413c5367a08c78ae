package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"github.com/poiesic/satchel/storage"
)

const schema = `CREATE TABLE IF NOT EXISTS collections (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// medium wraps a SQLite database behind the storage.Medium contract.
// Collections live in a single key/value table; the engine's payload
// envelope is stored opaquely in the value column.
type medium struct {
	db     *sql.DB
	closed atomic.Bool
}

var _ storage.Medium = (*medium)(nil)

// Open opens (or creates) a SQLite-backed medium in dataDir.
// Pass ":memory:" as dataDir for an in-memory database (used by tests).
func Open(dataDir string) (storage.Medium, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "satchel.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	// Set busy timeout so concurrent access waits briefly instead of failing immediately.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &medium{db: db}, nil
}

func (m *medium) Get(ctx context.Context, key string) ([]byte, error) {
	if m.closed.Load() {
		return nil, storage.ErrStorageClosed
	}

	var value []byte
	err := m.db.QueryRowContext(ctx,
		`SELECT value FROM collections WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (m *medium) Set(ctx context.Context, key string, value []byte) error {
	if m.closed.Load() {
		return storage.ErrStorageClosed
	}

	_, err := m.db.ExecContext(ctx,
		`INSERT INTO collections (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UnixMilli())
	return err
}

func (m *medium) Remove(ctx context.Context, key string) error {
	if m.closed.Load() {
		return storage.ErrStorageClosed
	}

	_, err := m.db.ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, key)
	return err
}

func (m *medium) Clear(ctx context.Context) error {
	if m.closed.Load() {
		return storage.ErrStorageClosed
	}

	_, err := m.db.ExecContext(ctx, `DELETE FROM collections`)
	return err
}

func (m *medium) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	return m.db.Close()
}
