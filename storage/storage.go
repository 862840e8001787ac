// Package storage provides the SQLite database the server keeps sessions and
// contact submissions in, and the key-value tables built on it.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) the SQLite database at path, ensures the data
// directory exists, and applies the connection pragmas.
func Open(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the editor keep writing sessions while the contact admin
	// reads. synchronous=NORMAL is safe with WAL.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	if path == ":memory:" {
		// every connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(4)
		db.SetMaxIdleConns(4)
	}
	return db, nil
}

// KV is a string-keyed blob table. Keys may carry a prefix to namespace them
// (for example one prefix per workspace).
type KV struct {
	db    *sql.DB
	table string
	now   func() time.Time
}

// NewKV returns a KV over table, creating it if needed.
func NewKV(db *sql.DB, table string) (*KV, error) {
	if table == "" {
		table = "kv"
	}
	if strings.ContainsAny(table, " ;'\"") {
		return nil, fmt.Errorf("storage: bad table name %q", table)
	}
	kv := &KV{db: db, table: table, now: time.Now}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS ` + table + ` (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL,
    updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_` + table + `_updated ON ` + table + `(updated_at);
`); err != nil {
		return nil, err
	}
	return kv, nil
}

// Get returns the value stored under key. ok is false when there is none.
func (kv *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := kv.db.QueryRowContext(ctx, `SELECT value FROM `+kv.table+` WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (kv *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := kv.db.ExecContext(ctx, `
INSERT INTO `+kv.table+` (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, kv.now().UnixMilli())
	return err
}

// Delete removes key. Deleting a missing key is not an error.
func (kv *KV) Delete(ctx context.Context, key string) error {
	_, err := kv.db.ExecContext(ctx, `DELETE FROM `+kv.table+` WHERE key = ?`, key)
	return err
}

// PurgeBefore deletes entries not written since cutoff and reports how many
// were removed.
func (kv *KV) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := kv.db.ExecContext(ctx, `DELETE FROM `+kv.table+` WHERE updated_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// MemoryKV is an in-process KV. The zero value is ready to use.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]byte)
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len returns the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
