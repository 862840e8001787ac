package contact

import (
	"cmp"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

func newestFirst(subs []Submission) {
	slices.SortStableFunc(subs, func(a, b Submission) int { return cmp.Compare(b.Timestamp, a.Timestamp) })
}

// MemoryStore keeps submissions in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	subs []Submission
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Add(_ context.Context, s Submission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, s)
	return nil
}

func (m *MemoryStore) List(context.Context) ([]Submission, error) {
	m.mu.RLock()
	out := slices.Clone(m.subs)
	m.mu.RUnlock()
	newestFirst(out)
	return out, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Submission, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.subs {
		if s.ID == id {
			return s, nil
		}
	}
	return Submission{}, ErrNotFound
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.subs, func(s Submission) bool { return s.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	m.subs = slices.Delete(m.subs, i, i+1)
	return nil
}

func (m *MemoryStore) PurgeBefore(_ context.Context, cutoff time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.subs)
	m.subs = slices.DeleteFunc(m.subs, func(s Submission) bool { return s.Timestamp < cutoff.UnixMilli() })
	return n - len(m.subs), nil
}

// FileStore keeps submissions as a JSON array in a single file. Every write
// rewrites the file through a temporary sibling.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates path (holding an empty list) if it does not exist.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	fs := &FileStore{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := fs.write(nil); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func (f *FileStore) read() ([]Submission, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, err
	}
	var subs []Submission
	if err := json.Unmarshal(b, &subs); err != nil {
		return nil, fmt.Errorf("contact: parse %s: %w", f.path, err)
	}
	return subs, nil
}

func (f *FileStore) write(subs []Submission) error {
	if subs == nil {
		subs = []Submission{}
	}
	b, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) Add(_ context.Context, s Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	subs, err := f.read()
	if err != nil {
		return err
	}
	return f.write(append(subs, s))
}

func (f *FileStore) List(context.Context) ([]Submission, error) {
	f.mu.Lock()
	subs, err := f.read()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	newestFirst(subs)
	return subs, nil
}

func (f *FileStore) Get(_ context.Context, id string) (Submission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	subs, err := f.read()
	if err != nil {
		return Submission{}, err
	}
	for _, s := range subs {
		if s.ID == id {
			return s, nil
		}
	}
	return Submission{}, ErrNotFound
}

func (f *FileStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	subs, err := f.read()
	if err != nil {
		return err
	}
	i := slices.IndexFunc(subs, func(s Submission) bool { return s.ID == id })
	if i < 0 {
		return ErrNotFound
	}
	return f.write(slices.Delete(subs, i, i+1))
}

func (f *FileStore) PurgeBefore(_ context.Context, cutoff time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	subs, err := f.read()
	if err != nil {
		return 0, err
	}
	n := len(subs)
	subs = slices.DeleteFunc(subs, func(s Submission) bool { return s.Timestamp < cutoff.UnixMilli() })
	if len(subs) == n {
		return 0, nil
	}
	return n - len(subs), f.write(subs)
}

// SQLiteStore keeps submissions in the contact_submissions table.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates the table if needed. db is typically opened with
// storage.Open.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS contact_submissions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    subject TEXT NOT NULL,
    message TEXT NOT NULL,
    timestamp INTEGER NOT NULL,
    status TEXT NOT NULL,
    ip_address TEXT NOT NULL,
    user_agent TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contact_submissions_ts ON contact_submissions(timestamp);
`); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

const submissionCols = `id, name, email, subject, message, timestamp, status, ip_address, user_agent`

type scanner interface{ Scan(dest ...any) error }

func scanSubmission(r scanner) (Submission, error) {
	var s Submission
	err := r.Scan(&s.ID, &s.Name, &s.Email, &s.Subject, &s.Message, &s.Timestamp, &s.Status, &s.IPAddress, &s.UserAgent)
	return s, err
}

func (q *SQLiteStore) Add(ctx context.Context, s Submission) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO contact_submissions (`+submissionCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Email, s.Subject, s.Message, s.Timestamp, s.Status, s.IPAddress, s.UserAgent)
	return err
}

func (q *SQLiteStore) List(ctx context.Context) ([]Submission, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+submissionCols+` FROM contact_submissions ORDER BY timestamp DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	subs := []Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

func (q *SQLiteStore) Get(ctx context.Context, id string) (Submission, error) {
	s, err := scanSubmission(q.db.QueryRowContext(ctx, `SELECT `+submissionCols+` FROM contact_submissions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Submission{}, ErrNotFound
	}
	return s, err
}

func (q *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM contact_submissions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *SQLiteStore) PurgeBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM contact_submissions WHERE timestamp < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}
