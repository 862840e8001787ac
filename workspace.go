package pagesmith

import (
	"sync"
	"time"

	"github.com/eringen/pagesmith/session"
)

// WorkspaceKey is the KV key a workspace's session is persisted under.
func WorkspaceKey(id string) string {
	return id + "/" + session.StorageKey
}

type workspace struct {
	store *session.Store
	seen  time.Time
}

// Workspaces is an in-memory registry of live session stores, one per
// browser. Stores are restored from the KV on first use and dropped again
// after sitting idle; their persisted state outlives them.
type Workspaces struct {
	mu   sync.Mutex
	live map[string]*workspace
	kv   session.KV
	opts []session.Option
	now  func() time.Time
}

// NewWorkspaces creates a registry persisting through kv. opts are applied
// to every store it creates.
func NewWorkspaces(kv session.KV, now func() time.Time, opts ...session.Option) *Workspaces {
	if now == nil {
		now = time.Now
	}
	return &Workspaces{
		live: make(map[string]*workspace),
		kv:   kv,
		opts: opts,
		now:  now,
	}
}

// Get returns the store for id, creating (and restoring) it if needed.
func (w *Workspaces) Get(id string) *session.Store {
	w.mu.Lock()
	defer w.mu.Unlock()
	if ws, ok := w.live[id]; ok {
		ws.seen = w.now()
		return ws.store
	}
	opts := append([]session.Option{}, w.opts...)
	if w.kv != nil {
		opts = append(opts, session.WithPersister(session.NewPersister(w.kv, WorkspaceKey(id))))
	}
	ws := &workspace{store: session.New(opts...), seen: w.now()}
	w.live[id] = ws
	return ws.store
}

// Len reports how many stores are live.
func (w *Workspaces) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.live)
}

// Evict drops stores not used for idle. Stores with a generation in flight
// are kept.
func (w *Workspaces) Evict(idle time.Duration) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	cutoff := w.now().Add(-idle)
	n := 0
	for id, ws := range w.live {
		if ws.seen.After(cutoff) || ws.store.Generating() {
			continue
		}
		delete(w.live, id)
		n++
	}
	return n
}
