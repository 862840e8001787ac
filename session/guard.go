package session

import "sync"

// flightGuard allows at most one generation at a time. Unlike a mutex it
// never blocks: a second caller is told to go away.
type flightGuard struct {
	mu   sync.Mutex
	busy bool
}

// TryLock marks a generation as running. It returns false if one already is.
func (g *flightGuard) TryLock() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy {
		return false
	}
	g.busy = true
	return true
}

// Unlock must be called after a successful TryLock.
func (g *flightGuard) Unlock() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = false
}
