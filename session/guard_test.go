package session

import (
	"sync"
	"testing"
)

func TestFlightGuardCycles(t *testing.T) {
	var g flightGuard
	for i := 0; i < 100; i++ {
		if !g.TryLock() {
			t.Fatalf("cycle %d: TryLock failed on an idle guard", i)
		}
		if g.TryLock() {
			t.Fatalf("cycle %d: second TryLock succeeded", i)
		}
		g.Unlock()
	}
}

func TestFlightGuardAdmitsOneConcurrentCaller(t *testing.T) {
	var g flightGuard
	var wg sync.WaitGroup
	var mu sync.Mutex
	won := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryLock() {
				mu.Lock()
				won++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if won != 1 {
		t.Errorf("winners = %d, want 1", won)
	}
	g.Unlock()
	if !g.TryLock() {
		t.Error("guard not reusable after Unlock")
	}
}
