package handlers

import (
	"sync"
	"time"
)

// idleTimer calls onIdle each time a prompt has waited for d without an
// answer. It is safe for concurrent use.
type idleTimer struct {
	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// startIdle arms an idleTimer. A non-positive d returns a timer that never fires.
//
// Precondition: onIdle must not be nil.
// Postcondition: no further firing is scheduled once Stop returns.
func startIdle(d time.Duration, onIdle func()) *idleTimer {
	t := &idleTimer{}
	if d <= 0 {
		t.stopped = true
		return t
	}
	var fire func()
	fire = func() {
		t.mu.Lock()
		if t.stopped {
			t.mu.Unlock()
			return
		}
		t.timer = time.AfterFunc(d, fire)
		t.mu.Unlock()
		onIdle()
	}
	t.mu.Lock()
	t.timer = time.AfterFunc(d, fire)
	t.mu.Unlock()
	return t
}

// Stop disarms the timer. Safe to call more than once.
func (t *idleTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
	}
}
