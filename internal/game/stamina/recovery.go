// Package stamina runs the periodic stamina recovery of active characters.
package stamina

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/character"
)

// DefaultInterval is the recovery tick period.
const DefaultInterval = 5 * time.Second

// RecoverySystem ticks every registered character at a fixed interval.
// Each tick calls Character.Recover, which restores the class recovery rate
// to living characters below max stamina and notifies their observers.
//
// Invariant: each character is recovered at most once per tick.
type RecoverySystem struct {
	interval time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	chars map[string]*character.Character
}

// NewRecoverySystem returns a system that ticks every interval.
//
// Precondition: interval must be > 0. A nil logger is replaced with a no-op logger.
func NewRecoverySystem(interval time.Duration, logger *zap.Logger) *RecoverySystem {
	if interval <= 0 {
		panic("stamina.NewRecoverySystem: interval must be > 0")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecoverySystem{
		interval: interval,
		logger:   logger,
		chars:    make(map[string]*character.Character),
	}
}

// Register adds c under key, replacing any character already registered there.
func (r *RecoverySystem) Register(key string, c *character.Character) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chars[key] = c
}

// Unregister removes the character registered under key.
func (r *RecoverySystem) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.chars, key)
}

// Len returns the number of registered characters.
func (r *RecoverySystem) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chars)
}

// Tick recovers every registered character once.
//
// Postcondition: returns the total stamina restored.
func (r *RecoverySystem) Tick() int {
	r.mu.Lock()
	chars := make([]*character.Character, 0, len(r.chars))
	for _, c := range r.chars {
		chars = append(chars, c)
	}
	r.mu.Unlock()

	total := 0
	for _, c := range chars {
		if n := c.Recover(); n > 0 {
			total += n
			r.logger.Debug("stamina recovered",
				zap.String("character", c.Name()),
				zap.Int("amount", n),
				zap.Int("stamina", c.Stamina()),
			)
		}
	}
	return total
}

// Start begins the tick loop in a goroutine. It runs until ctx is cancelled.
func (r *RecoverySystem) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Tick()
			}
		}
	}()
}
