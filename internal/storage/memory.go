package storage

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// MemoryStore keeps character snapshots in process memory. It is safe for
// concurrent use and loses everything on exit.
type MemoryStore struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]character.Snapshot
	now    func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[int64]character.Snapshot), now: time.Now}
}

// Save inserts s when s.ID is 0 and updates the stored row otherwise.
//
// Postcondition: returns the stored snapshot with ID and timestamps set,
// ErrCharacterNameTaken on a name clash, or ErrCharacterNotFound when
// updating an unknown ID.
func (m *MemoryStore) Save(_ context.Context, s character.Snapshot) (character.Snapshot, error) {
	if err := s.Validate(); err != nil {
		return character.Snapshot{}, fmt.Errorf("saving character: %w", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, other := range m.byID {
		if id != s.ID && strings.EqualFold(other.Name, s.Name) {
			return character.Snapshot{}, ErrCharacterNameTaken
		}
	}
	now := m.now()
	if s.ID == 0 {
		m.nextID++
		s.ID = m.nextID
		s.CreatedAt = now
	} else {
		old, ok := m.byID[s.ID]
		if !ok {
			return character.Snapshot{}, ErrCharacterNotFound
		}
		s.CreatedAt = old.CreatedAt
	}
	s.UpdatedAt = now
	s.Inventory = slices.Clone(s.Inventory)
	m.byID[s.ID] = s
	return clone(s), nil
}

// Load returns the snapshot stored under id.
func (m *MemoryStore) Load(_ context.Context, id int64) (character.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return character.Snapshot{}, ErrCharacterNotFound
	}
	return clone(s), nil
}

// LoadByName returns the snapshot with the given name, ignoring case.
func (m *MemoryStore) LoadByName(_ context.Context, name string) (character.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.byID {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return clone(s), nil
		}
	}
	return character.Snapshot{}, ErrCharacterNotFound
}

// List returns every stored character ordered by ID.
func (m *MemoryStore) List(_ context.Context) ([]Summary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Summary, 0, len(m.byID))
	for _, s := range m.byID {
		out = append(out, SummaryOf(s))
	}
	slices.SortFunc(out, func(a, b Summary) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

// Delete removes the character stored under id.
func (m *MemoryStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrCharacterNotFound
	}
	delete(m.byID, id)
	return nil
}

func clone(s character.Snapshot) character.Snapshot {
	s.Inventory = slices.Clone(s.Inventory)
	if s.Inventory == nil {
		s.Inventory = []inventory.Entry{}
	}
	return s
}
