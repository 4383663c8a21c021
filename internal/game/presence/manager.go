// Package presence tracks which characters are in play on a server and
// where each one currently is.
package presence

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Town is the location of a character that is not inside a dungeon.
const Town = "town"

// ErrInPlay is returned when another session already plays a character
// with the same name.
var ErrInPlay = errors.New("character already in play")

// Player is one character in play.
type Player struct {
	// SessionID identifies the connection playing the character.
	SessionID string
	// Name is the character name. Names are unique case-insensitively.
	Name string
	// Class is the character class display name.
	Class string
	// Level is the character level when last updated.
	Level int
	// Location is Town or the name of the dungeon being explored.
	Location string
}

// Manager tracks all characters in play and their locations.
// All methods are safe for concurrent use.
type Manager struct {
	mu      sync.RWMutex
	players map[string]*Player         // session ID → player
	names   map[string]string          // lowercased name → session ID
	places  map[string]map[string]bool // location → set of session IDs
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		players: make(map[string]*Player),
		names:   make(map[string]string),
		places:  make(map[string]map[string]bool),
	}
}

// Join puts a character in play for sessionID, in Town. A session that
// already plays a character gives it up first.
//
// Precondition: sessionID and name must be non-empty.
// Postcondition: Returns ErrInPlay if a different session plays name.
func (m *Manager) Join(sessionID, name, class string, level int) error {
	if sessionID == "" || name == "" {
		return fmt.Errorf("joining: session ID and name are required")
	}
	key := strings.ToLower(name)

	m.mu.Lock()
	defer m.mu.Unlock()

	if holder, ok := m.names[key]; ok && holder != sessionID {
		return fmt.Errorf("%q: %w", name, ErrInPlay)
	}
	m.leaveLocked(sessionID)

	m.players[sessionID] = &Player{
		SessionID: sessionID,
		Name:      name,
		Class:     class,
		Level:     level,
		Location:  Town,
	}
	m.names[key] = sessionID
	m.enterLocked(sessionID, Town)
	return nil
}

// Leave takes the character of sessionID out of play.
//
// Postcondition: Returns false if the session played no character.
func (m *Manager) Leave(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaveLocked(sessionID)
}

func (m *Manager) leaveLocked(sessionID string) bool {
	p, ok := m.players[sessionID]
	if !ok {
		return false
	}
	m.exitLocked(sessionID, p.Location)
	delete(m.names, strings.ToLower(p.Name))
	delete(m.players, sessionID)
	return true
}

// Move records that the character of sessionID is now at location with
// the given level.
//
// Precondition: location must be non-empty.
// Postcondition: Returns the previous location, or an error if the session
// plays no character.
func (m *Manager) Move(sessionID, location string, level int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.players[sessionID]
	if !ok {
		return "", fmt.Errorf("session %q plays no character", sessionID)
	}
	old := p.Location
	m.exitLocked(sessionID, old)
	p.Location = location
	p.Level = level
	m.enterLocked(sessionID, location)
	return old, nil
}

func (m *Manager) enterLocked(sessionID, location string) {
	if m.places[location] == nil {
		m.places[location] = make(map[string]bool)
	}
	m.places[location][sessionID] = true
}

func (m *Manager) exitLocked(sessionID, location string) {
	if set, ok := m.places[location]; ok {
		delete(set, sessionID)
		if len(set) == 0 {
			delete(m.places, location)
		}
	}
}

// Players returns a copy of everyone in play, sorted by name.
func (m *Manager) Players() []Player {
	m.mu.RLock()
	out := make([]Player, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, *p)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// PlayersAt returns the names of the characters at location, sorted.
func (m *Manager) PlayersAt(location string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.places[location]))
	for id := range m.places[location] {
		names = append(names, m.players[id].Name)
	}
	sort.Strings(names)
	return names
}

// Player returns the character played by sessionID.
func (m *Manager) Player(sessionID string) (Player, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.players[sessionID]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// Count returns the number of characters in play.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}
