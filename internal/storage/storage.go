// Package storage defines character persistence errors and the in-memory
// character store. The PostgreSQL store lives in storage/postgres.
package storage

import (
	"errors"
	"time"

	"github.com/cory-johannsen/delve/internal/game/character"
)

// ErrCharacterNotFound is returned when a character lookup yields no results.
var ErrCharacterNotFound = errors.New("character not found")

// ErrCharacterNameTaken is returned when saving a new character under a name already in use.
var ErrCharacterNameTaken = errors.New("character name already taken")

// Summary is one row of a character listing.
type Summary struct {
	ID        int64
	Name      string
	Class     character.Class
	Level     int
	Gold      int
	UpdatedAt time.Time
}

// SummaryOf extracts the listing fields of s.
func SummaryOf(s character.Snapshot) Summary {
	return Summary{ID: s.ID, Name: s.Name, Class: s.Class, Level: s.Level, Gold: s.Gold, UpdatedAt: s.UpdatedAt}
}
