// Package combat implements the turn-based room combat engine: damage
// resolution, loot sampling, roster generation and round resolution.
package combat

import "github.com/cory-johannsen/delve/internal/game/inventory"

// Status is the state of an encounter.
type Status int

const (
	StatusActive Status = iota
	StatusVictory
	StatusDefeat
	StatusFled
)

// String returns a human-readable status label.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusVictory:
		return "victory"
	case StatusDefeat:
		return "defeat"
	case StatusFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Terminal reports whether the encounter is over.
func (s Status) Terminal() bool { return s != StatusActive }

// Action is the player's choice for one round.
type Action int

const (
	ActionAttack Action = iota
	ActionFlee
)

// String returns a human-readable action label.
func (a Action) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Outcome is the result of a finished encounter. Gold and Items are only
// populated for StatusVictory: a lost or abandoned room yields nothing.
type Outcome struct {
	Status Status
	Gold   int
	Items  []inventory.Item
}

// Rules holds the tunable probabilities and limits of the engine.
type Rules struct {
	// FleeChance is the percent chance a flee attempt succeeds.
	FleeChance int
	// ExtraMonsterChance is the percent chance a room gains one extra monster.
	ExtraMonsterChance int
	// MaxMonstersPerRoom caps the roster size, at most RoomCap.
	MaxMonstersPerRoom int
}

// RoomCap is the largest roster a room may hold.
const RoomCap = 4

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{FleeChance: 50, ExtraMonsterChance: 30, MaxMonstersPerRoom: RoomCap}
}

// normalized replaces the zero Rules with DefaultRules and out-of-range
// fields with their defaults. A zero chance in an otherwise set Rules is kept.
//
// Postcondition: MaxMonstersPerRoom is in [1, RoomCap].
func (r Rules) normalized() Rules {
	d := DefaultRules()
	if r == (Rules{}) {
		return d
	}
	if r.FleeChance < 0 || r.FleeChance > 100 {
		r.FleeChance = d.FleeChance
	}
	if r.ExtraMonsterChance < 0 || r.ExtraMonsterChance > 100 {
		r.ExtraMonsterChance = d.ExtraMonsterChance
	}
	if r.MaxMonstersPerRoom < 1 {
		r.MaxMonstersPerRoom = d.MaxMonstersPerRoom
	}
	r.MaxMonstersPerRoom = min(r.MaxMonstersPerRoom, RoomCap)
	return r
}
