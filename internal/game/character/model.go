// Package character defines the player character model: class profiles,
// stamina and mana bookkeeping, gold, experience and the owned inventory.
package character

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// Class identifies a character class.
type Class string

// Supported classes.
const (
	ClassWarrior Class = "warrior"
	ClassMage    Class = "mage"
)

// ErrUnknownClass is returned when a class name does not match any profile.
var ErrUnknownClass = errors.New("character: unknown class")

// ParseClass maps user input such as "Warrior" or "mage" to a Class.
func ParseClass(s string) (Class, error) {
	switch c := Class(strings.ToLower(strings.TrimSpace(s))); c {
	case ClassWarrior, ClassMage:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownClass, s)
}

// DisplayName returns the capitalised class name.
func (c Class) DisplayName() string {
	switch c {
	case ClassWarrior:
		return "Warrior"
	case ClassMage:
		return "Mage"
	}
	return string(c)
}

// Profile holds the starting stats and combat costs of a class.
type Profile struct {
	MaxHealth   int
	MaxStamina  int
	BaseDamage  int
	MaxMana     int
	StaminaCost int
	// Recovery is the stamina restored per recovery tick.
	Recovery int
}

var profiles = map[Class]Profile{
	ClassWarrior: {MaxHealth: 120, MaxStamina: 100, BaseDamage: 15, StaminaCost: 5, Recovery: 2},
	ClassMage:    {MaxHealth: 80, MaxStamina: 120, BaseDamage: 10, MaxMana: 50, StaminaCost: 3, Recovery: 3},
}

// ProfileFor returns the profile of c.
//
// Postcondition: ok is false iff c is not a known class.
func ProfileFor(c Class) (Profile, bool) {
	p, ok := profiles[c]
	return p, ok
}

// Starting values shared by every class.
const (
	StartingGold  = 100
	StartingLevel = 1
	// ExperiencePerLevel is the experience needed for each level after the first.
	ExperiencePerLevel = 100
	// TrainCost is the stamina a training session consumes.
	TrainCost = 10
	// MinTrainedStamina floors the max stamina lost to training.
	MinTrainedStamina = 50
	// SpellManaCost is the mana a Mage spends per spell.
	SpellManaCost = 10
)

// Snapshot is the persisted stat block of a character. It is the explicit
// constructor input for Restore and the unit of storage for repositories.
type Snapshot struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Class      Class             `json:"class"`
	Level      int               `json:"level"`
	Experience int               `json:"experience"`
	Health     int               `json:"health"`
	MaxHealth  int               `json:"max_health"`
	Stamina    int               `json:"stamina"`
	MaxStamina int               `json:"max_stamina"`
	Mana       int               `json:"mana"`
	MaxMana    int               `json:"max_mana"`
	BaseDamage int               `json:"base_damage"`
	Gold       int               `json:"gold"`
	Inventory  []inventory.Entry `json:"inventory"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Validate checks the snapshot invariants Restore relies on.
//
// Postcondition: returns nil iff the snapshot can be restored.
func (s Snapshot) Validate() error {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name must not be empty")
	}
	if _, ok := profiles[s.Class]; !ok {
		errs = append(errs, fmt.Sprintf("unknown class %q", s.Class))
	}
	if s.MaxHealth < 1 {
		errs = append(errs, fmt.Sprintf("max_health must be >= 1, got %d", s.MaxHealth))
	}
	if s.Health < 0 || s.Health > s.MaxHealth {
		errs = append(errs, fmt.Sprintf("health must be in [0, %d], got %d", s.MaxHealth, s.Health))
	}
	if s.MaxStamina < 0 || s.Stamina < 0 || s.Stamina > s.MaxStamina {
		errs = append(errs, fmt.Sprintf("stamina must be in [0, %d], got %d", s.MaxStamina, s.Stamina))
	}
	if s.MaxMana < 0 || s.Mana < 0 || s.Mana > s.MaxMana {
		errs = append(errs, fmt.Sprintf("mana must be in [0, %d], got %d", s.MaxMana, s.Mana))
	}
	if s.BaseDamage < 0 {
		errs = append(errs, fmt.Sprintf("base_damage must be >= 0, got %d", s.BaseDamage))
	}
	if s.Gold < 0 {
		errs = append(errs, fmt.Sprintf("gold must be >= 0, got %d", s.Gold))
	}
	if s.Experience < 0 {
		errs = append(errs, fmt.Sprintf("experience must be >= 0, got %d", s.Experience))
	}
	if s.Level < 1 {
		errs = append(errs, fmt.Sprintf("level must be >= 1, got %d", s.Level))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid character snapshot: %s", strings.Join(errs, "; "))
	}
	return nil
}
