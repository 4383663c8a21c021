package monster

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// Monster is a live monster in one room's roster. It is owned by a single
// encounter and is not safe for concurrent use.
type Monster struct {
	// ID uniquely identifies this runtime instance.
	ID      string
	Name    string
	Species Species

	Health     int
	MaxHealth  int
	BaseDamage int

	GoldDrop      int
	DropChance    int
	PossibleDrops []inventory.Item

	// RegenerationAmount is 0 for species without regeneration.
	RegenerationAmount int
	HasRegenerated     bool

	profile *Profile
}

// New builds a monster directly from a profile, bypassing a Bestiary.
// Drops are supplied by the caller.
//
// Precondition: p must be valid.
func New(name string, p *Profile, difficulty int, drops []inventory.Item) *Monster {
	difficulty = max(1, difficulty)
	health := max(1, p.Health.At(difficulty))
	m := &Monster{
		ID:            uuid.New().String(),
		Name:          name,
		Species:       p.Species,
		Health:        health,
		MaxHealth:     health,
		BaseDamage:    max(0, p.Damage.At(difficulty)),
		GoldDrop:      max(0, p.Gold.At(difficulty)),
		DropChance:    p.DropChance,
		PossibleDrops: drops,
		profile:       p,
	}
	if p.Regenerates() {
		m.RegenerationAmount = p.Regeneration.At(difficulty)
	}
	return m
}

// Profile returns the species profile the monster was built from.
func (m *Monster) Profile() *Profile { return m.profile }

// Alive reports whether Health > 0.
func (m *Monster) Alive() bool { return m.Health > 0 }

// DamageResult reports the effect of one ApplyDamage call.
type DamageResult struct {
	// Dealt is the health actually removed.
	Dealt int
	// Regenerated is the health restored by a regeneration triggered by this hit.
	Regenerated int
}

// ApplyDamage removes n health, flooring at 0. A regenerating monster that
// survives the hit with health below half of max, and has not regenerated
// yet, immediately heals RegenerationAmount (capped at MaxHealth) and never
// regenerates again.
//
// Postcondition: negative n is ignored; 0 <= Health <= MaxHealth.
func (m *Monster) ApplyDamage(n int) DamageResult {
	if n < 0 {
		return DamageResult{}
	}
	before := m.Health
	m.Health = max(0, m.Health-n)
	res := DamageResult{Dealt: before - m.Health}

	if m.Alive() && m.RegenerationAmount > 0 && !m.HasRegenerated && m.Health < m.MaxHealth/2 {
		m.HasRegenerated = true
		healed := min(m.MaxHealth, m.Health+m.RegenerationAmount)
		res.Regenerated = healed - m.Health
		m.Health = healed
	}
	return res
}

// DeathCry picks a defeat line for the monster, or "" when the species stays quiet.
func (m *Monster) DeathCry(src dice.Source) string {
	p := m.profile
	if p == nil || len(p.DeathCries) == 0 || !dice.Percent(src, p.DeathCryChance) {
		return ""
	}
	return p.DeathCries[src.Intn(len(p.DeathCries))]
}

// Label renders "Species Name", e.g. "Goblin Gruk".
func (m *Monster) Label() string {
	if m.profile == nil || m.profile.DisplayName == m.Name {
		return m.Name
	}
	return m.profile.DisplayName + " " + m.Name
}

// String renders a status line.
func (m *Monster) String() string {
	return fmt.Sprintf("%s [HP: %d/%d, Damage: %d, Gold: %d]", m.Label(), m.Health, m.MaxHealth, m.BaseDamage, m.GoldDrop)
}
