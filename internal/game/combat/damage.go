package combat

import (
	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

// VariancePolicy spreads a base damage value into a single random roll.
type VariancePolicy func(base int, src dice.Source) int

// AdditivePolicy rolls base + Intn(sides) + flat. Class attacks use it.
//
// Precondition: sides >= 1.
func AdditivePolicy(sides, flat int) VariancePolicy {
	return func(base int, src dice.Source) int {
		return base + src.Intn(sides) + flat
	}
}

// PercentPolicy rolls base ± floor(base*pct/100), uniformly.
func PercentPolicy(pct int) VariancePolicy {
	return func(base int, src dice.Source) int {
		variance := base * pct / 100
		return base + src.Intn(2*variance+1) - variance
	}
}

// DefaultPolicy is the ±20% spread used when a species sets no variance of its own.
var DefaultPolicy = PercentPolicy(20)

// CalculateDamage applies policy to baseDamage.
//
// Precondition: policy and src are non-nil.
// Postcondition: result >= 1; negative baseDamage is treated as 0.
func CalculateDamage(baseDamage int, policy VariancePolicy, src dice.Source) int {
	return max(1, policy(max(0, baseDamage), src))
}

// StrikeKind labels how an attack resolved.
type StrikeKind int

const (
	StrikeNormal StrikeKind = iota
	// StrikeSpell is a Mage attack paid for with mana.
	StrikeSpell
	// StrikeStaff is a Mage attack made without enough mana for a spell.
	StrikeStaff
	// StrikeCrit is a furious hit carrying a flat bonus.
	StrikeCrit
	// StrikeMiss deals no damage at all.
	StrikeMiss
	// StrikeDevastating multiplies the final damage.
	StrikeDevastating
	// StrikeTremor is a flavor event with unmodified damage.
	StrikeTremor
)

// String returns a human-readable strike label.
func (k StrikeKind) String() string {
	switch k {
	case StrikeNormal:
		return "normal"
	case StrikeSpell:
		return "spell"
	case StrikeStaff:
		return "staff"
	case StrikeCrit:
		return "critical"
	case StrikeMiss:
		return "miss"
	case StrikeDevastating:
		return "devastating"
	case StrikeTremor:
		return "tremor"
	default:
		return "unknown"
	}
}

// Strike is one computed attack.
type Strike struct {
	Damage int
	Kind   StrikeKind
}

// Class attack policies.
var (
	warriorPolicy = AdditivePolicy(5, 0)
	spellPolicy   = AdditivePolicy(10, 5)
	staffPolicy   = AdditivePolicy(3, 0)
)

// PlayerStrike computes a player attack against base BaseDamage + EquipmentBonus.
// A Mage with at least SpellManaCost mana casts a spell and pays the mana;
// otherwise the Mage swings a staff. Stamina is not touched here.
//
// Postcondition: Damage >= 1.
func PlayerStrike(c *character.Character, src dice.Source) Strike {
	base := c.BaseDamage() + c.EquipmentBonus()
	switch c.Class() {
	case character.ClassMage:
		if c.SpendMana(character.SpellManaCost) {
			return Strike{Damage: CalculateDamage(base, spellPolicy, src), Kind: StrikeSpell}
		}
		return Strike{Damage: CalculateDamage(base, staffPolicy, src), Kind: StrikeStaff}
	default:
		return Strike{Damage: CalculateDamage(base, warriorPolicy, src), Kind: StrikeNormal}
	}
}

// MonsterStrike computes a monster attack: species variance first, then the
// species overlays, each an independent Intn(100) roll.
//
// Postcondition: Damage >= 1, except Kind == StrikeMiss where Damage == 0.
func MonsterStrike(m *monster.Monster, src dice.Source) Strike {
	p := m.Profile()
	policy := DefaultPolicy
	if p != nil && p.VariancePercent > 0 {
		policy = PercentPolicy(p.VariancePercent)
	}
	s := Strike{Damage: CalculateDamage(m.BaseDamage, policy, src), Kind: StrikeNormal}
	if p == nil {
		return s
	}

	switch {
	case p.CritChance > 0 && dice.Percent(src, p.CritChance):
		s.Damage += p.CritBonus
		s.Kind = StrikeCrit
	case p.MissChance > 0 && dice.Percent(src, p.MissChance):
		return Strike{Damage: 0, Kind: StrikeMiss}
	}

	switch {
	case p.DevastatingChance > 0 && dice.Percent(src, p.DevastatingChance):
		s.Damage *= p.DevastatingMultiplier
		s.Kind = StrikeDevastating
	case p.TremorChance > 0 && dice.Percent(src, p.TremorChance):
		s.Kind = StrikeTremor
	}
	return s
}
