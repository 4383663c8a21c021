package character

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// ErrTooTired is returned by Train when stamina is below TrainCost.
var ErrTooTired = errors.New("character: not enough stamina")

// Character is a player character. All methods are safe for concurrent use:
// the stamina recovery timer writes through the same mutex a session does.
type Character struct {
	mu sync.Mutex

	id         int64
	name       string
	class      Class
	level      int
	experience int
	health     int
	maxHealth  int
	stamina    int
	maxStamina int
	mana       int
	maxMana    int
	baseDamage int
	gold       int
	inv        *inventory.Inventory
	createdAt  time.Time

	observers []StaminaObserver
}

// New creates a fresh level-1 character with the class's starting profile.
//
// Precondition: name is non-blank; class is ClassWarrior or ClassMage.
// Postcondition: Health == MaxHealth, Stamina == MaxStamina, Gold == StartingGold.
func New(name string, class Class) (*Character, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("character: name must not be empty")
	}
	p, ok := profiles[class]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	return &Character{
		name:       name,
		class:      class,
		level:      StartingLevel,
		health:     p.MaxHealth,
		maxHealth:  p.MaxHealth,
		stamina:    p.MaxStamina,
		maxStamina: p.MaxStamina,
		mana:       p.MaxMana,
		maxMana:    p.MaxMana,
		baseDamage: p.BaseDamage,
		gold:       StartingGold,
		inv:        inventory.New(inventory.DefaultCapacity),
		createdAt:  time.Now(),
	}, nil
}

// Restore rebuilds a character from a persisted snapshot.
//
// Postcondition: returns an error if the snapshot violates any invariant.
func Restore(s Snapshot) (*Character, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	inv, err := inventory.Restore(inventory.DefaultCapacity, s.Inventory)
	if err != nil {
		return nil, fmt.Errorf("restoring character %q: %w", s.Name, err)
	}
	created := s.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	return &Character{
		id:         s.ID,
		name:       strings.TrimSpace(s.Name),
		class:      s.Class,
		level:      s.Level,
		experience: s.Experience,
		health:     s.Health,
		maxHealth:  s.MaxHealth,
		stamina:    s.Stamina,
		maxStamina: s.MaxStamina,
		mana:       s.Mana,
		maxMana:    s.MaxMana,
		baseDamage: s.BaseDamage,
		gold:       s.Gold,
		inv:        inv,
		createdAt:  created,
	}, nil
}

// Snapshot captures the character's current state.
func (c *Character) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		ID:         c.id,
		Name:       c.name,
		Class:      c.class,
		Level:      c.level,
		Experience: c.experience,
		Health:     c.health,
		MaxHealth:  c.maxHealth,
		Stamina:    c.stamina,
		MaxStamina: c.maxStamina,
		Mana:       c.mana,
		MaxMana:    c.maxMana,
		BaseDamage: c.baseDamage,
		Gold:       c.gold,
		Inventory:  c.inv.Entries(),
		CreatedAt:  c.createdAt,
	}
}

// ID returns the persistence ID; 0 means the character was never saved.
func (c *Character) ID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.id
}

// SetID records the ID assigned by a repository.
func (c *Character) SetID(id int64) {
	c.mu.Lock()
	c.id = id
	c.mu.Unlock()
}

// Name returns the character name.
func (c *Character) Name() string { return c.name }

// Class returns the character class.
func (c *Character) Class() Class { return c.class }

func (c *Character) Level() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.level
}

func (c *Character) Experience() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.experience
}

func (c *Character) Health() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.health
}

func (c *Character) MaxHealth() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxHealth
}

func (c *Character) Stamina() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stamina
}

func (c *Character) MaxStamina() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxStamina
}

func (c *Character) Mana() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mana
}

func (c *Character) MaxMana() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.maxMana
}

func (c *Character) BaseDamage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.baseDamage
}

func (c *Character) Gold() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gold
}

// Alive reports whether Health > 0.
func (c *Character) Alive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.health > 0
}

// EquipmentBonus is the summed stat bonus of equipped items.
func (c *Character) EquipmentBonus() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inv.TotalStatBonus()
}

// StaminaCost is the stamina an attack costs for this class.
func (c *Character) StaminaCost() int { return profiles[c.class].StaminaCost }

// RecoveryRate is the stamina restored per recovery tick for this class.
func (c *Character) RecoveryRate() int { return profiles[c.class].Recovery }

// ApplyDamage subtracts n from health, flooring at 0.
//
// Postcondition: negative n is ignored; returns the health actually lost.
func (c *Character) ApplyDamage(n int) int {
	if n < 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	before := c.health
	c.health = max(0, c.health-n)
	return before - c.health
}

// Heal adds n health, capped at MaxHealth. Dead characters cannot be healed.
//
// Postcondition: negative n is ignored; returns the health actually gained.
func (c *Character) Heal(n int) int {
	if n < 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.health == 0 {
		return 0
	}
	before := c.health
	c.health = min(c.maxHealth, c.health+n)
	return c.health - before
}

// SpendStamina debits n stamina if available.
//
// Postcondition: returns false and leaves stamina unchanged when Stamina < n.
func (c *Character) SpendStamina(n int) bool {
	if n < 0 {
		return false
	}
	c.mu.Lock()
	if c.stamina < n {
		c.mu.Unlock()
		return false
	}
	before := c.stamina
	c.stamina -= n
	after := c.stamina
	obs := c.observerList()
	c.mu.Unlock()

	notifyChanged(obs, c, before, after)
	return true
}

// RestoreStamina adds n stamina, capped at MaxStamina.
//
// Postcondition: negative n is ignored; returns the stamina actually restored.
func (c *Character) RestoreStamina(n int) int {
	if n < 0 {
		return 0
	}
	c.mu.Lock()
	before := c.stamina
	c.stamina = min(c.maxStamina, c.stamina+n)
	after := c.stamina
	obs := c.observerList()
	c.mu.Unlock()

	if after != before {
		notifyChanged(obs, c, before, after)
	}
	return after - before
}

// Recover applies one recovery tick: living characters below max stamina
// regain RecoveryRate stamina and observers are told about the recovery.
//
// Postcondition: returns the stamina restored; 0 means nothing happened.
func (c *Character) Recover() int {
	c.mu.Lock()
	if c.health == 0 || c.stamina >= c.maxStamina {
		c.mu.Unlock()
		return 0
	}
	before := c.stamina
	c.stamina = min(c.maxStamina, c.stamina+profiles[c.class].Recovery)
	after := c.stamina
	obs := c.observerList()
	c.mu.Unlock()

	notifyChanged(obs, c, before, after)
	for _, o := range obs {
		o.StaminaRecovered(c, after-before)
	}
	return after - before
}

// SpendMana debits n mana if available.
//
// Postcondition: returns false and leaves mana unchanged when Mana < n.
func (c *Character) SpendMana(n int) bool {
	if n < 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mana < n {
		return false
	}
	c.mana -= n
	return true
}

// AddGold credits n gold. Negative n is ignored.
func (c *Character) AddGold(n int) {
	if n <= 0 {
		return
	}
	c.mu.Lock()
	c.gold += n
	c.mu.Unlock()
}

// SpendGold debits n gold if the purse holds enough.
func (c *Character) SpendGold(n int) bool {
	if n < 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gold < n {
		return false
	}
	c.gold -= n
	return true
}

// AddExperience credits n experience and recomputes the level.
//
// Postcondition: returns the number of levels gained.
func (c *Character) AddExperience(n int) int {
	if n <= 0 {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.experience += n
	newLevel := StartingLevel + c.experience/ExperiencePerLevel
	if newLevel <= c.level {
		return 0
	}
	gained := newLevel - c.level
	c.level = newLevel
	return gained
}

// Rest fully restores health and stamina, and mana for a Mage.
func (c *Character) Rest() {
	c.mu.Lock()
	before := c.stamina
	c.health = c.maxHealth
	c.stamina = c.maxStamina
	c.mana = c.maxMana
	after := c.stamina
	obs := c.observerList()
	c.mu.Unlock()

	if after != before {
		notifyChanged(obs, c, before, after)
	}
}

// Train spends TrainCost stamina on a class-specific improvement.
// Warriors gain 2 damage and 5 max health and are fully healed; Mages gain
// 1 damage, 10 max mana (refilled) and 5 max stamina. Every session then
// lowers max stamina by 2, never below MinTrainedStamina.
//
// Postcondition: returns ErrTooTired and changes nothing when Stamina < TrainCost.
func (c *Character) Train() error {
	c.mu.Lock()
	if c.stamina < TrainCost {
		c.mu.Unlock()
		return ErrTooTired
	}
	before := c.stamina
	switch c.class {
	case ClassWarrior:
		c.baseDamage += 2
		c.maxHealth += 5
		c.health = c.maxHealth
	case ClassMage:
		c.baseDamage++
		c.maxMana += 10
		c.mana = c.maxMana
		c.maxStamina += 5
	}
	c.stamina -= TrainCost
	c.maxStamina = max(MinTrainedStamina, c.maxStamina-2)
	c.stamina = min(c.stamina, c.maxStamina)
	after := c.stamina
	obs := c.observerList()
	c.mu.Unlock()

	notifyChanged(obs, c, before, after)
	return nil
}

// String renders a one-line status summary.
func (c *Character) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.class == ClassMage {
		return fmt.Sprintf("Mage %s [HP: %d/%d, Stamina: %d/%d, Mana: %d/%d, Power: %d, Gold: %d, Level: %d]",
			c.name, c.health, c.maxHealth, c.stamina, c.maxStamina, c.mana, c.maxMana,
			c.baseDamage+c.inv.TotalStatBonus(), c.gold, c.level)
	}
	return fmt.Sprintf("%s %s [HP: %d/%d, Stamina: %d/%d, Damage: %d, Gold: %d, Level: %d]",
		c.class.DisplayName(), c.name, c.health, c.maxHealth, c.stamina, c.maxStamina,
		c.baseDamage+c.inv.TotalStatBonus(), c.gold, c.level)
}
