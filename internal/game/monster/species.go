// Package monster defines monster species profiles and live monster instances.
package monster

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Species tags a monster kind. Behavior differences between species are
// carried entirely by their Profile.
type Species string

// Built-in species.
const (
	SpeciesGoblin  Species = "goblin"
	SpeciesTroll   Species = "troll"
	SpeciesMonster Species = "monster"
)

// ErrUnknownSpecies is returned when spawning a species with no registered profile.
var ErrUnknownSpecies = errors.New("monster: unknown species")

// Normalize lower-cases and trims s so "Goblin " and "goblin" match.
func Normalize(s string) Species {
	return Species(strings.ToLower(strings.TrimSpace(s)))
}

// Scaling is a linear stat formula: Base + difficulty*PerLevel.
type Scaling struct {
	Base     int `yaml:"base"`
	PerLevel int `yaml:"per_level"`
}

// At evaluates the formula for difficulty.
func (s Scaling) At(difficulty int) int {
	return s.Base + difficulty*s.PerLevel
}

// Profile is the parameter block for one species: stat scaling, damage
// variance, attack overlays, loot and regeneration.
type Profile struct {
	Species     Species `yaml:"species"`
	DisplayName string  `yaml:"display_name"`

	Health Scaling `yaml:"health"`
	Damage Scaling `yaml:"damage"`
	Gold   Scaling `yaml:"gold"`

	// DropChance is the percent chance each possible drop is awarded.
	DropChance int `yaml:"drop_chance"`
	// Drops lists item IDs in award order.
	Drops []string `yaml:"drops"`

	// VariancePercent is the symmetric damage spread, e.g. 50 for ±50%.
	VariancePercent int `yaml:"variance_percent"`

	// Overlays rolled after base variance. A crit adds CritBonus; a miss
	// deals 0; a devastating hit multiplies by DevastatingMultiplier; a
	// tremor changes nothing but is reported.
	CritChance            int `yaml:"crit_chance"`
	CritBonus             int `yaml:"crit_bonus"`
	MissChance            int `yaml:"miss_chance"`
	DevastatingChance     int `yaml:"devastating_chance"`
	DevastatingMultiplier int `yaml:"devastating_multiplier"`
	TremorChance          int `yaml:"tremor_chance"`

	// Regeneration heals once when health first falls below half. Zero disables it.
	Regeneration Scaling `yaml:"regeneration"`

	Names          []string `yaml:"names"`
	DeathCries     []string `yaml:"death_cries"`
	DeathCryChance int      `yaml:"death_cry_chance"`
}

// Regenerates reports whether the species has the one-time regeneration ability.
func (p *Profile) Regenerates() bool {
	return p.Regeneration.Base > 0 || p.Regeneration.PerLevel > 0
}

// Validate checks that the profile satisfies its invariants.
//
// Precondition: p must not be nil.
// Postcondition: Returns nil iff every field is in range.
func (p *Profile) Validate() error {
	var errs []string
	if p.Species == "" {
		errs = append(errs, "species must not be empty")
	}
	if p.DisplayName == "" {
		errs = append(errs, "display_name must not be empty")
	}
	if p.Health.Base < 1 || p.Health.PerLevel < 0 {
		errs = append(errs, "health must have base >= 1 and per_level >= 0")
	}
	if p.Damage.Base < 0 || p.Damage.PerLevel < 0 {
		errs = append(errs, "damage must not be negative")
	}
	if p.Gold.Base < 0 || p.Gold.PerLevel < 0 {
		errs = append(errs, "gold must not be negative")
	}
	if p.Regeneration.Base < 0 || p.Regeneration.PerLevel < 0 {
		errs = append(errs, "regeneration must not be negative")
	}
	for name, v := range map[string]int{
		"drop_chance":        p.DropChance,
		"variance_percent":   p.VariancePercent,
		"crit_chance":        p.CritChance,
		"miss_chance":        p.MissChance,
		"devastating_chance": p.DevastatingChance,
		"tremor_chance":      p.TremorChance,
		"death_cry_chance":   p.DeathCryChance,
	} {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Sprintf("%s must be 0-100, got %d", name, v))
		}
	}
	if p.CritBonus < 0 {
		errs = append(errs, "crit_bonus must be >= 0")
	}
	if p.DevastatingChance > 0 && p.DevastatingMultiplier < 1 {
		errs = append(errs, "devastating_multiplier must be >= 1 when devastating_chance is set")
	}
	if len(errs) > 0 {
		return fmt.Errorf("species %q: %s", p.Species, strings.Join(errs, "; "))
	}
	return nil
}

// LoadProfileFromBytes parses a single species profile from raw YAML bytes.
//
// Postcondition: Returns a validated *Profile with a normalized Species, or an error.
func LoadProfileFromBytes(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing species YAML: %w", err)
	}
	p.Species = Normalize(string(p.Species))
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadSpeciesDir reads all *.yaml files in dir and returns the parsed profiles.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all profiles or an error on the first parse or validate failure.
func LoadSpeciesDir(dir string) ([]*Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading species dir %q: %w", dir, err)
	}

	var profiles []*Profile
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		p, err := LoadProfileFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}
