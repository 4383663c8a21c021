package monster

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// Bestiary resolves species to profiles and spawns monsters from them.
// It is read-only after setup and safe to share between sessions.
type Bestiary struct {
	profiles map[Species]*Profile
	items    *inventory.Registry
}

// NewBestiary creates an empty Bestiary that resolves drops through items.
//
// Precondition: items must not be nil.
func NewBestiary(items *inventory.Registry) *Bestiary {
	return &Bestiary{profiles: make(map[Species]*Profile), items: items}
}

// NewBuiltinBestiary returns a Bestiary holding BuiltinProfiles.
func NewBuiltinBestiary(items *inventory.Registry) *Bestiary {
	b := NewBestiary(items)
	for _, p := range BuiltinProfiles() {
		b.profiles[p.Species] = p
	}
	return b
}

// Register adds or replaces the profile for p.Species after checking that
// every drop resolves.
//
// Postcondition: on error the bestiary is unchanged.
func (b *Bestiary) Register(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if _, err := b.items.Resolve(p.Drops); err != nil {
		return fmt.Errorf("species %q: %w", p.Species, err)
	}
	b.profiles[Normalize(string(p.Species))] = p
	return nil
}

// Profile returns the profile registered for s.
func (b *Bestiary) Profile(s Species) (*Profile, bool) {
	p, ok := b.profiles[Normalize(string(s))]
	return p, ok
}

// Species returns every registered species in sorted order.
func (b *Bestiary) Species() []Species {
	out := make([]Species, 0, len(b.profiles))
	for s := range b.profiles {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Spawn creates a monster of species s scaled to difficulty.
//
// Precondition: src must be non-nil.
// Postcondition: returns ErrUnknownSpecies for an unregistered species;
// otherwise Health == MaxHealth >= 1 and HasRegenerated is false.
func (b *Bestiary) Spawn(s Species, difficulty int, src dice.Source) (*Monster, error) {
	p, ok := b.Profile(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, s)
	}
	drops, err := b.items.Resolve(p.Drops)
	if err != nil {
		return nil, fmt.Errorf("spawning %q: %w", s, err)
	}

	name := p.DisplayName
	if len(p.Names) > 0 {
		name = p.Names[src.Intn(len(p.Names))]
	}
	return New(name, p, difficulty, drops), nil
}
