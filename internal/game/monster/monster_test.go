package monster_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/monster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

func newBestiary() *monster.Bestiary {
	return monster.NewBuiltinBestiary(inventory.NewBuiltinRegistry())
}

func TestSpawn_GoblinScaling(t *testing.T) {
	b := newBestiary()
	m, err := b.Spawn(monster.SpeciesGoblin, 2, fixedSrc{val: 0})
	require.NoError(t, err)
	assert.Equal(t, "Gruk", m.Name)
	assert.Equal(t, 21, m.MaxHealth)
	assert.Equal(t, 21, m.Health)
	assert.Equal(t, 5, m.BaseDamage)
	assert.Equal(t, 12, m.GoldDrop)
	assert.Equal(t, 40, m.DropChance)
	assert.Zero(t, m.RegenerationAmount)
	require.Len(t, m.PossibleDrops, 3)
	assert.Equal(t, "Small Healing Potion", m.PossibleDrops[0].Name)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "Goblin Gruk", m.Label())
}

func TestSpawn_TrollScaling(t *testing.T) {
	b := newBestiary()
	m, err := b.Spawn("Troll", 2, fixedSrc{val: 9})
	require.NoError(t, err)
	assert.Equal(t, "Mireking", m.Name)
	assert.Equal(t, 51, m.MaxHealth)
	assert.Equal(t, 12, m.BaseDamage)
	assert.Equal(t, 45, m.GoldDrop)
	assert.Equal(t, 7, m.RegenerationAmount)
	assert.False(t, m.HasRegenerated)
	assert.Len(t, m.PossibleDrops, 7)
}

func TestSpawn_GenericMonster(t *testing.T) {
	m, err := newBestiary().Spawn(monster.SpeciesMonster, 1, fixedSrc{val: 1})
	require.NoError(t, err)
	assert.Equal(t, 24, m.MaxHealth)
	assert.Equal(t, 5, m.BaseDamage)
	assert.Equal(t, 13, m.GoldDrop)
	assert.Equal(t, 30, m.DropChance)
}

func TestSpawn_DifficultyFloor(t *testing.T) {
	m, err := newBestiary().Spawn(monster.SpeciesGoblin, -4, fixedSrc{val: 0})
	require.NoError(t, err)
	assert.Equal(t, 18, m.MaxHealth, "difficulty below 1 is raised to 1")
}

func TestSpawn_UnknownSpecies(t *testing.T) {
	_, err := newBestiary().Spawn("dragon", 1, fixedSrc{val: 0})
	assert.True(t, errors.Is(err, monster.ErrUnknownSpecies))
}

// TestTrollRegeneration checks that a Troll with max 60 and regeneration 10
// heals once when first dropping below 30, and never again.
func TestTrollRegeneration(t *testing.T) {
	m := &monster.Monster{Name: "Mossback", Species: monster.SpeciesTroll, Health: 60, MaxHealth: 60, RegenerationAmount: 10}

	res := m.ApplyDamage(30)
	assert.Equal(t, 30, m.Health, "exactly half does not trigger")
	assert.Zero(t, res.Regenerated)
	assert.False(t, m.HasRegenerated)

	res = m.ApplyDamage(5)
	assert.Equal(t, 5, res.Dealt)
	assert.Equal(t, 10, res.Regenerated)
	assert.Equal(t, 35, m.Health)
	assert.True(t, m.HasRegenerated)

	res = m.ApplyDamage(10)
	assert.Zero(t, res.Regenerated)
	assert.Equal(t, 25, m.Health, "second drop below half does not heal")
}

func TestTrollRegeneration_ClampedToMax(t *testing.T) {
	m := &monster.Monster{Health: 60, MaxHealth: 60, RegenerationAmount: 100}
	res := m.ApplyDamage(31)
	assert.Equal(t, 60, m.Health)
	assert.Equal(t, 31, res.Regenerated)
}

func TestTrollRegeneration_NotWhenKilled(t *testing.T) {
	m := &monster.Monster{Health: 60, MaxHealth: 60, RegenerationAmount: 10}
	m.ApplyDamage(100)
	assert.Equal(t, 0, m.Health)
	assert.False(t, m.HasRegenerated)
	assert.False(t, m.Alive())
}

func TestApplyDamage_NegativeIgnored(t *testing.T) {
	m := &monster.Monster{Health: 10, MaxHealth: 10}
	res := m.ApplyDamage(-3)
	assert.Zero(t, res.Dealt)
	assert.Equal(t, 10, m.Health)
}

func TestProperty_RegenerationAtMostOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(2, 200).Draw(rt, "max")
		regen := rapid.IntRange(1, 50).Draw(rt, "regen")
		m := &monster.Monster{Health: maxHP, MaxHealth: maxHP, RegenerationAmount: regen}
		regens := 0
		for _, hit := range rapid.SliceOfN(rapid.IntRange(0, 40), 1, 30).Draw(rt, "hits") {
			if m.ApplyDamage(hit).Regenerated > 0 {
				regens++
			}
			if m.Health < 0 || m.Health > m.MaxHealth {
				rt.Fatalf("health %d outside [0, %d]", m.Health, m.MaxHealth)
			}
		}
		if regens > 1 {
			rt.Fatalf("regenerated %d times", regens)
		}
	})
}

func TestDeathCry(t *testing.T) {
	b := newBestiary()
	troll, _ := b.Spawn(monster.SpeciesTroll, 1, fixedSrc{val: 0})
	assert.NotEmpty(t, troll.DeathCry(fixedSrc{val: 0}), "trolls always cry out")

	goblin, _ := b.Spawn(monster.SpeciesGoblin, 1, fixedSrc{val: 0})
	assert.Empty(t, goblin.DeathCry(fixedSrc{val: 50}), "roll 50 misses the 30% chance")
	assert.NotEmpty(t, goblin.DeathCry(fixedSrc{val: 1}))

	generic, _ := b.Spawn(monster.SpeciesMonster, 1, fixedSrc{val: 0})
	assert.Empty(t, generic.DeathCry(fixedSrc{val: 0}))
}

func TestBuiltinProfilesValidate(t *testing.T) {
	for _, p := range monster.BuiltinProfiles() {
		assert.NoError(t, p.Validate(), "profile %s", p.Species)
	}
	assert.Equal(t, []monster.Species{"goblin", "monster", "troll"}, newBestiary().Species())
}

func TestRegister_UnknownDrop(t *testing.T) {
	b := newBestiary()
	p := &monster.Profile{
		Species: "skeleton", DisplayName: "Skeleton",
		Health: monster.Scaling{Base: 10}, Drops: []string{"femur"},
	}
	assert.Error(t, b.Register(p))
	_, ok := b.Profile("skeleton")
	assert.False(t, ok)
}

func TestLoadSpeciesDir(t *testing.T) {
	dir := t.TempDir()
	content := `species: Skeleton
display_name: Skeleton
health: {base: 12, per_level: 2}
damage: {base: 4, per_level: 1}
gold: {base: 6, per_level: 2}
drop_chance: 25
drops: [goblin_tooth]
variance_percent: 20
miss_chance: 5
names: [Rattles, Clank]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skeleton.yaml"), []byte(content), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("skip"), 0644))

	profiles, err := monster.LoadSpeciesDir(dir)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, monster.Species("skeleton"), profiles[0].Species)

	b := newBestiary()
	require.NoError(t, b.Register(profiles[0]))
	m, err := b.Spawn("skeleton", 2, dice.NewSeededSource(1))
	require.NoError(t, err)
	assert.Equal(t, 16, m.MaxHealth)
	assert.Contains(t, []string{"Rattles", "Clank"}, m.Name)
}

func TestLoadProfileFromBytes_Invalid(t *testing.T) {
	_, err := monster.LoadProfileFromBytes([]byte("species: imp\ndisplay_name: Imp\nhealth: {base: 0}\n"))
	assert.Error(t, err)
	_, err = monster.LoadProfileFromBytes([]byte("species: imp\ndisplay_name: Imp\nhealth: {base: 5}\ndrop_chance: 150\n"))
	assert.Error(t, err)
	_, err = monster.LoadProfileFromBytes([]byte(":::"))
	assert.Error(t, err)
}
