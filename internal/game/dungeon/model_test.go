package dungeon_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/delve/internal/game/dungeon"
)

func TestBuiltinDungeons(t *testing.T) {
	c := dungeon.NewBuiltinCatalog()
	require.Equal(t, 2, c.Len())

	cave, ok := c.Get(dungeon.GoblinCaveID)
	require.True(t, ok)
	assert.Equal(t, "Goblin Cave", cave.Name)
	assert.Equal(t, 4, cave.RoomCount)
	assert.Equal(t, 150, cave.GoldReward)
	assert.Equal(t, 100, cave.ExpReward)
	assert.Equal(t, 2, cave.MonstersPerRoomBase)
	assert.Equal(t, 1, cave.Difficulty)
	assert.Equal(t, []string{"goblin"}, cave.MonsterTypes)

	swamp, ok := c.Get(dungeon.SwampOfTrollsID)
	require.True(t, ok)
	assert.Equal(t, 6, swamp.RoomCount)
	assert.Equal(t, 400, swamp.GoldReward)
	assert.Equal(t, 300, swamp.ExpReward)
	assert.Equal(t, 1, swamp.MonstersPerRoomBase)
	assert.Equal(t, 2, swamp.Difficulty)
	assert.Equal(t, []string{"troll"}, swamp.MonsterTypes)
}

func TestNormalized_Fallbacks(t *testing.T) {
	d := dungeon.Dungeon{ID: " pit ", Name: "Pit", MonsterTypes: []string{" ", ""}, GoldReward: -5}.Normalized()
	assert.Equal(t, "pit", d.ID)
	assert.Equal(t, 1, d.RoomCount)
	assert.Equal(t, 1, d.MonstersPerRoomBase)
	assert.Equal(t, 1, d.Difficulty)
	assert.Zero(t, d.GoldReward)
	assert.Equal(t, []string{"goblin"}, d.MonsterTypes)
	assert.NoError(t, d.Validate())
}

func TestValidate_ReportsEveryViolation(t *testing.T) {
	err := dungeon.Dungeon{RoomCount: 0, Difficulty: 0}.Validate()
	require.Error(t, err)
	for _, want := range []string{"id must not be empty", "name must not be empty", "room_count", "monster_types", "difficulty"} {
		assert.Contains(t, err.Error(), want)
	}
}

const crypt = `
dungeon:
  id: crypt
  name: Old Crypt
  description: |
    Bones everywhere.
  room_count: 3
  monster_types: [goblin, monster]
  gold_reward: 75
  exp_reward: 50
  monsters_per_room_base: 2
  difficulty: 2
  script_dir: scripts/crypt
`

func TestLoadDungeonFromBytes(t *testing.T) {
	d, err := dungeon.LoadDungeonFromBytes([]byte(crypt))
	require.NoError(t, err)
	assert.Equal(t, "crypt", d.ID)
	assert.Equal(t, "Old Crypt", d.Name)
	assert.Equal(t, "Bones everywhere.", d.Description)
	assert.Equal(t, 3, d.RoomCount)
	assert.Equal(t, []string{"goblin", "monster"}, d.MonsterTypes)
	assert.Equal(t, 75, d.GoldReward)
	assert.Equal(t, 50, d.ExpReward)
	assert.Equal(t, 2, d.MonstersPerRoomBase)
	assert.Equal(t, 2, d.Difficulty)

	plan := d.Plan()
	assert.Equal(t, d.MonsterTypes, plan.MonsterTypes)
	assert.Equal(t, 2, plan.MonstersPerRoomBase)
}

func TestLoadDungeonFromBytes_Errors(t *testing.T) {
	_, err := dungeon.LoadDungeonFromBytes([]byte("dungeon: [unclosed"))
	assert.ErrorContains(t, err, "parsing dungeon YAML")

	_, err = dungeon.LoadDungeonFromBytes([]byte("dungeon:\n  name: Nameless\n"))
	assert.ErrorContains(t, err, "id must not be empty")
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crypt.yaml"), []byte(crypt), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a dungeon"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))

	ds, err := dungeon.LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, ds, 1)
	assert.Equal(t, filepath.Join(dir, "scripts", "crypt"), ds[0].ScriptDir)
}

func TestLoadDir_Empty(t *testing.T) {
	_, err := dungeon.LoadDir(t.TempDir())
	assert.ErrorContains(t, err, "no dungeon files")

	_, err = dungeon.LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCatalog(t *testing.T) {
	_, err := dungeon.NewCatalog(dungeon.BuiltinDungeons()[0], dungeon.BuiltinDungeons()[0])
	assert.ErrorContains(t, err, "duplicate dungeon ID")

	c := dungeon.NewBuiltinCatalog()
	for _, sel := range []string{"1", "goblin_cave", "goblin cave", " Goblin Cave "} {
		d, ok := c.Lookup(sel)
		if assert.True(t, ok, sel) {
			assert.Equal(t, dungeon.GoblinCaveID, d.ID)
		}
	}
	_, ok := c.Lookup("3")
	assert.False(t, ok)
	_, ok = c.Lookup("dragon lair")
	assert.False(t, ok)

	harder := dungeon.BuiltinDungeons()[0]
	harder.Difficulty = 5
	require.NoError(t, c.Override(harder))
	d, _ := c.Lookup("1")
	assert.Equal(t, 5, d.Difficulty, "override keeps catalog position")
	assert.Equal(t, 2, c.Len())

	assert.Error(t, c.Override(dungeon.Dungeon{Name: "no id"}))
}
