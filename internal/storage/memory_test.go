package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/storage"
)

func snapshot(t testing.TB, name string, class character.Class) character.Snapshot {
	c, err := character.New(name, class)
	require.NoError(t, err)
	return c.Snapshot()
}

func TestMemoryStore_SaveAssignsIDAndUpdates(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()

	saved, err := st.Save(ctx, snapshot(t, "Zara", character.ClassWarrior))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.False(t, saved.UpdatedAt.IsZero())

	saved.Gold = 999
	updated, err := st.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, saved.CreatedAt, updated.CreatedAt)

	loaded, err := st.Load(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 999, loaded.Gold)
}

func TestMemoryStore_RoundTripsInventory(t *testing.T) {
	ctx := context.Background()
	c, err := character.New("Aria", character.ClassMage)
	require.NoError(t, err)
	club, _ := inventory.NewBuiltinRegistry().Item(inventory.ItemIronClub)
	e, err := c.AddItem(*club)
	require.NoError(t, err)
	require.NoError(t, c.Equip(e.InstanceID))

	st := storage.NewMemoryStore()
	saved, err := st.Save(ctx, c.Snapshot())
	require.NoError(t, err)
	loaded, err := st.LoadByName(ctx, "aria")
	require.NoError(t, err)

	restored, err := character.Restore(loaded)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, restored.ID())
	assert.Equal(t, c.EquipmentBonus(), restored.EquipmentBonus())
	require.Len(t, restored.Items(), 1)
	assert.True(t, restored.Items()[0].Equipped)
}

func TestMemoryStore_Errors(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	_, err := st.Save(ctx, snapshot(t, "Zara", character.ClassWarrior))
	require.NoError(t, err)

	_, err = st.Save(ctx, snapshot(t, "ZARA", character.ClassMage))
	assert.ErrorIs(t, err, storage.ErrCharacterNameTaken)

	ghost := snapshot(t, "Ghost", character.ClassMage)
	ghost.ID = 42
	_, err = st.Save(ctx, ghost)
	assert.ErrorIs(t, err, storage.ErrCharacterNotFound)

	_, err = st.Load(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrCharacterNotFound)
	_, err = st.LoadByName(ctx, "nobody")
	assert.ErrorIs(t, err, storage.ErrCharacterNotFound)
	assert.ErrorIs(t, st.Delete(ctx, 42), storage.ErrCharacterNotFound)

	bad := snapshot(t, "Bad", character.ClassWarrior)
	bad.Health = -1
	_, err = st.Save(ctx, bad)
	assert.Error(t, err)
}

func TestMemoryStore_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	for _, n := range []string{"A", "B", "C"} {
		_, err := st.Save(ctx, snapshot(t, n, character.ClassWarrior))
		require.NoError(t, err)
	}
	require.NoError(t, st.Delete(ctx, 2))
	list, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	assert.Equal(t, "C", list[1].Name)
	assert.Equal(t, character.ClassWarrior, list[0].Class)
}

func TestMemoryStore_StoredCopyIsIsolated(t *testing.T) {
	ctx := context.Background()
	st := storage.NewMemoryStore()
	c, _ := character.New("Iso", character.ClassWarrior)
	potion, _ := inventory.NewBuiltinRegistry().Item(inventory.ItemSmallHealingPotion)
	_, _ = c.AddItem(*potion)
	s := c.Snapshot()
	saved, err := st.Save(ctx, s)
	require.NoError(t, err)

	saved.Inventory[0].Equipped = true
	loaded, _ := st.Load(ctx, saved.ID)
	assert.False(t, loaded.Inventory[0].Equipped)
}

func TestProperty_MemoryStoreRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		st := storage.NewMemoryStore()
		c, _ := character.New(rapid.StringMatching(`[A-Z][a-z]{2,10}`).Draw(rt, "name"),
			rapid.SampledFrom([]character.Class{character.ClassWarrior, character.ClassMage}).Draw(rt, "class"))
		c.AddGold(rapid.IntRange(0, 10_000).Draw(rt, "gold"))
		c.AddExperience(rapid.IntRange(0, 10_000).Draw(rt, "exp"))
		c.ApplyDamage(rapid.IntRange(0, 200).Draw(rt, "damage"))

		saved, err := st.Save(context.Background(), c.Snapshot())
		if err != nil {
			rt.Fatal(err)
		}
		loaded, err := st.Load(context.Background(), saved.ID)
		if err != nil {
			rt.Fatal(err)
		}
		if loaded.Gold != c.Gold() || loaded.Level != c.Level() || loaded.Health != c.Health() {
			rt.Fatalf("round trip mismatch: %+v vs %s", loaded, c)
		}
	})
}
