package dungeon_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/dungeon"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

// prompter records every callback. decide defaults to always attacking.
type prompter struct {
	enter    bool
	enterErr error
	rest     bool
	decide   func(room int) (combat.Action, error)

	room       int
	restOffers []int
	events     []combat.Event
}

func (p *prompter) ConfirmEntry(context.Context, *character.Character, dungeon.Dungeon) (bool, error) {
	return p.enter, p.enterErr
}

func (p *prompter) OfferRest(_ context.Context, _ *character.Character, _ dungeon.Dungeon, room int) (bool, error) {
	p.restOffers = append(p.restOffers, room)
	return p.rest, nil
}

func (p *prompter) Decide(context.Context, *combat.Encounter) (combat.Action, error) {
	if p.decide == nil {
		return combat.ActionAttack, nil
	}
	return p.decide(p.room)
}

func (p *prompter) Event(e combat.Event) {
	if e.Kind == combat.EventRoomEntered {
		p.room = e.Amount
	}
	p.events = append(p.events, e)
}

func (p *prompter) lootGold() int {
	n := 0
	for _, e := range p.events {
		if e.Kind == combat.EventLoot {
			n += e.Amount
		}
	}
	return n
}

func (p *prompter) count(k combat.EventKind) int {
	n := 0
	for _, e := range p.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

// hero builds a warrior with the given overrides.
func hero(t testing.TB, health, stamina, damage int) *character.Character {
	c, err := character.New("Hero", character.ClassWarrior)
	require.NoError(t, err)
	s := c.Snapshot()
	s.Health, s.MaxHealth = health, max(health, 1)
	s.Stamina, s.MaxStamina = stamina, max(stamina, 100)
	s.BaseDamage = damage
	out, err := character.Restore(s)
	require.NoError(t, err)
	return out
}

func invincible(t testing.TB) *character.Character { return hero(t, 1_000_000, 1_000_000, 1_000_000) }

func newExplorer(src dice.Source, rules combat.Rules, opts dungeon.Options, logger *zap.Logger) *dungeon.Explorer {
	b := monster.NewBuiltinBestiary(inventory.NewBuiltinRegistry())
	opts.Rules = rules
	return dungeon.NewExplorer(combat.NewGenerator(b, rules, src, logger), src, opts, logger)
}

func testDungeon(rooms int) dungeon.Dungeon {
	return dungeon.Dungeon{
		ID: "test", Name: "Test Pit", RoomCount: rooms, MonsterTypes: []string{"goblin"},
		GoldReward: 50, ExpReward: 120, MonstersPerRoomBase: 1, Difficulty: 1,
	}
}

func TestExplore_DeclineHasNoSideEffects(t *testing.T) {
	c := invincible(t)
	before := c.Snapshot()
	p := &prompter{enter: false}
	x := newExplorer(dice.NewSeededSource(1), combat.DefaultRules(), dungeon.Options{}, nil)

	res, err := x.Explore(context.Background(), c, testDungeon(3), p)
	require.NoError(t, err)
	assert.Equal(t, dungeon.OutcomeAborted, res.Outcome)
	assert.Empty(t, p.events)
	assert.Equal(t, before, c.Snapshot())
}

func TestExplore_CompletionPaysRewards(t *testing.T) {
	c := invincible(t)
	p := &prompter{enter: true, rest: true}
	x := newExplorer(dice.NewSeededSource(7), combat.DefaultRules(), dungeon.Options{}, nil)

	res, err := x.Explore(context.Background(), c, testDungeon(3), p)
	require.NoError(t, err)
	assert.Equal(t, dungeon.OutcomeCompleted, res.Outcome)
	assert.Equal(t, 3, res.RoomsCleared)
	assert.Equal(t, p.lootGold()+50, res.Gold)
	assert.Equal(t, character.StartingGold+res.Gold, c.Gold())
	assert.Equal(t, 120, res.Experience)
	assert.Equal(t, 1, res.LevelsGained)
	assert.Equal(t, 2, c.Level())
	assert.Equal(t, []int{1, 2}, p.restOffers, "no rest offer after the last room")
	assert.Equal(t, 3, p.count(combat.EventRoomEntered))
	assert.Len(t, c.Items(), len(res.Items))
	assert.NotEmpty(t, res.RunID)
}

func TestExplore_RestRestoresCappedStamina(t *testing.T) {
	c := hero(t, 1_000_000, 1000, 1_000_000)
	require.True(t, c.SpendStamina(c.MaxStamina()-5))
	p := &prompter{enter: true, rest: true}
	rules := combat.DefaultRules()
	rules.ExtraMonsterChance = 0
	x := newExplorer(dice.NewSeededSource(3), rules, dungeon.Options{RestStamina: 20}, nil)

	_, err := x.Explore(context.Background(), c, testDungeon(2), p)
	require.NoError(t, err)
	var rested []combat.Event
	for _, e := range p.events {
		if e.Kind == combat.EventRested {
			rested = append(rested, e)
		}
	}
	require.Len(t, rested, 1)
	assert.Equal(t, 20, rested[0].Amount)
	// 5 - 5 (room 1 attack) + 20 - 5 (room 2 attack)
	assert.Equal(t, 15, c.Stamina())
}

func TestExplore_RestNearFullStamina(t *testing.T) {
	c := hero(t, 1_000_000, 100, 1_000_000)
	p := &prompter{enter: true, rest: true}
	rules := combat.DefaultRules()
	rules.ExtraMonsterChance = 0
	x := newExplorer(dice.NewSeededSource(3), rules, dungeon.Options{}, nil)

	_, err := x.Explore(context.Background(), c, testDungeon(2), p)
	require.NoError(t, err)
	for _, e := range p.events {
		if e.Kind == combat.EventRested {
			assert.Equal(t, 5, e.Amount, "only the missing stamina is restored")
		}
	}
}

func TestExplore_DefeatKeepsEarlierCredits(t *testing.T) {
	// One attack's worth of stamina: room 1 is won, room 2 is fought too tired.
	c := hero(t, 1, 5, 1_000_000)
	p := &prompter{enter: true, rest: false}
	rules := combat.DefaultRules()
	rules.ExtraMonsterChance = 0
	x := newExplorer(dice.NewSeededSource(11), rules, dungeon.Options{}, nil)

	res, err := x.Explore(context.Background(), c, testDungeon(3), p)
	require.NoError(t, err)
	assert.Equal(t, dungeon.OutcomeFailed, res.Outcome)
	assert.Equal(t, 1, res.RoomsCleared)
	assert.Equal(t, 10, res.Gold, "difficulty-1 goblin gold, no completion reward")
	assert.Equal(t, character.StartingGold+10, c.Gold())
	assert.Zero(t, c.Experience())
	assert.False(t, c.Alive())
	assert.Len(t, c.Items(), len(res.Items))
}

func TestExplore_FleeKeepsEarlierCredits(t *testing.T) {
	c := invincible(t)
	p := &prompter{enter: true, decide: func(room int) (combat.Action, error) {
		if room >= 2 {
			return combat.ActionFlee, nil
		}
		return combat.ActionAttack, nil
	}}
	rules := combat.DefaultRules()
	rules.FleeChance = 100
	x := newExplorer(dice.NewSeededSource(5), rules, dungeon.Options{}, nil)

	res, err := x.Explore(context.Background(), c, testDungeon(4), p)
	require.NoError(t, err)
	assert.Equal(t, dungeon.OutcomeFled, res.Outcome)
	assert.Equal(t, 1, res.RoomsCleared)
	assert.Equal(t, p.lootGold(), res.Gold)
	assert.Equal(t, character.StartingGold+res.Gold, c.Gold())
	assert.Zero(t, res.Experience)
}

func TestExplore_DeciderErrorAborts(t *testing.T) {
	c := invincible(t)
	boom := errors.New("connection reset")
	p := &prompter{enter: true, decide: func(int) (combat.Action, error) { return 0, boom }}
	x := newExplorer(dice.NewSeededSource(5), combat.DefaultRules(), dungeon.Options{}, nil)

	res, err := x.Explore(context.Background(), c, testDungeon(2), p)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, dungeon.OutcomeAborted, res.Outcome)
	assert.Equal(t, character.StartingGold, c.Gold())
}

func TestExplore_EntryErrorAborts(t *testing.T) {
	boom := errors.New("eof")
	p := &prompter{enterErr: boom}
	x := newExplorer(dice.NewSeededSource(5), combat.DefaultRules(), dungeon.Options{}, nil)
	res, err := x.Explore(context.Background(), invincible(t), testDungeon(2), p)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, dungeon.OutcomeAborted, res.Outcome)
}

func TestExplore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &prompter{enter: true}
	x := newExplorer(dice.NewSeededSource(5), combat.DefaultRules(), dungeon.Options{}, nil)
	res, err := x.Explore(ctx, invincible(t), testDungeon(2), p)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, dungeon.OutcomeAborted, res.Outcome)
}

func TestExplore_UnknownSpeciesRoomsAreEmpty(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := invincible(t)
	p := &prompter{enter: true}
	x := newExplorer(dice.NewSeededSource(5), combat.DefaultRules(), dungeon.Options{}, zap.New(core))
	d := testDungeon(2)
	d.MonsterTypes = []string{"dragon"}

	res, err := x.Explore(context.Background(), c, d, p)
	require.NoError(t, err)
	assert.Equal(t, dungeon.OutcomeCompleted, res.Outcome)
	assert.Equal(t, 2, p.count(combat.EventRoomEmpty))
	assert.Equal(t, 50, res.Gold)
	assert.Equal(t, 2, logs.FilterMessage("room empty").Len())
}

func TestExplore_DeathCryFlavor(t *testing.T) {
	c := invincible(t)
	p := &prompter{enter: true}
	rules := combat.DefaultRules()
	rules.ExtraMonsterChance = 0
	x := newExplorer(dice.NewSeededSource(9), rules, dungeon.Options{Hooks: dungeon.NewBuiltinHooks(fixedSrc{val: 0})}, nil)
	d := testDungeon(1)
	d.MonsterTypes = []string{"troll"}

	_, err := x.Explore(context.Background(), c, d, p)
	require.NoError(t, err)
	for i, e := range p.events {
		if e.Kind != combat.EventMonsterDefeated {
			continue
		}
		require.Greater(t, len(p.events), i+1)
		next := p.events[i+1]
		assert.Equal(t, combat.EventFlavor, next.Kind)
		assert.True(t, strings.HasPrefix(next.Text, e.Target+" "))
		assert.Contains(t, next.Text, "crashes down like a felled tree")
		return
	}
	t.Fatal("no monster defeated")
}

func TestExplore_FullInventoryDiscardsLoot(t *testing.T) {
	c := invincible(t)
	tooth, _ := inventory.NewBuiltinRegistry().Item(inventory.ItemGoblinTooth)
	for len(c.Items()) < c.InventoryCapacity() {
		_, err := c.AddItem(*tooth)
		require.NoError(t, err)
	}
	p := &prompter{enter: true}
	x := newExplorer(dice.NewSeededSource(21), combat.DefaultRules(), dungeon.Options{}, nil)

	res, err := x.Explore(context.Background(), c, testDungeon(4), p)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, len(res.Discarded), p.count(combat.EventItemDiscarded))
	assert.Len(t, c.Items(), c.InventoryCapacity())
}

// TestProperty_CompletionGold checks that a completed run's gold is exactly
// the per-monster gold plus the dungeon reward, for any dungeon shape.
func TestProperty_CompletionGold(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := invincible(t)
		d := dungeon.Dungeon{
			ID:                  "prop",
			Name:                "Prop",
			RoomCount:           rapid.IntRange(1, 6).Draw(rt, "rooms"),
			MonsterTypes:        rapid.SliceOfN(rapid.SampledFrom([]string{"goblin", "troll", "monster"}), 1, 3).Draw(rt, "types"),
			GoldReward:          rapid.IntRange(0, 500).Draw(rt, "gold"),
			ExpReward:           rapid.IntRange(0, 500).Draw(rt, "exp"),
			MonstersPerRoomBase: rapid.IntRange(1, 4).Draw(rt, "base"),
			Difficulty:          rapid.IntRange(1, 4).Draw(rt, "difficulty"),
		}
		p := &prompter{enter: true, rest: rapid.Bool().Draw(rt, "rest")}
		x := newExplorer(dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed")), combat.DefaultRules(), dungeon.Options{}, nil)

		res, err := x.Explore(context.Background(), c, d, p)
		if err != nil {
			rt.Fatal(err)
		}
		if res.Outcome != dungeon.OutcomeCompleted {
			rt.Fatalf("outcome %s", res.Outcome)
		}
		if want := p.lootGold() + d.GoldReward; res.Gold != want {
			rt.Fatalf("result gold %d, want %d", res.Gold, want)
		}
		if c.Gold() != character.StartingGold+res.Gold {
			rt.Fatalf("character gold %d, result gold %d", c.Gold(), res.Gold)
		}
		if c.Level() != 1+d.ExpReward/character.ExperiencePerLevel {
			rt.Fatalf("level %d after %d exp", c.Level(), d.ExpReward)
		}
		if len(p.restOffers) != d.RoomCount-1 {
			rt.Fatalf("%d rest offers for %d rooms", len(p.restOffers), d.RoomCount)
		}
	})
}
