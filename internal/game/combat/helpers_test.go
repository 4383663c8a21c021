package combat_test

import (
	"testing"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

// fixedSrc returns f.val for every Intn call with no bounds clamping.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

// seqSrc replays vals in order, wrapping around, reduced modulo n so every
// draw stays in range.
type seqSrc struct {
	vals []int
	i    int
}

func (s *seqSrc) Intn(n int) int {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v % n
}

func seq(vals ...int) *seqSrc { return &seqSrc{vals: vals} }

func newBestiary() *monster.Bestiary {
	return monster.NewBuiltinBestiary(inventory.NewBuiltinRegistry())
}

func spawn(t *testing.T, s monster.Species, difficulty int) *monster.Monster {
	t.Helper()
	m, err := newBestiary().Spawn(s, difficulty, fixedSrc{val: 0})
	if err != nil {
		t.Fatalf("Spawn(%s): %v", s, err)
	}
	return m
}

func newPlayer(t *testing.T, class character.Class) *character.Character {
	t.Helper()
	c, err := character.New("Hero", class)
	if err != nil {
		t.Fatalf("character.New: %v", err)
	}
	return c
}

// dummy is a profile-less monster using the default ±20% policy.
func dummy(name string, health, damage, gold int) *monster.Monster {
	return &monster.Monster{ID: name, Name: name, Health: health, MaxHealth: health, BaseDamage: damage, GoldDrop: gold}
}
