package dungeon

import (
	"context"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

// Hooks supply flavor text during exploration. Returned text is shown to the
// player as an EventFlavor; an empty string shows nothing. Hooks never change
// game state.
type Hooks interface {
	RoomEntered(ctx context.Context, d Dungeon, room int, roster []*monster.Monster) string
	MonsterDefeated(ctx context.Context, d Dungeon, m *monster.Monster) string
}

// BuiltinHooks voice species death cries. It draws from its own source so
// flavor never shifts the combat dice.
type BuiltinHooks struct {
	src dice.Source
}

// NewBuiltinHooks creates BuiltinHooks drawing from src.
//
// Precondition: src must be non-nil.
func NewBuiltinHooks(src dice.Source) *BuiltinHooks {
	return &BuiltinHooks{src: src}
}

// RoomEntered has no built-in text.
func (h *BuiltinHooks) RoomEntered(context.Context, Dungeon, int, []*monster.Monster) string {
	return ""
}

// MonsterDefeated returns "<label> <cry>" when the species cries out.
func (h *BuiltinHooks) MonsterDefeated(_ context.Context, _ Dungeon, m *monster.Monster) string {
	cry := m.DeathCry(h.src)
	if cry == "" {
		return ""
	}
	return m.Label() + " " + cry
}

type noHooks struct{}

func (noHooks) RoomEntered(context.Context, Dungeon, int, []*monster.Monster) string { return "" }
func (noHooks) MonsterDefeated(context.Context, Dungeon, *monster.Monster) string     { return "" }
