package scripting

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/delve/internal/game/dungeon"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

// Hook names looked up in dungeon scripts.
const (
	HookRoomEnter       = "on_room_enter"
	HookMonsterDefeated = "on_monster_defeated"
)

// DungeonHooks adapts a Manager to dungeon.Hooks. A hook that is missing,
// fails, or returns anything but a string defers to the fallback.
type DungeonHooks struct {
	mgr      *Manager
	fallback dungeon.Hooks
}

// NewDungeonHooks creates DungeonHooks. A nil fallback yields no text.
func NewDungeonHooks(mgr *Manager, fallback dungeon.Hooks) *DungeonHooks {
	return &DungeonHooks{mgr: mgr, fallback: fallback}
}

// RoomEntered calls on_room_enter(dungeon, room, monsters).
func (h *DungeonHooks) RoomEntered(ctx context.Context, d dungeon.Dungeon, room int, roster []*monster.Monster) string {
	ret := h.mgr.invoke(d.ID, HookRoomEnter, func(L *lua.LState) []lua.LValue {
		list := L.NewTable()
		for _, m := range roster {
			list.Append(monsterTable(L, m))
		}
		return []lua.LValue{dungeonTable(L, d), lua.LNumber(room), list}
	})
	if s, ok := ret.(lua.LString); ok {
		return string(s)
	}
	if h.fallback == nil {
		return ""
	}
	return h.fallback.RoomEntered(ctx, d, room, roster)
}

// MonsterDefeated calls on_monster_defeated(dungeon, monster).
func (h *DungeonHooks) MonsterDefeated(ctx context.Context, d dungeon.Dungeon, m *monster.Monster) string {
	ret := h.mgr.invoke(d.ID, HookMonsterDefeated, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{dungeonTable(L, d), monsterTable(L, m)}
	})
	if s, ok := ret.(lua.LString); ok {
		return string(s)
	}
	if h.fallback == nil {
		return ""
	}
	return h.fallback.MonsterDefeated(ctx, d, m)
}

func dungeonTable(L *lua.LState, d dungeon.Dungeon) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(d.ID))
	t.RawSetString("name", lua.LString(d.Name))
	t.RawSetString("rooms", lua.LNumber(d.RoomCount))
	t.RawSetString("difficulty", lua.LNumber(d.Difficulty))
	return t
}

func monsterTable(L *lua.LState, m *monster.Monster) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("id", lua.LString(m.ID))
	t.RawSetString("name", lua.LString(m.Name))
	t.RawSetString("label", lua.LString(m.Label()))
	t.RawSetString("species", lua.LString(m.Species))
	t.RawSetString("hp", lua.LNumber(m.Health))
	t.RawSetString("max_hp", lua.LNumber(m.MaxHealth))
	t.RawSetString("damage", lua.LNumber(m.BaseDamage))
	t.RawSetString("gold", lua.LNumber(m.GoldDrop))
	return t
}
