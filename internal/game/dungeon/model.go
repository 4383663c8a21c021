// Package dungeon provides the dungeon model, its YAML loader and the
// exploration state machine that walks a character through a dungeon's rooms.
package dungeon

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

// Dungeon is a pre-defined sequence of rooms.
type Dungeon struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// RoomCount is the number of rooms fought in order.
	RoomCount int `yaml:"room_count"`
	// MonsterTypes lists the species room slots draw from.
	MonsterTypes []string `yaml:"monster_types"`
	// GoldReward and ExpReward are paid once, on completion.
	GoldReward int `yaml:"gold_reward"`
	ExpReward  int `yaml:"exp_reward"`
	// MonstersPerRoomBase is the roster size before the extra-monster roll.
	MonstersPerRoomBase int `yaml:"monsters_per_room_base"`
	Difficulty          int `yaml:"difficulty"`
	// ScriptDir optionally names a directory of Lua hook scripts.
	ScriptDir string `yaml:"script_dir"`
}

// Normalized returns a copy with out-of-range fields replaced by their
// fallbacks: at least one room, one monster per room and difficulty 1,
// non-negative rewards, and goblins when no species are listed.
func (d Dungeon) Normalized() Dungeon {
	d.ID = strings.TrimSpace(d.ID)
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.RoomCount = max(d.RoomCount, 1)
	d.MonstersPerRoomBase = max(d.MonstersPerRoomBase, 1)
	d.Difficulty = max(d.Difficulty, 1)
	d.GoldReward = max(d.GoldReward, 0)
	d.ExpReward = max(d.ExpReward, 0)

	types := make([]string, 0, len(d.MonsterTypes))
	for _, t := range d.MonsterTypes {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		types = []string{string(monster.SpeciesGoblin)}
	}
	d.MonsterTypes = types
	return d
}

// Validate checks the dungeon's invariants.
//
// Postcondition: returns an error joining every violation, or nil.
func (d Dungeon) Validate() error {
	var errs []error
	if strings.TrimSpace(d.ID) == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if strings.TrimSpace(d.Name) == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.RoomCount < 1 {
		errs = append(errs, fmt.Errorf("room_count must be >= 1, got %d", d.RoomCount))
	}
	if len(d.MonsterTypes) == 0 {
		errs = append(errs, errors.New("monster_types must not be empty"))
	}
	if d.GoldReward < 0 {
		errs = append(errs, fmt.Errorf("gold_reward must be >= 0, got %d", d.GoldReward))
	}
	if d.ExpReward < 0 {
		errs = append(errs, fmt.Errorf("exp_reward must be >= 0, got %d", d.ExpReward))
	}
	if d.MonstersPerRoomBase < 1 {
		errs = append(errs, fmt.Errorf("monsters_per_room_base must be >= 1, got %d", d.MonstersPerRoomBase))
	}
	if d.Difficulty < 1 {
		errs = append(errs, fmt.Errorf("difficulty must be >= 1, got %d", d.Difficulty))
	}
	if len(errs) > 0 {
		return fmt.Errorf("dungeon %q: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// Plan returns the roster-shaping part of the dungeon.
func (d Dungeon) Plan() combat.RoomPlan {
	return combat.RoomPlan{
		MonsterTypes:        append([]string(nil), d.MonsterTypes...),
		MonstersPerRoomBase: d.MonstersPerRoomBase,
	}
}

// String renders a one-line menu entry.
func (d Dungeon) String() string {
	return fmt.Sprintf("%s (%d rooms, difficulty %d, reward %d gold / %d exp)",
		d.Name, d.RoomCount, d.Difficulty, d.GoldReward, d.ExpReward)
}
