package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

// RoomPlan is the part of a dungeon's configuration that shapes a room roster.
type RoomPlan struct {
	// MonsterTypes lists the species a slot may draw from. Empty falls back to goblins.
	MonsterTypes []string
	// MonstersPerRoomBase is the roster size before the extra-monster roll.
	MonstersPerRoomBase int
}

// Generator builds room rosters.
type Generator struct {
	bestiary *monster.Bestiary
	rules    Rules
	src      dice.Source
	logger   *zap.Logger
}

// NewGenerator creates a Generator.
//
// Precondition: bestiary and src must be non-nil. A nil logger is replaced with a no-op logger.
func NewGenerator(bestiary *monster.Bestiary, rules Rules, src dice.Source, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{bestiary: bestiary, rules: rules.normalized(), src: src, logger: logger}
}

// GenerateRoom rolls the roster for one room.
//
// The count starts at MonstersPerRoomBase, gains one on an ExtraMonsterChance
// roll, and is clamped to [1, MaxMonstersPerRoom]. Each slot draws its species
// uniformly from MonsterTypes. Slots whose species cannot be spawned are
// skipped and logged, so the result may be empty.
//
// Postcondition: len(result) <= MaxMonstersPerRoom; every monster is alive.
func (g *Generator) GenerateRoom(plan RoomPlan, difficulty int) []*monster.Monster {
	if difficulty < 1 {
		g.logger.Warn("difficulty raised to 1", zap.Int("difficulty", difficulty))
		difficulty = 1
	}
	types := plan.MonsterTypes
	if len(types) == 0 {
		g.logger.Warn("room plan has no monster types, falling back to goblins")
		types = []string{string(monster.SpeciesGoblin)}
	}

	count := plan.MonstersPerRoomBase
	if dice.Percent(g.src, g.rules.ExtraMonsterChance) {
		count++
	}
	count = min(max(count, 1), g.rules.MaxMonstersPerRoom)

	roster := make([]*monster.Monster, 0, count)
	for slot := 0; slot < count; slot++ {
		species := types[g.src.Intn(len(types))]
		m, err := g.bestiary.Spawn(monster.Normalize(species), difficulty, g.src)
		if err != nil {
			g.logger.Warn("skipping monster slot",
				zap.Int("slot", slot),
				zap.String("species", species),
				zap.Error(err),
			)
			continue
		}
		roster = append(roster, m)
	}
	g.logger.Debug("room generated",
		zap.Int("requested", count),
		zap.Int("spawned", len(roster)),
		zap.Int("difficulty", difficulty),
	)
	return roster
}
