package dungeon

import "github.com/cory-johannsen/delve/internal/game/monster"

// Built-in dungeon IDs.
const (
	GoblinCaveID    = "goblin_cave"
	SwampOfTrollsID = "swamp_of_trolls"
)

// BuiltinDungeons returns the dungeons available without any content directory.
func BuiltinDungeons() []Dungeon {
	return []Dungeon{
		{
			ID:                  GoblinCaveID,
			Name:                "Goblin Cave",
			Description:         "A damp cave where goblins hoard what they steal from the road.",
			RoomCount:           4,
			MonsterTypes:        []string{string(monster.SpeciesGoblin)},
			GoldReward:          150,
			ExpReward:           100,
			MonstersPerRoomBase: 2,
			Difficulty:          1,
		},
		{
			ID:                  SwampOfTrollsID,
			Name:                "Swamp of Trolls",
			Description:         "Black water and rotting reeds. Something large moves under the mist.",
			RoomCount:           6,
			MonsterTypes:        []string{string(monster.SpeciesTroll)},
			GoldReward:          400,
			ExpReward:           300,
			MonstersPerRoomBase: 1,
			Difficulty:          2,
		},
	}
}
