package monster

import "github.com/cory-johannsen/delve/internal/game/inventory"

// BuiltinProfiles returns fresh copies of the species that ship with the game.
func BuiltinProfiles() []*Profile {
	return []*Profile{
		{
			Species:         SpeciesGoblin,
			DisplayName:     "Goblin",
			Health:          Scaling{Base: 15, PerLevel: 3},
			Damage:          Scaling{Base: 3, PerLevel: 1},
			Gold:            Scaling{Base: 8, PerLevel: 2},
			DropChance:      40,
			Drops:           []string{inventory.ItemSmallHealingPotion, inventory.ItemRustyDagger, inventory.ItemGoblinTooth},
			VariancePercent: 50,
			CritChance:      20,
			CritBonus:       2,
			MissChance:      10,
			Names:           []string{"Gruk", "Snarl", "Grik", "Zog", "Mog", "Brak", "Skrim", "Nix", "Grot", "Vex"},
			DeathCries: []string{
				"lets out a shrill scream before collapsing!",
				"babbles something in goblin tongue before giving up!",
				"looks around in terror before limping away!",
				"drops everything it was holding!",
			},
			DeathCryChance: 30,
		},
		{
			Species:     SpeciesTroll,
			DisplayName: "Troll",
			Health:      Scaling{Base: 35, PerLevel: 8},
			Damage:      Scaling{Base: 8, PerLevel: 2},
			Gold:        Scaling{Base: 25, PerLevel: 10},
			DropChance:  60,
			Drops: []string{
				inventory.ItemIronClub, inventory.ItemSwampHammer, inventory.ItemTrollLeatherCuirass,
				inventory.ItemBoneHelm, inventory.ItemMediumHealingPotion, inventory.ItemMagicMoss,
				inventory.ItemTrollTusk,
			},
			VariancePercent:       10,
			DevastatingChance:     15,
			DevastatingMultiplier: 2,
			TremorChance:          10,
			Regeneration:          Scaling{Base: 5, PerLevel: 1},
			Names: []string{
				"Mossback", "Swampfist", "Mudcrusher", "Thornhide", "Bogstomper",
				"Slimeclaw", "Marshbane", "Rotgut", "Murkwater", "Mireking",
			},
			DeathCries: []string{
				"crashes down like a felled tree, shaking the swamp!",
				"lets out a last roar that echoes through the swamp mist!",
				"slowly dissolves back into the mud it was born from!",
				"whispers ancient troll words before closing its eyes!",
			},
			DeathCryChance: 100,
		},
		{
			Species:         SpeciesMonster,
			DisplayName:     "Monster",
			Health:          Scaling{Base: 20, PerLevel: 4},
			Damage:          Scaling{Base: 4, PerLevel: 1},
			Gold:            Scaling{Base: 10, PerLevel: 3},
			DropChance:      30,
			Drops:           []string{inventory.ItemSmallHealingPotion},
			VariancePercent: 20,
			Names:           []string{"Cave Crawler", "Gloomling", "Bonegnaw", "Mudling", "Shade"},
		},
	}
}
