package combat

import (
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

// Loot is what a defeated monster yields.
type Loot struct {
	Gold  int
	Items []inventory.Item
}

// add folds other into l.
func (l *Loot) add(other Loot) {
	l.Gold += other.Gold
	l.Items = append(l.Items, other.Items...)
}

// SampleDrops runs one independent Intn(100) < dropChance trial per item.
//
// Postcondition: the result preserves the order of possible.
func SampleDrops(possible []inventory.Item, dropChance int, src dice.Source) []inventory.Item {
	var out []inventory.Item
	for _, it := range possible {
		if dice.Percent(src, dropChance) {
			out = append(out, it)
		}
	}
	return out
}

// LootMonster grants the monster's full GoldDrop plus its sampled drops.
func LootMonster(m *monster.Monster, src dice.Source) Loot {
	return Loot{
		Gold:  m.GoldDrop,
		Items: SampleDrops(m.PossibleDrops, m.DropChance, src),
	}
}
