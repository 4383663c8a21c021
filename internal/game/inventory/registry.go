package inventory

import (
	"fmt"
	"sort"
)

// Built-in item IDs.
const (
	ItemSmallHealingPotion  = "small_healing_potion"
	ItemMediumHealingPotion = "medium_healing_potion"
	ItemRustyDagger         = "rusty_dagger"
	ItemGoblinTooth         = "goblin_tooth"
	ItemIronClub            = "iron_club"
	ItemSwampHammer         = "swamp_hammer"
	ItemTrollLeatherCuirass = "troll_leather_cuirass"
	ItemBoneHelm            = "bone_helm"
	ItemMagicMoss           = "magic_moss"
	ItemTrollTusk           = "troll_tusk"
)

// BuiltinItems returns fresh copies of the items that ship with the game.
func BuiltinItems() []*Item {
	return []*Item{
		{ID: ItemSmallHealingPotion, Name: "Small Healing Potion", Category: CategoryPotion, Value: 15},
		{ID: ItemMediumHealingPotion, Name: "Medium Healing Potion", Category: CategoryPotion, Value: 50},
		{ID: ItemRustyDagger, Name: "Rusty Dagger", Category: CategoryWeapon, Value: 25, StatBonus: 1},
		{ID: ItemGoblinTooth, Name: "Goblin Tooth", Category: CategoryMisc, Value: 5},
		{ID: ItemIronClub, Name: "Iron Club", Category: CategoryWeapon, Value: 80, StatBonus: 4},
		{ID: ItemSwampHammer, Name: "Swamp Hammer", Category: CategoryWeapon, Value: 120, StatBonus: 6},
		{ID: ItemTrollLeatherCuirass, Name: "Troll Leather Cuirass", Category: CategoryArmor, Value: 100, StatBonus: 3},
		{ID: ItemBoneHelm, Name: "Bone Helm", Category: CategoryArmor, Value: 60, StatBonus: 2},
		{ID: ItemMagicMoss, Name: "Magic Moss", Category: CategoryMisc, Value: 40},
		{ID: ItemTrollTusk, Name: "Troll Tusk", Category: CategoryMisc, Value: 75},
	}
}

// Registry holds item definitions indexed by ID.
type Registry struct {
	items map[string]*Item
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal map is initialised.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]*Item)}
}

// NewBuiltinRegistry returns a Registry preloaded with BuiltinItems.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, it := range BuiltinItems() {
		// built-in IDs are unique
		_ = r.Register(it)
	}
	return r
}

// Register adds it to the registry.
//
// Precondition: it must not be nil.
// Postcondition: Item(it.ID) returns (it, true); returns error if it.ID already registered.
func (r *Registry) Register(it *Item) error {
	if _, exists := r.items[it.ID]; exists {
		return fmt.Errorf("inventory: Registry.Register: item ID %q already registered", it.ID)
	}
	r.items[it.ID] = it
	return nil
}

// Replace adds or overwrites it. Content files use this to override built-ins.
func (r *Registry) Replace(it *Item) {
	r.items[it.ID] = it
}

// Item returns the Item for the given id and whether it was found.
//
// Postcondition: ok is true iff the id is registered.
func (r *Registry) Item(id string) (*Item, bool) {
	it, ok := r.items[id]
	return it, ok
}

// Resolve looks up each id in order.
//
// Postcondition: returns the items in ids order, or an error naming the first unknown id.
func (r *Registry) Resolve(ids []string) ([]Item, error) {
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		it, ok := r.items[id]
		if !ok {
			return nil, fmt.Errorf("inventory: unknown item %q", id)
		}
		out = append(out, *it)
	}
	return out, nil
}

// All returns every registered item sorted by ID.
func (r *Registry) All() []*Item {
	out := make([]*Item, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
