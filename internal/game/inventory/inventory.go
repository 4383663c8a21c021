package inventory

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries a new character's inventory holds.
const DefaultCapacity = 20

var (
	// ErrFull is returned when an Add would exceed the inventory capacity.
	ErrFull = errors.New("inventory: full")
	// ErrNotFound is returned when no entry has the requested instance ID.
	ErrNotFound = errors.New("inventory: item not found")
	// ErrNotEquippable is returned when equipping a potion or misc item.
	ErrNotEquippable = errors.New("inventory: item cannot be equipped")
)

// Entry is one concrete item held in an Inventory.
type Entry struct {
	InstanceID string `json:"instance_id"`
	Item       Item   `json:"item"`
	Equipped   bool   `json:"equipped"`
}

// Inventory is a capacity-limited list of items with at most one equipped
// item per category.
//
// Inventory is not safe for concurrent use; the owning character serializes access.
type Inventory struct {
	capacity int
	entries  []Entry
	equipped map[Category]string
}

// New creates an empty Inventory.
//
// Precondition: capacity > 0; values below 1 are raised to DefaultCapacity.
func New(capacity int) *Inventory {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Inventory{
		capacity: capacity,
		equipped: make(map[Category]string),
	}
}

// Restore rebuilds an Inventory from persisted entries, preserving instance
// IDs and equipped flags.
//
// Postcondition: returns an error if the entries exceed capacity, contain an
// invalid item, or mark two items of one category as equipped.
func Restore(capacity int, entries []Entry) (*Inventory, error) {
	inv := New(capacity)
	if len(entries) > inv.capacity {
		return nil, fmt.Errorf("restoring inventory: %d entries exceed capacity %d", len(entries), inv.capacity)
	}
	for _, e := range entries {
		if err := e.Item.Validate(); err != nil {
			return nil, fmt.Errorf("restoring inventory entry %q: %w", e.InstanceID, err)
		}
		if e.InstanceID == "" {
			e.InstanceID = uuid.New().String()
		}
		inv.entries = append(inv.entries, Entry{InstanceID: e.InstanceID, Item: e.Item})
		if !e.Equipped {
			continue
		}
		if !e.Item.Equippable() {
			return nil, fmt.Errorf("restoring inventory entry %q: %w", e.InstanceID, ErrNotEquippable)
		}
		if _, taken := inv.equipped[e.Item.Category]; taken {
			return nil, fmt.Errorf("restoring inventory: two %s items equipped", e.Item.Category)
		}
		inv.equipped[e.Item.Category] = e.InstanceID
	}
	return inv, nil
}

// Add places a copy of it into the inventory under a fresh instance ID.
//
// Postcondition: on success Len() grows by one; on ErrFull the inventory is unchanged.
func (inv *Inventory) Add(it Item) (Entry, error) {
	if len(inv.entries) >= inv.capacity {
		return Entry{}, fmt.Errorf("adding %q: %w", it.Name, ErrFull)
	}
	e := Entry{InstanceID: uuid.New().String(), Item: it}
	inv.entries = append(inv.entries, e)
	return e, nil
}

// Remove deletes the entry with instanceID, unequipping it first if needed.
func (inv *Inventory) Remove(instanceID string) (Entry, error) {
	idx := inv.index(instanceID)
	if idx < 0 {
		return Entry{}, ErrNotFound
	}
	e := inv.entries[idx]
	if inv.equipped[e.Item.Category] == instanceID {
		delete(inv.equipped, e.Item.Category)
	}
	inv.entries = append(inv.entries[:idx], inv.entries[idx+1:]...)
	return e, nil
}

// Sell removes the entry and returns its value in gold.
func (inv *Inventory) Sell(instanceID string) (int, error) {
	e, err := inv.Remove(instanceID)
	if err != nil {
		return 0, err
	}
	return e.Item.Value, nil
}

// Equip equips the entry, replacing any item already equipped in its category.
//
// Postcondition: returns the instance ID of the replaced item, or "" if the slot was empty.
func (inv *Inventory) Equip(instanceID string) (string, error) {
	idx := inv.index(instanceID)
	if idx < 0 {
		return "", ErrNotFound
	}
	it := inv.entries[idx].Item
	if !it.Equippable() {
		return "", fmt.Errorf("equipping %q: %w", it.Name, ErrNotEquippable)
	}
	prev := inv.equipped[it.Category]
	inv.equipped[it.Category] = instanceID
	if prev == instanceID {
		return "", nil
	}
	return prev, nil
}

// Unequip clears the equipped slot held by instanceID.
func (inv *Inventory) Unequip(instanceID string) error {
	idx := inv.index(instanceID)
	if idx < 0 {
		return ErrNotFound
	}
	cat := inv.entries[idx].Item.Category
	if inv.equipped[cat] != instanceID {
		return fmt.Errorf("unequipping %q: not equipped", inv.entries[idx].Item.Name)
	}
	delete(inv.equipped, cat)
	return nil
}

// IsEquipped reports whether instanceID is currently equipped.
func (inv *Inventory) IsEquipped(instanceID string) bool {
	for _, id := range inv.equipped {
		if id == instanceID {
			return true
		}
	}
	return false
}

// Entries returns a copy of all entries in inventory order.
func (inv *Inventory) Entries() []Entry {
	out := make([]Entry, len(inv.entries))
	for i, e := range inv.entries {
		e.Equipped = inv.equipped[e.Item.Category] == e.InstanceID
		out[i] = e
	}
	return out
}

// Equipped returns the equipped entries in category order.
func (inv *Inventory) Equipped() []Entry {
	var out []Entry
	for _, e := range inv.Entries() {
		if e.Equipped {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return categoryOrder[out[i].Item.Category] < categoryOrder[out[j].Item.Category]
	})
	return out
}

// ByCategory returns the entries of one category in inventory order.
func (inv *Inventory) ByCategory(c Category) []Entry {
	var out []Entry
	for _, e := range inv.Entries() {
		if e.Item.Category == c {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the first entry whose item name matches name case-insensitively.
func (inv *Inventory) Find(name string) (Entry, bool) {
	for _, e := range inv.Entries() {
		if strings.EqualFold(e.Item.Name, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// TotalValue sums the value of every held item.
func (inv *Inventory) TotalValue() int {
	total := 0
	for _, e := range inv.entries {
		total += e.Item.Value
	}
	return total
}

// TotalStatBonus sums the stat bonus of equipped items.
//
// Postcondition: result >= 0.
func (inv *Inventory) TotalStatBonus() int {
	total := 0
	for _, e := range inv.entries {
		if inv.equipped[e.Item.Category] == e.InstanceID {
			total += e.Item.StatBonus
		}
	}
	return total
}

// Len returns the number of held entries.
func (inv *Inventory) Len() int { return len(inv.entries) }

// Capacity returns the maximum number of entries.
func (inv *Inventory) Capacity() int { return inv.capacity }

// Full reports whether no more items can be added.
func (inv *Inventory) Full() bool { return len(inv.entries) >= inv.capacity }

func (inv *Inventory) index(instanceID string) int {
	for i := range inv.entries {
		if inv.entries[i].InstanceID == instanceID {
			return i
		}
	}
	return -1
}
