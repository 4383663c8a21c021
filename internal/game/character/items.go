package character

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/inventory"
)

// ErrNotPotion is returned when drinking an item that is not a potion.
var ErrNotPotion = errors.New("character: item is not a potion")

// AddItem places it in the character's inventory.
func (c *Character) AddItem(it inventory.Item) (inventory.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inv.Add(it)
}

// Items returns a copy of the inventory entries.
func (c *Character) Items() []inventory.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inv.Entries()
}

// InventoryCapacity returns the inventory capacity.
func (c *Character) InventoryCapacity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inv.Capacity()
}

// InventoryValue returns the total value of carried items.
func (c *Character) InventoryValue() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inv.TotalValue()
}

// Equip equips the entry with instanceID.
func (c *Character) Equip(instanceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := c.inv.Equip(instanceID)
	return err
}

// Unequip clears the slot held by instanceID.
func (c *Character) Unequip(instanceID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inv.Unequip(instanceID)
}

// SortItems reorders the inventory.
func (c *Character) SortItems(order inventory.SortOrder) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inv.Sort(order)
}

// SellItem removes the entry and credits its value as gold.
//
// Postcondition: returns the gold received.
func (c *Character) SellItem(instanceID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, err := c.inv.Sell(instanceID)
	if err != nil {
		return 0, err
	}
	c.gold += value
	return value, nil
}

// DrinkPotion consumes a potion and heals by its value.
//
// Postcondition: returns the health gained; the potion is removed even when
// the character is already at full health.
func (c *Character) DrinkPotion(instanceID string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var target *inventory.Entry
	for _, e := range c.inv.Entries() {
		if e.InstanceID == instanceID {
			target = &e
			break
		}
	}
	if target == nil {
		return 0, inventory.ErrNotFound
	}
	if target.Item.Category != inventory.CategoryPotion {
		return 0, fmt.Errorf("drinking %q: %w", target.Item.Name, ErrNotPotion)
	}
	if _, err := c.inv.Remove(instanceID); err != nil {
		return 0, err
	}
	if c.health == 0 {
		return 0, nil
	}
	before := c.health
	c.health = min(c.maxHealth, c.health+target.Item.Value)
	return c.health - before, nil
}
