package dungeon

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Catalog is the ordered set of dungeons a player can choose from.
// It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]Dungeon
}

// NewCatalog creates a Catalog holding dungeons in the given order.
//
// Postcondition: Returns an error on a duplicate ID or an invalid dungeon.
func NewCatalog(dungeons ...Dungeon) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Dungeon, len(dungeons))}
	for _, d := range dungeons {
		if _, exists := c.byID[d.ID]; exists {
			return nil, fmt.Errorf("duplicate dungeon ID: %q", d.ID)
		}
		if err := c.put(d); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewBuiltinCatalog returns a Catalog of BuiltinDungeons.
func NewBuiltinCatalog() *Catalog {
	c, err := NewCatalog(BuiltinDungeons()...)
	if err != nil {
		panic(fmt.Sprintf("builtin dungeons: %v", err))
	}
	return c
}

// Override adds d, replacing any dungeon with the same ID in place.
func (c *Catalog) Override(d Dungeon) error {
	return c.put(d)
}

func (c *Catalog) put(d Dungeon) error {
	d = d.Normalized()
	if err := d.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byID[d.ID]; !exists {
		c.order = append(c.order, d.ID)
	}
	c.byID[d.ID] = d
	return nil
}

// Get returns the dungeon with the given ID.
func (c *Catalog) Get(id string) (Dungeon, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.byID[id]
	return d, ok
}

// All returns every dungeon in catalog order.
func (c *Catalog) All() []Dungeon {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Dungeon, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// Len returns the number of dungeons.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Lookup resolves a player's selection: a 1-based menu number, an ID, or a
// case-insensitive name.
func (c *Catalog) Lookup(selection string) (Dungeon, bool) {
	selection = strings.TrimSpace(selection)
	all := c.All()
	if n, err := strconv.Atoi(selection); err == nil {
		if n >= 1 && n <= len(all) {
			return all[n-1], true
		}
		return Dungeon{}, false
	}
	for _, d := range all {
		if d.ID == selection || strings.EqualFold(d.Name, selection) {
			return d, true
		}
	}
	return Dungeon{}, false
}
