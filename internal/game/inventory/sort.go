package inventory

import (
	"fmt"
	"sort"
)

// SortOrder selects how Sort arranges entries.
type SortOrder string

// Supported sort orders.
const (
	SortByName     SortOrder = "name"
	SortByValue    SortOrder = "value"
	SortByCategory SortOrder = "category"
)

// ParseSortOrder maps user input to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch o := SortOrder(s); o {
	case SortByName, SortByValue, SortByCategory:
		return o, nil
	}
	return "", fmt.Errorf("unknown sort order %q (want name, value or category)", s)
}

// Sort reorders entries in place. Value sorts most valuable first; name and
// category sort ascending. Ties keep their existing order.
func (inv *Inventory) Sort(order SortOrder) error {
	var less func(a, b Item) bool
	switch order {
	case SortByName:
		less = func(a, b Item) bool { return a.Name < b.Name }
	case SortByValue:
		less = func(a, b Item) bool { return a.Value > b.Value }
	case SortByCategory:
		less = func(a, b Item) bool { return categoryOrder[a.Category] < categoryOrder[b.Category] }
	default:
		return fmt.Errorf("unknown sort order %q", order)
	}
	sort.SliceStable(inv.entries, func(i, j int) bool {
		return less(inv.entries[i].Item, inv.entries[j].Item)
	})
	return nil
}
