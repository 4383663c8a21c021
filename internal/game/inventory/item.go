package inventory

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Category classifies an Item.
type Category string

// Category constants for Item.Category.
const (
	CategoryWeapon Category = "weapon"
	CategoryArmor  Category = "armor"
	CategoryPotion Category = "potion"
	CategoryMisc   Category = "misc"
)

// categoryOrder is the display order used when grouping or sorting by category.
var categoryOrder = map[Category]int{
	CategoryWeapon: 0,
	CategoryArmor:  1,
	CategoryPotion: 2,
	CategoryMisc:   3,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryOrder[c]
	return ok
}

// Equippable reports whether items of this category can be equipped.
func (c Category) Equippable() bool {
	return c == CategoryWeapon || c == CategoryArmor
}

// DisplayName returns the human-readable category label.
func (c Category) DisplayName() string {
	switch c {
	case CategoryWeapon:
		return "Weapon"
	case CategoryArmor:
		return "Armor"
	case CategoryPotion:
		return "Potion"
	case CategoryMisc:
		return "Miscellaneous"
	}
	return string(c)
}

// Item is an immutable item definition. Two items with the same ID are the same item.
type Item struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description,omitempty"`
	Category    Category `yaml:"category" json:"category"`
	Value       int      `yaml:"value" json:"value"`
	StatBonus   int      `yaml:"stat_bonus" json:"stat_bonus"`
}

// Equippable reports whether the item can be equipped.
func (i Item) Equippable() bool {
	return i.Category.Equippable()
}

// String renders the item as "Name [Category] Value: N gold (+B)".
func (i Item) String() string {
	s := fmt.Sprintf("%s [%s] Value: %d gold", i.Name, i.Category.DisplayName(), i.Value)
	if i.StatBonus > 0 {
		s += fmt.Sprintf(" (+%d)", i.StatBonus)
	}
	return s
}

// Validate checks that the Item satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (i *Item) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if i.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if !i.Category.Valid() {
		errs = append(errs, fmt.Errorf("Category must be one of weapon, armor, potion, misc; got %q", i.Category))
	}
	if i.Value < 0 {
		errs = append(errs, errors.New("Value must be >= 0"))
	}
	if i.StatBonus < 0 {
		errs = append(errs, errors.New("StatBonus must be >= 0"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

// LoadItemFromBytes parses a single YAML item definition and validates it.
//
// Postcondition: returns a valid *Item or a non-nil error.
func LoadItemFromBytes(data []byte) (*Item, error) {
	var it Item
	if err := yaml.Unmarshal(data, &it); err != nil {
		return nil, fmt.Errorf("parsing item YAML: %w", err)
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return &it, nil
}

// LoadItems reads all *.yaml and *.yml files from dir, parses each as an
// Item, validates it, and returns the collected slice.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid Items or the first encountered error.
func LoadItems(dir string) ([]*Item, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadItems: cannot read directory %q: %w", dir, err)
	}

	var items []*Item
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: cannot read file %q: %w", path, err)
		}
		it, err := LoadItemFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("LoadItems: invalid item in %q: %w", path, err)
		}
		items = append(items, it)
	}
	return items, nil
}
