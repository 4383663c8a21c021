package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/command"
	"github.com/cory-johannsen/delve/internal/game/inventory"
)

func (s *session) inventoryMenu(ctx context.Context) error {
	_ = s.term.WriteLine(s.r.Inventory(s.char.Items(), s.char.InventoryCapacity()))
	for {
		line, err := ask(ctx, s.term, s.r.Prompt(fmt.Sprintf("[inventory, %d gold] > ", s.char.Gold())))
		if err != nil {
			return err
		}
		cmd, args, ok := s.resolve(inventoryCommands, line)
		if !ok {
			continue
		}
		switch cmd.Handler {
		case command.HandlerBack:
			return nil
		case command.HandlerShow:
			_ = s.term.WriteLine(s.r.Inventory(s.char.Items(), s.char.InventoryCapacity()))
		case command.HandlerByType:
			s.showByCategory()
		case command.HandlerSort:
			order, err := inventory.ParseSortOrder(strings.ToLower(args.RawArgs))
			if err != nil {
				_ = s.term.WriteLine(s.r.Warn(err.Error()))
				continue
			}
			_ = s.char.SortItems(order)
			_ = s.term.WriteLine(s.r.Inventory(s.char.Items(), s.char.InventoryCapacity()))
		case command.HandlerEquip, command.HandlerUnequip, command.HandlerDrink, command.HandlerSell:
			s.itemCommand(cmd.Handler, args)
		case command.HandlerHelp:
			_ = s.term.WriteLine("Inventory commands:\n" + inventoryCommands.Listing())
		}
	}
}

func (s *session) showByCategory() {
	entries := s.char.Items()
	if len(entries) == 0 {
		_ = s.term.WriteLine("Your pack is empty.")
		return
	}
	for _, cat := range []inventory.Category{inventory.CategoryWeapon, inventory.CategoryArmor, inventory.CategoryPotion, inventory.CategoryMisc} {
		var lines []string
		for _, e := range entries {
			if e.Item.Category == cat {
				lines = append(lines, "  "+e.Item.String())
			}
		}
		if len(lines) == 0 {
			continue
		}
		_ = s.term.WriteLine(s.r.Title(cat.DisplayName()) + "\n" + strings.Join(lines, "\n"))
	}
}

// itemCommand applies the handler to the entry numbered by the first
// argument (1-based).
func (s *session) itemCommand(handler string, args command.ParseResult) {
	entries := s.char.Items()
	n, ok := args.Index(len(entries))
	if !ok {
		_ = s.term.WriteLine(s.r.Warn(fmt.Sprintf("Usage: %s <1-%d>", handler, len(entries))))
		return
	}
	e := entries[n]
	var err error
	switch handler {
	case command.HandlerEquip:
		err = s.char.Equip(e.InstanceID)
		if err == nil {
			_ = s.term.WriteLine(s.r.Good(fmt.Sprintf("You equip %s. Damage bonus is now +%d.", e.Item.Name, s.char.EquipmentBonus())))
		}
	case command.HandlerUnequip:
		err = s.char.Unequip(e.InstanceID)
		if err == nil {
			_ = s.term.WriteLine(fmt.Sprintf("You remove %s.", e.Item.Name))
		}
	case command.HandlerDrink:
		var healed int
		healed, err = s.char.DrinkPotion(e.InstanceID)
		if err == nil {
			_ = s.term.WriteLine(s.r.Good(fmt.Sprintf("You drink %s and recover %d health.", e.Item.Name, healed)))
		}
	case command.HandlerSell:
		var gold int
		gold, err = s.char.SellItem(e.InstanceID)
		if err == nil {
			_ = s.term.WriteLine(fmt.Sprintf("You sell %s for %d gold.", e.Item.Name, gold))
		}
	}
	switch {
	case err == nil:
	case errors.Is(err, inventory.ErrNotEquippable):
		_ = s.term.WriteLine(s.r.Warn(e.Item.Name + " cannot be equipped."))
	case errors.Is(err, character.ErrNotPotion):
		_ = s.term.WriteLine(s.r.Warn(e.Item.Name + " is not a potion."))
	default:
		_ = s.term.WriteLine(s.r.Warn(err.Error()))
	}
}
