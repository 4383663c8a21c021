package handlers

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/delve/internal/frontend/telnet"
	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dungeon"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/monster"
	"github.com/cory-johannsen/delve/internal/game/presence"
	"github.com/cory-johannsen/delve/internal/storage"
)

// Renderer turns game state and combat events into styled text.
type Renderer struct {
	pal telnet.Palette
}

// NewRenderer creates a Renderer using pal.
func NewRenderer(pal telnet.Palette) Renderer {
	return Renderer{pal: pal}
}

func (r Renderer) Prompt(s string) string { return r.pal.Paint(s, telnet.Bold) }
func (r Renderer) Warn(s string) string   { return r.pal.Paint(s, telnet.Yellow) }
func (r Renderer) Error(s string) string  { return r.pal.Paint(s, telnet.Red) }
func (r Renderer) Title(s string) string  { return r.pal.Paint(s, telnet.Bold, telnet.Cyan) }
func (r Renderer) Good(s string) string   { return r.pal.Paint(s, telnet.Green) }

// Event renders one combat or exploration event. Unknown kinds render as "".
func (r Renderer) Event(ev combat.Event) string {
	switch ev.Kind {
	case combat.EventRoomEntered:
		return "\n" + r.Title(fmt.Sprintf("=== %s: room %d of %d ===", ev.Text, ev.Amount, ev.MaxHealth))
	case combat.EventRoomEmpty:
		return r.pal.Paint("The room is silent and empty. You press on.", telnet.Dim)
	case combat.EventFlavor:
		return r.pal.Paint(ev.Text, telnet.Magenta)
	case combat.EventPlayerAttack:
		verb := "hits"
		switch ev.Strike {
		case combat.StrikeSpell:
			verb = "casts a spell at"
		case combat.StrikeStaff:
			verb = "swings a staff at"
		}
		return fmt.Sprintf("%s %s %s for %s damage! %s",
			ev.Actor, verb, ev.Target, r.pal.Paintf(telnet.BrightYellow, "%d", ev.Amount), healthTag(ev))
	case combat.EventTooTired:
		return r.Warn(fmt.Sprintf("%s is too tired to attack! (needs %d stamina, has %d/%d)",
			ev.Actor, ev.Amount, ev.Health, ev.MaxHealth))
	case combat.EventRegenerated:
		return r.pal.Paint(fmt.Sprintf("%s regenerates %d health! %s", ev.Target, ev.Amount, healthTag(ev)), telnet.Green)
	case combat.EventMonsterDefeated:
		return r.pal.Paint(ev.Target+" has been defeated!", telnet.BrightGreen)
	case combat.EventLoot:
		s := fmt.Sprintf("%s dropped %s gold", ev.Target, r.pal.Paintf(telnet.Yellow, "%d", ev.Amount))
		if len(ev.Items) > 0 {
			s += " and " + itemNames(ev.Items)
		}
		return s + "."
	case combat.EventMonsterAttack:
		return r.monsterAttack(ev)
	case combat.EventFleeSucceeded:
		return r.Warn(ev.Actor + " escapes from the dungeon!")
	case combat.EventFleeFailed:
		return r.Warn(ev.Actor + " tries to flee but cannot get away!")
	case combat.EventPlayerDefeated:
		return r.pal.Paint(ev.Target+" has fallen...", telnet.Bold, telnet.BrightRed)
	case combat.EventVictory:
		return r.Good(fmt.Sprintf("Victory! The room is clear. (%d gold)", ev.Amount))
	case combat.EventRested:
		return r.Good(fmt.Sprintf("You rest and recover %d stamina. (%d/%d)", ev.Amount, ev.Health, ev.MaxHealth))
	case combat.EventItemDiscarded:
		return r.Warn(fmt.Sprintf("Your pack is full. %s is left behind.", itemNames(ev.Items)))
	}
	return ""
}

func (r Renderer) monsterAttack(ev combat.Event) string {
	dmg := r.pal.Paintf(telnet.Red, "%d", ev.Amount)
	switch ev.Strike {
	case combat.StrikeMiss:
		return fmt.Sprintf("%s swings at %s and misses!", ev.Actor, ev.Target)
	case combat.StrikeCrit:
		return fmt.Sprintf("%s strikes furiously at %s for %s damage! %s", ev.Actor, ev.Target, dmg, healthTag(ev))
	case combat.StrikeDevastating:
		return r.pal.Paint("DEVASTATING BLOW! ", telnet.Bold, telnet.Red) +
			fmt.Sprintf("%s smashes %s for %s damage! %s", ev.Actor, ev.Target, dmg, healthTag(ev))
	case combat.StrikeTremor:
		return fmt.Sprintf("%s pounds the ground and the room shakes! It hits %s for %s damage. %s",
			ev.Actor, ev.Target, dmg, healthTag(ev))
	}
	return fmt.Sprintf("%s attacks %s for %s damage. %s", ev.Actor, ev.Target, dmg, healthTag(ev))
}

func healthTag(ev combat.Event) string {
	return fmt.Sprintf("(%d/%d HP)", ev.Health, ev.MaxHealth)
}

func itemNames(items []inventory.Item) string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return strings.Join(names, ", ")
}

// Status renders the character sheet.
func (r Renderer) Status(c *character.Character) string {
	var b strings.Builder
	b.WriteString(r.Title("Character status") + "\n")
	b.WriteString("  " + c.String() + "\n")
	fmt.Fprintf(&b, "  Experience: %d (level %d)\n", c.Experience(), c.Level())
	if bonus := c.EquipmentBonus(); bonus > 0 {
		fmt.Fprintf(&b, "  Equipment bonus: +%d\n", bonus)
	}
	fmt.Fprintf(&b, "  Pack: %d/%d items worth %d gold", len(c.Items()), c.InventoryCapacity(), c.InventoryValue())
	return b.String()
}

// Inventory renders a numbered inventory listing.
func (r Renderer) Inventory(entries []inventory.Entry, capacity int) string {
	if len(entries) == 0 {
		return "Your pack is empty."
	}
	var b strings.Builder
	b.WriteString(r.Title(fmt.Sprintf("Inventory (%d/%d)", len(entries), capacity)))
	for i, e := range entries {
		mark := "  "
		if e.Equipped {
			mark = r.Good("E ")
		}
		fmt.Fprintf(&b, "\n %s%2d. %s", mark, i+1, e.Item)
	}
	return b.String()
}

// Roster renders the living monsters of a room, target first.
func (r Renderer) Roster(ms []*monster.Monster) string {
	var b strings.Builder
	b.WriteString("Monsters:")
	for i, m := range ms {
		line := fmt.Sprintf("\n  %d. %s", i+1, m)
		if i == 0 {
			line = r.pal.Paint(line, telnet.Bold)
		}
		b.WriteString(line)
	}
	return b.String()
}

// Dungeons renders the numbered dungeon list.
func (r Renderer) Dungeons(ds []dungeon.Dungeon) string {
	var b strings.Builder
	b.WriteString(r.Title("Dungeons"))
	for i, d := range ds {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, d)
	}
	return b.String()
}

// Result renders the summary of an exploration.
func (r Renderer) Result(d dungeon.Dungeon, res dungeon.Result) string {
	var b strings.Builder
	switch res.Outcome {
	case dungeon.OutcomeCompleted:
		b.WriteString(r.pal.Paint(fmt.Sprintf("You conquered %s!", d.Name), telnet.Bold, telnet.BrightGreen))
	case dungeon.OutcomeFailed:
		b.WriteString(r.Error(fmt.Sprintf("You were defeated in %s.", d.Name)))
	case dungeon.OutcomeFled:
		b.WriteString(r.Warn(fmt.Sprintf("You fled %s.", d.Name)))
	default:
		b.WriteString(fmt.Sprintf("You left %s.", d.Name))
	}
	fmt.Fprintf(&b, "\n  Rooms cleared: %d/%d  Rounds fought: %d  Gold: %d", res.RoomsCleared, d.RoomCount, res.Rounds, res.Gold)
	if len(res.Items) > 0 {
		fmt.Fprintf(&b, "\n  Items found: %s", itemNames(res.Items))
	}
	if len(res.Discarded) > 0 {
		fmt.Fprintf(&b, "\n  Left behind: %s", itemNames(res.Discarded))
	}
	if res.Experience > 0 {
		fmt.Fprintf(&b, "\n  Experience: +%d", res.Experience)
	}
	if res.LevelsGained > 0 {
		b.WriteString("\n  " + r.pal.Paintf(telnet.BrightYellow, "Level up! (+%d)", res.LevelsGained))
	}
	return b.String()
}

// Summaries renders saved characters.
func (r Renderer) Summaries(list []storage.Summary) string {
	if len(list) == 0 {
		return "No saved characters."
	}
	var b strings.Builder
	b.WriteString(r.Title("Saved characters"))
	for _, s := range list {
		fmt.Fprintf(&b, "\n  #%d %s the %s, level %d, %d gold (saved %s)",
			s.ID, s.Name, s.Class.DisplayName(), s.Level, s.Gold, s.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

// Who lists the characters in play.
func (r Renderer) Who(players []presence.Player) string {
	if len(players) == 0 {
		return "Nobody is adventuring right now."
	}
	var b strings.Builder
	b.WriteString(r.Title(fmt.Sprintf("Adventurers (%d)", len(players))))
	for _, p := range players {
		where := "resting in town"
		if p.Location != presence.Town {
			where = "exploring " + p.Location
		}
		fmt.Fprintf(&b, "\n  %s the %s, level %d, %s", p.Name, p.Class, p.Level, where)
	}
	return b.String()
}
