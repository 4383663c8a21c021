// Package command provides the menu command registries, the line parser,
// and the built-in command definitions.
package command

// Categories name the menu a command belongs to.
const (
	CategoryMain      = "main"
	CategoryCharacter = "character"
	CategoryInventory = "inventory"
	CategoryCombat    = "combat"
)

// Handler identifiers dispatched by the session menus.
const (
	HandlerNew       = "new"
	HandlerLoad      = "load"
	HandlerList      = "list"
	HandlerDelete    = "delete"
	HandlerWho       = "who"
	HandlerQuit      = "quit"
	HandlerHelp      = "help"
	HandlerExplore   = "explore"
	HandlerStatus    = "status"
	HandlerInventory = "inventory"
	HandlerTrain     = "train"
	HandlerRest      = "rest"
	HandlerSave      = "save"
	HandlerBack      = "back"
	HandlerShow      = "show"
	HandlerByType    = "type"
	HandlerSort      = "sort"
	HandlerEquip     = "equip"
	HandlerUnequip   = "unequip"
	HandlerDrink     = "drink"
	HandlerSell      = "sell"
	HandlerAttack    = "attack"
	HandlerFlee      = "flee"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument form, e.g. "equip <n>". Empty means Name.
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category is the menu the command belongs to.
	Category string
	// Handler identifies the action the session performs.
	Handler string
}

// Label returns Usage, falling back to Name.
func (c *Command) Label() string {
	if c.Usage != "" {
		return c.Usage
	}
	return c.Name
}

// MainCommands are offered while no character is attached.
func MainCommands() []Command {
	return []Command{
		{Name: "new", Aliases: []string{"create"}, Help: "create a character", Category: CategoryMain, Handler: HandlerNew},
		{Name: "load", Help: "load a saved character", Category: CategoryMain, Handler: HandlerLoad},
		{Name: "list", Help: "list saved characters", Category: CategoryMain, Handler: HandlerList},
		{Name: "delete", Help: "delete a saved character", Category: CategoryMain, Handler: HandlerDelete},
		{Name: "who", Help: "see who is adventuring", Category: CategoryMain, Handler: HandlerWho},
		{Name: "quit", Aliases: []string{"exit"}, Help: "leave the game", Category: CategoryMain, Handler: HandlerQuit},
		{Name: "help", Aliases: []string{"?"}, Help: "show this menu", Category: CategoryMain, Handler: HandlerHelp},
	}
}

// CharacterCommands are offered while a character is attached.
func CharacterCommands() []Command {
	return []Command{
		{Name: "explore", Aliases: []string{"e"}, Help: "enter a dungeon", Category: CategoryCharacter, Handler: HandlerExplore},
		{Name: "status", Aliases: []string{"s"}, Help: "show your character", Category: CategoryCharacter, Handler: HandlerStatus},
		{Name: "inventory", Aliases: []string{"inv", "i"}, Help: "manage your pack", Category: CategoryCharacter, Handler: HandlerInventory},
		{Name: "train", Help: "spend stamina to improve", Category: CategoryCharacter, Handler: HandlerTrain},
		{Name: "rest", Help: "recover fully", Category: CategoryCharacter, Handler: HandlerRest},
		{Name: "save", Help: "save your character", Category: CategoryCharacter, Handler: HandlerSave},
		{Name: "who", Help: "see who is adventuring", Category: CategoryCharacter, Handler: HandlerWho},
		{Name: "back", Help: "return to the main menu", Category: CategoryCharacter, Handler: HandlerBack},
		{Name: "quit", Aliases: []string{"exit"}, Help: "leave the game", Category: CategoryCharacter, Handler: HandlerQuit},
		{Name: "help", Aliases: []string{"?"}, Help: "show this menu", Category: CategoryCharacter, Handler: HandlerHelp},
	}
}

// InventoryCommands are offered by the inventory menu.
func InventoryCommands() []Command {
	return []Command{
		{Name: "list", Aliases: []string{"l"}, Help: "show everything you carry", Category: CategoryInventory, Handler: HandlerShow},
		{Name: "type", Aliases: []string{"types"}, Help: "group items by category", Category: CategoryInventory, Handler: HandlerByType},
		{Name: "equip", Usage: "equip <n>", Help: "wear item n", Category: CategoryInventory, Handler: HandlerEquip},
		{Name: "unequip", Usage: "unequip <n>", Help: "remove item n", Category: CategoryInventory, Handler: HandlerUnequip},
		{Name: "drink", Usage: "drink <n>", Help: "drink potion n", Category: CategoryInventory, Handler: HandlerDrink},
		{Name: "sell", Usage: "sell <n>", Help: "sell item n for its value", Category: CategoryInventory, Handler: HandlerSell},
		{Name: "sort", Usage: "sort name|value|category", Help: "reorder your pack", Category: CategoryInventory, Handler: HandlerSort},
		{Name: "back", Aliases: []string{"b", "done"}, Help: "return to the character menu", Category: CategoryInventory, Handler: HandlerBack},
		{Name: "help", Aliases: []string{"?"}, Help: "show these commands", Category: CategoryInventory, Handler: HandlerHelp},
	}
}

// CombatCommands are the choices offered each combat round.
func CombatCommands() []Command {
	return []Command{
		{Name: "attack", Aliases: []string{"a"}, Help: "strike every monster in the room", Category: CategoryCombat, Handler: HandlerAttack},
		{Name: "flee", Aliases: []string{"f", "run"}, Help: "try to escape the dungeon", Category: CategoryCombat, Handler: HandlerFlee},
	}
}
