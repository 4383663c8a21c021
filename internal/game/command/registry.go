package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Registry maps command names and aliases to Command definitions.
type Registry struct {
	ordered  []*Command          // registration order, used for listings
	commands map[string]*Command // canonical name → command
	aliases  map[string]string   // alias → canonical name
	numbered bool
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		ordered:  make([]*Command, 0, len(cmds)),
		commands: make(map[string]*Command, len(cmds)),
		aliases:  make(map[string]string),
	}

	for i := range cmds {
		cmd := &cmds[i]
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		if _, exists := r.aliases[cmd.Name]; exists {
			return nil, fmt.Errorf("command name %q conflicts with an existing alias", cmd.Name)
		}
		r.commands[cmd.Name] = cmd
		r.ordered = append(r.ordered, cmd)

		for _, alias := range cmd.Aliases {
			if _, exists := r.commands[alias]; exists {
				return nil, fmt.Errorf("alias %q conflicts with command name %q", alias, alias)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, cmd.Name)
			}
			r.aliases[alias] = cmd.Name
		}
	}

	return r, nil
}

// NewNumberedRegistry is NewRegistry with each command also reachable by
// its 1-based position.
//
// Precondition: No command may use a numeric alias of its own.
func NewNumberedRegistry(cmds []Command) (*Registry, error) {
	numbered := make([]Command, len(cmds))
	for i, cmd := range cmds {
		cmd.Aliases = append(append([]string(nil), cmd.Aliases...), strconv.Itoa(i+1))
		numbered[i] = cmd
	}
	r, err := NewRegistry(numbered)
	if err != nil {
		return nil, err
	}
	r.numbered = true
	return r, nil
}

func mustRegistry(r *Registry, err error) *Registry {
	if err != nil {
		panic(fmt.Sprintf("building command registry: %v", err))
	}
	return r
}

// MainMenu returns the numbered main menu registry.
func MainMenu() *Registry { return mustRegistry(NewNumberedRegistry(MainCommands())) }

// CharacterMenu returns the numbered character menu registry.
func CharacterMenu() *Registry { return mustRegistry(NewNumberedRegistry(CharacterCommands())) }

// InventoryMenu returns the inventory menu registry.
func InventoryMenu() *Registry { return mustRegistry(NewRegistry(InventoryCommands())) }

// CombatMenu returns the numbered combat choice registry.
func CombatMenu() *Registry { return mustRegistry(NewNumberedRegistry(CombatCommands())) }

// Resolve looks up a command by name or alias.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(input string) (*Command, bool) {
	if cmd, ok := r.commands[input]; ok {
		return cmd, true
	}
	if canonical, ok := r.aliases[input]; ok {
		return r.commands[canonical], true
	}
	return nil, false
}

// Match parses line and resolves its command word.
//
// Postcondition: ok is false for a blank line or an unknown command; the
// parse result is returned either way.
func (r *Registry) Match(line string) (*Command, ParseResult, bool) {
	p := Parse(line)
	if p.Command == "" {
		return nil, p, false
	}
	cmd, ok := r.Resolve(p.Command)
	return cmd, p, ok
}

// Commands returns all registered commands in registration order.
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.ordered...)
}

// CommandsByCategory returns commands grouped by category.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.ordered {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}

// Listing renders one line per command, numbered when the registry is.
func (r *Registry) Listing() string {
	width := 0
	for _, cmd := range r.ordered {
		width = max(width, len(cmd.Label()))
	}
	lines := make([]string, 0, len(r.ordered))
	for i, cmd := range r.ordered {
		line := fmt.Sprintf("%-*s - %s", width, cmd.Label(), cmd.Help)
		if r.numbered {
			line = fmt.Sprintf("%d. %s", i+1, line)
		}
		lines = append(lines, "  "+line)
	}
	return strings.Join(lines, "\n")
}
