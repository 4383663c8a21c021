package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/command"
	"github.com/cory-johannsen/delve/internal/game/dungeon"
)

// idleReminder is written when a combat prompt goes unanswered.
const idleReminder = "The monsters are waiting... attack or flee?"

// terminalPrompter asks the player for every exploration decision and
// prints each event as it happens.
type terminalPrompter struct {
	term        Terminal
	r           Renderer
	idle        time.Duration
	restStamina int
}

var (
	_ dungeon.Prompter = (*terminalPrompter)(nil)
	_ combat.Sink      = (*terminalPrompter)(nil)
)

func (p *terminalPrompter) Event(ev combat.Event) {
	if s := p.r.Event(ev); s != "" {
		_ = p.term.WriteLine(s)
	}
}

func (p *terminalPrompter) ConfirmEntry(ctx context.Context, c *character.Character, d dungeon.Dungeon) (bool, error) {
	_ = p.term.WriteLine("\n" + p.r.Title(d.Name))
	if d.Description != "" {
		_ = p.term.WriteLine(d.Description)
	}
	_ = p.term.WriteLine(d.String())
	_ = p.term.WriteLine(c.String())
	return confirm(ctx, p.term, p.r, "Enter the dungeon?")
}

// OfferRest skips the question when there is nothing to recover.
func (p *terminalPrompter) OfferRest(ctx context.Context, c *character.Character, _ dungeon.Dungeon, room int) (bool, error) {
	gain := min(p.restStamina, c.MaxStamina()-c.Stamina())
	if gain <= 0 {
		_ = p.term.WriteLine("You are fully rested and press on.")
		return false, nil
	}
	return confirm(ctx, p.term, p.r, fmt.Sprintf("Rest before room %d? (+%d stamina)", room+1, gain))
}

// Decide shows the roster and reads attack or flee, re-prompting on
// anything else.
func (p *terminalPrompter) Decide(ctx context.Context, enc *combat.Encounter) (combat.Action, error) {
	_ = p.term.WriteLine(p.r.Roster(enc.Roster()))
	_ = p.term.WriteLine(enc.Player().String())
	for {
		nudge := startIdle(p.idle, func() { _ = p.term.WriteLine(p.r.Warn(idleReminder)) })
		line, err := ask(ctx, p.term, p.r.Prompt(fmt.Sprintf("Round %d - [a]ttack or [f]lee: ", enc.Round()+1)))
		nudge.Stop()
		if err != nil {
			return combat.ActionAttack, err
		}
		if action, ok := parseAction(line); ok {
			return action, nil
		}
		_ = p.term.WriteLine(p.r.Warn("Type a to attack or f to flee."))
	}
}

func parseAction(s string) (combat.Action, bool) {
	cmd, p, ok := combatCommands.Match(s)
	if !ok || p.RawArgs != "" {
		return 0, false
	}
	if cmd.Handler == command.HandlerFlee {
		return combat.ActionFlee, true
	}
	return combat.ActionAttack, true
}
