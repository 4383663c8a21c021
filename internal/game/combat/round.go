package combat

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

// Decider supplies the player's action for the next round.
// Implementations re-prompt on invalid input themselves; an error means no
// decision can be obtained at all (closed connection, cancelled context).
type Decider interface {
	Decide(ctx context.Context, enc *Encounter) (Action, error)
}

// DeciderFunc adapts a function to Decider.
type DeciderFunc func(ctx context.Context, enc *Encounter) (Action, error)

// Decide calls f.
func (f DeciderFunc) Decide(ctx context.Context, enc *Encounter) (Action, error) {
	return f(ctx, enc)
}

// RoundResult summarises one resolved round.
type RoundResult struct {
	Round  int
	Status Status
	Events []Event
}

// Encounter is the combat between one player and one room's roster.
// It is owned by a single goroutine.
type Encounter struct {
	ID string

	player *character.Character
	roster []*monster.Monster
	src    dice.Source
	rules  Rules
	sink   Sink
	logger *zap.Logger

	round  int
	status Status
	loot   Loot
	events []Event
}

// NewEncounter starts an encounter. An empty roster is an immediate victory.
//
// Precondition: player and src must be non-nil. A nil sink or logger is replaced with a no-op.
func NewEncounter(player *character.Character, roster []*monster.Monster, src dice.Source, rules Rules, sink Sink, logger *zap.Logger) *Encounter {
	if sink == nil {
		sink = nopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.New().String()
	enc := &Encounter{
		ID:     id,
		player: player,
		roster: append([]*monster.Monster(nil), roster...),
		src:    src,
		rules:  rules.normalized(),
		sink:   sink,
		logger: logger.With(zap.String("encounter_id", id)),
	}
	if len(enc.living()) == 0 {
		enc.status = StatusVictory
	}
	return enc
}

// Player returns the player character.
func (e *Encounter) Player() *character.Character { return e.player }

// Roster returns the living monsters in targeting order.
func (e *Encounter) Roster() []*monster.Monster { return e.living() }

// Round returns the number of rounds resolved so far.
func (e *Encounter) Round() int { return e.round }

// Status returns the current status.
func (e *Encounter) Status() Status { return e.status }

// Outcome returns the encounter result. Loot is only reported for a victory.
func (e *Encounter) Outcome() Outcome {
	if e.status != StatusVictory {
		return Outcome{Status: e.status}
	}
	return Outcome{Status: e.status, Gold: e.loot.Gold, Items: append(e.loot.Items[:0:0], e.loot.Items...)}
}

// ResolveRound resolves the player's action and the monsters' retaliation.
//
//  1. Attack: a player short of StaminaCost is too tired and the action is
//     void. Otherwise stamina is debited and the first living monster is hit.
//  2. Flee: a FleeChance roll ends the encounter at once with no loot and no
//     retaliation; a failed roll wastes the action.
//  3. Defeated monsters are removed and looted into the running totals.
//  4. Each survivor attacks in roster order until the player dies.
//  5. Defeat if the player is dead, victory if the roster is empty.
//
// Postcondition: calling ResolveRound on a finished encounter is a no-op
// returning the terminal status.
func (e *Encounter) ResolveRound(action Action) RoundResult {
	if e.status.Terminal() {
		return RoundResult{Round: e.round, Status: e.status}
	}
	e.round++
	e.events = nil

	switch action {
	case ActionFlee:
		if dice.Percent(e.src, e.rules.FleeChance) {
			e.status = StatusFled
			e.emit(Event{Kind: EventFleeSucceeded, Actor: e.player.Name()})
			return e.finish()
		}
		e.emit(Event{Kind: EventFleeFailed, Actor: e.player.Name()})
	default:
		e.playerAttack()
	}

	e.collectDefeated()
	e.monstersAttack()

	switch {
	case !e.player.Alive():
		e.status = StatusDefeat
		e.emit(Event{Kind: EventPlayerDefeated, Target: e.player.Name(), MaxHealth: e.player.MaxHealth()})
	case len(e.living()) == 0:
		e.status = StatusVictory
		e.emit(Event{Kind: EventVictory, Amount: e.loot.Gold, Items: append(e.loot.Items[:0:0], e.loot.Items...)})
	}
	return e.finish()
}

func (e *Encounter) playerAttack() {
	cost := e.player.StaminaCost()
	if !e.player.SpendStamina(cost) {
		e.emit(Event{
			Kind:      EventTooTired,
			Actor:     e.player.Name(),
			Amount:    cost,
			Health:    e.player.Stamina(),
			MaxHealth: e.player.MaxStamina(),
		})
		return
	}
	living := e.living()
	if len(living) == 0 {
		return
	}
	target := living[0]
	strike := PlayerStrike(e.player, e.src)
	res := target.ApplyDamage(strike.Damage)
	e.emit(Event{
		Kind:      EventPlayerAttack,
		Actor:     e.player.Name(),
		Target:    target.Label(),
		TargetID:  target.ID,
		Amount:    res.Dealt,
		Strike:    strike.Kind,
		Health:    target.Health,
		MaxHealth: target.MaxHealth,
	})
	if res.Regenerated > 0 {
		e.emit(Event{
			Kind:      EventRegenerated,
			Target:    target.Label(),
			TargetID:  target.ID,
			Amount:    res.Regenerated,
			Health:    target.Health,
			MaxHealth: target.MaxHealth,
		})
	}
}

func (e *Encounter) collectDefeated() {
	kept := e.roster[:0]
	for _, m := range e.roster {
		if m.Alive() {
			kept = append(kept, m)
			continue
		}
		loot := LootMonster(m, e.src)
		e.loot.add(loot)
		e.emit(Event{Kind: EventMonsterDefeated, Target: m.Label(), TargetID: m.ID, MaxHealth: m.MaxHealth})
		e.emit(Event{Kind: EventLoot, Target: m.Label(), TargetID: m.ID, Amount: loot.Gold, Items: loot.Items})
	}
	e.roster = kept
}

func (e *Encounter) monstersAttack() {
	for _, m := range e.living() {
		if !e.player.Alive() {
			return
		}
		strike := MonsterStrike(m, e.src)
		dealt := e.player.ApplyDamage(strike.Damage)
		e.emit(Event{
			Kind:      EventMonsterAttack,
			Actor:     m.Label(),
			Target:    e.player.Name(),
			Amount:    dealt,
			Strike:    strike.Kind,
			Health:    e.player.Health(),
			MaxHealth: e.player.MaxHealth(),
		})
	}
}

func (e *Encounter) living() []*monster.Monster {
	out := make([]*monster.Monster, 0, len(e.roster))
	for _, m := range e.roster {
		if m.Alive() {
			out = append(out, m)
		}
	}
	return out
}

func (e *Encounter) emit(ev Event) {
	ev.Round = e.round
	e.events = append(e.events, ev)
	e.sink.Event(ev)
}

func (e *Encounter) finish() RoundResult {
	if e.status.Terminal() {
		e.logger.Debug("encounter finished",
			zap.Stringer("status", e.status),
			zap.Int("rounds", e.round),
			zap.Int("gold", e.loot.Gold),
		)
	}
	return RoundResult{Round: e.round, Status: e.status, Events: e.events}
}

// RunEncounter resolves rounds until the encounter ends.
//
// Postcondition: on a nil error the returned outcome is terminal. A decider
// error or context cancellation stops the loop and is returned wrapped; the
// encounter is left active.
func RunEncounter(ctx context.Context, enc *Encounter, decider Decider) (Outcome, error) {
	for !enc.Status().Terminal() {
		if err := ctx.Err(); err != nil {
			return enc.Outcome(), fmt.Errorf("encounter %s: %w", enc.ID, err)
		}
		action, err := decider.Decide(ctx, enc)
		if err != nil {
			return enc.Outcome(), fmt.Errorf("encounter %s: deciding round %d: %w", enc.ID, enc.Round()+1, err)
		}
		enc.ResolveRound(action)
	}
	return enc.Outcome(), nil
}
