package dungeon

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/monster"
)

// DefaultRestStamina is the stamina a rest between rooms restores.
const DefaultRestStamina = 20

// Outcome is how an exploration ended.
type Outcome int

const (
	// OutcomeAborted: the player declined to enter or input failed. Rooms
	// already cleared keep their credits.
	OutcomeAborted Outcome = iota
	// OutcomeCompleted: every room was cleared and the rewards were paid.
	OutcomeCompleted
	// OutcomeFailed: the character was defeated.
	OutcomeFailed
	// OutcomeFled: the character escaped a room and left the dungeon.
	OutcomeFled
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case OutcomeAborted:
		return "aborted"
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeFled:
		return "fled"
	default:
		return "unknown"
	}
}

// Result summarises one exploration.
type Result struct {
	RunID     string
	DungeonID string
	Outcome   Outcome
	// RoomsCleared counts rooms won or found empty.
	RoomsCleared int
	// Gold is all gold credited during the run: per-monster gold plus
	// GoldReward on completion.
	Gold int
	// Items were added to the inventory; Discarded did not fit.
	Items     []inventory.Item
	Discarded []inventory.Item
	// Experience and LevelsGained are only non-zero on completion.
	Experience   int
	LevelsGained int
	Rounds       int
}

// Prompter supplies every player decision of an exploration. A Prompter
// that also implements combat.Sink receives each event as it happens.
type Prompter interface {
	combat.Decider
	// ConfirmEntry asks whether to enter d. Declining aborts with no side effects.
	ConfirmEntry(ctx context.Context, c *character.Character, d Dungeon) (bool, error)
	// OfferRest asks whether to rest after clearing room of d.
	OfferRest(ctx context.Context, c *character.Character, d Dungeon, room int) (bool, error)
}

// Options configures an Explorer. Zero values select the defaults.
type Options struct {
	Rules       combat.Rules
	RestStamina int
	Hooks       Hooks
	// Sink observes every event of every run, after the prompter.
	Sink combat.Sink
}

// Explorer runs characters through dungeons. It holds no per-run state, but
// its dice source is shared: use one Explorer per session.
type Explorer struct {
	gen    *combat.Generator
	src    dice.Source
	opts   Options
	logger *zap.Logger
}

// NewExplorer creates an Explorer.
//
// Precondition: gen and src must be non-nil. A nil logger is replaced with a no-op logger.
func NewExplorer(gen *combat.Generator, src dice.Source, opts Options, logger *zap.Logger) *Explorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Rules == (combat.Rules{}) {
		opts.Rules = combat.DefaultRules()
	}
	if opts.RestStamina <= 0 {
		opts.RestStamina = DefaultRestStamina
	}
	if opts.Hooks == nil {
		opts.Hooks = noHooks{}
	}
	return &Explorer{gen: gen, src: src, opts: opts, logger: logger}
}

// Explore walks c through d room by room.
//
// Victory in a room credits its gold and items to c at once; a later defeat
// or flight keeps them. Completing the last room pays GoldReward and
// ExpReward. A prompter error or context cancellation ends the run as
// OutcomeAborted and is returned wrapped.
//
// Precondition: c and p must be non-nil.
func (x *Explorer) Explore(ctx context.Context, c *character.Character, d Dungeon, p Prompter) (Result, error) {
	d = d.Normalized()
	res := Result{RunID: uuid.New().String(), DungeonID: d.ID, Outcome: OutcomeAborted}
	log := x.logger.With(
		zap.String("run_id", res.RunID),
		zap.String("dungeon", d.ID),
		zap.String("character", c.Name()),
	)

	enter, err := p.ConfirmEntry(ctx, c, d)
	if err != nil {
		return res, fmt.Errorf("run %s: confirming entry: %w", res.RunID, err)
	}
	if !enter {
		log.Debug("entry declined")
		return res, nil
	}
	log.Info("exploration started", zap.Int("rooms", d.RoomCount), zap.Int("difficulty", d.Difficulty))

	var out combat.Sink = x.opts.Sink
	if s, ok := p.(combat.Sink); ok {
		out = combat.MultiSink{s, x.opts.Sink}
	}
	if out == nil {
		out = combat.MultiSink{}
	}

	for room := 1; room <= d.RoomCount; room++ {
		if err := ctx.Err(); err != nil {
			log.Info("exploration aborted", zap.Int("room", room), zap.Error(err))
			return res, fmt.Errorf("run %s: %w", res.RunID, err)
		}

		roster := x.gen.GenerateRoom(d.Plan(), d.Difficulty)
		out.Event(combat.Event{Kind: combat.EventRoomEntered, Amount: room, MaxHealth: d.RoomCount, Text: d.Name})
		if text := x.opts.Hooks.RoomEntered(ctx, d, room, roster); text != "" {
			out.Event(combat.Event{Kind: combat.EventFlavor, Text: text})
		}
		if len(roster) == 0 {
			out.Event(combat.Event{Kind: combat.EventRoomEmpty, Amount: room})
			log.Warn("room empty", zap.Int("room", room))
			res.RoomsCleared++
			continue
		}

		rs := &roomSink{ctx: ctx, out: out, hooks: x.opts.Hooks, dungeon: d, roster: roster}
		enc := combat.NewEncounter(c, roster, x.src, x.opts.Rules, rs, log)
		outcome, err := combat.RunEncounter(ctx, enc, p)
		res.Rounds += enc.Round()
		if err != nil {
			log.Info("exploration aborted", zap.Int("room", room), zap.Error(err))
			return res, fmt.Errorf("run %s: room %d: %w", res.RunID, room, err)
		}

		switch outcome.Status {
		case combat.StatusDefeat:
			res.Outcome = OutcomeFailed
			log.Info("character defeated", zap.Int("room", room), zap.Int("gold", res.Gold))
			return res, nil
		case combat.StatusFled:
			res.Outcome = OutcomeFled
			log.Info("character fled", zap.Int("room", room), zap.Int("gold", res.Gold))
			return res, nil
		}

		x.credit(c, outcome, &res, out, log)
		res.RoomsCleared++
		log.Debug("room cleared", zap.Int("room", room), zap.Int("gold", outcome.Gold), zap.Int("items", len(outcome.Items)))

		if room < d.RoomCount {
			rest, err := p.OfferRest(ctx, c, d, room)
			if err != nil {
				log.Info("exploration aborted", zap.Int("room", room), zap.Error(err))
				return res, fmt.Errorf("run %s: offering rest after room %d: %w", res.RunID, room, err)
			}
			if rest {
				restored := c.RestoreStamina(x.opts.RestStamina)
				out.Event(combat.Event{Kind: combat.EventRested, Amount: restored, Health: c.Stamina(), MaxHealth: c.MaxStamina()})
			}
		}
	}

	c.AddGold(d.GoldReward)
	res.Gold += d.GoldReward
	res.Experience = d.ExpReward
	res.LevelsGained = c.AddExperience(d.ExpReward)
	res.Outcome = OutcomeCompleted
	log.Info("exploration completed",
		zap.Int("gold", res.Gold),
		zap.Int("experience", res.Experience),
		zap.Int("levels_gained", res.LevelsGained),
		zap.Int("rounds", res.Rounds),
	)
	return res, nil
}

// credit pays a won room's loot into c. Items that do not fit are discarded.
func (x *Explorer) credit(c *character.Character, o combat.Outcome, res *Result, out combat.Sink, log *zap.Logger) {
	c.AddGold(o.Gold)
	res.Gold += o.Gold
	for _, it := range o.Items {
		if _, err := c.AddItem(it); err != nil {
			log.Warn("discarding loot", zap.String("item", it.ID), zap.Error(err))
			res.Discarded = append(res.Discarded, it)
			out.Event(combat.Event{Kind: combat.EventItemDiscarded, Items: []inventory.Item{it}})
			continue
		}
		res.Items = append(res.Items, it)
	}
}

// roomSink forwards encounter events and adds defeat flavor from the hooks.
type roomSink struct {
	ctx     context.Context
	out     combat.Sink
	hooks   Hooks
	dungeon Dungeon
	roster  []*monster.Monster
}

func (s *roomSink) Event(e combat.Event) {
	s.out.Event(e)
	if e.Kind != combat.EventMonsterDefeated {
		return
	}
	for _, m := range s.roster {
		if m.ID != e.TargetID {
			continue
		}
		if text := s.hooks.MonsterDefeated(s.ctx, s.dungeon, m); text != "" {
			s.out.Event(combat.Event{Kind: combat.EventFlavor, Round: e.Round, Text: text})
		}
		return
	}
}
