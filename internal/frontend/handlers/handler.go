package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/frontend/telnet"
	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/dungeon"
	"github.com/cory-johannsen/delve/internal/game/monster"
	"github.com/cory-johannsen/delve/internal/game/presence"
	"github.com/cory-johannsen/delve/internal/game/stamina"
	"github.com/cory-johannsen/delve/internal/narration"
	"github.com/cory-johannsen/delve/internal/storage"
)

// CharacterStore persists character snapshots. storage.MemoryStore and
// postgres.CharacterRepository both satisfy it.
type CharacterStore interface {
	Save(ctx context.Context, s character.Snapshot) (character.Snapshot, error)
	Load(ctx context.Context, id int64) (character.Snapshot, error)
	LoadByName(ctx context.Context, name string) (character.Snapshot, error)
	List(ctx context.Context) ([]storage.Summary, error)
	Delete(ctx context.Context, id int64) error
}

var _ CharacterStore = (*storage.MemoryStore)(nil)

// Deps are the services shared by every session.
type Deps struct {
	Catalog  *dungeon.Catalog
	Bestiary *monster.Bestiary
	Store    CharacterStore
	// Narrator writes the epilogue after a run. Nil selects narration.Static.
	Narrator narration.Narrator
	// Hooks supplies room and defeat flavor. Nil selects no flavor.
	Hooks dungeon.Hooks
	// Presence, when set, keeps a character name in one session at a time
	// and answers the who command.
	Presence *presence.Manager
	// Recovery, when set, restores stamina while the player is out of combat.
	Recovery    *stamina.RecoverySystem
	Rules       combat.Rules
	RestStamina int
	// IdleNudge is how long a combat prompt waits before a reminder. 0 disables it.
	IdleNudge time.Duration
	// NewSource returns a fresh dice source per session. Nil selects crypto randomness.
	NewSource func() dice.Source
	Palette   telnet.Palette
}

// GameHandler runs the game menu for every connected player.
type GameHandler struct {
	deps   Deps
	logger *zap.Logger
}

var _ telnet.SessionHandler = (*GameHandler)(nil)

// NewGameHandler creates a GameHandler.
//
// Precondition: deps.Catalog, deps.Bestiary and deps.Store must be non-nil.
func NewGameHandler(deps Deps, logger *zap.Logger) *GameHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Narrator == nil {
		deps.Narrator = narration.Static{}
	}
	if deps.NewSource == nil {
		deps.NewSource = dice.NewCryptoSource
	}
	if deps.RestStamina <= 0 {
		deps.RestStamina = dungeon.DefaultRestStamina
	}
	return &GameHandler{deps: deps, logger: logger}
}

// HandleSession implements telnet.SessionHandler.
func (h *GameHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	return h.Run(ctx, conn, conn.ID())
}

// Run plays one session over term until the player quits, input fails, or
// ctx is cancelled.
//
// Postcondition: returns nil when the player quits.
func (h *GameHandler) Run(ctx context.Context, term Terminal, sessionID string) error {
	s := h.newSession(term, sessionID)
	defer s.detach()
	return s.run(ctx)
}

func (h *GameHandler) newSession(term Terminal, id string) *session {
	log := h.logger.With(zap.String("session_id", id))
	r := NewRenderer(h.deps.Palette)
	src := dice.NewLoggedRoller(h.deps.NewSource(), log)
	gen := combat.NewGenerator(h.deps.Bestiary, h.deps.Rules, src, log)
	explorer := dungeon.NewExplorer(gen, src, dungeon.Options{
		Rules:       h.deps.Rules,
		RestStamina: h.deps.RestStamina,
		Hooks:       h.deps.Hooks,
		Sink:        eventLogger{log},
	}, log)
	return &session{
		id:       id,
		term:     term,
		r:        r,
		deps:     h.deps,
		explorer: explorer,
		src:      src,
		prompter: &terminalPrompter{term: term, r: r, idle: h.deps.IdleNudge, restStamina: h.deps.RestStamina},
		notifier: &staminaNotifier{term: term, r: r},
		log:      log,
	}
}

// eventLogger records combat events at debug level.
type eventLogger struct{ log *zap.Logger }

func (l eventLogger) Event(ev combat.Event) {
	l.log.Debug("combat event",
		zap.Stringer("kind", ev.Kind),
		zap.Int("round", ev.Round),
		zap.String("actor", ev.Actor),
		zap.String("target", ev.Target),
		zap.Int("amount", ev.Amount),
	)
}
