// Package app holds the constructors that turn a Config into running game
// components. The binaries compose them with wire.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/content"
	"github.com/cory-johannsen/delve/internal/frontend/handlers"
	"github.com/cory-johannsen/delve/internal/frontend/telnet"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/presence"
	"github.com/cory-johannsen/delve/internal/game/stamina"
	"github.com/cory-johannsen/delve/internal/narration"
	"github.com/cory-johannsen/delve/internal/observability"
	"github.com/cory-johannsen/delve/internal/storage"
	"github.com/cory-johannsen/delve/internal/storage/postgres"
)

// Component names the binary in every log entry.
type Component string

// ProviderSet builds handlers.Deps and its collaborators from a Config.
var ProviderSet = wire.NewSet(
	NewLogger,
	NewSource,
	NewLibrary,
	NewStore,
	NewNarrator,
	NewRecovery,
	NewPresence,
	NewDeps,
	handlers.NewGameHandler,
)

// NewLogger builds the logger for component. The cleanup flushes it.
func NewLogger(cfg config.Config, component Component) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(cfg.Logging, string(component))
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// NewSource returns the cryptographic dice source used for content flavor.
// Sessions draw their own sources through Deps.NewSource.
func NewSource() dice.Source {
	return dice.NewCryptoSource()
}

// NewLibrary loads the built-in content plus cfg.Game.ContentDir.
func NewLibrary(cfg config.Config, src dice.Source, logger *zap.Logger) (*content.Library, func(), error) {
	lib, err := content.Load(cfg.Game.ContentDir, src, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("loading content: %w", err)
	}
	return lib, lib.Close, nil
}

// NewStore opens the character store selected by cfg.Game.Persistence.
func NewStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (handlers.CharacterStore, func(), error) {
	if cfg.Game.Persistence != "postgres" {
		logger.Info("characters are kept in memory for this run")
		return storage.NewMemoryStore(), func() {}, nil
	}
	start := time.Now()
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	logger.Info("database connected",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Name),
		zap.Duration("elapsed", time.Since(start)),
	)
	if cfg.Database.AutoMigrate {
		version, err := postgres.Migrate(cfg.Database)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrating database: %w", err)
		}
		logger.Info("schema up to date", zap.Uint("version", version))
	}
	return postgres.NewCharacterRepository(pool.DB()), pool.Close, nil
}

// NewNarrator selects Claude or static epilogues.
func NewNarrator(cfg config.Config, logger *zap.Logger) narration.Narrator {
	return narration.New(cfg.Narration, logger)
}

// NewRecovery returns the out-of-combat stamina ticker, or nil when
// cfg.Game.StaminaTick is zero. It is not started here.
func NewRecovery(cfg config.Config, logger *zap.Logger) *stamina.RecoverySystem {
	if cfg.Game.StaminaTick <= 0 {
		return nil
	}
	return stamina.NewRecoverySystem(cfg.Game.StaminaTick, logger)
}

// NewPresence returns an empty register of characters in play.
func NewPresence() *presence.Manager {
	return presence.NewManager()
}

// NewDeps gathers everything a session needs.
func NewDeps(cfg config.Config, lib *content.Library, store handlers.CharacterStore, narrator narration.Narrator, recovery *stamina.RecoverySystem, players *presence.Manager, pal telnet.Palette) handlers.Deps {
	return handlers.Deps{
		Catalog:  lib.Catalog,
		Bestiary: lib.Bestiary,
		Store:    store,
		Narrator: narrator,
		Hooks:    lib.Hooks,
		Presence: players,
		Recovery: recovery,
		Rules: combat.Rules{
			FleeChance:         cfg.Game.FleeChance,
			ExtraMonsterChance: cfg.Game.ExtraMonsterChance,
			MaxMonstersPerRoom: cfg.Game.MaxMonstersPerRoom,
		},
		RestStamina: cfg.Game.RestStamina,
		IdleNudge:   cfg.Game.IdleNudge,
		Palette:     pal,
	}
}
