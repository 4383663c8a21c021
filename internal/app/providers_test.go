package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/delve/internal/app"
	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/frontend/telnet"
	"github.com/cory-johannsen/delve/internal/narration"
	"github.com/cory-johannsen/delve/internal/storage"
)

func TestNewDeps_MapsGameConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Game.FleeChance = 70
	cfg.Game.ExtraMonsterChance = 10
	cfg.Game.MaxMonstersPerRoom = 3
	cfg.Game.RestStamina = 15
	cfg.Game.IdleNudge = time.Minute

	logger := zaptest.NewLogger(t)
	lib, cleanup, err := app.NewLibrary(cfg, app.NewSource(), logger)
	require.NoError(t, err)
	defer cleanup()
	store, closeStore, err := app.NewStore(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer closeStore()
	recovery := app.NewRecovery(cfg, logger)
	require.NotNil(t, recovery)

	players := app.NewPresence()
	deps := app.NewDeps(cfg, lib, store, app.NewNarrator(cfg, logger), recovery, players, telnet.Palette{Plain: true})
	assert.Same(t, lib.Catalog, deps.Catalog)
	assert.Same(t, lib.Bestiary, deps.Bestiary)
	assert.Equal(t, 70, deps.Rules.FleeChance)
	assert.Equal(t, 10, deps.Rules.ExtraMonsterChance)
	assert.Equal(t, 3, deps.Rules.MaxMonstersPerRoom)
	assert.Equal(t, 15, deps.RestStamina)
	assert.Equal(t, time.Minute, deps.IdleNudge)
	assert.Same(t, recovery, deps.Recovery)
	assert.Same(t, players, deps.Presence)
	assert.IsType(t, narration.Static{}, deps.Narrator)
	assert.True(t, deps.Palette.Plain)
}

func TestNewStore_MemoryByDefault(t *testing.T) {
	store, cleanup, err := app.NewStore(context.Background(), config.Default(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &storage.MemoryStore{}, store)
}

func TestNewRecovery_DisabledByZeroTick(t *testing.T) {
	cfg := config.Default()
	cfg.Game.StaminaTick = 0
	assert.Nil(t, app.NewRecovery(cfg, nil))
}

func TestNewLogger(t *testing.T) {
	logger, cleanup, err := app.NewLogger(config.Default(), "delve")
	require.NoError(t, err)
	defer cleanup()
	assert.NotNil(t, logger)

	cfg := config.Default()
	cfg.Logging.Level = "loud"
	_, _, err = app.NewLogger(cfg, "delve")
	assert.Error(t, err)
}

func TestNewLibrary_EmptyContentDir(t *testing.T) {
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Game.ContentDir = dir
	lib, cleanup, err := app.NewLibrary(cfg, app.NewSource(), zaptest.NewLogger(t))
	require.NoError(t, err, "an empty content dir adds nothing")
	defer cleanup()
	assert.Equal(t, 2, lib.Catalog.Len())
}
