// Package content assembles the game library: items, monster species,
// dungeons and Lua hooks. Built-ins are always present; files under a
// content directory add to them or replace them by ID.
//
// Layout of a content directory (every part optional):
//
//	items/*.yaml      item definitions
//	species/*.yaml    monster species profiles
//	dungeons/*.yaml   dungeon definitions
//	scripts/global/   Lua hooks for dungeons without their own script_dir
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/dungeon"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/game/monster"
	"github.com/cory-johannsen/delve/internal/scripting"
)

// Library is everything a game needs besides a character store.
type Library struct {
	Items    *inventory.Registry
	Bestiary *monster.Bestiary
	Catalog  *dungeon.Catalog
	// Hooks voice room and defeat flavor: Lua first, built-in death cries second.
	Hooks dungeon.Hooks
	// Scripts is nil when no Lua scripts were loaded.
	Scripts *scripting.Manager
}

// Close releases the Lua VMs.
func (l *Library) Close() {
	if l.Scripts != nil {
		l.Scripts.Close()
	}
}

// Builtin returns the library with no content directory.
func Builtin(src dice.Source) *Library {
	items := inventory.NewBuiltinRegistry()
	return &Library{
		Items:    items,
		Bestiary: monster.NewBuiltinBestiary(items),
		Catalog:  dungeon.NewBuiltinCatalog(),
		Hooks:    dungeon.NewBuiltinHooks(src),
	}
}

// Load builds the library from the built-ins plus dir. An empty dir loads
// the built-ins only. A relative dungeon script_dir is resolved against the
// dungeons directory.
//
// Precondition: src must be non-nil. A nil logger is replaced with a no-op logger.
// Postcondition: on error nothing needs closing.
func Load(dir string, src dice.Source, logger *zap.Logger) (*Library, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	lib := Builtin(src)
	if dir == "" {
		logger.Info("using built-in content",
			zap.Int("dungeons", lib.Catalog.Len()),
			zap.Int("species", len(lib.Bestiary.Species())),
		)
		return lib, nil
	}

	start := time.Now()
	if err := loadItems(lib, filepath.Join(dir, "items")); err != nil {
		return nil, err
	}
	if err := loadSpecies(lib, filepath.Join(dir, "species")); err != nil {
		return nil, err
	}
	if err := loadDungeons(lib, filepath.Join(dir, "dungeons"), logger); err != nil {
		return nil, err
	}
	if err := loadScripts(lib, dir, src, logger); err != nil {
		return nil, err
	}

	logger.Info("content loaded",
		zap.String("dir", dir),
		zap.Int("dungeons", lib.Catalog.Len()),
		zap.Int("species", len(lib.Bestiary.Species())),
		zap.Int("items", len(lib.Items.All())),
		zap.Bool("scripts", lib.Scripts != nil),
		zap.Duration("elapsed", time.Since(start)),
	)
	return lib, nil
}

func loadItems(lib *Library, dir string) error {
	if !isDir(dir) {
		return nil
	}
	items, err := inventory.LoadItems(dir)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}
	for _, it := range items {
		lib.Items.Replace(it)
	}
	return nil
}

func loadSpecies(lib *Library, dir string) error {
	if !isDir(dir) {
		return nil
	}
	profiles, err := monster.LoadSpeciesDir(dir)
	if err != nil {
		return fmt.Errorf("loading species: %w", err)
	}
	for _, p := range profiles {
		if err := lib.Bestiary.Register(p); err != nil {
			return fmt.Errorf("registering species: %w", err)
		}
	}
	return nil
}

// loadDungeons overrides built-ins by ID. A monster type with no profile
// is allowed, its room slots stay empty, but it is logged.
func loadDungeons(lib *Library, dir string, logger *zap.Logger) error {
	if !isDir(dir) {
		return nil
	}
	ds, err := dungeon.LoadDir(dir)
	if err != nil {
		return fmt.Errorf("loading dungeons: %w", err)
	}
	for _, d := range ds {
		for _, t := range d.MonsterTypes {
			if _, ok := lib.Bestiary.Profile(monster.Normalize(t)); !ok {
				logger.Warn("dungeon references unknown species",
					zap.String("dungeon", d.ID), zap.String("species", t))
			}
		}
		if err := lib.Catalog.Override(d); err != nil {
			return fmt.Errorf("registering dungeon: %w", err)
		}
	}
	return nil
}

func loadScripts(lib *Library, root string, src dice.Source, logger *zap.Logger) error {
	mgr := scripting.NewManager(dice.NewLoggedRoller(src, logger), logger)
	loaded := false

	global := filepath.Join(root, "scripts", "global")
	if isDir(global) {
		if err := mgr.LoadGlobal(global, scripting.DefaultInstructionLimit); err != nil {
			mgr.Close()
			return fmt.Errorf("loading global scripts: %w", err)
		}
		logger.Info("global scripts loaded", zap.String("dir", global))
		loaded = true
	}
	for _, d := range lib.Catalog.All() {
		if d.ScriptDir == "" {
			continue
		}
		if !isDir(d.ScriptDir) {
			logger.Warn("dungeon script_dir not found, skipping",
				zap.String("dungeon", d.ID), zap.String("dir", d.ScriptDir))
			continue
		}
		if err := mgr.LoadDungeon(d.ID, d.ScriptDir, scripting.DefaultInstructionLimit); err != nil {
			mgr.Close()
			return fmt.Errorf("loading scripts for dungeon %q: %w", d.ID, err)
		}
		logger.Info("dungeon scripts loaded", zap.String("dungeon", d.ID), zap.String("dir", d.ScriptDir))
		loaded = true
	}

	if !loaded {
		mgr.Close()
		return nil
	}
	lib.Scripts = mgr
	lib.Hooks = scripting.NewDungeonHooks(mgr, lib.Hooks)
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
