// Package main runs the multi-player telnet server. Every connection plays
// its own game against the shared content and character store.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/app"
	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/frontend/handlers"
	"github.com/cory-johannsen/delve/internal/frontend/telnet"
	"github.com/cory-johannsen/delve/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	plain := flag.Bool("plain", false, "send no ANSI colors to clients")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, syncLogger, err := app.NewLogger(cfg, "delveserver")
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer syncLogger()

	ctx := context.Background()
	logger.Info("starting delve server",
		zap.String("telnet_addr", cfg.Telnet.Addr()),
		zap.String("persistence", cfg.Game.Persistence),
	)

	lib, closeLib, err := app.NewLibrary(cfg, app.NewSource(), logger)
	if err != nil {
		logger.Fatal("loading content", zap.Error(err))
	}
	defer closeLib()

	store, closeStore, err := app.NewStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("opening character store", zap.Error(err))
	}
	defer closeStore()

	recovery := app.NewRecovery(cfg, logger)
	players := app.NewPresence()
	deps := app.NewDeps(cfg, lib, store, app.NewNarrator(cfg, logger), recovery, players, telnet.Palette{Plain: *plain})
	acceptor := telnet.NewAcceptor(cfg.Telnet, handlers.NewGameHandler(deps, logger), logger)

	lifecycle := server.NewLifecycle(logger)
	if recovery != nil {
		lifecycle.Add("stamina-recovery", server.NewBackground(recovery.Start))
	}
	lifecycle.Add("telnet", acceptor)

	logger.Info("server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Int("dungeons", lib.Catalog.Len()),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Error("server error", zap.Error(err))
		closeStore()
		closeLib()
		syncLogger()
		log.Fatalf("server error: %v", err)
	}
}
