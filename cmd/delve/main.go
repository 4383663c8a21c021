// Package main runs the single-player console game.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/frontend/handlers"
	"github.com/cory-johannsen/delve/internal/frontend/telnet"
	"github.com/cory-johannsen/delve/internal/game/stamina"
)

// game is one console play-through.
type game struct {
	handler  *handlers.GameHandler
	console  *handlers.Console
	recovery *stamina.RecoverySystem
	logger   *zap.Logger
}

func newGame(h *handlers.GameHandler, c *handlers.Console, r *stamina.RecoverySystem, logger *zap.Logger) *game {
	return &game{handler: h, console: c, recovery: r, logger: logger}
}

func newConsole() *handlers.Console {
	return handlers.NewConsole(os.Stdin, os.Stdout)
}

// run plays until the player quits, stdin closes, or ctx is cancelled.
func (g *game) run(ctx context.Context) error {
	if g.recovery != nil {
		g.recovery.Start(ctx)
	}
	g.logger.Info("console game started")
	err := g.handler.Run(ctx, g.console, "console")
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
		return nil
	}
	return err
}

func main() {
	configPath := flag.String("config", "", "path to configuration file; empty uses the built-in defaults")
	plain := flag.Bool("plain", os.Getenv("NO_COLOR") != "", "disable ANSI colors")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatalf("loading config: %v", err)
		}
	} else {
		// Keep the terminal for play unless a config asks for more.
		cfg.Logging.Level = "error"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, cleanup, err := initializeGame(ctx, cfg, "delve", telnet.Palette{Plain: *plain})
	if err != nil {
		log.Fatalf("starting game: %v", err)
	}
	runErr := g.run(ctx)
	cleanup()
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "delve: %v\n", runErr)
		os.Exit(1)
	}
}
