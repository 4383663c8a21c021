//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/cory-johannsen/delve/internal/app"
	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/frontend/telnet"
)

func initializeGame(ctx context.Context, cfg config.Config, component app.Component, pal telnet.Palette) (*game, func(), error) {
	wire.Build(app.ProviderSet, newConsole, newGame)
	return nil, nil, nil
}
