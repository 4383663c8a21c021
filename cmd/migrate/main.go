// Package main applies, rolls back, or reports the character schema
// migrations embedded in the binary.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"

	"github.com/cory-johannsen/delve/internal/config"
	"github.com/cory-johannsen/delve/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	direction := flag.String("direction", "up", "up, down, or version")
	steps := flag.Int("steps", 0, "number of steps (0 = all)")
	force := flag.Int("force", -1, "mark the schema clean at this version and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	m, err := postgres.NewMigrator(cfg.Database)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer m.Close()

	if *force >= 0 {
		if err := m.Force(*force); err != nil {
			log.Fatalf("forcing version %d: %v", *force, err)
		}
		report(m, "forced", start)
		return
	}

	err = apply(m, *direction, *steps)
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		report(m, "no changes", start)
	case err != nil:
		log.Fatalf("migration failed: %v", err)
	default:
		report(m, "migrated "+*direction, start)
	}
}

func apply(m *migrate.Migrate, direction string, steps int) error {
	switch direction {
	case "up":
		if steps > 0 {
			return m.Steps(steps)
		}
		return m.Up()
	case "down":
		if steps > 0 {
			return m.Steps(-steps)
		}
		return m.Down()
	case "version":
		return migrate.ErrNoChange
	}
	return fmt.Errorf("invalid direction %q: must be up, down, or version", direction)
}

func report(m *migrate.Migrate, what string, start time.Time) {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		fmt.Fprintf(os.Stdout, "%s: no migrations applied [%s]\n", what, time.Since(start))
	case err != nil:
		log.Fatalf("reading version: %v", err)
	default:
		fmt.Fprintf(os.Stdout, "%s: version=%d dirty=%v [%s]\n", what, version, dirty, time.Since(start))
	}
}
