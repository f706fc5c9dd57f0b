package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/riskibarqy/football-club/internal/app"
	"github.com/riskibarqy/football-club/internal/config"
	"github.com/riskibarqy/football-club/internal/platform/logging"
)

func main() {
	cmd, err := app.ParseMigrationCommand(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "component", "migration")
	defer func() { _ = logger.Sync() }()

	if err := app.RunMigration(cfg, cmd, logger); err != nil {
		logger.Error("migration failed", "command", cmd.Name, "error", err)
		if errors.Is(err, app.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
	fmt.Fprintf(os.Stderr, "  %s force 1771776005\n", name)
	fmt.Fprintf(os.Stderr, "  %s goto 1771776005\n", name)
}
