package main

import (
	"flag"
	"log/slog"
	"os"

	"rentalhub/internal/infra/migration"
	"rentalhub/internal/pkg/config"
)

func main() {
	down := flag.Bool("down", false, "roll back the most recent migration instead of applying")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *down {
		if err := migration.Down(cfg.DB); err != nil {
			slog.Error("rollback failed", "error", err)
			os.Exit(1)
		}
		slog.Info("rolled back one migration")
		return
	}

	if err := migration.Up(cfg.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")
}
