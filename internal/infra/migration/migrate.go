package migration

import (
	"errors"

	"rentalhub/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// Up applies all pending migrations. An already up-to-date schema is not an
// error.
func Up(cfg config.DBConfig) error {
	m, err := migrate.New(cfg.MigrationsPath, cfg.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	return nil
}

// Down rolls back the most recent migration.
func Down(cfg config.DBConfig) error {
	m, err := migrate.New(cfg.MigrationsPath, cfg.BuildDSN())
	if err != nil {
		return err
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Steps(-1); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}
	return nil
}
