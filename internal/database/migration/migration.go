package migration

import (
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Source returns the embedded migration files as a golang-migrate source.
func Source() (source.Driver, error) {
	return iofs.New(migrationsFS, "migrations")
}

// Up applies all pending migrations against the database at databaseURL
// (postgres://...). It is a no-op when the schema is current.
func Up(databaseURL string, log zerolog.Logger) error {
	start := time.Now()
	log = log.With().Str("component", "database").Logger()
	log.Info().Str("event", "db_migration_start").Msg("applying migrations")

	src, err := Source()
	if err != nil {
		return fmt.Errorf("load migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		log.Error().Err(err).Str("event", "db_migration_failed").Msg("create migrator")
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().
				Str("event", "db_migration_skip").
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Msg("schema already up to date")
			return nil
		}
		log.Error().Err(err).
			Str("event", "db_migration_failed").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("apply migrations")
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Info().
		Str("event", "db_migration_success").
		Uint("version", version).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("migrations applied")
	return nil
}
