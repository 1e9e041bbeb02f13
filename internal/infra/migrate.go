package infra

import (
	"errors"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies pending SQL migrations at startup. The schema's
// unique constraints are the concurrency-correctness mechanism for
// registration, so a partially migrated database must not serve traffic.
func RunMigrations() {
	dsn := os.Getenv("POSTGRES_URL")

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatalf("Error opening migrations: %v", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Error applying migrations: %v", err)
	}
}
