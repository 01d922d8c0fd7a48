package database

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunMigrations applies all up migrations found at migrationsPath against an
// existing *sql.DB. When the migrations directory is absent (installed
// binary without the source tree) it falls back to the embedded schema.
func RunMigrations(db *sql.DB, migrationsPath string) error {
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		return EnsureSchema(db)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite3",
		driver,
	)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if err == migrate.ErrNoChange {
		return nil
	}
	return err
}

// schemaDDL mirrors migrations/0001_init.up.sql.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS cards (
	id          TEXT PRIMARY KEY,
	label       TEXT NOT NULL,
	position    INTEGER NOT NULL,
	sticky      INTEGER NOT NULL DEFAULT 0,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS shuffles (
	id            TEXT PRIMARY KEY,
	transform_key TEXT NOT NULL,
	card_count    INTEGER NOT NULL,
	duration_ms   INTEGER NOT NULL,
	requested_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_cards_position ON cards(position);
CREATE INDEX IF NOT EXISTS idx_shuffles_requested ON shuffles(requested_at);
`

// EnsureSchema creates the schema directly. Idempotent.
func EnsureSchema(db *sql.DB) error {
	if _, err := db.Exec(schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
