package database

import (
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/migrations"
)

// Migrate applies all pending schema migrations embedded in the binary.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
