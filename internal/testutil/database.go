package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations in internal/migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Stock price table
		CREATE TABLE stock_price (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(20) NOT NULL,
			trade_date DATE NOT NULL,
			close_price TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT unique_stock_price UNIQUE (symbol, trade_date)
		);

		CREATE INDEX idx_stock_price_symbol_date ON stock_price (symbol, trade_date);

		-- Corporate action table
		CREATE TABLE corporate_action (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			symbol VARCHAR(20) NOT NULL,
			ex_date DATE NOT NULL,
			action_type VARCHAR(10) NOT NULL,
			factor TEXT,
			cash_value TEXT,
			raw_purpose TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT unique_corporate_action UNIQUE (symbol, ex_date, action_type, raw_purpose)
		);

		CREATE INDEX idx_corporate_action_symbol_date ON corporate_action (symbol, ex_date);
	`

	_, err := db.Exec(schema)
	return err
}
