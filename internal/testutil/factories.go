package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
)

// Date parses an ISO date, failing the test on error.
func Date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", value, err)
	}
	return d.UTC()
}

// Dec parses a decimal literal, failing the test on error.
func Dec(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("invalid test decimal %q: %v", value, err)
	}
	return d
}

// InsertPrice inserts a stock price row directly.
func InsertPrice(t *testing.T, db *sql.DB, symbol, tradeDate, closePrice string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO stock_price (id, symbol, trade_date, close_price) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), symbol, tradeDate, closePrice,
	)
	if err != nil {
		t.Fatalf("Failed to insert test price: %v", err)
	}
}

// InsertSplitAction inserts a SPLIT or BONUS action with the given factor.
func InsertSplitAction(t *testing.T, db *sql.DB, symbol, exDate string, actionType model.ActionType, factor, rawPurpose string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO corporate_action (id, symbol, ex_date, action_type, factor, raw_purpose) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), symbol, exDate, string(actionType), factor, rawPurpose,
	)
	if err != nil {
		t.Fatalf("Failed to insert test action: %v", err)
	}
}

// InsertDividendAction inserts a DIVIDEND action with the given cash value.
func InsertDividendAction(t *testing.T, db *sql.DB, symbol, exDate, cashValue, rawPurpose string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO corporate_action (id, symbol, ex_date, action_type, cash_value, raw_purpose) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), symbol, exDate, string(model.ActionDividend), cashValue, rawPurpose,
	)
	if err != nil {
		t.Fatalf("Failed to insert test action: %v", err)
	}
}
