// Package validation checks request parameters before they reach the core
// services. Monetary and share quantities cross the API boundary as exact
// decimal strings, never binary floats.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Common validation errors
var (
	ErrMissingSymbol = fmt.Errorf("symbol is required")
	ErrInvalidDate   = fmt.Errorf("invalid date, expected YYYY-MM-DD")
	ErrInvalidShares = fmt.Errorf("shares must be a positive decimal")
)

// ValidateSymbol checks and normalizes a ticker symbol.
func ValidateSymbol(symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", ErrMissingSymbol
	}
	return symbol, nil
}

// ParseDate parses an ISO 8601 calendar date.
func ParseDate(value string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return d.UTC(), nil
}

// ParseShares parses a share count from its exact decimal string form and
// requires it to be positive.
func ParseShares(value string) (decimal.Decimal, error) {
	shares, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidShares, value)
	}
	if !shares.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidShares, value)
	}
	return shares, nil
}
