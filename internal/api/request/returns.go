// Package request parses and validates incoming API request parameters.
package request

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/validation"
)

// ReturnsRequest carries the validated parameters of a returns query.
type ReturnsRequest struct {
	Symbol    string
	StartDate time.Time
	EndDate   time.Time
	Shares    decimal.Decimal
}

// ParseReturnsRequest extracts and validates the returns query parameters:
// symbol, from, to, and an optional shares count (exact decimal string,
// default "1").
func ParseReturnsRequest(r *http.Request) (ReturnsRequest, error) {
	q := r.URL.Query()

	symbol, err := validation.ValidateSymbol(q.Get("symbol"))
	if err != nil {
		return ReturnsRequest{}, err
	}

	if q.Get("from") == "" || q.Get("to") == "" {
		return ReturnsRequest{}, fmt.Errorf("from and to dates are required")
	}

	startDate, err := validation.ParseDate(q.Get("from"))
	if err != nil {
		return ReturnsRequest{}, fmt.Errorf("from: %w", err)
	}
	endDate, err := validation.ParseDate(q.Get("to"))
	if err != nil {
		return ReturnsRequest{}, fmt.Errorf("to: %w", err)
	}

	sharesParam := q.Get("shares")
	if sharesParam == "" {
		sharesParam = "1"
	}
	shares, err := validation.ParseShares(sharesParam)
	if err != nil {
		return ReturnsRequest{}, err
	}

	return ReturnsRequest{
		Symbol:    symbol,
		StartDate: startDate,
		EndDate:   endDate,
		Shares:    shares,
	}, nil
}
