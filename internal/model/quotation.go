package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuotation is the result of resolving a closing price for a symbol on
// or before a given date. Source names the provider that produced it, for
// diagnostics. Quotations are ephemeral and recomputed per request.
type PriceQuotation struct {
	Symbol string          `json:"symbol"`
	Date   time.Time       `json:"date"`
	Close  decimal.Decimal `json:"close"`
	Source string          `json:"source"`
}
