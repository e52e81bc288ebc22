package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionLogEntry records the effect of one corporate action at the moment it
// was applied during a return calculation. SPLIT/BONUS entries populate the
// factor and share counts; DIVIDEND entries populate the cash fields.
type ActionLogEntry struct {
	Date time.Time  `json:"date"`
	Type ActionType `json:"type"`

	Factor       *decimal.Decimal `json:"factor,omitempty"`
	SharesBefore *decimal.Decimal `json:"shares_before,omitempty"`
	SharesAfter  *decimal.Decimal `json:"shares_after,omitempty"`

	DividendPerShare *decimal.Decimal `json:"dividend_per_share,omitempty"`
	CashReceived     *decimal.Decimal `json:"cash_received,omitempty"`
	TotalCash        *decimal.Decimal `json:"total_cash,omitempty"`
}

// ReturnResult is the output of a portfolio return calculation over a date
// range. Monetary and share quantities are exact decimals; shopspring's
// MarshalJSON renders them as strings so no precision is lost at the API
// boundary.
//
// PriceGain is measured against the final, post-adjustment share count: a
// bonus or split in the window changes the position the price delta applies
// to. DividendGain is the cash accrued from dividends, each computed with the
// share count held at that point in the action sequence.
type ReturnResult struct {
	Symbol string    `json:"symbol"`
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`

	InitialShares decimal.Decimal `json:"initial_shares"`
	FinalShares   decimal.Decimal `json:"final_shares"`

	StartPrice  decimal.Decimal `json:"start_price"`
	EndPrice    decimal.Decimal `json:"end_price"`
	StartSource string          `json:"start_price_source"`
	EndSource   string          `json:"end_price_source"`

	InitialValue decimal.Decimal `json:"initial_value"`
	PriceGain    decimal.Decimal `json:"price_gain"`
	PriceGainPct decimal.Decimal `json:"price_gain_pct"`
	DividendGain decimal.Decimal `json:"dividend_gain"`
	TotalGain    decimal.Decimal `json:"total_gain"`
	TotalGainPct decimal.Decimal `json:"total_gain_pct"`
	FinalValue   decimal.Decimal `json:"final_value"`

	CorporateActions []ActionLogEntry `json:"corporate_actions"`
}
