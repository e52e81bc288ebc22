package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActionType identifies the kind of corporate action disclosed for a symbol.
type ActionType string

const (
	ActionDividend ActionType = "DIVIDEND"
	ActionSplit    ActionType = "SPLIT"
	ActionBonus    ActionType = "BONUS"

	// ActionOther marks fragments that match no known action. These are
	// dropped at parse time and never persisted.
	ActionOther ActionType = "OTHER"
)

// CorporateAction represents one disclosed adjustment event for a symbol,
// effective on its ex-date. Exactly one of Factor and CashValue is populated:
// Factor for SPLIT/BONUS, CashValue for DIVIDEND.
//
// Records are immutable once imported. Identity for idempotent re-import is
// (Symbol, ExDate, Type, RawPurpose).
type CorporateAction struct {
	ID         string           `json:"id"`
	Symbol     string           `json:"symbol"`
	ExDate     time.Time        `json:"ex_date"`
	Type       ActionType       `json:"type"`
	Factor     *decimal.Decimal `json:"factor,omitempty"`
	CashValue  *decimal.Decimal `json:"cash_value,omitempty"`
	RawPurpose string           `json:"raw_purpose"`
	CreatedAt  time.Time        `json:"created_at"`
}
