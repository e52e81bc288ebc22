package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockPrice is one imported end-of-day closing price for a symbol,
// unique per (Symbol, TradeDate).
type StockPrice struct {
	ID         string          `json:"id"`
	Symbol     string          `json:"symbol"`
	TradeDate  time.Time       `json:"trade_date"`
	ClosePrice decimal.Decimal `json:"close_price"`
	CreatedAt  time.Time       `json:"created_at"`
}
