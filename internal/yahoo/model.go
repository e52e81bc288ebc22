package yahoo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API: an array of results carrying metadata, Unix timestamps, and
// parallel price arrays, plus an optional error message.
type Response struct {
	Chart Chart `json:"chart"`
}

// Chart is the top-level payload of a chart API response.
type Chart struct {
	Result []Result `json:"result"`
	Error  *string  `json:"error"`
}

// Result is one chart result; the API typically returns exactly one.
type Result struct {
	Meta       Meta       `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

// Meta carries symbol metadata for a chart result.
type Meta struct {
	Currency     string `json:"currency"`
	Symbol       string `json:"symbol"`
	ExchangeName string `json:"exchangeName"`
}

// Indicators holds the quote arrays of a chart result.
type Indicators struct {
	Quote []Quote `json:"quote"`
}

// Quote holds parallel OHLCV arrays aligned with Result.Timestamp.
type Quote struct {
	Open   []float64 `json:"open"`
	Close  []float64 `json:"close"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Volume []int64   `json:"volume"`
}

// PriceChart is the parsed, application-internal form of a chart response:
// one Indicator per trading day, dates truncated to midnight UTC, prices
// converted to exact decimals at the vendor boundary.
type PriceChart struct {
	Symbol     string
	Currency   string
	Indicators []Indicator
}

// Indicator is a single trading day's closing data.
type Indicator struct {
	Date  time.Time
	Close decimal.Decimal
}
