package apperrors

import "errors"

// Price resolution errors. Individual provider failures are swallowed by the
// resolver and never surface to callers; only ErrPriceUnavailable (total
// exhaustion of the provider chain) is terminal for a request.
var (
	// ErrUnsupportedSchema indicates an upstream dataset whose columns could
	// not be mapped to the known field aliases. Permanent for that source and
	// date; not worth retrying.
	ErrUnsupportedSchema = errors.New("unsupported upstream data schema")

	// ErrSymbolNotFound indicates the symbol is absent from an otherwise
	// valid dataset.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNoTradingDayFound indicates the backward search for a published
	// trading day exhausted its lookback window.
	ErrNoTradingDayFound = errors.New("no trading day found within lookback window")

	// ErrNoPriceBeforeDate indicates a windowed date search found no
	// quotation at or before the requested date.
	ErrNoPriceBeforeDate = errors.New("no price found at or before date")

	// ErrPriceUnavailable indicates every provider in the chain failed for a
	// symbol and date. Terminal for the request.
	ErrPriceUnavailable = errors.New("price unavailable")

	// ErrPriceNotFound indicates the local price store has no record for a
	// symbol and date combination.
	ErrPriceNotFound = errors.New("stock price not found")

	// ErrNonPositivePrice indicates an upstream or stored close of zero or
	// less. Bhavcopies carry 0.00 closes for suspended securities; a
	// quotation must never surface one.
	ErrNonPositivePrice = errors.New("close price is not positive")
)

// Business logic errors.
var (
	// ErrInvalidRange indicates that the provided date range is invalid
	// (start date is after end date).
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidShares indicates a share count that is not a positive decimal.
	ErrInvalidShares = errors.New("shares must be a positive decimal")
)

// Import errors.
var (
	// ErrInvalidCSVHeaders indicates an import file whose header row is
	// missing required columns.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")
)
