// Package pricing resolves authoritative closing prices for a symbol on or
// before a date, across several upstream sources of different reliability
// and shape.
package pricing

import (
	"context"
	"time"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
)

// Provider produces a closing price for a symbol on or before a date from
// one upstream source. Implementations must fail rather than return a
// default or zero price when the source has no data for the request.
type Provider interface {
	// Name identifies the provider in quotations and logs.
	Name() string

	// FetchClose returns the authoritative closing price for symbol on or
	// before date.
	FetchClose(ctx context.Context, symbol string, date time.Time) (model.PriceQuotation, error)
}
