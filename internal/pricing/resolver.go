package pricing

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
)

// Resolver tries providers in a fixed priority order, falling back on
// failure. Individual provider errors are logged and swallowed; only when
// every provider has failed does resolution fail, with ErrPriceUnavailable.
// Callers must treat that as terminal for the request, not retry it.
type Resolver struct {
	providers []Provider
}

// NewResolver creates a resolver over providers in priority order.
func NewResolver(providers ...Provider) *Resolver {
	return &Resolver{providers: providers}
}

// Resolve returns the first quotation any provider produces for symbol on or
// before date.
func (r *Resolver) Resolve(ctx context.Context, symbol string, date time.Time) (model.PriceQuotation, error) {
	for _, provider := range r.providers {
		quotation, err := provider.FetchClose(ctx, symbol, date)
		if err != nil {
			log.Printf("price provider %s failed for %s on %s: %v",
				provider.Name(), symbol, date.Format("2006-01-02"), err)
			continue
		}
		return quotation, nil
	}

	return model.PriceQuotation{}, fmt.Errorf("%w: %s on or before %s",
		apperrors.ErrPriceUnavailable, symbol, date.Format("2006-01-02"))
}
