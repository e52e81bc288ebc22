package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
)

// StoreProvider serves quotations from the local price store, populated by
// the bulk import jobs. It sits first in the provider chain so that imported
// data short-circuits the network sources.
type StoreProvider struct {
	prices *repository.PriceRepository
}

// NewStoreProvider creates a provider backed by the local price store.
func NewStoreProvider(prices *repository.PriceRepository) *StoreProvider {
	return &StoreProvider{prices: prices}
}

// Name implements Provider.
func (p *StoreProvider) Name() string { return "store" }

// FetchClose looks up the stored close price for the exact trade date.
// Fails with ErrPriceNotFound on a store miss and with ErrNonPositivePrice
// when the stored value is zero or less; a bad stored row must fall through
// to the network providers, never surface as a quotation.
func (p *StoreProvider) FetchClose(_ context.Context, symbol string, date time.Time) (model.PriceQuotation, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	price, err := p.prices.FindPrice(symbol, date)
	if err != nil {
		return model.PriceQuotation{}, err
	}
	if !price.IsPositive() {
		return model.PriceQuotation{}, fmt.Errorf("%w: %s stored %s for %s",
			apperrors.ErrNonPositivePrice, symbol, price, date.Format("2006-01-02"))
	}

	return model.PriceQuotation{
		Symbol: symbol,
		Date:   date,
		Close:  price,
		Source: p.Name(),
	}, nil
}
