package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/nse"
)

// DefaultLookbackDays bounds the backward search for a published bhavcopy.
const DefaultLookbackDays = 10

// NSEProvider resolves closing prices from official NSE bhavcopy files.
// Bhavcopies exist only for trading days, so the provider searches backward
// day by day from the requested date until one is published, bounded by the
// lookback window.
type NSEProvider struct {
	client       nse.Client
	lookbackDays int
}

// NewNSEProvider creates a bhavcopy-backed provider. lookbackDays <= 0 falls
// back to DefaultLookbackDays.
func NewNSEProvider(client nse.Client, lookbackDays int) *NSEProvider {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &NSEProvider{client: client, lookbackDays: lookbackDays}
}

// Name implements Provider.
func (p *NSEProvider) Name() string { return "nse" }

// FetchClose downloads the bhavcopy for the nearest trading day at or before
// date and looks the symbol up in it. The day-by-day search is inherently
// sequential: whether a file exists for one day determines whether the
// previous day is probed. Fails with ErrNoTradingDayFound when the lookback
// window is exhausted; lookup failures in a published file (unknown symbol,
// unrecognized schema) propagate as-is.
func (p *NSEProvider) FetchClose(ctx context.Context, symbol string, date time.Time) (model.PriceQuotation, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	day := date
	for i := 0; i < p.lookbackDays; i++ {
		bhavcopy, err := p.client.DownloadBhavcopy(ctx, day)
		if err != nil {
			if ctx.Err() != nil {
				return model.PriceQuotation{}, ctx.Err()
			}
			day = day.AddDate(0, 0, -1)
			continue
		}

		closePrice, err := bhavcopy.ClosePrice(symbol)
		if err != nil {
			return model.PriceQuotation{}, err
		}

		return model.PriceQuotation{
			Symbol: symbol,
			Date:   day,
			Close:  closePrice,
			Source: p.Name(),
		}, nil
	}

	return model.PriceQuotation{}, fmt.Errorf("%w: before %s", apperrors.ErrNoTradingDayFound, date.Format("2006-01-02"))
}
