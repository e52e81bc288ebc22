package pricing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/yahoo"
)

// DefaultWindowDays bounds the Yahoo date window searched for a quotation.
const DefaultWindowDays = 10

// YahooProvider resolves closing prices from the Yahoo Finance chart API.
// It queries a bounded window around the requested date and returns the most
// recent quotation at or before it, covering non-trading days without
// probing day by day.
type YahooProvider struct {
	client     yahoo.Client
	windowDays int
}

// NewYahooProvider creates a Yahoo-backed provider. windowDays <= 0 falls
// back to DefaultWindowDays.
func NewYahooProvider(client yahoo.Client, windowDays int) *YahooProvider {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	return &YahooProvider{client: client, windowDays: windowDays}
}

// Name implements Provider.
func (p *YahooProvider) Name() string { return "yahoo" }

// FetchClose queries the window [date-windowDays, date+1d] and picks the
// latest close at or before date. NSE symbols carry the ".NS" suffix on
// Yahoo. Fails with ErrNoPriceBeforeDate when nothing in the window
// qualifies.
func (p *YahooProvider) FetchClose(ctx context.Context, symbol string, date time.Time) (model.PriceQuotation, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	start := date.AddDate(0, 0, -p.windowDays)
	end := date.AddDate(0, 0, 1)

	response, err := p.client.QueryChartByDateRange(ctx, symbol+".NS", start, end)
	if err != nil {
		return model.PriceQuotation{}, err
	}

	chart, err := yahoo.ParseChart(response)
	if err != nil {
		return model.PriceQuotation{}, err
	}

	target := date.UTC().Truncate(24 * time.Hour)
	for i := len(chart.Indicators) - 1; i >= 0; i-- {
		ind := chart.Indicators[i]
		if !ind.Date.After(target) {
			return model.PriceQuotation{
				Symbol: symbol,
				Date:   ind.Date,
				Close:  ind.Close,
				Source: p.Name(),
			}, nil
		}
	}

	return model.PriceQuotation{}, fmt.Errorf("%w: %s within %d days of %s",
		apperrors.ErrNoPriceBeforeDate, symbol, p.windowDays, date.Format("2006-01-02"))
}
