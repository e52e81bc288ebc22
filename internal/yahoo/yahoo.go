// Package yahoo fetches daily price data from the Yahoo Finance chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the Yahoo Finance chart API host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client defines the interface for fetching chart data from Yahoo Finance.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	QueryChartByDateRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error)
}

// FinanceClient provides methods for fetching financial data from the Yahoo
// Finance chart API. It wraps an HTTP client with a per-request timeout.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a new Yahoo Finance client. The timeout applies to
// each outbound request.
func NewFinanceClient(baseURL string, timeout time.Duration) *FinanceClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &FinanceClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// QueryChartByDateRange fetches daily price data for a symbol within a date
// range, using the period-based query form with Unix timestamps.
func (c *FinanceClient) QueryChartByDateRange(ctx context.Context, symbol string, startDate, endDate time.Time) (Response, error) {
	url := fmt.Sprintf(
		"%s/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL,
		symbol,
		startDate.Unix(),
		endDate.Unix(),
	)
	result, err := c.queryChart(ctx, url)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// queryChart executes a chart API request, parses the JSON body, and
// propagates any error reported in the chart envelope.
func (c *FinanceClient) queryChart(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}

// ParseChart converts a raw chart response into a PriceChart. It validates
// that timestamps and close prices are present and aligned, drops days whose
// close is zero (Yahoo emits zeros for halted sessions), and truncates dates
// to midnight UTC.
func ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no chart results returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}
	if len(result.Indicators.Quote[0].Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	closes := result.Indicators.Quote[0].Close
	indicators := make([]Indicator, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if closes[i] == 0 {
			continue
		}
		indicators = append(indicators, Indicator{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: decimal.NewFromFloat(closes[i]),
		})
	}

	return PriceChart{
		Symbol:     result.Meta.Symbol,
		Currency:   result.Meta.Currency,
		Indicators: indicators,
	}, nil
}
