package testutil

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/nse"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/yahoo"
)

// MockNSEClient is a mock implementation of nse.Client for testing. It
// serves pre-parsed bhavcopies keyed by date, mimicking an archive where
// files exist only for trading days.
type MockNSEClient struct {
	// Bhavcopies maps "2006-01-02" date strings to CSV content.
	Bhavcopies map[string]string
	// Err, when set, fails every download.
	Err error
	// DownloadCount tracks how many downloads were attempted.
	DownloadCount int
}

// NewMockNSEClient creates a mock archive with no published files.
func NewMockNSEClient() *MockNSEClient {
	return &MockNSEClient{Bhavcopies: map[string]string{}}
}

// WithBhavcopy publishes a CSV for a date.
func (m *MockNSEClient) WithBhavcopy(date, csv string) *MockNSEClient {
	m.Bhavcopies[date] = csv
	return m
}

// WithError configures the mock to fail every download.
func (m *MockNSEClient) WithError(err error) *MockNSEClient {
	m.Err = err
	return m
}

// DownloadBhavcopy implements nse.Client.
func (m *MockNSEClient) DownloadBhavcopy(_ context.Context, date time.Time) (*nse.Bhavcopy, error) {
	m.DownloadCount++
	if m.Err != nil {
		return nil, m.Err
	}
	csv, ok := m.Bhavcopies[date.Format("2006-01-02")]
	if !ok {
		return nil, fmt.Errorf("bhavcopy not published for %s", date.Format("2006-01-02"))
	}
	return nse.ParseBhavcopy(strings.NewReader(csv))
}

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockYahooClient struct {
	// MockResponse is the response to return from query methods
	MockResponse yahoo.Response
	// MockError is the error to return from query methods
	MockError error
	// QueryCount tracks how many times a query method was called
	QueryCount int
}

// NewMockYahooClient creates a mock Yahoo client with an empty response.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{}
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithDailyCloses configures the mock response with one close per date.
// Dates must be "2006-01-02" strings; order is preserved.
func (m *MockYahooClient) WithDailyCloses(symbol string, days [][2]string) *MockYahooClient {
	result := yahoo.Result{
		Meta: yahoo.Meta{Symbol: symbol, Currency: "INR", ExchangeName: "NSI"},
	}
	quote := yahoo.Quote{}
	for _, day := range days {
		date, err := time.Parse("2006-01-02", day[0])
		if err != nil {
			panic(fmt.Sprintf("invalid mock date %q: %v", day[0], err))
		}
		var closePrice float64
		if _, err := fmt.Sscanf(day[1], "%f", &closePrice); err != nil {
			panic(fmt.Sprintf("invalid mock close %q: %v", day[1], err))
		}
		result.Timestamp = append(result.Timestamp, date.UTC().Unix())
		quote.Close = append(quote.Close, closePrice)
		quote.Open = append(quote.Open, closePrice)
		quote.High = append(quote.High, closePrice)
		quote.Low = append(quote.Low, closePrice)
		quote.Volume = append(quote.Volume, 1000)
	}
	result.Indicators.Quote = []yahoo.Quote{quote}
	m.MockResponse = yahoo.Response{Chart: yahoo.Chart{Result: []yahoo.Result{result}}}
	return m
}

// QueryChartByDateRange implements yahoo.Client.
func (m *MockYahooClient) QueryChartByDateRange(_ context.Context, _ string, _, _ time.Time) (yahoo.Response, error) {
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// StaticProvider is a pricing.Provider returning a fixed price or error,
// used to exercise the resolver and return calculator without upstream I/O.
type StaticProvider struct {
	ProviderName string
	Price        decimal.Decimal
	Err          error
	Calls        int
}

// Name implements pricing.Provider.
func (p *StaticProvider) Name() string {
	if p.ProviderName == "" {
		return "static"
	}
	return p.ProviderName
}

// FetchClose implements pricing.Provider.
func (p *StaticProvider) FetchClose(_ context.Context, symbol string, date time.Time) (model.PriceQuotation, error) {
	p.Calls++
	if p.Err != nil {
		return model.PriceQuotation{}, p.Err
	}
	return model.PriceQuotation{
		Symbol: symbol,
		Date:   date,
		Close:  p.Price,
		Source: p.Name(),
	}, nil
}

// DatedProvider is a pricing.Provider returning a different price per
// requested date, for tests that resolve both endpoints of a range.
type DatedProvider struct {
	ProviderName string
	// Prices maps "2006-01-02" date strings to prices.
	Prices map[string]decimal.Decimal
}

// Name implements pricing.Provider.
func (p *DatedProvider) Name() string {
	if p.ProviderName == "" {
		return "dated"
	}
	return p.ProviderName
}

// FetchClose implements pricing.Provider.
func (p *DatedProvider) FetchClose(_ context.Context, symbol string, date time.Time) (model.PriceQuotation, error) {
	price, ok := p.Prices[date.Format("2006-01-02")]
	if !ok {
		return model.PriceQuotation{}, fmt.Errorf("no price configured for %s", date.Format("2006-01-02"))
	}
	return model.PriceQuotation{
		Symbol: symbol,
		Date:   date,
		Close:  price,
		Source: p.Name(),
	}, nil
}
