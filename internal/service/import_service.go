package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/actions"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/nse"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/yahoo"
)

// backfillConcurrency bounds parallel Yahoo requests during multi-symbol
// backfill. Within one symbol requests stay sequential.
const backfillConcurrency = 4

// exDateLayouts are the date forms seen in NSE corporate action exports.
var exDateLayouts = []string{"2006-01-02", "02-Jan-2006", "2-Jan-2006", "02-01-2006"}

// ImportService populates the price and corporate action stores from NSE CSV
// exports, bhavcopy downloads, and Yahoo backfills.
type ImportService struct {
	actionRepo  *repository.ActionRepository
	priceRepo   *repository.PriceRepository
	nseClient   nse.Client
	yahooClient yahoo.Client
}

// NewImportService creates a new ImportService with the provided dependencies.
func NewImportService(
	actionRepo *repository.ActionRepository,
	priceRepo *repository.PriceRepository,
	nseClient nse.Client,
	yahooClient yahoo.Client,
) *ImportService {
	return &ImportService{
		actionRepo:  actionRepo,
		priceRepo:   priceRepo,
		nseClient:   nseClient,
		yahooClient: yahooClient,
	}
}

// ImportCorporateActions reads an NSE corporate action CSV (SYMBOL, SERIES,
// EX-DATE, PURPOSE, FACE VALUE) and upserts the parsed actions. A single
// PURPOSE field may yield several actions. Fragments that classify as OTHER
// or whose numeric value cannot be extracted are dropped and logged, never
// treated as errors: disclosure text is noisy and import is best-effort.
// Returns the number of new records; re-import of the same file creates none.
func (s *ImportService) ImportCorporateActions(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("failed to parse corporate action CSV: %w", err)
	}
	if len(records) < 1 {
		return 0, fmt.Errorf("%w: empty file", apperrors.ErrInvalidCSVHeaders)
	}

	col := headerIndex(records[0])
	symbolCol, okSymbol := col["SYMBOL"]
	exDateCol, okExDate := col["EX-DATE"]
	purposeCol, okPurpose := col["PURPOSE"]
	if !okSymbol || !okExDate || !okPurpose {
		return 0, fmt.Errorf("%w: need SYMBOL, EX-DATE and PURPOSE, got %v", apperrors.ErrInvalidCSVHeaders, records[0])
	}
	seriesCol, hasSeries := col["SERIES"]
	faceValueCol, hasFaceValue := col["FACE VALUE"]

	created := 0
	for _, row := range records[1:] {
		if len(row) <= symbolCol || len(row) <= exDateCol || len(row) <= purposeCol {
			continue
		}
		if hasSeries && (len(row) <= seriesCol || strings.ToUpper(strings.TrimSpace(row[seriesCol])) != "EQ") {
			continue
		}

		symbol := strings.ToUpper(strings.TrimSpace(row[symbolCol]))
		purpose := strings.TrimSpace(row[purposeCol])
		if symbol == "" || purpose == "" {
			continue
		}

		exDate, err := parseExDate(row[exDateCol])
		if err != nil {
			log.Printf("corporate action import: skipping %s: %v", symbol, err)
			continue
		}

		faceValue := decimal.Zero
		if hasFaceValue && len(row) > faceValueCol {
			if fv, err := decimal.NewFromString(strings.TrimSpace(row[faceValueCol])); err == nil {
				faceValue = fv
			}
		}

		for _, fragment := range actions.SplitPurpose(purpose) {
			actionType, factor, cashValue, ok := actions.ParseFragment(fragment, faceValue)
			if actionType == model.ActionOther {
				continue
			}
			if !ok {
				log.Printf("corporate action import: dropping unparseable %s fragment for %s on %s: %q",
					actionType, symbol, exDate.Format("2006-01-02"), fragment)
				continue
			}

			isCreated, err := s.actionRepo.Upsert(model.CorporateAction{
				Symbol:     symbol,
				ExDate:     exDate,
				Type:       actionType,
				Factor:     factor,
				CashValue:  cashValue,
				RawPurpose: fragment,
			})
			if err != nil {
				return created, err
			}
			if isCreated {
				created++
			}
		}
	}

	return created, nil
}

// ImportStockPrices reads a bhavcopy-shaped CSV and upserts the equity close
// prices it carries. The same column alias probing used for downloaded
// bhavcopies applies, so both legacy and UDiFF exports import cleanly.
// Returns the number of new records.
func (s *ImportService) ImportStockPrices(r io.Reader) (int, error) {
	bhavcopy, err := nse.ParseBhavcopy(r)
	if err != nil {
		return 0, err
	}

	prices := []model.StockPrice{}
	for _, rec := range bhavcopy.EquityRecords() {
		if rec.TradeDate.IsZero() {
			log.Printf("price import: skipping %s: no trade date", rec.Symbol)
			continue
		}
		prices = append(prices, model.StockPrice{
			Symbol:     rec.Symbol,
			TradeDate:  rec.TradeDate,
			ClosePrice: rec.Close,
		})
	}

	return s.priceRepo.BulkUpsert(prices)
}

// RefreshDailyPrices downloads the bhavcopy for a date and loads every
// equity close price into the store. This is the cron target that keeps the
// store provider current. Returns the number of new records; zero with no
// error when the date's file exists but everything was already imported.
func (s *ImportService) RefreshDailyPrices(ctx context.Context, date time.Time) (int, error) {
	bhavcopy, err := s.nseClient.DownloadBhavcopy(ctx, date)
	if err != nil {
		return 0, err
	}

	prices := []model.StockPrice{}
	for _, rec := range bhavcopy.EquityRecords() {
		tradeDate := rec.TradeDate
		if tradeDate.IsZero() {
			tradeDate = date
		}
		prices = append(prices, model.StockPrice{
			Symbol:     rec.Symbol,
			TradeDate:  tradeDate,
			ClosePrice: rec.Close,
		})
	}

	created, err := s.priceRepo.BulkUpsert(prices)
	if err != nil {
		return 0, err
	}

	log.Printf("daily price refresh for %s: %d new prices", date.Format("2006-01-02"), created)
	return created, nil
}

// BackfillSymbol fills the price store for one symbol from Yahoo over a date
// range. Returns the number of new records.
func (s *ImportService) BackfillSymbol(ctx context.Context, symbol string, startDate, endDate time.Time) (int, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	response, err := s.yahooClient.QueryChartByDateRange(ctx, symbol+".NS", startDate, endDate.AddDate(0, 0, 1))
	if err != nil {
		return 0, err
	}

	chart, err := yahoo.ParseChart(response)
	if err != nil {
		return 0, err
	}

	prices := []model.StockPrice{}
	for _, ind := range chart.Indicators {
		if ind.Date.Before(startDate) || ind.Date.After(endDate) {
			continue
		}
		prices = append(prices, model.StockPrice{
			Symbol:     symbol,
			TradeDate:  ind.Date,
			ClosePrice: ind.Close,
		})
	}

	return s.priceRepo.BulkUpsert(prices)
}

// BackfillSymbols backfills several symbols concurrently, bounded by
// backfillConcurrency. Returns the total number of new records; the first
// failing symbol aborts the remainder.
func (s *ImportService) BackfillSymbols(ctx context.Context, symbols []string, startDate, endDate time.Time) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(backfillConcurrency)

	counts := make([]int, len(symbols))
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			created, err := s.BackfillSymbol(ctx, symbol, startDate, endDate)
			if err != nil {
				return fmt.Errorf("backfill %s: %w", symbol, err)
			}
			counts[i] = created
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	return total, nil
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToUpper(strings.TrimSpace(col))] = i
	}
	return idx
}

func parseExDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range exDateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized ex-date: %q", s)
}
