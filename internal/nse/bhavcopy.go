package nse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
)

// fieldAliases maps each logical bhavcopy field to the physical column names
// NSE has used across file generations, in probe order. The first alias
// present in the header wins. New-format (UDiFF) names come first where they
// differ, then the legacy cm*bhav names.
var fieldAliases = map[string][]string{
	"symbol": {"SYMBOL", "TCKRSYMB", "SC_NAME"},
	"series": {"SERIES", "SCTYSRS"},
	"open":   {"OPEN_PRICE", "OPEN", "OPNPRIC"},
	"high":   {"HIGH_PRICE", "HIGH", "HGHPRIC"},
	"low":    {"LOW_PRICE", "LOW", "LWPRIC"},
	"close":  {"CLOSE_PRICE", "CLOSE", "CLSPRIC"},
	"volume": {"TTL_TRD_QNTY", "TOTTRDQTY", "TTLTRADGVOL"},
	"date":   {"TIMESTAMP", "TRADDT", "DATE1"},
}

// bhavcopy date formats across file generations.
var dateLayouts = []string{"2006-01-02", "02-Jan-2006", "2-Jan-2006"}

// Bhavcopy is one parsed end-of-day market data file. Column positions for
// the logical fields are resolved once at parse time against the alias
// table; lookups afterwards are plain index accesses.
type Bhavcopy struct {
	rows [][]string

	symbolCol int
	seriesCol int // -1 when the file carries no series column
	closeCol  int
	dateCol   int // -1 when the file carries no trade date column
}

// Record is one equity row extracted from a bhavcopy.
type Record struct {
	Symbol    string
	TradeDate time.Time // zero when the file carries no trade date column
	Close     decimal.Decimal
}

// ParseBhavcopy reads a bhavcopy CSV and resolves its column layout. Headers
// are uppercased and trimmed before alias probing. Fails with
// ErrUnsupportedSchema when no symbol or no close column can be identified.
func ParseBhavcopy(r io.Reader) (*Bhavcopy, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse bhavcopy CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("%w: empty file", apperrors.ErrUnsupportedSchema)
	}

	header := make([]string, len(records[0]))
	for i, col := range records[0] {
		header[i] = strings.ToUpper(strings.TrimSpace(col))
	}

	find := func(field string) int {
		for _, alias := range fieldAliases[field] {
			for i, col := range header {
				if col == alias {
					return i
				}
			}
		}
		return -1
	}

	b := &Bhavcopy{
		rows:      records[1:],
		symbolCol: find("symbol"),
		seriesCol: find("series"),
		closeCol:  find("close"),
		dateCol:   find("date"),
	}

	if b.symbolCol < 0 || b.closeCol < 0 {
		return nil, fmt.Errorf("%w: columns %v", apperrors.ErrUnsupportedSchema, header)
	}

	return b, nil
}

// ClosePrice returns the equity-series closing price for a symbol. The symbol
// is uppercased and trimmed before comparison. When the file carries a series
// column, only "EQ" rows qualify. Fails with ErrSymbolNotFound when no
// matching row exists and with ErrNonPositivePrice when the row carries a
// 0.00 close, as published for suspended securities.
func (b *Bhavcopy) ClosePrice(symbol string) (decimal.Decimal, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	for _, row := range b.rows {
		if !b.rowMatches(row, symbol) {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(row[b.closeCol]))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("invalid close price for %s: %w", symbol, err)
		}
		if !price.IsPositive() {
			return decimal.Decimal{}, fmt.Errorf("%w: %s closed at %s", apperrors.ErrNonPositivePrice, symbol, price)
		}
		return price, nil
	}

	return decimal.Decimal{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
}

// EquityRecords returns every equity-series row as a normalized Record.
// Rows with an unparseable or non-positive close price are skipped, so
// suspended securities never enter the price store. Used by the bulk price
// import to load a whole trading day at once.
func (b *Bhavcopy) EquityRecords() []Record {
	out := make([]Record, 0, len(b.rows))
	for _, row := range b.rows {
		if len(row) <= b.symbolCol || len(row) <= b.closeCol {
			continue
		}
		if b.seriesCol >= 0 {
			if len(row) <= b.seriesCol || strings.ToUpper(strings.TrimSpace(row[b.seriesCol])) != "EQ" {
				continue
			}
		}
		price, err := decimal.NewFromString(strings.TrimSpace(row[b.closeCol]))
		if err != nil || !price.IsPositive() {
			continue
		}
		rec := Record{
			Symbol: strings.ToUpper(strings.TrimSpace(row[b.symbolCol])),
			Close:  price,
		}
		if b.dateCol >= 0 && len(row) > b.dateCol {
			if d, err := parseTradeDate(row[b.dateCol]); err == nil {
				rec.TradeDate = d
			}
		}
		out = append(out, rec)
	}
	return out
}

func (b *Bhavcopy) rowMatches(row []string, symbol string) bool {
	if len(row) <= b.symbolCol || len(row) <= b.closeCol {
		return false
	}
	if strings.ToUpper(strings.TrimSpace(row[b.symbolCol])) != symbol {
		return false
	}
	if b.seriesCol >= 0 {
		if len(row) <= b.seriesCol || strings.ToUpper(strings.TrimSpace(row[b.seriesCol])) != "EQ" {
			return false
		}
	}
	return true
}

func parseTradeDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized trade date: %q", s)
}
