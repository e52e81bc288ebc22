package nse_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/nse"
)

const legacyCSV = `SYMBOL,SERIES,OPEN,HIGH,LOW,CLOSE,LAST,PREVCLOSE,TOTTRDQTY,TIMESTAMP
RELIANCE,EQ,2800.00,2850.00,2790.00,2845.50,2845.00,2798.00,5000000,02-Jan-2024
TCS,EQ,3700.00,3750.00,3690.00,3710.25,3712.00,3698.00,1200000,02-Jan-2024
RELIANCE,BE,2810.00,2812.00,2805.00,2808.00,2808.00,2806.00,1000,02-Jan-2024
INFY,EQ,1500.00,1520.00,1495.00,1512.80,1512.00,1498.00,2400000,02-Jan-2024
`

const udiffCSV = `TradDt,BizDt,Sgmt,Src,FinInstrmTp,TckrSymb,SctySrs,OpnPric,HghPric,LwPric,ClsPric,TtlTradgVol
2024-01-02,2024-01-02,CM,NSE,STK,RELIANCE,EQ,2800,2850,2790,2845.50,5000000
2024-01-02,2024-01-02,CM,NSE,STK,TCS,EQ,3700,3750,3690,3710.25,1200000
`

func TestParseBhavcopy(t *testing.T) {
	t.Run("legacy column names", func(t *testing.T) {
		b, err := nse.ParseBhavcopy(strings.NewReader(legacyCSV))
		if err != nil {
			t.Fatalf("ParseBhavcopy() returned unexpected error: %v", err)
		}

		price, err := b.ClosePrice("RELIANCE")
		if err != nil {
			t.Fatalf("ClosePrice() returned unexpected error: %v", err)
		}
		if want := decimal.RequireFromString("2845.50"); !price.Equal(want) {
			t.Errorf("ClosePrice() = %s, want %s", price, want)
		}
	})

	t.Run("new UDiFF column names", func(t *testing.T) {
		b, err := nse.ParseBhavcopy(strings.NewReader(udiffCSV))
		if err != nil {
			t.Fatalf("ParseBhavcopy() returned unexpected error: %v", err)
		}

		price, err := b.ClosePrice("TCS")
		if err != nil {
			t.Fatalf("ClosePrice() returned unexpected error: %v", err)
		}
		if want := decimal.RequireFromString("3710.25"); !price.Equal(want) {
			t.Errorf("ClosePrice() = %s, want %s", price, want)
		}
	})

	t.Run("unrecognized schema", func(t *testing.T) {
		csv := "FOO,BAR,BAZ\n1,2,3\n"
		_, err := nse.ParseBhavcopy(strings.NewReader(csv))
		if !errors.Is(err, apperrors.ErrUnsupportedSchema) {
			t.Errorf("expected ErrUnsupportedSchema, got %v", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := nse.ParseBhavcopy(strings.NewReader(""))
		if !errors.Is(err, apperrors.ErrUnsupportedSchema) {
			t.Errorf("expected ErrUnsupportedSchema, got %v", err)
		}
	})
}

func TestBhavcopyClosePrice(t *testing.T) {
	b, err := nse.ParseBhavcopy(strings.NewReader(legacyCSV))
	if err != nil {
		t.Fatalf("ParseBhavcopy() returned unexpected error: %v", err)
	}

	t.Run("symbol casing and whitespace normalized", func(t *testing.T) {
		price, err := b.ClosePrice("  reliance ")
		if err != nil {
			t.Fatalf("ClosePrice() returned unexpected error: %v", err)
		}
		if want := decimal.RequireFromString("2845.50"); !price.Equal(want) {
			t.Errorf("ClosePrice() = %s, want %s", price, want)
		}
	})

	t.Run("non-equity series excluded", func(t *testing.T) {
		// RELIANCE appears twice in the file; the BE row must never win,
		// and a symbol listed only outside EQ must not resolve.
		csv := "SYMBOL,SERIES,CLOSE\nSUZLON,BE,44.10\n"
		be, err := nse.ParseBhavcopy(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseBhavcopy() returned unexpected error: %v", err)
		}
		if _, err := be.ClosePrice("SUZLON"); !errors.Is(err, apperrors.ErrSymbolNotFound) {
			t.Errorf("expected ErrSymbolNotFound for non-EQ series, got %v", err)
		}
	})

	t.Run("unknown symbol", func(t *testing.T) {
		_, err := b.ClosePrice("NOSUCHSTOCK")
		if !errors.Is(err, apperrors.ErrSymbolNotFound) {
			t.Errorf("expected ErrSymbolNotFound, got %v", err)
		}
	})

	t.Run("suspended security with zero close", func(t *testing.T) {
		csv := "SYMBOL,SERIES,CLOSE\nSUSPENDED,EQ,0.00\n"
		s, err := nse.ParseBhavcopy(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseBhavcopy() returned unexpected error: %v", err)
		}
		if _, err := s.ClosePrice("SUSPENDED"); !errors.Is(err, apperrors.ErrNonPositivePrice) {
			t.Errorf("expected ErrNonPositivePrice for a 0.00 close, got %v", err)
		}
	})
}

func TestBhavcopyEquityRecords(t *testing.T) {
	b, err := nse.ParseBhavcopy(strings.NewReader(legacyCSV))
	if err != nil {
		t.Fatalf("ParseBhavcopy() returned unexpected error: %v", err)
	}

	records := b.EquityRecords()
	if len(records) != 3 {
		t.Fatalf("expected 3 equity records, got %d", len(records))
	}

	for _, rec := range records {
		if rec.Symbol == "" {
			t.Error("record with empty symbol")
		}
		if rec.Close.IsZero() {
			t.Errorf("record %s has zero close price", rec.Symbol)
		}
		if rec.TradeDate.IsZero() {
			t.Errorf("record %s missing trade date", rec.Symbol)
		}
		if got := rec.TradeDate.Format("2006-01-02"); got != "2024-01-02" {
			t.Errorf("record %s trade date = %s, want 2024-01-02", rec.Symbol, got)
		}
	}

	t.Run("zero-close rows excluded", func(t *testing.T) {
		csv := `SYMBOL,SERIES,CLOSE,TIMESTAMP
RELIANCE,EQ,2845.50,02-Jan-2024
SUSPENDED,EQ,0.00,02-Jan-2024
`
		b, err := nse.ParseBhavcopy(strings.NewReader(csv))
		if err != nil {
			t.Fatalf("ParseBhavcopy() returned unexpected error: %v", err)
		}

		records := b.EquityRecords()
		if len(records) != 1 {
			t.Fatalf("expected 1 record, got %d", len(records))
		}
		if records[0].Symbol != "RELIANCE" {
			t.Errorf("kept symbol = %s, want RELIANCE", records[0].Symbol)
		}
	})
}
