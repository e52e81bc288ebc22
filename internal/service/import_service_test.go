package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/service"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/testutil"
)

func newImportService(t *testing.T, nseClient *testutil.MockNSEClient, yahooClient *testutil.MockYahooClient) (*service.ImportService, *repository.ActionRepository, *repository.PriceRepository) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	actionRepo := repository.NewActionRepository(db)
	priceRepo := repository.NewPriceRepository(db)
	if nseClient == nil {
		nseClient = testutil.NewMockNSEClient()
	}
	if yahooClient == nil {
		yahooClient = testutil.NewMockYahooClient()
	}
	return service.NewImportService(actionRepo, priceRepo, nseClient, yahooClient), actionRepo, priceRepo
}

func TestImportService_ImportCorporateActions(t *testing.T) {
	t.Run("parses and stores actions", func(t *testing.T) {
		svc, actionRepo, _ := newImportService(t, nil, nil)

		csvData := `SYMBOL,SERIES,EX-DATE,PURPOSE,FACE VALUE
RELIANCE,EQ,2024-01-10,Bonus 1:1,10
TCS,EQ,2024-02-15,Dividend - Rs 24 Per Share,1
INFY,EQ,2024-03-20,Face Value Split From Rs 10 To Rs 5,10
WIPRO,BE,2024-03-20,Bonus 1:1,2
`

		created, err := svc.ImportCorporateActions(strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("ImportCorporateActions() returned unexpected error: %v", err)
		}
		if created != 3 {
			t.Errorf("created = %d, want 3 (BE series row excluded)", created)
		}

		actions, err := actionRepo.ListActions("RELIANCE")
		if err != nil {
			t.Fatalf("ListActions() returned unexpected error: %v", err)
		}
		if len(actions) != 1 {
			t.Fatalf("got %d RELIANCE actions, want 1", len(actions))
		}
		if actions[0].Type != model.ActionBonus {
			t.Errorf("type = %s, want BONUS", actions[0].Type)
		}
		if actions[0].Factor == nil || !actions[0].Factor.Equal(testutil.Dec(t, "2")) {
			t.Errorf("factor = %v, want 2", actions[0].Factor)
		}

		wipro, err := actionRepo.ListActions("WIPRO")
		if err != nil {
			t.Fatalf("ListActions() returned unexpected error: %v", err)
		}
		if len(wipro) != 0 {
			t.Errorf("got %d WIPRO actions, want 0 for non-EQ series", len(wipro))
		}
	})

	t.Run("compound purpose yields multiple actions", func(t *testing.T) {
		svc, actionRepo, _ := newImportService(t, nil, nil)

		csvData := `SYMBOL,SERIES,EX-DATE,PURPOSE,FACE VALUE
RELIANCE,EQ,2024-01-10,Div 30%/Bonus 1:1,10
`

		created, err := svc.ImportCorporateActions(strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("ImportCorporateActions() returned unexpected error: %v", err)
		}
		if created != 2 {
			t.Errorf("created = %d, want 2", created)
		}

		actions, err := actionRepo.ListActions("RELIANCE")
		if err != nil {
			t.Fatalf("ListActions() returned unexpected error: %v", err)
		}
		if len(actions) != 2 {
			t.Fatalf("got %d actions, want 2", len(actions))
		}

		byType := map[model.ActionType]model.CorporateAction{}
		for _, a := range actions {
			byType[a.Type] = a
		}
		dividend, ok := byType[model.ActionDividend]
		if !ok {
			t.Fatal("missing DIVIDEND action")
		}
		// 30% of face value 10.
		if dividend.CashValue == nil || !dividend.CashValue.Equal(testutil.Dec(t, "3")) {
			t.Errorf("dividend cash = %v, want 3", dividend.CashValue)
		}
		if _, ok := byType[model.ActionBonus]; !ok {
			t.Error("missing BONUS action")
		}
	})

	t.Run("re-import creates nothing", func(t *testing.T) {
		svc, _, _ := newImportService(t, nil, nil)

		csvData := `SYMBOL,SERIES,EX-DATE,PURPOSE,FACE VALUE
RELIANCE,EQ,2024-01-10,Bonus 1:1,10
`

		if _, err := svc.ImportCorporateActions(strings.NewReader(csvData)); err != nil {
			t.Fatalf("first import returned unexpected error: %v", err)
		}
		created, err := svc.ImportCorporateActions(strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("second import returned unexpected error: %v", err)
		}
		if created != 0 {
			t.Errorf("created = %d on re-import, want 0", created)
		}
	})

	t.Run("unparseable fragments are dropped not fatal", func(t *testing.T) {
		svc, _, _ := newImportService(t, nil, nil)

		csvData := `SYMBOL,SERIES,EX-DATE,PURPOSE,FACE VALUE
RELIANCE,EQ,2024-01-10,Annual General Meeting,10
TCS,EQ,2024-02-15,Dividend - Rs 24 Per Share,1
`

		created, err := svc.ImportCorporateActions(strings.NewReader(csvData))
		if err != nil {
			t.Fatalf("ImportCorporateActions() returned unexpected error: %v", err)
		}
		if created != 1 {
			t.Errorf("created = %d, want 1", created)
		}
	})

	t.Run("missing required headers", func(t *testing.T) {
		svc, _, _ := newImportService(t, nil, nil)

		_, err := svc.ImportCorporateActions(strings.NewReader("SYMBOL,DATE\nRELIANCE,2024-01-10\n"))
		if !errors.Is(err, apperrors.ErrInvalidCSVHeaders) {
			t.Errorf("expected ErrInvalidCSVHeaders, got %v", err)
		}
	})
}

func TestImportService_ImportStockPrices(t *testing.T) {
	svc, _, priceRepo := newImportService(t, nil, nil)

	csvData := `SYMBOL,SERIES,OPEN,HIGH,LOW,CLOSE,TOTTRDQTY,TIMESTAMP
RELIANCE,EQ,2800.00,2850.00,2790.00,2845.50,5000000,15-Mar-2024
TCS,EQ,3700.00,3750.00,3690.00,3710.25,1200000,15-Mar-2024
RELIANCE,BE,2800.00,2850.00,2790.00,2700.00,1000,15-Mar-2024
`

	created, err := svc.ImportStockPrices(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ImportStockPrices() returned unexpected error: %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2 (BE series excluded)", created)
	}

	price, err := priceRepo.FindPrice("RELIANCE", testutil.Date(t, "2024-03-15"))
	if err != nil {
		t.Fatalf("FindPrice() returned unexpected error: %v", err)
	}
	if !price.Equal(testutil.Dec(t, "2845.50")) {
		t.Errorf("price = %s, want the EQ close 2845.50", price)
	}
}

func TestImportService_RefreshDailyPrices(t *testing.T) {
	t.Run("loads the published file", func(t *testing.T) {
		nseClient := testutil.NewMockNSEClient().WithBhavcopy("2024-03-15",
			`SYMBOL,SERIES,OPEN,HIGH,LOW,CLOSE,TOTTRDQTY,TIMESTAMP
RELIANCE,EQ,2800.00,2850.00,2790.00,2845.50,5000000,15-Mar-2024
TCS,EQ,3700.00,3750.00,3690.00,3710.25,1200000,15-Mar-2024
`)
		svc, _, priceRepo := newImportService(t, nseClient, nil)

		created, err := svc.RefreshDailyPrices(context.Background(), testutil.Date(t, "2024-03-15"))
		if err != nil {
			t.Fatalf("RefreshDailyPrices() returned unexpected error: %v", err)
		}
		if created != 2 {
			t.Errorf("created = %d, want 2", created)
		}

		price, err := priceRepo.FindPrice("TCS", testutil.Date(t, "2024-03-15"))
		if err != nil {
			t.Fatalf("FindPrice() returned unexpected error: %v", err)
		}
		if !price.Equal(testutil.Dec(t, "3710.25")) {
			t.Errorf("price = %s, want 3710.25", price)
		}
	})

	t.Run("download failure propagates", func(t *testing.T) {
		nseClient := testutil.NewMockNSEClient().WithError(errors.New("archive unreachable"))
		svc, _, _ := newImportService(t, nseClient, nil)

		_, err := svc.RefreshDailyPrices(context.Background(), testutil.Date(t, "2024-03-15"))
		if err == nil {
			t.Fatal("expected error when download fails")
		}
	})
}

func TestImportService_BackfillSymbol(t *testing.T) {
	yahooClient := testutil.NewMockYahooClient().WithDailyCloses("RELIANCE.NS", [][2]string{
		{"2024-03-13", "2810.00"},
		{"2024-03-14", "2820.00"},
		{"2024-03-15", "2845.50"},
	})
	svc, _, priceRepo := newImportService(t, nil, yahooClient)

	created, err := svc.BackfillSymbol(context.Background(), "reliance",
		testutil.Date(t, "2024-03-14"), testutil.Date(t, "2024-03-15"))
	if err != nil {
		t.Fatalf("BackfillSymbol() returned unexpected error: %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2 (2024-03-13 is outside the range)", created)
	}

	price, err := priceRepo.FindPrice("RELIANCE", testutil.Date(t, "2024-03-15"))
	if err != nil {
		t.Fatalf("FindPrice() returned unexpected error: %v", err)
	}
	if !price.Equal(testutil.Dec(t, "2845.5")) {
		t.Errorf("price = %s, want 2845.5", price)
	}
}

func TestImportService_BackfillSymbols(t *testing.T) {
	t.Run("sums created rows across symbols", func(t *testing.T) {
		// The mock serves the same two days regardless of symbol, so each
		// of the three symbols stores two rows.
		yahooClient := testutil.NewMockYahooClient().WithDailyCloses("ANY.NS", [][2]string{
			{"2024-03-14", "100.00"},
			{"2024-03-15", "101.00"},
		})
		svc, _, _ := newImportService(t, nil, yahooClient)

		created, err := svc.BackfillSymbols(context.Background(),
			[]string{"RELIANCE", "TCS", "INFY"},
			testutil.Date(t, "2024-03-14"), testutil.Date(t, "2024-03-15"))
		if err != nil {
			t.Fatalf("BackfillSymbols() returned unexpected error: %v", err)
		}
		if created != 6 {
			t.Errorf("created = %d, want 6", created)
		}
		if yahooClient.QueryCount != 3 {
			t.Errorf("queries = %d, want 3", yahooClient.QueryCount)
		}
	})

	t.Run("failure names the symbol", func(t *testing.T) {
		yahooClient := testutil.NewMockYahooClient().WithError(errors.New("rate limited"))
		svc, _, _ := newImportService(t, nil, yahooClient)

		_, err := svc.BackfillSymbols(context.Background(),
			[]string{"RELIANCE"},
			testutil.Date(t, "2024-03-14"), testutil.Date(t, "2024-03-15"))
		if err == nil || !strings.Contains(err.Error(), "RELIANCE") {
			t.Errorf("error = %v, want it to name the failing symbol", err)
		}
	})
}
