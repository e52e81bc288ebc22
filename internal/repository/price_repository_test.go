package repository_test

import (
	"errors"
	"testing"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/model"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/testutil"
)

func TestPriceRepository_FindPrice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPriceRepository(db)

	testutil.InsertPrice(t, db, "RELIANCE", "2024-03-15", "2845.50")

	t.Run("existing price", func(t *testing.T) {
		price, err := repo.FindPrice("RELIANCE", testutil.Date(t, "2024-03-15"))
		if err != nil {
			t.Fatalf("FindPrice() returned unexpected error: %v", err)
		}
		if !price.Equal(testutil.Dec(t, "2845.50")) {
			t.Errorf("price = %s, want 2845.50", price)
		}
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := repo.FindPrice("RELIANCE", testutil.Date(t, "2024-03-16"))
		if !errors.Is(err, apperrors.ErrPriceNotFound) {
			t.Errorf("expected ErrPriceNotFound, got %v", err)
		}
	})

	t.Run("missing symbol", func(t *testing.T) {
		_, err := repo.FindPrice("NOSUCHSTOCK", testutil.Date(t, "2024-03-15"))
		if !errors.Is(err, apperrors.ErrPriceNotFound) {
			t.Errorf("expected ErrPriceNotFound, got %v", err)
		}
	})
}

func TestPriceRepository_Upsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPriceRepository(db)

	created, err := repo.Upsert("TCS", testutil.Date(t, "2024-03-15"), testutil.Dec(t, "3710.25"))
	if err != nil {
		t.Fatalf("Upsert() returned unexpected error: %v", err)
	}
	if !created {
		t.Error("first Upsert() should create a row")
	}

	// Re-import with a different price must keep the original.
	created, err = repo.Upsert("TCS", testutil.Date(t, "2024-03-15"), testutil.Dec(t, "9999"))
	if err != nil {
		t.Fatalf("second Upsert() returned unexpected error: %v", err)
	}
	if created {
		t.Error("duplicate Upsert() should not create a row")
	}

	price, err := repo.FindPrice("TCS", testutil.Date(t, "2024-03-15"))
	if err != nil {
		t.Fatalf("FindPrice() returned unexpected error: %v", err)
	}
	if !price.Equal(testutil.Dec(t, "3710.25")) {
		t.Errorf("price = %s, want the original 3710.25", price)
	}
}

func TestPriceRepository_BulkUpsert(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPriceRepository(db)

	testutil.InsertPrice(t, db, "RELIANCE", "2024-03-15", "2845.50")

	batch := []model.StockPrice{
		{Symbol: "RELIANCE", TradeDate: testutil.Date(t, "2024-03-15"), ClosePrice: testutil.Dec(t, "2845.50")},
		{Symbol: "TCS", TradeDate: testutil.Date(t, "2024-03-15"), ClosePrice: testutil.Dec(t, "3710.25")},
		{Symbol: "INFY", TradeDate: testutil.Date(t, "2024-03-15"), ClosePrice: testutil.Dec(t, "1510.80")},
	}

	created, err := repo.BulkUpsert(batch)
	if err != nil {
		t.Fatalf("BulkUpsert() returned unexpected error: %v", err)
	}
	if created != 2 {
		t.Errorf("created = %d, want 2 (RELIANCE already present)", created)
	}

	prices, err := repo.ListPrices("TCS", testutil.Date(t, "2024-03-01"), testutil.Date(t, "2024-03-31"))
	if err != nil {
		t.Fatalf("ListPrices() returned unexpected error: %v", err)
	}
	if len(prices) != 1 {
		t.Fatalf("got %d prices, want 1", len(prices))
	}
	if !prices[0].ClosePrice.Equal(testutil.Dec(t, "3710.25")) {
		t.Errorf("close = %s, want 3710.25", prices[0].ClosePrice)
	}
}

func TestPriceRepository_ListPrices(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewPriceRepository(db)

	testutil.InsertPrice(t, db, "RELIANCE", "2024-03-13", "2810.00")
	testutil.InsertPrice(t, db, "RELIANCE", "2024-03-15", "2845.50")
	testutil.InsertPrice(t, db, "RELIANCE", "2024-03-14", "2820.00")
	testutil.InsertPrice(t, db, "RELIANCE", "2024-04-01", "2900.00")

	prices, err := repo.ListPrices("RELIANCE", testutil.Date(t, "2024-03-01"), testutil.Date(t, "2024-03-31"))
	if err != nil {
		t.Fatalf("ListPrices() returned unexpected error: %v", err)
	}

	if len(prices) != 3 {
		t.Fatalf("got %d prices, want 3 inside March", len(prices))
	}
	for i := 1; i < len(prices); i++ {
		if !prices[i].TradeDate.After(prices[i-1].TradeDate) {
			t.Errorf("prices not in ascending trade date order at index %d", i)
		}
	}
}
