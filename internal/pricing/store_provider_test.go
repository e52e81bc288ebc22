package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/pricing"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/testutil"
)

func TestStoreProvider_FetchClose(t *testing.T) {
	db := testutil.SetupTestDB(t)
	provider := pricing.NewStoreProvider(repository.NewPriceRepository(db))

	testutil.InsertPrice(t, db, "RELIANCE", "2024-03-15", "2845.50")
	testutil.InsertPrice(t, db, "SUSPENDED", "2024-03-15", "0")

	t.Run("stored price", func(t *testing.T) {
		quote, err := provider.FetchClose(context.Background(), "reliance", testutil.Date(t, "2024-03-15"))
		if err != nil {
			t.Fatalf("FetchClose() returned unexpected error: %v", err)
		}
		if !quote.Close.Equal(testutil.Dec(t, "2845.50")) {
			t.Errorf("Close = %s, want 2845.50", quote.Close)
		}
		if quote.Source != "store" {
			t.Errorf("Source = %q, want store", quote.Source)
		}
	})

	t.Run("store miss", func(t *testing.T) {
		_, err := provider.FetchClose(context.Background(), "RELIANCE", testutil.Date(t, "2024-03-16"))
		if !errors.Is(err, apperrors.ErrPriceNotFound) {
			t.Errorf("expected ErrPriceNotFound, got %v", err)
		}
	})

	t.Run("stored zero never surfaces", func(t *testing.T) {
		_, err := provider.FetchClose(context.Background(), "SUSPENDED", testutil.Date(t, "2024-03-15"))
		if !errors.Is(err, apperrors.ErrNonPositivePrice) {
			t.Errorf("expected ErrNonPositivePrice, got %v", err)
		}
	})

	t.Run("stored zero falls through to the next provider", func(t *testing.T) {
		fallback := &testutil.StaticProvider{ProviderName: "fallback", Price: testutil.Dec(t, "44.10")}
		resolver := pricing.NewResolver(provider, fallback)

		quote, err := resolver.Resolve(context.Background(), "SUSPENDED", testutil.Date(t, "2024-03-15"))
		if err != nil {
			t.Fatalf("Resolve() returned unexpected error: %v", err)
		}
		if quote.Source != "fallback" {
			t.Errorf("Source = %q, want fallback", quote.Source)
		}
	})
}
