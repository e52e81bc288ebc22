package handlers

import (
	"net/http"
	"time"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/api/response"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/validation"
)

// PricesHandler serves read-only browsing of imported stock prices.
type PricesHandler struct {
	priceRepo *repository.PriceRepository
}

// NewPricesHandler creates a new PricesHandler.
func NewPricesHandler(priceRepo *repository.PriceRepository) *PricesHandler {
	return &PricesHandler{priceRepo: priceRepo}
}

// Prices handles GET requests listing stored prices for a symbol.
//
// Endpoint: GET /api/prices?symbol=X&from=YYYY-MM-DD&to=YYYY-MM-DD
// The date range is optional and defaults to the last year.
// Response: 200 OK with an array of StockPrice ordered by trade date
func (h *PricesHandler) Prices(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	symbol, err := validation.ValidateSymbol(q.Get("symbol"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(-1, 0, 0)
	if q.Get("from") != "" {
		if from, err = validation.ParseDate(q.Get("from")); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
	}
	if q.Get("to") != "" {
		if to, err = validation.ParseDate(q.Get("to")); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
	}

	prices, err := h.priceRepo.ListPrices(symbol, from, to)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve prices", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, prices)
}
