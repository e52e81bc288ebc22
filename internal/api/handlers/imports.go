package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/api/response"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/service"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/validation"
)

// ImportHandler handles administrative import endpoints. All of them sit
// behind the API key middleware.
type ImportHandler struct {
	importService *service.ImportService
}

// NewImportHandler creates a new ImportHandler with the provided service dependency.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
	}
}

// importResponse reports how many records an import created.
type importResponse struct {
	Created int `json:"created"`
}

// ImportActions handles POST requests importing an NSE corporate action CSV.
//
// Endpoint: POST /api/admin/import/actions (CSV request body)
// Response: 200 OK with the number of records created; re-posting the same
// file creates zero.
func (h *ImportHandler) ImportActions(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	created, err := h.importService.ImportCorporateActions(r.Body)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to import corporate actions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, importResponse{Created: created})
}

// ImportPrices handles POST requests importing a bhavcopy-shaped price CSV.
//
// Endpoint: POST /api/admin/import/prices (CSV request body)
// Response: 200 OK with the number of records created
func (h *ImportHandler) ImportPrices(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	created, err := h.importService.ImportStockPrices(r.Body)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to import prices", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, importResponse{Created: created})
}

// RefreshPrices handles POST requests triggering a bhavcopy download for one
// date, the same work the scheduler performs daily.
//
// Endpoint: POST /api/admin/refresh-prices?date=YYYY-MM-DD (default today)
// Response: 200 OK with the number of records created
// Error: 502 Bad Gateway when the bhavcopy cannot be fetched
func (h *ImportHandler) RefreshPrices(w http.ResponseWriter, r *http.Request) {
	date := time.Now().UTC()
	if param := r.URL.Query().Get("date"); param != "" {
		var err error
		if date, err = validation.ParseDate(param); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
			return
		}
	}

	created, err := h.importService.RefreshDailyPrices(r.Context(), date)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to refresh prices", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, importResponse{Created: created})
}

// Backfill handles POST requests backfilling the price store from the chart
// API for one or more symbols over a date range.
//
// Endpoint: POST /api/admin/backfill?symbols=A,B&from=YYYY-MM-DD&to=YYYY-MM-DD
// Response: 200 OK with the total number of records created
// Error: 502 Bad Gateway when any symbol's chart data cannot be fetched
func (h *ImportHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	symbols := []string{}
	for _, s := range strings.Split(q.Get("symbols"), ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		response.RespondError(w, http.StatusBadRequest, "invalid request", "symbols is required")
		return
	}

	from, err := validation.ParseDate(q.Get("from"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	to, err := validation.ParseDate(q.Get("to"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if from.After(to) {
		response.RespondError(w, http.StatusBadRequest, "invalid request", "from is after to")
		return
	}

	created, err := h.importService.BackfillSymbols(r.Context(), symbols, from, to)
	if err != nil {
		response.RespondError(w, http.StatusBadGateway, "failed to backfill prices", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, importResponse{Created: created})
}
