package handlers

import (
	"errors"
	"net/http"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/api/request"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/api/response"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/apperrors"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/service"
)

// ReturnsHandler handles HTTP requests for return calculations.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the ReturnService.
type ReturnsHandler struct {
	returnService *service.ReturnService
}

// NewReturnsHandler creates a new ReturnsHandler with the provided service dependency.
func NewReturnsHandler(returnService *service.ReturnService) *ReturnsHandler {
	return &ReturnsHandler{
		returnService: returnService,
	}
}

// Returns handles GET requests to compute historical returns for a position.
//
// Endpoint: GET /api/returns?symbol=X&from=YYYY-MM-DD&to=YYYY-MM-DD&shares=N
// Response: 200 OK with a ReturnResult
// Errors: 400 on invalid parameters or date range, 404 when no provider
// could resolve an endpoint price, 500 otherwise.
func (h *ReturnsHandler) Returns(w http.ResponseWriter, r *http.Request) {
	req, err := request.ParseReturnsRequest(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	result, err := h.returnService.Compute(r.Context(), req.Symbol, req.StartDate, req.EndDate, req.Shares)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidRange):
			response.RespondError(w, http.StatusBadRequest, "invalid date range", err.Error())
		case errors.Is(err, apperrors.ErrPriceUnavailable):
			response.RespondError(w, http.StatusNotFound, "price unavailable", err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to compute returns", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
