package handlers

import (
	"net/http"

	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/api/response"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/repository"
	"github.com/rmehta/Equity-Returns-Engine-Backend/internal/validation"
)

// ActionsHandler serves read-only browsing of imported corporate actions.
type ActionsHandler struct {
	actionRepo *repository.ActionRepository
}

// NewActionsHandler creates a new ActionsHandler.
func NewActionsHandler(actionRepo *repository.ActionRepository) *ActionsHandler {
	return &ActionsHandler{actionRepo: actionRepo}
}

// Actions handles GET requests listing the corporate actions for a symbol.
//
// Endpoint: GET /api/actions?symbol=X
// Response: 200 OK with an array of CorporateAction, newest first
func (h *ActionsHandler) Actions(w http.ResponseWriter, r *http.Request) {
	symbol, err := validation.ValidateSymbol(r.URL.Query().Get("symbol"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	actions, err := h.actionRepo.ListActions(symbol)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve corporate actions", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, actions)
}
