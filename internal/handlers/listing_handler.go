package handlers

import (
	"net/http"

	"fishplant-backend/internal/middleware"
	"fishplant-backend/internal/services"

	"github.com/gorilla/mux"
)

type ListingHandler struct {
	Service *services.ListingService
}

func NewListingHandler(s *services.ListingService) *ListingHandler {
	return &ListingHandler{Service: s}
}

// ListMonth returns one row per intake ticket for ?month= (default: the
// current month).
func (h *ListingHandler) ListMonth(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Service.ListMonth(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// GetTicket returns one intake ticket by id.
func (h *ListingHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.Service.GetTicket(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticket)
}

// CloseTicket marks a ticket closed. Terminal; only intake-only tickets
// qualify.
func (h *ListingHandler) CloseTicket(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	closedAt, err := h.Service.CloseTicket(r.Context(), mux.Vars(r)["id"], userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ticketId": mux.Vars(r)["id"],
		"status":   "closed",
		"closedAt": closedAt,
	})
}
