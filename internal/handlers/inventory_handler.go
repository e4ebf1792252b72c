package handlers

import (
	"encoding/json"
	"net/http"

	"fishplant-backend/internal/models"
	"fishplant-backend/internal/services"
)

type InventoryHandler struct {
	Service *services.InventoryService
	Drafts  draftClearer
}

func NewInventoryHandler(s *services.InventoryService, drafts draftClearer) *InventoryHandler {
	return &InventoryHandler{Service: s, Drafts: drafts}
}

// Submit records an inventory report with its anomaly photos. 201 when
// delivered, 202 when queued. Confirmed delivery clears the user's inventory
// draft.
func (h *InventoryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub models.InventorySubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.Submit(r.Context(), &sub)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Queued {
		status = http.StatusAccepted
	} else {
		clearDraft(r.Context(), h.Drafts, models.FormInventory)
	}
	writeJSON(w, status, result)
}

// Prefill seeds the report form from an intake ticket (?tid=).
func (h *InventoryHandler) Prefill(w http.ResponseWriter, r *http.Request) {
	form, err := h.Service.Prefill(r.Context(), r.URL.Query().Get("tid"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, form)
}
