package handlers

import (
	"encoding/json"
	"net/http"

	"fishplant-backend/internal/models"
	"fishplant-backend/internal/services"
)

type IntakeHandler struct {
	Service *services.IntakeService
	Drafts  draftClearer
}

func NewIntakeHandler(s *services.IntakeService, drafts draftClearer) *IntakeHandler {
	return &IntakeHandler{Service: s, Drafts: drafts}
}

// Submit records a new intake ticket. 201 when delivered upstream, 202 when
// parked in the offline queue. A delivered ticket also clears the user's
// intake draft; a queued one keeps it, since the submission is not confirmed
// yet.
func (h *IntakeHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var ticket models.IntakeTicket
	if err := json.NewDecoder(r.Body).Decode(&ticket); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.Service.Submit(r.Context(), &ticket)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Queued {
		status = http.StatusAccepted
	} else {
		clearDraft(r.Context(), h.Drafts, models.FormIntake)
	}
	writeJSON(w, status, result)
}
