package handlers

import (
	"context"
	"net/http"

	"fishplant-backend/internal/models"

	"github.com/gorilla/mux"
)

type photoLister interface {
	ListByTicket(ctx context.Context, ticketID string) ([]models.UploadLog, error)
}

type PhotoHandler struct {
	Service photoLister
}

func NewPhotoHandler(s photoLister) *PhotoHandler {
	return &PhotoHandler{Service: s}
}

// ListByTicket returns the upload log for one ticket: every photo sent
// upstream, in upload order, with its archive state.
func (h *PhotoHandler) ListByTicket(w http.ResponseWriter, r *http.Request) {
	logs, err := h.Service.ListByTicket(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if logs == nil {
		logs = []models.UploadLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}
