package handlers

import (
	"net/http"

	"fishplant-backend/internal/services"
)

type QueueHandler struct {
	Service *services.QueueService
}

func NewQueueHandler(s *services.QueueService) *QueueHandler {
	return &QueueHandler{Service: s}
}

// List shows the submissions waiting for replay, oldest first.
func (h *QueueHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// Sync replays the queue now instead of waiting for the scheduler.
func (h *QueueHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.SyncPending(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
