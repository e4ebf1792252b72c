package handlers

import (
	"net/http"

	"fishplant-backend/internal/services"
)

type MasterHandler struct {
	Service *services.MasterService
}

func NewMasterHandler(s *services.MasterService) *MasterHandler {
	return &MasterHandler{Service: s}
}

// Get returns the cached master data, refreshing it if stale.
func (h *MasterHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Load(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// Reload forces a refetch regardless of cache age.
func (h *MasterHandler) Reload(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Service.Reload(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
