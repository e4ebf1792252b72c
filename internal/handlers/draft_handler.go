package handlers

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"

	"fishplant-backend/internal/middleware"
	"fishplant-backend/internal/repositories"
	"fishplant-backend/internal/services"

	"github.com/gorilla/mux"
)

// Draft payloads are small form states; 1MB is generous.
const maxDraftBytes = 1 << 20

// draftClearer removes a user's saved form state. The submit handlers use it
// to drop the autosave once its submission has been confirmed upstream.
type draftClearer interface {
	Delete(ctx context.Context, userID int, form string) error
}

// clearDraft is best-effort: the submission already succeeded, so a leftover
// draft only costs the user one stale restore.
func clearDraft(ctx context.Context, drafts draftClearer, form string) {
	if drafts == nil {
		return
	}
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		return
	}
	if err := drafts.Delete(ctx, userID, form); err != nil {
		log.Printf("[Draft] clear %s draft for user %d failed: %v", form, userID, err)
	}
}

type DraftHandler struct {
	Service *services.DraftService
}

func NewDraftHandler(s *services.DraftService) *DraftHandler {
	return &DraftHandler{Service: s}
}

func (h *DraftHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	draft, err := h.Service.Get(r.Context(), userID, mux.Vars(r)["form"])
	if errors.Is(err, repositories.ErrDraftNotFound) {
		http.Error(w, "No draft saved", http.StatusNotFound)
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxDraftBytes))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	draft, err := h.Service.Save(r.Context(), userID, mux.Vars(r)["form"], payload)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

func (h *DraftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())

	if err := h.Service.Delete(r.Context(), userID, mux.Vars(r)["form"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
