package services

import (
	"context"
	"encoding/json"

	"fishplant-backend/internal/models"
	"fishplant-backend/internal/repositories"
)

// DraftService stores per-user form autosaves so a half-filled form survives
// a tablet reboot on the plant floor.
type DraftService struct {
	Repo *repositories.DraftRepository
}

func NewDraftService(repo *repositories.DraftRepository) *DraftService {
	return &DraftService{Repo: repo}
}

func validForm(form string) bool {
	return form == models.FormIntake || form == models.FormInventory
}

func (s *DraftService) Save(ctx context.Context, userID int, form string, payload json.RawMessage) (*models.FormDraft, error) {
	if !validForm(form) {
		return nil, validationErrorf("unknown form %q", form)
	}
	if !json.Valid(payload) {
		return nil, validationErrorf("draft payload must be JSON")
	}
	return s.Repo.Save(ctx, userID, form, payload)
}

func (s *DraftService) Get(ctx context.Context, userID int, form string) (*models.FormDraft, error) {
	if !validForm(form) {
		return nil, validationErrorf("unknown form %q", form)
	}
	return s.Repo.Get(ctx, userID, form)
}

func (s *DraftService) Delete(ctx context.Context, userID int, form string) error {
	if !validForm(form) {
		return validationErrorf("unknown form %q", form)
	}
	return s.Repo.Delete(ctx, userID, form)
}
