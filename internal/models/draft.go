package models

import (
	"encoding/json"
	"time"
)

// Form names accepted by the draft store.
const (
	FormIntake    = "intake"
	FormInventory = "inventory"
)

// FormDraft is in-progress form input persisted per (user, form) so a reload
// does not lose it. Cleared on confirmed success or explicit delete.
type FormDraft struct {
	UserID    int             `json:"user_id"`
	Form      string          `json:"form"`
	Payload   json.RawMessage `json:"payload"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UploadLog is one audit row per photo delivered upstream.
type UploadLog struct {
	ID         int64     `json:"id"`
	TicketID   string    `json:"ticket_id"`
	FileName   string    `json:"file_name"`
	Category   string    `json:"category"` // parasite / foreign
	SizeBytes  int64     `json:"size_bytes"`
	Archived   bool      `json:"archived"` // mirrored to object storage
	UploadedAt time.Time `json:"uploaded_at"`
}
