package models

import (
	"encoding/json"
	"time"
)

// Submission kinds held in the offline queue.
const (
	KindIntake    = "intake"
	KindInventory = "inventory"
)

// QueuedSubmission is a record payload retained locally after a failed
// delivery, replayed by the queue sync.
type QueuedSubmission struct {
	ID         int64           `json:"id"`
	Kind       string          `json:"type"` // intake | inventory
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}
