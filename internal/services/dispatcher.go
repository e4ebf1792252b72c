package services

import (
	"context"
	"encoding/json"
	"fmt"

	"fishplant-backend/internal/models"
)

// SubmissionDispatcher routes queued submissions back to their delivery
// path during a sync.
type SubmissionDispatcher struct {
	upstream  upstreamRecorder
	inventory *InventoryService
}

func NewSubmissionDispatcher(upstream upstreamRecorder, inventory *InventoryService) *SubmissionDispatcher {
	return &SubmissionDispatcher{upstream: upstream, inventory: inventory}
}

func (d *SubmissionDispatcher) Deliver(ctx context.Context, item *models.QueuedSubmission) error {
	switch item.Kind {
	case models.KindIntake:
		return d.upstream.Record(ctx, models.KindIntake, item.Payload)

	case models.KindInventory:
		var sub models.InventorySubmission
		if err := json.Unmarshal(item.Payload, &sub); err != nil {
			return fmt.Errorf("decode queued submission #%d: %w", item.ID, err)
		}
		remainder, err := d.inventory.deliver(ctx, &sub)
		if err != nil {
			// Keep the progress made this pass so the report row is not
			// duplicated on the next one.
			if payload, mErr := json.Marshal(remainder); mErr == nil {
				item.Payload = payload
			}
			return err
		}
		return nil

	default:
		return fmt.Errorf("unknown submission kind %q", item.Kind)
	}
}
