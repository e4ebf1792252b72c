package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"fishplant-backend/internal/metrics"
	"fishplant-backend/internal/models"
	"fishplant-backend/internal/timeutil"

	"github.com/google/uuid"
)

// upstreamRecorder appends one record row to the remote sheet.
type upstreamRecorder interface {
	Record(ctx context.Context, kind string, payload json.RawMessage) error
}

type enqueuer interface {
	Enqueue(ctx context.Context, kind string, payload json.RawMessage) (*models.QueuedSubmission, error)
}

// SubmitResult tells the caller whether the submission reached the upstream
// or was parked in the local queue for a later sync.
type SubmitResult struct {
	TicketID string `json:"ticketId"`
	Queued   bool   `json:"queued"`
}

type IntakeService struct {
	upstream upstreamRecorder
	queue    enqueuer
}

func NewIntakeService(upstream upstreamRecorder, queue enqueuer) *IntakeService {
	return &IntakeService{upstream: upstream, queue: queue}
}

// Submit validates an intake ticket and records it upstream. Validation
// failures are local and final; delivery failures enqueue the ticket.
func (s *IntakeService) Submit(ctx context.Context, ticket *models.IntakeTicket) (*SubmitResult, error) {
	if missing := missingFields(ticket.RequiredValues()); len(missing) > 0 {
		return nil, validationErrorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if !timeutil.ValidDate(ticket.Date) {
		return nil, validationErrorf("date must be yyyy-mm-dd, got %q", ticket.Date)
	}
	if !timeutil.ValidDate(ticket.PurchaseDate) {
		return nil, validationErrorf("purchaseDate must be yyyy-mm-dd, got %q", ticket.PurchaseDate)
	}

	// Flags default to なし and an unperformed ozone treatment has no operator.
	if ticket.Ozone == "" {
		ticket.Ozone = models.FlagAbsent
	}
	if ticket.Ozone == models.FlagAbsent {
		ticket.OzonePerson = models.FlagAbsent
	}
	if ticket.VisualToxic == "" {
		ticket.VisualToxic = models.FlagAbsent
	}
	if ticket.VisualToxic == models.FlagPresent && strings.TrimSpace(ticket.VisualToxicNote) == "" {
		return nil, validationErrorf("visual_toxic_note is required when visual_toxic is %s", models.FlagPresent)
	}

	if ticket.TicketID == "" {
		ticket.TicketID = uuid.NewString()
	}

	payload, err := json.Marshal(ticket)
	if err != nil {
		return nil, fmt.Errorf("marshal intake ticket: %w", err)
	}

	if err := s.upstream.Record(ctx, models.KindIntake, payload); err != nil {
		log.Printf("[Intake] delivery of ticket %s failed, queueing: %v", ticket.TicketID, err)
		if _, qErr := s.queue.Enqueue(ctx, models.KindIntake, payload); qErr != nil {
			metrics.SubmissionsTotal.WithLabelValues(models.KindIntake, "lost").Inc()
			return nil, fmt.Errorf("queue intake ticket after delivery failure: %w", qErr)
		}
		metrics.SubmissionsTotal.WithLabelValues(models.KindIntake, "queued").Inc()
		return &SubmitResult{TicketID: ticket.TicketID, Queued: true}, nil
	}

	metrics.SubmissionsTotal.WithLabelValues(models.KindIntake, "delivered").Inc()
	return &SubmitResult{TicketID: ticket.TicketID}, nil
}
