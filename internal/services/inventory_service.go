package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"unicode"

	"fishplant-backend/internal/metrics"
	"fishplant-backend/internal/models"
	"fishplant-backend/internal/timeutil"
)

// MaxPhotosPerCategory caps the photos attached per inspection category.
const MaxPhotosPerCategory = 10

// File name prefixes for anomaly photos, matching what the plant staff
// expect to see in the Drive folder.
const (
	parasitePrefix = "寄生虫"
	foreignPrefix  = "異物"
)

type photoSender interface {
	Send(ctx context.Context, ticketID, category string, p models.Photo) error
}

type ticketFetcher interface {
	FetchTicket(ctx context.Context, ticketID string) (*models.IntakeTicket, error)
}

type closedChecker interface {
	IsClosed(ctx context.Context, ticketID string) (bool, error)
}

// InventoryService validates and submits inventory reports. Submissions for
// the same ticket are serialized so two reports cannot interleave their
// record and photo uploads.
type InventoryService struct {
	upstream upstreamRecorder
	photos   photoSender
	queue    enqueuer
	tickets  ticketFetcher
	closed   closedChecker
	locks    *keyedMutex
}

func NewInventoryService(upstream upstreamRecorder, photos photoSender, queue enqueuer, tickets ticketFetcher, closed closedChecker) *InventoryService {
	return &InventoryService{
		upstream: upstream,
		photos:   photos,
		queue:    queue,
		tickets:  tickets,
		closed:   closed,
		locks:    newKeyedMutex(),
	}
}

// Submit validates the submission, then records the report and uploads its
// photos, in that order. Anything that fails after validation is queued for
// the next sync instead of being lost.
func (s *InventoryService) Submit(ctx context.Context, sub *models.InventorySubmission) (*SubmitResult, error) {
	if err := s.validate(sub); err != nil {
		return nil, err
	}

	ticketID := sub.Report.TicketID
	unlock := s.locks.Lock(ticketID)
	defer unlock()

	if s.closed != nil {
		isClosed, err := s.closed.IsClosed(ctx, ticketID)
		if err != nil {
			return nil, fmt.Errorf("check ticket state: %w", err)
		}
		if isClosed {
			return nil, validationErrorf("ticket %s is closed", ticketID)
		}
	}

	remainder, err := s.deliver(ctx, sub)
	if err != nil {
		log.Printf("[Inventory] delivery for ticket %s failed, queueing: %v", ticketID, err)
		payload, mErr := json.Marshal(remainder)
		if mErr != nil {
			return nil, fmt.Errorf("marshal queued submission: %w", mErr)
		}
		if _, qErr := s.queue.Enqueue(ctx, models.KindInventory, payload); qErr != nil {
			metrics.SubmissionsTotal.WithLabelValues(models.KindInventory, "lost").Inc()
			return nil, fmt.Errorf("queue report after delivery failure: %w", qErr)
		}
		metrics.SubmissionsTotal.WithLabelValues(models.KindInventory, "queued").Inc()
		return &SubmitResult{TicketID: ticketID, Queued: true}, nil
	}

	metrics.SubmissionsTotal.WithLabelValues(models.KindInventory, "delivered").Inc()
	return &SubmitResult{TicketID: ticketID}, nil
}

// validate applies every local rule. No network is touched here: a report
// that fails validation is rejected outright, not queued.
func (s *InventoryService) validate(sub *models.InventorySubmission) error {
	r := &sub.Report
	if missing := missingFields(r.RequiredValues()); len(missing) > 0 {
		return validationErrorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if !timeutil.ValidDate(r.Date) {
		return validationErrorf("date must be yyyy-mm-dd, got %q", r.Date)
	}
	if !timeutil.ValidDate(r.PurchaseDate) {
		return validationErrorf("purchaseDate must be yyyy-mm-dd, got %q", r.PurchaseDate)
	}

	switch r.Depletion {
	case models.DepletionConsumed:
		r.Kg = 0
		r.LeftoverKg = 0
	case models.DepletionCarriedOver:
		if r.LeftoverKg <= 0 {
			return validationErrorf("leftoverKg must be positive when depletion is %s", models.DepletionCarriedOver)
		}
		r.Kg = r.LeftoverKg
	default:
		return validationErrorf("depletion must be %s or %s", models.DepletionConsumed, models.DepletionCarriedOver)
	}

	if r.VisualParasite == "" {
		r.VisualParasite = models.FlagAbsent
	}
	if r.VisualForeign == "" {
		r.VisualForeign = models.FlagAbsent
	}
	for name, v := range map[string]string{"visual_parasite": r.VisualParasite, "visual_foreign": r.VisualForeign} {
		if v != models.FlagPresent && v != models.FlagAbsent {
			return validationErrorf("%s must be %s or %s", name, models.FlagPresent, models.FlagAbsent)
		}
	}

	// A finding requires photographic evidence; no finding means no photos.
	if r.VisualParasite == models.FlagPresent && len(sub.ParasitePhotos) == 0 {
		return validationErrorf("at least one parasite photo is required when visual_parasite is %s", models.FlagPresent)
	}
	if r.VisualForeign == models.FlagPresent && len(sub.ForeignPhotos) == 0 {
		return validationErrorf("at least one foreign-matter photo is required when visual_foreign is %s", models.FlagPresent)
	}
	if r.VisualParasite == models.FlagAbsent {
		sub.ParasitePhotos = nil
	}
	if r.VisualForeign == models.FlagAbsent {
		sub.ForeignPhotos = nil
	}
	if len(sub.ParasitePhotos) > MaxPhotosPerCategory || len(sub.ForeignPhotos) > MaxPhotosPerCategory {
		return validationErrorf("at most %d photos per category", MaxPhotosPerCategory)
	}

	renamePhotos(sub.ParasitePhotos, parasitePrefix, r)
	renamePhotos(sub.ForeignPhotos, foreignPrefix, r)
	return nil
}

// renamePhotos gives each photo the Drive name the plant uses:
// <種別>_<魚種>_<yyyymmdd>_<記入者>_<original name>.
func renamePhotos(photos []models.Photo, prefix string, r *models.InventoryReport) {
	// Species names are typed on the floor and often carry full-width
	// (U+3000) spaces; none of them belong in a file name.
	species := strings.Map(func(c rune) rune {
		if unicode.IsSpace(c) {
			return -1
		}
		return c
	}, r.Species)
	date := timeutil.CompactDate(r.Date)
	person := strings.TrimSpace(r.Person)
	for i := range photos {
		name := photos[i].FileName
		if name == "" {
			name = fmt.Sprintf("photo_%d.jpg", i+1)
		}
		if strings.HasPrefix(name, prefix+"_") {
			continue // already named, e.g. a queued replay
		}
		photos[i].FileName = fmt.Sprintf("%s_%s_%s_%s_%s", prefix, species, date, person, name)
	}
}

// deliver records the report row, then uploads photos one by one. On failure
// it returns the submission trimmed to what is still outstanding, for the
// queue. The report row is never re-sent once it has landed.
func (s *InventoryService) deliver(ctx context.Context, sub *models.InventorySubmission) (*models.InventorySubmission, error) {
	if !sub.RecordDelivered {
		payload, err := json.Marshal(&sub.Report)
		if err != nil {
			return sub, fmt.Errorf("marshal report: %w", err)
		}
		if err := s.upstream.Record(ctx, models.KindInventory, payload); err != nil {
			return sub, err
		}
		sub.RecordDelivered = true
	}

	for len(sub.ParasitePhotos) > 0 {
		if err := s.photos.Send(ctx, sub.Report.TicketID, PhotoCategoryParasite, sub.ParasitePhotos[0]); err != nil {
			return sub, err
		}
		sub.ParasitePhotos = sub.ParasitePhotos[1:]
	}
	for len(sub.ForeignPhotos) > 0 {
		if err := s.photos.Send(ctx, sub.Report.TicketID, PhotoCategoryForeign, sub.ForeignPhotos[0]); err != nil {
			return sub, err
		}
		sub.ForeignPhotos = sub.ForeignPhotos[1:]
	}
	return nil, nil
}

// PrefillForm is the inventory form pre-populated from an intake ticket.
// Locked names the fields the form must not let the user edit.
type PrefillForm struct {
	Report models.InventoryReport `json:"report"`
	Locked []string               `json:"locked"`
}

// Prefill fetches the intake ticket and seeds a report from it. The identity
// fields come from the ticket and are locked; the date defaults to today.
func (s *InventoryService) Prefill(ctx context.Context, ticketID string) (*PrefillForm, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, validationErrorf("tid is required")
	}
	ticket, err := s.tickets.FetchTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	return &PrefillForm{
		Report: models.InventoryReport{
			TicketID:     ticket.TicketID,
			PurchaseDate: ticket.PurchaseDate,
			Factory:      ticket.Factory,
			Species:      ticket.Species,
			Date:         timeutil.Today(),
		},
		Locked: []string{"ticketId", "purchaseDate", "factory", "species"},
	}, nil
}
