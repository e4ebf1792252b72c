package services

import (
	"context"
	"fmt"
	"time"

	"fishplant-backend/internal/models"
	"fishplant-backend/internal/timeutil"
)

type monthLister interface {
	ListMonth(ctx context.Context, month string) (*models.MonthRecords, error)
	FetchTicket(ctx context.Context, ticketID string) (*models.IntakeTicket, error)
}

type closedStore interface {
	Close(ctx context.Context, ticketID string, userID int) (time.Time, error)
	IsClosed(ctx context.Context, ticketID string) (bool, error)
	ClosedSet(ctx context.Context, ticketIDs []string) (map[string]bool, error)
}

// ListingService renders the month view: every intake ticket with its
// derived status, merged from the remote sheet and the local closed set.
type ListingService struct {
	upstream monthLister
	closed   closedStore
	locks    *keyedMutex
}

func NewListingService(upstream monthLister, closed closedStore) *ListingService {
	return &ListingService{upstream: upstream, closed: closed, locks: newKeyedMutex()}
}

// ListMonth returns one row per intake ticket in the month. Status is
// closed > reported > intake-only; a report can only be started from an
// intake-only row.
func (s *ListingService) ListMonth(ctx context.Context, month string) ([]models.RecordRow, error) {
	if month == "" {
		month = timeutil.ThisMonth()
	}
	if !timeutil.ValidMonth(month) {
		return nil, validationErrorf("month must be yyyy-mm, got %q", month)
	}

	records, err := s.upstream.ListMonth(ctx, month)
	if err != nil {
		return nil, err
	}

	// Latest report per ticket. The sheet appends in submission order, so
	// the last one wins.
	reported := map[string]*models.InventoryReport{}
	for i := range records.Reports {
		r := &records.Reports[i]
		reported[r.TicketID] = r
	}

	ids := make([]string, 0, len(records.Tickets))
	for i := range records.Tickets {
		ids = append(ids, records.Tickets[i].TicketID)
	}
	closedSet, err := s.closed.ClosedSet(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load closed tickets: %w", err)
	}

	rows := []models.RecordRow{}
	for i := range records.Tickets {
		t := &records.Tickets[i]
		row := models.RecordRow{
			TicketID:     t.TicketID,
			PurchaseDate: t.PurchaseDate,
			Species:      t.Species,
			Person:       t.Person,
			Factory:      t.Factory,
			Supplier:     t.Supplier,
			Status:       models.StatusIntakeOnly,
		}
		if r, ok := reported[t.TicketID]; ok {
			row.Status = models.StatusReported
			row.ReportDate = r.Date
			row.ReportKg = r.Kg
		}
		if closedSet[t.TicketID] {
			row.Status = models.StatusClosed
		}
		row.CanReport = row.Status == models.StatusIntakeOnly
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *ListingService) GetTicket(ctx context.Context, ticketID string) (*models.IntakeTicket, error) {
	if ticketID == "" {
		return nil, validationErrorf("ticket id is required")
	}
	return s.upstream.FetchTicket(ctx, ticketID)
}

// CloseTicket marks a ticket as closed locally: no report will ever be filed
// for it. Only an intake-only ticket can be closed, and closing is terminal.
func (s *ListingService) CloseTicket(ctx context.Context, ticketID string, userID int) (time.Time, error) {
	if ticketID == "" {
		return time.Time{}, validationErrorf("ticket id is required")
	}

	unlock := s.locks.Lock(ticketID)
	defer unlock()

	isClosed, err := s.closed.IsClosed(ctx, ticketID)
	if err != nil {
		return time.Time{}, fmt.Errorf("check ticket state: %w", err)
	}
	if isClosed {
		return time.Time{}, validationErrorf("ticket %s is already closed", ticketID)
	}

	ticket, err := s.upstream.FetchTicket(ctx, ticketID)
	if err != nil {
		return time.Time{}, err
	}

	// Refuse to close a ticket that already has a report.
	if len(ticket.Date) >= 7 {
		records, err := s.upstream.ListMonth(ctx, ticket.Date[:7])
		if err != nil {
			return time.Time{}, err
		}
		for i := range records.Reports {
			if records.Reports[i].TicketID == ticketID {
				return time.Time{}, validationErrorf("ticket %s already has a report", ticketID)
			}
		}
	}

	return s.closed.Close(ctx, ticketID, userID)
}
