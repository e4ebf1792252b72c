package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fishplant-backend/internal/models"
)

type fakeMonthLister struct {
	records map[string]*models.MonthRecords
	tickets map[string]*models.IntakeTicket
}

func (f *fakeMonthLister) ListMonth(ctx context.Context, month string) (*models.MonthRecords, error) {
	if rec, ok := f.records[month]; ok {
		return rec, nil
	}
	return &models.MonthRecords{}, nil
}

func (f *fakeMonthLister) FetchTicket(ctx context.Context, ticketID string) (*models.IntakeTicket, error) {
	if t, ok := f.tickets[ticketID]; ok {
		return t, nil
	}
	return nil, errors.New("ticket not found")
}

type fakeClosedStore struct {
	closed map[string]bool
}

func (f *fakeClosedStore) Close(ctx context.Context, ticketID string, userID int) (time.Time, error) {
	f.closed[ticketID] = true
	return time.Now(), nil
}

func (f *fakeClosedStore) IsClosed(ctx context.Context, ticketID string) (bool, error) {
	return f.closed[ticketID], nil
}

func (f *fakeClosedStore) ClosedSet(ctx context.Context, ticketIDs []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range ticketIDs {
		if f.closed[id] {
			out[id] = true
		}
	}
	return out, nil
}

func juneFixture() *fakeMonthLister {
	saba := &models.IntakeTicket{TicketID: "t-1", Date: "2024-06-01", PurchaseDate: "2024-06-01", Species: "サバ", Person: "田中"}
	iwashi := &models.IntakeTicket{TicketID: "t-2", Date: "2024-06-02", PurchaseDate: "2024-06-02", Species: "イワシ", Person: "佐藤"}
	aji := &models.IntakeTicket{TicketID: "t-3", Date: "2024-06-03", PurchaseDate: "2024-06-03", Species: "アジ", Person: "田中"}
	return &fakeMonthLister{
		records: map[string]*models.MonthRecords{
			"2024-06": {
				Tickets: []models.IntakeTicket{*saba, *iwashi, *aji},
				Reports: []models.InventoryReport{
					{TicketID: "t-2", Date: "2024-06-03", Kg: 4.5},
				},
			},
		},
		tickets: map[string]*models.IntakeTicket{"t-1": saba, "t-2": iwashi, "t-3": aji},
	}
}

func TestListMonthDerivesStatus(t *testing.T) {
	closed := &fakeClosedStore{closed: map[string]bool{"t-3": true}}
	svc := NewListingService(juneFixture(), closed)

	rows, err := svc.ListMonth(context.Background(), "2024-06")
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}

	byID := map[string]models.RecordRow{}
	for _, r := range rows {
		byID[r.TicketID] = r
	}

	if got := byID["t-1"]; got.Status != models.StatusIntakeOnly || !got.CanReport {
		t.Errorf("t-1 = %+v, want intake-only and reportable", got)
	}
	if got := byID["t-2"]; got.Status != models.StatusReported || got.CanReport {
		t.Errorf("t-2 = %+v, want reported and not reportable", got)
	}
	if got := byID["t-2"]; got.ReportDate != "2024-06-03" || got.ReportKg != 4.5 {
		t.Errorf("t-2 report fields = %+v", got)
	}
	if got := byID["t-3"]; got.Status != models.StatusClosed || got.CanReport {
		t.Errorf("t-3 = %+v, want closed and not reportable", got)
	}
}

func TestListMonthRejectsBadMonth(t *testing.T) {
	svc := NewListingService(juneFixture(), &fakeClosedStore{closed: map[string]bool{}})
	if _, err := svc.ListMonth(context.Background(), "June 2024"); err == nil {
		t.Fatal("expected error for malformed month")
	}
}

func TestCloseTicket(t *testing.T) {
	closed := &fakeClosedStore{closed: map[string]bool{}}
	svc := NewListingService(juneFixture(), closed)
	ctx := context.Background()

	if _, err := svc.CloseTicket(ctx, "t-1", 7); err != nil {
		t.Fatalf("CloseTicket: %v", err)
	}
	if !closed.closed["t-1"] {
		t.Fatal("ticket not recorded as closed")
	}

	// Terminal: closing twice fails.
	if _, err := svc.CloseTicket(ctx, "t-1", 7); err == nil {
		t.Fatal("expected error closing an already-closed ticket")
	}

	// A ticket with a report cannot be closed.
	if _, err := svc.CloseTicket(ctx, "t-2", 7); err == nil {
		t.Fatal("expected error closing a reported ticket")
	}

	// Unknown tickets propagate the upstream error.
	if _, err := svc.CloseTicket(ctx, "t-999", 7); err == nil {
		t.Fatal("expected error closing an unknown ticket")
	}
}
