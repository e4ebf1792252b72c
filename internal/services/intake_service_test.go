package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"fishplant-backend/internal/models"
)

type fakeRecorder struct {
	calls    []string // kinds, in order
	payloads []json.RawMessage
	err      error
}

func (f *fakeRecorder) Record(ctx context.Context, kind string, payload json.RawMessage) error {
	if f.err != nil {
		return f.err
	}
	f.calls = append(f.calls, kind)
	f.payloads = append(f.payloads, payload)
	return nil
}

func validTicket() *models.IntakeTicket {
	return &models.IntakeTicket{
		Factory:      "第一工場",
		Date:         "2024-06-01",
		PurchaseDate: "2024-06-01",
		Person:       "田中",
		Species:      "サバ",
		Supplier:     "マル水産",
	}
}

func TestIntakeSubmitRejectsMissingFields(t *testing.T) {
	recorder := &fakeRecorder{}
	store := &fakeQueueStore{}
	svc := NewIntakeService(recorder, NewQueueService(store, &fakeDeliverer{}))

	ticket := validTicket()
	ticket.Species = ""
	ticket.Supplier = "  " // whitespace only counts as blank

	_, err := svc.Submit(context.Background(), ticket)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(vErr.Message, "species") || !strings.Contains(vErr.Message, "supplier") {
		t.Errorf("message %q should name both blank fields", vErr.Message)
	}
	if len(recorder.calls) != 0 {
		t.Error("validation failure must not reach the upstream")
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Error("validation failure must not be queued")
	}
}

func TestIntakeSubmitRejectsBadDates(t *testing.T) {
	svc := NewIntakeService(&fakeRecorder{}, NewQueueService(&fakeQueueStore{}, &fakeDeliverer{}))

	ticket := validTicket()
	ticket.Date = "06/01/2024"
	if _, err := svc.Submit(context.Background(), ticket); err == nil {
		t.Fatal("expected error for non-ISO date")
	}
}

func TestIntakeSubmitAssignsTicketIDAndDefaults(t *testing.T) {
	recorder := &fakeRecorder{}
	svc := NewIntakeService(recorder, NewQueueService(&fakeQueueStore{}, &fakeDeliverer{}))

	ticket := validTicket()
	ticket.Ozone = models.FlagAbsent
	ticket.OzonePerson = "田中" // stale UI state, must be cleared

	result, err := svc.Submit(context.Background(), ticket)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.TicketID == "" {
		t.Error("ticket id not assigned")
	}
	if result.Queued {
		t.Error("successful delivery reported as queued")
	}
	if ticket.OzonePerson != models.FlagAbsent {
		t.Errorf("ozone_person = %q, want %q when ozone is %q", ticket.OzonePerson, models.FlagAbsent, models.FlagAbsent)
	}
	if ticket.VisualToxic != models.FlagAbsent {
		t.Errorf("visual_toxic defaulted to %q, want %q", ticket.VisualToxic, models.FlagAbsent)
	}
	if len(recorder.calls) != 1 || recorder.calls[0] != models.KindIntake {
		t.Errorf("recorder calls = %v", recorder.calls)
	}
}

func TestIntakeSubmitQueuesOnDeliveryFailure(t *testing.T) {
	recorder := &fakeRecorder{err: errors.New("no network")}
	store := &fakeQueueStore{}
	svc := NewIntakeService(recorder, NewQueueService(store, &fakeDeliverer{}))

	result, err := svc.Submit(context.Background(), validTicket())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !result.Queued {
		t.Fatal("delivery failure should report queued")
	}

	items, _ := store.List(context.Background())
	if len(items) != 1 || items[0].Kind != models.KindIntake {
		t.Fatalf("queue contents = %v", items)
	}
	var queued models.IntakeTicket
	if err := json.Unmarshal(items[0].Payload, &queued); err != nil {
		t.Fatalf("queued payload: %v", err)
	}
	if queued.TicketID != result.TicketID {
		t.Errorf("queued ticket id %q != result %q", queued.TicketID, result.TicketID)
	}
}

func TestIntakeSubmitRequiresToxicNote(t *testing.T) {
	svc := NewIntakeService(&fakeRecorder{}, NewQueueService(&fakeQueueStore{}, &fakeDeliverer{}))

	ticket := validTicket()
	ticket.VisualToxic = models.FlagPresent
	if _, err := svc.Submit(context.Background(), ticket); err == nil {
		t.Fatal("expected error: toxic finding without note")
	}
}
