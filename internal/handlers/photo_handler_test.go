package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"fishplant-backend/internal/models"
)

type fakePhotoLogs struct {
	byTicket map[string][]models.UploadLog
	err      error
}

func (f *fakePhotoLogs) ListByTicket(ctx context.Context, ticketID string) ([]models.UploadLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byTicket[ticketID], nil
}

func TestPhotoListByTicket(t *testing.T) {
	logs := &fakePhotoLogs{byTicket: map[string][]models.UploadLog{
		"t-1": {
			{ID: 1, TicketID: "t-1", FileName: "寄生虫_サバ_20240602_田中_IMG_001.jpg", Category: "parasite", Archived: true},
			{ID: 2, TicketID: "t-1", FileName: "異物_サバ_20240602_田中_IMG_002.jpg", Category: "foreign"},
		},
	}}
	h := NewPhotoHandler(logs)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tickets/t-1/photos", nil)
	h.ListByTicket(rr, mux.SetURLVars(req, map[string]string{"id": "t-1"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body.String())
	}
	var got []models.UploadLog
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Category != "parasite" || !got[0].Archived {
		t.Errorf("logs = %+v", got)
	}
}

func TestPhotoListByTicketEmpty(t *testing.T) {
	h := NewPhotoHandler(&fakePhotoLogs{byTicket: map[string][]models.UploadLog{}})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tickets/t-9/photos", nil)
	h.ListByTicket(rr, mux.SetURLVars(req, map[string]string{"id": "t-9"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	// A ticket with no uploads is an empty list, not null.
	if body := rr.Body.String(); body != "[]\n" && body != "[]" {
		t.Errorf("body = %q, want empty JSON array", body)
	}
}

func TestPhotoListByTicketError(t *testing.T) {
	h := NewPhotoHandler(&fakePhotoLogs{err: errors.New("db down")})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tickets/t-1/photos", nil)
	h.ListByTicket(rr, mux.SetURLVars(req, map[string]string{"id": "t-1"}))

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rr.Code)
	}
}
