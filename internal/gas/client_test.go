package gas

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fishplant-backend/internal/models"
)

func newTestClient(upstream *httptest.Server) *Client {
	return NewClient(upstream.URL, "sheet-1", "master", "records", "folder-1")
}

func TestFetchMaster(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != ActionMaster {
			t.Errorf("action = %q, want %q", got, ActionMaster)
		}
		if got := r.URL.Query().Get("spreadsheetId"); got != "sheet-1" {
			t.Errorf("spreadsheetId = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":     true,
			"master": map[string][]string{"species": {"サバ"}},
		})
	}))
	defer upstream.Close()

	m, err := newTestClient(upstream).FetchMaster(context.Background())
	if err != nil {
		t.Fatalf("FetchMaster: %v", err)
	}
	if got := m["species"]; len(got) != 1 || got[0] != "サバ" {
		t.Errorf("species = %v", got)
	}
}

func TestRecordSendsEnvelope(t *testing.T) {
	var body struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		json.NewDecoder(r.Body).Decode(&body)
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	defer upstream.Close()

	err := newTestClient(upstream).Record(context.Background(), "intake", json.RawMessage(`{"ticketId":"t-1"}`))
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if body.Type != "intake" {
		t.Errorf("type = %q", body.Type)
	}
}

func TestNotOKBecomesUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"ok": false, "error": "sheet is locked"})
	}))
	defer upstream.Close()

	err := newTestClient(upstream).Record(context.Background(), "intake", json.RawMessage(`{}`))
	var uErr *UpstreamError
	if !errors.As(err, &uErr) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
	if uErr.Message != "sheet is locked" {
		t.Errorf("message = %q, want the server's message verbatim", uErr.Message)
	}
}

func TestHTTPErrorBecomesUpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer upstream.Close()

	err := newTestClient(upstream).Record(context.Background(), "intake", json.RawMessage(`{}`))
	var uErr *UpstreamError
	if !errors.As(err, &uErr) {
		t.Fatalf("err = %v, want UpstreamError", err)
	}
}

func TestUploadB64DefaultsFolder(t *testing.T) {
	var got UploadRequest
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	}))
	defer upstream.Close()

	err := newTestClient(upstream).UploadB64(context.Background(), UploadRequest{
		TicketID:   "t-1",
		FileName:   "寄生虫_サバ_20240601_田中_IMG.jpg",
		ContentB64: "aGk=",
	})
	if err != nil {
		t.Fatalf("UploadB64: %v", err)
	}
	if got.FolderID != "folder-1" {
		t.Errorf("folderId = %q, want the configured default", got.FolderID)
	}
}

func TestListMonth(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("month"); got != "2024-06" {
			t.Errorf("month = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":      true,
			"tickets": []models.IntakeTicket{{TicketID: "t-1"}},
			"reports": []models.InventoryReport{},
		})
	}))
	defer upstream.Close()

	records, err := newTestClient(upstream).ListMonth(context.Background(), "2024-06")
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}
	if len(records.Tickets) != 1 || records.Tickets[0].TicketID != "t-1" {
		t.Errorf("tickets = %v", records.Tickets)
	}
}
