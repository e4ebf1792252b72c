package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProxyForwardsVerbatim(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.URL.Query().Get("action"); got != "record" {
			t.Errorf("action = %q, want record", got)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"type":"intake"}` {
			t.Errorf("body = %s", body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot) // status passes through untouched
		w.Write([]byte(`{"ok":false,"error":"custom"}`))
	}))
	defer upstream.Close()

	h := NewProxyHandler(upstream.URL)
	req := httptest.NewRequest(http.MethodPost, "/api/gas?action=record", strings.NewReader(`{"type":"intake"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	h.Forward(rec, req)

	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
	if got := rec.Body.String(); got != `{"ok":false,"error":"custom"}` {
		t.Errorf("body = %s, want upstream body verbatim", got)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("content-type = %q", got)
	}
}

func TestProxyTransportFailure(t *testing.T) {
	dead := httptest.NewServer(nil)
	dead.Close() // nothing listens here anymore

	h := NewProxyHandler(dead.URL)
	req := httptest.NewRequest(http.MethodGet, "/api/gas?action=list", nil)
	rec := httptest.NewRecorder()

	h.Forward(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var body struct {
		OK     bool   `json:"ok"`
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if body.OK || body.Error != "proxy_error" || body.Detail == "" {
		t.Errorf("body = %+v, want ok=false error=proxy_error with detail", body)
	}
}
