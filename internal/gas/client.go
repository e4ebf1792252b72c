// Package gas is the client for the remote spreadsheet web app (a Google
// Apps Script deployment). Every operation is one endpoint discriminated by
// an `action` query parameter; every response is JSON with an `ok` boolean.
package gas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fishplant-backend/internal/metrics"
	"fishplant-backend/internal/models"
)

// Actions understood by the upstream web app.
const (
	ActionList      = "list"
	ActionRecord    = "record"
	ActionUploadB64 = "uploadB64"
	ActionTicket    = "ticket"
	ActionMaster    = "master"
)

// UpstreamError is an application-level failure reported by the backend
// (ok:false or a non-success HTTP status). The message is shown to the user
// verbatim; for retry purposes it is treated like a transport error.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

type Client struct {
	BaseURL       string
	SpreadsheetID string
	SheetList     string
	SheetAction   string
	DriveFolderID string
	HTTP          *http.Client
}

func NewClient(baseURL, spreadsheetID, sheetList, sheetAction, driveFolderID string) *Client {
	return &Client{
		BaseURL:       baseURL,
		SpreadsheetID: spreadsheetID,
		SheetList:     sheetList,
		SheetAction:   sheetAction,
		DriveFolderID: driveFolderID,
		HTTP:          &http.Client{Timeout: 30 * time.Second},
	}
}

type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// request performs one upstream call and returns the raw response body after
// checking the {ok,error} envelope.
func (c *Client) request(ctx context.Context, method, action string, params url.Values, body interface{}) (json.RawMessage, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("action", action)
	reqURL := c.BaseURL + "?" + params.Encode()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(action, "transport_error").Inc()
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(action, "transport_error").Inc()
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	var env envelope
	// The body may not be JSON at all on gateway errors; fall through to the
	// generic message in that case.
	_ = json.Unmarshal(data, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.UpstreamRequests.WithLabelValues(action, "http_error").Inc()
		msg := env.Error
		if msg == "" {
			msg = fmt.Sprintf("upstream returned status %d", resp.StatusCode)
		}
		return nil, &UpstreamError{Message: msg}
	}
	if !env.OK {
		metrics.UpstreamRequests.WithLabelValues(action, "not_ok").Inc()
		msg := env.Error
		if msg == "" {
			msg = "upstream rejected the request"
		}
		return nil, &UpstreamError{Message: msg}
	}

	metrics.UpstreamRequests.WithLabelValues(action, "ok").Inc()
	return data, nil
}

// FetchMaster fetches the master data as JSON (action=master).
func (c *Client) FetchMaster(ctx context.Context) (models.Master, error) {
	params := url.Values{}
	params.Set("spreadsheetId", c.SpreadsheetID)
	params.Set("sheet", c.SheetList)

	data, err := c.request(ctx, http.MethodGet, ActionMaster, params, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Master models.Master `json:"master"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode master response: %w", err)
	}
	if out.Master == nil {
		return nil, &UpstreamError{Message: "master response had no data"}
	}
	return out.Master, nil
}

// Record appends one intake ticket or inventory report (action=record).
func (c *Client) Record(ctx context.Context, kind string, payload json.RawMessage) error {
	body := struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}{Type: kind, Payload: payload}

	_, err := c.request(ctx, http.MethodPost, ActionRecord, nil, body)
	return err
}

// UploadRequest is one base64-encoded file with its metadata.
type UploadRequest struct {
	TicketID   string `json:"ticketId"`
	FileName   string `json:"fileName"`
	ContentB64 string `json:"contentB64"`
	MimeType   string `json:"mimeType"`
	FolderID   string `json:"folderId,omitempty"`
}

// UploadB64 submits one encoded file (action=uploadB64).
func (c *Client) UploadB64(ctx context.Context, up UploadRequest) error {
	if up.FolderID == "" {
		up.FolderID = c.DriveFolderID
	}
	_, err := c.request(ctx, http.MethodPost, ActionUploadB64, nil, up)
	return err
}

// FetchTicket fetches one intake ticket by id (action=ticket).
func (c *Client) FetchTicket(ctx context.Context, ticketID string) (*models.IntakeTicket, error) {
	params := url.Values{}
	params.Set("ticketId", ticketID)

	data, err := c.request(ctx, http.MethodGet, ActionTicket, params, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Ticket *models.IntakeTicket `json:"ticket"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode ticket response: %w", err)
	}
	if out.Ticket == nil {
		return nil, &UpstreamError{Message: "ticket not found"}
	}
	return out.Ticket, nil
}

// ListMonth fetches every record whose date falls in the yyyy-mm month
// (action=list).
func (c *Client) ListMonth(ctx context.Context, month string) (*models.MonthRecords, error) {
	params := url.Values{}
	params.Set("month", month)
	params.Set("spreadsheetId", c.SpreadsheetID)
	params.Set("sheet", c.SheetAction)

	data, err := c.request(ctx, http.MethodGet, ActionList, params, nil)
	if err != nil {
		return nil, err
	}
	var out models.MonthRecords
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return &out, nil
}
