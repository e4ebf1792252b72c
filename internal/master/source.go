package master

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"fishplant-backend/internal/models"
)

// CSVSource fetches master data from a published CSV export URL.
type CSVSource struct {
	URL  string
	HTTP *http.Client
}

func NewCSVSource(url string) *CSVSource {
	return &CSVSource{
		URL:  url,
		HTTP: &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *CSVSource) FetchMaster(ctx context.Context) (models.Master, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch master csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("master csv returned status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read master csv: %w", err)
	}
	m := ParseCSV(string(data))
	if len(m) == 0 {
		return nil, fmt.Errorf("master csv had no usable rows")
	}
	return m, nil
}
