package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fishplant-backend/internal/cache"
	"fishplant-backend/internal/models"
	"fishplant-backend/internal/timeutil"
)

// MasterTTL is how long a fetched master snapshot is considered fresh.
// Within the window every Load is served from cache with no network call.
const MasterTTL = 10 * time.Minute

// MasterSource fetches the full master dataset from wherever it lives
// (the published CSV export or the web app's master action).
type MasterSource interface {
	FetchMaster(ctx context.Context) (models.Master, error)
}

// MasterSnapshot is the cached dataset plus when it was fetched. Stale is
// set when a reload failed and the previous snapshot is being served.
type MasterSnapshot struct {
	Master    models.Master `json:"master"`
	FetchedAt time.Time     `json:"fetchedAt"`
	Stale     bool          `json:"stale"`
}

type MasterService struct {
	source MasterSource
	now    func() time.Time

	mu        sync.Mutex
	mem       models.Master
	fetchedAt time.Time
}

func NewMasterService(source MasterSource) *MasterService {
	return &MasterService{
		source: source,
		now:    timeutil.Now,
	}
}

// Load returns the master data, fetching from the source only when the
// cached copy is older than MasterTTL. A failed fetch keeps serving the
// previous snapshot, marked stale.
func (s *MasterService) Load(ctx context.Context) (*MasterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.mem != nil && now.Sub(s.fetchedAt) < MasterTTL {
		return s.snapshot(false), nil
	}

	// A restart loses the in-memory copy; Redis may still hold a fresh one.
	if s.mem == nil {
		if m, at, ok := cache.GetMaster(ctx); ok {
			s.mem = m
			s.fetchedAt = at
			if now.Sub(at) < MasterTTL {
				return s.snapshot(false), nil
			}
		}
	}

	return s.refresh(ctx)
}

// Reload forces a fetch regardless of age.
func (s *MasterService) Reload(ctx context.Context) (*MasterSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh(ctx)
}

// refresh fetches under s.mu. On failure the prior snapshot survives.
func (s *MasterService) refresh(ctx context.Context) (*MasterSnapshot, error) {
	m, err := s.source.FetchMaster(ctx)
	if err != nil {
		log.Printf("[Master] refresh failed: %v", err)
		if s.mem != nil {
			return s.snapshot(true), nil
		}
		return nil, fmt.Errorf("load master data: %w", err)
	}

	s.mem = m
	s.fetchedAt = s.now()
	cache.SetMaster(ctx, m, s.fetchedAt)
	log.Printf("[Master] refreshed %d categories", len(m))
	return s.snapshot(false), nil
}

// snapshot builds the served view from the raw sheet data under s.mu. The
// fallback option lists are merged here so callers always see a complete set
// of categories, while the cache keeps only what the sheet actually carries.
func (s *MasterService) snapshot(stale bool) *MasterSnapshot {
	return &MasterSnapshot{Master: s.mem.WithFallbacks(), FetchedAt: s.fetchedAt, Stale: stale}
}
