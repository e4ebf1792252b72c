package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fishplant-backend/internal/models"
)

type fakeMasterSource struct {
	calls int
	m     models.Master
	err   error
}

func (f *fakeMasterSource) FetchMaster(ctx context.Context) (models.Master, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.m, nil
}

func testMaster() models.Master {
	return models.Master{
		models.MasterSpecies: {"サバ", "イワシ"},
		models.MasterPerson:  {"田中", "佐藤"},
	}
}

func TestMasterLoadCachesWithinTTL(t *testing.T) {
	src := &fakeMasterSource{m: testMaster()}
	svc := NewMasterService(src)

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	now := base
	svc.now = func() time.Time { return now }

	snap, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Stale {
		t.Error("fresh fetch marked stale")
	}
	if src.calls != 1 {
		t.Fatalf("calls = %d, want 1", src.calls)
	}

	// 9 minutes later: still inside the window, no refetch.
	now = base.Add(9 * time.Minute)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.calls != 1 {
		t.Errorf("calls = %d after 9min, want 1", src.calls)
	}

	// 11 minutes later: expired, refetch.
	now = base.Add(11 * time.Minute)
	if _, err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("calls = %d after 11min, want 2", src.calls)
	}
}

func TestMasterReloadForcesFetch(t *testing.T) {
	src := &fakeMasterSource{m: testMaster()}
	svc := NewMasterService(src)
	svc.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	ctx := context.Background()
	if _, err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if src.calls != 2 {
		t.Errorf("calls = %d, want 2", src.calls)
	}
}

func TestMasterFailedRefreshKeepsPrior(t *testing.T) {
	src := &fakeMasterSource{m: testMaster()}
	svc := NewMasterService(src)

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	now := base
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	if _, err := svc.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	src.err = errors.New("upstream down")
	now = base.Add(15 * time.Minute)

	snap, err := svc.Load(ctx)
	if err != nil {
		t.Fatalf("Load with failing source should serve prior copy, got %v", err)
	}
	if !snap.Stale {
		t.Error("snapshot from failed refresh not marked stale")
	}
	if got := snap.Master.Options(models.MasterSpecies, nil); len(got) != 2 {
		t.Errorf("species = %v, want prior 2 entries", got)
	}
	if !snap.FetchedAt.Equal(base) {
		t.Errorf("fetchedAt = %v, want original %v", snap.FetchedAt, base)
	}
}

func TestMasterLoadMergesFallbackCategories(t *testing.T) {
	// The sheet carries no ozone or processing-state column; the served
	// snapshot still offers the built-in choices for both.
	src := &fakeMasterSource{m: testMaster()}
	svc := NewMasterService(src)

	snap, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := snap.Master[models.MasterOzone]; len(got) != len(models.FallbackOzone) || got[0] != "実施" {
		t.Errorf("ozone options = %v, want fallback %v", got, models.FallbackOzone)
	}
	if got := snap.Master[models.MasterState]; len(got) != len(models.FallbackState) {
		t.Errorf("state options = %v, want fallback %v", got, models.FallbackState)
	}
	if got := snap.Master[models.MasterSpecies]; len(got) != 2 {
		t.Errorf("species = %v, sheet values must pass through", got)
	}
}

func TestMasterSheetValuesBeatFallbacks(t *testing.T) {
	m := testMaster()
	m[models.MasterOzone] = []string{"オゾン水", "なし"}
	svc := NewMasterService(&fakeMasterSource{m: m})

	snap, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := snap.Master[models.MasterOzone]
	if len(got) != 2 || got[0] != "オゾン水" {
		t.Errorf("ozone options = %v, want the sheet's own values", got)
	}
}

func TestMasterFirstLoadFailureIsError(t *testing.T) {
	src := &fakeMasterSource{err: errors.New("no route to host")}
	svc := NewMasterService(src)

	if _, err := svc.Load(context.Background()); err == nil {
		t.Fatal("expected error when no prior snapshot exists")
	}
}
