package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
)

type fakeFetcher struct {
	name      string
	concerts  []providers.ExternalConcert
	eventErrs []string
	err       error
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) FetchUpcoming(context.Context, providers.SyncOptions) ([]providers.ExternalConcert, []string, error) {
	return f.concerts, f.eventErrs, f.err
}

type fakeSyncStore struct {
	mu        sync.Mutex
	upserts   map[string]int
	upsertErr error
	cutoffs   []string
	deleted   int64
	deleteErr error
}

func newFakeSyncStore() *fakeSyncStore {
	return &fakeSyncStore{upserts: map[string]int{}}
}

func (f *fakeSyncStore) Upsert(_ context.Context, in providers.ExternalConcert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts[in.ExternalID+"/"+string(in.Source)]++
	return nil
}

func (f *fakeSyncStore) DeleteOlderThan(_ context.Context, cutoff string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.cutoffs = append(f.cutoffs, cutoff)
	return f.deleted, nil
}

func TestRunOnce_AllProvidersSucceed(t *testing.T) {
	store := newFakeSyncStore()
	m := NewManager([]providers.Fetcher{
		&fakeFetcher{name: "ticketmaster", concerts: []providers.ExternalConcert{
			{ExternalID: "tm1", Date: "2025-09-10"},
			{ExternalID: "tm2", Date: "2025-09-11"},
		}},
		&fakeFetcher{name: "eventbrite", concerts: []providers.ExternalConcert{
			{ExternalID: "eb1", Date: "2025-09-12"},
		}},
	}, store, time.Hour, providers.SyncOptions{})

	res := m.RunOnce(context.Background())

	if !res.Success {
		t.Errorf("Success = false, errors: %v", res.Errors)
	}
	if res.Processed != 3 {
		t.Errorf("Processed = %d, want 3", res.Processed)
	}
	if len(res.Errors) != 0 {
		t.Errorf("Errors = %v, want none", res.Errors)
	}
}

func TestRunOnce_IsolatesProviderFailure(t *testing.T) {
	store := newFakeSyncStore()
	m := NewManager([]providers.Fetcher{
		&fakeFetcher{name: "ticketmaster", concerts: []providers.ExternalConcert{
			{ExternalID: "tm1", Date: "2025-09-10"},
			{ExternalID: "tm2", Date: "2025-09-11"},
		}},
		&fakeFetcher{name: "eventbrite", err: errors.New("connection refused")},
	}, store, time.Hour, providers.SyncOptions{})

	res := m.RunOnce(context.Background())

	if res.Success {
		t.Error("Success = true, want false when a provider fails")
	}
	if res.Processed != 2 {
		t.Errorf("Processed = %d, want the surviving provider's 2", res.Processed)
	}
	if len(res.Errors) != 1 || res.Errors[0] != "eventbrite fetch failed: connection refused" {
		t.Errorf("Errors = %v, want exactly the eventbrite fetch failure", res.Errors)
	}
}

func TestRunOnce_CollectsPerEventErrors(t *testing.T) {
	store := newFakeSyncStore()
	m := NewManager([]providers.Fetcher{
		&fakeFetcher{
			name:      "ticketmaster",
			concerts:  []providers.ExternalConcert{{ExternalID: "tm1", Date: "2025-09-10"}},
			eventErrs: []string{"failed to process ticketmaster event tmX: missing start date"},
		},
	}, store, time.Hour, providers.SyncOptions{})

	res := m.RunOnce(context.Background())

	if res.Success {
		t.Error("per-event errors should mark the run unsuccessful")
	}
	if res.Processed != 1 {
		t.Errorf("Processed = %d, want 1", res.Processed)
	}
	if len(res.Errors) != 1 {
		t.Errorf("Errors = %v, want the single event error", res.Errors)
	}
}

func TestRunOnce_CleanupCutoff(t *testing.T) {
	store := newFakeSyncStore()
	m := NewManager(nil, store, time.Hour, providers.SyncOptions{})
	m.now = func() time.Time {
		return time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC)
	}

	res := m.RunOnce(context.Background())

	if !res.Success {
		t.Errorf("Success = false, errors: %v", res.Errors)
	}
	if len(store.cutoffs) != 1 || store.cutoffs[0] != "2025-08-31" {
		t.Errorf("cutoffs = %v, want [2025-08-31] (30 days before run)", store.cutoffs)
	}
}

func TestRunOnce_CleanupFailureRecorded(t *testing.T) {
	store := newFakeSyncStore()
	store.deleteErr = errors.New("db down")
	m := NewManager(nil, store, time.Hour, providers.SyncOptions{})

	res := m.RunOnce(context.Background())

	if res.Success {
		t.Error("cleanup failure should mark the run unsuccessful")
	}
	if len(res.Errors) != 1 || res.Errors[0] != "cleanup failed: db down" {
		t.Errorf("Errors = %v, want the cleanup failure", res.Errors)
	}
}

func TestRunOnce_RepeatedRunsUpsertSameKeys(t *testing.T) {
	store := newFakeSyncStore()
	m := NewManager([]providers.Fetcher{
		&fakeFetcher{name: "ticketmaster", concerts: []providers.ExternalConcert{
			{ExternalID: "tm1", Source: "ticketmaster", Date: "2025-09-10"},
		}},
	}, store, time.Hour, providers.SyncOptions{})

	m.RunOnce(context.Background())
	m.RunOnce(context.Background())

	if len(store.upserts) != 1 {
		t.Errorf("distinct keys = %d, want 1 (same concert reconciled twice)", len(store.upserts))
	}
	if store.upserts["tm1/ticketmaster"] != 2 {
		t.Errorf("upsert count = %d, want 2", store.upserts["tm1/ticketmaster"])
	}
}

func TestManager_StartStopStatus(t *testing.T) {
	store := newFakeSyncStore()
	m := NewManager(nil, store, time.Hour, providers.SyncOptions{})

	if st := m.Status(); st.Running {
		t.Error("new manager should not be running")
	}
	m.Start()
	if st := m.Status(); !st.Running {
		t.Error("Status after Start should be running")
	}
	m.Start() // no-op
	m.Stop()
	if st := m.Status(); st.Running {
		t.Error("Status after Stop should not be running")
	}
	m.Stop() // no-op
}
