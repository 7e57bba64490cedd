package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
	"github.com/prompttoproduct-dev/concertcalendar/internal/metrics"
	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
)

// staleAfter is how long past its date a concert survives before the
// cleanup step removes it.
const staleAfter = 30 * 24 * time.Hour

// ConcertStore is the slice of the repository the sync job needs.
type ConcertStore interface {
	Upsert(ctx context.Context, in providers.ExternalConcert) error
	DeleteOlderThan(ctx context.Context, cutoff string) (int64, error)
}

// Manager periodically polls every provider, reconciles the results and
// evicts stale records. One run is the unit of observability: its
// JobResult summary carries the processed count and every error string.
type Manager struct {
	fetchers []providers.Fetcher
	store    ConcertStore
	interval time.Duration
	opts     providers.SyncOptions
	now      func() time.Time

	mu      sync.Mutex
	running bool
	lastRun *time.Time
	stop    chan struct{}
}

func NewManager(fetchers []providers.Fetcher, store ConcertStore, interval time.Duration, opts providers.SyncOptions) *Manager {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Manager{fetchers: fetchers, store: store, interval: interval, opts: opts, now: time.Now}
}

// Start runs one pass immediately, then re-fires every interval until
// Stop. Calling Start while running is a no-op.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		log.Print("[scheduler] already running")
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	stop := m.stop
	m.mu.Unlock()

	log.Printf("[scheduler] starting with %s interval", m.interval)
	go func() {
		m.RunOnce(context.Background())
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				m.RunOnce(context.Background())
			}
		}
	}()
}

// Stop cancels future runs. An in-flight run finishes on its own.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.running {
		return
	}
	close(m.stop)
	m.running = false
	log.Print("[scheduler] stopped")
}

// Status reports the manager's current state.
func (m *Manager) Status() domain.JobStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.JobStatus{Running: m.running, LastRun: m.lastRun, Interval: m.interval}
}

// RunOnce executes one full pass: every provider fetched concurrently
// with isolated failure, each event upserted individually, then stale
// concerts cleaned up. Success is true iff zero errors were recorded.
func (m *Manager) RunOnce(ctx context.Context) domain.JobResult {
	start := m.now().UTC()
	var (
		mu        sync.Mutex
		processed int
		errs      []string
	)

	var wg sync.WaitGroup
	for _, f := range m.fetchers {
		wg.Add(1)
		go func(f providers.Fetcher) {
			defer wg.Done()
			concerts, eventErrs, err := f.FetchUpcoming(ctx, m.opts)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Sprintf("%s fetch failed: %v", f.Name(), err))
				mu.Unlock()
				return
			}
			var count int
			var upsertErrs []string
			for _, c := range concerts {
				if err := m.store.Upsert(ctx, c); err != nil {
					upsertErrs = append(upsertErrs, fmt.Sprintf("failed to upsert %s concert %s: %v", f.Name(), c.ExternalID, err))
					continue
				}
				metrics.ConcertsUpserted.WithLabelValues(f.Name()).Inc()
				count++
			}
			mu.Lock()
			processed += count
			errs = append(errs, eventErrs...)
			errs = append(errs, upsertErrs...)
			mu.Unlock()
		}(f)
	}
	wg.Wait()

	cutoff := start.Add(-staleAfter).Format("2006-01-02")
	if deleted, err := m.store.DeleteOlderThan(ctx, cutoff); err != nil {
		errs = append(errs, fmt.Sprintf("cleanup failed: %v", err))
	} else if deleted > 0 {
		metrics.SyncCleanupDeleted.Add(float64(deleted))
		log.Printf("[scheduler] cleanup removed %d stale concerts", deleted)
	}

	m.mu.Lock()
	m.lastRun = &start
	m.mu.Unlock()

	result := domain.JobResult{
		Success:   len(errs) == 0,
		Processed: processed,
		Errors:    errs,
		Timestamp: start,
	}
	if result.Success {
		metrics.SyncRunsTotal.WithLabelValues("success").Inc()
	} else {
		metrics.SyncRunsTotal.WithLabelValues("failure").Inc()
	}
	log.Printf("[scheduler] run complete: processed=%d errors=%d", result.Processed, len(result.Errors))
	return result
}
