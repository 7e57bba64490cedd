package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhooksTotal counts inbound webhook requests by provider and
	// terminal outcome (accepted, rejected, error).
	WebhooksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "citysounds_webhooks_total",
		Help: "Inbound webhook requests by provider and outcome.",
	}, []string{"provider", "outcome"})

	// ConcertsUpserted counts reconciled concert records by source.
	ConcertsUpserted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "citysounds_concerts_upserted_total",
		Help: "Concert records upserted by source.",
	}, []string{"source"})

	// SyncRunsTotal counts scheduled sync runs by result.
	SyncRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "citysounds_sync_runs_total",
		Help: "Scheduled sync runs by result.",
	}, []string{"result"})

	// SyncCleanupDeleted counts stale concerts removed by cleanup.
	SyncCleanupDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "citysounds_sync_cleanup_deleted_total",
		Help: "Stale concerts deleted by the cleanup step.",
	})

	// RateLimited counts requests rejected by the local limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Name: "citysounds_rate_limited_total",
		Help: "Requests rejected by the in-process rate limiter.",
	})
)
