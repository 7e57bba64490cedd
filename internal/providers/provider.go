package providers

import (
	"context"
	"fmt"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
)

// ExternalConcert is the canonical partial concert produced by both
// provider transforms and consumed by the upsert path.
type ExternalConcert struct {
	ExternalID   string
	Artist       string
	Title        string
	Date         string // YYYY-MM-DD
	Time         string // HH:MM:SS
	Price        string // "free" or numeric string
	Genres       []string
	Description  string
	TicketURL    string
	ImageURL     string
	Source       domain.Source
	VenueName    string
	VenueAddress string
}

// SyncOptions tunes one polled fetch of upcoming events.
type SyncOptions struct {
	Keyword       string
	PageSize      int
	Page          int
	StartDateTime string // ISO-8601, Ticketmaster only
	EndDateTime   string
}

// Fetcher is the view the scheduled job has of a provider: one page of
// upcoming events, already transformed, with per-event failures kept
// separate so one malformed record cannot sink the batch.
type Fetcher interface {
	Name() string
	FetchUpcoming(ctx context.Context, opts SyncOptions) (concerts []ExternalConcert, eventErrs []string, err error)
}

// APIError carries the HTTP status of a failed provider call.
type APIError struct {
	Provider   string
	StatusCode int
}

func (e *APIError) Error() string {
	if e.IsRateLimited() {
		return fmt.Sprintf("%s API rate limited: %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s API error: %d", e.Provider, e.StatusCode)
}

// IsRateLimited reports whether the provider returned 429.
func (e *APIError) IsRateLimited() bool { return e.StatusCode == 429 }
