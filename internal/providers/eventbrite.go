package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
)

const eventbriteBaseURL = "https://www.eventbriteapi.com/v3"

// EventbriteEvent is the provider-native event shape.
type EventbriteEvent struct {
	ID   string `json:"id"`
	Name struct {
		Text string `json:"text"`
	} `json:"name"`
	Description *struct {
		Text string `json:"text"`
	} `json:"description,omitempty"`
	Start struct {
		Timezone string `json:"timezone"`
		Local    string `json:"local"`
		UTC      string `json:"utc"`
	} `json:"start"`
	Venue *struct {
		Name    string `json:"name"`
		Address struct {
			Address1 string `json:"address_1,omitempty"`
			City     string `json:"city,omitempty"`
			Region   string `json:"region,omitempty"`
		} `json:"address"`
	} `json:"venue,omitempty"`
	TicketAvailability *struct {
		HasAvailableTickets bool `json:"has_available_tickets"`
		MinimumTicketPrice  *struct {
			MajorValue float64 `json:"major_value"`
			Currency   string  `json:"currency"`
		} `json:"minimum_ticket_price,omitempty"`
	} `json:"ticket_availability,omitempty"`
	Logo *struct {
		URL string `json:"url"`
	} `json:"logo,omitempty"`
	URL string `json:"url"`
}

// EventbriteResponse is a page of search results.
type EventbriteResponse struct {
	Events     []EventbriteEvent `json:"events"`
	Pagination struct {
		ObjectCount  int  `json:"object_count"`
		PageNumber   int  `json:"page_number"`
		PageSize     int  `json:"page_size"`
		PageCount    int  `json:"page_count"`
		HasMoreItems bool `json:"has_more_items"`
	} `json:"pagination"`
}

// EventbriteSearchParams builds the events/search query.
type EventbriteSearchParams struct {
	Location      string
	Query         string
	Categories    string
	Subcategories string
	Price         string // "free" or "paid"
	Page          int
}

// EventbriteClient reads the Eventbrite API. Auth is a bearer token.
type EventbriteClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewEventbriteClient(apiKey string) (*EventbriteClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("eventbrite API key is required")
	}
	return &EventbriteClient{
		apiKey:  apiKey,
		baseURL: eventbriteBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *EventbriteClient) Name() string { return string(domain.SourceEventbrite) }

func (c *EventbriteClient) SearchEvents(ctx context.Context, p EventbriteSearchParams) (*EventbriteResponse, error) {
	q := url.Values{}
	q.Set("location.address", orDefault(p.Location, "New York, NY"))
	q.Set("expand", "venue,ticket_availability,category,subcategory")
	page := p.Page
	if page <= 0 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))
	if p.Query != "" {
		q.Set("q", p.Query)
	}
	if p.Categories != "" {
		q.Set("categories", p.Categories)
	}
	if p.Subcategories != "" {
		q.Set("subcategories", p.Subcategories)
	}
	if p.Price != "" {
		q.Set("price", p.Price)
	}

	var out EventbriteResponse
	if err := c.getJSON(ctx, c.baseURL+"/events/search/?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Categories fetches the provider's category list.
func (c *EventbriteClient) Categories(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.getJSON(ctx, c.baseURL+"/categories/", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *EventbriteClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("eventbrite request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Provider: "eventbrite", StatusCode: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// TransformEvent converts a native event into the canonical partial
// concert.
func (c *EventbriteClient) TransformEvent(event EventbriteEvent) (ExternalConcert, error) {
	return TransformEventbriteEvent(event)
}

// TransformEventbriteEvent converts a native event into the canonical
// partial concert. Eventbrite does not expose reliable genre data, so
// Genres is always empty.
func TransformEventbriteEvent(event EventbriteEvent) (ExternalConcert, error) {
	if event.ID == "" {
		return ExternalConcert{}, fmt.Errorf("invalid event data provided to transform")
	}
	if event.Start.Local == "" {
		return ExternalConcert{}, fmt.Errorf("event %s missing required start date information", event.ID)
	}
	start, err := time.Parse("2006-01-02T15:04:05", event.Start.Local)
	if err != nil {
		return ExternalConcert{}, fmt.Errorf("event %s has unparseable start %q: %w", event.ID, event.Start.Local, err)
	}

	out := ExternalConcert{
		ExternalID:  event.ID,
		Artist:      event.Name.Text,
		Date:        start.Format("2006-01-02"),
		Time:        start.Format("15:04:05"),
		Price:       domain.PriceFree,
		Genres:      []string{},
		TicketURL:   event.URL,
		Source:      domain.SourceEventbrite,
		Description: event.Name.Text,
	}
	if event.Description != nil && event.Description.Text != "" {
		out.Description = event.Description.Text
	}
	if event.Logo != nil {
		out.ImageURL = event.Logo.URL
	}
	if event.Venue != nil {
		out.VenueName = event.Venue.Name
		out.VenueAddress = event.Venue.Address.Address1
	}

	// free when no tickets are on sale or the cheapest ticket is zero
	if ta := event.TicketAvailability; ta != nil && ta.HasAvailableTickets {
		if ta.MinimumTicketPrice != nil && ta.MinimumTicketPrice.MajorValue > 0 {
			out.Price = strconv.FormatFloat(ta.MinimumTicketPrice.MajorValue, 'f', -1, 64)
		}
	}

	return out, nil
}

// FetchUpcoming pulls one page of events and transforms each one,
// keeping per-event failures out of the fetch error.
func (c *EventbriteClient) FetchUpcoming(ctx context.Context, opts SyncOptions) ([]ExternalConcert, []string, error) {
	resp, err := c.SearchEvents(ctx, EventbriteSearchParams{
		Query: opts.Keyword,
		Page:  opts.Page,
	})
	if err != nil {
		return nil, nil, err
	}

	var (
		concerts []ExternalConcert
		errs     []string
	)
	for _, ev := range resp.Events {
		concert, err := c.TransformEvent(ev)
		if err != nil {
			errs = append(errs, fmt.Sprintf("failed to process eventbrite event %s: %v", ev.ID, err))
			continue
		}
		concerts = append(concerts, concert)
	}
	return concerts, errs, nil
}
