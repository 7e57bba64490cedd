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

const ticketmasterBaseURL = "https://app.ticketmaster.com/discovery/v2"

// TicketmasterEvent is the provider-native event shape.
type TicketmasterEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime,omitempty"`
			DateTime  string `json:"dateTime,omitempty"`
		} `json:"start"`
	} `json:"dates"`
	Embedded *struct {
		Venues []struct {
			Name    string `json:"name"`
			Address *struct {
				Line1 string `json:"line1,omitempty"`
			} `json:"address,omitempty"`
			City *struct {
				Name string `json:"name"`
			} `json:"city,omitempty"`
		} `json:"venues,omitempty"`
		Attractions []struct {
			Name            string                       `json:"name"`
			Classifications []TicketmasterClassification `json:"classifications,omitempty"`
		} `json:"attractions,omitempty"`
	} `json:"_embedded,omitempty"`
	PriceRanges []struct {
		Min float64 `json:"min"`
		Max float64 `json:"max"`
	} `json:"priceRanges,omitempty"`
	URL    string `json:"url,omitempty"`
	Images []struct {
		URL    string `json:"url"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	} `json:"images,omitempty"`
}

// TicketmasterResponse is a page of search results.
type TicketmasterResponse struct {
	Embedded *struct {
		Events []TicketmasterEvent `json:"events"`
	} `json:"_embedded,omitempty"`
	Page struct {
		Size          int `json:"size"`
		TotalElements int `json:"totalElements"`
		TotalPages    int `json:"totalPages"`
		Number        int `json:"number"`
	} `json:"page"`
}

// TicketmasterSearchParams builds the events.json query. Zero values
// fall back to New York, NY defaults.
type TicketmasterSearchParams struct {
	City          string
	StateCode     string
	Keyword       string
	GenreID       string
	Size          int
	Page          int
	StartDateTime string
	EndDateTime   string
}

// TicketmasterClient reads the Ticketmaster Discovery API. Auth is an
// API key query parameter.
type TicketmasterClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewTicketmasterClient(apiKey string) (*TicketmasterClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ticketmaster API key is required")
	}
	return &TicketmasterClient{
		apiKey:  apiKey,
		baseURL: ticketmasterBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (c *TicketmasterClient) Name() string { return string(domain.SourceTicketmaster) }

func (c *TicketmasterClient) SearchEvents(ctx context.Context, p TicketmasterSearchParams) (*TicketmasterResponse, error) {
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	q.Set("city", orDefault(p.City, "New York"))
	q.Set("stateCode", orDefault(p.StateCode, "NY"))
	size := p.Size
	if size <= 0 {
		size = 200
	}
	q.Set("size", strconv.Itoa(size))
	q.Set("page", strconv.Itoa(p.Page))
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	if p.GenreID != "" {
		q.Set("genreId", p.GenreID)
	}
	if p.StartDateTime != "" {
		q.Set("startDateTime", p.StartDateTime)
	}
	if p.EndDateTime != "" {
		q.Set("endDateTime", p.EndDateTime)
	}

	var out TicketmasterResponse
	if err := c.getJSON(ctx, c.baseURL+"/events.json?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Genres fetches the genre classification tree.
func (c *TicketmasterClient) Genres(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	q := url.Values{}
	q.Set("apikey", c.apiKey)
	if err := c.getJSON(ctx, c.baseURL+"/classifications/genres.json?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TicketmasterClient) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ticketmaster request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Provider: "ticketmaster", StatusCode: resp.StatusCode}
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// TransformEvent converts a native event into the canonical partial
// concert.
func (c *TicketmasterClient) TransformEvent(event TicketmasterEvent) (ExternalConcert, error) {
	return TransformTicketmasterEvent(event)
}

// TransformTicketmasterEvent converts a native event into the canonical
// partial concert. Events without an id or a start date fail fast so
// the caller can count them without losing the rest of the batch.
func TransformTicketmasterEvent(event TicketmasterEvent) (ExternalConcert, error) {
	if event.ID == "" {
		return ExternalConcert{}, fmt.Errorf("invalid event data provided to transform")
	}
	if event.Dates.Start.LocalDate == "" {
		return ExternalConcert{}, fmt.Errorf("event %s missing required start date information", event.ID)
	}

	out := ExternalConcert{
		ExternalID: event.ID,
		Title:      event.Name,
		Artist:     event.Name,
		Date:       event.Dates.Start.LocalDate,
		Price:      domain.PriceFree,
		TicketURL:  event.URL,
		Source:     domain.SourceTicketmaster,
		VenueName:  "TBA",
	}

	if event.Embedded != nil {
		if len(event.Embedded.Attractions) > 0 {
			attraction := event.Embedded.Attractions[0]
			if attraction.Name != "" {
				out.Artist = attraction.Name
			}
			out.Genres = joinClassifications(attraction.Classifications)
		}
		if len(event.Embedded.Venues) > 0 {
			venue := event.Embedded.Venues[0]
			if venue.Name != "" {
				out.VenueName = venue.Name
			}
			if venue.Address != nil {
				out.VenueAddress = venue.Address.Line1
			}
		}
	}

	// time from localTime, else the ISO dateTime
	if event.Dates.Start.LocalTime != "" {
		out.Time = event.Dates.Start.LocalTime
	} else if event.Dates.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.Dates.Start.DateTime); err == nil {
			out.Time = t.Format("15:04:05")
		}
	}

	// price is the lowest of the range minimums; zero or absent means free
	if len(event.PriceRanges) > 0 {
		min := event.PriceRanges[0].Min
		for _, r := range event.PriceRanges[1:] {
			if r.Min < min {
				min = r.Min
			}
		}
		if min > 0 {
			out.Price = strconv.FormatFloat(min, 'f', -1, 64)
		}
	}

	// first image at least 400px wide, else the first image
	if len(event.Images) > 0 {
		out.ImageURL = event.Images[0].URL
		for _, img := range event.Images {
			if img.Width >= 400 {
				out.ImageURL = img.URL
				break
			}
		}
	}

	return out, nil
}

// FetchUpcoming pulls one page of events and transforms each one,
// keeping per-event failures out of the fetch error.
func (c *TicketmasterClient) FetchUpcoming(ctx context.Context, opts SyncOptions) ([]ExternalConcert, []string, error) {
	resp, err := c.SearchEvents(ctx, TicketmasterSearchParams{
		Keyword:       opts.Keyword,
		Size:          opts.PageSize,
		Page:          opts.Page,
		StartDateTime: opts.StartDateTime,
		EndDateTime:   opts.EndDateTime,
	})
	if err != nil {
		return nil, nil, err
	}
	if resp.Embedded == nil {
		return nil, nil, nil
	}

	var (
		concerts []ExternalConcert
		errs     []string
	)
	for _, ev := range resp.Embedded.Events {
		concert, err := c.TransformEvent(ev)
		if err != nil {
			errs = append(errs, fmt.Sprintf("failed to process ticketmaster event %s: %v", ev.ID, err))
			continue
		}
		concerts = append(concerts, concert)
	}
	return concerts, errs, nil
}

// TicketmasterClassification is one genre/subGenre pair on an attraction.
type TicketmasterClassification struct {
	Genre    *TicketmasterNamed `json:"genre,omitempty"`
	SubGenre *TicketmasterNamed `json:"subGenre,omitempty"`
}

type TicketmasterNamed struct {
	Name string `json:"name"`
}

// joinClassifications flattens genre/subGenre pairs into "Genre/SubGenre"
// tags, deduplicated in order of appearance.
func joinClassifications(cs []TicketmasterClassification) []string {
	var genres []string
	seen := map[string]bool{}
	for _, cl := range cs {
		var g string
		switch {
		case cl.Genre != nil && cl.SubGenre != nil && cl.SubGenre.Name != "" && cl.SubGenre.Name != cl.Genre.Name:
			g = cl.Genre.Name + "/" + cl.SubGenre.Name
		case cl.Genre != nil:
			g = cl.Genre.Name
		case cl.SubGenre != nil:
			g = cl.SubGenre.Name
		}
		if g != "" && !seen[g] {
			seen[g] = true
			genres = append(genres, g)
		}
	}
	return genres
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
