package security

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
)

var (
	dateFormat     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dangerousChars = regexp.MustCompile(`[<>"'%;()&+]`)

	queryChars    = regexp.MustCompile(`^[a-zA-Z0-9\s\-.,!?]+$`)
	genreChars    = regexp.MustCompile(`^[a-zA-Z\s\-]+$`)
	locationChars = regexp.MustCompile(`^[a-zA-Z\s\-,.]+$`)
)

var priceRanges = map[string]bool{
	"free": true, "under-25": true, "under-50": true, "over-50": true,
}

// SearchQuery is the free-text catalog search input.
type SearchQuery struct {
	Query      string `form:"q"`
	Genre      string `form:"genre"`
	Location   string `form:"location"`
	PriceRange string `form:"price_range"`
	Page       int    `form:"page"`
}

// Validate enforces length and character-class constraints on search
// input before it reaches the query layer.
func (s SearchQuery) Validate() error {
	if s.Query != "" && (len(s.Query) > 100 || !queryChars.MatchString(s.Query)) {
		return fmt.Errorf("invalid query")
	}
	if s.Genre != "" && (len(s.Genre) > 50 || !genreChars.MatchString(s.Genre)) {
		return fmt.Errorf("invalid genre")
	}
	if s.Location != "" && (len(s.Location) > 100 || !locationChars.MatchString(s.Location)) {
		return fmt.Errorf("invalid location")
	}
	if s.PriceRange != "" && !priceRanges[s.PriceRange] {
		return fmt.Errorf("invalid price range")
	}
	if s.Page < 0 || s.Page > 100 {
		return fmt.Errorf("invalid page")
	}
	return nil
}

// TicketmasterWebhook is the validated push payload shape.
type TicketmasterWebhook struct {
	EventType string                      `json:"event_type"`
	Data      providers.TicketmasterEvent `json:"data"`
	Timestamp string                      `json:"timestamp"`
}

// EventbriteWebhook is the validated push payload shape. Eventbrite does
// not carry an explicit event type; the presence of api_url marks an
// update rather than a creation.
type EventbriteWebhook struct {
	APIURL string `json:"api_url,omitempty"`
	Config struct {
		Object providers.EventbriteEvent `json:"object"`
	} `json:"config"`
}

// EventType derives created/updated from the payload.
func (w EventbriteWebhook) EventType() string {
	if w.APIURL != "" {
		return "event.updated"
	}
	return "event.created"
}

var ticketmasterEventTypes = map[string]bool{
	"event.created":   true,
	"event.updated":   true,
	"event.cancelled": true,
}

// ParseTicketmasterWebhook decodes and validates a raw webhook body.
func ParseTicketmasterWebhook(raw []byte) (*TicketmasterWebhook, error) {
	var w TicketmasterWebhook
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	if !ticketmasterEventTypes[w.EventType] {
		return nil, fmt.Errorf("unknown event_type %q", w.EventType)
	}
	if w.Data.ID == "" {
		return nil, fmt.Errorf("data.id is required")
	}
	if len(w.Data.Name) > 500 {
		return nil, fmt.Errorf("data.name exceeds 500 characters")
	}
	if !dateFormat.MatchString(w.Data.Dates.Start.LocalDate) {
		return nil, fmt.Errorf("data.dates.start.localDate must be YYYY-MM-DD")
	}
	if w.Data.Embedded != nil {
		for _, v := range w.Data.Embedded.Venues {
			if len(v.Name) > 200 {
				return nil, fmt.Errorf("venue name exceeds 200 characters")
			}
			if v.Address != nil && len(v.Address.Line1) > 200 {
				return nil, fmt.Errorf("venue address exceeds 200 characters")
			}
			if v.City != nil && len(v.City.Name) > 100 {
				return nil, fmt.Errorf("venue city exceeds 100 characters")
			}
		}
		for _, a := range w.Data.Embedded.Attractions {
			if len(a.Name) > 200 {
				return nil, fmt.Errorf("attraction name exceeds 200 characters")
			}
			for _, cl := range a.Classifications {
				if cl.Genre != nil && len(cl.Genre.Name) > 100 {
					return nil, fmt.Errorf("genre name exceeds 100 characters")
				}
			}
		}
	}
	// price bounds are clamped, not rejected
	for i := range w.Data.PriceRanges {
		w.Data.PriceRanges[i].Min = clamp(w.Data.PriceRanges[i].Min, 0, 10000)
		w.Data.PriceRanges[i].Max = clamp(w.Data.PriceRanges[i].Max, 0, 10000)
	}
	return &w, nil
}

// ParseEventbriteWebhook decodes and validates a raw webhook body.
func ParseEventbriteWebhook(raw []byte) (*EventbriteWebhook, error) {
	var w EventbriteWebhook
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("malformed JSON: %w", err)
	}
	obj := w.Config.Object
	if obj.ID == "" {
		return nil, fmt.Errorf("config.object.id is required")
	}
	if obj.Name.Text == "" {
		return nil, fmt.Errorf("config.object.name.text is required")
	}
	if len(obj.Name.Text) > 500 {
		return nil, fmt.Errorf("config.object.name.text exceeds 500 characters")
	}
	if obj.Start.Local == "" {
		return nil, fmt.Errorf("config.object.start.local is required")
	}
	if obj.Venue != nil && len(obj.Venue.Name) > 200 {
		return nil, fmt.Errorf("venue name exceeds 200 characters")
	}
	return &w, nil
}

// requiredWebhookHeaders per provider; keys are matched case-sensitively
// against the canonical lowercase header map.
var requiredWebhookHeaders = map[string][]string{
	"ticketmaster": {"x-ticketmaster-signature", "content-type"},
	"eventbrite":   {"x-eventbrite-signature", "content-type"},
}

// ValidWebhookHeaders reports whether every required header for the
// provider is present.
func ValidWebhookHeaders(headers map[string]string, provider string) bool {
	required, ok := requiredWebhookHeaders[provider]
	if !ok {
		return false
	}
	for _, h := range required {
		if _, present := headers[h]; !present {
			return false
		}
	}
	return true
}

// SanitizeString strips characters we never persist from free text
// sourced externally, trims whitespace and caps length at 500.
func SanitizeString(input string) string {
	out := dangerousChars.ReplaceAllString(input, "")
	out = strings.TrimSpace(out)
	if len(out) > 500 {
		out = out[:500]
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
