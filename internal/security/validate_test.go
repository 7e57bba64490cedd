package security

import (
	"strings"
	"testing"
)

func TestParseTicketmasterWebhook(t *testing.T) {
	valid := `{
		"event_type": "event.created",
		"data": {
			"id": "tm1",
			"name": "Show",
			"dates": {"start": {"localDate": "2025-09-10"}}
		}
	}`

	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"valid created", valid, ""},
		{"malformed json", `{"event_type":`, "malformed JSON"},
		{"unknown event type", `{"event_type":"event.deleted","data":{"id":"tm1","dates":{"start":{"localDate":"2025-09-10"}}}}`, "unknown event_type"},
		{"missing id", `{"event_type":"event.created","data":{"dates":{"start":{"localDate":"2025-09-10"}}}}`, "data.id is required"},
		{"bad date format", `{"event_type":"event.created","data":{"id":"tm1","dates":{"start":{"localDate":"09/10/2025"}}}}`, "localDate must be YYYY-MM-DD"},
		{"name too long", `{"event_type":"event.created","data":{"id":"tm1","name":"` + strings.Repeat("a", 501) + `","dates":{"start":{"localDate":"2025-09-10"}}}}`, "data.name exceeds 500 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseTicketmasterWebhook([]byte(tt.raw))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTicketmasterWebhook: %v", err)
			}
			if w.Data.ID != "tm1" {
				t.Errorf("Data.ID = %q, want tm1", w.Data.ID)
			}
		})
	}
}

func TestParseTicketmasterWebhook_ClampsPrices(t *testing.T) {
	raw := `{
		"event_type": "event.updated",
		"data": {
			"id": "tm2",
			"dates": {"start": {"localDate": "2025-09-10"}},
			"priceRanges": [{"min": -5, "max": 99999}]
		}
	}`
	w, err := ParseTicketmasterWebhook([]byte(raw))
	if err != nil {
		t.Fatalf("ParseTicketmasterWebhook: %v", err)
	}
	if got := w.Data.PriceRanges[0].Min; got != 0 {
		t.Errorf("Min clamped to %v, want 0", got)
	}
	if got := w.Data.PriceRanges[0].Max; got != 10000 {
		t.Errorf("Max clamped to %v, want 10000", got)
	}
}

func TestParseEventbriteWebhook(t *testing.T) {
	valid := `{
		"config": {
			"object": {
				"id": "eb1",
				"name": {"text": "Brooklyn Jazz Night"},
				"start": {"local": "2025-09-10T20:00:00"}
			}
		}
	}`

	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"valid", valid, ""},
		{"missing id", `{"config":{"object":{"name":{"text":"x"},"start":{"local":"2025-09-10T20:00:00"}}}}`, "config.object.id is required"},
		{"missing name", `{"config":{"object":{"id":"eb1","start":{"local":"2025-09-10T20:00:00"}}}}`, "name.text is required"},
		{"missing start", `{"config":{"object":{"id":"eb1","name":{"text":"x"}}}}`, "start.local is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := ParseEventbriteWebhook([]byte(tt.raw))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEventbriteWebhook: %v", err)
			}
			if w.Config.Object.ID != "eb1" {
				t.Errorf("object ID = %q, want eb1", w.Config.Object.ID)
			}
		})
	}
}

func TestEventbriteWebhook_EventType(t *testing.T) {
	if got := (EventbriteWebhook{}).EventType(); got != "event.created" {
		t.Errorf("without api_url: %q, want event.created", got)
	}
	if got := (EventbriteWebhook{APIURL: "https://api.example.com/v3/events/1/"}).EventType(); got != "event.updated" {
		t.Errorf("with api_url: %q, want event.updated", got)
	}
}

func TestValidWebhookHeaders(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		provider string
		want     bool
	}{
		{
			"ticketmaster complete",
			map[string]string{"x-ticketmaster-signature": "sig", "content-type": "application/json"},
			"ticketmaster", true,
		},
		{
			"ticketmaster missing signature",
			map[string]string{"content-type": "application/json"},
			"ticketmaster", false,
		},
		{
			"eventbrite complete",
			map[string]string{"x-eventbrite-signature": "sig", "content-type": "application/json"},
			"eventbrite", true,
		},
		{
			"eventbrite missing content type",
			map[string]string{"x-eventbrite-signature": "sig"},
			"eventbrite", false,
		},
		{"unknown provider", map[string]string{}, "stubhub", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidWebhookHeaders(tt.headers, tt.provider); got != tt.want {
				t.Errorf("ValidWebhookHeaders = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Bowery Ballroom", "Bowery Ballroom"},
		{"strips markup", `<script>alert("x")</script>`, "scriptalertx/script"},
		{"strips sql-ish", "Robert'); DROP TABLE concerts;--", "Robert DROP TABLE concerts--"},
		{"trims whitespace", "  Mercury Lounge  ", "Mercury Lounge"},
		{"caps at 500", strings.Repeat("a", 600), strings.Repeat("a", 500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeString(tt.in); got != tt.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSearchQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		q       SearchQuery
		wantErr bool
	}{
		{"empty", SearchQuery{}, false},
		{"full valid", SearchQuery{Query: "jazz night", Genre: "Jazz", Location: "brooklyn", PriceRange: "under-25", Page: 2}, false},
		{"query too long", SearchQuery{Query: strings.Repeat("a", 101)}, true},
		{"query bad chars", SearchQuery{Query: "jazz<script>"}, true},
		{"genre with digits", SearchQuery{Genre: "Jazz2"}, true},
		{"bad price range", SearchQuery{PriceRange: "under-100"}, true},
		{"negative page", SearchQuery{Page: -1}, true},
		{"page too high", SearchQuery{Page: 101}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.q.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
