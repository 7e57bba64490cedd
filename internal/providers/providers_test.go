package providers

import (
	"encoding/json"
	"testing"
)

func decodeTM(t *testing.T, raw string) TicketmasterEvent {
	t.Helper()
	var ev TicketmasterEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("decode ticketmaster fixture: %v", err)
	}
	return ev
}

func decodeEB(t *testing.T, raw string) EventbriteEvent {
	t.Helper()
	var ev EventbriteEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("decode eventbrite fixture: %v", err)
	}
	return ev
}

func assertConcert(t *testing.T, got, want ExternalConcert) {
	t.Helper()
	if got.ExternalID != want.ExternalID {
		t.Errorf("ExternalID = %q, want %q", got.ExternalID, want.ExternalID)
	}
	if got.Artist != want.Artist {
		t.Errorf("Artist = %q, want %q", got.Artist, want.Artist)
	}
	if got.Title != want.Title {
		t.Errorf("Title = %q, want %q", got.Title, want.Title)
	}
	if got.Date != want.Date {
		t.Errorf("Date = %q, want %q", got.Date, want.Date)
	}
	if got.Time != want.Time {
		t.Errorf("Time = %q, want %q", got.Time, want.Time)
	}
	if got.Price != want.Price {
		t.Errorf("Price = %q, want %q", got.Price, want.Price)
	}
	if got.Source != want.Source {
		t.Errorf("Source = %q, want %q", got.Source, want.Source)
	}
	if got.VenueName != want.VenueName {
		t.Errorf("VenueName = %q, want %q", got.VenueName, want.VenueName)
	}
	if got.VenueAddress != want.VenueAddress {
		t.Errorf("VenueAddress = %q, want %q", got.VenueAddress, want.VenueAddress)
	}
	if got.TicketURL != want.TicketURL {
		t.Errorf("TicketURL = %q, want %q", got.TicketURL, want.TicketURL)
	}
	if got.ImageURL != want.ImageURL {
		t.Errorf("ImageURL = %q, want %q", got.ImageURL, want.ImageURL)
	}
	if len(got.Genres) != len(want.Genres) {
		t.Errorf("Genres = %v, want %v", got.Genres, want.Genres)
		return
	}
	for i := range want.Genres {
		if got.Genres[i] != want.Genres[i] {
			t.Errorf("Genres[%d] = %q, want %q", i, got.Genres[i], want.Genres[i])
		}
	}
}
