package notify

import (
	"encoding/json"
	"fmt"
)

// Routing keys on the concert exchange.
const (
	RKConcertCreated = "concert.created"
)

// NewConcert is the lightweight broadcast sent to live subscribers when
// ingestion sees a concert for the first time.
type NewConcert struct {
	Artist string   `json:"artist"`
	Date   string   `json:"date"`
	Genres []string `json:"genres"`
	Price  string   `json:"price"`
}

func MustUnmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
