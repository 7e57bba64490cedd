package domain

import "time"

// Borough is one of the five NYC boroughs.
type Borough string

const (
	BoroughManhattan    Borough = "manhattan"
	BoroughBrooklyn     Borough = "brooklyn"
	BoroughQueens       Borough = "queens"
	BoroughBronx        Borough = "bronx"
	BoroughStatenIsland Borough = "staten_island"
)

// Boroughs lists every valid borough value.
func Boroughs() []Borough {
	return []Borough{BoroughManhattan, BoroughBrooklyn, BoroughQueens, BoroughBronx, BoroughStatenIsland}
}

// ValidBorough reports whether b is one of the five boroughs.
func ValidBorough(b Borough) bool {
	for _, v := range Boroughs() {
		if v == b {
			return true
		}
	}
	return false
}

// Venue is a physical location. Ingestion looks venues up by exact name
// only; distinct spellings become distinct rows.
type Venue struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"index" json:"name"`
	Address   string    `json:"address,omitempty"`
	Borough   Borough   `json:"borough"`
	Capacity  *int      `json:"capacity,omitempty"`
	Website   string    `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
