package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Source identifies where a concert record came from.
type Source string

const (
	SourceManual       Source = "manual"
	SourceTicketmaster Source = "ticketmaster"
	SourceEventbrite   Source = "eventbrite"
)

// PriceFree is the marker used for free shows; otherwise Price holds a
// non-negative numeric string.
const PriceFree = "free"

// Concert is a scheduled performance. (ExternalID, Source) is the natural
// key: re-ingesting the same provider event updates the existing row.
type Concert struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	ExternalID  string         `gorm:"index:idx_concerts_external_source,unique" json:"external_id"`
	Source      Source         `gorm:"index:idx_concerts_external_source,unique" json:"source"`
	Artist      string         `json:"artist"`
	Title       string         `json:"title,omitempty"`
	Date        string         `gorm:"type:date" json:"date"` // YYYY-MM-DD
	Time        string         `json:"time,omitempty"`        // HH:MM:SS
	Price       string         `json:"price"`
	Genres      datatypes.JSON `json:"genres"`
	Description string         `json:"description,omitempty"`
	TicketURL   string         `json:"ticket_url,omitempty"`
	ImageURL    string         `json:"image_url,omitempty"`
	VenueID     *string        `json:"venue_id,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	Venue *Venue `gorm:"foreignKey:VenueID" json:"venue,omitempty"`
}

// ConcertFilter narrows catalog searches. Zero values mean "no filter".
type ConcertFilter struct {
	Query      string // matches artist or title
	Genre      string
	Borough    Borough
	PriceRange string // free | under-25 | under-50 | over-50
	FromDate   string // YYYY-MM-DD inclusive
	ToDate     string // YYYY-MM-DD inclusive
	Page       int32
	PageSize   int32
}
