package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
	"github.com/prompttoproduct-dev/concertcalendar/internal/providers"
	"github.com/prompttoproduct-dev/concertcalendar/internal/security"
)

// ErrMissingFields rejects a partial concert before any I/O when the
// natural-key fields are incomplete.
var ErrMissingFields = errors.New("missing required concert data")

type ConcertRepo struct {
	db     *gorm.DB
	venues *VenueRepo
}

func NewConcertRepo(db *gorm.DB, venues *VenueRepo) *ConcertRepo {
	return &ConcertRepo{db: db, venues: venues}
}

func (r *ConcertRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Concert{})
}

// Upsert reconciles a provider record against storage, keyed by
// (external_id, source). A single INSERT ... ON CONFLICT DO UPDATE keeps
// the operation atomic under concurrent deliveries of the same key.
// Venue resolution is by exact name; unknown venues are created with
// borough defaulted to manhattan (an acknowledged approximation, not
// geocoded).
func (r *ConcertRepo) Upsert(ctx context.Context, in providers.ExternalConcert) error {
	if in.ExternalID == "" || in.Artist == "" || in.Date == "" {
		return ErrMissingFields
	}

	var venueID *string
	if in.VenueName != "" {
		address := security.SanitizeString(in.VenueAddress)
		if address == "" {
			address = "New York, NY"
		}
		venue, err := r.venues.FindOrCreate(ctx, security.SanitizeString(in.VenueName), address, domain.BoroughManhattan)
		if err != nil {
			return err
		}
		venueID = &venue.ID
	}

	genres, err := json.Marshal(in.Genres)
	if err != nil {
		return err
	}
	if in.Genres == nil {
		genres = []byte("[]")
	}

	now := time.Now().UTC()
	row := domain.Concert{
		ID:          uuid.NewString(),
		ExternalID:  in.ExternalID,
		Source:      in.Source,
		Artist:      in.Artist,
		Title:       in.Title,
		Date:        in.Date,
		Time:        in.Time,
		Price:       in.Price,
		Genres:      genres,
		Description: in.Description,
		TicketURL:   in.TicketURL,
		ImageURL:    in.ImageURL,
		VenueID:     venueID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "external_id"}, {Name: "source"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"artist", "title", "date", "time", "price", "genres",
			"description", "ticket_url", "image_url", "updated_at",
		}),
	}).Create(&row).Error
}

// DeleteByExternal removes a concert on an explicit provider cancel.
func (r *ConcertRepo) DeleteByExternal(ctx context.Context, externalID string, source domain.Source) error {
	return r.db.WithContext(ctx).
		Delete(&domain.Concert{}, "external_id = ? AND source = ?", externalID, source).Error
}

// DeleteOlderThan removes concerts dated strictly before cutoff
// (YYYY-MM-DD) and reports how many rows went away.
func (r *ConcertRepo) DeleteOlderThan(ctx context.Context, cutoff string) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&domain.Concert{}, "date < ?", cutoff)
	return res.RowsAffected, res.Error
}

// Search filters the catalog for the read API.
func (r *ConcertRepo) Search(ctx context.Context, f domain.ConcertFilter) ([]domain.Concert, int64, error) {
	size := f.PageSize
	if size <= 0 {
		size = 20
	}
	page := f.Page
	if page < 0 {
		page = 0
	}

	qb := r.db.WithContext(ctx).Model(&domain.Concert{}).Preload("Venue")
	if f.Query != "" {
		qb = qb.Where("(artist ILIKE ? OR title ILIKE ?)", "%"+f.Query+"%", "%"+f.Query+"%")
	}
	if f.Genre != "" {
		qb = qb.Where("genres::text ILIKE ?", "%"+f.Genre+"%")
	}
	if f.Borough != "" {
		qb = qb.Where("venue_id IN (SELECT id FROM venues WHERE borough = ?)", f.Borough)
	}
	switch f.PriceRange {
	case "free":
		qb = qb.Where("price = ?", domain.PriceFree)
	case "under-25":
		qb = qb.Where("price <> ? AND price::numeric < 25", domain.PriceFree)
	case "under-50":
		qb = qb.Where("price <> ? AND price::numeric < 50", domain.PriceFree)
	case "over-50":
		qb = qb.Where("price <> ? AND price::numeric >= 50", domain.PriceFree)
	}
	if f.FromDate != "" {
		qb = qb.Where("date >= ?", f.FromDate)
	}
	if f.ToDate != "" {
		qb = qb.Where("date <= ?", f.ToDate)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Concert
	if err := qb.Order("date, time").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ByMonth lists a calendar month of concerts, venue included.
func (r *ConcertRepo) ByMonth(ctx context.Context, year int, month time.Month) ([]domain.Concert, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	var out []domain.Concert
	err := r.db.WithContext(ctx).Preload("Venue").
		Where("date BETWEEN ? AND ?", first.Format("2006-01-02"), last.Format("2006-01-02")).
		Order("date, time").
		Find(&out).Error
	return out, err
}
