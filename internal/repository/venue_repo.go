package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
)

type VenueRepo struct{ db *gorm.DB }

func NewVenueRepo(db *gorm.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

func (r *VenueRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Venue{})
}

// FindOrCreate resolves a venue by exact name, creating a minimal row
// when no match exists. Distinct spellings of the same venue become
// distinct rows; this pipeline never updates or deletes venues.
func (r *VenueRepo) FindOrCreate(ctx context.Context, name, address string, borough domain.Borough) (*domain.Venue, error) {
	var v domain.Venue
	err := r.db.WithContext(ctx).First(&v, "name = ?", name).Error
	if err == nil {
		return &v, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	v = domain.Venue{
		ID:      uuid.NewString(),
		Name:    name,
		Address: address,
		Borough: borough,
	}
	if err := r.db.WithContext(ctx).Create(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VenueRepo) ByID(ctx context.Context, id string) (*domain.Venue, error) {
	var v domain.Venue
	if err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VenueRepo) List(ctx context.Context, borough domain.Borough, page, size int32) ([]domain.Venue, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Venue{})
	if borough != "" {
		qb = qb.Where("borough = ?", borough)
	}
	var out []domain.Venue
	if err := qb.Order("name").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
