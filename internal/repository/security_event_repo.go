package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/prompttoproduct-dev/concertcalendar/internal/domain"
)

type SecurityEventRepo struct{ db *gorm.DB }

func NewSecurityEventRepo(db *gorm.DB) *SecurityEventRepo {
	return &SecurityEventRepo{db: db}
}

func (r *SecurityEventRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.SecurityEvent{})
}

// Insert appends an audit record. Rows are never mutated or deleted by
// this code; retention is a database concern.
func (r *SecurityEventRepo) Insert(ctx context.Context, ev *domain.SecurityEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(ev).Error
}
