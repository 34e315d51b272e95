package domain

import (
	"context"
	"time"

	"github.com/sunugrid/voltara/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Append(ctx context.Context, db *gorm.DB, entry *Entry) error
	Summary(ctx context.Context, db *gorm.DB, from, to *time.Time) (*Summary, error)
	TopMeters(ctx context.Context, db *gorm.DB, from, to *time.Time, limit int) ([]MeterVolume, error)
	TierBreakdown(ctx context.Context, db *gorm.DB, from, to *time.Time) ([]TierVolume, error)
	List(ctx context.Context, db *gorm.DB, filter string, p pagination.Pagination) ([]Entry, int64, error)
	DeleteOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error)
}
