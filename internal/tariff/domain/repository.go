package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tier *Tier) error
	Update(ctx context.Context, db *gorm.DB, tier *Tier) error
	FindByOrdinal(ctx context.Context, db *gorm.DB, ordinal int) (*Tier, error)
	ActiveTiers(ctx context.Context, db *gorm.DB) ([]Tier, error)
	List(ctx context.Context, db *gorm.DB) ([]Tier, error)
}
