package repository

import (
	"context"

	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() tariffdomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, t *tariffdomain.Tier) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO tariff_tiers (id, ordinal, lower_bound_kwh, upper_bound_kwh, unit_price, description, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Ordinal,
		t.LowerBoundKwh,
		t.UpperBoundKwh,
		t.UnitPrice,
		t.Description,
		t.Active,
		t.CreatedAt,
		t.UpdatedAt,
	).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, t *tariffdomain.Tier) error {
	return db.WithContext(ctx).Exec(
		`UPDATE tariff_tiers
		 SET lower_bound_kwh = ?, upper_bound_kwh = ?, unit_price = ?, description = ?, active = ?, updated_at = ?
		 WHERE id = ?`,
		t.LowerBoundKwh,
		t.UpperBoundKwh,
		t.UnitPrice,
		t.Description,
		t.Active,
		t.UpdatedAt,
		t.ID,
	).Error
}

func (r *repo) FindByOrdinal(ctx context.Context, db *gorm.DB, ordinal int) (*tariffdomain.Tier, error) {
	var tier tariffdomain.Tier
	err := db.WithContext(ctx).Raw(
		`SELECT id, ordinal, lower_bound_kwh, upper_bound_kwh, unit_price, description, active, created_at, updated_at
		 FROM tariff_tiers WHERE ordinal = ? AND active = ?`,
		ordinal,
		true,
	).Scan(&tier).Error
	if err != nil {
		return nil, err
	}
	if tier.ID == 0 {
		return nil, nil
	}
	return &tier, nil
}

func (r *repo) ActiveTiers(ctx context.Context, db *gorm.DB) ([]tariffdomain.Tier, error) {
	var tiers []tariffdomain.Tier
	err := db.WithContext(ctx).Raw(
		`SELECT id, ordinal, lower_bound_kwh, upper_bound_kwh, unit_price, description, active, created_at, updated_at
		 FROM tariff_tiers WHERE active = ? ORDER BY ordinal ASC`,
		true,
	).Scan(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]tariffdomain.Tier, error) {
	var tiers []tariffdomain.Tier
	err := db.WithContext(ctx).Raw(
		`SELECT id, ordinal, lower_bound_kwh, upper_bound_kwh, unit_price, description, active, created_at, updated_at
		 FROM tariff_tiers ORDER BY ordinal ASC`,
	).Scan(&tiers).Error
	if err != nil {
		return nil, err
	}
	return tiers, nil
}
