package repository

import (
	"context"
	"time"

	journaldomain "github.com/sunugrid/voltara/internal/journal/domain"
	"github.com/sunugrid/voltara/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() journaldomain.Repository {
	return &repo{}
}

func (r *repo) Append(ctx context.Context, db *gorm.DB, e *journaldomain.Entry) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO purchase_journal (id, reference, recharge_code, meter_identifier, client_name, amount_paid, energy_kwh,
		        final_tier_ordinal, final_unit_price, outcome, failure_reason, origin_ip, origin_label, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.Reference,
		e.RechargeCode,
		e.MeterIdentifier,
		e.ClientName,
		e.AmountPaid,
		e.EnergyKwh,
		e.FinalTierOrdinal,
		e.FinalUnitPrice,
		e.Outcome,
		e.FailureReason,
		e.OriginIP,
		e.OriginLabel,
		e.CreatedAt,
	).Error
}

func rangeQuery(ctx context.Context, db *gorm.DB, from, to *time.Time) *gorm.DB {
	q := db.WithContext(ctx).Table("purchase_journal")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}
	return q
}

func (r *repo) Summary(ctx context.Context, db *gorm.DB, from, to *time.Time) (*journaldomain.Summary, error) {
	var summary journaldomain.Summary
	err := rangeQuery(ctx, db, from, to).
		Select(`COUNT(*) AS total_count,
			COUNT(CASE WHEN outcome = 'success' THEN 1 END) AS succeeded_count,
			COUNT(CASE WHEN outcome = 'failed' THEN 1 END) AS failed_count,
			COALESCE(SUM(CASE WHEN outcome = 'success' THEN amount_paid ELSE 0 END), 0) AS total_amount,
			COALESCE(SUM(CASE WHEN outcome = 'success' THEN energy_kwh ELSE 0 END), 0) AS total_kwh,
			COALESCE(AVG(CASE WHEN outcome = 'success' THEN amount_paid END), 0) AS average_amount`).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *repo) TopMeters(ctx context.Context, db *gorm.DB, from, to *time.Time, limit int) ([]journaldomain.MeterVolume, error) {
	var rows []journaldomain.MeterVolume
	err := rangeQuery(ctx, db, from, to).
		Select(`meter_identifier, client_name,
			COUNT(*) AS purchase_count,
			SUM(amount_paid) AS total_amount,
			SUM(energy_kwh) AS total_kwh`).
		Where("outcome = ?", journaldomain.OutcomeSuccess).
		Group("meter_identifier, client_name").
		Order("total_amount DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) TierBreakdown(ctx context.Context, db *gorm.DB, from, to *time.Time) ([]journaldomain.TierVolume, error) {
	var rows []journaldomain.TierVolume
	err := rangeQuery(ctx, db, from, to).
		Select(`final_tier_ordinal AS tier_ordinal, final_unit_price AS unit_price,
			COUNT(*) AS purchase_count,
			SUM(amount_paid) AS total_amount,
			SUM(energy_kwh) AS total_kwh`).
		Where("outcome = ?", journaldomain.OutcomeSuccess).
		Where("final_tier_ordinal IS NOT NULL").
		Group("final_tier_ordinal, final_unit_price").
		Order("tier_ordinal ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter string, p pagination.Pagination) ([]journaldomain.Entry, int64, error) {
	q := db.WithContext(ctx).Table("purchase_journal")
	if filter != "" {
		like := "%" + filter + "%"
		q = q.Where("meter_identifier LIKE ? OR client_name LIKE ? OR reference LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []journaldomain.Entry
	err := q.
		Order("created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Scan(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

func (r *repo) DeleteOlderThan(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM purchase_journal WHERE created_at < ?`, cutoff)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
