package repository

import (
	"context"

	purchasedomain "github.com/sunugrid/voltara/internal/purchase/domain"
	"github.com/sunugrid/voltara/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() purchasedomain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, t *purchasedomain.Transaction) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO purchase_transactions (id, reference, recharge_code, meter_identifier, amount_paid, energy_kwh,
		        final_tier_ordinal, final_unit_price, client_name, origin_ip, origin_label, outcome, failure_reason, breakdown, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Reference,
		t.RechargeCode,
		t.MeterIdentifier,
		t.AmountPaid,
		t.EnergyKwh,
		t.FinalTierOrdinal,
		t.FinalUnitPrice,
		t.ClientName,
		t.OriginIP,
		t.OriginLabel,
		t.Outcome,
		t.FailureReason,
		t.Breakdown,
		t.CreatedAt,
	).Error
}

func (r *repo) FindByReference(ctx context.Context, db *gorm.DB, reference string) (*purchasedomain.Transaction, error) {
	var txn purchasedomain.Transaction
	err := db.WithContext(ctx).Raw(
		`SELECT id, reference, recharge_code, meter_identifier, amount_paid, energy_kwh,
		        final_tier_ordinal, final_unit_price, client_name, origin_ip, origin_label, outcome, failure_reason, breakdown, created_at
		 FROM purchase_transactions WHERE reference = ?`,
		reference,
	).Scan(&txn).Error
	if err != nil {
		return nil, err
	}
	if txn.ID == 0 {
		return nil, nil
	}
	return &txn, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, meterIdentifier string, p pagination.Pagination) ([]purchasedomain.Transaction, int64, error) {
	q := db.WithContext(ctx).Table("purchase_transactions")
	if meterIdentifier != "" {
		q = q.Where("meter_identifier = ?", meterIdentifier)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var txns []purchasedomain.Transaction
	err := q.
		Order("created_at DESC").
		Limit(p.Limit()).
		Offset(p.Offset()).
		Scan(&txns).Error
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
