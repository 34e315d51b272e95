package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	meterdomain "github.com/sunugrid/voltara/internal/meter/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() meterdomain.Repository {
	return &repo{}
}

func (r *repo) InsertClient(ctx context.Context, db *gorm.DB, c *meterdomain.Client) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO clients (id, first_name, last_name, phone, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.FirstName,
		c.LastName,
		c.Phone,
		c.Address,
		c.CreatedAt,
		c.UpdatedAt,
	).Error
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, a *meterdomain.Account) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO meter_accounts (id, identifier, client_id, status, accumulated_credit_kwh, last_purchase_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID,
		a.Identifier,
		a.ClientID,
		a.Status,
		a.AccumulatedCreditKwh,
		a.LastPurchaseAt,
		a.CreatedAt,
		a.UpdatedAt,
	).Error
}

// accountRow flattens the meter/owner join for scanning.
type accountRow struct {
	ID                   snowflake.ID
	Identifier           string
	ClientID             snowflake.ID
	Status               meterdomain.Status
	AccumulatedCreditKwh float64
	LastPurchaseAt       *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
	FirstName            string
	LastName             string
	Phone                string
	Address              string
}

func (row accountRow) toAccount() *meterdomain.Account {
	return &meterdomain.Account{
		ID:                   row.ID,
		Identifier:           row.Identifier,
		ClientID:             row.ClientID,
		Status:               row.Status,
		AccumulatedCreditKwh: row.AccumulatedCreditKwh,
		LastPurchaseAt:       row.LastPurchaseAt,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
		Owner: &meterdomain.Client{
			ID:        row.ClientID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Phone:     row.Phone,
			Address:   row.Address,
		},
	}
}

func (r *repo) FindByIdentifier(ctx context.Context, db *gorm.DB, identifier string) (*meterdomain.Account, error) {
	var row accountRow
	err := db.WithContext(ctx).Raw(
		`SELECT m.id, m.identifier, m.client_id, m.status, m.accumulated_credit_kwh, m.last_purchase_at, m.created_at, m.updated_at,
		        c.first_name, c.last_name, c.phone, c.address
		 FROM meter_accounts m
		 INNER JOIN clients c ON c.id = m.client_id
		 WHERE m.identifier = ?`,
		identifier,
	).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return row.toAccount(), nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]meterdomain.Account, error) {
	var rows []accountRow
	err := db.WithContext(ctx).Raw(
		`SELECT m.id, m.identifier, m.client_id, m.status, m.accumulated_credit_kwh, m.last_purchase_at, m.created_at, m.updated_at,
		        c.first_name, c.last_name, c.phone, c.address
		 FROM meter_accounts m
		 INNER JOIN clients c ON c.id = m.client_id
		 ORDER BY m.created_at DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	accounts := make([]meterdomain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, *row.toAccount())
	}
	return accounts, nil
}

func (r *repo) SetStatus(ctx context.Context, db *gorm.DB, identifier string, status meterdomain.Status, at time.Time) error {
	res := db.WithContext(ctx).Exec(
		`UPDATE meter_accounts SET status = ?, updated_at = ? WHERE identifier = ?`,
		status,
		at,
		identifier,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return meterdomain.ErrNotFound
	}
	return nil
}

func (r *repo) CreditBalance(ctx context.Context, db *gorm.DB, identifier string, deltaKwh float64, at time.Time) error {
	res := db.WithContext(ctx).Exec(
		`UPDATE meter_accounts
		 SET accumulated_credit_kwh = accumulated_credit_kwh + ?, last_purchase_at = ?, updated_at = ?
		 WHERE identifier = ?`,
		deltaKwh,
		at,
		at,
		identifier,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return meterdomain.ErrNotFound
	}
	return nil
}
