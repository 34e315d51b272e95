package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	InsertClient(ctx context.Context, db *gorm.DB, client *Client) error
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	FindByIdentifier(ctx context.Context, db *gorm.DB, identifier string) (*Account, error)
	List(ctx context.Context, db *gorm.DB) ([]Account, error)
	SetStatus(ctx context.Context, db *gorm.DB, identifier string, status Status, at time.Time) error
	// CreditBalance atomically increments the accumulated credit at the
	// storage layer; concurrent purchases against the same meter serialize
	// here instead of racing a read-modify-write in the caller.
	CreditBalance(ctx context.Context, db *gorm.DB, identifier string, deltaKwh float64, at time.Time) error
}
