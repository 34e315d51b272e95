package domain

import (
	"context"

	"github.com/sunugrid/voltara/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, txn *Transaction) error
	FindByReference(ctx context.Context, db *gorm.DB, reference string) (*Transaction, error)
	List(ctx context.Context, db *gorm.DB, meterIdentifier string, p pagination.Pagination) ([]Transaction, int64, error)
}
