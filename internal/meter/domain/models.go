// Package domain defines prepaid meter accounts and their owners.
package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	default:
		return false
	}
}

// Client owns one or more meter accounts.
type Client struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	FirstName string       `json:"first_name" gorm:"type:text;not null"`
	LastName  string       `json:"last_name" gorm:"type:text;not null"`
	Phone     string       `json:"phone" gorm:"type:text"`
	Address   string       `json:"address" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }

func (c Client) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Account is a prepaid meter. AccumulatedCreditKwh is a cumulative ledger
// of purchased energy; nothing in this system ever decrements it.
type Account struct {
	ID                   snowflake.ID `json:"id" gorm:"primaryKey"`
	Identifier           string       `json:"identifier" gorm:"type:text;not null;uniqueIndex:ux_meter_accounts_identifier"`
	ClientID             snowflake.ID `json:"client_id" gorm:"column:client_id;not null;index"`
	Status               Status       `json:"status" gorm:"type:text;not null;default:active"`
	AccumulatedCreditKwh float64      `json:"accumulated_credit_kwh" gorm:"column:accumulated_credit_kwh;not null;default:0"`
	LastPurchaseAt       *time.Time   `json:"last_purchase_at"`
	CreatedAt            time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Owner *Client `json:"owner,omitempty" gorm:"-"`
}

// TableName sets the database table name.
func (Account) TableName() string { return "meter_accounts" }

var (
	ErrInvalidIdentifier = errors.New("invalid_identifier")
	ErrInvalidClient     = errors.New("invalid_client")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidDelta      = errors.New("invalid_credit_delta")
	ErrNotFound          = errors.New("not_found")
	ErrDuplicate         = errors.New("duplicate_identifier")
)
