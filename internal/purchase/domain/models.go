// Package domain defines purchase transactions and the processor contract.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

type FailureReason string

const (
	ReasonInvalidArgument    FailureReason = "invalid_argument"
	ReasonMeterNotFound      FailureReason = "meter_not_found"
	ReasonMeterInactive      FailureReason = "meter_inactive"
	ReasonNoApplicableTariff FailureReason = "no_applicable_tariff"
)

// Transaction records one purchase attempt, success or failure. Rows are
// written exactly once and never updated.
type Transaction struct {
	ID               snowflake.ID   `json:"id" gorm:"primaryKey"`
	Reference        string         `json:"reference" gorm:"type:text;not null;uniqueIndex:ux_purchase_transactions_reference"`
	RechargeCode     string         `json:"recharge_code" gorm:"type:text;not null;uniqueIndex:ux_purchase_transactions_recharge_code"`
	MeterIdentifier  string         `json:"meter_identifier" gorm:"type:text;not null;index"`
	AmountPaid       float64        `json:"amount_paid" gorm:"not null"`
	EnergyKwh        float64        `json:"energy_kwh" gorm:"column:energy_kwh;not null;default:0"`
	FinalTierOrdinal *int           `json:"final_tier_ordinal,omitempty"`
	FinalUnitPrice   *float64       `json:"final_unit_price,omitempty"`
	ClientName       string         `json:"client_name" gorm:"type:text"`
	OriginIP         string         `json:"origin_ip" gorm:"column:origin_ip;type:text"`
	OriginLabel      string         `json:"origin_label" gorm:"type:text"`
	Outcome          Outcome        `json:"outcome" gorm:"type:text;not null"`
	FailureReason    *string        `json:"failure_reason,omitempty" gorm:"type:text"`
	Breakdown        datatypes.JSON `json:"breakdown,omitempty"`
	CreatedAt        time.Time      `json:"created_at" gorm:"not null;index"`
}

// TableName sets the database table name.
func (Transaction) TableName() string { return "purchase_transactions" }

var (
	ErrInvalidReference = errors.New("invalid_reference")
	ErrNotFound         = errors.New("not_found")
)
