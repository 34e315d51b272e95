// Package domain defines the append-only audit journal of purchase attempts.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Entry is a denormalized copy of a purchase transaction plus request
// context. Entries are appended once and never mutated; a retention purge
// is the only delete path.
type Entry struct {
	ID               snowflake.ID `json:"id" gorm:"primaryKey"`
	Reference        string       `json:"reference" gorm:"type:text;not null;index"`
	RechargeCode     string       `json:"recharge_code" gorm:"type:text;not null"`
	MeterIdentifier  string       `json:"meter_identifier" gorm:"type:text;not null;index"`
	ClientName       string       `json:"client_name" gorm:"type:text"`
	AmountPaid       float64      `json:"amount_paid" gorm:"not null"`
	EnergyKwh        float64      `json:"energy_kwh" gorm:"column:energy_kwh;not null"`
	FinalTierOrdinal *int         `json:"final_tier_ordinal,omitempty"`
	FinalUnitPrice   *float64     `json:"final_unit_price,omitempty"`
	Outcome          string       `json:"outcome" gorm:"type:text;not null"`
	FailureReason    *string      `json:"failure_reason,omitempty" gorm:"type:text"`
	OriginIP         string       `json:"origin_ip" gorm:"column:origin_ip;type:text"`
	OriginLabel      string       `json:"origin_label" gorm:"type:text"`
	CreatedAt        time.Time    `json:"created_at" gorm:"not null;index"`
}

// TableName sets the database table name.
func (Entry) TableName() string { return "purchase_journal" }

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Summary aggregates journal counters over an optional date range.
type Summary struct {
	TotalCount     int64   `json:"total_count"`
	SucceededCount int64   `json:"succeeded_count"`
	FailedCount    int64   `json:"failed_count"`
	TotalAmount    float64 `json:"total_amount"`
	TotalKwh       float64 `json:"total_kwh"`
	AverageAmount  float64 `json:"average_amount"`
}

// MeterVolume ranks a meter by succeeded purchase volume.
type MeterVolume struct {
	MeterIdentifier string  `json:"meter_identifier"`
	ClientName      string  `json:"client_name"`
	PurchaseCount   int64   `json:"purchase_count"`
	TotalAmount     float64 `json:"total_amount"`
	TotalKwh        float64 `json:"total_kwh"`
}

// TierVolume breaks succeeded volume down by final tier.
type TierVolume struct {
	TierOrdinal   int     `json:"tier_ordinal"`
	UnitPrice     float64 `json:"unit_price"`
	PurchaseCount int64   `json:"purchase_count"`
	TotalAmount   float64 `json:"total_amount"`
	TotalKwh      float64 `json:"total_kwh"`
}

var ErrInvalidRange = errors.New("invalid_date_range")
