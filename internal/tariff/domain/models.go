// Package domain defines the tariff tier schedule and its invariants.
package domain

import (
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Tier is one pricing bracket of the progressive tariff schedule.
// Active tiers ordered by ascending Ordinal must partition [0, +inf)
// with no gaps or overlaps; the last active tier is unbounded
// (UpperBoundKwh == 0).
type Tier struct {
	ID            snowflake.ID `json:"id" gorm:"primaryKey"`
	Ordinal       int          `json:"ordinal" gorm:"not null;index"`
	LowerBoundKwh float64      `json:"lower_bound_kwh" gorm:"column:lower_bound_kwh;not null"`
	UpperBoundKwh float64      `json:"upper_bound_kwh" gorm:"column:upper_bound_kwh;not null;default:0"`
	UnitPrice     float64      `json:"unit_price" gorm:"not null"`
	Description   string       `json:"description" gorm:"type:text"`
	Active        bool         `json:"active" gorm:"not null;default:true"`
	CreatedAt     time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Tier) TableName() string { return "tariff_tiers" }

// Unbounded reports whether the tier has no upper kWh limit.
func (t Tier) Unbounded() bool { return t.UpperBoundKwh == 0 }

// CapacityKwh returns the bracket width of a bounded tier.
func (t Tier) CapacityKwh() float64 { return t.UpperBoundKwh - t.LowerBoundKwh }

var (
	ErrInvalidOrdinal     = errors.New("invalid_ordinal")
	ErrInvalidBounds      = errors.New("invalid_bounds")
	ErrInvalidUnitPrice   = errors.New("invalid_unit_price")
	ErrInvalidSchedule    = errors.New("invalid_tariff_schedule")
	ErrNoApplicableTariff = errors.New("no_applicable_tariff")
	ErrNotFound           = errors.New("not_found")
	ErrDuplicateOrdinal   = errors.New("duplicate_ordinal")
)

// ValidateSchedule checks the partition invariant over the active tiers,
// assumed sorted by ascending ordinal. An empty schedule is reported as
// ErrNoApplicableTariff; a broken partition as ErrInvalidSchedule.
func ValidateSchedule(tiers []Tier) error {
	if len(tiers) == 0 {
		return ErrNoApplicableTariff
	}

	for i, tier := range tiers {
		if tier.Ordinal <= 0 {
			return ErrInvalidSchedule
		}
		if tier.UnitPrice <= 0 {
			return ErrInvalidSchedule
		}
		if tier.LowerBoundKwh < 0 {
			return ErrInvalidSchedule
		}

		if i == 0 {
			if tier.LowerBoundKwh != 0 {
				return ErrInvalidSchedule
			}
		} else {
			prev := tiers[i-1]
			if tier.Ordinal <= prev.Ordinal {
				return ErrInvalidSchedule
			}
			// An unbounded tier anywhere but last leaves the tail unreachable.
			if prev.Unbounded() {
				return ErrInvalidSchedule
			}
			if tier.LowerBoundKwh != prev.UpperBoundKwh {
				return ErrInvalidSchedule
			}
		}

		if !tier.Unbounded() && tier.UpperBoundKwh <= tier.LowerBoundKwh {
			return ErrInvalidSchedule
		}
	}

	if !tiers[len(tiers)-1].Unbounded() {
		return ErrInvalidSchedule
	}

	return nil
}
