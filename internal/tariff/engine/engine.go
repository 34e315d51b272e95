// Package engine converts a monetary amount into energy credit across the
// progressive tariff schedule. It is pure: no I/O, no clock, safe for
// concurrent use.
package engine

import (
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
)

var ErrInvalidAmount = errors.New("invalid_amount")

// Line is the slice of energy a single tier contributed to an allocation.
type Line struct {
	TierOrdinal int     `json:"tier_ordinal"`
	UnitPrice   float64 `json:"unit_price"`
	Kwh         float64 `json:"kwh"`
	Amount      float64 `json:"amount"`
}

// Result is a full allocation breakdown. FinalTier is the last tier that
// received a non-zero allocation, i.e. the most expensive tier touched;
// its unit price is the nominal rate attributed to the transaction.
type Result struct {
	TotalKwh   float64
	AmountPaid float64
	Breakdown  []Line
	FinalTier  tariffdomain.Tier
}

// Allocate walks the schedule in ascending ordinal, filling each bounded
// bracket before moving to the next, like a tax-bracket calculation run
// forward. Intermediate math uses decimals at full precision; only
// presented values are rounded to 2 decimal places.
func Allocate(amount float64, tiers []tariffdomain.Tier) (*Result, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	schedule := make([]tariffdomain.Tier, len(tiers))
	copy(schedule, tiers)
	sort.Slice(schedule, func(i, j int) bool {
		return schedule[i].Ordinal < schedule[j].Ordinal
	})

	if err := tariffdomain.ValidateSchedule(schedule); err != nil {
		return nil, err
	}

	remaining := decimal.NewFromFloat(amount)
	totalKwh := decimal.Zero
	breakdown := make([]Line, 0, len(schedule))
	var finalTier tariffdomain.Tier

	for _, tier := range schedule {
		if !remaining.IsPositive() {
			break
		}

		unitPrice := decimal.NewFromFloat(tier.UnitPrice)
		var kwh, spent decimal.Decimal

		if tier.Unbounded() {
			kwh = remaining.Div(unitPrice)
			spent = remaining
			remaining = decimal.Zero
		} else {
			capacity := decimal.NewFromFloat(tier.UpperBoundKwh).Sub(decimal.NewFromFloat(tier.LowerBoundKwh))
			bracketCost := capacity.Mul(unitPrice)
			if remaining.GreaterThanOrEqual(bracketCost) {
				kwh = capacity
				spent = bracketCost
				remaining = remaining.Sub(bracketCost)
			} else {
				kwh = remaining.Div(unitPrice)
				spent = remaining
				remaining = decimal.Zero
			}
		}

		totalKwh = totalKwh.Add(kwh)
		finalTier = tier
		breakdown = append(breakdown, Line{
			TierOrdinal: tier.Ordinal,
			UnitPrice:   tier.UnitPrice,
			Kwh:         kwh.Round(2).InexactFloat64(),
			Amount:      spent.Round(2).InexactFloat64(),
		})
	}

	// With a valid partition the unbounded terminal tier always absorbs the
	// residual; anything left means the schedule lied.
	if remaining.IsPositive() || len(breakdown) == 0 {
		return nil, tariffdomain.ErrNoApplicableTariff
	}

	return &Result{
		TotalKwh:   totalKwh.Round(2).InexactFloat64(),
		AmountPaid: amount,
		Breakdown:  breakdown,
		FinalTier:  finalTier,
	}, nil
}
