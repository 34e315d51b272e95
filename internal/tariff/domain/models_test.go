package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateScheduleAcceptsPartition(t *testing.T) {
	tiers := []Tier{
		{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99},
		{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 250, UnitPrice: 89.99},
		{Ordinal: 3, LowerBoundKwh: 250, UpperBoundKwh: 0, UnitPrice: 99.99},
	}
	assert.NoError(t, ValidateSchedule(tiers))
}

func TestValidateScheduleSingleUnboundedTier(t *testing.T) {
	tiers := []Tier{{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 0, UnitPrice: 79.99}}
	assert.NoError(t, ValidateSchedule(tiers))
}

func TestValidateScheduleEmpty(t *testing.T) {
	assert.ErrorIs(t, ValidateSchedule(nil), ErrNoApplicableTariff)
}

func TestValidateScheduleRejections(t *testing.T) {
	tests := []struct {
		name  string
		tiers []Tier
	}{
		{
			name:  "first tier does not start at zero",
			tiers: []Tier{{Ordinal: 1, LowerBoundKwh: 10, UpperBoundKwh: 0, UnitPrice: 79.99}},
		},
		{
			name: "gap between tiers",
			tiers: []Tier{
				{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99},
				{Ordinal: 2, LowerBoundKwh: 200, UpperBoundKwh: 0, UnitPrice: 89.99},
			},
		},
		{
			name: "overlap between tiers",
			tiers: []Tier{
				{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99},
				{Ordinal: 2, LowerBoundKwh: 100, UpperBoundKwh: 0, UnitPrice: 89.99},
			},
		},
		{
			name: "last tier bounded",
			tiers: []Tier{
				{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99},
				{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 250, UnitPrice: 89.99},
			},
		},
		{
			name: "unbounded tier in the middle",
			tiers: []Tier{
				{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 0, UnitPrice: 79.99},
				{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 0, UnitPrice: 89.99},
			},
		},
		{
			name: "non-ascending ordinals",
			tiers: []Tier{
				{Ordinal: 2, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99},
				{Ordinal: 1, LowerBoundKwh: 150, UpperBoundKwh: 0, UnitPrice: 89.99},
			},
		},
		{
			name: "inverted bounds",
			tiers: []Tier{
				{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99},
				{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 120, UnitPrice: 89.99},
			},
		},
		{
			name:  "non-positive price",
			tiers: []Tier{{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 0, UnitPrice: 0}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateSchedule(tc.tiers), ErrInvalidSchedule)
		})
	}
}
