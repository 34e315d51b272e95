package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
)

func residentialSchedule() []tariffdomain.Tier {
	return []tariffdomain.Tier{
		{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99, Active: true},
		{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 250, UnitPrice: 89.99, Active: true},
		{Ordinal: 3, LowerBoundKwh: 250, UpperBoundKwh: 0, UnitPrice: 99.99, Active: true},
	}
}

func TestAllocateSpansThreeTiers(t *testing.T) {
	// 23996 = 150*79.99 + 100*89.99 + 2998.5, so the first two brackets
	// fill exactly and the terminal tier absorbs 2998.5/99.99 kWh.
	result, err := Allocate(23996, residentialSchedule())
	require.NoError(t, err)

	require.Len(t, result.Breakdown, 3)

	assert.Equal(t, 1, result.Breakdown[0].TierOrdinal)
	assert.Equal(t, 150.0, result.Breakdown[0].Kwh)
	assert.Equal(t, 11998.5, result.Breakdown[0].Amount)

	assert.Equal(t, 2, result.Breakdown[1].TierOrdinal)
	assert.Equal(t, 100.0, result.Breakdown[1].Kwh)
	assert.Equal(t, 8999.0, result.Breakdown[1].Amount)

	assert.Equal(t, 3, result.Breakdown[2].TierOrdinal)
	assert.Equal(t, 29.99, result.Breakdown[2].Kwh)
	assert.Equal(t, 2998.5, result.Breakdown[2].Amount)

	assert.Equal(t, 279.99, result.TotalKwh)
	assert.Equal(t, 23996.0, result.AmountPaid)
	assert.Equal(t, 3, result.FinalTier.Ordinal)
	assert.Equal(t, 99.99, result.FinalTier.UnitPrice)
}

func TestAllocateMidFirstTier(t *testing.T) {
	result, err := Allocate(5000, residentialSchedule())
	require.NoError(t, err)

	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, 62.51, result.TotalKwh)
	assert.Equal(t, 1, result.FinalTier.Ordinal)
}

func TestAllocateSmallAmountStaysInFirstTier(t *testing.T) {
	result, err := Allocate(100, residentialSchedule())
	require.NoError(t, err)

	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, 1, result.Breakdown[0].TierOrdinal)
	assert.Equal(t, 1.25, result.TotalKwh)
	assert.Equal(t, 1, result.FinalTier.Ordinal)
}

func TestAllocateExactBracketBoundary(t *testing.T) {
	// 150 * 79.99 spends the first bracket to the kWh; nothing spills over.
	result, err := Allocate(11998.5, residentialSchedule())
	require.NoError(t, err)

	require.Len(t, result.Breakdown, 1)
	assert.Equal(t, 150.0, result.TotalKwh)
	assert.Equal(t, 1, result.FinalTier.Ordinal)
}

func TestAllocateRejectsNonPositiveAmount(t *testing.T) {
	for _, amount := range []float64{0, -10} {
		_, err := Allocate(amount, residentialSchedule())
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestAllocateEmptySchedule(t *testing.T) {
	_, err := Allocate(5000, nil)
	assert.ErrorIs(t, err, tariffdomain.ErrNoApplicableTariff)
}

func TestAllocateRejectsBrokenSchedule(t *testing.T) {
	tests := []struct {
		name  string
		tiers []tariffdomain.Tier
	}{
		{
			name: "gap between brackets",
			tiers: []tariffdomain.Tier{
				{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99},
				{Ordinal: 2, LowerBoundKwh: 200, UpperBoundKwh: 0, UnitPrice: 89.99},
			},
		},
		{
			name: "no terminal unbounded tier",
			tiers: []tariffdomain.Tier{
				{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99},
				{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 250, UnitPrice: 89.99},
			},
		},
		{
			name: "unbounded tier before the end",
			tiers: []tariffdomain.Tier{
				{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 0, UnitPrice: 79.99},
				{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 0, UnitPrice: 89.99},
			},
		},
		{
			name: "zero unit price",
			tiers: []tariffdomain.Tier{
				{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 0},
				{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 0, UnitPrice: 89.99},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Allocate(5000, tc.tiers)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tariffdomain.ErrInvalidSchedule))
		})
	}
}

func TestAllocateMonotonicity(t *testing.T) {
	tiers := residentialSchedule()
	previous := 0.0
	for _, amount := range []float64{50, 100, 1000, 11998.5, 15000, 23996, 50000} {
		result, err := Allocate(amount, tiers)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.TotalKwh, previous, "amount %v", amount)
		previous = result.TotalKwh
	}
}

func TestAllocateFinalTierMatchesBreakdown(t *testing.T) {
	for _, amount := range []float64{1, 500, 11998.5, 12000, 20997.5, 30000} {
		result, err := Allocate(amount, residentialSchedule())
		require.NoError(t, err)
		last := result.Breakdown[len(result.Breakdown)-1]
		assert.Equal(t, last.TierOrdinal, result.FinalTier.Ordinal, "amount %v", amount)
	}
}

func TestAllocateDoesNotMutateInput(t *testing.T) {
	tiers := residentialSchedule()
	// Pass the schedule in reverse to prove sorting happens on a copy.
	reversed := []tariffdomain.Tier{tiers[2], tiers[1], tiers[0]}

	result, err := Allocate(23996, reversed)
	require.NoError(t, err)
	assert.Equal(t, 279.99, result.TotalKwh)

	assert.Equal(t, 3, reversed[0].Ordinal)
	assert.Equal(t, 2, reversed[1].Ordinal)
	assert.Equal(t, 1, reversed[2].Ordinal)
}

func TestAllocateRepeatedCallsAreDeterministic(t *testing.T) {
	first, err := Allocate(23996, residentialSchedule())
	require.NoError(t, err)
	second, err := Allocate(23996, residentialSchedule())
	require.NoError(t, err)

	assert.Equal(t, first.TotalKwh, second.TotalKwh)
	assert.Equal(t, first.Breakdown, second.Breakdown)
}
