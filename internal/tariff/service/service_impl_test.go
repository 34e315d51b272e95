package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sunugrid/voltara/internal/clock"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
	tariffrepository "github.com/sunugrid/voltara/internal/tariff/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTariff(t *testing.T) tariffdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tariffdomain.Tier{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)),
		Repo:  tariffrepository.Provide(),
	})
}

func seedDefaultTiers(t *testing.T, svc tariffdomain.Service) {
	t.Helper()

	ctx := context.Background()
	for _, req := range []tariffdomain.CreateRequest{
		{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99},
		{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 250, UnitPrice: 89.99},
		{Ordinal: 3, LowerBoundKwh: 250, UpperBoundKwh: 0, UnitPrice: 99.99},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
}

func TestActiveSchedule(t *testing.T) {
	svc := setupTariff(t)
	seedDefaultTiers(t, svc)

	tiers, err := svc.ActiveSchedule(context.Background())
	require.NoError(t, err)
	require.Len(t, tiers, 3)
	assert.Equal(t, 1, tiers[0].Ordinal)
	assert.Equal(t, 3, tiers[2].Ordinal)
}

func TestActiveScheduleExcludesInactive(t *testing.T) {
	svc := setupTariff(t)
	seedDefaultTiers(t, svc)

	// Deactivating the terminal tier leaves a bounded tail, which is no
	// longer a valid partition.
	inactive := false
	_, err := svc.Update(context.Background(), tariffdomain.UpdateRequest{Ordinal: 3, Active: &inactive})
	require.NoError(t, err)

	_, err = svc.ActiveSchedule(context.Background())
	assert.ErrorIs(t, err, tariffdomain.ErrInvalidSchedule)
}

func TestActiveScheduleEmpty(t *testing.T) {
	svc := setupTariff(t)

	_, err := svc.ActiveSchedule(context.Background())
	assert.ErrorIs(t, err, tariffdomain.ErrNoApplicableTariff)
}

func TestCreateValidatesFields(t *testing.T) {
	svc := setupTariff(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, tariffdomain.CreateRequest{Ordinal: 0, UnitPrice: 10})
	assert.ErrorIs(t, err, tariffdomain.ErrInvalidOrdinal)

	_, err = svc.Create(ctx, tariffdomain.CreateRequest{Ordinal: 1, UnitPrice: 0})
	assert.ErrorIs(t, err, tariffdomain.ErrInvalidUnitPrice)

	_, err = svc.Create(ctx, tariffdomain.CreateRequest{Ordinal: 1, UnitPrice: 10, LowerBoundKwh: 100, UpperBoundKwh: 50})
	assert.ErrorIs(t, err, tariffdomain.ErrInvalidBounds)
}

func TestCreateRejectsDuplicateOrdinal(t *testing.T) {
	svc := setupTariff(t)
	ctx := context.Background()

	req := tariffdomain.CreateRequest{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 0, UnitPrice: 79.99}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, tariffdomain.ErrDuplicateOrdinal)
}

func TestUpdateTier(t *testing.T) {
	svc := setupTariff(t)
	seedDefaultTiers(t, svc)
	ctx := context.Background()

	price := 85.0
	resp, err := svc.Update(ctx, tariffdomain.UpdateRequest{Ordinal: 2, UnitPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, 85.0, resp.UnitPrice)

	got, err := svc.GetByOrdinal(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 85.0, got.UnitPrice)

	_, err = svc.Update(ctx, tariffdomain.UpdateRequest{Ordinal: 42, UnitPrice: &price})
	assert.ErrorIs(t, err, tariffdomain.ErrNotFound)
}
