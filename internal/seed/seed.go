package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	meterdomain "github.com/sunugrid/voltara/internal/meter/domain"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
	"gorm.io/gorm"
)

const demoMeterIdentifier = "MTR00001"

// EnsureDefaultTariffs installs the standard residential schedule when no
// tiers exist yet. An existing schedule, active or not, is left untouched.
func EnsureDefaultTariffs(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&tariffdomain.Tier{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		tiers := []tariffdomain.Tier{
			{Ordinal: 1, LowerBoundKwh: 0, UpperBoundKwh: 150, UnitPrice: 79.99, Description: "Social bracket"},
			{Ordinal: 2, LowerBoundKwh: 150, UpperBoundKwh: 250, UnitPrice: 89.99, Description: "Standard bracket"},
			{Ordinal: 3, LowerBoundKwh: 250, UpperBoundKwh: 0, UnitPrice: 99.99, Description: "Peak bracket"},
		}
		for i := range tiers {
			tiers[i].ID = node.Generate()
			tiers[i].Active = true
			tiers[i].CreatedAt = now
			tiers[i].UpdatedAt = now
		}
		return tx.Create(&tiers).Error
	})
}

// EnsureDemoMeter seeds a demo client and an active meter for local
// development. Enabled with SEED_DEMO_DATA.
func EnsureDemoMeter(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&meterdomain.Account{}).
			Where("identifier = ?", demoMeterIdentifier).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		now := time.Now().UTC()
		client := meterdomain.Client{
			ID:        node.Generate(),
			FirstName: "Awa",
			LastName:  "Diop",
			Phone:     "+221770000001",
			Address:   "Dakar",
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&client).Error; err != nil {
			return err
		}

		account := meterdomain.Account{
			ID:         node.Generate(),
			Identifier: demoMeterIdentifier,
			ClientID:   client.ID,
			Status:     meterdomain.StatusActive,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return tx.Create(&account).Error
	})
}
