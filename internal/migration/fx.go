package migration

import (
	"github.com/sunugrid/voltara/internal/config"
	journaldomain "github.com/sunugrid/voltara/internal/journal/domain"
	meterdomain "github.com/sunugrid/voltara/internal/meter/domain"
	purchasedomain "github.com/sunugrid/voltara/internal/purchase/domain"
	"github.com/sunugrid/voltara/internal/seed"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			err := conn.AutoMigrate(
				&tariffdomain.Tier{},
				&meterdomain.Client{},
				&meterdomain.Account{},
				&purchasedomain.Transaction{},
				&journaldomain.Entry{},
			)
			if err != nil {
				return err
			}
		}

		if err := seed.EnsureDefaultTariffs(conn); err != nil {
			return err
		}
		if cfg.SeedDemoData {
			return seed.EnsureDemoMeter(conn)
		}
		return nil
	}),
)
