package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// VendingConfig tunes the vending workflow without a redeploy.
type VendingConfig struct {
	// JournalRetentionDays bounds how long audit journal entries are kept.
	JournalRetentionDays int `mapstructure:"journalRetentionDays"`
	// StatsTopMeters is the N in the top-N meters statistics report.
	StatsTopMeters int `mapstructure:"statsTopMeters"`
	// DefaultOriginLabel is used when a purchase request carries no origin label.
	DefaultOriginLabel string `mapstructure:"defaultOriginLabel"`
}

func DefaultVendingConfig() VendingConfig {
	return VendingConfig{
		JournalRetentionDays: 90,
		StatsTopMeters:       10,
		DefaultOriginLabel:   "unknown",
	}
}

// VendingConfigHolder exposes the current VendingConfig and hot-reloads it
// when the backing file changes.
type VendingConfigHolder struct {
	current atomic.Value // holds VendingConfig
}

func NewVendingConfigHolder() (*VendingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("vending")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/voltara/config")
	v.AddConfigPath("/etc/voltara")
	v.AddConfigPath(".")

	v.SetEnvPrefix("VOLTARA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultVendingConfig()
	v.SetDefault("vending.journalRetentionDays", defaults.JournalRetentionDays)
	v.SetDefault("vending.statsTopMeters", defaults.StatsTopMeters)
	v.SetDefault("vending.defaultOriginLabel", defaults.DefaultOriginLabel)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg VendingConfig
	if err := v.UnmarshalKey("vending", &cfg); err != nil {
		return nil, err
	}
	if err := validateVendingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &VendingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated VendingConfig
		if err := v.UnmarshalKey("vending", &updated); err != nil {
			log.Printf("[vending-config] reload failed: %v", err)
			return
		}
		if err := validateVendingConfig(updated); err != nil {
			log.Printf("[vending-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[vending-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *VendingConfigHolder) Get() VendingConfig {
	if v, ok := h.current.Load().(VendingConfig); ok {
		return v
	}
	return DefaultVendingConfig()
}

func validateVendingConfig(cfg VendingConfig) error {
	if cfg.JournalRetentionDays <= 0 {
		return errors.New("vending.journalRetentionDays must be positive")
	}
	if cfg.StatsTopMeters <= 0 {
		return errors.New("vending.statsTopMeters must be positive")
	}
	return nil
}
