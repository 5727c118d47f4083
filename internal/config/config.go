package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// SeedAccount is one directory entry supplied by configuration.
// Balance is in minor units (cents).
type SeedAccount struct {
	ID      string `mapstructure:"id" validate:"required"`
	PIN     string `mapstructure:"pin" validate:"required,len=4"`
	Balance int64  `mapstructure:"balance" validate:"gte=0"`
}

// Config carries everything the ATM needs at startup.
type Config struct {
	BankName       string        `mapstructure:"bank_name" validate:"required"`
	MaxPINAttempts int           `mapstructure:"max_pin_attempts" validate:"gte=1"`
	Accounts       []SeedAccount `mapstructure:"accounts" validate:"min=1,dive"`
}

// DefaultAccounts reproduces the stock mock fixtures used when no accounts
// are configured.
func DefaultAccounts() []SeedAccount {
	return []SeedAccount{
		{ID: "user123", PIN: "1234", Balance: 100_000},
		{ID: "user456", PIN: "abcd", Balance: 200_000},
	}
}

// Load reads configuration from path, or from ./atm.yaml when path is
// empty, with ATM_* environment variables overriding scalar settings.
// Missing files fall back to the built-in mock fixtures.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("bank_name", "MockBank")
	v.SetDefault("max_pin_attempts", 3)

	v.SetEnvPrefix("ATM")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("atm")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if len(cfg.Accounts) == 0 {
		cfg.Accounts = DefaultAccounts()
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
