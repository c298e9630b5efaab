package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config represents the application configuration structure
type Config struct {
	Environment string `default:"development"`

	ListenAddress string `default:":8080" split_words:"true"`
	AllowedOrigin string `default:"*" split_words:"true"`

	StorageDriver string `default:"postgres" split_words:"true"`
	PostgresDSN   string `split_words:"true"`

	ActivityFlushInterval  time.Duration `default:"1m" split_words:"true"`
	ReferenceCacheLifetime time.Duration `default:"10m" split_words:"true"`
}

// IsEnvProduction returns whether the application runs in production mode
func (config *Config) IsEnvProduction() bool {
	return strings.EqualFold(config.Environment, "production")
}

// Validate checks the combination of configured values
func (config *Config) Validate() error {
	switch config.StorageDriver {
	case StorageDriverPostgres:
		if config.PostgresDSN == "" {
			return fmt.Errorf("the %s storage driver requires RV_POSTGRES_DSN to be set", StorageDriverPostgres)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", config.StorageDriver)
	}
	if config.ActivityFlushInterval <= 0 {
		return fmt.Errorf("the activity flush interval must be positive")
	}
	return nil
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	// Load a new configuration structure using environment variables
	config := new(Config)
	if err := envconfig.Process("rv", config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
