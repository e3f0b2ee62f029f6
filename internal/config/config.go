package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	DBSource        string        `mapstructure:"DB_SOURCE"`
	DBMaxConns      int32         `mapstructure:"DB_MAX_CONNS"`
	StoreDriver     string        `mapstructure:"STORE_DRIVER"`
	ServerAddress   string        `mapstructure:"SERVER_ADDRESS"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	LogFormat       string        `mapstructure:"LOG_FORMAT"`
	GinMode         string        `mapstructure:"GIN_MODE"`
}

// LoadConfig reads app.env from path, then lets environment variables override it.
// A .env file in the working directory, if present, is loaded into the environment first.
func LoadConfig(path string) (config Config, err error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("DB_SOURCE", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("GIN_MODE", "release")

	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: read %s/app.env: %w", path, err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: unmarshal: %w", err)
	}

	config.StoreDriver = strings.ToLower(config.StoreDriver)
	err = config.Validate()
	return config, err
}

// Validate checks that required fields are present and sane.
func (c Config) Validate() error {
	var errs []string

	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBSource == "" {
			errs = append(errs, "DB_SOURCE is required for the postgres store")
		}
		if c.DBMaxConns <= 0 {
			errs = append(errs, fmt.Sprintf("DB_MAX_CONNS must be positive, got %d", c.DBMaxConns))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Sprintf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMemory, c.StoreDriver))
	}
	if c.ServerAddress == "" {
		errs = append(errs, "SERVER_ADDRESS is required")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SHUTDOWN_TIMEOUT must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
