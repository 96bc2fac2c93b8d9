// Package config loads the application settings from the environment.
//
// Variables are read with the PATIENTS_ prefix, with a double underscore
// separating nested keys:
//
//	PATIENTS_SERVER__PORT=8080          -> server.port
//	PATIENTS_DATABASE__MAX_CONNS=20     -> database.max_conns
//
// A `.env` file in the working directory is loaded first when present. The
// plain DATABASE_URL variable is honored as well, with PATIENTS_DATABASE__URL
// taking precedence when both are set.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix   = "PATIENTS_"
	serviceName = "patient-records"
)

type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig holds HTTP server settings. Timeouts are in seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// RateLimit is the sustained number of requests per second allowed per client IP.
	RateLimit float64 `koanf:"rate_limit" validate:"gt=0"`
}

// DatabaseConfig holds the connection string and pool tuning. Durations are in seconds.
type DatabaseConfig struct {
	URL               string `koanf:"url" validate:"required"`
	MaxConns          int32  `koanf:"max_conns" validate:"min=1"`
	MinConns          int32  `koanf:"min_conns" validate:"min=0,ltefield=MaxConns"`
	ConnMaxLifetime   int    `koanf:"conn_max_lifetime" validate:"min=0"`
	ConnMaxIdleTime   int    `koanf:"conn_max_idle_time" validate:"min=0"`
	HealthCheckPeriod int    `koanf:"health_check_period" validate:"min=1"`
}

// DefaultConfig returns the settings used for every key the environment leaves unset.
func DefaultConfig() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        30,
			WriteTimeout:       30,
			IdleTimeout:        60,
			CORSAllowedOrigins: []string{"*"},
			RateLimit:          20,
		},
		Database: DatabaseConfig{
			MaxConns:          10,
			MinConns:          0,
			ConnMaxLifetime:   3600,
			ConnMaxIdleTime:   300,
			HealthCheckPeriod: 30,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// LoadConfig reads the environment on top of DefaultConfig and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if url, ok := os.LookupEnv("DATABASE_URL"); ok {
		if err := k.Set("database.url", url); err != nil {
			return nil, fmt.Errorf("could not load DATABASE_URL: %w", err)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := DefaultConfig()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	mainConfig.Database.URL = NormalizeDatabaseURL(mainConfig.Database.URL)

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = serviceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// NormalizeDatabaseURL strips a driver suffix such as "+psycopg2" from the
// URL scheme so connection strings shared with other tooling still parse.
func NormalizeDatabaseURL(url string) string {
	scheme, rest, found := strings.Cut(url, "://")
	if !found {
		return url
	}

	if base, _, hasDriver := strings.Cut(scheme, "+"); hasDriver {
		scheme = base
	}

	return scheme + "://" + rest
}
