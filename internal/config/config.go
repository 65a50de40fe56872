package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/dig"

	"github.com/davidbz/medcost/internal/domain"
	"github.com/davidbz/medcost/internal/observability"
)

// Config represents the service configuration.
type Config struct {
	Server ServerConfig
	CORS   CORSConfig
	Costs  CostsConfig
	Log    observability.LogConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// CostsConfig contains the default cost of each category and the optional
// directory overriding the bundled cost tables. The defaults have no
// fallback: the service refuses to start without them.
type CostsConfig struct {
	DefaultProcedureCost    decimal.Decimal `env:"COSTS_DEFAULT_PROCEDURE_COST,required,notEmpty"`
	DefaultMedicationCost   decimal.Decimal `env:"COSTS_DEFAULT_MEDICATION_COST,required,notEmpty"`
	DefaultEncounterCost    decimal.Decimal `env:"COSTS_DEFAULT_ENCOUNTER_COST,required,notEmpty"`
	DefaultImmunizationCost decimal.Decimal `env:"COSTS_DEFAULT_IMMUNIZATION_COST,required,notEmpty"`
	ResourceDir             string          `env:"COSTS_RESOURCE_DIR"`
}

// Defaults returns the default costs for the domain layer.
func (c *CostsConfig) Defaults() domain.Defaults {
	return domain.Defaults{
		Procedure:    c.DefaultProcedureCost,
		Medication:   c.DefaultMedicationCost,
		Encounter:    c.DefaultEncounterCost,
		Immunization: c.DefaultImmunizationCost,
	}
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*CostsConfig
	*observability.LogConfig
}

// Load loads environment files and parses configuration.
func Load() (*Config, error) {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Costs.Defaults().Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Costs,
		&cfg.Log,
	}
}
