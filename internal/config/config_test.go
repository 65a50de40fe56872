package config_test

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/medcost/internal/config"
)

func setDefaultCosts(t *testing.T) {
	t.Helper()

	t.Setenv("COSTS_DEFAULT_PROCEDURE_COST", "500.00")
	t.Setenv("COSTS_DEFAULT_MEDICATION_COST", "255.00")
	t.Setenv("COSTS_DEFAULT_ENCOUNTER_COST", "125.00")
	t.Setenv("COSTS_DEFAULT_IMMUNIZATION_COST", "136.00")
}

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()
		setDefaultCosts(t)

		cfg, err := config.Load()

		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 30, cfg.Server.WriteTimeout)
		require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		require.Equal(t, "info", cfg.Log.Level)
		require.Equal(t, "json", cfg.Log.Format)
		require.Empty(t, cfg.Costs.ResourceDir)

		defaults := cfg.Costs.Defaults()
		require.True(t, decimal.RequireFromString("500").Equal(defaults.Procedure))
		require.True(t, decimal.RequireFromString("255").Equal(defaults.Medication))
		require.True(t, decimal.RequireFromString("125").Equal(defaults.Encounter))
		require.True(t, decimal.RequireFromString("136").Equal(defaults.Immunization))
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		setDefaultCosts(t)
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("SERVER_READ_TIMEOUT", "60")
		t.Setenv("SERVER_WRITE_TIMEOUT", "60")
		t.Setenv("COSTS_RESOURCE_DIR", "/etc/medcost")
		t.Setenv("COSTS_DEFAULT_PROCEDURE_COST", "75.25")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := config.Load()

		require.NoError(t, err)
		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, 60, cfg.Server.ReadTimeout)
		require.Equal(t, 60, cfg.Server.WriteTimeout)
		require.Equal(t, "/etc/medcost", cfg.Costs.ResourceDir)
		require.Equal(t, "debug", cfg.Log.Level)
		require.True(t, decimal.RequireFromString("75.25").Equal(cfg.Costs.DefaultProcedureCost))
	})

	t.Run("missing default cost is fatal", func(t *testing.T) {
		os.Clearenv()
		setDefaultCosts(t)
		require.NoError(t, os.Unsetenv("COSTS_DEFAULT_ENCOUNTER_COST"))

		cfg, err := config.Load()

		require.Nil(t, cfg)
		require.ErrorContains(t, err, "COSTS_DEFAULT_ENCOUNTER_COST")
	})

	t.Run("non-numeric default cost is fatal", func(t *testing.T) {
		setDefaultCosts(t)
		t.Setenv("COSTS_DEFAULT_MEDICATION_COST", "cheap")

		cfg, err := config.Load()

		require.Nil(t, cfg)
		require.ErrorContains(t, err, "DefaultMedicationCost")
	})

	t.Run("negative default cost is rejected", func(t *testing.T) {
		setDefaultCosts(t)
		t.Setenv("COSTS_DEFAULT_IMMUNIZATION_COST", "-1")

		cfg, err := config.Load()

		require.Nil(t, cfg)
		require.Error(t, err)
	})
}
