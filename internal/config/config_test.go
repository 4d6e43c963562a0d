package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "dashboard.db", cfg.Store.DatabaseURL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 1.0, cfg.Server.AnalyzeRate)
	assert.Equal(t, 3, cfg.Server.AnalyzeBurst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, int64(42), cfg.Seed.Seed)
	assert.Equal(t, "TRY", cfg.Risk.HomeCurrency)
	assert.Equal(t, 1200, cfg.Risk.AnalysisLatencyMS)
	assert.Equal(t, 30, cfg.Dashboard.StalledThresholdDays)
	assert.Equal(t, 14, cfg.Dashboard.ActivityWindowDays)
	assert.Equal(t, 90, cfg.Dashboard.RenewalHorizonDays)
	assert.Equal(t, 10, cfg.Dashboard.TopPerformers)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DASHBOARD_SERVER_PORT", "9090")
	t.Setenv("DASHBOARD_RISK_HOME_CURRENCY", "EUR")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "EUR", cfg.Risk.HomeCurrency)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
}

func TestInitLogger_BadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouting", Format: "json"})
	require.Error(t, err)
}
