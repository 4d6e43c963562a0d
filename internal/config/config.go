package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Seed      SeedConfig      `yaml:"seed" mapstructure:"seed"`
	Risk      RiskConfig      `yaml:"risk" mapstructure:"risk"`
	Dashboard DashboardConfig `yaml:"dashboard" mapstructure:"dashboard"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the REST API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	AnalyzeRate    float64  `yaml:"analyze_rate" mapstructure:"analyze_rate"`
	AnalyzeBurst   int      `yaml:"analyze_burst" mapstructure:"analyze_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// SeedConfig configures synthetic data generation.
type SeedConfig struct {
	Profile string `yaml:"profile" mapstructure:"profile"`
	Seed    int64  `yaml:"seed" mapstructure:"seed"`
}

// RiskConfig configures the risk classifier thresholds.
type RiskConfig struct {
	HomeCurrency      string `yaml:"home_currency" mapstructure:"home_currency"`
	AnalysisLatencyMS int    `yaml:"analysis_latency_ms" mapstructure:"analysis_latency_ms"`
}

// DashboardConfig configures the derived metric thresholds.
type DashboardConfig struct {
	StalledThresholdDays int `yaml:"stalled_threshold_days" mapstructure:"stalled_threshold_days"`
	ActivityWindowDays   int `yaml:"activity_window_days" mapstructure:"activity_window_days"`
	RenewalHorizonDays   int `yaml:"renewal_horizon_days" mapstructure:"renewal_horizon_days"`
	TopPerformers        int `yaml:"top_performers" mapstructure:"top_performers"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("DASHBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "dashboard.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.analyze_rate", 1.0)
	v.SetDefault("server.analyze_burst", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("seed.seed", 42)
	v.SetDefault("risk.home_currency", "TRY")
	v.SetDefault("risk.analysis_latency_ms", 1200)
	v.SetDefault("dashboard.stalled_threshold_days", 30)
	v.SetDefault("dashboard.activity_window_days", 14)
	v.SetDefault("dashboard.renewal_horizon_days", 90)
	v.SetDefault("dashboard.top_performers", 10)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
