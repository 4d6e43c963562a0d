package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sales-dashboard/internal/risk"
	"github.com/sells-group/sales-dashboard/internal/seed"
	"github.com/sells-group/sales-dashboard/internal/snapshot"
	"github.com/sells-group/sales-dashboard/internal/store"
)

// openStore creates the configured store backend and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	case "sqlite", "":
		st, err = store.NewSQLite(cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

// seedGenerator builds the configured seed generator.
func seedGenerator(now time.Time) (*seed.Generator, error) {
	profile := seed.DefaultProfile()
	if cfg.Seed.Profile != "" {
		p, err := seed.LoadProfile(cfg.Seed.Profile)
		if err != nil {
			return nil, err
		}
		profile = p
	}
	if cfg.Seed.Seed != 0 {
		profile.Seed = cfg.Seed.Seed
	}
	return seed.New(profile, now), nil
}

// riskConfig merges the configured overrides onto the defaults.
func riskConfig() risk.Config {
	rc := risk.DefaultConfig()
	if cfg.Risk.HomeCurrency != "" {
		rc.HomeCurrency = cfg.Risk.HomeCurrency
	}
	if cfg.Risk.AnalysisLatencyMS > 0 {
		rc.AnalysisLatency = time.Duration(cfg.Risk.AnalysisLatencyMS) * time.Millisecond
	}
	return rc
}

// metricsOptions maps dashboard config onto snapshot options.
func metricsOptions() snapshot.MetricsOptions {
	return snapshot.MetricsOptions{
		StalledThresholdDays: cfg.Dashboard.StalledThresholdDays,
		ActivityWindow:       time.Duration(cfg.Dashboard.ActivityWindowDays) * 24 * time.Hour,
		TopPerformers:        cfg.Dashboard.TopPerformers,
	}
}
