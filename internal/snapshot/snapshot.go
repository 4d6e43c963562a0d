// Package snapshot materializes an immutable view of all entity collections
// and derives the dashboard metric bundle from it. Consumers hold a snapshot
// value and query it on demand; a refresh produces a new snapshot rather than
// mutating shared state.
package snapshot

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/sales-dashboard/internal/analytics"
	"github.com/sells-group/sales-dashboard/internal/leaderboard"
	"github.com/sells-group/sales-dashboard/internal/model"
	"github.com/sells-group/sales-dashboard/internal/seed"
	"github.com/sells-group/sales-dashboard/internal/store"
)

// Snapshot is one consistent view of the entity collections.
type Snapshot struct {
	TakenAt    time.Time
	Users      []model.User
	Deals      []model.Deal
	Activities []model.Activity
	Quotes     []model.Quote
	Orders     []model.Order
	Contracts  []model.Contract
	Streaks    leaderboard.StaticStreaks
}

// FromDataset wraps generated collections into a snapshot.
func FromDataset(ds seed.Dataset, now time.Time) *Snapshot {
	return &Snapshot{
		TakenAt:    now,
		Users:      ds.Users,
		Deals:      ds.Deals,
		Activities: ds.Activities,
		Quotes:     ds.Quotes,
		Orders:     ds.Orders,
		Contracts:  ds.Contracts,
		Streaks:    leaderboard.StaticStreaks(ds.Streaks),
	}
}

// Load assembles a snapshot: stored opportunities and the generated fallback
// collections are fetched concurrently, then merged. A failed store fetch
// degrades to the fallback's deals with a warning so downstream aggregation
// always has a defined input.
func Load(ctx context.Context, st store.Store, gen *seed.Generator, now time.Time) *Snapshot {
	var (
		ds     seed.Dataset
		stored []model.Deal
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ds = gen.Generate()
		return nil
	})
	if st != nil {
		g.Go(func() error {
			deals, err := st.ListOpportunities(ctx, store.ListFilter{})
			if err != nil {
				zap.L().Warn("snapshot: opportunity fetch failed, serving fallback", zap.Error(err))
				return nil
			}
			stored = deals
			return nil
		})
	}
	_ = g.Wait()

	snap := FromDataset(ds, now)
	if len(stored) > 0 {
		snap.Deals = stored
	}
	return snap
}

// Metrics is the derived KPI bundle. Recomputed per snapshot, never stored.
type Metrics struct {
	TotalPipelineValue  float64             `json:"totalPipelineValue"`
	StalledDeals        int                 `json:"stalledDeals"`
	Leakage             map[model.Stage]int `json:"leakageByStage"`
	ExecutionConfidence int                 `json:"executionConfidence"`
	TopPerformers       []leaderboard.Entry `json:"topPerformers"`
}

// MetricsOptions tunes the derived bundle. Zero values take the defaults.
type MetricsOptions struct {
	StalledThresholdDays int
	ActivityWindow       time.Duration
	TopPerformers        int
}

// Metrics derives the dashboard KPI bundle from the snapshot.
func (s *Snapshot) Metrics(opts MetricsOptions) Metrics {
	if opts.StalledThresholdDays <= 0 {
		opts.StalledThresholdDays = analytics.DefaultStalledThresholdDays
	}
	if opts.ActivityWindow <= 0 {
		opts.ActivityWindow = analytics.DefaultActivityWindow
	}
	if opts.TopPerformers <= 0 {
		opts.TopPerformers = 10
	}

	closed := model.ClosedStages()
	recent := analytics.RecentActivityPredicate(s.Activities, opts.ActivityWindow, s.TakenAt)

	return Metrics{
		TotalPipelineValue:  analytics.TotalPipelineValue(s.Deals),
		StalledDeals:        len(analytics.StalledDeals(s.Deals, closed, opts.StalledThresholdDays)),
		Leakage:             analytics.LeakageByStage(s.Deals, model.ClosedLostStages()),
		ExecutionConfidence: analytics.ExecutionConfidence(s.Deals, closed, recent),
		TopPerformers:       leaderboard.Gamified(s.Users, s.Deals, model.ClosedWonStages(), s.Streaks, opts.TopPerformers),
	}
}

// FindContract looks up a contract by ID.
func (s *Snapshot) FindContract(id string) (model.Contract, bool) {
	for _, c := range s.Contracts {
		if c.ID == id {
			return c, true
		}
	}
	return model.Contract{}, false
}
