package analytics

import (
	"math"
	"time"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// DefaultActivityWindow is the trailing window an activity must fall in to
// count as a qualifying touch.
const DefaultActivityWindow = 14 * 24 * time.Hour

// RecentActivityPredicate builds a per-deal predicate reporting whether any
// activity touched the deal within the trailing window ending at now.
func RecentActivityPredicate(activities []model.Activity, window time.Duration, now time.Time) func(model.Deal) bool {
	cutoff := now.Add(-window)
	touched := make(map[string]bool, len(activities))
	for _, a := range activities {
		if a.Timestamp.After(cutoff) && !a.Timestamp.After(now) {
			touched[a.DealID] = true
		}
	}
	return func(d model.Deal) bool { return touched[d.ID] }
}

// ExecutionConfidence scores the share of open deals with a qualifying recent
// touch, as a rounded percentage. An empty open set scores 0.
func ExecutionConfidence(deals []model.Deal, closed model.StageSet, recentActivity func(model.Deal) bool) int {
	open, active := 0, 0
	for _, d := range deals {
		if closed.Contains(d.Stage) {
			continue
		}
		open++
		if recentActivity(d) {
			active++
		}
	}
	if open == 0 {
		return 0
	}
	return int(math.Round(100 * float64(active) / float64(open)))
}
