// Package trend derives period-over-period comparisons for the dashboard's
// date filters. Previous periods for month, quarter, and year filters use
// fixed 30/90/365 day offsets rather than calendar arithmetic; the offsets
// are part of the contract and pinned by tests.
package trend

import (
	"math"
	"time"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// FilterMode is the date filter that produced the current collection.
type FilterMode string

const (
	FilterToday   FilterMode = "today"
	FilterWeek    FilterMode = "week"
	FilterMonth   FilterMode = "month"
	FilterQuarter FilterMode = "quarter"
	FilterYear    FilterMode = "year"
	FilterAll     FilterMode = "all"
	FilterCustom  FilterMode = "custom"
)

// Period is a half-open time window [Start, End).
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// CurrentPeriod returns the window the filter mode selects, ending at now.
// ok is false for modes with no time window (all, custom).
func CurrentPeriod(mode FilterMode, now time.Time) (Period, bool) {
	switch mode {
	case FilterToday:
		start := midnight(now)
		return Period{Start: start, End: start.AddDate(0, 0, 1)}, true
	case FilterWeek:
		start := startOfWeek(now)
		return Period{Start: start, End: start.AddDate(0, 0, 7)}, true
	case FilterMonth:
		return Period{Start: now.AddDate(0, 0, -30), End: now}, true
	case FilterQuarter:
		return Period{Start: now.AddDate(0, 0, -90), End: now}, true
	case FilterYear:
		return Period{Start: now.AddDate(0, 0, -365), End: now}, true
	}
	return Period{}, false
}

// PreviousPeriod returns the window immediately preceding the filter's
// current window. ok is false for modes that fall back to the synthetic
// baseline.
func PreviousPeriod(mode FilterMode, now time.Time) (Period, bool) {
	switch mode {
	case FilterToday:
		start := midnight(now).AddDate(0, 0, -1)
		return Period{Start: start, End: start.AddDate(0, 0, 1)}, true
	case FilterWeek:
		monday := startOfWeek(now)
		return Period{Start: monday.AddDate(0, 0, -7), End: monday}, true
	case FilterMonth:
		return Period{Start: now.AddDate(0, 0, -60), End: now.AddDate(0, 0, -30)}, true
	case FilterQuarter:
		return Period{Start: now.AddDate(0, 0, -180), End: now.AddDate(0, 0, -90)}, true
	case FilterYear:
		return Period{Start: now.AddDate(0, 0, -730), End: now.AddDate(0, 0, -365)}, true
	}
	return Period{}, false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday 00:00 of t's week.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return midnight(t).AddDate(0, 0, -offset)
}

// PercentChange returns the rounded percentage delta from previous to
// current. A zero previous maps to 100 when current is positive and 0
// otherwise, so every metric gets a defined sign convention.
func PercentChange(current, previous float64) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(100 * (current - previous) / previous))
}

// Metric pairs a value with its period-over-period delta.
type Metric struct {
	Value        float64 `json:"value"`
	TrendPercent int     `json:"trendPercent"`
}

// Sample is one period's slice of the entity collections.
type Sample struct {
	Deals      []model.Deal
	Activities []model.Activity
}

// SyntheticBaseline builds the fallback "previous" sample for filters with no
// derivable prior window: the first 90% of each collection by insertion
// order. An approximation, not a historical comparison.
func SyntheticBaseline(s Sample) Sample {
	return Sample{
		Deals:      s.Deals[:len(s.Deals)*9/10],
		Activities: s.Activities[:len(s.Activities)*9/10],
	}
}

// Comparison is the structured delta bundle for one filter window.
type Comparison struct {
	Metrics        map[string]Metric               `json:"metrics"`
	ByActivityType map[model.ActivityType]Metric   `json:"byActivityType"`
	ByTaskStatus   map[model.ActivityStatus]Metric `json:"byTaskStatus"`
}

// Compare computes the metric bundle for current against previous using the
// same delta formula everywhere. Category breakdowns cover the current
// sample's keys only: a category that existed solely in the previous period
// is omitted rather than reported as a -100% row, since the dashboard renders
// deltas against the categories it is currently showing.
func Compare(current, previous Sample, won, lost model.StageSet) Comparison {
	c := Comparison{
		Metrics:        make(map[string]Metric),
		ByActivityType: make(map[model.ActivityType]Metric),
		ByTaskStatus:   make(map[model.ActivityStatus]Metric),
	}

	curVolume := volume(current.Deals)
	prevVolume := volume(previous.Deals)
	c.Metrics["volume"] = Metric{Value: curVolume, TrendPercent: PercentChange(curVolume, prevVolume)}

	curCount := float64(len(current.Deals))
	prevCount := float64(len(previous.Deals))
	c.Metrics["dealCount"] = Metric{Value: curCount, TrendPercent: PercentChange(curCount, prevCount)}

	curWin := winRate(current.Deals, won, lost)
	prevWin := winRate(previous.Deals, won, lost)
	c.Metrics["winRate"] = Metric{Value: curWin, TrendPercent: PercentChange(curWin, prevWin)}

	curActs := float64(len(current.Activities))
	prevActs := float64(len(previous.Activities))
	c.Metrics["activityCount"] = Metric{Value: curActs, TrendPercent: PercentChange(curActs, prevActs)}

	curByType := countByType(current.Activities)
	prevByType := countByType(previous.Activities)
	for typ, n := range curByType {
		c.ByActivityType[typ] = Metric{Value: float64(n), TrendPercent: PercentChange(float64(n), float64(prevByType[typ]))}
	}

	curByStatus := countByStatus(current.Activities)
	prevByStatus := countByStatus(previous.Activities)
	for st, n := range curByStatus {
		c.ByTaskStatus[st] = Metric{Value: float64(n), TrendPercent: PercentChange(float64(n), float64(prevByStatus[st]))}
	}

	return c
}

func volume(deals []model.Deal) float64 {
	total := 0.0
	for _, d := range deals {
		total += d.Value
	}
	return total
}

// winRate is won deals over closed deals as a percentage, 0 when nothing has
// closed yet.
func winRate(deals []model.Deal, won, lost model.StageSet) float64 {
	w, closed := 0, 0
	for _, d := range deals {
		switch {
		case won.Contains(d.Stage):
			w++
			closed++
		case lost.Contains(d.Stage):
			closed++
		}
	}
	if closed == 0 {
		return 0
	}
	return 100 * float64(w) / float64(closed)
}

func countByType(activities []model.Activity) map[model.ActivityType]int {
	out := make(map[model.ActivityType]int)
	for _, a := range activities {
		out[a.Type]++
	}
	return out
}

func countByStatus(activities []model.Activity) map[model.ActivityStatus]int {
	out := make(map[model.ActivityStatus]int)
	for _, a := range activities {
		if a.Status == "" {
			continue
		}
		out[a.Status]++
	}
	return out
}
