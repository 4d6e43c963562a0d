package analytics

import (
	"math"
	"sort"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// DefaultStalledThresholdDays is the aging beyond which an open deal counts
// as stalled.
const DefaultStalledThresholdDays = 30

// StageDuration is the average age of open deals sitting in one stage.
type StageDuration struct {
	Stage       model.Stage `json:"stage"`
	AverageDays int         `json:"averageDays"`
	Count       int         `json:"count"`
}

// AverageAgeByStage computes the mean aging per open stage, slowest first.
// Deals in terminal stages are excluded entirely, and stages with no members
// are absent from the output rather than present with a zero denominator.
func AverageAgeByStage(deals []model.Deal, closed model.StageSet) []StageDuration {
	sums := make(map[model.Stage]int)
	counts := make(map[model.Stage]int)
	var order []model.Stage

	for _, d := range deals {
		if closed.Contains(d.Stage) {
			continue
		}
		if _, seen := counts[d.Stage]; !seen {
			order = append(order, d.Stage)
		}
		sums[d.Stage] += d.AgingDays
		counts[d.Stage]++
	}

	out := make([]StageDuration, 0, len(order))
	for _, st := range order {
		out = append(out, StageDuration{
			Stage:       st,
			AverageDays: int(math.Round(float64(sums[st]) / float64(counts[st]))),
			Count:       counts[st],
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].AverageDays > out[b].AverageDays
	})
	return out
}

// TotalPipelineValue sums the value of every deal in the collection.
func TotalPipelineValue(deals []model.Deal) float64 {
	total := 0.0
	for _, d := range deals {
		total += d.Value
	}
	return total
}

// StalledDeals returns open deals whose aging exceeds thresholdDays.
func StalledDeals(deals []model.Deal, closed model.StageSet, thresholdDays int) []model.Deal {
	var out []model.Deal
	for _, d := range deals {
		if closed.Contains(d.Stage) {
			continue
		}
		if d.AgingDays > thresholdDays {
			out = append(out, d)
		}
	}
	return out
}

// SortedStages returns the map's stages in name order so callers render or
// scan leakage buckets deterministically.
func SortedStages(m map[model.Stage]int) []model.Stage {
	stages := make([]model.Stage, 0, len(m))
	for s := range m {
		stages = append(stages, s)
	}
	sort.Slice(stages, func(a, b int) bool { return stages[a] < stages[b] })
	return stages
}

// LeakageByStage counts lost deals per the stage they fell out of. Lost deals
// with no recorded previous stage land under UnknownKey.
func LeakageByStage(deals []model.Deal, lost model.StageSet) map[model.Stage]int {
	leakage := make(map[model.Stage]int)
	for _, d := range deals {
		if !lost.Contains(d.Stage) {
			continue
		}
		from := d.PreviousStage
		if from == "" {
			from = UnknownKey
		}
		leakage[from]++
	}
	return leakage
}
