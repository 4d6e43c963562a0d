package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/sales-dashboard/internal/model"
)

func TestExecutionConfidence(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	activities := []model.Activity{
		{DealID: "a", Timestamp: now.AddDate(0, 0, -2)},
		{DealID: "b", Timestamp: now.AddDate(0, 0, -20)}, // outside window
		{DealID: "c", Timestamp: now.AddDate(0, 0, -13)},
		{DealID: "won", Timestamp: now.AddDate(0, 0, -1)},
	}
	deals := []model.Deal{
		{ID: "a", Stage: model.StageLead},
		{ID: "b", Stage: model.StageProposal},
		{ID: "c", Stage: model.StageNegotiation},
		{ID: "d", Stage: model.StageContact},
		{ID: "won", Stage: model.StageWonTR}, // closed, excluded from denominator
	}

	recent := RecentActivityPredicate(activities, DefaultActivityWindow, now)
	// 2 of 4 open deals touched.
	assert.Equal(t, 50, ExecutionConfidence(deals, model.ClosedStages(), recent))
}

func TestExecutionConfidence_Rounding(t *testing.T) {
	deals := []model.Deal{
		{ID: "a", Stage: model.StageLead},
		{ID: "b", Stage: model.StageLead},
		{ID: "c", Stage: model.StageLead},
	}
	touched := func(d model.Deal) bool { return d.ID == "a" }
	// 1/3 = 33.33, rounds to 33.
	assert.Equal(t, 33, ExecutionConfidence(deals, model.ClosedStages(), touched))
}

func TestExecutionConfidence_NoOpenDeals(t *testing.T) {
	deals := []model.Deal{{ID: "a", Stage: model.StageWon}}
	always := func(model.Deal) bool { return true }
	assert.Equal(t, 0, ExecutionConfidence(deals, model.ClosedStages(), always))
	assert.Equal(t, 0, ExecutionConfidence(nil, model.ClosedStages(), always))
}

func TestRecentActivityPredicate_FutureActivityIgnored(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	activities := []model.Activity{
		{DealID: "a", Timestamp: now.Add(time.Hour)},
	}
	recent := RecentActivityPredicate(activities, DefaultActivityWindow, now)
	assert.False(t, recent(model.Deal{ID: "a"}))
}
