package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sales-dashboard/internal/model"
)

func TestDistribution(t *testing.T) {
	contracts := []model.Contract{
		{Status: model.ContractActive, RiskLevel: model.RiskHigh, TotalValue: 100},
		{Status: model.ContractActive, RiskLevel: model.RiskHigh, TotalValue: 200},
		{Status: model.ContractActive, RiskLevel: model.RiskLow, TotalValue: 50},
		{Status: model.ContractTerminated, RiskLevel: model.RiskHigh, TotalValue: 9999},
	}

	out := Distribution(contracts)
	require.Len(t, out, 3)

	assert.Equal(t, model.RiskHigh, out[0].Level)
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, 300.0, out[0].TotalValue)

	// Medium renders as a zero slice rather than disappearing.
	assert.Equal(t, model.RiskMedium, out[1].Level)
	assert.Equal(t, 0, out[1].Count)

	assert.Equal(t, model.RiskLow, out[2].Level)
	assert.Equal(t, 1, out[2].Count)
}

func TestCriticalAttention(t *testing.T) {
	contracts := []model.Contract{
		{ID: "low", Status: model.ContractActive, RiskLevel: model.RiskLow, DaysToRenewal: 10, TotalValue: 999999},
		{ID: "far", Status: model.ContractActive, RiskLevel: model.RiskHigh, DaysToRenewal: 91, TotalValue: 500000},
		{ID: "a", Status: model.ContractActive, RiskLevel: model.RiskHigh, DaysToRenewal: 30, TotalValue: 100},
		{ID: "b", Status: model.ContractActive, RiskLevel: model.RiskMedium, DaysToRenewal: 60, TotalValue: 400},
		{ID: "c", Status: model.ContractActive, RiskLevel: model.RiskHigh, DaysToRenewal: 89, TotalValue: 300},
		{ID: "d", Status: model.ContractActive, RiskLevel: model.RiskHigh, DaysToRenewal: 5, TotalValue: 200},
		{ID: "e", Status: model.ContractActive, RiskLevel: model.RiskMedium, DaysToRenewal: 45, TotalValue: 150},
		{ID: "draft", Status: model.ContractDraft, RiskLevel: model.RiskHigh, DaysToRenewal: 5, TotalValue: 700},
	}

	out := CriticalAttention(contracts, 90)
	require.Len(t, out, criticalListSize)
	assert.Equal(t, []string{"b", "c", "d", "e"},
		[]string{out[0].ID, out[1].ID, out[2].ID, out[3].ID})
}

func TestCriticalAttention_Empty(t *testing.T) {
	assert.Empty(t, CriticalAttention(nil, 90))
}
