package analytics

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sales-dashboard/internal/model"
)

func stageKey(d model.Deal) string   { return string(d.Stage) }
func dealValue(d model.Deal) float64 { return d.Value }
func sourceKey(d model.Deal) string  { return string(d.Source) }

func TestGroupBy_ByStage(t *testing.T) {
	deals := []model.Deal{
		{ID: "1", Stage: "Lead", Value: 100},
		{ID: "2", Stage: "Lead", Value: 200},
		{ID: "3", Stage: "Kazanıldı", Value: 300},
	}

	groups, err := GroupBy(deals, stageKey, dealValue, GroupOptions{SortBy: SortBySum})
	require.NoError(t, err)
	require.Len(t, groups, 2)

	byKey := map[string]Group{}
	for _, g := range groups {
		byKey[g.Key] = g
	}
	assert.Equal(t, 300.0, byKey["Lead"].Sum)
	assert.Equal(t, 300.0, byKey["Kazanıldı"].Sum)
	assert.Equal(t, 2, byKey["Lead"].Count)
	assert.Equal(t, 600.0, TotalPipelineValue(deals))
}

func TestGroupBy_ValueConservation(t *testing.T) {
	deals := []model.Deal{
		{Stage: "Lead", Value: 120.5},
		{Stage: "Proposal", Value: 300},
		{Stage: "", Value: 79.5},
		{Stage: "Lead", Value: 500},
	}
	groups, err := GroupBy(deals, stageKey, dealValue, GroupOptions{})
	require.NoError(t, err)

	var grouped float64
	for _, g := range groups {
		grouped += g.Sum
	}
	assert.Equal(t, TotalPipelineValue(deals), grouped, "no value dropped or double-counted")
}

func TestGroupBy_EmptyKeyGoesToUnknown(t *testing.T) {
	deals := []model.Deal{{Stage: "", Value: 50}}
	groups, err := GroupBy(deals, stageKey, dealValue, GroupOptions{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, UnknownKey, groups[0].Key)
}

func TestGroupBy_DisallowUnknownAllEmpty(t *testing.T) {
	deals := []model.Deal{{Value: 50}, {Value: 60}}
	_, err := GroupBy(deals, sourceKey, dealValue, GroupOptions{DisallowUnknown: true})
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrInvalidGroupingKey))
}

func TestGroupBy_DisallowUnknownMixedKeysSkips(t *testing.T) {
	deals := []model.Deal{
		{Source: "referral", Value: 50},
		{Value: 60},
	}
	groups, err := GroupBy(deals, sourceKey, dealValue, GroupOptions{DisallowUnknown: true})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "referral", groups[0].Key)
}

func TestGroupBy_EmptyInput(t *testing.T) {
	groups, err := GroupBy(nil, stageKey, dealValue, GroupOptions{DisallowUnknown: true})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestGroupBy_TopNAndStableTies(t *testing.T) {
	deals := []model.Deal{
		{CustomerName: "A", Value: 100},
		{CustomerName: "B", Value: 100},
		{CustomerName: "C", Value: 500},
		{CustomerName: "D", Value: 100},
	}
	groups, err := GroupBy(deals,
		func(d model.Deal) string { return d.CustomerName },
		dealValue,
		GroupOptions{SortBy: SortBySum, TopN: 3},
	)
	require.NoError(t, err)
	require.Len(t, groups, 3)
	assert.Equal(t, "C", groups[0].Key)
	// Ties keep first-encounter order.
	assert.Equal(t, "A", groups[1].Key)
	assert.Equal(t, "B", groups[2].Key)
}

func TestGroupBy_SortByCount(t *testing.T) {
	deals := []model.Deal{
		{Source: "website", Value: 1},
		{Source: "referral", Value: 1000},
		{Source: "website", Value: 1},
	}
	groups, err := GroupBy(deals, sourceKey, dealValue, GroupOptions{SortBy: SortByCount})
	require.NoError(t, err)
	assert.Equal(t, "website", groups[0].Key)
	assert.Equal(t, 2, groups[0].Count)
}
