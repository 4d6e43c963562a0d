package normalize

import (
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sales-dashboard/internal/model"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestDeal_Defaults(t *testing.T) {
	d, err := Deal(DealWire{
		ID:        "deal-1",
		Title:     "Vestel - CRM Suite",
		Value:     150000.0,
		Stage:     "Lead",
		CreatedAt: "2026-08-10",
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, testNow, d.LastActivity, "missing last activity defaults to now")
	assert.Empty(t, d.Notes)
	assert.Equal(t, 20, d.AgingDays)
	assert.Equal(t, 150000.0, d.Value)
}

func TestDeal_NumericCoercion(t *testing.T) {
	d, err := Deal(DealWire{ID: "deal-2", Value: "250000", Stage: "Lead"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 250000.0, d.Value)
}

func TestDeal_MissingID(t *testing.T) {
	_, err := Deal(DealWire{Value: 100.0}, testNow)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedRecord))
}

func TestDeal_NonNumericValue(t *testing.T) {
	_, err := Deal(DealWire{ID: "deal-3", Value: "plenty"}, testNow)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedRecord))

	_, err = Deal(DealWire{ID: "deal-4", Value: nil}, testNow)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrMalformedRecord))
}

func TestDeal_ProbabilityPinnedForTerminalStages(t *testing.T) {
	won, err := Deal(DealWire{ID: "w", Value: 1.0, Stage: "Kazanıldı", Probability: 35.0}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 100, won.Probability)

	lost, err := Deal(DealWire{ID: "l", Value: 1.0, Stage: "Kaybedildi", Probability: 35.0}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, lost.Probability)
}

func TestDeal_AgingNeverNegative(t *testing.T) {
	future := testNow.AddDate(0, 0, 3).Format(time.RFC3339)
	d, err := Deal(DealWire{ID: "f", Value: 1.0, CreatedAt: future}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 0, d.AgingDays)
}

func TestDeals_DropsMalformedRecords(t *testing.T) {
	wires := []DealWire{
		{ID: "ok-1", Value: 100.0, Stage: "Lead"},
		{ID: "", Value: 100.0},
		{ID: "bad", Value: "not a number"},
		{ID: "ok-2", Value: 200.0, Stage: "Lead"},
	}
	deals := Deals(wires, testNow)
	require.Len(t, deals, 2)
	assert.Equal(t, "ok-1", deals[0].ID)
	assert.Equal(t, "ok-2", deals[1].ID)
}

func TestQuote_NilLastActivityPreserved(t *testing.T) {
	q, err := Quote(QuoteWire{ID: "q-1", Amount: 5000.0, Status: "Sent"}, testNow)
	require.NoError(t, err)
	assert.Nil(t, q.LastActivity, "absent activity timestamp must stay nil, not default")
}

func TestQuote_LastActivityParsed(t *testing.T) {
	q, err := Quote(QuoteWire{
		ID:           "q-2",
		Amount:       5000.0,
		Status:       "Sent",
		LastActivity: "2026-08-20",
	}, testNow)
	require.NoError(t, err)
	require.NotNil(t, q.LastActivity)
	assert.Equal(t, time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), *q.LastActivity)
}

func TestDealToWire_RoundTrip(t *testing.T) {
	orig := model.Deal{
		ID:           "deal-9",
		Title:        "Arçelik - Support Desk",
		Value:        75000,
		Stage:        model.StageProposal,
		Probability:  60,
		OwnerID:      "user-001",
		CreatedAt:    testNow.AddDate(0, 0, -10),
		LastActivity: testNow.AddDate(0, 0, -2),
	}
	back, err := Deal(DealToWire(orig), testNow)
	require.NoError(t, err)
	assert.Equal(t, orig.ID, back.ID)
	assert.Equal(t, orig.Value, back.Value)
	assert.Equal(t, orig.Stage, back.Stage)
	assert.Equal(t, 10, back.AgingDays)
}
