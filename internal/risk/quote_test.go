package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/sales-dashboard/internal/model"
)

var testNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func TestScoreQuote_AllSignals(t *testing.T) {
	// 40-day old Sent quote, never touched, 25% discount, competitor in play.
	q := model.Quote{
		ID:              "q-1",
		Status:          model.QuoteSent,
		CreatedAt:       testNow.AddDate(0, 0, -40),
		LastActivity:    nil,
		DiscountPercent: 25,
		HasCompetitor:   true,
	}

	r := ScoreQuote(q, testNow, DefaultConfig())
	assert.Equal(t, 90, r.Score) // 30 + 10 + 25 + 25
	assert.Equal(t, model.RiskHigh, r.Level)
	// The missing-activity signal adds score but no reason.
	require.Equal(t, []string{
		"Open for 40 days",
		"High Discount (25%)",
		"Competitor Presence",
	}, r.Reasons)
}

func TestScoreQuote_Clean(t *testing.T) {
	recent := testNow.AddDate(0, 0, -3)
	q := model.Quote{
		ID:           "q-2",
		Status:       model.QuoteSent,
		CreatedAt:    testNow.AddDate(0, 0, -5),
		LastActivity: &recent,
	}

	r := ScoreQuote(q, testNow, DefaultConfig())
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, model.RiskLow, r.Level)
	assert.Empty(t, r.Reasons)
}

func TestScoreQuote_StaleActivity(t *testing.T) {
	stale := testNow.AddDate(0, 0, -21)
	q := model.Quote{
		ID:           "q-3",
		Status:       model.QuoteSent,
		CreatedAt:    testNow.AddDate(0, 0, -25),
		LastActivity: &stale,
	}

	r := ScoreQuote(q, testNow, DefaultConfig())
	assert.Equal(t, 20, r.Score)
	assert.Equal(t, model.RiskLow, r.Level)
	require.Equal(t, []string{"Inactive for 21 days"}, r.Reasons)
}

func TestScoreQuote_AgeSignalSkipsDecidedQuotes(t *testing.T) {
	recent := testNow.AddDate(0, 0, -1)
	q := model.Quote{
		ID:           "q-4",
		Status:       model.QuoteAcceptedTR,
		CreatedAt:    testNow.AddDate(0, 0, -200),
		LastActivity: &recent,
	}

	r := ScoreQuote(q, testNow, DefaultConfig())
	assert.Equal(t, 0, r.Score)
	assert.Empty(t, r.Reasons)
}

func TestScoreQuote_MediumBoundary(t *testing.T) {
	// Exactly 30 is Medium, 29 is Low, 60 is High.
	assert.Equal(t, model.RiskMedium, levelForScore(30))
	assert.Equal(t, model.RiskLow, levelForScore(29))
	assert.Equal(t, model.RiskHigh, levelForScore(60))
	assert.Equal(t, model.RiskMedium, levelForScore(59))
}

func TestScoreQuote_DiscountAtThresholdNotFlagged(t *testing.T) {
	recent := testNow.AddDate(0, 0, -1)
	q := model.Quote{
		ID:              "q-5",
		Status:          model.QuoteDraft,
		CreatedAt:       testNow.AddDate(0, 0, -2),
		LastActivity:    &recent,
		DiscountPercent: 20,
	}

	r := ScoreQuote(q, testNow, DefaultConfig())
	assert.Equal(t, 0, r.Score)
}

func TestDaysBetween_NeverNegative(t *testing.T) {
	assert.Equal(t, 0, daysBetween(testNow.Add(time.Hour), testNow))
	assert.Equal(t, 3, daysBetween(testNow.AddDate(0, 0, -3), testNow))
}
