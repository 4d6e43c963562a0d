package risk

import (
	"fmt"
	"time"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// QuoteRisk is the scored classification of a single quote. Reasons appear in
// signal evaluation order; the UI truncates to the first one.
type QuoteRisk struct {
	QuoteID string          `json:"quoteId"`
	Score   int             `json:"score"`
	Level   model.RiskLevel `json:"level"`
	Reasons []string        `json:"reasons,omitempty"`
}

// ScoreQuote applies the four additive quote signals. A quote that never had
// activity logged scores +10 without a reason string, distinct from the +20
// stale-activity signal; the numeric asymmetry is load-bearing for callers
// that display the first reason.
func ScoreQuote(q model.Quote, now time.Time, cfg Config) QuoteRisk {
	r := QuoteRisk{QuoteID: q.ID}

	ageDays := daysBetween(q.CreatedAt, now)
	if ageDays > cfg.QuoteAgeDays && model.IsOpenQuoteStatus(q.Status) {
		r.Score += weightQuoteAge
		r.Reasons = append(r.Reasons, fmt.Sprintf("Open for %d days", ageDays))
	}

	if q.LastActivity != nil {
		inactiveDays := daysBetween(*q.LastActivity, now)
		if inactiveDays > cfg.QuoteInactivityDays {
			r.Score += weightQuoteInactive
			r.Reasons = append(r.Reasons, fmt.Sprintf("Inactive for %d days", inactiveDays))
		}
	} else {
		r.Score += weightQuoteNoActivity
	}

	if q.DiscountPercent > cfg.DiscountThreshold {
		r.Score += weightQuoteDiscount
		r.Reasons = append(r.Reasons, fmt.Sprintf("High Discount (%.0f%%)", q.DiscountPercent))
	}

	if q.HasCompetitor {
		r.Score += weightQuoteCompetitor
		r.Reasons = append(r.Reasons, "Competitor Presence")
	}

	r.Level = levelForScore(r.Score)
	return r
}

func levelForScore(score int) model.RiskLevel {
	switch {
	case score >= levelHighMin:
		return model.RiskHigh
	case score >= levelMediumMin:
		return model.RiskMedium
	}
	return model.RiskLow
}

func daysBetween(from, to time.Time) int {
	d := int(to.Sub(from).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
