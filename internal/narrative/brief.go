// Package narrative assembles the executive brief shown on the dashboard.
// The composer is a deterministic templating step: identical numeric inputs
// always produce identical text.
package narrative

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fixed UI states. Not derived from input.
const (
	LoadingText = "Analyzing pipeline..."
	ErrorText   = "Brief unavailable. Refresh to retry."
)

// Clause thresholds.
const (
	stalledWarningThreshold = 10
	leakageReviewThreshold  = 5
)

// BriefInput carries the numeric outputs the composer interpolates.
type BriefInput struct {
	TotalPipelineValue  float64
	Currency            string
	StalledDeals        int
	LeakageStage        string
	LeakageCount        int
	ExecutionConfidence int
	TopPerformer        string
}

// Brief composes the executive summary from threshold-driven clauses.
func Brief(in BriefInput) string {
	p := message.NewPrinter(language.English)
	var b strings.Builder

	b.WriteString(p.Sprintf("Pipeline stands at %.0f %s with an execution confidence of %d%%.",
		in.TotalPipelineValue, in.Currency, in.ExecutionConfidence))

	if in.StalledDeals > stalledWarningThreshold {
		b.WriteString(p.Sprintf(" Warning: %d deals have stalled beyond 30 days and need owner follow-up.",
			in.StalledDeals))
	}

	if in.LeakageStage != "" {
		if in.LeakageCount > leakageReviewThreshold {
			b.WriteString(p.Sprintf(" Losses at the %s stage (%d deals) suggest a pricing review.",
				in.LeakageStage, in.LeakageCount))
		} else {
			b.WriteString(" Funnel conversion looks healthy across stages.")
		}
	}

	if in.TopPerformer != "" {
		b.WriteString(p.Sprintf(" %s leads the team this period.", in.TopPerformer))
	}

	return b.String()
}
