package narrative

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBrief_AllClauses(t *testing.T) {
	in := BriefInput{
		TotalPipelineValue:  2500000,
		Currency:            "TRY",
		StalledDeals:        12,
		LeakageStage:        "Proposal",
		LeakageCount:        8,
		ExecutionConfidence: 64,
		TopPerformer:        "Ayşe Yılmaz",
	}

	got := Brief(in)
	want := "Pipeline stands at 2,500,000 TRY with an execution confidence of 64%." +
		" Warning: 12 deals have stalled beyond 30 days and need owner follow-up." +
		" Losses at the Proposal stage (8 deals) suggest a pricing review." +
		" Ayşe Yılmaz leads the team this period."
	assert.Equal(t, want, got)
}

func TestBrief_HealthyFunnel(t *testing.T) {
	in := BriefInput{
		TotalPipelineValue:  800000,
		Currency:            "TRY",
		StalledDeals:        3,
		LeakageStage:        "Negotiation",
		LeakageCount:        2,
		ExecutionConfidence: 90,
	}

	got := Brief(in)
	assert.Contains(t, got, "Funnel conversion looks healthy across stages.")
	assert.NotContains(t, got, "Warning:")
	assert.NotContains(t, got, "leads the team")
}

func TestBrief_MinimalInput(t *testing.T) {
	got := Brief(BriefInput{Currency: "TRY"})
	assert.Equal(t, "Pipeline stands at 0 TRY with an execution confidence of 0%.", got)
}

func TestBrief_Deterministic(t *testing.T) {
	in := BriefInput{
		TotalPipelineValue:  123456,
		Currency:            "TRY",
		StalledDeals:        11,
		LeakageStage:        "Lead",
		LeakageCount:        6,
		ExecutionConfidence: 42,
		TopPerformer:        "Mehmet",
	}
	assert.Equal(t, Brief(in), Brief(in))
}

func TestBrief_ThresholdBoundaries(t *testing.T) {
	// Exactly 10 stalled deals stays quiet; 11 warns.
	quiet := Brief(BriefInput{Currency: "TRY", StalledDeals: 10})
	assert.NotContains(t, quiet, "Warning:")
	loud := Brief(BriefInput{Currency: "TRY", StalledDeals: 11})
	assert.Contains(t, loud, "Warning: 11 deals")

	// Exactly 5 lost deals at a stage reads healthy; 6 flags the stage.
	healthy := Brief(BriefInput{Currency: "TRY", LeakageStage: "Proposal", LeakageCount: 5})
	assert.Contains(t, healthy, "healthy")
	flagged := Brief(BriefInput{Currency: "TRY", LeakageStage: "Proposal", LeakageCount: 6})
	assert.Contains(t, flagged, "pricing review")
}
