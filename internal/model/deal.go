// Package model defines the canonical value records the dashboard computes over.
// Records are immutable from the analytics layer's perspective: every derived
// metric is a pure function of a snapshot of these collections.
package model

import "time"

// Stage is a pipeline stage label. Stage labels are locale-carrying strings:
// the same logical stage may appear under an English or Turkish label depending
// on where the record originated, so open/won/lost semantics are resolved
// through StageSet membership rather than string equality.
type Stage string

const (
	StageLead        Stage = "Lead"
	StageContact     Stage = "Contact"
	StageProposal    Stage = "Proposal"
	StageNegotiation Stage = "Negotiation"
	StageWon         Stage = "Won"
	StageLost        Stage = "Lost"
	StageWonTR       Stage = "Kazanıldı"
	StageLostTR      Stage = "Kaybedildi"
)

// StageSet is a membership set of stage labels.
type StageSet map[Stage]struct{}

// NewStageSet builds a StageSet from the given stages.
func NewStageSet(stages ...Stage) StageSet {
	s := make(StageSet, len(stages))
	for _, st := range stages {
		s[st] = struct{}{}
	}
	return s
}

// Contains reports whether stage is in the set.
func (s StageSet) Contains(stage Stage) bool {
	_, ok := s[stage]
	return ok
}

// Union returns a new set containing the members of both sets.
func (s StageSet) Union(other StageSet) StageSet {
	out := make(StageSet, len(s)+len(other))
	for st := range s {
		out[st] = struct{}{}
	}
	for st := range other {
		out[st] = struct{}{}
	}
	return out
}

// ClosedWonStages returns the default set of stage labels denoting a won deal.
func ClosedWonStages() StageSet {
	return NewStageSet(StageWon, StageWonTR, "Closed Won")
}

// ClosedLostStages returns the default set of stage labels denoting a lost deal.
func ClosedLostStages() StageSet {
	return NewStageSet(StageLost, StageLostTR, "Closed Lost")
}

// ClosedStages returns the union of won and lost stage labels.
func ClosedStages() StageSet {
	return ClosedWonStages().Union(ClosedLostStages())
}

// DealSource identifies where a deal entered the pipeline.
type DealSource string

const (
	SourceReferral DealSource = "referral"
	SourceWebsite  DealSource = "website"
	SourceColdCall DealSource = "cold_call"
	SourceEvent    DealSource = "event"
	SourcePartner  DealSource = "partner"
)

// Deal is a sales opportunity. Probability is pinned to 100 for won stages and
// 0 for lost stages; AgingDays is days since CreatedAt and never negative.
// PreviousStage records the stage a closed deal left the open funnel from and
// is empty for deals still open.
type Deal struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	CustomerName  string     `json:"customerName"`
	Product       string     `json:"product"`
	Value         float64    `json:"value"`
	Stage         Stage      `json:"stage"`
	PreviousStage Stage      `json:"previousStage,omitempty"`
	Probability   int        `json:"probability"`
	OwnerID       string     `json:"ownerId"`
	Source        DealSource `json:"source"`
	Topic         string     `json:"topic"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	ExpectedClose time.Time  `json:"expectedCloseDate"`
	LastActivity  time.Time  `json:"lastActivityDate"`
	AgingDays     int        `json:"agingDays"`
	Velocity      int        `json:"velocity"`
	HealthScore   int        `json:"healthScore"`
}
