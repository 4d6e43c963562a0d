// Package store persists opportunities behind a driver-agnostic interface.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// ErrNotFound marks a lookup for an opportunity that does not exist.
var ErrNotFound = eris.New("store: not found")

// ListFilter narrows ListOpportunities. Zero values mean no constraint;
// Limit <= 0 means no cap.
type ListFilter struct {
	Stage   model.Stage `json:"stage,omitempty"`
	OwnerID string      `json:"owner_id,omitempty"`
	Limit   int         `json:"limit,omitempty"`
	Offset  int         `json:"offset,omitempty"`
}

// DealPatch is a partial update. Nil fields are left untouched.
type DealPatch struct {
	Title         *string      `json:"title,omitempty"`
	CustomerName  *string      `json:"customer_name,omitempty"`
	Value         *float64     `json:"value,omitempty"`
	Stage         *model.Stage `json:"stage,omitempty"`
	Probability   *int         `json:"probability,omitempty"`
	OwnerID       *string      `json:"owner_id,omitempty"`
	Notes         *string      `json:"notes,omitempty"`
	ExpectedClose *string      `json:"expected_close_date,omitempty"`
}

// Apply copies the patch onto a deal, pinning probability for terminal
// stages the same way the normalizer does.
func (p DealPatch) Apply(d model.Deal) model.Deal {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.CustomerName != nil {
		d.CustomerName = *p.CustomerName
	}
	if p.Value != nil {
		d.Value = *p.Value
	}
	if p.Stage != nil && *p.Stage != d.Stage {
		if !model.ClosedStages().Contains(d.Stage) {
			d.PreviousStage = d.Stage
		}
		d.Stage = *p.Stage
	}
	if p.Probability != nil {
		d.Probability = *p.Probability
	}
	if p.OwnerID != nil {
		d.OwnerID = *p.OwnerID
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	switch {
	case model.ClosedWonStages().Contains(d.Stage):
		d.Probability = 100
	case model.ClosedLostStages().Contains(d.Stage):
		d.Probability = 0
	}
	return d
}

// Store is the persistence interface for opportunities.
type Store interface {
	CreateOpportunity(ctx context.Context, d model.Deal) (*model.Deal, error)
	GetOpportunity(ctx context.Context, id string) (*model.Deal, error)
	ListOpportunities(ctx context.Context, filter ListFilter) ([]model.Deal, error)
	UpdateOpportunity(ctx context.Context, id string, patch DealPatch) (*model.Deal, error)
	DeleteOpportunity(ctx context.Context, id string) error

	Migrate(ctx context.Context) error
	Close() error
}
