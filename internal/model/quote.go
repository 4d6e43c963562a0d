package model

import "time"

// QuoteStatus is the lifecycle state of a quote. Closed-won detection goes
// through ClosedWonQuoteStatuses because accepted quotes may carry either an
// English or a Turkish label.
type QuoteStatus string

const (
	QuoteDraft      QuoteStatus = "Draft"
	QuoteReview     QuoteStatus = "Review"
	QuoteSent       QuoteStatus = "Sent"
	QuoteAccepted   QuoteStatus = "Accepted"
	QuoteApproved   QuoteStatus = "Approved"
	QuoteRejected   QuoteStatus = "Rejected"
	QuoteDenied     QuoteStatus = "Denied"
	QuoteAcceptedTR QuoteStatus = "Kabul Edildi"
	QuoteApprovedTR QuoteStatus = "Onaylandı"
)

// ClosedWonQuoteStatuses returns the statuses denoting a won quote.
func ClosedWonQuoteStatuses() map[QuoteStatus]struct{} {
	return map[QuoteStatus]struct{}{
		QuoteAccepted:   {},
		QuoteApproved:   {},
		QuoteAcceptedTR: {},
		QuoteApprovedTR: {},
	}
}

// IsOpenQuoteStatus reports whether status is one of the pre-decision states
// that the age risk signal applies to.
func IsOpenQuoteStatus(status QuoteStatus) bool {
	switch status {
	case QuoteDraft, QuoteReview, QuoteSent:
		return true
	}
	return false
}

// Quote is a priced proposal. LastActivity is nil when no activity was ever
// logged against the quote; the risk classifier treats that case separately
// from a stale timestamp.
type Quote struct {
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	Customer        string      `json:"customer"`
	Product         string      `json:"product"`
	Amount          float64     `json:"amount"`
	Status          QuoteStatus `json:"status"`
	DiscountPercent float64     `json:"discountPercent"`
	HasCompetitor   bool        `json:"hasCompetitor"`
	CreatedAt       time.Time   `json:"createdAt"`
	LastActivity    *time.Time  `json:"lastActivityDate,omitempty"`
	SalesRepID      string      `json:"salesRepId"`
	SalesRepName    string      `json:"salesRepName"`
}
