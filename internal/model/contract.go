package model

import "time"

// ContractStatus is the lifecycle state of a contract.
type ContractStatus string

const (
	ContractActive      ContractStatus = "Active"
	ContractNegotiation ContractStatus = "Negotiation"
	ContractDraft       ContractStatus = "Draft"
	ContractArchived    ContractStatus = "Archived"
	ContractTerminated  ContractStatus = "Terminated"
)

// RiskLevel is the categorical risk classification.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// InstallmentStatus tracks a payment installment. Transitions happen at the
// persistence boundary; the analytics layer only reads them.
type InstallmentStatus string

const (
	InstallmentCollected InstallmentStatus = "Collected"
	InstallmentPending   InstallmentStatus = "Pending"
	InstallmentOverdue   InstallmentStatus = "Overdue"
)

// PaymentTrend summarizes the direction of a customer's payment discipline.
type PaymentTrend string

const (
	TrendImproving PaymentTrend = "Improving"
	TrendStable    PaymentTrend = "Stable"
	TrendDeclining PaymentTrend = "Declining"
)

// PaymentInstallment is one scheduled payment under a contract.
type PaymentInstallment struct {
	ID            string            `json:"id"`
	Date          time.Time         `json:"date"`
	Amount        float64           `json:"amount"`
	Currency      string            `json:"currency"`
	Status        InstallmentStatus `json:"status"`
	InvoiceNumber string            `json:"invoiceNumber,omitempty"`
}

// RenewalEvent is one past renewal of a contract.
type RenewalEvent struct {
	Date               time.Time `json:"date"`
	PriceChangePercent float64   `json:"priceChangePercent"`
}

// PaymentDiscipline summarizes a customer's historical payment behavior.
type PaymentDiscipline struct {
	AverageDelayDays float64      `json:"averageDelayDays"`
	ConsistencyScore int          `json:"consistencyScore"`
	Trend            PaymentTrend `json:"trend"`
}

// Contract is a customer contract. DaysToRenewal is RenewalDate minus "now"
// at normalization time and may be negative for lapsed renewals.
// NormalizedValue is TotalValue converted to the home currency.
type Contract struct {
	ID              string               `json:"id"`
	Customer        string               `json:"customer"`
	ProductGroup    string               `json:"productGroup"`
	Status          ContractStatus       `json:"status"`
	TotalValue      float64              `json:"totalValue"`
	NormalizedValue float64              `json:"normalizedValue"`
	Currency        string               `json:"currency"`
	StartDate       time.Time            `json:"startDate"`
	RenewalDate     time.Time            `json:"renewalDate"`
	DaysToRenewal   int                  `json:"daysToRenewal"`
	AutoRenew       bool                 `json:"autoRenew"`
	OwnerID         string               `json:"ownerId"`
	RiskLevel       RiskLevel            `json:"riskLevel"`
	Installments    []PaymentInstallment `json:"paymentPlan,omitempty"`
	RenewalHistory  []RenewalEvent       `json:"renewalHistory,omitempty"`
	Discipline      PaymentDiscipline    `json:"paymentDiscipline"`
}

// OverdueInstallments counts installments currently overdue.
func (c Contract) OverdueInstallments() int {
	n := 0
	for _, in := range c.Installments {
		if in.Status == InstallmentOverdue {
			n++
		}
	}
	return n
}
