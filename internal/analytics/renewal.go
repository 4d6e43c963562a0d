package analytics

import (
	"time"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// DefaultRenewalHorizonDays is the lookahead used to split upcoming renewals
// from distant ones.
const DefaultRenewalHorizonDays = 90

// RenewalPartition aggregates the active contracts on one side of the horizon.
type RenewalPartition struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"totalValue"`
	HighRisk   int     `json:"highRisk"`
}

// RenewalWindow is the horizon split of the active contract book.
type RenewalWindow struct {
	HorizonDays int              `json:"horizonDays"`
	Within      RenewalPartition `json:"within"`
	Beyond      RenewalPartition `json:"beyond"`
}

// RenewalRisk partitions active contracts by whether their renewal falls
// within horizonDays, summing value and flagging precomputed High risk per
// partition. Non-active contracts are ignored.
func RenewalRisk(contracts []model.Contract, horizonDays int) RenewalWindow {
	w := RenewalWindow{HorizonDays: horizonDays}
	for _, c := range contracts {
		if c.Status != model.ContractActive {
			continue
		}
		p := &w.Beyond
		if c.DaysToRenewal <= horizonDays {
			p = &w.Within
		}
		p.Count++
		p.TotalValue += c.TotalValue
		if c.RiskLevel == model.RiskHigh {
			p.HighRisk++
		}
	}
	return w
}

// MonthBucket aggregates active contracts renewing within one calendar month.
type MonthBucket struct {
	Month      time.Time `json:"month"`
	Count      int       `json:"count"`
	TotalValue float64   `json:"totalValue"`
	HighRisk   int       `json:"highRisk"`
}

// MonthlyRenewals assigns each active contract's renewal date to one of
// months forward calendar buckets starting at now's month. Renewals before
// the first bucket or after the last are excluded.
func MonthlyRenewals(contracts []model.Contract, now time.Time, months int) []MonthBucket {
	if months <= 0 {
		return nil
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	buckets := make([]MonthBucket, months)
	for i := range buckets {
		buckets[i].Month = first.AddDate(0, i, 0)
	}
	end := first.AddDate(0, months, 0)

	for _, c := range contracts {
		if c.Status != model.ContractActive {
			continue
		}
		if c.RenewalDate.Before(first) || !c.RenewalDate.Before(end) {
			continue
		}
		i := (c.RenewalDate.Year()-first.Year())*12 + int(c.RenewalDate.Month()) - int(first.Month())
		buckets[i].Count++
		buckets[i].TotalValue += c.TotalValue
		if c.RiskLevel == model.RiskHigh {
			buckets[i].HighRisk++
		}
	}
	return buckets
}
