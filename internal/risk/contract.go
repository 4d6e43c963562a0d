package risk

import (
	"sort"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// LevelSlice aggregates active contracts carrying one precomputed risk level.
type LevelSlice struct {
	Level      model.RiskLevel `json:"level"`
	Count      int             `json:"count"`
	TotalValue float64         `json:"totalValue"`
}

// Distribution sums count and value per precomputed risk level over active
// contracts. Output order is fixed High, Medium, Low so empty levels still
// render as zero slices.
func Distribution(contracts []model.Contract) []LevelSlice {
	byLevel := map[model.RiskLevel]*LevelSlice{}
	order := []model.RiskLevel{model.RiskHigh, model.RiskMedium, model.RiskLow}
	out := make([]LevelSlice, len(order))
	for i, lvl := range order {
		out[i] = LevelSlice{Level: lvl}
		byLevel[lvl] = &out[i]
	}
	for _, c := range contracts {
		if c.Status != model.ContractActive {
			continue
		}
		s, ok := byLevel[c.RiskLevel]
		if !ok {
			continue
		}
		s.Count++
		s.TotalValue += c.TotalValue
	}
	return out
}

// criticalListSize caps the attention short-list the overview renders.
const criticalListSize = 4

// CriticalAttention returns the active High or Medium risk contracts renewing
// within horizonDays, highest value first, truncated to the short-list size.
func CriticalAttention(contracts []model.Contract, horizonDays int) []model.Contract {
	var out []model.Contract
	for _, c := range contracts {
		if c.Status != model.ContractActive {
			continue
		}
		if c.RiskLevel != model.RiskHigh && c.RiskLevel != model.RiskMedium {
			continue
		}
		if c.DaysToRenewal > horizonDays {
			continue
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].TotalValue > out[b].TotalValue
	})
	if len(out) > criticalListSize {
		out = out[:criticalListSize]
	}
	return out
}
