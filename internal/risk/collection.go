package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// Collection-analysis weights.
const (
	collectionBaseScore = 85
	overduePenalty      = 15
	fxPenalty           = 5
	overdueHighBoundary = 50
)

// CollectionAnalysis is the on-demand payment-risk assessment of one contract.
type CollectionAnalysis struct {
	ContractID      string          `json:"contractId"`
	Score           int             `json:"score"`
	Level           model.RiskLevel `json:"level"`
	Insights        []string        `json:"insights"`
	Recommendations []string        `json:"recommendations"`
}

// Analyzer runs on-demand collection-risk analyses. Each call is single-shot:
// no caching, no retries, and concurrent calls for the same contract are not
// deduplicated — the caller disables re-trigger while one is pending if it
// wants that guarantee.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer creates an Analyzer with the given thresholds.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// Analyze scores the contract's collection risk after the configured latency.
// Cancelling the context abandons the call before the computation runs.
func (a *Analyzer) Analyze(ctx context.Context, c model.Contract) (*CollectionAnalysis, error) {
	if a.cfg.AnalysisLatency > 0 {
		timer := time.NewTimer(a.cfg.AnalysisLatency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, eris.Wrap(ctx.Err(), "risk: analysis cancelled")
		case <-timer.C:
		}
	}

	res := &CollectionAnalysis{
		ContractID: c.ID,
		Score:      collectionBaseScore,
		Level:      model.RiskLow,
	}

	overdue := c.OverdueInstallments()
	if overdue > 0 {
		res.Score -= overduePenalty * overdue
		if res.Score < overdueHighBoundary {
			res.Level = model.RiskHigh
		} else {
			res.Level = model.RiskMedium
		}
		res.Insights = append(res.Insights,
			fmt.Sprintf("%d payment installment(s) are currently overdue", overdue))
		res.Recommendations = append(res.Recommendations,
			"Initiate immediate follow-up with the customer's accounts payable contact.")
	} else {
		res.Insights = append(res.Insights,
			"Payment history is clean; all installments collected on schedule.")
		res.Recommendations = append(res.Recommendations,
			"Offer early payment discount to accelerate cash flow.")
	}

	// Applies independently of the overdue branch.
	if c.DaysToRenewal < a.cfg.RenewalSoonDays {
		res.Insights = append(res.Insights,
			fmt.Sprintf("Renewal is %d days away with terms still unconfirmed", c.DaysToRenewal))
		res.Recommendations = append(res.Recommendations,
			"Schedule a business review ahead of the renewal date.")
	}

	if c.Currency != "" && c.Currency != a.cfg.HomeCurrency {
		res.Score -= fxPenalty
		res.Insights = append(res.Insights,
			fmt.Sprintf("Contract is billed in %s; revenue is exposed to currency fluctuation", c.Currency))
		res.Recommendations = append(res.Recommendations,
			fmt.Sprintf("Consider hedging or indexing the contract to %s.", a.cfg.HomeCurrency))
	}

	if res.Score < 0 {
		res.Score = 0
	}
	if res.Score > 100 {
		res.Score = 100
	}

	zap.L().Debug("risk: collection analysis complete",
		zap.String("contract_id", c.ID),
		zap.Int("score", res.Score),
		zap.String("level", string(res.Level)),
		zap.Int("overdue", overdue),
	)

	return res, nil
}
