// Package risk scores quotes and contracts from independent weighted signals.
package risk

import "time"

// Config holds the classifier thresholds. Defaults mirror production usage;
// tests pin them explicitly.
type Config struct {
	HomeCurrency        string        `yaml:"home_currency" mapstructure:"home_currency"`
	QuoteAgeDays        int           `yaml:"quote_age_days" mapstructure:"quote_age_days"`
	QuoteInactivityDays int           `yaml:"quote_inactivity_days" mapstructure:"quote_inactivity_days"`
	DiscountThreshold   float64       `yaml:"discount_threshold" mapstructure:"discount_threshold"`
	CriticalHorizonDays int           `yaml:"critical_horizon_days" mapstructure:"critical_horizon_days"`
	RenewalSoonDays     int           `yaml:"renewal_soon_days" mapstructure:"renewal_soon_days"`
	AnalysisLatency     time.Duration `yaml:"analysis_latency" mapstructure:"analysis_latency"`
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		HomeCurrency:        "TRY",
		QuoteAgeDays:        30,
		QuoteInactivityDays: 14,
		DiscountThreshold:   20,
		CriticalHorizonDays: 90,
		RenewalSoonDays:     60,
		AnalysisLatency:     1200 * time.Millisecond,
	}
}

// Signal weights for quote scoring. Independent and additive.
const (
	weightQuoteAge        = 30
	weightQuoteInactive   = 20
	weightQuoteNoActivity = 10
	weightQuoteDiscount   = 25
	weightQuoteCompetitor = 25
)

// Level boundaries shared by the quote classifier.
const (
	levelHighMin   = 60
	levelMediumMin = 30
)
