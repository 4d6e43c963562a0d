// Package seed generates reproducible synthetic collections for demo
// deployments with no populated backing store. Output distributions are
// driven by a profile so tests and demos can pin exact volumes.
package seed

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Profile controls seed volumes and value ranges.
type Profile struct {
	Seed              int64   `yaml:"seed"`
	Reps              int     `yaml:"reps"`
	Deals             int     `yaml:"deals"`
	ActivitiesPerDeal int     `yaml:"activities_per_deal"`
	Quotes            int     `yaml:"quotes"`
	Orders            int     `yaml:"orders"`
	Contracts         int     `yaml:"contracts"`
	MinDealValue      float64 `yaml:"min_deal_value"`
	MaxDealValue      float64 `yaml:"max_deal_value"`
}

// DefaultProfile returns demo-scale volumes.
func DefaultProfile() Profile {
	return Profile{
		Seed:              42,
		Reps:              8,
		Deals:             120,
		ActivitiesPerDeal: 3,
		Quotes:            60,
		Orders:            40,
		Contracts:         30,
		MinDealValue:      25_000,
		MaxDealValue:      900_000,
	}
}

// LoadProfile reads a YAML profile, filling unset fields from defaults.
func LoadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, eris.Wrapf(err, "seed: read profile %s", path)
	}
	p := DefaultProfile()
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, eris.Wrap(err, "seed: parse profile")
	}
	if p.Reps <= 0 || p.Deals < 0 || p.MaxDealValue < p.MinDealValue {
		return Profile{}, eris.Errorf("seed: invalid profile volumes in %s", path)
	}
	return p, nil
}
