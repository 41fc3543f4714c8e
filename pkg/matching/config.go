// Package matching implements pairwise provider similarity scoring, match
// classification, and candidate retrieval against the record store.
package matching

import "github.com/vikbht/provider-mdm-graph/pkg/apperrors"

// Weights are the per-attribute contributions to the similarity score.
// The sum must not exceed 1.0 for scores to stay within [0,1].
type Weights struct {
	NPI           float64
	Name          float64
	LicenseNumber float64
	Email         float64
	Phone         float64
}

// Sum returns the total configured weight.
func (w Weights) Sum() float64 {
	return w.NPI + w.Name + w.LicenseNumber + w.Email + w.Phone
}

// Thresholds are the classification boundaries, closed at the lower edge.
type Thresholds struct {
	ExactMatch       float64
	HighConfidence   float64
	MediumConfidence float64
	LowConfidence    float64
}

// FuzzyConfig declares the fuzzy-matching algorithm. The scorer currently
// implements token-set overlap regardless of the declared algorithm; the
// field is carried so existing deployments keep their configuration surface.
type FuzzyConfig struct {
	Enabled   bool
	Algorithm string
	Threshold float64
}

// Config carries the full matching configuration.
type Config struct {
	Weights    Weights
	Thresholds Thresholds
	Fuzzy      FuzzyConfig
}

// DefaultConfig returns the standard provider matching configuration.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			NPI:           0.40,
			Name:          0.25,
			LicenseNumber: 0.20,
			Email:         0.10,
			Phone:         0.05,
		},
		Thresholds: Thresholds{
			ExactMatch:       1.0,
			HighConfidence:   0.85,
			MediumConfidence: 0.70,
			LowConfidence:    0.50,
		},
		Fuzzy: FuzzyConfig{
			Enabled:   true,
			Algorithm: "levenshtein",
			Threshold: 0.80,
		},
	}
}

// Validate checks the configuration invariants at startup.
func (c Config) Validate() error {
	for name, w := range map[string]float64{
		"npi":            c.Weights.NPI,
		"name":           c.Weights.Name,
		"license_number": c.Weights.LicenseNumber,
		"email":          c.Weights.Email,
		"phone":          c.Weights.Phone,
	} {
		if w < 0 {
			return apperrors.NewConfigurationErrorf("matching_weights", "weight %q must not be negative", name)
		}
	}
	if sum := c.Weights.Sum(); sum > 1.0 {
		return apperrors.NewConfigurationErrorf("matching_weights", "weights sum to %.4f, must not exceed 1.0", sum)
	}

	t := c.Thresholds
	if t.LowConfidence <= 0 {
		return apperrors.NewConfigurationError("matching_thresholds", "low_confidence must be positive")
	}
	if !(t.ExactMatch >= t.HighConfidence && t.HighConfidence >= t.MediumConfidence && t.MediumConfidence >= t.LowConfidence) {
		return apperrors.NewConfigurationError("matching_thresholds", "thresholds must be non-increasing from exact_match to low_confidence")
	}

	if c.Fuzzy.Enabled && (c.Fuzzy.Threshold <= 0 || c.Fuzzy.Threshold > 1) {
		return apperrors.NewConfigurationError("fuzzy_matching", "threshold must be in (0,1]")
	}
	return nil
}
