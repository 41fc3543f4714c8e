package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vikbht/provider-mdm-graph/pkg/models"
)

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier(DefaultConfig().Thresholds)

	tests := []struct {
		name       string
		score      float64
		ok         bool
		tier       models.MatchTier
		confidence models.ConfidenceLevel
		action     models.RecommendedAction
	}{
		{"perfect score is exact", 1.0, true, models.MatchTierExact, models.ConfidenceHigh, models.ActionMerge},
		{"high boundary is closed", 0.85, true, models.MatchTierHigh, models.ConfidenceHigh, models.ActionMerge},
		{"just under exact is high", 0.99, true, models.MatchTierHigh, models.ConfidenceHigh, models.ActionMerge},
		{"medium boundary is closed", 0.70, true, models.MatchTierMedium, models.ConfidenceMedium, models.ActionReview},
		{"between medium and high stays medium", 0.75, true, models.MatchTierMedium, models.ConfidenceMedium, models.ActionReview},
		{"low boundary is closed", 0.50, true, models.MatchTierLow, models.ConfidenceLow, models.ActionReview},
		{"just under low is excluded", 0.4999, false, "", "", ""},
		{"name plus email alone is excluded", 0.35, false, "", "", ""},
		{"zero is excluded", 0.0, false, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := classifier.Classify(tt.score)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.tier, c.Tier)
				assert.Equal(t, tt.confidence, c.Confidence)
				assert.Equal(t, tt.action, c.Action)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultConfig().Validate())
	})

	t.Run("negative weight", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights.Email = -0.1
		assert.Error(t, cfg.Validate())
	})

	t.Run("weights exceeding 1.0", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Weights.NPI = 0.9
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-monotonic thresholds", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Thresholds.MediumConfidence = 0.9
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive low threshold", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Thresholds.LowConfidence = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("fuzzy threshold out of range", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Fuzzy.Threshold = 1.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("fuzzy threshold ignored when disabled", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Fuzzy.Enabled = false
		cfg.Fuzzy.Threshold = 1.5
		assert.NoError(t, cfg.Validate())
	})
}
