package matching

import "github.com/vikbht/provider-mdm-graph/pkg/models"

// Classification is the tier, confidence, and action derived from a score.
type Classification struct {
	Tier       models.MatchTier
	Confidence models.ConfidenceLevel
	Action     models.RecommendedAction
}

// Classifier maps similarity scores to match tiers.
type Classifier struct {
	thresholds Thresholds
}

// NewClassifier creates a new Classifier with the given thresholds.
func NewClassifier(thresholds Thresholds) *Classifier {
	return &Classifier{thresholds: thresholds}
}

// Classify checks thresholds from highest to lowest; the first satisfied
// boundary wins. Boundaries are closed at the lower edge. A score below the
// low-confidence threshold is excluded entirely (ok=false), not returned as
// a low-confidence non-match.
func (c *Classifier) Classify(score float64) (Classification, bool) {
	t := c.thresholds
	switch {
	case score >= t.ExactMatch:
		return Classification{models.MatchTierExact, models.ConfidenceHigh, models.ActionMerge}, true
	case score >= t.HighConfidence:
		return Classification{models.MatchTierHigh, models.ConfidenceHigh, models.ActionMerge}, true
	case score >= t.MediumConfidence:
		return Classification{models.MatchTierMedium, models.ConfidenceMedium, models.ActionReview}, true
	case score >= t.LowConfidence:
		return Classification{models.MatchTierLow, models.ConfidenceLow, models.ActionReview}, true
	default:
		return Classification{}, false
	}
}
