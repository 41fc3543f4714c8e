package matching

import (
	"strings"

	"github.com/vikbht/provider-mdm-graph/pkg/models"
	"github.com/vikbht/provider-mdm-graph/pkg/normalizers"
)

// nameMatchedThreshold is the token similarity above which the name attribute
// is recorded as matched, independent of its weighted contribution.
const nameMatchedThreshold = 0.9

// Scorer computes weighted pairwise similarity between provider records.
type Scorer struct {
	weights Weights
}

// NewScorer creates a new Scorer with the given attribute weights.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score returns the weighted similarity score and the list of matched
// attributes. Attributes missing on either side contribute nothing and are
// not recorded as matched.
func (s *Scorer) Score(a, b *models.Provider) (float64, []string) {
	var score float64
	var attrs []string

	if a.NPI != "" && b.NPI != "" && a.NPI == b.NPI {
		score += s.weights.NPI
		attrs = append(attrs, "npi")
	}

	nameSim := TokenSetSimilarity(a.FullName(), b.FullName())
	score += nameSim * s.weights.Name
	if nameSim > nameMatchedThreshold {
		attrs = append(attrs, "name")
	}

	if a.LicenseNumber != "" && b.LicenseNumber != "" && a.LicenseNumber == b.LicenseNumber {
		score += s.weights.LicenseNumber
		attrs = append(attrs, "license_number")
	}

	if a.Email != "" && b.Email != "" && normalizers.NormalizeEmail(a.Email) == normalizers.NormalizeEmail(b.Email) {
		score += s.weights.Email
		attrs = append(attrs, "email")
	}

	if a.Phone != "" && b.Phone != "" && normalizers.NormalizePhone(a.Phone) == normalizers.NormalizePhone(b.Phone) {
		score += s.weights.Phone
		attrs = append(attrs, "phone")
	}

	return score, attrs
}

// TokenSetSimilarity computes Jaccard similarity over whitespace-delimited
// token sets of the normalized inputs. Identical strings score 1.0 without
// building sets; empty input on either side scores 0.
func TokenSetSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}

	a = normalizers.NormalizeName(a)
	b = normalizers.NormalizeName(b)
	if a == b {
		return 1.0
	}

	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection

	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}
