package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vikbht/provider-mdm-graph/pkg/models"
)

func TestScorer_Score(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Weights)

	t.Run("identical records score the full weight sum", func(t *testing.T) {
		p := models.Provider{
			NPI:           "1234567890",
			FirstName:     "Jane",
			LastName:      "Doe",
			Email:         "jane@example.com",
			Phone:         "+15551234567",
			LicenseNumber: "AB12345",
		}

		score, attrs := scorer.Score(&p, &p)

		assert.InDelta(t, 1.0, score, 1e-9)
		assert.Equal(t, []string{"npi", "name", "license_number", "email", "phone"}, attrs)
	})

	t.Run("name and email only", func(t *testing.T) {
		a := models.Provider{NPI: "1111111111", FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}
		b := models.Provider{NPI: "2222222222", FirstName: "Jane", LastName: "Doe", Email: "JANE@example.com "}

		score, attrs := scorer.Score(&a, &b)

		assert.InDelta(t, 0.35, score, 1e-9)
		assert.Equal(t, []string{"name", "email"}, attrs)
	})

	t.Run("npi name and phone reach medium territory", func(t *testing.T) {
		a := models.Provider{NPI: "1234567890", FirstName: "Jane", LastName: "Doe", Phone: "555-123-4567", LicenseNumber: "AB12345"}
		b := models.Provider{NPI: "1234567890", FirstName: "Jane", LastName: "Doe", Phone: "(555) 123 4567", LicenseNumber: "CD99999"}

		score, attrs := scorer.Score(&a, &b)

		// 0.40 + 0.25 + 0.05, license differs and contributes nothing.
		assert.InDelta(t, 0.70, score, 1e-9)
		assert.Equal(t, []string{"npi", "name", "phone"}, attrs)
	})

	t.Run("missing attributes contribute nothing", func(t *testing.T) {
		a := models.Provider{NPI: "1111111111", Email: "jane@example.com"}
		b := models.Provider{NPI: "2222222222"}

		score, attrs := scorer.Score(&a, &b)

		assert.Equal(t, 0.0, score)
		assert.Empty(t, attrs)
	})

	t.Run("partial name overlap contributes weighted similarity without the attribute", func(t *testing.T) {
		a := models.Provider{NPI: "1111111111", FirstName: "Jane", LastName: "Doe"}
		b := models.Provider{NPI: "2222222222", FirstName: "Jane", LastName: "Smith"}

		score, attrs := scorer.Score(&a, &b)

		// Jaccard of {jane,doe} and {jane,smith} is 1/3.
		assert.InDelta(t, 0.25/3.0, score, 1e-9)
		assert.NotContains(t, attrs, "name")
	})

	t.Run("license comparison is case sensitive", func(t *testing.T) {
		a := models.Provider{NPI: "1111111111", LicenseNumber: "AB12345"}
		b := models.Provider{NPI: "2222222222", LicenseNumber: "ab12345"}

		score, attrs := scorer.Score(&a, &b)

		assert.Equal(t, 0.0, score)
		assert.Empty(t, attrs)
	})

	t.Run("scoring is symmetric", func(t *testing.T) {
		a := models.Provider{NPI: "1234567890", FirstName: "Jane", LastName: "Doe", Email: "j@x.com"}
		b := models.Provider{NPI: "1234567890", FirstName: "Jane", LastName: "Anne Doe", Phone: "5551234567"}

		scoreAB, _ := scorer.Score(&a, &b)
		scoreBA, _ := scorer.Score(&b, &a)

		assert.Equal(t, scoreAB, scoreBA)
	})
}

func TestTokenSetSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "Jane Doe", "Jane Doe", 1.0},
		{"case and spacing insensitive", "jane  DOE", " Jane Doe ", 1.0},
		{"token order insensitive", "Doe Jane", "Jane Doe", 1.0},
		{"partial overlap", "Jane Doe", "Jane Smith", 1.0 / 3.0},
		{"disjoint", "Jane Doe", "John Smith", 0.0},
		{"empty left", "", "Jane", 0.0},
		{"empty right", "Jane", "", 0.0},
		{"both empty", "", "", 0.0},
		{"middle name widens the union", "Jane Doe", "Jane Anne Doe", 2.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TokenSetSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}
