package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vikbht/provider-mdm-graph/pkg/models"
)

type fakeProjectionStore struct {
	records []models.Provider
	err     error
}

func (f *fakeProjectionStore) ListProjected(ctx context.Context) ([]models.Provider, error) {
	return f.records, f.err
}

func TestEngine_FindMatches(t *testing.T) {
	base := models.Provider{
		NPI:           "1234567890",
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane.doe@example.com",
		Phone:         "+15551234567",
		LicenseNumber: "AB12345",
	}

	t.Run("results are sorted best first and exclude weak candidates", func(t *testing.T) {
		exact := base
		exact.NPI = "1234567890" // self in store

		strong := base
		strong.NPI = "2222222222" // name + license + email + phone = 0.60

		weak := models.Provider{
			NPI:       "3333333333",
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane.doe@example.com",
		} // name + email = 0.35, below the low threshold

		store := &fakeProjectionStore{records: []models.Provider{weak, strong, exact}}
		engine := NewEngine(zap.NewNop(), store, DefaultConfig())

		matches, err := engine.FindMatches(context.Background(), &base)
		require.NoError(t, err)
		require.Len(t, matches, 2)

		assert.Equal(t, "1234567890", matches[0].Provider2NPI)
		assert.Equal(t, models.MatchTierExact, matches[0].MatchType)
		assert.Equal(t, models.ActionMerge, matches[0].RecommendedAction)

		assert.Equal(t, "2222222222", matches[1].Provider2NPI)
		assert.InDelta(t, 0.60, matches[1].MatchScore, 1e-9)
		assert.Equal(t, models.MatchTierLow, matches[1].MatchType)
		assert.Equal(t, models.ActionReview, matches[1].RecommendedAction)

		for _, m := range matches {
			assert.Equal(t, base.NPI, m.Provider1NPI)
			assert.NotEqual(t, "3333333333", m.Provider2NPI)
		}
	})

	t.Run("empty store yields no matches", func(t *testing.T) {
		engine := NewEngine(zap.NewNop(), &fakeProjectionStore{}, DefaultConfig())

		matches, err := engine.FindMatches(context.Background(), &base)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		storeErr := errors.New("bolt connection refused")
		engine := NewEngine(zap.NewNop(), &fakeProjectionStore{err: storeErr}, DefaultConfig())

		_, err := engine.FindMatches(context.Background(), &base)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("matching attributes are reported per candidate", func(t *testing.T) {
		candidate := base
		candidate.NPI = "4444444444"
		candidate.Phone = ""

		store := &fakeProjectionStore{records: []models.Provider{candidate}}
		engine := NewEngine(zap.NewNop(), store, DefaultConfig())

		matches, err := engine.FindMatches(context.Background(), &base)
		require.NoError(t, err)
		require.Len(t, matches, 1)

		// name + license + email = 0.55
		assert.Equal(t, []string{"name", "license_number", "email"}, matches[0].MatchingAttributes)
		assert.InDelta(t, 0.55, matches[0].MatchScore, 1e-9)
	})
}
