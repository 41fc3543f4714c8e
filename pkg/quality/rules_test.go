package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikbht/provider-mdm-graph/pkg/apperrors"
)

func TestNewRuleSet(t *testing.T) {
	t.Run("valid definitions compile in order", func(t *testing.T) {
		rs, err := NewRuleSet([]RuleDefinition{
			{Field: "npi", Required: true, Pattern: `^\d{10}$`},
			{Field: "email", Pattern: `.+@.+`},
		})
		require.NoError(t, err)

		rules := rs.Rules()
		require.Len(t, rules, 2)
		assert.Equal(t, "npi", rules[0].Field)
		assert.Equal(t, "email", rules[1].Field)
	})

	t.Run("unknown field is a configuration error", func(t *testing.T) {
		_, err := NewRuleSet([]RuleDefinition{{Field: "favorite_color"}})

		var configErr *apperrors.ConfigurationError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, "quality_rules", configErr.Setting)
	})

	t.Run("empty field is a configuration error", func(t *testing.T) {
		_, err := NewRuleSet([]RuleDefinition{{Field: ""}})
		assert.Error(t, err)
	})

	t.Run("malformed pattern is a configuration error", func(t *testing.T) {
		_, err := NewRuleSet([]RuleDefinition{{Field: "npi", Pattern: `([`}})

		var configErr *apperrors.ConfigurationError
		assert.ErrorAs(t, err, &configErr)
	})

	t.Run("unanchored pattern does not match mid-string", func(t *testing.T) {
		rs, err := NewRuleSet([]RuleDefinition{{Field: "npi", Pattern: `\d{10}$`}})
		require.NoError(t, err)

		rule := rs.Rules()[0]
		assert.True(t, rule.Pattern.MatchString("1234567890"))
		assert.False(t, rule.Pattern.MatchString("x1234567890"))
	})
}

func TestDefaultRuleSet(t *testing.T) {
	rs := DefaultRuleSet()
	rules := rs.Rules()
	require.Len(t, rules, 4)

	assert.Equal(t, "npi", rules[0].Field)
	assert.True(t, rules[0].Required)
	for _, r := range rules[1:] {
		assert.False(t, r.Required, "field %s should be optional", r.Field)
	}
}
