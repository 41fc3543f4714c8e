package quality

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vikbht/provider-mdm-graph/pkg/models"
	"github.com/vikbht/provider-mdm-graph/pkg/tracing"
)

// Validator checks a provider record against a rule set. It is a pure
// function of the record and rules; malformed input surfaces as accumulated
// issues, never as an error.
type Validator struct {
	logger *zap.Logger
	rules  RuleSet
}

// NewValidator creates a new Validator.
func NewValidator(logger *zap.Logger, rules RuleSet) *Validator {
	return &Validator{
		logger: logger,
		rules:  rules,
	}
}

// Validate evaluates each rule in declaration order and returns the verdict.
// A required field that is empty records "<field> is required" and skips the
// pattern check; a present field that fails its pattern records
// "<field> fails pattern check".
func (v *Validator) Validate(ctx context.Context, p *models.Provider) models.DataQualityResult {
	_, span := tracing.StartSpan(ctx, "quality.Validator.Validate")
	defer span.End()

	var issues []string
	for _, rule := range v.rules.Rules() {
		value := knownFields[rule.Field](p)

		if rule.Required && value == "" {
			issues = append(issues, rule.Field+" is required")
			continue
		}
		if rule.Pattern != nil && value != "" && !rule.Pattern.MatchString(value) {
			issues = append(issues, rule.Field+" fails pattern check")
		}
	}

	score := 1.0 - 0.1*float64(len(issues))
	if score < 0 {
		score = 0
	}

	if len(issues) > 0 {
		v.logger.Debug("Data quality issues found",
			zap.String("npi", p.NPI),
			zap.Int("issue_count", len(issues)),
		)
	}

	return models.DataQualityResult{
		ProviderNPI:  p.NPI,
		IsValid:      len(issues) == 0,
		Issues:       issues,
		QualityScore: score,
		CheckedAt:    time.Now().UTC(),
	}
}
