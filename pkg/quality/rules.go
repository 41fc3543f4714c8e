// Package quality implements data-quality validation of provider records
// against a configured rule set.
package quality

import (
	"regexp"
	"strings"

	"github.com/vikbht/provider-mdm-graph/pkg/apperrors"
	"github.com/vikbht/provider-mdm-graph/pkg/models"
)

// Rule is a single field validation rule. Rules are evaluated in declaration
// order and their violation messages keep that order.
type Rule struct {
	Field       string
	Required    bool
	Pattern     *regexp.Regexp
	Description string
}

// RuleSet is an immutable ordered collection of rules. Treat as a
// configuration value injected at construction, never as mutable state.
type RuleSet struct {
	rules []Rule
}

// knownFields are the provider attributes a rule may reference.
var knownFields = map[string]func(p *models.Provider) string{
	"npi":            func(p *models.Provider) string { return p.NPI },
	"first_name":     func(p *models.Provider) string { return p.FirstName },
	"last_name":      func(p *models.Provider) string { return p.LastName },
	"email":          func(p *models.Provider) string { return p.Email },
	"phone":          func(p *models.Provider) string { return p.Phone },
	"license_number": func(p *models.Provider) string { return p.LicenseNumber },
	"gender":         func(p *models.Provider) string { return p.Gender },
	"source_system":  func(p *models.Provider) string { return p.SourceSystem },
}

// NewRuleSet builds a rule set from raw rule definitions. Patterns are
// compiled anchored at the start. Unknown field keys and malformed patterns
// are configuration errors.
func NewRuleSet(defs []RuleDefinition) (RuleSet, error) {
	rules := make([]Rule, 0, len(defs))
	for _, def := range defs {
		if def.Field == "" {
			return RuleSet{}, apperrors.NewConfigurationError("quality_rules", "rule field must not be empty")
		}
		if _, ok := knownFields[def.Field]; !ok {
			return RuleSet{}, apperrors.NewConfigurationErrorf("quality_rules", "unknown rule field %q", def.Field)
		}

		rule := Rule{
			Field:       def.Field,
			Required:    def.Required,
			Description: def.Description,
		}
		if def.Pattern != "" {
			pattern := def.Pattern
			if !strings.HasPrefix(pattern, "^") {
				pattern = "^(?:" + pattern + ")"
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return RuleSet{}, apperrors.NewConfigurationErrorf("quality_rules", "invalid pattern for field %q: %v", def.Field, err)
			}
			rule.Pattern = re
		}
		rules = append(rules, rule)
	}
	return RuleSet{rules: rules}, nil
}

// RuleDefinition is the raw, uncompiled form of a rule.
type RuleDefinition struct {
	Field       string
	Required    bool
	Pattern     string
	Description string
}

// DefaultRuleDefinitions mirrors the standard provider rule set: NPI is
// mandatory, the rest validate format only when present.
func DefaultRuleDefinitions() []RuleDefinition {
	return []RuleDefinition{
		{
			Field:       "npi",
			Required:    true,
			Pattern:     `^\d{10}$`,
			Description: "NPI must be exactly 10 digits",
		},
		{
			Field:       "email",
			Required:    false,
			Pattern:     `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`,
			Description: "Valid email format required",
		},
		{
			Field:       "phone",
			Required:    false,
			Pattern:     `^\+?1?\d{10,15}$`,
			Description: "Valid phone number format",
		},
		{
			Field:       "license_number",
			Required:    false,
			Pattern:     `^[A-Z0-9]{5,20}$`,
			Description: "License number format",
		},
	}
}

// DefaultRuleSet returns the compiled default rules.
func DefaultRuleSet() RuleSet {
	rs, err := NewRuleSet(DefaultRuleDefinitions())
	if err != nil {
		// Defaults are fixed strings; a compile failure is a programming bug.
		panic(err)
	}
	return rs
}

// Rules returns the rules in declaration order.
func (rs RuleSet) Rules() []Rule {
	return rs.rules
}
