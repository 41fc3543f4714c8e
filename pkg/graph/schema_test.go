package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaStatementsAreIdempotent(t *testing.T) {
	for _, stmt := range append(append([]string{}, Constraints...), Indexes...) {
		assert.Contains(t, stmt, "IF NOT EXISTS", "statement must be repeatable: %s", stmt)
	}
}

func TestSchemaCoversKeyedLabels(t *testing.T) {
	joined := strings.Join(Constraints, "\n")
	for _, label := range []string{"Provider", "Location", "Specialty", "Credential"} {
		assert.Contains(t, joined, ":"+label, "missing uniqueness constraint for %s", label)
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Provider", "Provider"},
		{"PRACTICES_AT", "PRACTICES_AT"},
		{"Provider`) DETACH DELETE (n", "ProviderDETACHDELETEn"},
		{"has-specialty", "hasspecialty"},
		{"", "Entity"},
		{"!!!", "Entity"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeLabel(tt.in), "input %q", tt.in)
	}
}
