package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"+1 (555) 123-4567", "15551234567"},
		{"555.123.4567", "5551234567"},
		{"5551234567", "5551234567"},
		{"ext. 42", "42"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizePhone(tt.in), "input %q", tt.in)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", NormalizeEmail(" Jane@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Jane Doe", "jane doe"},
		{"  JANE   DOE  ", "jane doe"},
		{"jane\tdoe", "jane doe"},
		{"José García", "josé garcía"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeName(tt.in), "input %q", tt.in)
	}
}

func TestApply(t *testing.T) {
	t.Run("registered normalizer", func(t *testing.T) {
		assert.Equal(t, "abc", Apply("ABC", "lowercase"))
		assert.Equal(t, "ABC", Apply("  ABC  ", "trim"))
		assert.Equal(t, "123", Apply("a1b2c3", "digits_only"))
	})

	t.Run("unknown normalizer passes through", func(t *testing.T) {
		assert.Equal(t, "unchanged", Apply("unchanged", "soundex"))
	})

	t.Run("custom registration", func(t *testing.T) {
		Register("reverse_test", func(s string) string {
			r := []rune(s)
			for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
				r[i], r[j] = r[j], r[i]
			}
			return string(r)
		})
		assert.Equal(t, "cba", Apply("abc", "reverse_test"))
	})
}
