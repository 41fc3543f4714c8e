package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	t.Run("deterministic across key order", func(t *testing.T) {
		a := map[string]any{"npi": "1234567890", "first_name": "Jane", "last_name": "Doe"}
		b := map[string]any{"last_name": "Doe", "npi": "1234567890", "first_name": "Jane"}

		assert.Equal(t, Generate(a, nil), Generate(b, nil))
	})

	t.Run("value changes change the hash", func(t *testing.T) {
		a := map[string]any{"npi": "1234567890"}
		b := map[string]any{"npi": "0987654321"}

		assert.NotEqual(t, Generate(a, nil), Generate(b, nil))
	})

	t.Run("excluded keys do not participate", func(t *testing.T) {
		exclude := map[string]bool{"updated_at": true}
		a := map[string]any{"npi": "1234567890", "updated_at": "2024-01-01"}
		b := map[string]any{"npi": "1234567890", "updated_at": "2025-06-30"}

		assert.Equal(t, Generate(a, exclude), Generate(b, exclude))
	})

	t.Run("exclusions are top level only", func(t *testing.T) {
		exclude := map[string]bool{"updated_at": true}
		a := map[string]any{"nested": map[string]any{"updated_at": "2024-01-01"}}
		b := map[string]any{"nested": map[string]any{"updated_at": "2025-06-30"}}

		assert.NotEqual(t, Generate(a, exclude), Generate(b, exclude))
	})

	t.Run("nested structures are canonicalized", func(t *testing.T) {
		a := map[string]any{"tags": []any{"x", "y"}, "meta": map[string]any{"a": 1, "b": 2}}
		b := map[string]any{"meta": map[string]any{"b": 2, "a": 1}, "tags": []any{"x", "y"}}

		assert.Equal(t, Generate(a, nil), Generate(b, nil))
	})

	t.Run("slice order matters", func(t *testing.T) {
		a := map[string]any{"tags": []any{"x", "y"}}
		b := map[string]any{"tags": []any{"y", "x"}}

		assert.NotEqual(t, Generate(a, nil), Generate(b, nil))
	})

	t.Run("empty map hashes consistently", func(t *testing.T) {
		assert.Equal(t, Generate(map[string]any{}, nil), Generate(map[string]any{}, nil))
	})
}
