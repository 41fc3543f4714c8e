// Package fingerprint computes deterministic content hashes for provider
// property maps, used to detect no-op upserts.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
)

// Generate creates a deterministic fingerprint for a property map as a SHA256
// hash of its canonicalized JSON. Keys in the exclude set (audit timestamps,
// MDM bookkeeping) do not participate so ingest replays hash identically.
func Generate(props map[string]any, exclude map[string]bool) string {
	canonical := canonicalize(props, exclude)
	hash := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(hash[:])
}

// canonicalize produces a deterministic string form by sorting map keys and
// recursing into nested structures.
func canonicalize(data any, exclude map[string]bool) string {
	switch v := data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			if exclude[k] {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		sb.WriteString("{")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(",")
			}
			keyJSON, _ := json.Marshal(k)
			sb.Write(keyJSON)
			sb.WriteString(":")
			// Exclusions only apply at the top level.
			sb.WriteString(canonicalize(v[k], nil))
		}
		sb.WriteString("}")
		return sb.String()

	case []any:
		var sb strings.Builder
		sb.WriteString("[")
		for i, item := range v {
			if i > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(canonicalize(item, nil))
		}
		sb.WriteString("]")
		return sb.String()

	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
