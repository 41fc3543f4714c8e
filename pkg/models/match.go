package models

import "time"

// MatchTier is the discrete confidence bucket derived from a similarity score.
type MatchTier string

const (
	MatchTierExact  MatchTier = "exact"
	MatchTierHigh   MatchTier = "high"
	MatchTierMedium MatchTier = "medium"
	MatchTierLow    MatchTier = "low"
)

// ConfidenceLevel mirrors the tier granularity exposed to reviewers.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// RecommendedAction is what a caller should do with a classified match.
type RecommendedAction string

const (
	ActionMerge  RecommendedAction = "merge"
	ActionReview RecommendedAction = "review"
)

// MatchResult is produced per candidate comparison. It is ephemeral and not
// persisted by default.
type MatchResult struct {
	Provider1NPI       string            `json:"provider1_npi"`
	Provider2NPI       string            `json:"provider2_npi"`
	MatchScore         float64           `json:"match_score"`
	MatchType          MatchTier         `json:"match_type"`
	MatchingAttributes []string          `json:"matching_attributes"`
	ConfidenceLevel    ConfidenceLevel   `json:"confidence_level"`
	RecommendedAction  RecommendedAction `json:"recommended_action"`
}

// DataQualityResult is the verdict for a single record validation.
// Issues are ordered by rule declaration order.
type DataQualityResult struct {
	ProviderNPI  string    `json:"provider_npi"`
	IsValid      bool      `json:"is_valid"`
	Issues       []string  `json:"issues"`
	QualityScore float64   `json:"quality_score"`
	CheckedAt    time.Time `json:"checked_at"`
}

// MergeHistory is the persisted audit record for a merge. Created exactly once
// per merge invocation and immutable afterwards; Reversed is never flipped by
// the current scope (no unmerge operation exists).
type MergeHistory struct {
	MergeID          string    `json:"merge_id"`
	SourceNPI        string    `json:"source_npi"`
	TargetNPI        string    `json:"target_npi"`
	MergedBy         string    `json:"merged_by"`
	MergedAt         time.Time `json:"merged_at"`
	MergeReason      string    `json:"merge_reason"`
	AttributesMerged []string  `json:"attributes_merged"`
	IsReversed       bool      `json:"is_reversed"`
}
