package matching

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/vikbht/provider-mdm-graph/pkg/models"
	"github.com/vikbht/provider-mdm-graph/pkg/tracing"
)

// ProjectionStore retrieves all records projected to the attributes the
// scorer evaluates (npi, names, email, phone, license).
type ProjectionStore interface {
	ListProjected(ctx context.Context) ([]models.Provider, error)
}

// Engine finds match candidates for a provider by scoring it against every
// record in the store. This is a full scan per invocation; callers at scale
// should narrow the candidate set with a blocking key in the store adapter.
type Engine struct {
	logger     *zap.Logger
	store      ProjectionStore
	scorer     *Scorer
	classifier *Classifier
}

// NewEngine creates a new match engine.
func NewEngine(logger *zap.Logger, store ProjectionStore, cfg Config) *Engine {
	return &Engine{
		logger:     logger,
		store:      store,
		scorer:     NewScorer(cfg.Weights),
		classifier: NewClassifier(cfg.Thresholds),
	}
}

// FindMatches scores the candidate against every stored record and returns
// the classified results sorted non-increasing by score. Excluded candidates
// are omitted. The candidate compared against itself yields an exact result
// and is not filtered here; callers wanting self-exclusion filter by NPI.
func (e *Engine) FindMatches(ctx context.Context, candidate *models.Provider) ([]models.MatchResult, error) {
	ctx, span := tracing.StartSpan(ctx, "matching.Engine.FindMatches")
	defer span.End()

	records, err := e.store.ListProjected(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records for matching: %w", err)
	}

	results := make([]models.MatchResult, 0, len(records))
	for i := range records {
		record := &records[i]

		score, attrs := e.scorer.Score(candidate, record)
		classification, ok := e.classifier.Classify(score)
		if !ok {
			continue
		}

		results = append(results, models.MatchResult{
			Provider1NPI:       candidate.NPI,
			Provider2NPI:       record.NPI,
			MatchScore:         score,
			MatchType:          classification.Tier,
			MatchingAttributes: attrs,
			ConfidenceLevel:    classification.Confidence,
			RecommendedAction:  classification.Action,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})

	e.logger.Debug("Found matches",
		zap.String("npi", candidate.NPI),
		zap.Int("scanned", len(records)),
		zap.Int("match_count", len(results)),
	)

	return results, nil
}
