// Command seed loads sample provider data into the graph and walks the full
// pipeline: quality checks, duplicate detection, and a merge of the best
// candidate pair.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/vikbht/provider-mdm-graph/config"
	"github.com/vikbht/provider-mdm-graph/pkg/graph"
	"github.com/vikbht/provider-mdm-graph/pkg/logger"
	"github.com/vikbht/provider-mdm-graph/pkg/matching"
	"github.com/vikbht/provider-mdm-graph/pkg/merging"
	"github.com/vikbht/provider-mdm-graph/pkg/models"
	"github.com/vikbht/provider-mdm-graph/pkg/quality"
	"github.com/vikbht/provider-mdm-graph/pkg/sample"
)

func main() {
	count := flag.Int("count", 10, "number of base providers to generate")
	duplicates := flag.Int("duplicates", 3, "number of near-duplicate records to inject")
	seed := flag.Int64("seed", 42, "random seed")
	merge := flag.Bool("merge", true, "merge the strongest duplicate pair at the end")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	graphClient, err := graph.NewClient(graph.Config{
		Host:     cfg.GraphDBHost,
		Port:     cfg.GraphDBPort,
		Username: cfg.GraphDBUser,
		Password: cfg.GraphDBPassword,
	}, log)
	if err != nil {
		log.Fatal("Failed to create graph client", zap.Error(err))
	}
	defer func() { _ = graphClient.Close(ctx) }()

	if err := graphClient.VerifyConnectivity(ctx); err != nil {
		log.Fatal("Graph database unreachable", zap.Error(err))
	}
	if err := graph.BootstrapSchema(ctx, graphClient, log); err != nil {
		log.Fatal("Failed to bootstrap graph schema", zap.Error(err))
	}

	matchCfg, err := cfg.MatchingConfig()
	if err != nil {
		log.Fatal("Invalid matching configuration", zap.Error(err))
	}

	store := graph.NewProviderStore(graphClient, log)
	validator := quality.NewValidator(log, quality.DefaultRuleSet())
	engine := matching.NewEngine(log, store, matchCfg)
	coordinator := merging.NewCoordinator(log, store)
	gen := sample.NewGenerator(*seed)

	providers := seedProviders(ctx, log, store, gen, *count, *duplicates)

	log.Info("Running data quality checks")
	for i := range providers {
		result := validator.Validate(ctx, &providers[i])
		log.Info("Quality report",
			zap.String("npi", result.ProviderNPI),
			zap.Bool("valid", result.IsValid),
			zap.Float64("score", result.QualityScore),
			zap.Strings("issues", result.Issues),
		)
	}

	log.Info("Searching for duplicates")
	target := providers[0]
	matches, err := engine.FindMatches(ctx, &target)
	if err != nil {
		log.Fatal("Match search failed", zap.Error(err))
	}
	var best *models.MatchResult
	for i := range matches {
		m := matches[i]
		if m.Provider2NPI == target.NPI {
			continue
		}
		log.Info("Match candidate",
			zap.String("npi", m.Provider2NPI),
			zap.Float64("score", m.MatchScore),
			zap.String("tier", string(m.MatchType)),
			zap.String("action", string(m.RecommendedAction)),
			zap.Strings("attributes", m.MatchingAttributes),
		)
		if best == nil {
			best = &matches[i]
		}
	}

	if *merge && best != nil && best.MatchScore >= matchCfg.Thresholds.LowConfidence {
		history, err := coordinator.Merge(ctx, best.Provider2NPI, target.NPI, "seed-cli", "duplicate detected during seed run")
		if err != nil {
			log.Fatal("Merge failed", zap.Error(err))
		}
		log.Info("Merged duplicate into golden record",
			zap.String("merge_id", history.MergeID),
			zap.String("source_npi", history.SourceNPI),
			zap.String("target_npi", history.TargetNPI),
			zap.Strings("attributes_merged", history.AttributesMerged),
		)
	}

	log.Info("Seed run complete", zap.Int("providers", len(providers)))
}

// seedProviders writes the base records, their related entities, and the
// injected near-duplicates, returning everything that was stored.
func seedProviders(ctx context.Context, log *zap.Logger, store *graph.ProviderStore, gen *sample.Generator, count, duplicates int) []models.Provider {
	providers := make([]models.Provider, 0, count+duplicates)

	for i := 0; i < count; i++ {
		p := gen.Provider()
		if err := store.UpsertProvider(ctx, &p); err != nil {
			log.Fatal("Failed to seed provider", zap.String("npi", p.NPI), zap.Error(err))
		}
		providers = append(providers, p)

		loc := gen.Location()
		sp := gen.Specialty()
		cred := gen.Credential()
		aff := gen.Affiliation()

		must(log, store.UpsertLocation(ctx, &loc))
		must(log, store.UpsertSpecialty(ctx, &sp))
		must(log, store.UpsertCredential(ctx, &cred))
		must(log, store.UpsertAffiliation(ctx, &aff))

		must(log, store.Relate(ctx, graph.RelateInput{
			FromLabel: "Provider", FromKeyProp: "npi", FromKey: p.NPI,
			ToLabel: "Location", ToKeyProp: "location_id", ToKey: loc.LocationID,
			Type: "PRACTICES_AT",
		}))
		must(log, store.Relate(ctx, graph.RelateInput{
			FromLabel: "Provider", FromKeyProp: "npi", FromKey: p.NPI,
			ToLabel: "Specialty", ToKeyProp: "specialty_code", ToKey: sp.SpecialtyCode,
			Type: "HAS_SPECIALTY",
		}))
		must(log, store.Relate(ctx, graph.RelateInput{
			FromLabel: "Provider", FromKeyProp: "npi", FromKey: p.NPI,
			ToLabel: "Credential", ToKeyProp: "credential_id", ToKey: cred.CredentialID,
			Type: "HOLDS_CREDENTIAL",
		}))
		must(log, store.Relate(ctx, graph.RelateInput{
			FromLabel: "Provider", FromKeyProp: "npi", FromKey: p.NPI,
			ToLabel: "Affiliation", ToKeyProp: "affiliation_id", ToKey: aff.AffiliationID,
			Type: "AFFILIATED_WITH",
		}))
	}

	// Near-duplicates carry a fresh NPI from another source system but keep
	// the name, license, and usually the email of a base record.
	for i := 0; i < duplicates && i < len(providers); i++ {
		dup := gen.DuplicateOf(providers[i])
		if err := store.UpsertProvider(ctx, &dup); err != nil {
			log.Fatal("Failed to seed duplicate", zap.String("npi", dup.NPI), zap.Error(err))
		}
		providers = append(providers, dup)
	}

	log.Info("Seeded providers", zap.Int("base", count), zap.Int("duplicates", duplicates))
	return providers
}

func must(log *zap.Logger, err error) {
	if err != nil {
		log.Fatal("Seed step failed", zap.Error(err))
	}
}
