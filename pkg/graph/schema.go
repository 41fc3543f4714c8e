package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/vikbht/provider-mdm-graph/pkg/tracing"
)

// Constraints are the uniqueness constraints for the provider graph.
// All statements use IF NOT EXISTS so bootstrap is safe to repeat.
var Constraints = []string{
	"CREATE CONSTRAINT provider_npi IF NOT EXISTS FOR (p:Provider) REQUIRE p.npi IS UNIQUE",
	"CREATE CONSTRAINT location_id IF NOT EXISTS FOR (l:Location) REQUIRE l.location_id IS UNIQUE",
	"CREATE CONSTRAINT specialty_code IF NOT EXISTS FOR (s:Specialty) REQUIRE s.specialty_code IS UNIQUE",
	"CREATE CONSTRAINT credential_id IF NOT EXISTS FOR (c:Credential) REQUIRE c.credential_id IS UNIQUE",
}

// Indexes are the secondary indexes supporting search and matching lookups.
var Indexes = []string{
	"CREATE INDEX provider_name IF NOT EXISTS FOR (p:Provider) ON (p.last_name, p.first_name)",
	"CREATE INDEX provider_email IF NOT EXISTS FOR (p:Provider) ON (p.email)",
	"CREATE INDEX location_address IF NOT EXISTS FOR (l:Location) ON (l.address)",
}

// BootstrapSchema idempotently creates all constraints and indexes.
func BootstrapSchema(ctx context.Context, client *Client, logger *zap.Logger) error {
	ctx, span := tracing.StartSpan(ctx, "graph.BootstrapSchema")
	defer span.End()

	for _, stmt := range append(append([]string{}, Constraints...), Indexes...) {
		if err := client.Run(ctx, stmt, nil); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	logger.Info("Graph schema bootstrapped",
		zap.Int("constraints", len(Constraints)),
		zap.Int("indexes", len(Indexes)),
	)
	return nil
}
