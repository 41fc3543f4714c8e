package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/vikbht/provider-mdm-graph/pkg/apperrors"
	"github.com/vikbht/provider-mdm-graph/pkg/fingerprint"
	"github.com/vikbht/provider-mdm-graph/pkg/models"
	"github.com/vikbht/provider-mdm-graph/pkg/tracing"
)

const timeFormat = "2006-01-02T15:04:05Z"

// searchLimit bounds substring search results.
const searchLimit = 50

// fingerprintExclusions are the properties that never participate in the
// content fingerprint of a provider node.
var fingerprintExclusions = map[string]bool{
	"created_at":       true,
	"updated_at":       true,
	"is_golden_record": true,
	"master_record_id": true,
	"confidence_score": true,
	"fingerprint":      true,
}

// ProviderStore is the record store for the provider graph. It owns all
// persistence; the pipeline components operate on copies and never touch
// graph state directly.
type ProviderStore struct {
	client *Client
	logger *zap.Logger
}

// NewProviderStore creates a new provider store.
func NewProviderStore(client *Client, logger *zap.Logger) *ProviderStore {
	return &ProviderStore{
		client: client,
		logger: logger,
	}
}

// UpsertProvider creates or updates a provider node keyed by NPI. Creation
// stamps created_at and updated_at; updates refresh updated_at only.
func (s *ProviderStore) UpsertProvider(ctx context.Context, p *models.Provider) error {
	ctx, span := tracing.StartSpan(ctx, "graph.ProviderStore.UpsertProvider")
	defer span.End()

	props := providerProps(p)
	props["fingerprint"] = fingerprint.Generate(props, fingerprintExclusions)

	cypher := `
		MERGE (pr:Provider {npi: $npi})
		ON CREATE SET pr += $props, pr.created_at = datetime(), pr.updated_at = datetime()
		ON MATCH SET  pr += $props, pr.updated_at = datetime()
		RETURN pr
	`

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{
			"npi":   p.NPI,
			"props": props,
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		s.logger.Error("Failed to upsert provider", zap.String("npi", p.NPI), zap.Error(err))
		return storeError("failed to upsert provider", err)
	}

	s.logger.Debug("Upserted provider", zap.String("npi", p.NPI))
	return nil
}

// UpsertLocation creates or updates a location node keyed by location_id.
func (s *ProviderStore) UpsertLocation(ctx context.Context, loc *models.Location) error {
	return s.upsertNode(ctx, "Location", "location_id", loc.LocationID, map[string]any{
		"location_id":   loc.LocationID,
		"address":       loc.Address,
		"city":          loc.City,
		"state":         loc.State,
		"zip_code":      loc.ZipCode,
		"country":       loc.Country,
		"location_type": loc.LocationType,
	})
}

// UpsertSpecialty creates or updates a specialty node keyed by specialty_code.
func (s *ProviderStore) UpsertSpecialty(ctx context.Context, sp *models.Specialty) error {
	props := map[string]any{
		"specialty_code":  sp.SpecialtyCode,
		"specialty_name":  sp.SpecialtyName,
		"specialty_type":  sp.SpecialtyType,
		"taxonomy_code":   sp.TaxonomyCode,
		"board_certified": sp.BoardCertified,
	}
	if sp.CertificationDate != nil {
		props["certification_date"] = sp.CertificationDate.UTC().Format(timeFormat)
	}
	return s.upsertNode(ctx, "Specialty", "specialty_code", sp.SpecialtyCode, props)
}

// UpsertCredential creates or updates a credential node keyed by credential_id.
func (s *ProviderStore) UpsertCredential(ctx context.Context, cr *models.Credential) error {
	return s.upsertNode(ctx, "Credential", "credential_id", cr.CredentialID, map[string]any{
		"credential_id":   cr.CredentialID,
		"license_number":  cr.LicenseNumber,
		"license_type":    cr.LicenseType,
		"license_state":   cr.LicenseState,
		"issue_date":      cr.IssueDate.UTC().Format(timeFormat),
		"expiration_date": cr.ExpirationDate.UTC().Format(timeFormat),
		"status":          cr.Status,
	})
}

// UpsertAffiliation creates or updates an affiliation node keyed by affiliation_id.
func (s *ProviderStore) UpsertAffiliation(ctx context.Context, af *models.Affiliation) error {
	props := map[string]any{
		"affiliation_id":    af.AffiliationID,
		"organization_name": af.OrganizationName,
		"organization_type": af.OrganizationType,
		"relationship_type": af.RelationshipType,
		"start_date":        af.StartDate.UTC().Format(timeFormat),
		"is_active":         af.IsActive,
	}
	if af.EndDate != nil {
		props["end_date"] = af.EndDate.UTC().Format(timeFormat)
	}
	return s.upsertNode(ctx, "Affiliation", "affiliation_id", af.AffiliationID, props)
}

// upsertNode is the shared MERGE for related-entity nodes.
func (s *ProviderStore) upsertNode(ctx context.Context, label, keyProp, key string, props map[string]any) error {
	ctx, span := tracing.StartSpan(ctx, "graph.ProviderStore.upsertNode")
	defer span.End()

	cypher := fmt.Sprintf(`
		MERGE (n:%s {%s: $key})
		ON CREATE SET n += $props, n.created_at = datetime(), n.updated_at = datetime()
		ON MATCH SET  n += $props, n.updated_at = datetime()
		RETURN n
	`, sanitizeLabel(label), sanitizeLabel(keyProp))

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{
			"key":   key,
			"props": props,
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		s.logger.Error("Failed to upsert node", zap.String("label", label), zap.String("key", key), zap.Error(err))
		return storeError("failed to upsert "+label, err)
	}
	return nil
}

// RelateInput identifies the two existing nodes to connect and the edge type.
type RelateInput struct {
	FromLabel   string
	FromKeyProp string
	FromKey     string
	ToLabel     string
	ToKeyProp   string
	ToKey       string
	Type        string
}

// Relate creates or refreshes a directed typed edge between two existing
// nodes, stamping updated_at on the edge.
func (s *ProviderStore) Relate(ctx context.Context, rel RelateInput) error {
	ctx, span := tracing.StartSpan(ctx, "graph.ProviderStore.Relate")
	defer span.End()

	cypher := fmt.Sprintf(`
		MATCH (from:%s {%s: $from_key})
		MATCH (to:%s {%s: $to_key})
		MERGE (from)-[r:%s]->(to)
		SET r.updated_at = datetime()
		RETURN r
	`, sanitizeLabel(rel.FromLabel), sanitizeLabel(rel.FromKeyProp),
		sanitizeLabel(rel.ToLabel), sanitizeLabel(rel.ToKeyProp),
		sanitizeLabel(rel.Type))

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{
			"from_key": rel.FromKey,
			"to_key":   rel.ToKey,
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		s.logger.Error("Failed to relate nodes",
			zap.String("from", rel.FromKey),
			zap.String("to", rel.ToKey),
			zap.String("type", rel.Type),
			zap.Error(err),
		)
		return storeError("failed to create relationship", err)
	}
	return nil
}

// GetProvider returns a provider's properties by NPI, or nil when absent.
func (s *ProviderStore) GetProvider(ctx context.Context, npi string) (map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.ProviderStore.GetProvider")
	defer span.End()

	cypher := `MATCH (p:Provider {npi: $npi}) RETURN p`

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{"npi": npi})
		if err != nil {
			return nil, err
		}
		if result.Next(ctx) {
			node, ok := result.Record().Get("p")
			if !ok {
				return nil, nil
			}
			return node.(neo4j.Node).Props, nil
		}
		return nil, nil
	})
	if err != nil {
		return nil, storeError("failed to get provider", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.(map[string]any), nil
}

// Search returns providers whose first name, last name, or email contains the
// text, case-insensitive, capped at searchLimit rows.
func (s *ProviderStore) Search(ctx context.Context, text string) ([]map[string]any, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.ProviderStore.Search")
	defer span.End()

	cypher := fmt.Sprintf(`
		MATCH (p:Provider)
		WHERE toLower(p.first_name) CONTAINS toLower($t)
		   OR toLower(p.last_name) CONTAINS toLower($t)
		   OR toLower(p.email) CONTAINS toLower($t)
		RETURN p LIMIT %d
	`, searchLimit)

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{"t": text})
		if err != nil {
			return nil, err
		}

		var rows []map[string]any
		for result.Next(ctx) {
			if node, ok := result.Record().Get("p"); ok {
				rows = append(rows, node.(neo4j.Node).Props)
			}
		}
		return rows, result.Err()
	})
	if err != nil {
		return nil, storeError("failed to search providers", err)
	}
	if result == nil {
		return nil, nil
	}
	return result.([]map[string]any), nil
}

// ListProjected returns every provider projected to the attributes the
// matching scorer evaluates.
func (s *ProviderStore) ListProjected(ctx context.Context) ([]models.Provider, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.ProviderStore.ListProjected")
	defer span.End()

	cypher := `
		MATCH (p:Provider)
		RETURN p { .npi, .first_name, .last_name, .email, .phone, .license_number } AS p
	`

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, nil)
		if err != nil {
			return nil, err
		}

		var providers []models.Provider
		for result.Next(ctx) {
			raw, ok := result.Record().Get("p")
			if !ok {
				continue
			}
			props, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			providers = append(providers, models.Provider{
				NPI:           stringProp(props, "npi"),
				FirstName:     stringProp(props, "first_name"),
				LastName:      stringProp(props, "last_name"),
				Email:         stringProp(props, "email"),
				Phone:         stringProp(props, "phone"),
				LicenseNumber: stringProp(props, "license_number"),
			})
		}
		return providers, result.Err()
	})
	if err != nil {
		return nil, storeError("failed to list providers", err)
	}
	return result.([]models.Provider), nil
}

// CombineProviders merges the source node into the target under the "combine"
// property policy, retains relationships from both sides, marks the result as
// the golden record, and writes the merge history node. All of it runs in a
// single write transaction so concurrent merges never observe partial state.
func (s *ProviderStore) CombineProviders(ctx context.Context, sourceNPI, targetNPI string, history models.MergeHistory) error {
	ctx, span := tracing.StartSpan(ctx, "graph.ProviderStore.CombineProviders")
	defer span.End()

	cypher := `
		MATCH (s:Provider {npi: $source}), (t:Provider {npi: $target})
		CALL apoc.refactor.mergeNodes([s, t], {properties: "combine", mergeRels: true}) YIELD node
		SET node.is_golden_record = true, node.updated_at = datetime()
		WITH node
		CREATE (h:MergeHistory {
			merge_id: $merge_id,
			source_npi: $source,
			target_npi: $target,
			merged_by: $merged_by,
			merged_at: $merged_at,
			merge_reason: $merge_reason,
			attributes_merged: $attributes_merged,
			is_reversed: false
		})
		MERGE (node)-[:HAS_MERGE_HISTORY]->(h)
		RETURN node
	`

	attrs := history.AttributesMerged
	if attrs == nil {
		attrs = []string{}
	}

	_, err := s.client.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{
			"source":            sourceNPI,
			"target":            targetNPI,
			"merge_id":          history.MergeID,
			"merged_by":         history.MergedBy,
			"merged_at":         history.MergedAt.UTC().Format(timeFormat),
			"merge_reason":      history.MergeReason,
			"attributes_merged": attrs,
		})
		if err != nil {
			return nil, err
		}
		return result.Consume(ctx)
	})
	if err != nil {
		s.logger.Error("Failed to combine providers",
			zap.String("source_npi", sourceNPI),
			zap.String("target_npi", targetNPI),
			zap.Error(err),
		)
		return storeError("failed to combine providers", err)
	}

	s.logger.Info("Combined providers",
		zap.String("source_npi", sourceNPI),
		zap.String("target_npi", targetNPI),
		zap.String("merge_id", history.MergeID),
	)
	return nil
}

// ListMergeHistory returns the merge history entries touching the given NPI,
// newest first.
func (s *ProviderStore) ListMergeHistory(ctx context.Context, npi string) ([]models.MergeHistory, error) {
	ctx, span := tracing.StartSpan(ctx, "graph.ProviderStore.ListMergeHistory")
	defer span.End()

	cypher := `
		MATCH (h:MergeHistory)
		WHERE h.source_npi = $npi OR h.target_npi = $npi
		RETURN h
		ORDER BY h.merged_at DESC
	`

	result, err := s.client.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		result, err := tx.Run(ctx, cypher, map[string]any{"npi": npi})
		if err != nil {
			return nil, err
		}

		var entries []models.MergeHistory
		for result.Next(ctx) {
			raw, ok := result.Record().Get("h")
			if !ok {
				continue
			}
			entries = append(entries, mergeHistoryFromProps(raw.(neo4j.Node).Props))
		}
		return entries, result.Err()
	})
	if err != nil {
		return nil, storeError("failed to list merge history", err)
	}
	return result.([]models.MergeHistory), nil
}

// providerProps builds the property map for a provider node, omitting empty
// optionals the way the ingestion contract expects.
func providerProps(p *models.Provider) map[string]any {
	props := map[string]any{
		"npi":                   p.NPI,
		"first_name":            p.FirstName,
		"last_name":             p.LastName,
		"is_active":             p.IsActive,
		"is_accepting_patients": p.IsAcceptingPatients,
		"is_golden_record":      p.IsGoldenRecord,
	}

	setIfPresent := func(key, val string) {
		if val != "" {
			props[key] = val
		}
	}
	setIfPresent("middle_name", p.MiddleName)
	setIfPresent("suffix", p.Suffix)
	setIfPresent("email", p.Email)
	setIfPresent("phone", p.Phone)
	setIfPresent("gender", p.Gender)
	setIfPresent("license_number", p.LicenseNumber)
	setIfPresent("source_system", p.SourceSystem)

	if p.DateOfBirth != nil {
		props["date_of_birth"] = p.DateOfBirth.UTC().Format(timeFormat)
	}
	if p.MasterRecordID != nil {
		props["master_record_id"] = *p.MasterRecordID
	}
	if p.ConfidenceScore != nil {
		props["confidence_score"] = *p.ConfidenceScore
	}

	return props
}

func mergeHistoryFromProps(props map[string]any) models.MergeHistory {
	h := models.MergeHistory{
		MergeID:     stringProp(props, "merge_id"),
		SourceNPI:   stringProp(props, "source_npi"),
		TargetNPI:   stringProp(props, "target_npi"),
		MergedBy:    stringProp(props, "merged_by"),
		MergeReason: stringProp(props, "merge_reason"),
	}
	if ts, err := time.Parse(timeFormat, stringProp(props, "merged_at")); err == nil {
		h.MergedAt = ts
	}
	if reversed, ok := props["is_reversed"].(bool); ok {
		h.IsReversed = reversed
	}
	if raw, ok := props["attributes_merged"].([]any); ok {
		for _, item := range raw {
			if s, ok := item.(string); ok {
				h.AttributesMerged = append(h.AttributesMerged, s)
			}
		}
	}
	return h
}

func stringProp(props map[string]any, key string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return ""
}

// storeError maps transport failures onto ErrStoreUnavailable so callers can
// distinguish "store down" from query-level failures.
func storeError(op string, err error) error {
	if neo4j.IsConnectivityError(err) {
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
