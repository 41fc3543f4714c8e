// Package models defines the master records, related entities, and
// pipeline result types for the provider MDM system.
package models

import (
	"regexp"
	"time"

	"github.com/vikbht/provider-mdm-graph/pkg/apperrors"
)

var (
	npiPattern     = regexp.MustCompile(`^\d{10}$`)
	emailPattern   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern   = regexp.MustCompile(`^\+?1?\d{10,15}$`)
	zipPattern     = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	licensePattern = regexp.MustCompile(`^[A-Z0-9]{5,20}$`)
)

// Provider is the master record for a healthcare provider, keyed by NPI.
type Provider struct {
	NPI        string `json:"npi" db:"npi"`
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name,omitempty"`
	LastName   string `json:"last_name"`
	Suffix     string `json:"suffix,omitempty"`

	Email         string     `json:"email,omitempty"`
	Phone         string     `json:"phone,omitempty"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	LicenseNumber string     `json:"license_number,omitempty"`

	IsActive            bool `json:"is_active"`
	IsAcceptingPatients bool `json:"is_accepting_patients"`

	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	SourceSystem string    `json:"source_system,omitempty"`

	// MDM fields
	IsGoldenRecord  bool     `json:"is_golden_record"`
	MasterRecordID  *string  `json:"master_record_id,omitempty"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
}

// Validate enforces the strongly-typed field constraints. Violations here are
// hard failures, unlike data-quality issues which are accumulated diagnostics.
func (p *Provider) Validate() error {
	if !npiPattern.MatchString(p.NPI) {
		return apperrors.NewValidationError("npi", "must be exactly 10 digits")
	}
	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		return apperrors.NewValidationError("email", "invalid email format")
	}
	if p.Phone != "" && !phonePattern.MatchString(p.Phone) {
		return apperrors.NewValidationError("phone", "invalid phone format")
	}
	return nil
}

// FullName returns the space-joined first and last name used for matching.
func (p *Provider) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// Location is a practice address attached to a provider.
type Location struct {
	LocationID   string `json:"location_id"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
	LocationType string `json:"location_type,omitempty"` // practice, hospital, clinic
}

func (l *Location) Validate() error {
	if l.LocationID == "" {
		return apperrors.NewValidationError("location_id", "is required")
	}
	if !zipPattern.MatchString(l.ZipCode) {
		return apperrors.NewValidationError("zip_code", "invalid ZIP code format")
	}
	return nil
}

// Specialty is a medical specialty attached to a provider.
type Specialty struct {
	SpecialtyCode     string     `json:"specialty_code"`
	SpecialtyName     string     `json:"specialty_name"`
	SpecialtyType     string     `json:"specialty_type"` // primary, secondary
	TaxonomyCode      string     `json:"taxonomy_code,omitempty"`
	BoardCertified    bool       `json:"board_certified"`
	CertificationDate *time.Time `json:"certification_date,omitempty"`
}

func (s *Specialty) Validate() error {
	if s.SpecialtyCode == "" {
		return apperrors.NewValidationError("specialty_code", "is required")
	}
	return nil
}

// CredentialStatuses are the accepted license statuses.
var CredentialStatuses = []string{"active", "expired", "suspended", "revoked"}

// Credential is a professional license attached to a provider.
type Credential struct {
	CredentialID   string    `json:"credential_id"`
	LicenseNumber  string    `json:"license_number"`
	LicenseType    string    `json:"license_type"` // MD, DO, NP, PA, etc.
	LicenseState   string    `json:"license_state"`
	IssueDate      time.Time `json:"issue_date"`
	ExpirationDate time.Time `json:"expiration_date"`
	Status         string    `json:"status"`
}

func (c *Credential) Validate() error {
	if c.CredentialID == "" {
		return apperrors.NewValidationError("credential_id", "is required")
	}
	if !licensePattern.MatchString(c.LicenseNumber) {
		return apperrors.NewValidationError("license_number", "invalid license number format")
	}
	for _, s := range CredentialStatuses {
		if c.Status == s {
			return nil
		}
	}
	return apperrors.NewValidationError("status", "must be one of active, expired, suspended, revoked")
}

// Affiliation is a hospital or organization relationship for a provider.
type Affiliation struct {
	AffiliationID    string     `json:"affiliation_id"`
	OrganizationName string     `json:"organization_name"`
	OrganizationType string     `json:"organization_type"` // hospital, medical_group, insurance
	RelationshipType string     `json:"relationship_type"` // employed, affiliated, contracted
	StartDate        time.Time  `json:"start_date"`
	EndDate          *time.Time `json:"end_date,omitempty"`
	IsActive         bool       `json:"is_active"`
}

func (a *Affiliation) Validate() error {
	if a.AffiliationID == "" {
		return apperrors.NewValidationError("affiliation_id", "is required")
	}
	return nil
}
