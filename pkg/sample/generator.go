// Package sample generates realistic provider records for demos and seeding.
package sample

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vikbht/provider-mdm-graph/pkg/models"
)

var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael",
		"Linda", "William", "Elizabeth", "David", "Barbara", "Richard", "Susan",
		"Joseph", "Jessica", "Thomas", "Sarah", "Charles", "Karen",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
		"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
		"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	}
	cities = []string{
		"Boston", "Chicago", "Houston", "Phoenix", "Philadelphia", "Denver",
		"Seattle", "Atlanta", "Portland", "Austin",
	}
	states        = []string{"MA", "IL", "TX", "AZ", "PA", "CO", "WA", "GA", "OR", "NY"}
	sourceSystems = []string{"epic", "cerner", "athena", "credentialing"}
	licenseTypes  = []string{"MD", "DO", "NP", "PA"}

	specialties = []models.Specialty{
		{SpecialtyCode: "207Q00000X", SpecialtyName: "Family Medicine", SpecialtyType: "primary", TaxonomyCode: "207Q00000X"},
		{SpecialtyCode: "207R00000X", SpecialtyName: "Internal Medicine", SpecialtyType: "primary", TaxonomyCode: "207R00000X"},
		{SpecialtyCode: "207T00000X", SpecialtyName: "Neurological Surgery", SpecialtyType: "primary", TaxonomyCode: "207T00000X"},
		{SpecialtyCode: "208D00000X", SpecialtyName: "General Practice", SpecialtyType: "primary", TaxonomyCode: "208D00000X"},
		{SpecialtyCode: "207RC0000X", SpecialtyName: "Cardiovascular Disease", SpecialtyType: "secondary", TaxonomyCode: "207RC0000X"},
	}

	organizations = []string{
		"General Hospital", "Regional Medical Center", "Community Health Partners",
		"University Medical Group", "Valley Care Clinic",
	}
)

// Generator produces deterministic sample data from a seed, so demo runs and
// tests are repeatable.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded with the given value.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Provider generates a valid random provider record.
func (g *Generator) Provider() models.Provider {
	first := firstNames[g.rng.Intn(len(firstNames))]
	last := lastNames[g.rng.Intn(len(lastNames))]
	dob := time.Date(1950+g.rng.Intn(45), time.Month(1+g.rng.Intn(12)), 1+g.rng.Intn(28), 0, 0, 0, 0, time.UTC)

	return models.Provider{
		NPI:                 g.npi(),
		FirstName:           first,
		LastName:            last,
		Email:               fmt.Sprintf("%s.%s%d@example.com", lower(first), lower(last), g.rng.Intn(1000)),
		Phone:               fmt.Sprintf("+1%d", 2000000000+g.rng.Int63n(7999999999)),
		DateOfBirth:         &dob,
		Gender:              []string{"M", "F"}[g.rng.Intn(2)],
		LicenseNumber:       g.license(),
		IsActive:            true,
		IsAcceptingPatients: g.rng.Intn(4) > 0,
		SourceSystem:        sourceSystems[g.rng.Intn(len(sourceSystems))],
	}
}

// DuplicateOf derives a near-duplicate of the given provider, the kind of
// record the matching pipeline exists to catch: a fresh NPI from a different
// source system, but the same person behind it. Name, license, and usually
// email survive; phone drifts.
func (g *Generator) DuplicateOf(p models.Provider) models.Provider {
	dup := p
	dup.NPI = g.npi()
	dup.SourceSystem = sourceSystems[g.rng.Intn(len(sourceSystems))]
	dup.Phone = fmt.Sprintf("+1%d", 2000000000+g.rng.Int63n(7999999999))
	if g.rng.Intn(3) == 0 {
		dup.Email = fmt.Sprintf("%s.%s@example.org", lower(p.FirstName), lower(p.LastName))
	}
	if g.rng.Intn(3) == 0 {
		dup.MiddleName = string(firstNames[g.rng.Intn(len(firstNames))][0]) + "."
	}
	return dup
}

// Location generates a random practice location.
func (g *Generator) Location() models.Location {
	i := g.rng.Intn(len(cities))
	return models.Location{
		LocationID:   fmt.Sprintf("LOC-%06d", g.rng.Intn(1000000)),
		Address:      fmt.Sprintf("%d Main St", 1+g.rng.Intn(9999)),
		City:         cities[i],
		State:        states[i],
		ZipCode:      fmt.Sprintf("%05d", 10000+g.rng.Intn(89999)),
		Country:      "USA",
		LocationType: []string{"practice", "hospital", "clinic"}[g.rng.Intn(3)],
	}
}

// Specialty picks a random specialty, occasionally board certified.
func (g *Generator) Specialty() models.Specialty {
	sp := specialties[g.rng.Intn(len(specialties))]
	if g.rng.Intn(2) == 0 {
		cert := time.Date(2000+g.rng.Intn(24), time.Month(1+g.rng.Intn(12)), 1, 0, 0, 0, 0, time.UTC)
		sp.BoardCertified = true
		sp.CertificationDate = &cert
	}
	return sp
}

// Credential generates an active license credential.
func (g *Generator) Credential() models.Credential {
	issued := time.Date(2010+g.rng.Intn(12), time.Month(1+g.rng.Intn(12)), 1, 0, 0, 0, 0, time.UTC)
	return models.Credential{
		CredentialID:   fmt.Sprintf("CRED-%06d", g.rng.Intn(1000000)),
		LicenseNumber:  g.license(),
		LicenseType:    licenseTypes[g.rng.Intn(len(licenseTypes))],
		LicenseState:   states[g.rng.Intn(len(states))],
		IssueDate:      issued,
		ExpirationDate: issued.AddDate(10, 0, 0),
		Status:         "active",
	}
}

// Affiliation generates an active organization affiliation.
func (g *Generator) Affiliation() models.Affiliation {
	return models.Affiliation{
		AffiliationID:    fmt.Sprintf("AFF-%06d", g.rng.Intn(1000000)),
		OrganizationName: organizations[g.rng.Intn(len(organizations))],
		OrganizationType: []string{"hospital", "medical_group", "insurance"}[g.rng.Intn(3)],
		RelationshipType: []string{"employed", "affiliated", "contracted"}[g.rng.Intn(3)],
		StartDate:        time.Date(2015+g.rng.Intn(9), time.Month(1+g.rng.Intn(12)), 1, 0, 0, 0, 0, time.UTC),
		IsActive:         true,
	}
}

func (g *Generator) npi() string {
	return fmt.Sprintf("%010d", 1000000000+g.rng.Int63n(8999999999))
}

func (g *Generator) license() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, 8)
	b[0] = chars[g.rng.Intn(26)]
	b[1] = chars[g.rng.Intn(26)]
	for i := 2; i < len(b); i++ {
		b[i] = chars[26+g.rng.Intn(10)]
	}
	return string(b)
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}
