package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vikbht/provider-mdm-graph/pkg/apperrors"
)

func TestProvider_Validate(t *testing.T) {
	valid := Provider{
		NPI:       "1234567890",
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     "+15551234567",
	}

	t.Run("valid provider", func(t *testing.T) {
		p := valid
		assert.NoError(t, p.Validate())
	})

	t.Run("npi must be ten digits", func(t *testing.T) {
		for _, npi := range []string{"", "123", "12345678901", "12345abcde"} {
			p := valid
			p.NPI = npi

			err := p.Validate()
			var validationErr *apperrors.ValidationError
			require.ErrorAs(t, err, &validationErr, "npi %q", npi)
			assert.Equal(t, "npi", validationErr.Field)
		}
	})

	t.Run("email checked only when present", func(t *testing.T) {
		p := valid
		p.Email = ""
		assert.NoError(t, p.Validate())

		p.Email = "not-an-email"
		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, p.Validate(), &validationErr)
		assert.Equal(t, "email", validationErr.Field)
	})

	t.Run("phone checked only when present", func(t *testing.T) {
		p := valid
		p.Phone = ""
		assert.NoError(t, p.Validate())

		p.Phone = "call-me"
		assert.Error(t, p.Validate())
	})
}

func TestProvider_FullName(t *testing.T) {
	tests := []struct {
		name        string
		first, last string
		want        string
	}{
		{"both names", "Jane", "Doe", "Jane Doe"},
		{"first only", "Jane", "", "Jane"},
		{"last only", "", "Doe", "Doe"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Provider{FirstName: tt.first, LastName: tt.last}
			assert.Equal(t, tt.want, p.FullName())
		})
	}
}

func TestLocation_Validate(t *testing.T) {
	loc := Location{LocationID: "LOC-1", Address: "1 Main St", City: "Boston", State: "MA", ZipCode: "02110", Country: "USA"}

	assert.NoError(t, loc.Validate())

	t.Run("plus four zip accepted", func(t *testing.T) {
		l := loc
		l.ZipCode = "02110-1234"
		assert.NoError(t, l.Validate())
	})

	t.Run("missing id rejected", func(t *testing.T) {
		l := loc
		l.LocationID = ""
		assert.Error(t, l.Validate())
	})

	t.Run("bad zip rejected", func(t *testing.T) {
		l := loc
		l.ZipCode = "ABCDE"
		assert.Error(t, l.Validate())
	})
}

func TestCredential_Validate(t *testing.T) {
	cred := Credential{
		CredentialID:   "CRED-1",
		LicenseNumber:  "AB12345",
		LicenseType:    "MD",
		LicenseState:   "MA",
		IssueDate:      time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpirationDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:         "active",
	}

	assert.NoError(t, cred.Validate())

	t.Run("lowercase license rejected", func(t *testing.T) {
		c := cred
		c.LicenseNumber = "ab12345"
		assert.Error(t, c.Validate())
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		c := cred
		c.Status = "pending"
		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, c.Validate(), &validationErr)
		assert.Equal(t, "status", validationErr.Field)
	})

	t.Run("all known statuses accepted", func(t *testing.T) {
		for _, status := range CredentialStatuses {
			c := cred
			c.Status = status
			assert.NoError(t, c.Validate(), "status %q", status)
		}
	})
}

func TestSpecialtyAndAffiliation_Validate(t *testing.T) {
	sp := Specialty{SpecialtyCode: "207Q00000X", SpecialtyName: "Family Medicine", SpecialtyType: "primary"}
	assert.NoError(t, sp.Validate())
	sp.SpecialtyCode = ""
	assert.Error(t, sp.Validate())

	af := Affiliation{AffiliationID: "AFF-1", OrganizationName: "General Hospital", OrganizationType: "hospital", RelationshipType: "employed", StartDate: time.Now(), IsActive: true}
	assert.NoError(t, af.Validate())
	af.AffiliationID = ""
	assert.Error(t, af.Validate())
}
