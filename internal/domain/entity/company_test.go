package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

func validCompany() *entity.Company {
	return &entity.Company{
		ID:          "company-1",
		Name:        "Acme Trading",
		Code:        "ACME",
		Domains:     []string{"acme.example"},
		OrderPrefix: "ACM",
		IsActive:    true,
	}
}

func TestCompanyFormatOrderNo(t *testing.T) {
	c := validCompany()

	assert.Equal(t, "ACM-0000001", c.FormatOrderNo(1))
	assert.Equal(t, "ACM-0012345", c.FormatOrderNo(12345))
	// Wider sequences keep all digits instead of truncating.
	assert.Equal(t, "ACM-123456789", c.FormatOrderNo(123456789))
}

func TestCompanyMatchesEmailDomain(t *testing.T) {
	c := validCompany()
	c.Domains = []string{"acme.example", "acme.co.jp"}

	assert.True(t, c.MatchesEmailDomain("alice@acme.example"))
	assert.True(t, c.MatchesEmailDomain("bob@ACME.CO.JP"))
	assert.False(t, c.MatchesEmailDomain("carol@other.example"))
	assert.False(t, c.MatchesEmailDomain("not-an-email"))
	assert.False(t, c.MatchesEmailDomain("trailing@"))
}

func TestCompanyValidate(t *testing.T) {
	require.NoError(t, validCompany().Validate())

	c := validCompany()
	c.OrderPrefix = "acm"
	assert.Error(t, c.Validate(), "prefix must be uppercase alphanumeric")

	c = validCompany()
	c.OrderPrefix = ""
	assert.Error(t, c.Validate())

	c = validCompany()
	c.Domains = nil
	assert.Error(t, c.Validate())

	c = validCompany()
	c.Domains = []string{"not a domain"}
	assert.Error(t, c.Validate())
}
