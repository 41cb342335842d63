package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestCompanyPaymentPaidAndOverdue(t *testing.T) {
	now := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)
	p := &entity.CompanyPayment{
		CompanyID: "company-1", Year: 2026, Month: 4,
		DueDate: timePtr(time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)),
	}

	assert.False(t, p.Paid())
	assert.True(t, p.Overdue(now))

	p.PaidAt = timePtr(time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC))
	assert.True(t, p.Paid())
	assert.False(t, p.Overdue(now), "a paid month is never overdue")

	p.PaidAt = nil
	p.DueDate = nil
	assert.False(t, p.Overdue(now), "no due date, nothing to be late against")
}

func TestCompanyPaymentValidate(t *testing.T) {
	p := &entity.CompanyPayment{CompanyID: "company-1", Year: 2026, Month: 4}
	require.NoError(t, p.Validate())

	p.Month = 13
	assert.Error(t, p.Validate())

	p.Month = 4
	neg := decimal.NewFromInt(-1)
	p.Amount = &neg
	assert.Error(t, p.Validate())
}

func TestIssuerSettingConfiguredAndAddress(t *testing.T) {
	s := &entity.IssuerSetting{}
	assert.False(t, s.Configured())

	s.Name = "OrderDesk Inc"
	s.PostalCode = "100-0005"
	s.Prefecture = "Tokyo"
	s.City = "Chiyoda"
	s.Address1 = "2-7-2"
	assert.True(t, s.Configured())
	assert.Equal(t, "100-0005 Tokyo Chiyoda 2-7-2", s.FullAddress())
	require.NoError(t, s.Validate())

	s.PostalCode = "not-a-postal-code"
	assert.Error(t, s.Validate())
}
