package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/application/usecase"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// In-memory fakes in the repository-embedding style: only the methods the
// use case touches are implemented, anything else panics.

type fakePayments struct {
	repository.CompanyPaymentRepository
	byID map[string]*entity.CompanyPayment
}

func (f *fakePayments) Create(_ context.Context, p *entity.CompanyPayment) error {
	for _, existing := range f.byID {
		if existing.CompanyID == p.CompanyID && existing.Year == p.Year && existing.Month == p.Month {
			return domain.ErrDuplicate
		}
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakePayments) Update(_ context.Context, p *entity.CompanyPayment) error {
	if _, ok := f.byID[p.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakePayments) GetByID(_ context.Context, id string) (*entity.CompanyPayment, error) {
	return f.byID[id], nil
}

func (f *fakePayments) List(_ context.Context, fl repository.CompanyPaymentFilter, _, _ int) ([]*entity.CompanyPayment, error) {
	var out []*entity.CompanyPayment
	for _, p := range f.byID {
		if fl.CompanyID != "" && p.CompanyID != fl.CompanyID {
			continue
		}
		switch fl.Status {
		case "paid":
			if !p.Paid() {
				continue
			}
		case "unpaid":
			if p.Paid() {
				continue
			}
		case "overdue":
			if !p.Overdue(fl.Now) {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeCompanies struct {
	repository.CompanyRepository
	byID map[string]*entity.Company
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.byID[id], nil
}

type fakeOrders struct {
	repository.OrderRepository
	monthly map[string]decimal.Decimal
}

func (f *fakeOrders) SumMonthlyTotal(_ context.Context, companyID string, year, month int) (decimal.Decimal, error) {
	return f.monthly[fmt.Sprintf("%s/%d-%02d", companyID, year, month)], nil
}

type paymentFixture struct {
	uc       *usecase.PaymentUseCase
	payments *fakePayments
	orders   *fakeOrders
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		payments: &fakePayments{byID: map[string]*entity.CompanyPayment{}},
		orders:   &fakeOrders{monthly: map[string]decimal.Decimal{}},
	}
	companies := &fakeCompanies{byID: map[string]*entity.Company{
		"company-1": {ID: "company-1", Name: "Acme Trading", Code: "ACME", IsActive: true},
	}}
	f.uc = usecase.NewPaymentUseCase(f.payments, companies, f.orders)
	return f
}

func strPtr(s string) *string { return &s }

func internalAdmin() policy.Principal {
	return policy.Principal{
		UserID: "user-ia", ProfileID: "profile-ia",
		Role: entity.RoleInternalAdmin, MemberStatus: entity.MemberActive,
	}
}

func TestPaymentDisplayAmountFallsBackToOrderTotal(t *testing.T) {
	f := newPaymentFixture()
	f.orders.monthly["company-1/2026-04"] = decimal.NewFromInt(86000)

	resp, err := f.uc.Create(context.Background(), internalAdmin(), dto.CreateCompanyPaymentRequest{
		CompanyID: "company-1", Year: 2026, Month: 4,
		DueDate: strPtr("2026-05-31"),
	})
	require.NoError(t, err)

	assert.Nil(t, resp.Amount)
	assert.True(t, resp.DisplayAmount.Equal(decimal.NewFromInt(86000)),
		"without a recorded amount, display the month's order total")
	assert.False(t, resp.Paid)

	// A recorded amount takes precedence over the fallback.
	amount := decimal.NewFromInt(50000)
	resp, err = f.uc.Update(context.Background(), internalAdmin(), resp.ID, dto.UpdateCompanyPaymentRequest{
		Amount: &amount,
	})
	require.NoError(t, err)
	assert.True(t, resp.DisplayAmount.Equal(decimal.NewFromInt(50000)))
}

func TestPaymentRejectsSecondRowForSameMonth(t *testing.T) {
	f := newPaymentFixture()
	in := dto.CreateCompanyPaymentRequest{CompanyID: "company-1", Year: 2026, Month: 4}

	_, err := f.uc.Create(context.Background(), internalAdmin(), in)
	require.NoError(t, err)

	_, err = f.uc.Create(context.Background(), internalAdmin(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPaymentCreateUnknownCompany(t *testing.T) {
	f := newPaymentFixture()
	_, err := f.uc.Create(context.Background(), internalAdmin(), dto.CreateCompanyPaymentRequest{
		CompanyID: "company-9", Year: 2026, Month: 4,
	})
	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "company_id", ve.Fields[0].Field)
}

func TestPaymentMarkPaidClearsOverdue(t *testing.T) {
	f := newPaymentFixture()
	ctx := context.Background()

	// A due date firmly in the past keeps the row overdue regardless of the
	// wall clock.
	resp, err := f.uc.Create(ctx, internalAdmin(), dto.CreateCompanyPaymentRequest{
		CompanyID: "company-1", Year: 2020, Month: 1,
		DueDate: strPtr("2020-02-10"),
	})
	require.NoError(t, err)

	overdue, err := f.uc.List(ctx, internalAdmin(), dto.CompanyPaymentListQuery{Status: "overdue"})
	require.NoError(t, err)
	require.Len(t, overdue, 1, "unpaid past the due date")

	_, err = f.uc.Update(ctx, internalAdmin(), resp.ID, dto.UpdateCompanyPaymentRequest{
		PaidAt: strPtr("2020-02-12"),
	})
	require.NoError(t, err)

	overdue, err = f.uc.List(ctx, internalAdmin(), dto.CompanyPaymentListQuery{Status: "overdue"})
	require.NoError(t, err)
	assert.Empty(t, overdue)

	paid, err := f.uc.List(ctx, internalAdmin(), dto.CompanyPaymentListQuery{Status: "paid"})
	require.NoError(t, err)
	require.Len(t, paid, 1)
	assert.Equal(t, "2020-02-12", *paid[0].PaidAt)
}

func TestPaymentListRejectsUnknownStatus(t *testing.T) {
	f := newPaymentFixture()
	_, err := f.uc.List(context.Background(), internalAdmin(), dto.CompanyPaymentListQuery{Status: "late"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPaymentForbiddenForTenants(t *testing.T) {
	f := newPaymentFixture()
	tenant := policy.Principal{
		UserID: "user-admin", ProfileID: "profile-admin",
		Role: entity.RoleCompanyAdmin, MemberStatus: entity.MemberActive,
		CompanyID: strPtr("company-1"),
	}

	_, err := f.uc.List(context.Background(), tenant, dto.CompanyPaymentListQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.uc.Create(context.Background(), tenant, dto.CreateCompanyPaymentRequest{
		CompanyID: "company-1", Year: 2026, Month: 4,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
