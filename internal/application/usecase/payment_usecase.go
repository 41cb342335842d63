package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

const paymentDateLayout = "2006-01-02"

// PaymentUseCase tracks per-company monthly payments. Platform-operator
// bookkeeping; every operation is internal-admin only.
type PaymentUseCase struct {
	payments  repository.CompanyPaymentRepository
	companies repository.CompanyRepository
	orders    repository.OrderRepository
	pol       policy.CompanyPaymentPolicy
}

// NewPaymentUseCase builds the payment use case.
func NewPaymentUseCase(
	payments repository.CompanyPaymentRepository,
	companies repository.CompanyRepository,
	orders repository.OrderRepository,
) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, companies: companies, orders: orders}
}

// List returns payments matching the query, newest billing month first.
func (uc *PaymentUseCase) List(ctx context.Context, p policy.Principal, q dto.CompanyPaymentListQuery) ([]dto.CompanyPaymentResponse, error) {
	if !uc.pol.CanManage(p) {
		return nil, domain.ErrForbidden
	}
	switch q.Status {
	case "", "paid", "unpaid", "overdue":
	default:
		return nil, domain.ErrInvalidInput
	}
	q.DefaultPage()
	f := repository.CompanyPaymentFilter{
		CompanyID: q.CompanyID,
		Year:      q.Year,
		Status:    q.Status,
		Now:       time.Now(),
	}
	payments, err := uc.payments.List(ctx, f, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyPaymentResponse, 0, len(payments))
	for _, pay := range payments {
		resp, err := uc.toResponse(ctx, pay)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Get returns one payment row.
func (uc *PaymentUseCase) Get(ctx context.Context, p policy.Principal, id string) (*dto.CompanyPaymentResponse, error) {
	if !uc.pol.CanManage(p) {
		return nil, domain.ErrForbidden
	}
	pay, err := uc.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pay == nil {
		return nil, domain.ErrNotFound
	}
	resp, err := uc.toResponse(ctx, pay)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Create opens payment tracking for a company's billing month. A second row
// for the same company and month is rejected as a duplicate.
func (uc *PaymentUseCase) Create(ctx context.Context, p policy.Principal, in dto.CreateCompanyPaymentRequest) (*dto.CompanyPaymentResponse, error) {
	if !uc.pol.CanManage(p) {
		return nil, domain.ErrForbidden
	}
	company, err := uc.companies.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		var ve domain.ValidationError
		ve.Add("company_id", "must exist")
		return nil, ve.ErrOrNil()
	}
	dueDate, err := parsePaymentDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pay := &entity.CompanyPayment{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		Year:      in.Year,
		Month:     in.Month,
		DueDate:   dueDate,
		Amount:    in.Amount,
		Memo:      strings.TrimSpace(in.Memo),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := pay.Validate(); err != nil {
		return nil, err
	}
	if err := uc.payments.Create(ctx, pay); err != nil {
		return nil, err
	}
	resp, err := uc.toResponse(ctx, pay)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Update mutates a payment row; nil request fields are left untouched. An
// empty paid_at string clears the paid mark.
func (uc *PaymentUseCase) Update(ctx context.Context, p policy.Principal, id string, in dto.UpdateCompanyPaymentRequest) (*dto.CompanyPaymentResponse, error) {
	if !uc.pol.CanManage(p) {
		return nil, domain.ErrForbidden
	}
	pay, err := uc.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pay == nil {
		return nil, domain.ErrNotFound
	}
	if in.DueDate != nil {
		t, err := parsePaymentDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		pay.DueDate = t
	}
	if in.PaidAt != nil {
		if *in.PaidAt == "" {
			pay.PaidAt = nil
		} else {
			t, err := parsePaymentDate(in.PaidAt)
			if err != nil {
				return nil, err
			}
			pay.PaidAt = t
		}
	}
	if in.Amount != nil {
		pay.Amount = in.Amount
	}
	if in.Memo != nil {
		pay.Memo = strings.TrimSpace(*in.Memo)
	}
	pay.UpdatedAt = time.Now()
	if err := pay.Validate(); err != nil {
		return nil, err
	}
	if err := uc.payments.Update(ctx, pay); err != nil {
		return nil, err
	}
	resp, err := uc.toResponse(ctx, pay)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Delete removes a payment row.
func (uc *PaymentUseCase) Delete(ctx context.Context, p policy.Principal, id string) error {
	if !uc.pol.CanManage(p) {
		return domain.ErrForbidden
	}
	return uc.payments.Delete(ctx, id)
}

// toResponse fills DisplayAmount: the recorded amount when set, otherwise
// the company's non-cancelled order total for the billing month.
func (uc *PaymentUseCase) toResponse(ctx context.Context, pay *entity.CompanyPayment) (dto.CompanyPaymentResponse, error) {
	display := decimal.Zero
	if pay.Amount != nil {
		display = *pay.Amount
	} else {
		total, err := uc.orders.SumMonthlyTotal(ctx, pay.CompanyID, pay.Year, pay.Month)
		if err != nil {
			return dto.CompanyPaymentResponse{}, err
		}
		display = total
	}
	return dto.CompanyPaymentResponse{
		ID:            pay.ID,
		CompanyID:     pay.CompanyID,
		Year:          pay.Year,
		Month:         pay.Month,
		DueDate:       formatPaymentDate(pay.DueDate),
		PaidAt:        formatPaymentDate(pay.PaidAt),
		Amount:        pay.Amount,
		DisplayAmount: display,
		Memo:          pay.Memo,
		Paid:          pay.Paid(),
		Overdue:       pay.Overdue(time.Now()),
		CreatedAt:     pay.CreatedAt,
		UpdatedAt:     pay.UpdatedAt,
	}, nil
}

func parsePaymentDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(paymentDateLayout, *s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

func formatPaymentDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(paymentDateLayout)
	return &s
}
