package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

// CompanyPayment tracks one company's payment for a billing month. A company
// has at most one row per year/month. Amount is optional; displays fall back
// to the company's order total for the month when it is unset. PaidAt nil
// means unpaid.
type CompanyPayment struct {
	ID        string
	CompanyID string
	Year      int
	Month     int
	DueDate   *time.Time
	PaidAt    *time.Time
	Amount    *decimal.Decimal
	Memo      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Paid reports whether payment has been recorded.
func (p *CompanyPayment) Paid() bool { return p.PaidAt != nil }

// Overdue reports an unpaid payment past its due date.
func (p *CompanyPayment) Overdue(now time.Time) bool {
	return !p.Paid() && p.DueDate != nil && p.DueDate.Before(now)
}

// Validate checks the field-level invariants.
func (p *CompanyPayment) Validate() error {
	var ve domain.ValidationError
	if p.CompanyID == "" {
		ve.Add("company_id", "must be present")
	}
	if p.Year < 2000 || p.Year > 2100 {
		ve.Add("year", "must be between 2000 and 2100")
	}
	if p.Month < 1 || p.Month > 12 {
		ve.Add("month", "must be between 1 and 12")
	}
	if p.Amount != nil && p.Amount.IsNegative() {
		ve.Add("amount", "must be greater than or equal to 0")
	}
	return ve.ErrOrNil()
}
