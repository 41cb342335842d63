package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCompanyPaymentRequest opens payment tracking for a company's billing
// month. Dates are "2006-01-02"; a nil amount falls back to the company's
// order total for the month on display.
type CreateCompanyPaymentRequest struct {
	CompanyID string           `json:"company_id"`
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	DueDate   *string          `json:"due_date"`
	Amount    *decimal.Decimal `json:"amount"`
	Memo      string           `json:"memo"`
}

// UpdateCompanyPaymentRequest mutates a payment row. Nil fields are left
// untouched; PaidAt set to an empty string clears the paid mark.
type UpdateCompanyPaymentRequest struct {
	DueDate *string          `json:"due_date"`
	PaidAt  *string          `json:"paid_at"`
	Amount  *decimal.Decimal `json:"amount"`
	Memo    *string          `json:"memo"`
}

// CompanyPaymentListQuery narrows the payment listing.
type CompanyPaymentListQuery struct {
	PageRequest
	CompanyID string `query:"company_id"`
	Year      int    `query:"year"`
	Status    string `query:"status"` // paid, unpaid, overdue
}

// CompanyPaymentResponse is the bookkeeping view of one billing month.
// DisplayAmount is the recorded amount when set, otherwise the company's
// non-cancelled order total for the month.
type CompanyPaymentResponse struct {
	ID            string           `json:"id"`
	CompanyID     string           `json:"company_id"`
	Year          int              `json:"year"`
	Month         int              `json:"month"`
	DueDate       *string          `json:"due_date"`
	PaidAt        *string          `json:"paid_at"`
	Amount        *decimal.Decimal `json:"amount"`
	DisplayAmount decimal.Decimal  `json:"display_amount"`
	Memo          string           `json:"memo,omitempty"`
	Paid          bool             `json:"paid"`
	Overdue       bool             `json:"overdue"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// UpdateIssuerSettingRequest replaces the platform issuer identity printed
// on documents.
type UpdateIssuerSettingRequest struct {
	Name               string `json:"name"`
	PostalCode         string `json:"postal_code"`
	Prefecture         string `json:"prefecture"`
	City               string `json:"city"`
	Address1           string `json:"address1"`
	Address2           string `json:"address2"`
	Phone              string `json:"phone"`
	Fax                string `json:"fax"`
	RegistrationNumber string `json:"registration_number"`
	BankAccount1       string `json:"bank_account_1"`
	BankAccount2       string `json:"bank_account_2"`
}

// IssuerSettingResponse is the issuer identity view.
type IssuerSettingResponse struct {
	Name               string    `json:"name"`
	PostalCode         string    `json:"postal_code,omitempty"`
	Prefecture         string    `json:"prefecture,omitempty"`
	City               string    `json:"city,omitempty"`
	Address1           string    `json:"address1,omitempty"`
	Address2           string    `json:"address2,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	Fax                string    `json:"fax,omitempty"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	BankAccount1       string    `json:"bank_account_1,omitempty"`
	BankAccount2       string    `json:"bank_account_2,omitempty"`
	FullAddress        string    `json:"full_address,omitempty"`
	Configured         bool      `json:"configured"`
	UpdatedAt          time.Time `json:"updated_at"`
}
