package entity

import (
	"strings"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

// IssuerSetting is the platform-wide issuer identity printed on invoices and
// statements: company name, address, contact and bank details of the
// operator. A single row exists; while the name is blank, documents fall back
// to the tenant company as issuer.
type IssuerSetting struct {
	ID                 string
	Name               string
	PostalCode         string
	Prefecture         string
	City               string
	Address1           string
	Address2           string
	Phone              string
	Fax                string
	RegistrationNumber string
	BankAccount1       string
	BankAccount2       string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Configured reports whether an issuer identity has been set up.
func (s *IssuerSetting) Configured() bool {
	return strings.TrimSpace(s.Name) != ""
}

// FullAddress joins the address fields into one line.
func (s *IssuerSetting) FullAddress() string {
	return joinAddress(s.PostalCode, s.Prefecture, s.City, s.Address1, s.Address2)
}

// Validate checks the field-level invariants.
func (s *IssuerSetting) Validate() error {
	var ve domain.ValidationError
	if len(s.Name) > 255 {
		ve.Add("name", "must be at most 255 characters")
	}
	if s.PostalCode != "" && !postalCodeRe.MatchString(s.PostalCode) {
		ve.Add("postal_code", "must be valid format (e.g., 123-4567)")
	}
	return ve.ErrOrNil()
}
