package entity

import (
	"strings"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

// Manufacturer is a platform-level master record: one manufacturer supplies
// items to many companies and sees shipment requests across all of them.
// Domains work like company domains: users signing up with a matching email
// domain become manufacturer accounts.
type Manufacturer struct {
	ID           string
	Code         string // unique platform-wide
	Name         string
	Domains      []string
	PaymentTerms string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DisplayName is "{code}: {name}".
func (m *Manufacturer) DisplayName() string {
	return m.Code + ": " + m.Name
}

// MatchesEmailDomain reports whether the email's domain is one of the
// manufacturer's signup domains.
func (m *Manufacturer) MatchesEmailDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	emailDomain := strings.ToLower(email[at+1:])
	for _, d := range m.Domains {
		if strings.ToLower(d) == emailDomain {
			return true
		}
	}
	return false
}

// Validate checks the manufacturer invariants. Domains are optional here,
// but any present must be syntactically valid.
func (m *Manufacturer) Validate() error {
	var ve domain.ValidationError
	if strings.TrimSpace(m.Code) == "" {
		ve.Add("code", "must be present")
	}
	if len(m.Code) > 50 {
		ve.Add("code", "must be at most 50 characters")
	}
	if strings.TrimSpace(m.Name) == "" {
		ve.Add("name", "must be present")
	}
	if len(m.Name) > 255 {
		ve.Add("name", "must be at most 255 characters")
	}
	for _, d := range m.Domains {
		if !domainRe.MatchString(strings.ToLower(d)) {
			ve.Add("domains", "contains invalid domain: "+d)
		}
	}
	return ve.ErrOrNil()
}
