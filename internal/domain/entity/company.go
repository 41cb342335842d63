package entity

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

var (
	orderPrefixRe = regexp.MustCompile(`^[A-Z0-9]+$`)
	domainRe      = regexp.MustCompile(`^[a-z0-9]+([\-.][a-z0-9]+)*\.[a-z]{2,}$`)
)

// Company is the tenant root. Every center, item, order and order line is
// owned by exactly one company; OrderSeq is the monotonic counter behind
// per-company order numbering.
type Company struct {
	ID           string
	Name         string
	Code         string   // unique platform-wide
	Domains      []string // signup email domains for auto-assignment
	OrderPrefix  string
	OrderSeq     int64
	PostalCode   string
	Prefecture   string
	City         string
	Address1     string
	Address2     string
	PaymentTerms string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate checks the company invariants and returns field-level errors.
func (c *Company) Validate() error {
	var ve domain.ValidationError
	if strings.TrimSpace(c.Name) == "" {
		ve.Add("name", "must be present")
	}
	if len(c.Name) > 255 {
		ve.Add("name", "must be at most 255 characters")
	}
	if strings.TrimSpace(c.Code) == "" {
		ve.Add("code", "must be present")
	}
	if len(c.Code) > 50 {
		ve.Add("code", "must be at most 50 characters")
	}
	if c.OrderPrefix == "" {
		ve.Add("order_prefix", "must be present")
	} else if len(c.OrderPrefix) > 10 {
		ve.Add("order_prefix", "must be at most 10 characters")
	} else if !orderPrefixRe.MatchString(c.OrderPrefix) {
		ve.Add("order_prefix", "must be uppercase alphanumeric")
	}
	if c.OrderSeq < 0 {
		ve.Add("order_seq", "must be greater than or equal to 0")
	}
	if len(c.Domains) == 0 {
		ve.Add("domains", "must have at least one domain")
	}
	for _, d := range c.Domains {
		if !domainRe.MatchString(strings.ToLower(d)) {
			ve.Add("domains", "contains invalid domain: "+d)
		}
	}
	return ve.ErrOrNil()
}

// MatchesEmailDomain reports whether the email's domain is one of the
// company's signup domains (case-insensitive).
func (c *Company) MatchesEmailDomain(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	emailDomain := strings.ToLower(email[at+1:])
	for _, d := range c.Domains {
		if strings.ToLower(d) == emailDomain {
			return true
		}
	}
	return false
}

// FormatOrderNo renders a sequence value as "{PREFIX}-{seq}" with the
// sequence zero-padded to at least 7 digits (wider values keep all digits).
func (c *Company) FormatOrderNo(seq int64) string {
	return fmt.Sprintf("%s-%07d", c.OrderPrefix, seq)
}

// FullAddress joins the postal fields into a single invoice-ready line.
func (c *Company) FullAddress() string {
	return joinAddress(c.PostalCode, c.Prefecture, c.City, c.Address1, c.Address2)
}

func joinAddress(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
