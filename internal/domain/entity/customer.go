package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

var postalCodeRe = regexp.MustCompile(`^\d{3}-?\d{4}$`)

// Customer is a center belonging to a company: either a billing center
// (invoicing aggregation point) or a receiving center that must reference a
// billing center of the same company. Receiving centers optionally carry an
// approver profile used for order approval routing.
type Customer struct {
	ID                    string
	CompanyID             string
	CenterCode            string // unique per company
	CenterName            string
	PostalCode            string
	Prefecture            string
	City                  string
	Address1              string
	Address2              string
	IsBillingCenter       bool
	BillingCenterID       *string
	ApproverUserProfileID *string
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// DisplayName is "{code}: {name}".
func (c *Customer) DisplayName() string {
	return c.CenterCode + ": " + c.CenterName
}

// FullAddress joins the address fields into one line.
func (c *Customer) FullAddress() string {
	return joinAddress(c.PostalCode, c.Prefecture, c.City, c.Address1, c.Address2)
}

// ShippingSnapshot freezes the center address for an order at creation time.
type ShippingSnapshot struct {
	PostalCode string
	Prefecture string
	City       string
	Address1   string
	Address2   string
	CenterName string
}

// ToShippingSnapshot returns the address snapshot copied onto new orders.
func (c *Customer) ToShippingSnapshot() ShippingSnapshot {
	return ShippingSnapshot{
		PostalCode: c.PostalCode,
		Prefecture: c.Prefecture,
		City:       c.City,
		Address1:   c.Address1,
		Address2:   c.Address2,
		CenterName: c.CenterName,
	}
}

// Validate checks the field-level invariants. The billing-center reference
// rules need the referenced row and are enforced via ValidateBillingCenter.
func (c *Customer) Validate() error {
	var ve domain.ValidationError
	if strings.TrimSpace(c.CenterCode) == "" {
		ve.Add("center_code", "must be present")
	}
	if len(c.CenterCode) > 50 {
		ve.Add("center_code", "must be at most 50 characters")
	}
	if strings.TrimSpace(c.CenterName) == "" {
		ve.Add("center_name", "must be present")
	}
	if len(c.CenterName) > 255 {
		ve.Add("center_name", "must be at most 255 characters")
	}
	if c.CompanyID == "" {
		ve.Add("company_id", "must be present")
	}
	if c.PostalCode != "" && !postalCodeRe.MatchString(c.PostalCode) {
		ve.Add("postal_code", "must be valid format (e.g., 123-4567)")
	}
	if !c.IsBillingCenter && c.BillingCenterID == nil {
		ve.Add("billing_center_id", "must be present for receiving centers")
	}
	if c.IsBillingCenter && c.BillingCenterID != nil {
		ve.Add("billing_center_id", "cannot be set on a billing center")
	}
	return ve.ErrOrNil()
}

// ValidateBillingCenter enforces the relational rules against the resolved
// billing center: same company, actually a billing center, not itself.
func (c *Customer) ValidateBillingCenter(billingCenter *Customer) error {
	if c.BillingCenterID == nil {
		return nil
	}
	var ve domain.ValidationError
	if c.ID != "" && *c.BillingCenterID == c.ID {
		ve.Add("billing_center_id", "cannot be itself")
		return ve.ErrOrNil()
	}
	if billingCenter == nil {
		ve.Add("billing_center_id", "must exist")
		return ve.ErrOrNil()
	}
	if billingCenter.CompanyID != c.CompanyID {
		ve.Add("billing_center_id", "must belong to the same company")
	}
	if !billingCenter.IsBillingCenter {
		ve.Add("billing_center_id", "must be a billing center")
	}
	return ve.ErrOrNil()
}
