package entity

import (
	"strings"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

// User holds the login credentials. Tenant binding and authorization data
// live on the UserProfile (exactly one per user).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, never the plain password past signup
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserProfile binds a user to a tenant (or manufacturer) and carries the
// role and membership state every authorization decision is made from.
type UserProfile struct {
	ID              string
	UserID          string
	CompanyID       *string // nil only for internal_admin, unassigned or manufacturer accounts
	ManufacturerID  *string
	SupervisorID    *string // routes order approval for normal members
	BillingCenterID *string
	Name            string
	Phone           string
	PaymentTerms    string
	Role            Role
	MemberStatus    MemberStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Active reports whether the membership allows any tenant access.
func (p *UserProfile) Active() bool { return p.MemberStatus == MemberActive }

// ManufacturerUser reports whether the profile is a manufacturer account.
func (p *UserProfile) ManufacturerUser() bool { return p.ManufacturerID != nil }

// HasSupervisor reports whether order creation routes through an approver.
func (p *UserProfile) HasSupervisor() bool { return p.SupervisorID != nil }

// CompanyIDValue returns the company id or "" when unbound.
func (p *UserProfile) CompanyIDValue() string {
	if p.CompanyID == nil {
		return ""
	}
	return *p.CompanyID
}

// companyOptional mirrors the membership rule: only internal admins,
// unassigned members and manufacturer accounts may lack a company.
func (p *UserProfile) companyOptional() bool {
	return p.MemberStatus == MemberUnassigned || p.Role == RoleInternalAdmin || p.ManufacturerID != nil
}

// Validate checks the profile invariants and returns field-level errors.
// Cross-record rules (supervisor in the same company, not self) need the
// supervisor row and are enforced via ValidateSupervisor.
func (p *UserProfile) Validate() error {
	var ve domain.ValidationError
	if p.UserID == "" {
		ve.Add("user_id", "must be present")
	}
	if strings.TrimSpace(p.Name) == "" {
		ve.Add("name", "must be present")
	}
	if len(p.Name) > 255 {
		ve.Add("name", "must be at most 255 characters")
	}
	if len(p.Phone) > 50 {
		ve.Add("phone", "must be at most 50 characters")
	}
	if !p.Role.Valid() {
		ve.Add("role", "is not a valid role")
	}
	if !p.MemberStatus.Valid() {
		ve.Add("member_status", "is not a valid member status")
	}
	if p.CompanyID == nil && !p.companyOptional() {
		ve.Add("company_id", "must be present")
	}
	return ve.ErrOrNil()
}

// ValidateSupervisor enforces the relational supervisor rules against the
// resolved supervisor profile.
func (p *UserProfile) ValidateSupervisor(supervisor *UserProfile) error {
	if p.SupervisorID == nil {
		return nil
	}
	var ve domain.ValidationError
	if *p.SupervisorID == p.ID {
		ve.Add("supervisor_id", "cannot be yourself")
		return ve.ErrOrNil()
	}
	if supervisor == nil {
		ve.Add("supervisor_id", "must exist")
		return ve.ErrOrNil()
	}
	if p.CompanyID != nil && (supervisor.CompanyID == nil || *supervisor.CompanyID != *p.CompanyID) {
		ve.Add("supervisor_id", "must belong to the same company")
	}
	return ve.ErrOrNil()
}
