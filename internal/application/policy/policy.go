// Package policy is the single authorization enforcement point: per-resource
// action predicates plus tenant scopes that every repository listing and
// lookup must be narrowed by. Scope misses and forbidden reads converge on
// "caller receives nothing"; only the HTTP layer decides how to present it.
package policy

import (
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// Principal is the caller's authorization view, loaded fresh from the user
// profile on every request so revoked members lose access immediately.
type Principal struct {
	UserID         string
	ProfileID      string
	Role           entity.Role
	MemberStatus   entity.MemberStatus
	CompanyID      *string
	ManufacturerID *string
	SupervisorID   *string
}

// PrincipalFromProfile builds the caller view from a loaded profile.
func PrincipalFromProfile(p *entity.UserProfile) Principal {
	return Principal{
		UserID:         p.UserID,
		ProfileID:      p.ID,
		Role:           p.Role,
		MemberStatus:   p.MemberStatus,
		CompanyID:      p.CompanyID,
		ManufacturerID: p.ManufacturerID,
		SupervisorID:   p.SupervisorID,
	}
}

// Active reports whether the membership allows any access at all.
func (p Principal) Active() bool { return p.MemberStatus == entity.MemberActive }

// InternalAdmin reports the platform-operator role.
func (p Principal) InternalAdmin() bool { return p.Role == entity.RoleInternalAdmin }

// CompanyAdmin reports the tenant-admin role.
func (p Principal) CompanyAdmin() bool { return p.Role == entity.RoleCompanyAdmin }

// Admin reports either admin role.
func (p Principal) Admin() bool { return p.Role.Admin() }

// ManufacturerUser reports a manufacturer-linked account.
func (p Principal) ManufacturerUser() bool { return p.ManufacturerID != nil }

// CompanyIDValue returns the tenant id or "" when unbound.
func (p Principal) CompanyIDValue() string {
	if p.CompanyID == nil {
		return ""
	}
	return *p.CompanyID
}

// SameCompany is the tenant-match check, bypassed for internal admins.
func (p Principal) SameCompany(companyID string) bool {
	if p.InternalAdmin() {
		return true
	}
	return p.CompanyID != nil && *p.CompanyID == companyID
}

// baseScope is the default resolution shared by most resources:
// internal admin sees all, an active tenant member sees their company,
// a manufacturer account sees their manufacturer, everyone else nothing.
func baseScope(p Principal) tenant.Scope {
	if !p.Active() {
		return tenant.ScopeNone()
	}
	if p.InternalAdmin() {
		return tenant.ScopeAll()
	}
	if p.ManufacturerID != nil {
		return tenant.ScopeManufacturer(*p.ManufacturerID)
	}
	if p.CompanyID != nil {
		return tenant.ScopeCompany(*p.CompanyID)
	}
	return tenant.ScopeNone()
}
