package policy

import (
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// OrderPolicy authorizes purchase-order actions.
type OrderPolicy struct{}

// Scope narrows order queries to the caller's boundary.
func (OrderPolicy) Scope(p Principal) tenant.Scope { return baseScope(p) }

func (OrderPolicy) CanIndex(p Principal) bool { return p.Active() }

func (OrderPolicy) CanShow(p Principal, o *entity.Order) bool {
	return p.Active() && p.SameCompany(o.CompanyID)
}

// CanCreate: internal admins are not bound to a company and cannot order.
func (OrderPolicy) CanCreate(p Principal) bool {
	return p.Active() && !p.InternalAdmin() && p.CompanyID != nil
}

func (OrderPolicy) CanUpdate(p Principal, o *entity.Order) bool {
	return p.Active() && p.SameCompany(o.CompanyID) && o.CanBeEdited()
}

func (OrderPolicy) CanShip(p Principal, o *entity.Order) bool {
	return p.Active() && p.SameCompany(o.CompanyID) && o.ShippingStatus == entity.ShippingConfirmed
}

func (OrderPolicy) CanDeliver(p Principal, o *entity.Order) bool {
	return p.Active() && p.SameCompany(o.CompanyID) && o.ShippingStatus == entity.ShippingShipped
}

func (OrderPolicy) CanCancel(p Principal, o *entity.Order) bool {
	return p.Active() && p.SameCompany(o.CompanyID) && o.CanBeCancelled()
}

func (OrderPolicy) CanExport(p Principal) bool {
	return p.Active() && !p.InternalAdmin()
}

// CustomerPolicy authorizes center directory actions. Mutations and CSV
// imports are platform-operator work.
type CustomerPolicy struct{}

func (CustomerPolicy) Scope(p Principal) tenant.Scope {
	if p.ManufacturerUser() {
		return tenant.ScopeNone()
	}
	return baseScope(p)
}

func (CustomerPolicy) CanIndex(p Principal) bool { return p.Active() }

func (CustomerPolicy) CanShow(p Principal, c *entity.Customer) bool {
	return p.Active() && p.SameCompany(c.CompanyID)
}

func (CustomerPolicy) CanCreate(p Principal) bool  { return p.Active() && p.InternalAdmin() }
func (CustomerPolicy) CanUpdate(p Principal) bool  { return p.Active() && p.InternalAdmin() }
func (CustomerPolicy) CanDestroy(p Principal) bool { return p.Active() && p.InternalAdmin() }
func (CustomerPolicy) CanImport(p Principal) bool  { return p.Active() && p.InternalAdmin() }

// ItemPolicy authorizes catalog actions. Visibility of another company's
// item is decided from the item_companies grant, resolved by the caller.
type ItemPolicy struct{}

func (ItemPolicy) Scope(p Principal) tenant.Scope { return baseScope(p) }

func (ItemPolicy) CanIndex(p Principal) bool { return p.Active() }

func (ItemPolicy) CanShow(p Principal, i *entity.Item, visibleToCompany bool) bool {
	if !p.Active() {
		return false
	}
	if p.InternalAdmin() {
		return true
	}
	if p.CompanyID == nil {
		return false
	}
	return i.CompanyID == *p.CompanyID || visibleToCompany
}

func (ItemPolicy) CanCreate(p Principal) bool  { return p.Active() && p.InternalAdmin() }
func (ItemPolicy) CanUpdate(p Principal) bool  { return p.Active() && p.InternalAdmin() }
func (ItemPolicy) CanDestroy(p Principal) bool { return p.Active() && p.InternalAdmin() }
func (ItemPolicy) CanImport(p Principal) bool  { return p.Active() && p.InternalAdmin() }

// UserProfilePolicy authorizes member administration.
type UserProfilePolicy struct{}

func (UserProfilePolicy) Scope(p Principal) tenant.Scope {
	if !p.Active() || !p.Admin() {
		return tenant.ScopeNone()
	}
	if p.InternalAdmin() {
		return tenant.ScopeAll()
	}
	return tenant.ScopeCompany(p.CompanyIDValue())
}

func (UserProfilePolicy) CanIndex(p Principal) bool { return p.Active() && p.Admin() }

func (UserProfilePolicy) CanShow(p Principal, target *entity.UserProfile) bool {
	if !p.Active() {
		return false
	}
	if p.ProfileID == target.ID {
		return true
	}
	return p.Admin() && (target.CompanyID == nil || p.SameCompany(*target.CompanyID))
}

func (UserProfilePolicy) CanUpdate(p Principal, target *entity.UserProfile) bool {
	if !p.Active() || !p.Admin() {
		return false
	}
	return target.CompanyID == nil && p.InternalAdmin() ||
		target.CompanyID != nil && p.SameCompany(*target.CompanyID)
}

// ApprovalRequestPolicy authorizes membership approval decisions.
type ApprovalRequestPolicy struct{}

func (ApprovalRequestPolicy) Scope(p Principal) tenant.Scope {
	if !p.Active() || !p.Role.CanApproveMembers() {
		return tenant.ScopeNone()
	}
	if p.InternalAdmin() {
		return tenant.ScopeAll()
	}
	return tenant.ScopeCompany(p.CompanyIDValue())
}

func (ApprovalRequestPolicy) CanIndex(p Principal) bool {
	return p.Active() && p.Role.CanApproveMembers()
}

func (ApprovalRequestPolicy) CanShow(p Principal, r *entity.ApprovalRequest) bool {
	return p.Active() && p.Role.CanApproveMembers() && p.SameCompany(r.CompanyID)
}

func (ApprovalRequestPolicy) CanDecide(p Principal, r *entity.ApprovalRequest) bool {
	return p.Active() && p.Admin() && p.SameCompany(r.CompanyID) && r.Status == entity.ApprovalPending
}

// OrderApprovalRequestPolicy authorizes order sign-off. Besides admins, the
// approver configured on the order's destination center may decide.
type OrderApprovalRequestPolicy struct{}

// Scope returns the tenant scope plus an optional approver-profile
// restriction: plain approvers only see requests routed to centers they are
// configured on.
func (OrderApprovalRequestPolicy) Scope(p Principal) (tenant.Scope, *string) {
	if !p.Active() {
		return tenant.ScopeNone(), nil
	}
	if p.InternalAdmin() {
		return tenant.ScopeAll(), nil
	}
	if p.CompanyID == nil {
		return tenant.ScopeNone(), nil
	}
	if p.CompanyAdmin() {
		return tenant.ScopeCompany(*p.CompanyID), nil
	}
	profileID := p.ProfileID
	return tenant.ScopeCompany(*p.CompanyID), &profileID
}

func (OrderApprovalRequestPolicy) CanIndex(p Principal) bool {
	return p.Active() && (p.Admin() || p.Role == entity.RoleApprover)
}

func (pol OrderApprovalRequestPolicy) CanShow(p Principal, r *entity.OrderApprovalRequest, centerApproverProfileID *string) bool {
	if !p.Active() || !p.SameCompany(r.CompanyID) {
		return false
	}
	return p.Admin() || pol.isCenterApprover(p, centerApproverProfileID)
}

func (pol OrderApprovalRequestPolicy) CanDecide(p Principal, r *entity.OrderApprovalRequest, centerApproverProfileID *string) bool {
	if !p.Active() || !p.SameCompany(r.CompanyID) || r.Status != entity.ApprovalPending {
		return false
	}
	return p.Admin() || pol.isCenterApprover(p, centerApproverProfileID)
}

func (OrderApprovalRequestPolicy) isCenterApprover(p Principal, centerApproverProfileID *string) bool {
	return centerApproverProfileID != nil && *centerApproverProfileID == p.ProfileID
}

// CompanyPolicy authorizes tenant administration.
type CompanyPolicy struct{}

func (CompanyPolicy) Scope(p Principal) tenant.Scope {
	if !p.Active() {
		return tenant.ScopeNone()
	}
	if p.InternalAdmin() {
		return tenant.ScopeAll()
	}
	if p.CompanyID != nil {
		return tenant.ScopeCompany(*p.CompanyID)
	}
	return tenant.ScopeNone()
}

func (CompanyPolicy) CanIndex(p Principal) bool { return p.Active() && p.InternalAdmin() }

func (CompanyPolicy) CanShow(p Principal, c *entity.Company) bool {
	return p.Active() && p.SameCompany(c.ID)
}

func (CompanyPolicy) CanCreate(p Principal) bool  { return p.Active() && p.InternalAdmin() }
func (CompanyPolicy) CanUpdate(p Principal) bool  { return p.Active() && p.InternalAdmin() }
func (CompanyPolicy) CanDestroy(p Principal) bool { return p.Active() && p.InternalAdmin() }

// ManufacturerPolicy authorizes manufacturer master administration and the
// shipment-request views manufacturers use.
type ManufacturerPolicy struct{}

func (ManufacturerPolicy) CanIndex(p Principal) bool { return p.Active() }

func (ManufacturerPolicy) CanShow(p Principal, m *entity.Manufacturer) bool {
	if !p.Active() {
		return false
	}
	if p.InternalAdmin() || p.CompanyID != nil {
		return true
	}
	return p.ManufacturerID != nil && *p.ManufacturerID == m.ID
}

func (ManufacturerPolicy) CanCreate(p Principal) bool { return p.Active() && p.InternalAdmin() }
func (ManufacturerPolicy) CanUpdate(p Principal) bool { return p.Active() && p.InternalAdmin() }

// CanRegisterShipment: only the manufacturer's own account registers
// shipments against its requests.
func (ManufacturerPolicy) CanRegisterShipment(p Principal, m *entity.Manufacturer) bool {
	return p.Active() && p.ManufacturerID != nil && *p.ManufacturerID == m.ID
}

// CompanyPaymentPolicy authorizes monthly payment tracking. Bookkeeping is
// platform-operator work; tenants never see it.
type CompanyPaymentPolicy struct{}

func (CompanyPaymentPolicy) CanManage(p Principal) bool { return p.Active() && p.InternalAdmin() }

// IssuerSettingPolicy authorizes the platform issuer identity.
type IssuerSettingPolicy struct{}

func (IssuerSettingPolicy) CanShow(p Principal) bool   { return p.Active() && p.InternalAdmin() }
func (IssuerSettingPolicy) CanUpdate(p Principal) bool { return p.Active() && p.InternalAdmin() }
