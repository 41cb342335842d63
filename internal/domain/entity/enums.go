package entity

// Role of a user profile inside the platform.
type Role string

const (
	RoleNormal        Role = "normal"
	RoleApprover      Role = "approver"
	RoleCompanyAdmin  Role = "company_admin"
	RoleInternalAdmin Role = "internal_admin"
)

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleNormal, RoleApprover, RoleCompanyAdmin, RoleInternalAdmin:
		return true
	}
	return false
}

// Admin reports whether the role is a company or internal admin.
func (r Role) Admin() bool {
	return r == RoleCompanyAdmin || r == RoleInternalAdmin
}

// CanApproveMembers reports whether the role may decide membership requests.
func (r Role) CanApproveMembers() bool { return r.Admin() }

// CanApproveOrders reports whether the role may decide order approval requests.
func (r Role) CanApproveOrders() bool {
	return r == RoleApprover || r.Admin()
}

// MemberStatus of a user profile's tenant membership.
type MemberStatus string

const (
	MemberPending    MemberStatus = "pending"
	MemberActive     MemberStatus = "active"
	MemberRejected   MemberStatus = "rejected"
	MemberUnassigned MemberStatus = "unassigned"
)

// Valid reports whether the status is one of the closed set.
func (s MemberStatus) Valid() bool {
	switch s {
	case MemberPending, MemberActive, MemberRejected, MemberUnassigned:
		return true
	}
	return false
}

// ShippingStatus is the order lifecycle state.
type ShippingStatus string

const (
	ShippingDraft     ShippingStatus = "draft"
	ShippingConfirmed ShippingStatus = "confirmed"
	ShippingShipped   ShippingStatus = "shipped"
	ShippingDelivered ShippingStatus = "delivered"
	ShippingCancelled ShippingStatus = "cancelled"
)

// Valid reports whether the status is one of the closed set.
func (s ShippingStatus) Valid() bool {
	switch s {
	case ShippingDraft, ShippingConfirmed, ShippingShipped, ShippingDelivered, ShippingCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition may leave this state.
func (s ShippingStatus) Terminal() bool {
	return s == ShippingDelivered || s == ShippingCancelled
}

// ApprovalStatus of a membership or order approval request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Valid reports whether the status is one of the closed set.
func (s ApprovalStatus) Valid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}
