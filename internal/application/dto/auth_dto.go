package dto

import "time"

// SignUpRequest registers a new user. Tenant binding is derived from the
// email domain, never chosen by the caller.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileResponse is the public view of a user profile.
type ProfileResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Email          string    `json:"email,omitempty"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	MemberStatus   string    `json:"member_status"`
	CompanyID      *string   `json:"company_id,omitempty"`
	ManufacturerID *string   `json:"manufacturer_id,omitempty"`
	SupervisorID   *string   `json:"supervisor_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SignUpResponse reports the routing outcome of a registration.
type SignUpResponse struct {
	Profile ProfileResponse `json:"profile"`
	// PendingApproval is true when a membership approval request was opened.
	PendingApproval bool `json:"pending_approval"`
}

// LoginResponse carries the bearer token and the caller's profile.
type LoginResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// UpdateProfileRequest mutates administrable profile fields.
type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	Phone           *string `json:"phone"`
	Role            *string `json:"role"`
	SupervisorID    *string `json:"supervisor_id"`
	BillingCenterID *string `json:"billing_center_id"`
}
