package dto

import "time"

// CreateCustomerRequest registers a center for a company.
type CreateCustomerRequest struct {
	CompanyID             string  `json:"company_id"`
	CenterCode            string  `json:"center_code"`
	CenterName            string  `json:"center_name"`
	PostalCode            string  `json:"postal_code"`
	Prefecture            string  `json:"prefecture"`
	City                  string  `json:"city"`
	Address1              string  `json:"address1"`
	Address2              string  `json:"address2"`
	IsBillingCenter       bool    `json:"is_billing_center"`
	BillingCenterID       *string `json:"billing_center_id"`
	ApproverUserProfileID *string `json:"approver_user_profile_id"`
}

// UpdateCustomerRequest mutates a center. Nil fields are left untouched.
type UpdateCustomerRequest struct {
	CenterName            *string `json:"center_name"`
	PostalCode            *string `json:"postal_code"`
	Prefecture            *string `json:"prefecture"`
	City                  *string `json:"city"`
	Address1              *string `json:"address1"`
	Address2              *string `json:"address2"`
	BillingCenterID       *string `json:"billing_center_id"`
	ApproverUserProfileID *string `json:"approver_user_profile_id"`
	IsActive              *bool   `json:"is_active"`
}

// CustomerResponse is the public center view.
type CustomerResponse struct {
	ID                    string    `json:"id"`
	CompanyID             string    `json:"company_id"`
	CenterCode            string    `json:"center_code"`
	CenterName            string    `json:"center_name"`
	PostalCode            string    `json:"postal_code,omitempty"`
	Prefecture            string    `json:"prefecture,omitempty"`
	City                  string    `json:"city,omitempty"`
	Address1              string    `json:"address1,omitempty"`
	Address2              string    `json:"address2,omitempty"`
	IsBillingCenter       bool      `json:"is_billing_center"`
	BillingCenterID       *string   `json:"billing_center_id,omitempty"`
	ApproverUserProfileID *string   `json:"approver_user_profile_id,omitempty"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
