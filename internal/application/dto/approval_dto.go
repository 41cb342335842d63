package dto

import "time"

// DecisionRequest approves or rejects a pending request.
type DecisionRequest struct {
	Comment string `json:"comment"`
}

// ApprovalRequestResponse is the public membership-approval view.
type ApprovalRequestResponse struct {
	ID               string     `json:"id"`
	CompanyID        string     `json:"company_id"`
	UserProfileID    string     `json:"user_profile_id"`
	Status           string     `json:"status"`
	ReviewedByUserID *string    `json:"reviewed_by_user_id,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewComment    string     `json:"review_comment,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// OrderApprovalRequestResponse is the public order-approval view.
type OrderApprovalRequestResponse struct {
	ID               string     `json:"id"`
	CompanyID        string     `json:"company_id"`
	OrderID          string     `json:"order_id"`
	Status           string     `json:"status"`
	ReviewedByUserID *string    `json:"reviewed_by_user_id,omitempty"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	ReviewComment    string     `json:"review_comment,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}
