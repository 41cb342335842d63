package entity

import (
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

// ApprovalRequest gates activation of a tenant membership. At most one
// pending request may exist per user profile; approved/rejected are terminal.
type ApprovalRequest struct {
	ID               string
	CompanyID        string
	UserProfileID    string
	Status           ApprovalStatus
	ReviewedByUserID *string
	ReviewedAt       *time.Time
	ReviewComment    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Decide transitions pending -> approved/rejected exactly once, recording
// the reviewer and timestamp. Terminal states never reopen.
func (r *ApprovalRequest) Decide(outcome ApprovalStatus, reviewerUserID string, comment string, at time.Time) error {
	if r.Status != ApprovalPending {
		return domain.ErrConflict
	}
	if outcome != ApprovalApproved && outcome != ApprovalRejected {
		return domain.ErrInvalidInput
	}
	r.Status = outcome
	r.ReviewedByUserID = &reviewerUserID
	r.ReviewedAt = &at
	r.ReviewComment = comment
	return nil
}

// ValidateReviewer requires the reviewer to be an admin of the request's
// tenant (or an internal admin). This is a validation, not only an
// authorization check, so reviewer identity stays durably correct even if a
// handler-level check is bypassed.
func (r *ApprovalRequest) ValidateReviewer(reviewer *UserProfile) error {
	return validateReviewerForCompany(reviewer, r.CompanyID)
}

// OrderApprovalRequest gates confirmation of an order. At most one request
// may ever exist per order, regardless of status.
type OrderApprovalRequest struct {
	ID               string
	CompanyID        string
	OrderID          string
	Status           ApprovalStatus
	ReviewedByUserID *string
	ReviewedAt       *time.Time
	ReviewComment    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Decide transitions pending -> approved/rejected exactly once.
func (r *OrderApprovalRequest) Decide(outcome ApprovalStatus, reviewerUserID string, comment string, at time.Time) error {
	if r.Status != ApprovalPending {
		return domain.ErrConflict
	}
	if outcome != ApprovalApproved && outcome != ApprovalRejected {
		return domain.ErrInvalidInput
	}
	r.Status = outcome
	r.ReviewedByUserID = &reviewerUserID
	r.ReviewedAt = &at
	r.ReviewComment = comment
	return nil
}

// ValidateReviewer requires the reviewer to be an admin of the request's
// tenant, or the approver configured on the order's destination center
// (centerApproverProfileID, nil when the center has none).
func (r *OrderApprovalRequest) ValidateReviewer(reviewer *UserProfile, centerApproverProfileID *string) error {
	if reviewer != nil && centerApproverProfileID != nil && reviewer.ID == *centerApproverProfileID &&
		reviewer.CompanyID != nil && *reviewer.CompanyID == r.CompanyID {
		return nil
	}
	return validateReviewerForCompany(reviewer, r.CompanyID)
}

func validateReviewerForCompany(reviewer *UserProfile, companyID string) error {
	var ve domain.ValidationError
	if reviewer == nil {
		ve.Add("reviewed_by", "must be present")
		return ve.ErrOrNil()
	}
	if reviewer.Role == RoleInternalAdmin {
		return nil
	}
	if reviewer.Role == RoleCompanyAdmin && reviewer.CompanyID != nil && *reviewer.CompanyID == companyID {
		return nil
	}
	ve.Add("reviewed_by", "must be an admin of the company")
	return ve.ErrOrNil()
}
