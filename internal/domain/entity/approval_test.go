package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }

func TestApprovalRequestDecide(t *testing.T) {
	now := time.Now()
	r := &entity.ApprovalRequest{
		ID:            "req-1",
		CompanyID:     "company-1",
		UserProfileID: "profile-1",
		Status:        entity.ApprovalPending,
	}

	require.NoError(t, r.Decide(entity.ApprovalApproved, "reviewer-1", "welcome", now))
	assert.Equal(t, entity.ApprovalApproved, r.Status)
	require.NotNil(t, r.ReviewedByUserID)
	assert.Equal(t, "reviewer-1", *r.ReviewedByUserID)
	assert.Equal(t, "welcome", r.ReviewComment)

	// Terminal states never reopen.
	assert.ErrorIs(t, r.Decide(entity.ApprovalRejected, "reviewer-2", "", now), domain.ErrConflict)
	assert.Equal(t, entity.ApprovalApproved, r.Status)
}

func TestApprovalRequestDecideRejectsBadOutcome(t *testing.T) {
	r := &entity.ApprovalRequest{Status: entity.ApprovalPending}
	assert.ErrorIs(t, r.Decide(entity.ApprovalPending, "reviewer-1", "", time.Now()), domain.ErrInvalidInput)
	assert.Equal(t, entity.ApprovalPending, r.Status)
}

func TestApprovalRequestValidateReviewer(t *testing.T) {
	r := &entity.ApprovalRequest{CompanyID: "company-1", Status: entity.ApprovalPending}

	require.NoError(t, r.ValidateReviewer(&entity.UserProfile{
		ID: "p1", Role: entity.RoleInternalAdmin,
	}))
	require.NoError(t, r.ValidateReviewer(&entity.UserProfile{
		ID: "p2", Role: entity.RoleCompanyAdmin, CompanyID: strPtr("company-1"),
	}))

	assert.Error(t, r.ValidateReviewer(nil))
	assert.Error(t, r.ValidateReviewer(&entity.UserProfile{
		ID: "p3", Role: entity.RoleCompanyAdmin, CompanyID: strPtr("company-2"),
	}), "admin of another company")
	assert.Error(t, r.ValidateReviewer(&entity.UserProfile{
		ID: "p4", Role: entity.RoleNormal, CompanyID: strPtr("company-1"),
	}), "non-admin member")
}

func TestOrderApprovalRequestDecide(t *testing.T) {
	now := time.Now()
	r := &entity.OrderApprovalRequest{
		ID:        "req-1",
		CompanyID: "company-1",
		OrderID:   "order-1",
		Status:    entity.ApprovalPending,
	}

	require.NoError(t, r.Decide(entity.ApprovalRejected, "reviewer-1", "over budget", now))
	assert.Equal(t, entity.ApprovalRejected, r.Status)
	assert.Equal(t, "over budget", r.ReviewComment)

	assert.ErrorIs(t, r.Decide(entity.ApprovalApproved, "reviewer-2", "", now), domain.ErrConflict)
}

func TestOrderApprovalRequestValidateReviewer(t *testing.T) {
	r := &entity.OrderApprovalRequest{CompanyID: "company-1", Status: entity.ApprovalPending}

	// The center's configured approver may decide even without an admin role.
	approver := &entity.UserProfile{
		ID: "approver-1", Role: entity.RoleApprover, CompanyID: strPtr("company-1"),
	}
	require.NoError(t, r.ValidateReviewer(approver, strPtr("approver-1")))

	// A different non-admin profile may not, even inside the company.
	other := &entity.UserProfile{
		ID: "other-1", Role: entity.RoleApprover, CompanyID: strPtr("company-1"),
	}
	assert.Error(t, r.ValidateReviewer(other, strPtr("approver-1")))

	// The configured approver of another company's center may not.
	foreign := &entity.UserProfile{
		ID: "approver-1", Role: entity.RoleApprover, CompanyID: strPtr("company-2"),
	}
	assert.Error(t, r.ValidateReviewer(foreign, strPtr("approver-1")))

	// Admins decide regardless of center configuration.
	require.NoError(t, r.ValidateReviewer(&entity.UserProfile{
		ID: "admin-1", Role: entity.RoleCompanyAdmin, CompanyID: strPtr("company-1"),
	}, nil))
}
