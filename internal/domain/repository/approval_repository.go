package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// ApprovalRequestRepository is the persistence port for membership
// approvals. One pending request per profile is enforced by a partial
// unique index; violations surface as ErrDuplicate.
type ApprovalRequestRepository interface {
	Create(ctx context.Context, r *entity.ApprovalRequest) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.ApprovalRequest, error)
	GetPendingByProfile(ctx context.Context, profileID string) (*entity.ApprovalRequest, error)
	List(ctx context.Context, scope tenant.Scope, status entity.ApprovalStatus, limit, offset int) ([]*entity.ApprovalRequest, error)
	// Decide persists an already-transitioned request, guarded by
	// WHERE status = 'pending'; 0 rows -> ErrConflict (a concurrent reviewer
	// won).
	Decide(ctx context.Context, r *entity.ApprovalRequest) error
}

// OrderApprovalRequestRepository is the persistence port for order
// approvals. At most one request ever exists per order (unique order_id).
type OrderApprovalRequestRepository interface {
	Create(ctx context.Context, r *entity.OrderApprovalRequest) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.OrderApprovalRequest, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.OrderApprovalRequest, error)
	// List narrows by scope; approverProfileID (optional) additionally
	// restricts to requests whose order's destination center is configured
	// with that approver.
	List(ctx context.Context, scope tenant.Scope, approverProfileID *string, status entity.ApprovalStatus, limit, offset int) ([]*entity.OrderApprovalRequest, error)
	// Decide: same state-guard contract as ApprovalRequestRepository.Decide.
	Decide(ctx context.Context, r *entity.OrderApprovalRequest) error
}
