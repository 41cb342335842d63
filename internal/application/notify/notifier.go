// Package notify declares the outbound notification port. Delivery is
// fire-and-forget: the core never observes a return contract.
package notify

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

// Notifier sends workflow notifications. Implementations must not block the
// caller; failures are logged, never propagated.
type Notifier interface {
	// OrderApprovalRequested tells the approver an order awaits sign-off.
	OrderApprovalRequested(ctx context.Context, order *entity.Order, approverEmail string)
	// OrderConfirmed tells the orderer the order was approved.
	OrderConfirmed(ctx context.Context, order *entity.Order, recipientEmail string)
	// OrderRejected tells the orderer the order was rejected, with the
	// reviewer's comment.
	OrderRejected(ctx context.Context, order *entity.Order, recipientEmail, comment string)
	// MembershipDecided tells the applicant the membership outcome.
	MembershipDecided(ctx context.Context, recipientEmail string, approved bool, comment string)
}

// Noop discards all notifications (tests, local development without SMTP).
type Noop struct{}

func (Noop) OrderApprovalRequested(context.Context, *entity.Order, string) {}
func (Noop) OrderConfirmed(context.Context, *entity.Order, string)        {}
func (Noop) OrderRejected(context.Context, *entity.Order, string, string) {}
func (Noop) MembershipDecided(context.Context, string, bool, string)      {}
