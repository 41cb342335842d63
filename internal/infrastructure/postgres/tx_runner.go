package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orderdesk/orderdesk-api/internal/application/approval"
	"github.com/orderdesk/orderdesk-api/internal/application/auth"
	"github.com/orderdesk/orderdesk-api/internal/application/ordering"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// Ensure TxRunner implements the application transaction ports.
var _ auth.TxRunner = (*TxRunner)(nil)
var _ ordering.TxRunner = (*TxRunner)(nil)
var _ approval.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a PostgreSQL transaction with repositories
// bound to it.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSignup runs the registration writes (user, profile, approval request)
// atomically.
func (r *TxRunner) RunSignup(ctx context.Context, fn func(
	users repository.UserRepository,
	profiles repository.UserProfileRepository,
	approvals repository.ApprovalRequestRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewUserRepository(q), NewUserProfileRepository(q), NewApprovalRequestRepository(q))
	})
}

// RunOrder runs order writes atomically. The sequence allocation in
// CompanyRepository.NextOrderSeq shares this transaction, which is what
// keeps order numbers gapless.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	companies repository.CompanyRepository,
	orders repository.OrderRepository,
	orderApprovals repository.OrderApprovalRequestRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewCompanyRepository(q), NewOrderRepository(q), NewOrderApprovalRequestRepository(q))
	})
}

// RunDecision runs an approval decision and its side effects atomically.
func (r *TxRunner) RunDecision(ctx context.Context, fn func(
	profiles repository.UserProfileRepository,
	approvals repository.ApprovalRequestRepository,
	orderApprovals repository.OrderApprovalRequestRepository,
	orders repository.OrderRepository,
) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(
			NewUserProfileRepository(q),
			NewApprovalRequestRepository(q),
			NewOrderApprovalRequestRepository(q),
			NewOrderRepository(q),
		)
	})
}
