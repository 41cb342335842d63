package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

var _ repository.ApprovalRequestRepository = (*ApprovalRequestRepo)(nil)
var _ repository.OrderApprovalRequestRepository = (*OrderApprovalRequestRepo)(nil)

const approvalColumns = `id, company_id, user_profile_id, status,
	reviewed_by_user_id, reviewed_at, review_comment, created_at, updated_at`

// ApprovalRequestRepo implements the membership approval port on
// PostgreSQL. The one-pending-per-profile rule is a partial unique index on
// (user_profile_id) WHERE status = 'pending'.
type ApprovalRequestRepo struct {
	q Querier
}

// NewApprovalRequestRepository builds the membership approval adapter.
func NewApprovalRequestRepository(q Querier) *ApprovalRequestRepo {
	return &ApprovalRequestRepo{q: q}
}

func scanApproval(row interface{ Scan(dest ...any) error }) (*entity.ApprovalRequest, error) {
	var a entity.ApprovalRequest
	err := row.Scan(&a.ID, &a.CompanyID, &a.UserProfileID, &a.Status,
		&a.ReviewedByUserID, &a.ReviewedAt, &a.ReviewComment, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persists a new request; a second pending request for the same
// profile violates the partial unique index.
func (r *ApprovalRequestRepo) Create(ctx context.Context, a *entity.ApprovalRequest) error {
	query := `
		INSERT INTO approval_requests (` + approvalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.UserProfileID, a.Status,
		a.ReviewedByUserID, a.ReviewedAt, a.ReviewComment, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert approval request: %w", err)
	}
	return nil
}

// GetByID loads a request narrowed by scope.
func (r *ApprovalRequestRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.ApprovalRequest, error) {
	if scope.None() {
		return nil, nil
	}
	if _, ok := scope.Manufacturer(); ok {
		return nil, nil
	}
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE id = $1`
	args := []any{id}
	if companyID, ok := scope.Company(); ok {
		query += ` AND company_id = $2`
		args = append(args, companyID)
	}
	a, err := scanApproval(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approval request: %w", err)
	}
	return a, nil
}

// GetPendingByProfile returns the profile's pending request, if any.
func (r *ApprovalRequestRepo) GetPendingByProfile(ctx context.Context, profileID string) (*entity.ApprovalRequest, error) {
	query := `SELECT ` + approvalColumns + ` FROM approval_requests
		WHERE user_profile_id = $1 AND status = 'pending'`
	a, err := scanApproval(r.q.QueryRow(ctx, query, profileID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pending approval request: %w", err)
	}
	return a, nil
}

// List returns requests narrowed by scope and optional status, oldest first
// so reviewers work the queue in arrival order.
func (r *ApprovalRequestRepo) List(ctx context.Context, scope tenant.Scope, status entity.ApprovalStatus, limit, offset int) ([]*entity.ApprovalRequest, error) {
	if scope.None() {
		return nil, nil
	}
	if _, ok := scope.Manufacturer(); ok {
		return nil, nil
	}
	query := `SELECT ` + approvalColumns + ` FROM approval_requests WHERE 1=1`
	args := []any{}
	if companyID, ok := scope.Company(); ok {
		args = append(args, companyID)
		query += fmt.Sprintf(` AND company_id = $%d`, len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY created_at LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list approval requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.ApprovalRequest
	for rows.Next() {
		a, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("scan approval request: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Decide persists an already-transitioned request, guarded by the pending
// state. Zero rows means a concurrent reviewer won.
func (r *ApprovalRequestRepo) Decide(ctx context.Context, a *entity.ApprovalRequest) error {
	query := `
		UPDATE approval_requests SET status = $2, reviewed_by_user_id = $3,
			reviewed_at = $4, review_comment = $5, updated_at = now()
		WHERE id = $1 AND status = 'pending'`
	cmd, err := r.q.Exec(ctx, query, a.ID, a.Status, a.ReviewedByUserID, a.ReviewedAt, a.ReviewComment)
	if err != nil {
		return fmt.Errorf("decide approval request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

const orderApprovalColumns = `id, company_id, order_id, status,
	reviewed_by_user_id, reviewed_at, review_comment, created_at, updated_at`

// OrderApprovalRequestRepo implements the order approval port on
// PostgreSQL. order_id carries a plain unique index: one request ever per
// order, regardless of status.
type OrderApprovalRequestRepo struct {
	q Querier
}

// NewOrderApprovalRequestRepository builds the order approval adapter.
func NewOrderApprovalRequestRepository(q Querier) *OrderApprovalRequestRepo {
	return &OrderApprovalRequestRepo{q: q}
}

func scanOrderApproval(row interface{ Scan(dest ...any) error }) (*entity.OrderApprovalRequest, error) {
	var a entity.OrderApprovalRequest
	err := row.Scan(&a.ID, &a.CompanyID, &a.OrderID, &a.Status,
		&a.ReviewedByUserID, &a.ReviewedAt, &a.ReviewComment, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persists a new request; a second request for the same order
// violates the unique index.
func (r *OrderApprovalRequestRepo) Create(ctx context.Context, a *entity.OrderApprovalRequest) error {
	query := `
		INSERT INTO order_approval_requests (` + orderApprovalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.OrderID, a.Status,
		a.ReviewedByUserID, a.ReviewedAt, a.ReviewComment, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order approval request: %w", err)
	}
	return nil
}

// GetByID loads a request narrowed by scope.
func (r *OrderApprovalRequestRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.OrderApprovalRequest, error) {
	if scope.None() {
		return nil, nil
	}
	if _, ok := scope.Manufacturer(); ok {
		return nil, nil
	}
	query := `SELECT ` + orderApprovalColumns + ` FROM order_approval_requests WHERE id = $1`
	args := []any{id}
	if companyID, ok := scope.Company(); ok {
		query += ` AND company_id = $2`
		args = append(args, companyID)
	}
	a, err := scanOrderApproval(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order approval request: %w", err)
	}
	return a, nil
}

// GetByOrderID returns the order's request, if any.
func (r *OrderApprovalRequestRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.OrderApprovalRequest, error) {
	query := `SELECT ` + orderApprovalColumns + ` FROM order_approval_requests WHERE order_id = $1`
	a, err := scanOrderApproval(r.q.QueryRow(ctx, query, orderID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order approval by order: %w", err)
	}
	return a, nil
}

// List returns requests narrowed by scope and optional status. A non-nil
// approverProfileID additionally restricts to requests whose order ships to
// a center configured with that approver.
func (r *OrderApprovalRequestRepo) List(ctx context.Context, scope tenant.Scope, approverProfileID *string, status entity.ApprovalStatus, limit, offset int) ([]*entity.OrderApprovalRequest, error) {
	if scope.None() {
		return nil, nil
	}
	if _, ok := scope.Manufacturer(); ok {
		return nil, nil
	}
	query := `SELECT ` + orderApprovalColumns + ` FROM order_approval_requests r WHERE 1=1`
	args := []any{}
	if companyID, ok := scope.Company(); ok {
		args = append(args, companyID)
		query += fmt.Sprintf(` AND company_id = $%d`, len(args))
	}
	if approverProfileID != nil {
		args = append(args, *approverProfileID)
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM orders o
			JOIN customers c ON c.id = o.customer_id
			WHERE o.id = r.order_id AND c.approver_user_profile_id = $%d)`, len(args))
	}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY created_at LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list order approval requests: %w", err)
	}
	defer rows.Close()

	var list []*entity.OrderApprovalRequest
	for rows.Next() {
		a, err := scanOrderApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order approval request: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Decide persists an already-transitioned request, guarded by the pending
// state. Zero rows means a concurrent reviewer won.
func (r *OrderApprovalRequestRepo) Decide(ctx context.Context, a *entity.OrderApprovalRequest) error {
	query := `
		UPDATE order_approval_requests SET status = $2, reviewed_by_user_id = $3,
			reviewed_at = $4, review_comment = $5, updated_at = now()
		WHERE id = $1 AND status = 'pending'`
	cmd, err := r.q.Exec(ctx, query, a.ID, a.Status, a.ReviewedByUserID, a.ReviewedAt, a.ReviewComment)
	if err != nil {
		return fmt.Errorf("decide order approval request: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
