package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, company_id, center_code, center_name, postal_code,
	prefecture, city, address1, address2, is_billing_center, billing_center_id,
	approver_user_profile_id, is_active, created_at, updated_at`

// CustomerRepo implements the center directory port on PostgreSQL.
// Manufacturer scopes resolve no centers at all.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository builds the center persistence adapter.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row interface{ Scan(dest ...any) error }) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.CenterCode, &c.CenterName, &c.PostalCode,
		&c.Prefecture, &c.City, &c.Address1, &c.Address2, &c.IsBillingCenter,
		&c.BillingCenterID, &c.ApproverUserProfileID, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persists a new center.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.CenterCode, c.CenterName, c.PostalCode,
		c.Prefecture, c.City, c.Address1, c.Address2, c.IsBillingCenter,
		c.BillingCenterID, c.ApproverUserProfileID, c.IsActive,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update persists the mutable center fields.
func (r *CustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers SET center_name = $2, postal_code = $3, prefecture = $4,
			city = $5, address1 = $6, address2 = $7, is_billing_center = $8,
			billing_center_id = $9, approver_user_profile_id = $10,
			is_active = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.CenterName, c.PostalCode, c.Prefecture,
		c.City, c.Address1, c.Address2, c.IsBillingCenter,
		c.BillingCenterID, c.ApproverUserProfileID, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID loads a center narrowed by scope; a scope miss reads as absent.
func (r *CustomerRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Customer, error) {
	if scope.None() {
		return nil, nil
	}
	if _, ok := scope.Manufacturer(); ok {
		return nil, nil
	}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	args := []any{id}
	if companyID, ok := scope.Company(); ok {
		query += ` AND company_id = $2`
		args = append(args, companyID)
	}
	c, err := scanCustomer(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByCode resolves the per-company natural key used by CSV importers.
func (r *CustomerRepo) GetByCode(ctx context.Context, companyID, centerCode string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE company_id = $1 AND center_code = $2`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, companyID, centerCode))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by code: %w", err)
	}
	return c, nil
}

// List returns centers narrowed by scope and filter, ordered by code.
func (r *CustomerRepo) List(ctx context.Context, scope tenant.Scope, f repository.CustomerFilter, limit, offset int) ([]*entity.Customer, error) {
	if scope.None() {
		return nil, nil
	}
	if _, ok := scope.Manufacturer(); ok {
		return nil, nil
	}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE 1=1`
	args := []any{}
	if companyID, ok := scope.Company(); ok {
		args = append(args, companyID)
		query += fmt.Sprintf(` AND company_id = $%d`, len(args))
	}
	if f.IsBillingCenter != nil {
		args = append(args, *f.IsBillingCenter)
		query += fmt.Sprintf(` AND is_billing_center = $%d`, len(args))
	}
	if f.ActiveOnly {
		query += ` AND is_active = true`
	}
	if f.Code != "" {
		args = append(args, f.Code)
		query += fmt.Sprintf(` AND center_code = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY center_code LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ListReceivingCenters returns the active receiving centers billed through
// the given billing center.
func (r *CustomerRepo) ListReceivingCenters(ctx context.Context, companyID, billingCenterID string) ([]*entity.Customer, error) {
	query := `
		SELECT ` + customerColumns + ` FROM customers
		WHERE company_id = $1 AND billing_center_id = $2 AND is_active = true
		ORDER BY center_code`
	rows, err := r.q.Query(ctx, query, companyID, billingCenterID)
	if err != nil {
		return nil, fmt.Errorf("list receiving centers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// SetActive flips the soft-delete flag.
func (r *CustomerRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE customers SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set customer active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
