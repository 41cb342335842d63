package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, code, domains, order_prefix, order_seq,
	postal_code, prefecture, city, address1, address2, payment_terms,
	is_active, created_at, updated_at`

// CompanyRepo implements the CompanyRepository port on PostgreSQL. Works
// with a pool or a transaction (Querier).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository builds the company persistence adapter.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

func scanCompany(row interface{ Scan(dest ...any) error }) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Code, &c.Domains, &c.OrderPrefix, &c.OrderSeq,
		&c.PostalCode, &c.Prefecture, &c.City, &c.Address1, &c.Address2,
		&c.PaymentTerms, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persists a new company.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Code, c.Domains, c.OrderPrefix, c.OrderSeq,
		c.PostalCode, c.Prefecture, c.City, c.Address1, c.Address2,
		c.PaymentTerms, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// Update persists the mutable company fields. OrderSeq is deliberately not
// written here; only NextOrderSeq touches it.
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE companies SET name = $2, domains = $3, order_prefix = $4,
			postal_code = $5, prefecture = $6, city = $7, address1 = $8,
			address2 = $9, payment_terms = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Domains, c.OrderPrefix,
		c.PostalCode, c.Prefecture, c.City, c.Address1,
		c.Address2, c.PaymentTerms, c.IsActive, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID returns nil, nil when the id does not exist.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// GetByCode resolves a company by its platform-wide code.
func (r *CompanyRepo) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE code = $1`
	c, err := scanCompany(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company by code: %w", err)
	}
	return c, nil
}

// List returns companies narrowed by the scope, newest first.
func (r *CompanyRepo) List(ctx context.Context, scope tenant.Scope, limit, offset int) ([]*entity.Company, error) {
	if scope.None() {
		return nil, nil
	}
	query := `SELECT ` + companyColumns + ` FROM companies`
	args := []any{}
	if companyID, ok := scope.Company(); ok {
		query += ` WHERE id = $1`
		args = append(args, companyID)
	} else if _, ok := scope.Manufacturer(); ok {
		return nil, nil
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ListActive returns every active company (signup domain routing).
func (r *CompanyRepo) ListActive(ctx context.Context) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE is_active = true ORDER BY code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active companies: %w", err)
	}
	defer rows.Close()

	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// NextOrderSeq increments the company's order sequence under an exclusive
// row lock and returns the new value. Concurrent allocators queue on the
// lock; a rolled-back transaction rolls the increment back, so the sequence
// never develops gaps.
func (r *CompanyRepo) NextOrderSeq(ctx context.Context, companyID string) (int64, error) {
	var seq int64
	err := r.q.QueryRow(ctx, `SELECT order_seq FROM companies WHERE id = $1 FOR UPDATE`, companyID).Scan(&seq)
	if err != nil {
		if isNoRows(err) {
			return 0, domain.ErrNotFound
		}
		if isLockTimeout(err) {
			return 0, fmt.Errorf("lock order seq: %w", domain.ErrLockTimeout)
		}
		return 0, fmt.Errorf("lock order seq: %w", err)
	}
	seq++
	_, err = r.q.Exec(ctx, `UPDATE companies SET order_seq = $2 WHERE id = $1`, companyID, seq)
	if err != nil {
		return 0, fmt.Errorf("advance order seq: %w", err)
	}
	return seq, nil
}

// SetActive flips the soft-delete flag.
func (r *CompanyRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE companies SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set company active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
