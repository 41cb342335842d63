package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

var _ repository.CompanyPaymentRepository = (*CompanyPaymentRepo)(nil)

const companyPaymentColumns = `id, company_id, year, month, due_date, paid_at,
	amount, memo, created_at, updated_at`

// CompanyPaymentRepo implements the payment tracking port on PostgreSQL.
type CompanyPaymentRepo struct {
	q Querier
}

// NewCompanyPaymentRepository builds the payment persistence adapter.
func NewCompanyPaymentRepository(q Querier) *CompanyPaymentRepo {
	return &CompanyPaymentRepo{q: q}
}

func scanCompanyPayment(row interface{ Scan(dest ...any) error }) (*entity.CompanyPayment, error) {
	var p entity.CompanyPayment
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Year, &p.Month, &p.DueDate, &p.PaidAt,
		&p.Amount, &p.Memo, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persists a new payment row. The (company_id, year, month) unique
// index rejects a second row for the same month.
func (r *CompanyPaymentRepo) Create(ctx context.Context, p *entity.CompanyPayment) error {
	query := `
		INSERT INTO company_payments (` + companyPaymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Year, p.Month, p.DueDate, p.PaidAt,
		p.Amount, p.Memo, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company payment: %w", err)
	}
	return nil
}

// Update persists the mutable payment fields.
func (r *CompanyPaymentRepo) Update(ctx context.Context, p *entity.CompanyPayment) error {
	query := `
		UPDATE company_payments SET due_date = $2, paid_at = $3, amount = $4,
			memo = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, p.ID, p.DueDate, p.PaidAt, p.Amount, p.Memo, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update company payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID returns nil, nil when the id does not exist.
func (r *CompanyPaymentRepo) GetByID(ctx context.Context, id string) (*entity.CompanyPayment, error) {
	query := `SELECT ` + companyPaymentColumns + ` FROM company_payments WHERE id = $1`
	p, err := scanCompanyPayment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company payment: %w", err)
	}
	return p, nil
}

// List returns payments matching the filter, newest billing month first.
func (r *CompanyPaymentRepo) List(ctx context.Context, f repository.CompanyPaymentFilter, limit, offset int) ([]*entity.CompanyPayment, error) {
	query := `SELECT ` + companyPaymentColumns + ` FROM company_payments WHERE 1=1`
	args := []any{}
	if f.CompanyID != "" {
		args = append(args, f.CompanyID)
		query += fmt.Sprintf(` AND company_id = $%d`, len(args))
	}
	if f.Year != 0 {
		args = append(args, f.Year)
		query += fmt.Sprintf(` AND year = $%d`, len(args))
	}
	switch f.Status {
	case "paid":
		query += ` AND paid_at IS NOT NULL`
	case "unpaid":
		query += ` AND paid_at IS NULL`
	case "overdue":
		args = append(args, f.Now)
		query += fmt.Sprintf(` AND paid_at IS NULL AND due_date < $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY year DESC, month DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list company payments: %w", err)
	}
	defer rows.Close()

	var list []*entity.CompanyPayment
	for rows.Next() {
		p, err := scanCompanyPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete removes a payment row.
func (r *CompanyPaymentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM company_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete company payment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
