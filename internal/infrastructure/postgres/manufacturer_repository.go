package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

var _ repository.ManufacturerRepository = (*ManufacturerRepo)(nil)

const manufacturerColumns = `id, code, name, domains, payment_terms, is_active, created_at, updated_at`

// ManufacturerRepo implements the manufacturer master port on PostgreSQL.
type ManufacturerRepo struct {
	q Querier
}

// NewManufacturerRepository builds the manufacturer persistence adapter.
func NewManufacturerRepository(q Querier) *ManufacturerRepo {
	return &ManufacturerRepo{q: q}
}

func scanManufacturer(row interface{ Scan(dest ...any) error }) (*entity.Manufacturer, error) {
	var m entity.Manufacturer
	err := row.Scan(&m.ID, &m.Code, &m.Name, &m.Domains, &m.PaymentTerms,
		&m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create persists a new manufacturer.
func (r *ManufacturerRepo) Create(ctx context.Context, m *entity.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (` + manufacturerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Code, m.Name, m.Domains, m.PaymentTerms, m.IsActive, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert manufacturer: %w", err)
	}
	return nil
}

// Update persists the mutable manufacturer fields.
func (r *ManufacturerRepo) Update(ctx context.Context, m *entity.Manufacturer) error {
	query := `
		UPDATE manufacturers SET name = $2, domains = $3, payment_terms = $4,
			is_active = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, m.ID, m.Name, m.Domains, m.PaymentTerms, m.IsActive, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update manufacturer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID loads a manufacturer by id.
func (r *ManufacturerRepo) GetByID(ctx context.Context, id string) (*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + ` FROM manufacturers WHERE id = $1`
	m, err := scanManufacturer(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturer: %w", err)
	}
	return m, nil
}

// GetByCode resolves a manufacturer by its platform-wide code.
func (r *ManufacturerRepo) GetByCode(ctx context.Context, code string) (*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + ` FROM manufacturers WHERE code = $1`
	m, err := scanManufacturer(r.q.QueryRow(ctx, query, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturer by code: %w", err)
	}
	return m, nil
}

// ListActive returns every active manufacturer (signup domain routing).
func (r *ManufacturerRepo) ListActive(ctx context.Context) ([]*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + ` FROM manufacturers WHERE is_active = true ORDER BY code`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list active manufacturers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Manufacturer
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manufacturer: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// List returns manufacturers with pagination, ordered by code.
func (r *ManufacturerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Manufacturer, error) {
	query := `SELECT ` + manufacturerColumns + ` FROM manufacturers ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Manufacturer
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan manufacturer: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
