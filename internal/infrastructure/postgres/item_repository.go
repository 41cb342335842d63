package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, company_id, manufacturer_id, item_code, name,
	unit_price, cost_price, shipping_cost, co2_per_unit, is_active,
	created_at, updated_at`

// ItemRepo implements the catalog port on PostgreSQL. Company scopes see
// their own items plus items granted via item_companies; manufacturer scopes
// see the items they supply.
type ItemRepo struct {
	q Querier
}

// NewItemRepository builds the item persistence adapter.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func scanItem(row interface{ Scan(dest ...any) error }) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(
		&i.ID, &i.CompanyID, &i.ManufacturerID, &i.ItemCode, &i.Name,
		&i.UnitPrice, &i.CostPrice, &i.ShippingCost, &i.CO2PerUnit,
		&i.IsActive, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create persists a new item.
func (r *ItemRepo) Create(ctx context.Context, i *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		i.ID, i.CompanyID, i.ManufacturerID, i.ItemCode, i.Name,
		i.UnitPrice, i.CostPrice, i.ShippingCost, i.CO2PerUnit,
		i.IsActive, i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// Update persists the mutable item fields. Snapshots on existing order
// lines are a different table and stay untouched.
func (r *ItemRepo) Update(ctx context.Context, i *entity.Item) error {
	query := `
		UPDATE items SET manufacturer_id = $2, name = $3, unit_price = $4,
			cost_price = $5, shipping_cost = $6, co2_per_unit = $7,
			is_active = $8, updated_at = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		i.ID, i.ManufacturerID, i.Name, i.UnitPrice,
		i.CostPrice, i.ShippingCost, i.CO2PerUnit, i.IsActive, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID loads an item if the scope owns it, was granted visibility of it,
// or supplies it (manufacturer scope).
func (r *ItemRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Item, error) {
	if scope.None() {
		return nil, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	args := []any{id}
	if companyID, ok := scope.Company(); ok {
		query += ` AND (company_id = $2 OR EXISTS (
			SELECT 1 FROM item_companies ic WHERE ic.item_id = items.id AND ic.company_id = $2))`
		args = append(args, companyID)
	} else if manufacturerID, ok := scope.Manufacturer(); ok {
		query += ` AND manufacturer_id = $2`
		args = append(args, manufacturerID)
	}
	i, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return i, nil
}

// GetOwnedByID ignores visibility grants: only the owning company (or the
// all scope) resolves the item. Order lines use this.
func (r *ItemRepo) GetOwnedByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Item, error) {
	if scope.None() {
		return nil, nil
	}
	if _, ok := scope.Manufacturer(); ok {
		return nil, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	args := []any{id}
	if companyID, ok := scope.Company(); ok {
		query += ` AND company_id = $2`
		args = append(args, companyID)
	}
	i, err := scanItem(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get owned item: %w", err)
	}
	return i, nil
}

// GetByCode resolves the per-company natural key used by CSV importers.
func (r *ItemRepo) GetByCode(ctx context.Context, companyID, itemCode string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE company_id = $1 AND item_code = $2`
	i, err := scanItem(r.q.QueryRow(ctx, query, companyID, itemCode))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by code: %w", err)
	}
	return i, nil
}

// List returns the catalog visible to the scope, ordered by code.
func (r *ItemRepo) List(ctx context.Context, scope tenant.Scope, f repository.ItemFilter, limit, offset int) ([]*entity.Item, error) {
	if scope.None() {
		return nil, nil
	}
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	args := []any{}
	if companyID, ok := scope.Company(); ok {
		args = append(args, companyID)
		query += fmt.Sprintf(` AND (company_id = $%d OR EXISTS (
			SELECT 1 FROM item_companies ic WHERE ic.item_id = items.id AND ic.company_id = $%d))`,
			len(args), len(args))
	} else if manufacturerID, ok := scope.Manufacturer(); ok {
		args = append(args, manufacturerID)
		query += fmt.Sprintf(` AND manufacturer_id = $%d`, len(args))
	}
	if f.ActiveOnly {
		query += ` AND is_active = true`
	}
	if f.Code != "" {
		args = append(args, f.Code)
		query += fmt.Sprintf(` AND item_code = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY item_code LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var list []*entity.Item
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// GrantVisibility lets a company view the item. Granting twice is a no-op.
func (r *ItemRepo) GrantVisibility(ctx context.Context, itemID, companyID string) error {
	query := `
		INSERT INTO item_companies (item_id, company_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (item_id, company_id) DO NOTHING`
	if _, err := r.q.Exec(ctx, query, itemID, companyID); err != nil {
		return fmt.Errorf("grant item visibility: %w", err)
	}
	return nil
}

// RevokeVisibility removes a company's view of the item.
func (r *ItemRepo) RevokeVisibility(ctx context.Context, itemID, companyID string) error {
	query := `DELETE FROM item_companies WHERE item_id = $1 AND company_id = $2`
	if _, err := r.q.Exec(ctx, query, itemID, companyID); err != nil {
		return fmt.Errorf("revoke item visibility: %w", err)
	}
	return nil
}

// VisibleToCompany reports an item_companies grant.
func (r *ItemRepo) VisibleToCompany(ctx context.Context, itemID, companyID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM item_companies WHERE item_id = $1 AND company_id = $2
		)`
	var visible bool
	if err := r.q.QueryRow(ctx, query, itemID, companyID).Scan(&visible); err != nil {
		return false, fmt.Errorf("check item visibility: %w", err)
	}
	return visible, nil
}

// SetActive flips the soft-delete flag.
func (r *ItemRepo) SetActive(ctx context.Context, id string, active bool) error {
	cmd, err := r.q.Exec(ctx, `UPDATE items SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set item active: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
