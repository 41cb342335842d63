package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, company_id, customer_id, ordered_by_user_id, order_no,
	order_date, shipping_status, ship_postal_code, ship_prefecture, ship_city,
	ship_address1, ship_address2, ship_center_name, tracking_no, carrier,
	ship_date, delivered_date, total_amount, co2_total, created_at, updated_at`

// orderColumnsPrefixed disambiguates the header columns in joined queries.
const orderColumnsPrefixed = `o.id, o.company_id, o.customer_id, o.ordered_by_user_id,
	o.order_no, o.order_date, o.shipping_status, o.ship_postal_code, o.ship_prefecture,
	o.ship_city, o.ship_address1, o.ship_address2, o.ship_center_name, o.tracking_no,
	o.carrier, o.ship_date, o.delivered_date, o.total_amount, o.co2_total,
	o.created_at, o.updated_at`

// OrderRepo implements the order aggregate port on PostgreSQL. Company
// scopes match the owning tenant; manufacturer scopes match orders carrying
// at least one line of the manufacturer's items.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the order persistence adapter.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func scanOrder(row interface{ Scan(dest ...any) error }) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.CustomerID, &o.OrderedByUserID, &o.OrderNo,
		&o.OrderDate, &o.ShippingStatus, &o.ShipPostalCode, &o.ShipPrefecture,
		&o.ShipCity, &o.ShipAddress1, &o.ShipAddress2, &o.ShipCenterName,
		&o.TrackingNo, &o.Carrier, &o.ShipDate, &o.DeliveredDate,
		&o.TotalAmount, &o.CO2Total, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// scopeCondition appends the tenant restriction for orders. Returns false
// when the scope matches nothing.
func orderScopeCondition(scope tenant.Scope, args []any) (string, []any, bool) {
	if scope.None() {
		return "", args, false
	}
	if companyID, ok := scope.Company(); ok {
		args = append(args, companyID)
		return fmt.Sprintf(" AND o.company_id = $%d", len(args)), args, true
	}
	if manufacturerID, ok := scope.Manufacturer(); ok {
		args = append(args, manufacturerID)
		return fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM order_lines ol
			JOIN items i ON i.id = ol.item_id
			WHERE ol.order_id = o.id AND i.manufacturer_id = $%d)`, len(args)), args, true
	}
	return "", args, true // all
}

func statusStrings(statuses []entity.ShippingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// Create persists the header and all lines in the ambient transaction.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.CustomerID, o.OrderedByUserID, o.OrderNo,
		o.OrderDate, o.ShippingStatus, o.ShipPostalCode, o.ShipPrefecture,
		o.ShipCity, o.ShipAddress1, o.ShipAddress2, o.ShipCenterName,
		o.TrackingNo, o.Carrier, o.ShipDate, o.DeliveredDate,
		o.TotalAmount, o.CO2Total, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertLines(ctx, o)
}

func (r *OrderRepo) insertLines(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO order_lines (id, company_id, order_id, item_id, quantity,
			unit_price_snapshot, cost_price_snapshot, shipping_cost_snapshot,
			amount, co2_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())`
	for _, l := range o.Lines {
		_, err := r.q.Exec(ctx, query,
			l.ID, l.CompanyID, l.OrderID, l.ItemID, l.Quantity,
			l.UnitPriceSnapshot, l.CostPriceSnapshot, l.ShippingCostSnapshot,
			l.Amount, l.CO2Amount,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID loads the order with its lines (item code and name joined in).
func (r *OrderRepo) GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Order, error) {
	args := []any{id}
	cond, args, ok := orderScopeCondition(scope, args)
	if !ok {
		return nil, nil
	}
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE o.id = $1` + cond
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadLines(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) loadLines(ctx context.Context, o *entity.Order) error {
	query := `
		SELECT ol.id, ol.company_id, ol.order_id, ol.item_id, ol.quantity,
			ol.unit_price_snapshot, ol.cost_price_snapshot, ol.shipping_cost_snapshot,
			ol.amount, ol.co2_amount, ol.created_at, ol.updated_at,
			i.item_code, i.name
		FROM order_lines ol JOIN items i ON i.id = ol.item_id
		WHERE ol.order_id = $1
		ORDER BY i.item_code`
	rows, err := r.q.Query(ctx, query, o.ID)
	if err != nil {
		return fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	o.Lines = o.Lines[:0]
	for rows.Next() {
		var l entity.OrderLine
		err := rows.Scan(
			&l.ID, &l.CompanyID, &l.OrderID, &l.ItemID, &l.Quantity,
			&l.UnitPriceSnapshot, &l.CostPriceSnapshot, &l.ShippingCostSnapshot,
			&l.Amount, &l.CO2Amount, &l.CreatedAt, &l.UpdatedAt,
			&l.ItemCode, &l.ItemName,
		)
		if err != nil {
			return fmt.Errorf("scan order line: %w", err)
		}
		o.Lines = append(o.Lines, &l)
	}
	return rows.Err()
}

// List returns order headers matching the filter, newest first.
func (r *OrderRepo) List(ctx context.Context, scope tenant.Scope, f repository.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	args := []any{}
	cond, args, ok := orderScopeCondition(scope, args)
	if !ok {
		return nil, nil
	}
	query := `SELECT ` + orderColumns + ` FROM orders o WHERE 1=1` + cond
	if f.OrderNo != "" {
		args = append(args, "%"+f.OrderNo+"%")
		query += fmt.Sprintf(` AND o.order_no ILIKE $%d`, len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(` AND o.shipping_status = $%d`, len(args))
	}
	if len(f.Statuses) > 0 {
		args = append(args, statusStrings(f.Statuses))
		query += fmt.Sprintf(` AND o.shipping_status = ANY($%d)`, len(args))
	}
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		query += fmt.Sprintf(` AND o.order_date >= $%d`, len(args))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		query += fmt.Sprintf(` AND o.order_date <= $%d`, len(args))
	}
	if f.OrderedByUserID != "" {
		args = append(args, f.OrderedByUserID)
		query += fmt.Sprintf(` AND o.ordered_by_user_id = $%d`, len(args))
	}
	if len(f.CustomerIDs) > 0 {
		args = append(args, f.CustomerIDs)
		query += fmt.Sprintf(` AND o.customer_id = ANY($%d)`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY o.order_date DESC, o.order_no DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// UpdateHeader persists the mutable header fields. Status is not touched
// here; transitions go through Transition.
func (r *OrderRepo) UpdateHeader(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders SET customer_id = $2, order_date = $3,
			ship_postal_code = $4, ship_prefecture = $5, ship_city = $6,
			ship_address1 = $7, ship_address2 = $8, ship_center_name = $9,
			updated_at = now()
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.CustomerID, o.OrderDate,
		o.ShipPostalCode, o.ShipPrefecture, o.ShipCity,
		o.ShipAddress1, o.ShipAddress2, o.ShipCenterName,
	)
	if err != nil {
		return fmt.Errorf("update order header: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Transition persists the order's current status plus tracking metadata,
// guarded by the expected previous status. Zero rows means a concurrent
// writer already moved the order: the caller loses with ErrConflict.
func (r *OrderRepo) Transition(ctx context.Context, o *entity.Order, from entity.ShippingStatus) error {
	query := `
		UPDATE orders SET shipping_status = $2, tracking_no = $3, carrier = $4,
			ship_date = $5, delivered_date = $6, updated_at = now()
		WHERE id = $1 AND shipping_status = $7`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.ShippingStatus, o.TrackingNo, o.Carrier,
		o.ShipDate, o.DeliveredDate, from,
	)
	if err != nil {
		return fmt.Errorf("transition order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// ReplaceLines deletes and reinserts the order's lines.
func (r *OrderRepo) ReplaceLines(ctx context.Context, o *entity.Order) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, o.ID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	return r.insertLines(ctx, o)
}

// UpdateTotals persists the recomputed aggregate fields.
func (r *OrderRepo) UpdateTotals(ctx context.Context, o *entity.Order) error {
	query := `UPDATE orders SET total_amount = $2, co2_total = $3, updated_at = now() WHERE id = $1`
	if _, err := r.q.Exec(ctx, query, o.ID, o.TotalAmount, o.CO2Total); err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}
	return nil
}

// ListForBilling loads the orders for document generation, lines preloaded,
// so the renderers never go back to the database.
func (r *OrderRepo) ListForBilling(ctx context.Context, customerIDs []string, from, to time.Time, statuses []entity.ShippingStatus) ([]*entity.Order, error) {
	if len(customerIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + orderColumns + ` FROM orders o
		WHERE o.customer_id = ANY($1)
			AND o.order_date >= $2 AND o.order_date <= $3
			AND o.shipping_status = ANY($4)
		ORDER BY o.order_date, o.order_no`
	rows, err := r.q.Query(ctx, query, customerIDs, from, to, statusStrings(statuses))
	if err != nil {
		return nil, fmt.Errorf("list orders for billing: %w", err)
	}
	defer rows.Close()

	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range list {
		if err := r.loadLines(ctx, o); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// ListManufacturerLines returns the lines of a manufacturer's items on
// orders within the date range and status set, ordered by order.
func (r *OrderRepo) ListManufacturerLines(ctx context.Context, manufacturerID string, from, to time.Time, statuses []entity.ShippingStatus) ([]repository.ManufacturerLine, error) {
	query := `
		SELECT ol.id, ol.company_id, ol.order_id, ol.item_id, ol.quantity,
			ol.unit_price_snapshot, ol.cost_price_snapshot, ol.shipping_cost_snapshot,
			ol.amount, ol.co2_amount, ol.created_at, ol.updated_at,
			i.item_code, i.name,
			` + orderColumnsPrefixed + `
		FROM order_lines ol
		JOIN items i ON i.id = ol.item_id
		JOIN orders o ON o.id = ol.order_id
		WHERE i.manufacturer_id = $1
			AND o.order_date >= $2 AND o.order_date <= $3
			AND o.shipping_status = ANY($4)
		ORDER BY o.order_date, o.order_no, i.item_code`
	rows, err := r.q.Query(ctx, query, manufacturerID, from, to, statusStrings(statuses))
	if err != nil {
		return nil, fmt.Errorf("list manufacturer lines: %w", err)
	}
	defer rows.Close()

	var list []repository.ManufacturerLine
	for rows.Next() {
		var l entity.OrderLine
		var o entity.Order
		err := rows.Scan(
			&l.ID, &l.CompanyID, &l.OrderID, &l.ItemID, &l.Quantity,
			&l.UnitPriceSnapshot, &l.CostPriceSnapshot, &l.ShippingCostSnapshot,
			&l.Amount, &l.CO2Amount, &l.CreatedAt, &l.UpdatedAt,
			&l.ItemCode, &l.ItemName,
			&o.ID, &o.CompanyID, &o.CustomerID, &o.OrderedByUserID, &o.OrderNo,
			&o.OrderDate, &o.ShippingStatus, &o.ShipPostalCode, &o.ShipPrefecture,
			&o.ShipCity, &o.ShipAddress1, &o.ShipAddress2, &o.ShipCenterName,
			&o.TrackingNo, &o.Carrier, &o.ShipDate, &o.DeliveredDate,
			&o.TotalAmount, &o.CO2Total, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan manufacturer line: %w", err)
		}
		list = append(list, repository.ManufacturerLine{Line: &l, Order: &o})
	}
	return list, rows.Err()
}

// SumMonthlyTotal sums the company's non-cancelled order amounts for the
// calendar month.
func (r *OrderRepo) SumMonthlyTotal(ctx context.Context, companyID string, year, month int) (decimal.Decimal, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	query := `
		SELECT COALESCE(SUM(total_amount), 0) FROM orders
		WHERE company_id = $1 AND order_date >= $2 AND order_date < $3
			AND shipping_status <> $4`
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, companyID, from, to, entity.ShippingCancelled).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum monthly order total: %w", err)
	}
	return total, nil
}
