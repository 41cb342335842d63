package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// OrderFilter narrows order listings.
type OrderFilter struct {
	OrderNo         string // substring match
	Status          entity.ShippingStatus
	Statuses        []entity.ShippingStatus
	DateFrom        *time.Time
	DateTo          *time.Time
	OrderedByUserID string // "mine" view
	CustomerIDs     []string
}

// ManufacturerLine is a shipment-request row: one order line for a
// manufacturer's item, together with its order header.
type ManufacturerLine struct {
	Line  *entity.OrderLine
	Order *entity.Order
}

// OrderRepository is the persistence port for the order aggregate. Reads are
// scope-narrowed; status transitions are guarded at the SQL level so a
// losing concurrent writer fails with ErrConflict instead of double-applying.
type OrderRepository interface {
	// Create persists the header and all lines in the ambient transaction.
	Create(ctx context.Context, o *entity.Order) error
	// GetByID loads the order with its lines (item code/name joined in).
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Order, error)
	List(ctx context.Context, scope tenant.Scope, f OrderFilter, limit, offset int) ([]*entity.Order, error)
	// UpdateHeader persists mutable header fields (order_date, customer,
	// shipping snapshot). Status is not touched here.
	UpdateHeader(ctx context.Context, o *entity.Order) error
	// Transition persists the order's current status plus tracking metadata,
	// guarded by WHERE shipping_status = from; 0 rows -> ErrConflict.
	Transition(ctx context.Context, o *entity.Order, from entity.ShippingStatus) error
	// ReplaceLines deletes and reinserts the order's lines.
	ReplaceLines(ctx context.Context, o *entity.Order) error
	// UpdateTotals persists the recomputed aggregate fields.
	UpdateTotals(ctx context.Context, o *entity.Order) error
	// ListForBilling loads orders for document generation: customer-id set,
	// order_date range and status set, lines fully preloaded (renderers do
	// no lazy fetches).
	ListForBilling(ctx context.Context, customerIDs []string, from, to time.Time, statuses []entity.ShippingStatus) ([]*entity.Order, error)
	// ListManufacturerLines returns the lines of a manufacturer's items on
	// orders within the date range and status set, ordered by order.
	ListManufacturerLines(ctx context.Context, manufacturerID string, from, to time.Time, statuses []entity.ShippingStatus) ([]ManufacturerLine, error)
	// SumMonthlyTotal sums the company's non-cancelled order amounts for the
	// calendar month (payment tracking's display fallback).
	SumMonthlyTotal(ctx context.Context, companyID string, year, month int) (decimal.Decimal, error)
}
