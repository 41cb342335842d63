package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

// OrderLine is one item position on an order. The *_Snapshot fields freeze
// the item's pricing at line-creation time: later catalog changes never
// alter historical orders. Amount is always quantity x unit_price_snapshot,
// never recomputed from the live item price.
type OrderLine struct {
	ID                   string
	CompanyID            string
	OrderID              string
	ItemID               string
	Quantity             int64
	UnitPriceSnapshot    decimal.Decimal
	CostPriceSnapshot    decimal.Decimal
	ShippingCostSnapshot decimal.Decimal
	Amount               decimal.Decimal
	CO2Amount            decimal.Decimal
	CreatedAt            time.Time
	UpdatedAt            time.Time

	// ItemCode/ItemName are read-side conveniences populated on loads that
	// join items; not persisted on the line itself.
	ItemCode string
	ItemName string
}

// NewOrderLine builds a line for the given item, freezing its current
// pricing into the snapshots and computing the derived amounts.
func NewOrderLine(order *Order, item *Item, quantity int64) *OrderLine {
	l := &OrderLine{
		CompanyID:            order.CompanyID,
		OrderID:              order.ID,
		ItemID:               item.ID,
		Quantity:             quantity,
		UnitPriceSnapshot:    item.UnitPrice,
		CostPriceSnapshot:    item.CostPrice,
		ShippingCostSnapshot: item.ShippingCost,
		ItemCode:             item.ItemCode,
		ItemName:             item.Name,
	}
	l.computeAmounts(item.CO2PerUnit)
	return l
}

func (l *OrderLine) computeAmounts(co2PerUnit decimal.Decimal) {
	qty := decimal.NewFromInt(l.Quantity)
	l.Amount = l.UnitPriceSnapshot.Mul(qty)
	l.CO2Amount = co2PerUnit.Mul(qty)
}

// CarrySnapshots keeps the identity and frozen pricing of an existing line
// for the same item: snapshots are set once at line creation and never
// refreshed, so a quantity edit after a catalog price change recomputes the
// amount from the frozen snapshot, not the live price.
func (l *OrderLine) CarrySnapshots(prev *OrderLine) {
	l.ID = prev.ID
	l.CreatedAt = prev.CreatedAt
	l.UnitPriceSnapshot = prev.UnitPriceSnapshot
	l.CostPriceSnapshot = prev.CostPriceSnapshot
	l.ShippingCostSnapshot = prev.ShippingCostSnapshot
	qty := decimal.NewFromInt(l.Quantity)
	l.Amount = l.UnitPriceSnapshot.Mul(qty)
	if prev.Quantity > 0 {
		perUnit := prev.CO2Amount.Div(decimal.NewFromInt(prev.Quantity))
		l.CO2Amount = perUnit.Mul(qty)
	}
}

// Validate checks the line invariants and returns field-level errors.
func (l *OrderLine) Validate() error {
	var ve domain.ValidationError
	if l.Quantity <= 0 {
		ve.Add("quantity", "must be greater than 0")
	}
	if l.UnitPriceSnapshot.IsNegative() {
		ve.Add("unit_price_snapshot", "must be greater than or equal to 0")
	}
	if l.Amount.IsNegative() {
		ve.Add("amount", "must be greater than or equal to 0")
	}
	if l.CO2Amount.IsNegative() {
		ve.Add("co2_amount", "must be greater than or equal to 0")
	}
	if !l.Amount.Equal(l.UnitPriceSnapshot.Mul(decimal.NewFromInt(l.Quantity))) {
		ve.Add("amount", "must equal quantity times unit price snapshot")
	}
	return ve.ErrOrNil()
}

// ValidateItem enforces that the line's item belongs to the same company as
// the line. Cross-company visibility grants viewing only, not ordering.
func (l *OrderLine) ValidateItem(item *Item) error {
	var ve domain.ValidationError
	if item == nil {
		ve.Add("item_id", "must exist")
		return ve.ErrOrNil()
	}
	if item.CompanyID != l.CompanyID {
		ve.Add("item_id", "must belong to the same company")
	}
	return ve.ErrOrNil()
}
