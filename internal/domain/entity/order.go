package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

// Order is the purchase order aggregate root. The shipping address is a
// snapshot of the destination center taken at creation; TotalAmount and
// CO2Total are denormalized sums over the lines, recomputed explicitly via
// RecalculateTotals after line mutations.
type Order struct {
	ID              string
	CompanyID       string
	CustomerID      string
	OrderedByUserID string
	OrderNo         string // unique per company, allocated at creation
	OrderDate       time.Time
	ShippingStatus  ShippingStatus
	ShipPostalCode  string
	ShipPrefecture  string
	ShipCity        string
	ShipAddress1    string
	ShipAddress2    string
	ShipCenterName  string
	TrackingNo      string
	Carrier         string
	ShipDate        *time.Time
	DeliveredDate   *time.Time
	TotalAmount     decimal.Decimal
	CO2Total        decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Lines []*OrderLine
}

// CanBeEdited reports whether header/lines may still be mutated.
func (o *Order) CanBeEdited() bool {
	switch o.ShippingStatus {
	case ShippingDraft, ShippingConfirmed:
		return true
	case ShippingShipped, ShippingDelivered, ShippingCancelled:
		return false
	}
	return false
}

// CanBeCancelled reports whether Cancel is allowed from the current state.
func (o *Order) CanBeCancelled() bool {
	return !o.ShippingStatus.Terminal()
}

// Confirm advances draft -> confirmed (approval granted or auto-confirm).
func (o *Order) Confirm() error {
	if o.ShippingStatus != ShippingDraft {
		return domain.ErrInvalidState
	}
	o.ShippingStatus = ShippingConfirmed
	return nil
}

// Ship advances confirmed -> shipped, recording tracking metadata.
func (o *Order) Ship(trackingNo string, shipDate time.Time) error {
	if o.ShippingStatus != ShippingConfirmed {
		return domain.ErrInvalidState
	}
	o.ShippingStatus = ShippingShipped
	o.TrackingNo = trackingNo
	o.ShipDate = &shipDate
	return nil
}

// Deliver advances shipped -> delivered.
func (o *Order) Deliver(deliveredDate time.Time) error {
	if o.ShippingStatus != ShippingShipped {
		return domain.ErrInvalidState
	}
	o.ShippingStatus = ShippingDelivered
	o.DeliveredDate = &deliveredDate
	return nil
}

// Cancel moves any non-terminal state to cancelled.
func (o *Order) Cancel() error {
	if !o.CanBeCancelled() {
		return domain.ErrInvalidState
	}
	o.ShippingStatus = ShippingCancelled
	return nil
}

// ApplyShippingSnapshot copies the destination center address onto the order.
func (o *Order) ApplyShippingSnapshot(s ShippingSnapshot) {
	o.ShipPostalCode = s.PostalCode
	o.ShipPrefecture = s.Prefecture
	o.ShipCity = s.City
	o.ShipAddress1 = s.Address1
	o.ShipAddress2 = s.Address2
	o.ShipCenterName = s.CenterName
}

// RecalculateTotals sums the lines into the aggregate fields. Idempotent:
// a second call without line changes yields identical totals.
func (o *Order) RecalculateTotals() {
	total := decimal.Zero
	co2 := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Amount)
		co2 = co2.Add(l.CO2Amount)
	}
	o.TotalAmount = total
	o.CO2Total = co2
}

// FullShippingAddress joins the snapshotted address into one line.
func (o *Order) FullShippingAddress() string {
	return joinAddress(o.ShipPostalCode, o.ShipPrefecture, o.ShipCity, o.ShipAddress1, o.ShipAddress2)
}

// Validate checks the order invariants and returns field-level errors.
func (o *Order) Validate() error {
	var ve domain.ValidationError
	if o.OrderNo == "" {
		ve.Add("order_no", "must be present")
	}
	if o.CompanyID == "" {
		ve.Add("company_id", "must be present")
	}
	if o.CustomerID == "" {
		ve.Add("customer_id", "must be present")
	}
	if o.OrderedByUserID == "" {
		ve.Add("ordered_by_user_id", "must be present")
	}
	if o.OrderDate.IsZero() {
		ve.Add("order_date", "must be present")
	}
	if !o.ShippingStatus.Valid() {
		ve.Add("shipping_status", "is not a valid shipping status")
	}
	if o.TotalAmount.IsNegative() {
		ve.Add("total_amount", "must be greater than or equal to 0")
	}
	if o.CO2Total.IsNegative() {
		ve.Add("co2_total", "must be greater than or equal to 0")
	}
	return ve.ErrOrNil()
}

// ValidateCustomer enforces that the destination center belongs to the same
// company as the order.
func (o *Order) ValidateCustomer(customer *Customer) error {
	var ve domain.ValidationError
	if customer == nil {
		ve.Add("customer_id", "must exist")
		return ve.ErrOrNil()
	}
	if customer.CompanyID != o.CompanyID {
		ve.Add("customer_id", "must belong to the same company")
	}
	return ve.ErrOrNil()
}
