package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineInput is one requested line on order creation/update. Pricing is
// never accepted from the caller; it is snapshotted from the item.
type OrderLineInput struct {
	ItemID   string `json:"item_id"`
	Quantity int64  `json:"quantity"`
}

// CreateOrderRequest places an order for the caller's company.
type CreateOrderRequest struct {
	CustomerID string           `json:"customer_id"`
	OrderDate  string           `json:"order_date"` // YYYY-MM-DD, defaults to today
	Lines      []OrderLineInput `json:"lines"`
}

// UpdateOrderRequest replaces the order's lines and/or date while editable.
type UpdateOrderRequest struct {
	OrderDate *string          `json:"order_date"`
	Lines     []OrderLineInput `json:"lines"`
}

// ShipOrderRequest records shipment of a confirmed order.
type ShipOrderRequest struct {
	TrackingNo string `json:"tracking_no"`
	Carrier    string `json:"carrier"`
	ShipDate   string `json:"ship_date"` // YYYY-MM-DD, defaults to today
}

// DeliverOrderRequest records delivery of a shipped order.
type DeliverOrderRequest struct {
	DeliveredDate string `json:"delivered_date"` // YYYY-MM-DD, defaults to today
}

// OrderLineResponse is the public line view.
type OrderLineResponse struct {
	ID                string          `json:"id"`
	ItemID            string          `json:"item_id"`
	ItemCode          string          `json:"item_code,omitempty"`
	ItemName          string          `json:"item_name,omitempty"`
	Quantity          int64           `json:"quantity"`
	UnitPriceSnapshot decimal.Decimal `json:"unit_price_snapshot"`
	Amount            decimal.Decimal `json:"amount"`
	CO2Amount         decimal.Decimal `json:"co2_amount"`
}

// OrderResponse is the public order view.
type OrderResponse struct {
	ID              string              `json:"id"`
	CompanyID       string              `json:"company_id"`
	CustomerID      string              `json:"customer_id"`
	OrderedByUserID string              `json:"ordered_by_user_id"`
	OrderNo         string              `json:"order_no"`
	OrderDate       string              `json:"order_date"`
	ShippingStatus  string              `json:"shipping_status"`
	ShipCenterName  string              `json:"ship_center_name,omitempty"`
	ShippingAddress string              `json:"shipping_address,omitempty"`
	TrackingNo      string              `json:"tracking_no,omitempty"`
	Carrier         string              `json:"carrier,omitempty"`
	ShipDate        *string             `json:"ship_date,omitempty"`
	DeliveredDate   *string             `json:"delivered_date,omitempty"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	CO2Total        decimal.Decimal     `json:"co2_total"`
	Lines           []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// ShipmentRequestLine is one outstanding line a manufacturer must ship:
// its order header context plus the item position.
type ShipmentRequestLine struct {
	OrderID         string          `json:"order_id"`
	OrderNo         string          `json:"order_no"`
	OrderDate       string          `json:"order_date"`
	ShippingStatus  string          `json:"shipping_status"`
	ShipCenterName  string          `json:"ship_center_name"`
	ShippingAddress string          `json:"shipping_address"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Quantity        int64           `json:"quantity"`
	Amount          decimal.Decimal `json:"amount"`
}

// ShipmentRequestQuery narrows the manufacturer shipment view.
type ShipmentRequestQuery struct {
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
}

// OrderListQuery is the index/search view input.
type OrderListQuery struct {
	PageRequest
	OrderNo  string `query:"order_no"`
	Status   string `query:"status"`
	DateFrom string `query:"date_from"`
	DateTo   string `query:"date_to"`
	Mine     bool   `query:"mine"`
}
