package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest registers a catalog item for a company.
type CreateItemRequest struct {
	CompanyID      string          `json:"company_id"`
	ManufacturerID *string         `json:"manufacturer_id"`
	ItemCode       string          `json:"item_code"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	CO2PerUnit     decimal.Decimal `json:"co2_per_unit"`
}

// UpdateItemRequest mutates a catalog item. Nil fields are left untouched.
type UpdateItemRequest struct {
	Name           *string          `json:"name"`
	ManufacturerID *string          `json:"manufacturer_id"`
	UnitPrice      *decimal.Decimal `json:"unit_price"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	ShippingCost   *decimal.Decimal `json:"shipping_cost"`
	CO2PerUnit     *decimal.Decimal `json:"co2_per_unit"`
	IsActive       *bool            `json:"is_active"`
}

// ItemResponse is the public catalog view.
type ItemResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	ManufacturerID *string         `json:"manufacturer_id,omitempty"`
	ItemCode       string          `json:"item_code"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	CO2PerUnit     decimal.Decimal `json:"co2_per_unit"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// VisibilityRequest grants or revokes another company's view of an item.
type VisibilityRequest struct {
	CompanyID string `json:"company_id"`
}
