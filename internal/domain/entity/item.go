package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/domain"
)

// Item is a catalog entry owned by a company, optionally linked to the
// manufacturer producing it. Prices and CO2 figures on the item are live
// values; orders freeze them into line snapshots at creation time.
type Item struct {
	ID             string
	CompanyID      string
	ManufacturerID *string
	ItemCode       string // unique per company
	Name           string
	UnitPrice      decimal.Decimal
	CostPrice      decimal.Decimal
	ShippingCost   decimal.Decimal
	CO2PerUnit     decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var maxUnitPrice = decimal.New(1, 10) // 10,000,000,000

// DisplayName is "{code}: {name}".
func (i *Item) DisplayName() string {
	return i.ItemCode + ": " + i.Name
}

// Validate checks the item invariants and returns field-level errors.
func (i *Item) Validate() error {
	var ve domain.ValidationError
	if strings.TrimSpace(i.ItemCode) == "" {
		ve.Add("item_code", "must be present")
	}
	if len(i.ItemCode) > 50 {
		ve.Add("item_code", "must be at most 50 characters")
	}
	if strings.TrimSpace(i.Name) == "" {
		ve.Add("name", "must be present")
	}
	if len(i.Name) > 255 {
		ve.Add("name", "must be at most 255 characters")
	}
	if i.CompanyID == "" {
		ve.Add("company_id", "must be present")
	}
	if i.UnitPrice.IsNegative() {
		ve.Add("unit_price", "must be greater than or equal to 0")
	}
	if i.UnitPrice.GreaterThanOrEqual(maxUnitPrice) {
		ve.Add("unit_price", "must be less than 10000000000")
	}
	if i.CostPrice.IsNegative() {
		ve.Add("cost_price", "must be greater than or equal to 0")
	}
	if i.ShippingCost.IsNegative() {
		ve.Add("shipping_cost", "must be greater than or equal to 0")
	}
	if i.CO2PerUnit.IsNegative() {
		ve.Add("co2_per_unit", "must be greater than or equal to 0")
	}
	return ve.ErrOrNil()
}

// ItemCompany grants another company visibility of an item. Unique per
// (item, company) pair.
type ItemCompany struct {
	ID        string
	ItemID    string
	CompanyID string
	CreatedAt time.Time
}
