package importer

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

var itemColumns = []string{"item_code", "name", "unit_price"}

// ImportItems upserts catalog items by item_code. Price changes through the
// importer behave like any price change: existing order line snapshots are
// never touched.
//
// Columns: item_code, name, unit_price, cost_price, shipping_cost,
// co2_per_unit, manufacturer_code.
func (im *Importer) ImportItems(ctx context.Context, p policy.Principal, companyID string, r io.Reader) (*dto.ImportResult, error) {
	if !(policy.ItemPolicy{}).CanImport(p) {
		return nil, domain.ErrForbidden
	}
	company, err := im.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := readRows(r, itemColumns)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportResult{}
	for _, row := range rows {
		created, err := im.upsertItem(ctx, companyID, row.fields)
		if err != nil {
			rowError(&result.Errors, row.line, err)
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}
	im.log.Info().
		Str("company_id", companyID).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("failed", len(result.Errors)).
		Msg("item import finished")
	return result, nil
}

func (im *Importer) upsertItem(ctx context.Context, companyID string, f map[string]string) (bool, error) {
	code := f["item_code"]
	existing, err := im.items.GetByCode(ctx, companyID, code)
	if err != nil {
		return false, err
	}

	var manufacturerID *string
	if mc := f["manufacturer_code"]; mc != "" {
		m, err := im.manufacturers.GetByCode(ctx, mc)
		if err != nil {
			return false, err
		}
		if m == nil {
			var ve domain.ValidationError
			ve.Add("manufacturer_code", "unknown manufacturer: "+mc)
			return false, ve.ErrOrNil()
		}
		manufacturerID = &m.ID
	}

	unitPrice, err := parseDecimal(f["unit_price"], "unit_price")
	if err != nil {
		return false, err
	}
	costPrice, err := parseDecimal(f["cost_price"], "cost_price")
	if err != nil {
		return false, err
	}
	shippingCost, err := parseDecimal(f["shipping_cost"], "shipping_cost")
	if err != nil {
		return false, err
	}
	co2PerUnit, err := parseDecimal(f["co2_per_unit"], "co2_per_unit")
	if err != nil {
		return false, err
	}

	now := time.Now()
	i := existing
	created := i == nil
	if created {
		i = &entity.Item{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			ItemCode:  code,
			IsActive:  true,
			CreatedAt: now,
		}
	}
	i.Name = f["name"]
	i.ManufacturerID = manufacturerID
	i.UnitPrice = unitPrice
	i.CostPrice = costPrice
	i.ShippingCost = shippingCost
	i.CO2PerUnit = co2PerUnit
	i.UpdatedAt = now

	if err := i.Validate(); err != nil {
		return false, err
	}
	if created {
		return true, im.items.Create(ctx, i)
	}
	return false, im.items.Update(ctx, i)
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		var ve domain.ValidationError
		ve.Add(field, "is not a valid number")
		return decimal.Zero, ve.ErrOrNil()
	}
	return d, nil
}
