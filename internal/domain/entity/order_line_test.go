package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

func catalogItem() *entity.Item {
	return &entity.Item{
		ID:           "item-1",
		CompanyID:    "company-1",
		ItemCode:     "CHAIR-01",
		Name:         "Office Chair",
		UnitPrice:    decimal.NewFromInt(12000),
		CostPrice:    decimal.NewFromInt(8000),
		ShippingCost: decimal.NewFromInt(500),
		CO2PerUnit:   decimal.NewFromFloat(1.25),
		IsActive:     true,
	}
}

func TestNewOrderLineFreezesSnapshots(t *testing.T) {
	o := draftOrder()
	item := catalogItem()

	l := entity.NewOrderLine(o, item, 3)

	assert.Equal(t, o.CompanyID, l.CompanyID)
	assert.Equal(t, item.ID, l.ItemID)
	assert.True(t, l.UnitPriceSnapshot.Equal(decimal.NewFromInt(12000)))
	assert.True(t, l.CostPriceSnapshot.Equal(decimal.NewFromInt(8000)))
	assert.True(t, l.ShippingCostSnapshot.Equal(decimal.NewFromInt(500)))
	assert.True(t, l.Amount.Equal(decimal.NewFromInt(36000)))
	assert.True(t, l.CO2Amount.Equal(decimal.NewFromFloat(3.75)))

	// Later catalog changes never alter the frozen line.
	item.UnitPrice = decimal.NewFromInt(99999)
	assert.True(t, l.UnitPriceSnapshot.Equal(decimal.NewFromInt(12000)))
	assert.True(t, l.Amount.Equal(decimal.NewFromInt(36000)))
}

func TestOrderLineCarrySnapshots(t *testing.T) {
	o := draftOrder()
	item := catalogItem()
	prev := entity.NewOrderLine(o, item, 3)
	prev.ID = "line-1"

	// The catalog price changes before the order is edited.
	item.UnitPrice = decimal.NewFromInt(99999)
	next := entity.NewOrderLine(o, item, 4)
	next.CarrySnapshots(prev)

	assert.Equal(t, "line-1", next.ID)
	assert.True(t, next.UnitPriceSnapshot.Equal(decimal.NewFromInt(12000)),
		"the quantity edit recomputes from the frozen snapshot")
	assert.True(t, next.CostPriceSnapshot.Equal(decimal.NewFromInt(8000)))
	assert.True(t, next.ShippingCostSnapshot.Equal(decimal.NewFromInt(500)))
	assert.True(t, next.Amount.Equal(decimal.NewFromInt(48000)))
	assert.True(t, next.CO2Amount.Equal(decimal.NewFromInt(5)), "per-unit CO2 carries over")
	require.NoError(t, next.Validate())
}

func TestOrderLineValidate(t *testing.T) {
	o := draftOrder()
	item := catalogItem()

	l := entity.NewOrderLine(o, item, 2)
	require.NoError(t, l.Validate())

	l = entity.NewOrderLine(o, item, 0)
	assert.Error(t, l.Validate())

	l = entity.NewOrderLine(o, item, 2)
	l.Amount = decimal.NewFromInt(1)
	assert.Error(t, l.Validate(), "amount must stay quantity times snapshot")
}

func TestOrderLineValidateItem(t *testing.T) {
	o := draftOrder()
	item := catalogItem()
	l := entity.NewOrderLine(o, item, 1)

	require.NoError(t, l.ValidateItem(item))
	assert.Error(t, l.ValidateItem(nil))

	// Visibility grants allow viewing a foreign item, never ordering it.
	foreign := catalogItem()
	foreign.CompanyID = "company-2"
	assert.Error(t, l.ValidateItem(foreign))
}
