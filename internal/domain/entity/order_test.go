package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

func draftOrder() *entity.Order {
	return &entity.Order{
		ID:              "order-1",
		CompanyID:       "company-1",
		CustomerID:      "customer-1",
		OrderedByUserID: "user-1",
		OrderNo:         "ACM-0000001",
		OrderDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		ShippingStatus:  entity.ShippingDraft,
	}
}

func TestOrderLifecycle(t *testing.T) {
	o := draftOrder()

	require.NoError(t, o.Confirm())
	assert.Equal(t, entity.ShippingConfirmed, o.ShippingStatus)

	shipDate := time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, o.Ship("TRK-123", shipDate))
	assert.Equal(t, entity.ShippingShipped, o.ShippingStatus)
	assert.Equal(t, "TRK-123", o.TrackingNo)
	require.NotNil(t, o.ShipDate)
	assert.Equal(t, shipDate, *o.ShipDate)

	deliveredDate := time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC)
	require.NoError(t, o.Deliver(deliveredDate))
	assert.Equal(t, entity.ShippingDelivered, o.ShippingStatus)
	require.NotNil(t, o.DeliveredDate)
	assert.Equal(t, deliveredDate, *o.DeliveredDate)
}

func TestOrderTransitionsRejectedOutOfOrder(t *testing.T) {
	now := time.Now()

	o := draftOrder()
	assert.ErrorIs(t, o.Ship("TRK", now), domain.ErrInvalidState)
	assert.ErrorIs(t, o.Deliver(now), domain.ErrInvalidState)
	assert.Equal(t, entity.ShippingDraft, o.ShippingStatus)

	require.NoError(t, o.Confirm())
	assert.ErrorIs(t, o.Confirm(), domain.ErrInvalidState)
	assert.ErrorIs(t, o.Deliver(now), domain.ErrInvalidState)

	require.NoError(t, o.Ship("TRK", now))
	assert.ErrorIs(t, o.Confirm(), domain.ErrInvalidState)
	assert.ErrorIs(t, o.Ship("TRK-2", now), domain.ErrInvalidState)
}

func TestOrderCancel(t *testing.T) {
	for _, status := range []entity.ShippingStatus{
		entity.ShippingDraft, entity.ShippingConfirmed, entity.ShippingShipped,
	} {
		o := draftOrder()
		o.ShippingStatus = status
		require.NoError(t, o.Cancel(), "cancel from %s", status)
		assert.Equal(t, entity.ShippingCancelled, o.ShippingStatus)
	}

	for _, status := range []entity.ShippingStatus{
		entity.ShippingDelivered, entity.ShippingCancelled,
	} {
		o := draftOrder()
		o.ShippingStatus = status
		assert.ErrorIs(t, o.Cancel(), domain.ErrInvalidState, "cancel from %s", status)
		assert.Equal(t, status, o.ShippingStatus)
	}
}

func TestOrderCanBeEdited(t *testing.T) {
	editable := map[entity.ShippingStatus]bool{
		entity.ShippingDraft:     true,
		entity.ShippingConfirmed: true,
		entity.ShippingShipped:   false,
		entity.ShippingDelivered: false,
		entity.ShippingCancelled: false,
	}
	for status, want := range editable {
		o := draftOrder()
		o.ShippingStatus = status
		assert.Equal(t, want, o.CanBeEdited(), "status %s", status)
	}
}

func TestOrderRecalculateTotals(t *testing.T) {
	o := draftOrder()
	o.Lines = []*entity.OrderLine{
		{Amount: decimal.NewFromInt(1200), CO2Amount: decimal.NewFromFloat(2.5)},
		{Amount: decimal.NewFromInt(800), CO2Amount: decimal.NewFromFloat(0.5)},
	}

	o.RecalculateTotals()
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(2000)))
	assert.True(t, o.CO2Total.Equal(decimal.NewFromInt(3)))

	// Idempotent without line changes.
	o.RecalculateTotals()
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(2000)))

	o.Lines = nil
	o.RecalculateTotals()
	assert.True(t, o.TotalAmount.IsZero())
	assert.True(t, o.CO2Total.IsZero())
}

func TestOrderApplyShippingSnapshot(t *testing.T) {
	o := draftOrder()
	o.ApplyShippingSnapshot(entity.ShippingSnapshot{
		PostalCode: "100-0001",
		Prefecture: "Tokyo",
		City:       "Chiyoda",
		Address1:   "1-1-1",
		CenterName: "HQ Center",
	})

	assert.Equal(t, "HQ Center", o.ShipCenterName)
	assert.Equal(t, "100-0001 Tokyo Chiyoda 1-1-1", o.FullShippingAddress())
}

func TestOrderValidate(t *testing.T) {
	o := draftOrder()
	require.NoError(t, o.Validate())

	o = draftOrder()
	o.OrderNo = ""
	o.CustomerID = ""
	err := o.Validate()
	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	fields := make([]string, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "order_no")
	assert.Contains(t, fields, "customer_id")
}

func TestOrderValidateCustomer(t *testing.T) {
	o := draftOrder()

	require.NoError(t, o.ValidateCustomer(&entity.Customer{ID: "customer-1", CompanyID: "company-1"}))
	assert.Error(t, o.ValidateCustomer(&entity.Customer{ID: "customer-2", CompanyID: "company-2"}))
	assert.Error(t, o.ValidateCustomer(nil))
}
