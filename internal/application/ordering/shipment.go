package ordering

import (
	"context"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// shipmentStatuses are the order states on the manufacturer work queue:
// confirmed lines await shipment, shipped lines stay visible until delivery.
var shipmentStatuses = []entity.ShippingStatus{entity.ShippingConfirmed, entity.ShippingShipped}

// ListShipmentRequests returns the order lines for the caller's manufacturer
// within the date range: the work queue a manufacturer ships against.
func (s *Service) ListShipmentRequests(ctx context.Context, p policy.Principal, q dto.ShipmentRequestQuery) ([]dto.ShipmentRequestLine, error) {
	if !p.Active() || p.ManufacturerID == nil {
		return nil, domain.ErrForbidden
	}
	from, to, err := shipmentRange(q)
	if err != nil {
		return nil, err
	}
	lines, err := s.orders.ListManufacturerLines(ctx, *p.ManufacturerID, from, to, shipmentStatuses)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShipmentRequestLine, 0, len(lines))
	for _, ml := range lines {
		out = append(out, dto.ShipmentRequestLine{
			OrderID:         ml.Order.ID,
			OrderNo:         ml.Order.OrderNo,
			OrderDate:       formatDate(ml.Order.OrderDate),
			ShippingStatus:  string(ml.Order.ShippingStatus),
			ShipCenterName:  ml.Order.ShipCenterName,
			ShippingAddress: ml.Order.FullShippingAddress(),
			ItemCode:        ml.Line.ItemCode,
			ItemName:        ml.Line.ItemName,
			Quantity:        ml.Line.Quantity,
			Amount:          ml.Line.Amount,
		})
	}
	return out, nil
}

// RegisterShipment lets a manufacturer mark a confirmed order containing its
// items as shipped. The manufacturer scope resolves only orders with at
// least one line supplied by the manufacturer.
func (s *Service) RegisterShipment(ctx context.Context, p policy.Principal, orderID string, in dto.ShipOrderRequest) (*dto.OrderResponse, error) {
	if !p.Active() || p.ManufacturerID == nil {
		return nil, domain.ErrForbidden
	}
	o, err := s.orders.GetByID(ctx, tenant.ScopeManufacturer(*p.ManufacturerID), orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if o.ShippingStatus != entity.ShippingConfirmed {
		return nil, domain.ErrInvalidState
	}
	return s.ship(ctx, o, in)
}

func shipmentRange(q dto.ShipmentRequestQuery) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, -1, 0)
	to := now
	if q.DateFrom != "" {
		t, err := parseDate(q.DateFrom)
		if err != nil {
			return from, to, err
		}
		from = t
	}
	if q.DateTo != "" {
		t, err := parseDate(q.DateTo)
		if err != nil {
			return from, to, err
		}
		to = t
	}
	return from, to, nil
}
