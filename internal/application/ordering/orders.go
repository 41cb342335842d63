package ordering

import (
	"bytes"
	"context"
	"encoding/csv"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// Get returns one order with its lines.
func (s *Service) Get(ctx context.Context, p policy.Principal, id string) (*dto.OrderResponse, error) {
	o, err := s.loadVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

// List returns orders matching the query within the caller's scope.
func (s *Service) List(ctx context.Context, p policy.Principal, q dto.OrderListQuery) ([]dto.OrderResponse, error) {
	if !s.orderPolicy().CanIndex(p) {
		return nil, domain.ErrForbidden
	}
	f, err := s.listFilter(p, q)
	if err != nil {
		return nil, err
	}
	q.DefaultPage()
	orders, err := s.orders.List(ctx, s.orderPolicy().Scope(p), f, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

func (s *Service) listFilter(p policy.Principal, q dto.OrderListQuery) (repository.OrderFilter, error) {
	f := repository.OrderFilter{OrderNo: q.OrderNo}
	if q.Status != "" {
		status := entity.ShippingStatus(q.Status)
		if !status.Valid() {
			return f, domain.ErrInvalidInput
		}
		f.Status = status
	}
	if q.DateFrom != "" {
		t, err := parseDate(q.DateFrom)
		if err != nil {
			return f, err
		}
		f.DateFrom = &t
	}
	if q.DateTo != "" {
		t, err := parseDate(q.DateTo)
		if err != nil {
			return f, err
		}
		f.DateTo = &t
	}
	if q.Mine {
		f.OrderedByUserID = p.UserID
	}
	return f, nil
}

// Update replaces the order's lines and/or date while it is still editable.
// Lines kept for the same item retain their frozen snapshots; only new lines
// snapshot current item pricing.
func (s *Service) Update(ctx context.Context, p policy.Principal, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	o, err := s.loadVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.orderPolicy().CanUpdate(p, o) {
		return nil, domain.ErrInvalidState
	}
	if in.OrderDate != nil {
		t, err := parseDate(*in.OrderDate)
		if err != nil {
			return nil, err
		}
		o.OrderDate = t
	}
	replaceLines := in.Lines != nil
	if replaceLines {
		if len(in.Lines) == 0 {
			var ve domain.ValidationError
			ve.Add("lines", "must have at least one line")
			return nil, ve.ErrOrNil()
		}
		if err := s.buildLines(ctx, tenant.ScopeCompany(o.CompanyID), o, in.Lines); err != nil {
			return nil, err
		}
		o.RecalculateTotals()
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	err = s.tx.RunOrder(ctx, func(
		_ repository.CompanyRepository,
		orders repository.OrderRepository,
		_ repository.OrderApprovalRequestRepository,
	) error {
		if err := orders.UpdateHeader(ctx, o); err != nil {
			return err
		}
		if replaceLines {
			if err := orders.ReplaceLines(ctx, o); err != nil {
				return err
			}
			return orders.UpdateTotals(ctx, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

// Ship records shipment of a confirmed order.
func (s *Service) Ship(ctx context.Context, p policy.Principal, id string, in dto.ShipOrderRequest) (*dto.OrderResponse, error) {
	o, err := s.loadVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.orderPolicy().CanShip(p, o) {
		return nil, domain.ErrInvalidState
	}
	return s.ship(ctx, o, in)
}

func (s *Service) ship(ctx context.Context, o *entity.Order, in dto.ShipOrderRequest) (*dto.OrderResponse, error) {
	shipDate, err := dateOrToday(in.ShipDate)
	if err != nil {
		return nil, err
	}
	if err := o.Ship(in.TrackingNo, shipDate); err != nil {
		return nil, err
	}
	o.Carrier = in.Carrier
	if err := s.orders.Transition(ctx, o, entity.ShippingConfirmed); err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

// Deliver records delivery of a shipped order.
func (s *Service) Deliver(ctx context.Context, p policy.Principal, id string, in dto.DeliverOrderRequest) (*dto.OrderResponse, error) {
	o, err := s.loadVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.orderPolicy().CanDeliver(p, o) {
		return nil, domain.ErrInvalidState
	}
	deliveredDate, err := dateOrToday(in.DeliveredDate)
	if err != nil {
		return nil, err
	}
	if err := o.Deliver(deliveredDate); err != nil {
		return nil, err
	}
	if err := s.orders.Transition(ctx, o, entity.ShippingShipped); err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

// Cancel moves a non-terminal order to cancelled. A pending approval request
// for the order stays as history; it can no longer be approved into a
// confirmation because the state guard fails.
func (s *Service) Cancel(ctx context.Context, p policy.Principal, id string) (*dto.OrderResponse, error) {
	o, err := s.loadVisible(ctx, p, id)
	if err != nil {
		return nil, err
	}
	if !s.orderPolicy().CanCancel(p, o) {
		return nil, domain.ErrInvalidState
	}
	from := o.ShippingStatus
	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := s.orders.Transition(ctx, o, from); err != nil {
		return nil, err
	}
	resp := toOrderResponse(o)
	return &resp, nil
}

var exportHeader = []string{
	"order_no", "order_date", "shipping_status", "center_name",
	"shipping_address", "tracking_no", "carrier", "total_amount", "co2_total",
}

// ExportCSV renders the caller's order listing as CSV.
func (s *Service) ExportCSV(ctx context.Context, p policy.Principal, q dto.OrderListQuery) ([]byte, error) {
	if !s.orderPolicy().CanExport(p) {
		return nil, domain.ErrForbidden
	}
	f, err := s.listFilter(p, q)
	if err != nil {
		return nil, err
	}
	q.DefaultPage()
	orders, err := s.orders.List(ctx, s.orderPolicy().Scope(p), f, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, o := range orders {
		row := []string{
			o.OrderNo,
			formatDate(o.OrderDate),
			string(o.ShippingStatus),
			o.ShipCenterName,
			o.FullShippingAddress(),
			o.TrackingNo,
			o.Carrier,
			o.TotalAmount.String(),
			o.CO2Total.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	s.recordExport(ctx, p, len(orders))
	return buf.Bytes(), nil
}

// recordExport appends a csv_export integration record. A failed insert is
// logged, never surfaced: the export itself already succeeded.
func (s *Service) recordExport(ctx context.Context, p policy.Principal, count int) {
	if p.CompanyID == nil {
		return
	}
	now := time.Now()
	l := &entity.IntegrationLog{
		ID:              uuid.New().String(),
		CompanyID:       *p.CompanyID,
		IntegrationType: entity.IntegrationCSVExport,
		Result:          entity.IntegrationSuccess,
		Payload: map[string]any{
			"count":       count,
			"exported_at": now.Format(time.RFC3339),
		},
		CreatedAt: now,
	}
	if err := s.integrations.Insert(ctx, l); err != nil {
		s.log.Warn().Err(err).Str("company_id", l.CompanyID).Msg("integration log skipped")
	}
}
