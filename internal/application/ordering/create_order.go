package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// CreateOrder places an order for the caller's company. The order number is
// allocated from the company sequence inside the same transaction as the
// insert; item prices are frozen into line snapshots at this moment. Orders
// by members with a supervisor open an approval request and stay draft;
// everyone else's confirm immediately.
func (s *Service) CreateOrder(ctx context.Context, p policy.Principal, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if !s.orderPolicy().CanCreate(p) {
		return nil, domain.ErrForbidden
	}
	companyID := *p.CompanyID
	scope := tenant.ScopeCompany(companyID)

	orderDate, err := dateOrToday(in.OrderDate)
	if err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		var ve domain.ValidationError
		ve.Add("lines", "must have at least one line")
		return nil, ve.ErrOrNil()
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil || !company.IsActive {
		return nil, domain.ErrNotFound
	}
	customer, err := s.customers.GetByID(ctx, scope, in.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		CustomerID:      in.CustomerID,
		OrderedByUserID: p.UserID,
		OrderDate:       orderDate,
		ShippingStatus:  entity.ShippingDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := order.ValidateCustomer(customer); err != nil {
		return nil, err
	}
	if !customer.IsActive {
		var ve domain.ValidationError
		ve.Add("customer_id", "must be an active center")
		return nil, ve.ErrOrNil()
	}
	order.ApplyShippingSnapshot(customer.ToShippingSnapshot())

	if err := s.buildLines(ctx, scope, order, in.Lines); err != nil {
		return nil, err
	}
	order.RecalculateTotals()

	needsApproval := !p.Admin() && p.SupervisorID != nil
	if !needsApproval {
		if err := order.Confirm(); err != nil {
			return nil, err
		}
	}

	var request *entity.OrderApprovalRequest
	if needsApproval {
		request = &entity.OrderApprovalRequest{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			OrderID:   order.ID,
			Status:    entity.ApprovalPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	err = s.tx.RunOrder(ctx, func(
		companies repository.CompanyRepository,
		orders repository.OrderRepository,
		orderApprovals repository.OrderApprovalRequestRepository,
	) error {
		seq, err := companies.NextOrderSeq(ctx, companyID)
		if err != nil {
			return err
		}
		order.OrderNo = company.FormatOrderNo(seq)
		if err := order.Validate(); err != nil {
			return err
		}
		if err := orders.Create(ctx, order); err != nil {
			return err
		}
		if request != nil {
			return orderApprovals.Create(ctx, request)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if request != nil {
		s.notifyApprovalRequested(ctx, order, customer.ApproverUserProfileID)
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// buildLines resolves each requested item strictly within the company scope
// (visibility grants allow viewing another company's item, never ordering
// it). Items already on the order keep their line identity and frozen
// snapshots; only genuinely new lines snapshot the current pricing.
func (s *Service) buildLines(ctx context.Context, scope tenant.Scope, order *entity.Order, inputs []dto.OrderLineInput) error {
	prior := make(map[string]*entity.OrderLine, len(order.Lines))
	for _, l := range order.Lines {
		prior[l.ItemID] = l
	}

	var ve domain.ValidationError
	order.Lines = order.Lines[:0]
	for _, in := range inputs {
		item, err := s.items.GetOwnedByID(ctx, scope, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil || !item.IsActive {
			ve.Add("lines", "item "+in.ItemID+" is not orderable")
			continue
		}
		line := entity.NewOrderLine(order, item, in.Quantity)
		if prev, ok := prior[in.ItemID]; ok {
			line.CarrySnapshots(prev)
		} else {
			line.ID = uuid.New().String()
		}
		if err := line.ValidateItem(item); err != nil {
			return err
		}
		if err := line.Validate(); err != nil {
			return err
		}
		order.Lines = append(order.Lines, line)
	}
	return ve.ErrOrNil()
}

func (s *Service) notifyApprovalRequested(ctx context.Context, order *entity.Order, approverProfileID *string) {
	if approverProfileID == nil {
		return
	}
	profile, err := s.profiles.GetByID(ctx, *approverProfileID)
	if err != nil || profile == nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("approval notification skipped")
		return
	}
	user, err := s.users.GetByID(ctx, profile.UserID)
	if err != nil || user == nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("approval notification skipped")
		return
	}
	s.notifier.OrderApprovalRequested(ctx, order, user.Email)
}

func toOrderResponse(o *entity.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:              o.ID,
		CompanyID:       o.CompanyID,
		CustomerID:      o.CustomerID,
		OrderedByUserID: o.OrderedByUserID,
		OrderNo:         o.OrderNo,
		OrderDate:       formatDate(o.OrderDate),
		ShippingStatus:  string(o.ShippingStatus),
		ShipCenterName:  o.ShipCenterName,
		ShippingAddress: o.FullShippingAddress(),
		TrackingNo:      o.TrackingNo,
		Carrier:         o.Carrier,
		ShipDate:        formatDatePtr(o.ShipDate),
		DeliveredDate:   formatDatePtr(o.DeliveredDate),
		TotalAmount:     o.TotalAmount,
		CO2Total:        o.CO2Total,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
	for _, l := range o.Lines {
		resp.Lines = append(resp.Lines, dto.OrderLineResponse{
			ID:                l.ID,
			ItemID:            l.ItemID,
			ItemCode:          l.ItemCode,
			ItemName:          l.ItemName,
			Quantity:          l.Quantity,
			UnitPriceSnapshot: l.UnitPriceSnapshot,
			Amount:            l.Amount,
			CO2Amount:         l.CO2Amount,
		})
	}
	return resp
}
