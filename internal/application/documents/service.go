package documents

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// billableStatuses are the order states that appear on invoices and
// statements. Draft and cancelled orders never bill.
var billableStatuses = []entity.ShippingStatus{entity.ShippingShipped, entity.ShippingDelivered}

// shippingRequestStatuses are the order states printed on the shipping
// request sheet: confirmed lines await shipment, shipped lines stay on the
// manifest until delivery.
var shippingRequestStatuses = []entity.ShippingStatus{entity.ShippingConfirmed, entity.ShippingShipped}

// Service assembles and renders documents.
type Service struct {
	companies repository.CompanyRepository
	customers repository.CustomerRepository
	orders    repository.OrderRepository
	issuer    repository.IssuerSettingRepository
	renderer  Renderer
}

// NewService builds the documents service.
func NewService(
	companies repository.CompanyRepository,
	customers repository.CustomerRepository,
	orders repository.OrderRepository,
	issuer repository.IssuerSettingRepository,
	renderer Renderer,
) *Service {
	return &Service{
		companies: companies,
		customers: customers,
		orders:    orders,
		issuer:    issuer,
		renderer:  renderer,
	}
}

// issuerParty resolves the printed issuer block: the platform issuer
// identity once configured, otherwise the tenant company itself.
func (s *Service) issuerParty(ctx context.Context, company *entity.Company) Party {
	setting, err := s.issuer.Get(ctx)
	if err == nil && setting != nil && setting.Configured() {
		return Party{
			Name:    setting.Name,
			Code:    setting.RegistrationNumber,
			Address: setting.FullAddress(),
		}
	}
	return Party{Name: company.Name, Code: company.Code, Address: company.FullAddress()}
}

// GenerateInvoice renders the invoice PDF for a billing center over the
// period. A period with no billable orders yields ErrNotFound: no empty
// invoices are ever issued.
func (s *Service) GenerateInvoice(ctx context.Context, p policy.Principal, billingCenterID string, from, to time.Time) ([]byte, error) {
	company, billing, orders, err := s.billableOrders(ctx, p, billingCenterID, from, to)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrNotFound
	}

	inv := &Invoice{
		InvoiceNo: fmt.Sprintf("INV-%s-%s", billing.CenterCode, to.Format("200601")),
		IssuedAt:  time.Now(),
		From:      from,
		To:        to,
		Issuer:    s.issuerParty(ctx, company),
		BillTo:    Party{Name: billing.CenterName, Code: billing.CenterCode, Address: billing.FullAddress()},
	}
	subtotal := decimal.Zero
	for _, o := range orders {
		inv.Lines = append(inv.Lines, InvoiceLine{
			OrderNo:    o.OrderNo,
			OrderDate:  o.OrderDate,
			CenterName: o.ShipCenterName,
			Status:     string(o.ShippingStatus),
			Amount:     o.TotalAmount,
		})
		subtotal = subtotal.Add(o.TotalAmount)
	}
	inv.Subtotal = subtotal
	inv.Tax = subtotal.Mul(TaxRate).Round(0)
	inv.Total = inv.Subtotal.Add(inv.Tax)
	return s.renderer.RenderInvoice(inv)
}

// GenerateStatement renders the per-center activity summary for a billing
// center over the period.
func (s *Service) GenerateStatement(ctx context.Context, p policy.Principal, billingCenterID string, from, to time.Time) ([]byte, error) {
	company, billing, orders, err := s.billableOrders(ctx, p, billingCenterID, from, to)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, domain.ErrNotFound
	}

	type agg struct {
		row StatementRow
	}
	byCenter := map[string]*agg{}
	total := decimal.Zero
	co2 := decimal.Zero
	for _, o := range orders {
		a, ok := byCenter[o.CustomerID]
		if !ok {
			a = &agg{row: StatementRow{CenterName: o.ShipCenterName}}
			byCenter[o.CustomerID] = a
		}
		a.row.OrderCount++
		a.row.Amount = a.row.Amount.Add(o.TotalAmount)
		a.row.CO2 = a.row.CO2.Add(o.CO2Total)
		total = total.Add(o.TotalAmount)
		co2 = co2.Add(o.CO2Total)
	}

	st := &Statement{
		IssuedAt: time.Now(),
		From:     from,
		To:       to,
		Issuer:   s.issuerParty(ctx, company),
		BillTo:   Party{Name: billing.CenterName, Code: billing.CenterCode, Address: billing.FullAddress()},
		Total:    total,
		CO2Total: co2,
	}
	for id, a := range byCenter {
		if c, err := s.customers.GetByID(ctx, tenant.ScopeCompany(company.ID), id); err == nil && c != nil {
			a.row.CenterCode = c.CenterCode
		}
		st.Rows = append(st.Rows, a.row)
	}
	sort.Slice(st.Rows, func(i, j int) bool { return st.Rows[i].CenterName < st.Rows[j].CenterName })
	return s.renderer.RenderStatement(st)
}

// GenerateShippingRequest renders the shipping request sheet for a
// manufacturer: the confirmed and shipped lines of its items within the
// period.
func (s *Service) GenerateShippingRequest(ctx context.Context, p policy.Principal, manufacturer *entity.Manufacturer, from, to time.Time) ([]byte, error) {
	if !(policy.ManufacturerPolicy{}).CanRegisterShipment(p, manufacturer) && !p.InternalAdmin() {
		return nil, domain.ErrForbidden
	}
	lines, err := s.orders.ListManufacturerLines(ctx, manufacturer.ID, from, to, shippingRequestStatuses)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domain.ErrNotFound
	}

	sr := &ShippingRequest{
		IssuedAt:     time.Now(),
		From:         from,
		To:           to,
		Manufacturer: Party{Name: manufacturer.Name, Code: manufacturer.Code},
	}
	for _, ml := range lines {
		sr.Lines = append(sr.Lines, ShippingRequestLine{
			OrderNo:     ml.Order.OrderNo,
			OrderDate:   ml.Order.OrderDate,
			CenterName:  ml.Order.ShipCenterName,
			ShipAddress: ml.Order.FullShippingAddress(),
			ItemCode:    ml.Line.ItemCode,
			ItemName:    ml.Line.ItemName,
			Quantity:    ml.Line.Quantity,
		})
	}
	return s.renderer.RenderShippingRequest(sr)
}

// billableOrders resolves the billing center within the caller's scope and
// loads the billable orders of the center and its receiving centers.
func (s *Service) billableOrders(ctx context.Context, p policy.Principal, billingCenterID string, from, to time.Time) (*entity.Company, *entity.Customer, []*entity.Order, error) {
	var pol policy.CustomerPolicy
	billing, err := s.customers.GetByID(ctx, pol.Scope(p), billingCenterID)
	if err != nil {
		return nil, nil, nil, err
	}
	if billing == nil || !pol.CanShow(p, billing) {
		return nil, nil, nil, domain.ErrNotFound
	}
	if !billing.IsBillingCenter {
		var ve domain.ValidationError
		ve.Add("billing_center_id", "must be a billing center")
		return nil, nil, nil, ve.ErrOrNil()
	}
	company, err := s.companies.GetByID(ctx, billing.CompanyID)
	if err != nil {
		return nil, nil, nil, err
	}
	if company == nil {
		return nil, nil, nil, domain.ErrNotFound
	}

	receiving, err := s.customers.ListReceivingCenters(ctx, billing.CompanyID, billing.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	customerIDs := make([]string, 0, len(receiving)+1)
	customerIDs = append(customerIDs, billing.ID)
	for _, c := range receiving {
		customerIDs = append(customerIDs, c.ID)
	}

	orders, err := s.orders.ListForBilling(ctx, customerIDs, from, to, billableStatuses)
	if err != nil {
		return nil, nil, nil, err
	}
	return company, billing, orders, nil
}
