package ordering_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/notify"
	"github.com/orderdesk/orderdesk-api/internal/application/ordering"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// In-memory fakes. Each embeds its repository interface so only the methods
// the ordering service touches need an implementation; an unexpected call
// panics and fails the test loudly.

type fakeCompanies struct {
	repository.CompanyRepository
	byID map[string]*entity.Company
	seq  map[string]int64
}

func (f *fakeCompanies) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return f.byID[id], nil
}

func (f *fakeCompanies) NextOrderSeq(_ context.Context, companyID string) (int64, error) {
	f.seq[companyID]++
	return f.seq[companyID], nil
}

type fakeCustomers struct {
	repository.CustomerRepository
	byID map[string]*entity.Customer
}

func (f *fakeCustomers) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.Customer, error) {
	c := f.byID[id]
	if c == nil || !scope.Allows(c.CompanyID) {
		return nil, nil
	}
	return c, nil
}

type fakeItems struct {
	repository.ItemRepository
	byID map[string]*entity.Item
}

func (f *fakeItems) GetOwnedByID(_ context.Context, scope tenant.Scope, id string) (*entity.Item, error) {
	i := f.byID[id]
	if i == nil || !scope.Allows(i.CompanyID) {
		return nil, nil
	}
	return i, nil
}

type fakeOrders struct {
	repository.OrderRepository
	byID map[string]*entity.Order
	// supplier maps order id to the manufacturer allowed to resolve it
	// through a manufacturer scope.
	supplier    map[string]string
	transitions []entity.ShippingStatus // "from" of each Transition call
	makerLines  []repository.ManufacturerLine
}

func (f *fakeOrders) Create(_ context.Context, o *entity.Order) error {
	f.byID[o.ID] = o
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.Order, error) {
	o := f.byID[id]
	if o == nil {
		return nil, nil
	}
	if mID, ok := scope.Manufacturer(); ok {
		if f.supplier[id] != mID {
			return nil, nil
		}
		return o, nil
	}
	if !scope.Allows(o.CompanyID) {
		return nil, nil
	}
	return o, nil
}

func (f *fakeOrders) List(_ context.Context, scope tenant.Scope, _ repository.OrderFilter, _, _ int) ([]*entity.Order, error) {
	var out []*entity.Order
	for _, o := range f.byID {
		if scope.Allows(o.CompanyID) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrders) Transition(_ context.Context, _ *entity.Order, from entity.ShippingStatus) error {
	f.transitions = append(f.transitions, from)
	return nil
}

func (f *fakeOrders) UpdateHeader(context.Context, *entity.Order) error { return nil }
func (f *fakeOrders) ReplaceLines(context.Context, *entity.Order) error { return nil }
func (f *fakeOrders) UpdateTotals(context.Context, *entity.Order) error { return nil }

func (f *fakeOrders) ListManufacturerLines(_ context.Context, _ string, _, _ time.Time, statuses []entity.ShippingStatus) ([]repository.ManufacturerLine, error) {
	var out []repository.ManufacturerLine
	for _, ml := range f.makerLines {
		for _, st := range statuses {
			if ml.Order.ShippingStatus == st {
				out = append(out, ml)
				break
			}
		}
	}
	return out, nil
}

type fakeOrderApprovals struct {
	repository.OrderApprovalRequestRepository
	created []*entity.OrderApprovalRequest
}

func (f *fakeOrderApprovals) Create(_ context.Context, r *entity.OrderApprovalRequest) error {
	f.created = append(f.created, r)
	return nil
}

type fakeProfiles struct {
	repository.UserProfileRepository
	byID map[string]*entity.UserProfile
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	return f.byID[id], nil
}

type fakeUsers struct {
	repository.UserRepository
	byID map[string]*entity.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.byID[id], nil
}

type fakeIntegrations struct {
	repository.IntegrationLogRepository
	entries []*entity.IntegrationLog
}

func (f *fakeIntegrations) Insert(_ context.Context, l *entity.IntegrationLog) error {
	f.entries = append(f.entries, l)
	return nil
}

type fakeTx struct {
	companies *fakeCompanies
	orders    *fakeOrders
	approvals *fakeOrderApprovals
}

func (t *fakeTx) RunOrder(ctx context.Context, fn func(
	repository.CompanyRepository,
	repository.OrderRepository,
	repository.OrderApprovalRequestRepository,
) error) error {
	return fn(t.companies, t.orders, t.approvals)
}

type recordingNotifier struct {
	notify.Noop
	approvalEmails []string
}

func (r *recordingNotifier) OrderApprovalRequested(_ context.Context, _ *entity.Order, email string) {
	r.approvalEmails = append(r.approvalEmails, email)
}

type fixture struct {
	svc          *ordering.Service
	companies    *fakeCompanies
	customers    *fakeCustomers
	items        *fakeItems
	orders       *fakeOrders
	approvals    *fakeOrderApprovals
	profiles     *fakeProfiles
	users        *fakeUsers
	integrations *fakeIntegrations
	notifier     *recordingNotifier
}

func strPtr(s string) *string { return &s }

func newFixture() *fixture {
	f := &fixture{
		companies: &fakeCompanies{
			byID: map[string]*entity.Company{
				"company-1": {
					ID: "company-1", Name: "Acme Trading", Code: "ACME",
					Domains: []string{"acme.example"}, OrderPrefix: "ACM", IsActive: true,
				},
			},
			seq: map[string]int64{},
		},
		customers: &fakeCustomers{
			byID: map[string]*entity.Customer{
				"customer-1": {
					ID: "customer-1", CompanyID: "company-1",
					CenterCode: "C-001", CenterName: "HQ Center",
					PostalCode: "100-0001", Prefecture: "Tokyo", City: "Chiyoda", Address1: "1-1-1",
					IsBillingCenter: true, IsActive: true,
				},
			},
		},
		items: &fakeItems{
			byID: map[string]*entity.Item{
				"item-1": {
					ID: "item-1", CompanyID: "company-1", ItemCode: "CHAIR-01", Name: "Office Chair",
					UnitPrice:    decimal.NewFromInt(12000),
					CostPrice:    decimal.NewFromInt(8000),
					ShippingCost: decimal.NewFromInt(500),
					CO2PerUnit:   decimal.NewFromFloat(1.25),
					IsActive:     true,
				},
				"item-2": {
					ID: "item-2", CompanyID: "company-1", ItemCode: "DESK-01", Name: "Standing Desk",
					UnitPrice:  decimal.NewFromInt(50000),
					CO2PerUnit: decimal.NewFromInt(10),
					IsActive:   true,
				},
			},
		},
		orders: &fakeOrders{
			byID:     map[string]*entity.Order{},
			supplier: map[string]string{},
		},
		approvals:    &fakeOrderApprovals{},
		profiles:     &fakeProfiles{byID: map[string]*entity.UserProfile{}},
		users:        &fakeUsers{byID: map[string]*entity.User{}},
		integrations: &fakeIntegrations{},
		notifier:     &recordingNotifier{},
	}
	tx := &fakeTx{companies: f.companies, orders: f.orders, approvals: f.approvals}
	f.svc = ordering.NewService(
		tx, f.companies, f.customers, f.items, f.orders,
		f.approvals, f.profiles, f.users, f.integrations, f.notifier, zerolog.Nop(),
	)
	return f
}

func adminPrincipal() policy.Principal {
	return policy.Principal{
		UserID:       "user-admin",
		ProfileID:    "profile-admin",
		Role:         entity.RoleCompanyAdmin,
		MemberStatus: entity.MemberActive,
		CompanyID:    strPtr("company-1"),
	}
}

func memberPrincipal() policy.Principal {
	return policy.Principal{
		UserID:       "user-member",
		ProfileID:    "profile-member",
		Role:         entity.RoleNormal,
		MemberStatus: entity.MemberActive,
		CompanyID:    strPtr("company-1"),
		SupervisorID: strPtr("profile-admin"),
	}
}

func (f *fixture) seedOrder(id string, status entity.ShippingStatus) *entity.Order {
	o := &entity.Order{
		ID:              id,
		CompanyID:       "company-1",
		CustomerID:      "customer-1",
		OrderedByUserID: "user-admin",
		OrderNo:         "ACM-0000099",
		OrderDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		ShippingStatus:  status,
		ShipCenterName:  "HQ Center",
	}
	f.orders.byID[id] = o
	return o
}

func TestCreateOrderAutoConfirms(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.CreateOrder(ctx, adminPrincipal(), dto.CreateOrderRequest{
		CustomerID: "customer-1",
		OrderDate:  "2026-04-01",
		Lines: []dto.OrderLineInput{
			{ItemID: "item-1", Quantity: 3},
			{ItemID: "item-2", Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "ACM-0000001", resp.OrderNo)
	assert.Equal(t, string(entity.ShippingConfirmed), resp.ShippingStatus)
	assert.Equal(t, "2026-04-01", resp.OrderDate)
	assert.Equal(t, "HQ Center", resp.ShipCenterName)
	assert.Equal(t, "100-0001 Tokyo Chiyoda 1-1-1", resp.ShippingAddress)

	require.Len(t, resp.Lines, 2)
	assert.True(t, resp.Lines[0].UnitPriceSnapshot.Equal(decimal.NewFromInt(12000)))
	assert.True(t, resp.Lines[0].Amount.Equal(decimal.NewFromInt(36000)))
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(86000)))
	assert.True(t, resp.CO2Total.Equal(decimal.NewFromFloat(13.75)))

	assert.Empty(t, f.approvals.created, "admin orders confirm without a request")

	// The company sequence is gapless, so the next order takes the next number.
	resp2, err := f.svc.CreateOrder(ctx, adminPrincipal(), dto.CreateOrderRequest{
		CustomerID: "customer-1",
		Lines:      []dto.OrderLineInput{{ItemID: "item-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ACM-0000002", resp2.OrderNo)
}

func TestCreateOrderSnapshotsSurviveCatalogChanges(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.CreateOrder(ctx, adminPrincipal(), dto.CreateOrderRequest{
		CustomerID: "customer-1",
		Lines:      []dto.OrderLineInput{{ItemID: "item-1", Quantity: 2}},
	})
	require.NoError(t, err)

	f.items.byID["item-1"].UnitPrice = decimal.NewFromInt(99999)

	stored := f.orders.byID[resp.ID]
	require.Len(t, stored.Lines, 1)
	assert.True(t, stored.Lines[0].UnitPriceSnapshot.Equal(decimal.NewFromInt(12000)))
	assert.True(t, stored.Lines[0].Amount.Equal(decimal.NewFromInt(24000)))
}

func TestCreateOrderRoutesToApproval(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// The destination center routes approvals to a configured approver.
	f.customers.byID["customer-1"].ApproverUserProfileID = strPtr("profile-approver")
	f.profiles.byID["profile-approver"] = &entity.UserProfile{
		ID: "profile-approver", UserID: "user-approver",
		CompanyID: strPtr("company-1"), Role: entity.RoleApprover,
		MemberStatus: entity.MemberActive,
	}
	f.users.byID["user-approver"] = &entity.User{ID: "user-approver", Email: "approver@acme.example"}

	resp, err := f.svc.CreateOrder(ctx, memberPrincipal(), dto.CreateOrderRequest{
		CustomerID: "customer-1",
		Lines:      []dto.OrderLineInput{{ItemID: "item-1", Quantity: 1}},
	})
	require.NoError(t, err)

	assert.Equal(t, string(entity.ShippingDraft), resp.ShippingStatus)
	require.Len(t, f.approvals.created, 1)
	req := f.approvals.created[0]
	assert.Equal(t, resp.ID, req.OrderID)
	assert.Equal(t, "company-1", req.CompanyID)
	assert.Equal(t, entity.ApprovalPending, req.Status)

	assert.Equal(t, []string{"approver@acme.example"}, f.notifier.approvalEmails)
}

func TestCreateOrderMemberWithoutSupervisorConfirms(t *testing.T) {
	f := newFixture()
	p := memberPrincipal()
	p.SupervisorID = nil

	resp, err := f.svc.CreateOrder(context.Background(), p, dto.CreateOrderRequest{
		CustomerID: "customer-1",
		Lines:      []dto.OrderLineInput{{ItemID: "item-1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ShippingConfirmed), resp.ShippingStatus)
	assert.Empty(t, f.approvals.created)
}

func TestCreateOrderRejectsUnorderableItem(t *testing.T) {
	f := newFixture()
	f.items.byID["item-1"].IsActive = false

	_, err := f.svc.CreateOrder(context.Background(), adminPrincipal(), dto.CreateOrderRequest{
		CustomerID: "customer-1",
		Lines:      []dto.OrderLineInput{{ItemID: "item-1", Quantity: 1}},
	})
	require.Error(t, err)
	ve, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "lines", ve.Fields[0].Field)
	assert.Empty(t, f.orders.byID, "nothing persisted")
}

func TestCreateOrderRejectsForeignCustomer(t *testing.T) {
	f := newFixture()
	f.customers.byID["customer-2"] = &entity.Customer{
		ID: "customer-2", CompanyID: "company-2",
		CenterCode: "X-001", CenterName: "Foreign", IsActive: true,
	}

	_, err := f.svc.CreateOrder(context.Background(), adminPrincipal(), dto.CreateOrderRequest{
		CustomerID: "customer-2",
		Lines:      []dto.OrderLineInput{{ItemID: "item-1", Quantity: 1}},
	})
	assert.Error(t, err, "another company's center reads as absent")
	assert.Empty(t, f.orders.byID)
}

func TestCreateOrderRequiresLines(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreateOrder(context.Background(), adminPrincipal(), dto.CreateOrderRequest{
		CustomerID: "customer-1",
	})
	require.Error(t, err)
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)
}

func TestCreateOrderForbidden(t *testing.T) {
	f := newFixture()
	in := dto.CreateOrderRequest{
		CustomerID: "customer-1",
		Lines:      []dto.OrderLineInput{{ItemID: "item-1", Quantity: 1}},
	}

	internal := policy.Principal{
		UserID: "user-ia", ProfileID: "profile-ia",
		Role: entity.RoleInternalAdmin, MemberStatus: entity.MemberActive,
	}
	_, err := f.svc.CreateOrder(context.Background(), internal, in)
	assert.ErrorIs(t, err, domain.ErrForbidden, "internal admins are not bound to a company")

	pending := memberPrincipal()
	pending.MemberStatus = entity.MemberPending
	_, err = f.svc.CreateOrder(context.Background(), pending, in)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateOrderKeepsFrozenSnapshots(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	resp, err := f.svc.CreateOrder(ctx, adminPrincipal(), dto.CreateOrderRequest{
		CustomerID: "customer-1",
		Lines:      []dto.OrderLineInput{{ItemID: "item-1", Quantity: 3}},
	})
	require.NoError(t, err)
	lineID := resp.Lines[0].ID

	f.items.byID["item-1"].UnitPrice = decimal.NewFromInt(99999)

	updated, err := f.svc.Update(ctx, adminPrincipal(), resp.ID, dto.UpdateOrderRequest{
		Lines: []dto.OrderLineInput{
			{ItemID: "item-1", Quantity: 4},
			{ItemID: "item-2", Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Lines, 2)

	kept := updated.Lines[0]
	assert.Equal(t, lineID, kept.ID, "the kept item keeps its line")
	assert.True(t, kept.UnitPriceSnapshot.Equal(decimal.NewFromInt(12000)),
		"snapshot is frozen at creation, not refreshed from the catalog")
	assert.True(t, kept.Amount.Equal(decimal.NewFromInt(48000)))
	assert.True(t, kept.CO2Amount.Equal(decimal.NewFromInt(5)))

	added := updated.Lines[1]
	assert.True(t, added.UnitPriceSnapshot.Equal(decimal.NewFromInt(50000)),
		"a genuinely new line snapshots current pricing")
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(98000)))
}

func TestListShipmentRequestsCoversConfirmedAndShipped(t *testing.T) {
	f := newFixture()
	line := func(o *entity.Order) repository.ManufacturerLine {
		return repository.ManufacturerLine{
			Order: o,
			Line: &entity.OrderLine{
				ItemCode: "CHAIR-01", ItemName: "Office Chair",
				Quantity: 2, Amount: decimal.NewFromInt(24000),
			},
		}
	}
	f.orders.makerLines = append(f.orders.makerLines,
		line(f.seedOrder("order-1", entity.ShippingConfirmed)),
		line(f.seedOrder("order-2", entity.ShippingShipped)),
		line(f.seedOrder("order-3", entity.ShippingDraft)),
	)

	maker := policy.Principal{
		UserID: "user-maker", ProfileID: "profile-maker",
		Role: entity.RoleNormal, MemberStatus: entity.MemberActive,
		ManufacturerID: strPtr("manufacturer-1"),
	}
	out, err := f.svc.ListShipmentRequests(context.Background(), maker, dto.ShipmentRequestQuery{
		DateFrom: "2026-04-01", DateTo: "2026-04-30",
	})
	require.NoError(t, err)

	// Shipped orders stay on the queue until delivery; drafts never appear.
	require.Len(t, out, 2)
	assert.ElementsMatch(t,
		[]string{string(entity.ShippingConfirmed), string(entity.ShippingShipped)},
		[]string{out[0].ShippingStatus, out[1].ShippingStatus})
}

func TestShipThenDeliver(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedOrder("order-1", entity.ShippingConfirmed)

	resp, err := f.svc.Ship(ctx, adminPrincipal(), "order-1", dto.ShipOrderRequest{
		TrackingNo: "TRK-123", Carrier: "Yamato", ShipDate: "2026-04-03",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ShippingShipped), resp.ShippingStatus)
	assert.Equal(t, "TRK-123", resp.TrackingNo)
	assert.Equal(t, "Yamato", resp.Carrier)
	require.NotNil(t, resp.ShipDate)
	assert.Equal(t, "2026-04-03", *resp.ShipDate)

	resp, err = f.svc.Deliver(ctx, adminPrincipal(), "order-1", dto.DeliverOrderRequest{
		DeliveredDate: "2026-04-05",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ShippingDelivered), resp.ShippingStatus)

	// Each transition carried its state guard.
	assert.Equal(t, []entity.ShippingStatus{
		entity.ShippingConfirmed, entity.ShippingShipped,
	}, f.orders.transitions)
}

func TestShipRejectsDraft(t *testing.T) {
	f := newFixture()
	f.seedOrder("order-1", entity.ShippingDraft)

	_, err := f.svc.Ship(context.Background(), adminPrincipal(), "order-1", dto.ShipOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.seedOrder("order-1", entity.ShippingDraft)
	resp, err := f.svc.Cancel(ctx, adminPrincipal(), "order-1")
	require.NoError(t, err)
	assert.Equal(t, string(entity.ShippingCancelled), resp.ShippingStatus)

	f.seedOrder("order-2", entity.ShippingDelivered)
	_, err = f.svc.Cancel(ctx, adminPrincipal(), "order-2")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestGetHidesForeignOrders(t *testing.T) {
	f := newFixture()
	o := f.seedOrder("order-1", entity.ShippingConfirmed)
	o.CompanyID = "company-2"

	_, err := f.svc.Get(context.Background(), adminPrincipal(), "order-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportCSV(t *testing.T) {
	f := newFixture()
	o := f.seedOrder("order-1", entity.ShippingConfirmed)
	o.TotalAmount = decimal.NewFromInt(86000)
	o.CO2Total = decimal.NewFromFloat(13.75)

	out, err := f.svc.ExportCSV(context.Background(), adminPrincipal(), dto.OrderListQuery{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"order_no,order_date,shipping_status,center_name,shipping_address,tracking_no,carrier,total_amount,co2_total",
		lines[0])
	assert.Contains(t, lines[1], "ACM-0000099")
	assert.Contains(t, lines[1], "86000")
	assert.Contains(t, lines[1], "13.75")
}

func TestExportCSVRecordsIntegrationLog(t *testing.T) {
	f := newFixture()
	f.seedOrder("order-1", entity.ShippingConfirmed)

	_, err := f.svc.ExportCSV(context.Background(), adminPrincipal(), dto.OrderListQuery{})
	require.NoError(t, err)

	require.Len(t, f.integrations.entries, 1)
	entry := f.integrations.entries[0]
	assert.Equal(t, "company-1", entry.CompanyID)
	assert.Equal(t, entity.IntegrationCSVExport, entry.IntegrationType)
	assert.Equal(t, entity.IntegrationSuccess, entry.Result)
	assert.Equal(t, 1, entry.Payload["count"])
}

func TestExportCSVForbiddenForInternalAdmin(t *testing.T) {
	f := newFixture()
	internal := policy.Principal{
		UserID: "user-ia", ProfileID: "profile-ia",
		Role: entity.RoleInternalAdmin, MemberStatus: entity.MemberActive,
	}
	_, err := f.svc.ExportCSV(context.Background(), internal, dto.OrderListQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegisterShipment(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedOrder("order-1", entity.ShippingConfirmed)
	f.orders.supplier["order-1"] = "manufacturer-1"

	maker := policy.Principal{
		UserID: "user-maker", ProfileID: "profile-maker",
		Role: entity.RoleNormal, MemberStatus: entity.MemberActive,
		ManufacturerID: strPtr("manufacturer-1"),
	}

	resp, err := f.svc.RegisterShipment(ctx, maker, "order-1", dto.ShipOrderRequest{
		TrackingNo: "TRK-900", ShipDate: "2026-04-04",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ShippingShipped), resp.ShippingStatus)
	assert.Equal(t, "TRK-900", resp.TrackingNo)

	// Orders without the manufacturer's items read as absent.
	f.seedOrder("order-2", entity.ShippingConfirmed)
	f.orders.supplier["order-2"] = "manufacturer-2"
	_, err = f.svc.RegisterShipment(ctx, maker, "order-2", dto.ShipOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Draft orders are not shippable yet.
	f.seedOrder("order-3", entity.ShippingDraft)
	f.orders.supplier["order-3"] = "manufacturer-1"
	_, err = f.svc.RegisterShipment(ctx, maker, "order-3", dto.ShipOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
