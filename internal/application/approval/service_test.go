package approval_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/application/approval"
	"github.com/orderdesk/orderdesk-api/internal/application/notify"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// In-memory fakes implementing only the methods the approval service calls;
// anything unexpected panics through the embedded nil interface.

type fakeApprovals struct {
	repository.ApprovalRequestRepository
	byID map[string]*entity.ApprovalRequest
	// decided mirrors the WHERE status = 'pending' guard of the real store.
	decided map[string]bool
}

func (f *fakeApprovals) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.ApprovalRequest, error) {
	r := f.byID[id]
	if r == nil || !scope.Allows(r.CompanyID) {
		return nil, nil
	}
	return r, nil
}

func (f *fakeApprovals) Decide(_ context.Context, r *entity.ApprovalRequest) error {
	if f.decided[r.ID] {
		return domain.ErrConflict
	}
	f.decided[r.ID] = true
	return nil
}

type fakeOrderApprovals struct {
	repository.OrderApprovalRequestRepository
	byID    map[string]*entity.OrderApprovalRequest
	decided map[string]bool
}

func (f *fakeOrderApprovals) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.OrderApprovalRequest, error) {
	r := f.byID[id]
	if r == nil || !scope.Allows(r.CompanyID) {
		return nil, nil
	}
	return r, nil
}

func (f *fakeOrderApprovals) Decide(_ context.Context, r *entity.OrderApprovalRequest) error {
	if f.decided[r.ID] {
		return domain.ErrConflict
	}
	f.decided[r.ID] = true
	return nil
}

type fakeOrders struct {
	repository.OrderRepository
	byID        map[string]*entity.Order
	transitions []entity.ShippingStatus
}

func (f *fakeOrders) GetByID(_ context.Context, scope tenant.Scope, id string) (*entity.Order, error) {
	o := f.byID[id]
	if o == nil || !scope.Allows(o.CompanyID) {
		return nil, nil
	}
	return o, nil
}

func (f *fakeOrders) Transition(_ context.Context, _ *entity.Order, from entity.ShippingStatus) error {
	f.transitions = append(f.transitions, from)
	return nil
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

type fakeProfiles struct {
	repository.UserProfileRepository
	byID     map[string]*entity.UserProfile
	statuses map[string]entity.MemberStatus
}

func (f *fakeProfiles) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	return f.byID[id], nil
}

func (f *fakeProfiles) SetMemberStatus(_ context.Context, profileID string, status entity.MemberStatus) error {
	f.statuses[profileID] = status
	return nil
}

type fakeUsers struct {
	repository.UserRepository
	byID map[string]*entity.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.byID[id], nil
}

type fakeTx struct {
	profiles       *fakeProfiles
	approvals      *fakeApprovals
	orderApprovals *fakeOrderApprovals
	orders         *fakeOrders
}

func (t *fakeTx) RunDecision(ctx context.Context, fn func(
	repository.UserProfileRepository,
	repository.ApprovalRequestRepository,
	repository.OrderApprovalRequestRepository,
	repository.OrderRepository,
) error) error {
	return fn(t.profiles, t.approvals, t.orderApprovals, t.orders)
}

type recordingNotifier struct {
	notify.Noop
	membership []bool
	confirmed  []string
	rejected   []string
}

func (r *recordingNotifier) MembershipDecided(_ context.Context, _ string, approved bool, _ string) {
	r.membership = append(r.membership, approved)
}

func (r *recordingNotifier) OrderConfirmed(_ context.Context, _ *entity.Order, email string) {
	r.confirmed = append(r.confirmed, email)
}

func (r *recordingNotifier) OrderRejected(_ context.Context, _ *entity.Order, email, _ string) {
	r.rejected = append(r.rejected, email)
}

type fixture struct {
	svc            *approval.Service
	approvals      *fakeApprovals
	orderApprovals *fakeOrderApprovals
	orders         *fakeOrders
	customers      *fakeCustomers
	profiles       *fakeProfiles
	users          *fakeUsers
	notifier       *recordingNotifier
}

func strPtr(s string) *string { return &s }

func newFixture() *fixture {
	f := &fixture{
		approvals:      &fakeApprovals{byID: map[string]*entity.ApprovalRequest{}, decided: map[string]bool{}},
		orderApprovals: &fakeOrderApprovals{byID: map[string]*entity.OrderApprovalRequest{}, decided: map[string]bool{}},
		orders:         &fakeOrders{byID: map[string]*entity.Order{}},
		customers:      &fakeCustomers{byID: map[string]*entity.Customer{}},
		profiles:       &fakeProfiles{byID: map[string]*entity.UserProfile{}, statuses: map[string]entity.MemberStatus{}},
		users:          &fakeUsers{byID: map[string]*entity.User{}},
		notifier:       &recordingNotifier{},
	}
	tx := &fakeTx{
		profiles:       f.profiles,
		approvals:      f.approvals,
		orderApprovals: f.orderApprovals,
		orders:         f.orders,
	}
	f.svc = approval.NewService(
		tx, f.approvals, f.orderApprovals, f.orders,
		f.customers, f.profiles, f.users, f.notifier, zerolog.Nop(),
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

func (f *fixture) seedAdmin() {
	f.profiles.byID["profile-admin"] = &entity.UserProfile{
		ID: "profile-admin", UserID: "user-admin",
		CompanyID: strPtr("company-1"), Role: entity.RoleCompanyAdmin,
		MemberStatus: entity.MemberActive,
	}
}

func (f *fixture) seedMembershipRequest() *entity.ApprovalRequest {
	r := &entity.ApprovalRequest{
		ID:            "req-1",
		CompanyID:     "company-1",
		UserProfileID: "profile-applicant",
		Status:        entity.ApprovalPending,
		CreatedAt:     time.Now(),
	}
	f.approvals.byID[r.ID] = r
	f.profiles.byID["profile-applicant"] = &entity.UserProfile{
		ID: "profile-applicant", UserID: "user-applicant",
		CompanyID: strPtr("company-1"), Role: entity.RoleNormal,
		MemberStatus: entity.MemberPending,
	}
	f.users.byID["user-applicant"] = &entity.User{ID: "user-applicant", Email: "applicant@acme.example"}
	return r
}

// seedOrderRequest seeds a pending order approval with its draft order and
// destination center. approverProfileID optionally configures the center's
// approver.
func (f *fixture) seedOrderRequest(approverProfileID *string) *entity.OrderApprovalRequest {
	f.orders.byID["order-1"] = &entity.Order{
		ID: "order-1", CompanyID: "company-1", CustomerID: "customer-1",
		OrderedByUserID: "user-orderer", OrderNo: "ACM-0000001",
		OrderDate:      time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		ShippingStatus: entity.ShippingDraft,
	}
	f.customers.byID["customer-1"] = &entity.Customer{
		ID: "customer-1", CompanyID: "company-1",
		CenterCode: "C-001", CenterName: "HQ Center",
		ApproverUserProfileID: approverProfileID, IsActive: true,
	}
	f.users.byID["user-orderer"] = &entity.User{ID: "user-orderer", Email: "orderer@acme.example"}
	r := &entity.OrderApprovalRequest{
		ID:        "oreq-1",
		CompanyID: "company-1",
		OrderID:   "order-1",
		Status:    entity.ApprovalPending,
		CreatedAt: time.Now(),
	}
	f.orderApprovals.byID[r.ID] = r
	return r
}

func TestDecideMembershipApproves(t *testing.T) {
	f := newFixture()
	f.seedAdmin()
	f.seedMembershipRequest()

	resp, err := f.svc.DecideMembership(context.Background(), adminPrincipal(), "req-1",
		entity.ApprovalApproved, "welcome aboard")
	require.NoError(t, err)

	assert.Equal(t, string(entity.ApprovalApproved), resp.Status)
	require.NotNil(t, resp.ReviewedByUserID)
	assert.Equal(t, "user-admin", *resp.ReviewedByUserID)
	assert.Equal(t, entity.MemberActive, f.profiles.statuses["profile-applicant"])
	assert.Equal(t, []bool{true}, f.notifier.membership)
}

func TestDecideMembershipRejects(t *testing.T) {
	f := newFixture()
	f.seedAdmin()
	f.seedMembershipRequest()

	resp, err := f.svc.DecideMembership(context.Background(), adminPrincipal(), "req-1",
		entity.ApprovalRejected, "unknown applicant")
	require.NoError(t, err)

	assert.Equal(t, string(entity.ApprovalRejected), resp.Status)
	assert.Equal(t, entity.MemberRejected, f.profiles.statuses["profile-applicant"])
	assert.Equal(t, []bool{false}, f.notifier.membership)
}

func TestDecideMembershipOnceOnly(t *testing.T) {
	f := newFixture()
	f.seedAdmin()
	f.seedMembershipRequest()
	ctx := context.Background()

	_, err := f.svc.DecideMembership(ctx, adminPrincipal(), "req-1", entity.ApprovalApproved, "")
	require.NoError(t, err)

	_, err = f.svc.DecideMembership(ctx, adminPrincipal(), "req-1", entity.ApprovalRejected, "")
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDecideMembershipHiddenFromNonAdmin(t *testing.T) {
	f := newFixture()
	f.seedMembershipRequest()

	p := adminPrincipal()
	p.Role = entity.RoleApprover
	p.ProfileID = "profile-approver"

	// Membership approval is admin work; other roles see no requests at all.
	_, err := f.svc.DecideMembership(context.Background(), p, "req-1", entity.ApprovalApproved, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecideMembershipHiddenOutsideCompany(t *testing.T) {
	f := newFixture()
	r := f.seedMembershipRequest()
	r.CompanyID = "company-2"

	_, err := f.svc.DecideMembership(context.Background(), adminPrincipal(), "req-1",
		entity.ApprovalApproved, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecideOrderApprovesAndConfirms(t *testing.T) {
	f := newFixture()
	f.seedAdmin()
	f.seedOrderRequest(nil)

	resp, err := f.svc.DecideOrder(context.Background(), adminPrincipal(), "oreq-1",
		entity.ApprovalApproved, "looks good")
	require.NoError(t, err)

	assert.Equal(t, string(entity.ApprovalApproved), resp.Status)
	assert.Equal(t, entity.ShippingConfirmed, f.orders.byID["order-1"].ShippingStatus)
	assert.Equal(t, []entity.ShippingStatus{entity.ShippingDraft}, f.orders.transitions)
	assert.Equal(t, []string{"orderer@acme.example"}, f.notifier.confirmed)
}

func TestDecideOrderRejectsLeavingDraft(t *testing.T) {
	f := newFixture()
	f.seedAdmin()
	f.seedOrderRequest(nil)

	resp, err := f.svc.DecideOrder(context.Background(), adminPrincipal(), "oreq-1",
		entity.ApprovalRejected, "over budget")
	require.NoError(t, err)

	assert.Equal(t, string(entity.ApprovalRejected), resp.Status)
	// The orderer can revise and resubmit a rejected draft.
	assert.Equal(t, entity.ShippingDraft, f.orders.byID["order-1"].ShippingStatus)
	assert.Empty(t, f.orders.transitions)
	assert.Equal(t, []string{"orderer@acme.example"}, f.notifier.rejected)
}

func TestDecideOrderByCenterApprover(t *testing.T) {
	f := newFixture()
	f.seedOrderRequest(strPtr("profile-approver"))
	f.profiles.byID["profile-approver"] = &entity.UserProfile{
		ID: "profile-approver", UserID: "user-approver",
		CompanyID: strPtr("company-1"), Role: entity.RoleApprover,
		MemberStatus: entity.MemberActive,
	}

	p := policy.Principal{
		UserID:       "user-approver",
		ProfileID:    "profile-approver",
		Role:         entity.RoleApprover,
		MemberStatus: entity.MemberActive,
		CompanyID:    strPtr("company-1"),
	}

	resp, err := f.svc.DecideOrder(context.Background(), p, "oreq-1", entity.ApprovalApproved, "")
	require.NoError(t, err)
	assert.Equal(t, string(entity.ApprovalApproved), resp.Status)
	assert.Equal(t, entity.ShippingConfirmed, f.orders.byID["order-1"].ShippingStatus)
}

func TestDecideOrderHiddenFromUnconfiguredApprover(t *testing.T) {
	f := newFixture()
	f.seedOrderRequest(strPtr("profile-approver"))

	other := policy.Principal{
		UserID:       "user-other",
		ProfileID:    "profile-other",
		Role:         entity.RoleApprover,
		MemberStatus: entity.MemberActive,
		CompanyID:    strPtr("company-1"),
	}

	_, err := f.svc.DecideOrder(context.Background(), other, "oreq-1", entity.ApprovalApproved, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDecideOrderOnceOnly(t *testing.T) {
	f := newFixture()
	f.seedAdmin()
	f.seedOrderRequest(nil)
	ctx := context.Background()

	_, err := f.svc.DecideOrder(ctx, adminPrincipal(), "oreq-1", entity.ApprovalApproved, "")
	require.NoError(t, err)

	_, err = f.svc.DecideOrder(ctx, adminPrincipal(), "oreq-1", entity.ApprovalRejected, "")
	assert.ErrorIs(t, err, domain.ErrConflict)
}
