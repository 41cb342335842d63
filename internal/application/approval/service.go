// Package approval implements the two-party decision workflows: membership
// activation and order sign-off. Decisions are single-shot; the repository
// state guard makes the loser of a concurrent decision fail with ErrConflict.
package approval

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/notify"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// TxRunner runs a decision and its side effects in one transaction.
type TxRunner interface {
	RunDecision(ctx context.Context, fn func(
		profiles repository.UserProfileRepository,
		approvals repository.ApprovalRequestRepository,
		orderApprovals repository.OrderApprovalRequestRepository,
		orders repository.OrderRepository,
	) error) error
}

// Service exposes approval listings and decisions.
type Service struct {
	tx             TxRunner
	approvals      repository.ApprovalRequestRepository
	orderApprovals repository.OrderApprovalRequestRepository
	orders         repository.OrderRepository
	customers      repository.CustomerRepository
	profiles       repository.UserProfileRepository
	users          repository.UserRepository
	notifier       notify.Notifier
	log            zerolog.Logger
}

// NewService builds the approval service.
func NewService(
	tx TxRunner,
	approvals repository.ApprovalRequestRepository,
	orderApprovals repository.OrderApprovalRequestRepository,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	profiles repository.UserProfileRepository,
	users repository.UserRepository,
	notifier notify.Notifier,
	log zerolog.Logger,
) *Service {
	return &Service{
		tx:             tx,
		approvals:      approvals,
		orderApprovals: orderApprovals,
		orders:         orders,
		customers:      customers,
		profiles:       profiles,
		users:          users,
		notifier:       notifier,
		log:            log,
	}
}

// ListMemberships returns membership approval requests visible to the caller.
func (s *Service) ListMemberships(ctx context.Context, p policy.Principal, status entity.ApprovalStatus, page dto.PageRequest) ([]dto.ApprovalRequestResponse, error) {
	var pol policy.ApprovalRequestPolicy
	if !pol.CanIndex(p) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	reqs, err := s.approvals.List(ctx, pol.Scope(p), status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApprovalRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toMembershipResponse(r))
	}
	return out, nil
}

// GetMembership returns one request; outside the caller's scope it reads as
// absent.
func (s *Service) GetMembership(ctx context.Context, p policy.Principal, id string) (*dto.ApprovalRequestResponse, error) {
	var pol policy.ApprovalRequestPolicy
	req, err := s.approvals.GetByID(ctx, pol.Scope(p), id)
	if err != nil {
		return nil, err
	}
	if req == nil || !pol.CanShow(p, req) {
		return nil, domain.ErrNotFound
	}
	resp := toMembershipResponse(req)
	return &resp, nil
}

// DecideMembership approves or rejects a pending membership request. The
// member status flips in the same transaction; approved activates the
// profile, rejected marks it rejected.
func (s *Service) DecideMembership(ctx context.Context, p policy.Principal, id string, outcome entity.ApprovalStatus, comment string) (*dto.ApprovalRequestResponse, error) {
	var pol policy.ApprovalRequestPolicy
	req, err := s.approvals.GetByID(ctx, pol.Scope(p), id)
	if err != nil {
		return nil, err
	}
	if req == nil || !pol.CanShow(p, req) {
		return nil, domain.ErrNotFound
	}
	if !p.Admin() {
		return nil, domain.ErrForbidden
	}
	reviewer, err := s.profiles.GetByID(ctx, p.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := req.ValidateReviewer(reviewer); err != nil {
		return nil, err
	}
	if err := req.Decide(outcome, p.UserID, comment, time.Now()); err != nil {
		return nil, err
	}

	memberStatus := entity.MemberActive
	if outcome == entity.ApprovalRejected {
		memberStatus = entity.MemberRejected
	}
	err = s.tx.RunDecision(ctx, func(
		profiles repository.UserProfileRepository,
		approvals repository.ApprovalRequestRepository,
		_ repository.OrderApprovalRequestRepository,
		_ repository.OrderRepository,
	) error {
		if err := approvals.Decide(ctx, req); err != nil {
			return err
		}
		return profiles.SetMemberStatus(ctx, req.UserProfileID, memberStatus)
	})
	if err != nil {
		return nil, err
	}

	s.notifyMembership(ctx, req, outcome == entity.ApprovalApproved, comment)
	resp := toMembershipResponse(req)
	return &resp, nil
}

// ListOrderApprovals returns order approval requests visible to the caller.
// Plain approvers only see requests routed to centers configured with them.
func (s *Service) ListOrderApprovals(ctx context.Context, p policy.Principal, status entity.ApprovalStatus, page dto.PageRequest) ([]dto.OrderApprovalRequestResponse, error) {
	var pol policy.OrderApprovalRequestPolicy
	if !pol.CanIndex(p) {
		return nil, domain.ErrForbidden
	}
	scope, approverID := pol.Scope(p)
	page.DefaultPage()
	reqs, err := s.orderApprovals.List(ctx, scope, approverID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderApprovalRequestResponse, 0, len(reqs))
	for _, r := range reqs {
		out = append(out, toOrderApprovalResponse(r))
	}
	return out, nil
}

// GetOrderApproval returns one order approval request.
func (s *Service) GetOrderApproval(ctx context.Context, p policy.Principal, id string) (*dto.OrderApprovalRequestResponse, error) {
	var pol policy.OrderApprovalRequestPolicy
	scope, _ := pol.Scope(p)
	req, err := s.orderApprovals.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	approverID, _, err := s.centerApprover(ctx, req)
	if err != nil {
		return nil, err
	}
	if !pol.CanShow(p, req, approverID) {
		return nil, domain.ErrNotFound
	}
	resp := toOrderApprovalResponse(req)
	return &resp, nil
}

// DecideOrder approves or rejects a pending order request. Approval confirms
// the order in the same transaction; rejection leaves it in draft so the
// orderer can revise and resubmit.
func (s *Service) DecideOrder(ctx context.Context, p policy.Principal, id string, outcome entity.ApprovalStatus, comment string) (*dto.OrderApprovalRequestResponse, error) {
	var pol policy.OrderApprovalRequestPolicy
	scope, _ := pol.Scope(p)
	req, err := s.orderApprovals.GetByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	approverID, order, err := s.centerApprover(ctx, req)
	if err != nil {
		return nil, err
	}
	if !pol.CanShow(p, req, approverID) {
		return nil, domain.ErrNotFound
	}
	if req.Status != entity.ApprovalPending {
		return nil, domain.ErrConflict
	}
	if !pol.CanDecide(p, req, approverID) {
		return nil, domain.ErrForbidden
	}
	reviewer, err := s.profiles.GetByID(ctx, p.ProfileID)
	if err != nil {
		return nil, err
	}
	if err := req.ValidateReviewer(reviewer, approverID); err != nil {
		return nil, err
	}
	if err := req.Decide(outcome, p.UserID, comment, time.Now()); err != nil {
		return nil, err
	}

	approved := outcome == entity.ApprovalApproved
	if approved {
		if err := order.Confirm(); err != nil {
			return nil, domain.ErrConflict
		}
	}
	err = s.tx.RunDecision(ctx, func(
		_ repository.UserProfileRepository,
		_ repository.ApprovalRequestRepository,
		orderApprovals repository.OrderApprovalRequestRepository,
		orders repository.OrderRepository,
	) error {
		if err := orderApprovals.Decide(ctx, req); err != nil {
			return err
		}
		if approved {
			return orders.Transition(ctx, order, entity.ShippingDraft)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyOrderDecision(ctx, order, approved, comment)
	resp := toOrderApprovalResponse(req)
	return &resp, nil
}

// centerApprover loads the request's order and resolves the approver profile
// configured on its destination center, if any.
func (s *Service) centerApprover(ctx context.Context, req *entity.OrderApprovalRequest) (*string, *entity.Order, error) {
	order, err := s.orders.GetByID(ctx, tenant.ScopeCompany(req.CompanyID), req.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, domain.ErrNotFound
	}
	customer, err := s.customers.GetByID(ctx, tenant.ScopeCompany(req.CompanyID), order.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil {
		return nil, order, nil
	}
	return customer.ApproverUserProfileID, order, nil
}

func (s *Service) notifyMembership(ctx context.Context, req *entity.ApprovalRequest, approved bool, comment string) {
	email, err := s.profileEmail(ctx, req.UserProfileID)
	if err != nil || email == "" {
		s.log.Warn().Err(err).Str("approval_request_id", req.ID).Msg("membership notification skipped")
		return
	}
	s.notifier.MembershipDecided(ctx, email, approved, comment)
}

func (s *Service) notifyOrderDecision(ctx context.Context, order *entity.Order, approved bool, comment string) {
	user, err := s.users.GetByID(ctx, order.OrderedByUserID)
	if err != nil || user == nil {
		s.log.Warn().Err(err).Str("order_id", order.ID).Msg("order decision notification skipped")
		return
	}
	if approved {
		s.notifier.OrderConfirmed(ctx, order, user.Email)
		return
	}
	s.notifier.OrderRejected(ctx, order, user.Email, comment)
}

func (s *Service) profileEmail(ctx context.Context, profileID string) (string, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil || profile == nil {
		return "", err
	}
	user, err := s.users.GetByID(ctx, profile.UserID)
	if err != nil || user == nil {
		return "", err
	}
	return user.Email, nil
}

func toMembershipResponse(r *entity.ApprovalRequest) dto.ApprovalRequestResponse {
	return dto.ApprovalRequestResponse{
		ID:               r.ID,
		CompanyID:        r.CompanyID,
		UserProfileID:    r.UserProfileID,
		Status:           string(r.Status),
		ReviewedByUserID: r.ReviewedByUserID,
		ReviewedAt:       r.ReviewedAt,
		ReviewComment:    r.ReviewComment,
		CreatedAt:        r.CreatedAt,
	}
}

func toOrderApprovalResponse(r *entity.OrderApprovalRequest) dto.OrderApprovalRequestResponse {
	return dto.OrderApprovalRequestResponse{
		ID:               r.ID,
		CompanyID:        r.CompanyID,
		OrderID:          r.OrderID,
		Status:           string(r.Status),
		ReviewedByUserID: r.ReviewedByUserID,
		ReviewedAt:       r.ReviewedAt,
		ReviewComment:    r.ReviewComment,
		CreatedAt:        r.CreatedAt,
	}
}
