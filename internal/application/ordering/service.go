// Package ordering implements the purchase-order lifecycle: creation with
// per-company order numbering and price snapshots, the
// draft/confirmed/shipped/delivered/cancelled transitions, listing and CSV
// export, and the manufacturer shipment flow.
package ordering

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/orderdesk/orderdesk-api/internal/application/notify"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// TxRunner runs order writes in one transaction. The order-number allocation
// must share the transaction with the order insert, so a failed insert rolls
// the counter back and the sequence stays gapless.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		orders repository.OrderRepository,
		orderApprovals repository.OrderApprovalRequestRepository,
	) error) error
}

// Service exposes the order operations.
type Service struct {
	tx             TxRunner
	companies      repository.CompanyRepository
	customers      repository.CustomerRepository
	items          repository.ItemRepository
	orders         repository.OrderRepository
	orderApprovals repository.OrderApprovalRequestRepository
	profiles       repository.UserProfileRepository
	users          repository.UserRepository
	integrations   repository.IntegrationLogRepository
	notifier       notify.Notifier
	log            zerolog.Logger
}

// NewService builds the ordering service.
func NewService(
	tx TxRunner,
	companies repository.CompanyRepository,
	customers repository.CustomerRepository,
	items repository.ItemRepository,
	orders repository.OrderRepository,
	orderApprovals repository.OrderApprovalRequestRepository,
	profiles repository.UserProfileRepository,
	users repository.UserRepository,
	integrations repository.IntegrationLogRepository,
	notifier notify.Notifier,
	log zerolog.Logger,
) *Service {
	return &Service{
		tx:             tx,
		companies:      companies,
		customers:      customers,
		items:          items,
		orders:         orders,
		orderApprovals: orderApprovals,
		profiles:       profiles,
		users:          users,
		integrations:   integrations,
		notifier:       notifier,
		log:            log,
	}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	return t, nil
}

func dateOrToday(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return parseDate(s)
}

func formatDate(t time.Time) string { return t.Format(dateLayout) }

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func (s *Service) orderPolicy() policy.OrderPolicy { return policy.OrderPolicy{} }

// loadVisible fetches an order within the caller's scope; a miss or a
// scope-excluded id both read as absent.
func (s *Service) loadVisible(ctx context.Context, p policy.Principal, id string) (*entity.Order, error) {
	o, err := s.orders.GetByID(ctx, s.orderPolicy().Scope(p), id)
	if err != nil {
		return nil, err
	}
	if o == nil || !s.orderPolicy().CanShow(p, o) {
		return nil, domain.ErrNotFound
	}
	return o, nil
}
