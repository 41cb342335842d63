package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// CustomerFilter narrows center listings.
type CustomerFilter struct {
	IsBillingCenter *bool
	ActiveOnly      bool
	Code            string // exact center_code match
}

// CustomerRepository is the persistence port for centers. All lookups are
// scope-narrowed: an id outside the caller's scope reads as absent.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	Update(ctx context.Context, c *entity.Customer) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Customer, error)
	// GetByCode resolves the natural key used by CSV importers.
	GetByCode(ctx context.Context, companyID, centerCode string) (*entity.Customer, error)
	List(ctx context.Context, scope tenant.Scope, f CustomerFilter, limit, offset int) ([]*entity.Customer, error)
	// ListReceivingCenters returns the active receiving centers billed
	// through the given billing center.
	ListReceivingCenters(ctx context.Context, companyID, billingCenterID string) ([]*entity.Customer, error)
	SetActive(ctx context.Context, id string, active bool) error
}
