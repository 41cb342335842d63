package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// ItemFilter narrows catalog listings.
type ItemFilter struct {
	ActiveOnly bool
	Code       string // exact item_code match
}

// ItemRepository is the persistence port for catalog items. Company scopes
// include items granted to the company via item_companies; manufacturer
// scopes match the items the manufacturer supplies.
type ItemRepository interface {
	Create(ctx context.Context, i *entity.Item) error
	Update(ctx context.Context, i *entity.Item) error
	GetByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Item, error)
	// GetOwnedByID ignores visibility grants: only the owning company scope
	// (or all) resolves the item. Order lines use this.
	GetOwnedByID(ctx context.Context, scope tenant.Scope, id string) (*entity.Item, error)
	GetByCode(ctx context.Context, companyID, itemCode string) (*entity.Item, error)
	List(ctx context.Context, scope tenant.Scope, f ItemFilter, limit, offset int) ([]*entity.Item, error)
	GrantVisibility(ctx context.Context, itemID, companyID string) error
	RevokeVisibility(ctx context.Context, itemID, companyID string) error
	VisibleToCompany(ctx context.Context, itemID, companyID string) (bool, error)
	SetActive(ctx context.Context, id string, active bool) error
}
