package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// CompanyRepository is the persistence port for tenants.
type CompanyRepository interface {
	Create(ctx context.Context, c *entity.Company) error
	Update(ctx context.Context, c *entity.Company) error
	// GetByID returns nil, nil when the id does not exist.
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetByCode(ctx context.Context, code string) (*entity.Company, error)
	List(ctx context.Context, scope tenant.Scope, limit, offset int) ([]*entity.Company, error)
	ListActive(ctx context.Context) ([]*entity.Company, error)
	// NextOrderSeq increments and returns the company's order sequence while
	// holding an exclusive row lock (SELECT ... FOR UPDATE). Must run inside
	// the same transaction that persists the order using the value, so the
	// allocation is gapless: a rolled-back order rolls the counter back too.
	NextOrderSeq(ctx context.Context, companyID string) (int64, error)
	SetActive(ctx context.Context, id string, active bool) error
}
