package repository

import (
	"context"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

// CompanyPaymentFilter narrows payment listings.
type CompanyPaymentFilter struct {
	CompanyID string
	Year      int
	// Status filters by payment state: "paid", "unpaid" or "overdue".
	// Overdue needs a reference time because it is derived, not stored.
	Status string
	Now    time.Time
}

// CompanyPaymentRepository is the persistence port for monthly payment
// tracking. Create returns ErrDuplicate when the company already has a row
// for the year/month.
type CompanyPaymentRepository interface {
	Create(ctx context.Context, p *entity.CompanyPayment) error
	Update(ctx context.Context, p *entity.CompanyPayment) error
	// GetByID returns nil, nil when the id does not exist.
	GetByID(ctx context.Context, id string) (*entity.CompanyPayment, error)
	List(ctx context.Context, f CompanyPaymentFilter, limit, offset int) ([]*entity.CompanyPayment, error)
	Delete(ctx context.Context, id string) error
}
