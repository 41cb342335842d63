package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

// ManufacturerRepository is the persistence port for the platform-level
// manufacturer master (not tenant-scoped).
type ManufacturerRepository interface {
	Create(ctx context.Context, m *entity.Manufacturer) error
	Update(ctx context.Context, m *entity.Manufacturer) error
	GetByID(ctx context.Context, id string) (*entity.Manufacturer, error)
	GetByCode(ctx context.Context, code string) (*entity.Manufacturer, error)
	ListActive(ctx context.Context) ([]*entity.Manufacturer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Manufacturer, error)
}
