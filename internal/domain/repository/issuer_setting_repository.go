package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

// IssuerSettingRepository is the persistence port for the single platform
// issuer row. Get returns nil, nil while no issuer has been configured.
type IssuerSettingRepository interface {
	Get(ctx context.Context) (*entity.IssuerSetting, error)
	Upsert(ctx context.Context, s *entity.IssuerSetting) error
}
