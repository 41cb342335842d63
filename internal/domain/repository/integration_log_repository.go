package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

// IntegrationLogRepository is the write-only port for external exchange
// records. Reporting lives outside this service.
type IntegrationLogRepository interface {
	Insert(ctx context.Context, l *entity.IntegrationLog) error
}
