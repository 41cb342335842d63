package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

// AccessLogRepository is the write-only audit port. Reporting lives outside
// this service.
type AccessLogRepository interface {
	Insert(ctx context.Context, l *entity.AccessLog) error
}
