package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

var _ repository.IntegrationLogRepository = (*IntegrationLogRepo)(nil)

// IntegrationLogRepo implements the write-only integration record port on
// PostgreSQL. Payload lands in a jsonb column.
type IntegrationLogRepo struct {
	q Querier
}

// NewIntegrationLogRepository builds the integration log persistence adapter.
func NewIntegrationLogRepository(q Querier) *IntegrationLogRepo {
	return &IntegrationLogRepo{q: q}
}

// Insert appends one exchange record.
func (r *IntegrationLogRepo) Insert(ctx context.Context, l *entity.IntegrationLog) error {
	query := `
		INSERT INTO integration_logs (id, company_id, order_id, integration_type,
			result, payload, error_message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.CompanyID, l.OrderID, l.IntegrationType,
		l.Result, l.Payload, l.ErrorMessage, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert integration log: %w", err)
	}
	return nil
}
