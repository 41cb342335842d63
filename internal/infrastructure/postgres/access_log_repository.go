package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

var _ repository.AccessLogRepository = (*AccessLogRepo)(nil)

// AccessLogRepo implements the write-only audit port on PostgreSQL.
type AccessLogRepo struct {
	q Querier
}

// NewAccessLogRepository builds the audit persistence adapter.
func NewAccessLogRepository(q Querier) *AccessLogRepo {
	return &AccessLogRepo{q: q}
}

// Insert appends one audited request.
func (r *AccessLogRepo) Insert(ctx context.Context, l *entity.AccessLog) error {
	query := `
		INSERT INTO access_logs (id, user_id, company_id, request_id, method,
			path, status_code, ip_address, user_agent, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.UserID, l.CompanyID, l.RequestID, l.Method,
		l.Path, l.StatusCode, l.IPAddress, l.UserAgent, l.DurationMS, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert access log: %w", err)
	}
	return nil
}
