package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

var _ repository.IssuerSettingRepository = (*IssuerSettingRepo)(nil)

const issuerSettingColumns = `id, name, postal_code, prefecture, city,
	address1, address2, phone, fax, registration_number,
	bank_account_1, bank_account_2, created_at, updated_at`

// IssuerSettingRepo implements the issuer identity port on PostgreSQL. The
// table holds a single row.
type IssuerSettingRepo struct {
	q Querier
}

// NewIssuerSettingRepository builds the issuer persistence adapter.
func NewIssuerSettingRepository(q Querier) *IssuerSettingRepo {
	return &IssuerSettingRepo{q: q}
}

// Get returns nil, nil while no issuer has been configured.
func (r *IssuerSettingRepo) Get(ctx context.Context) (*entity.IssuerSetting, error) {
	query := `SELECT ` + issuerSettingColumns + ` FROM issuer_settings ORDER BY created_at LIMIT 1`
	var s entity.IssuerSetting
	err := r.q.QueryRow(ctx, query).Scan(
		&s.ID, &s.Name, &s.PostalCode, &s.Prefecture, &s.City,
		&s.Address1, &s.Address2, &s.Phone, &s.Fax, &s.RegistrationNumber,
		&s.BankAccount1, &s.BankAccount2, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get issuer setting: %w", err)
	}
	return &s, nil
}

// Upsert inserts the row on first configuration and updates it afterwards.
func (r *IssuerSettingRepo) Upsert(ctx context.Context, s *entity.IssuerSetting) error {
	query := `
		INSERT INTO issuer_settings (` + issuerSettingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, postal_code = EXCLUDED.postal_code,
			prefecture = EXCLUDED.prefecture, city = EXCLUDED.city,
			address1 = EXCLUDED.address1, address2 = EXCLUDED.address2,
			phone = EXCLUDED.phone, fax = EXCLUDED.fax,
			registration_number = EXCLUDED.registration_number,
			bank_account_1 = EXCLUDED.bank_account_1,
			bank_account_2 = EXCLUDED.bank_account_2,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.Name, s.PostalCode, s.Prefecture, s.City,
		s.Address1, s.Address2, s.Phone, s.Fax, s.RegistrationNumber,
		s.BankAccount1, s.BankAccount2, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert issuer setting: %w", err)
	}
	return nil
}
