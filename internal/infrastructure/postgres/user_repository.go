package postgres

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

var _ repository.UserRepository = (*UserRepo)(nil)
var _ repository.UserProfileRepository = (*UserProfileRepo)(nil)

// UserRepo implements the credentials port on PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the user persistence adapter.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persists the login credentials.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID loads a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// GetByEmail loads a user by email (emails are stored lowercased).
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`
	var u entity.User
	err := r.q.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

const profileColumns = `id, user_id, company_id, manufacturer_id, supervisor_id,
	billing_center_id, name, phone, payment_terms, role, member_status,
	created_at, updated_at`

// UserProfileRepo implements the membership port on PostgreSQL.
type UserProfileRepo struct {
	q Querier
}

// NewUserProfileRepository builds the profile persistence adapter.
func NewUserProfileRepository(q Querier) *UserProfileRepo {
	return &UserProfileRepo{q: q}
}

func scanProfile(row interface{ Scan(dest ...any) error }) (*entity.UserProfile, error) {
	var p entity.UserProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyID, &p.ManufacturerID, &p.SupervisorID,
		&p.BillingCenterID, &p.Name, &p.Phone, &p.PaymentTerms, &p.Role,
		&p.MemberStatus, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persists a new profile.
func (r *UserProfileRepo) Create(ctx context.Context, p *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (` + profileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.CompanyID, p.ManufacturerID, p.SupervisorID,
		p.BillingCenterID, p.Name, p.Phone, p.PaymentTerms, p.Role,
		p.MemberStatus, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Update persists the mutable profile fields.
func (r *UserProfileRepo) Update(ctx context.Context, p *entity.UserProfile) error {
	query := `
		UPDATE user_profiles SET company_id = $2, manufacturer_id = $3,
			supervisor_id = $4, billing_center_id = $5, name = $6, phone = $7,
			payment_terms = $8, role = $9, member_status = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.ManufacturerID, p.SupervisorID, p.BillingCenterID,
		p.Name, p.Phone, p.PaymentTerms, p.Role, p.MemberStatus, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID loads a profile by id.
func (r *UserProfileRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE id = $1`
	p, err := scanProfile(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// GetByUserID loads the single profile of a user.
func (r *UserProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE user_id = $1`
	p, err := scanProfile(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by user: %w", err)
	}
	return p, nil
}

// GetByUserEmail resolves a profile by its user's email, narrowed by scope.
func (r *UserProfileRepo) GetByUserEmail(ctx context.Context, scope tenant.Scope, email string) (*entity.UserProfile, error) {
	if scope.None() {
		return nil, nil
	}
	query := `
		SELECT p.id, p.user_id, p.company_id, p.manufacturer_id, p.supervisor_id,
			p.billing_center_id, p.name, p.phone, p.payment_terms, p.role,
			p.member_status, p.created_at, p.updated_at
		FROM user_profiles p JOIN users u ON u.id = p.user_id
		WHERE u.email = $1`
	args := []any{email}
	if companyID, ok := scope.Company(); ok {
		query += ` AND p.company_id = $2`
		args = append(args, companyID)
	} else if manufacturerID, ok := scope.Manufacturer(); ok {
		query += ` AND p.manufacturer_id = $2`
		args = append(args, manufacturerID)
	}
	p, err := scanProfile(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile by email: %w", err)
	}
	return p, nil
}

// List returns profiles narrowed by scope and filter.
func (r *UserProfileRepo) List(ctx context.Context, scope tenant.Scope, f repository.ProfileFilter, limit, offset int) ([]*entity.UserProfile, error) {
	if scope.None() {
		return nil, nil
	}
	query := `SELECT ` + profileColumns + ` FROM user_profiles WHERE 1=1`
	args := []any{}
	if companyID, ok := scope.Company(); ok {
		args = append(args, companyID)
		query += fmt.Sprintf(` AND company_id = $%d`, len(args))
	} else if manufacturerID, ok := scope.Manufacturer(); ok {
		args = append(args, manufacturerID)
		query += fmt.Sprintf(` AND manufacturer_id = $%d`, len(args))
	}
	if f.MemberStatus != "" {
		args = append(args, f.MemberStatus)
		query += fmt.Sprintf(` AND member_status = $%d`, len(args))
	}
	if f.Role != "" {
		args = append(args, f.Role)
		query += fmt.Sprintf(` AND role = $%d`, len(args))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer rows.Close()

	var list []*entity.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SetMemberStatus flips the membership state (approval side effect).
func (r *UserProfileRepo) SetMemberStatus(ctx context.Context, profileID string, status entity.MemberStatus) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE user_profiles SET member_status = $2, updated_at = now() WHERE id = $1`,
		profileID, status)
	if err != nil {
		return fmt.Errorf("set member status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
