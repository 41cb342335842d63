package repository

import (
	"context"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// UserRepository is the persistence port for login credentials.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// ProfileFilter narrows profile listings.
type ProfileFilter struct {
	MemberStatus entity.MemberStatus // "" = any
	Role         entity.Role         // "" = any
}

// UserProfileRepository is the persistence port for tenant memberships.
type UserProfileRepository interface {
	Create(ctx context.Context, p *entity.UserProfile) error
	Update(ctx context.Context, p *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	// GetByUserID returns the single profile of a user (one per user).
	GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error)
	GetByUserEmail(ctx context.Context, scope tenant.Scope, email string) (*entity.UserProfile, error)
	List(ctx context.Context, scope tenant.Scope, f ProfileFilter, limit, offset int) ([]*entity.UserProfile, error)
	// SetMemberStatus flips the membership state (approval side effect).
	SetMemberStatus(ctx context.Context, profileID string, status entity.MemberStatus) error
}
