package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/orderdesk/orderdesk-api/internal/application/auth"
	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// ProfileUseCase administers tenant memberships: role changes, supervisor
// assignment and billing-center binding.
type ProfileUseCase struct {
	profiles  repository.UserProfileRepository
	customers repository.CustomerRepository
	pol       policy.UserProfilePolicy
}

// NewProfileUseCase builds the profile use case.
func NewProfileUseCase(profiles repository.UserProfileRepository, customers repository.CustomerRepository) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles, customers: customers}
}

// Me returns the caller's own profile.
func (uc *ProfileUseCase) Me(ctx context.Context, p policy.Principal) (*dto.ProfileResponse, error) {
	profile, err := uc.profiles.GetByID(ctx, p.ProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	resp := auth.ToProfileResponse(profile)
	return &resp, nil
}

// List returns the members an admin may administer.
func (uc *ProfileUseCase) List(ctx context.Context, p policy.Principal, f repository.ProfileFilter, page dto.PageRequest) ([]dto.ProfileResponse, error) {
	if !uc.pol.CanIndex(p) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	profiles, err := uc.profiles.List(ctx, uc.pol.Scope(p), f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, auth.ToProfileResponse(profile))
	}
	return out, nil
}

// Get returns one member profile.
func (uc *ProfileUseCase) Get(ctx context.Context, p policy.Principal, id string) (*dto.ProfileResponse, error) {
	profile, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil || !uc.pol.CanShow(p, profile) {
		return nil, domain.ErrNotFound
	}
	resp := auth.ToProfileResponse(profile)
	return &resp, nil
}

// Update mutates an administrable profile. Role changes are bounded: a
// company admin can never mint an internal admin.
func (uc *ProfileUseCase) Update(ctx context.Context, p policy.Principal, id string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := uc.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil || !uc.pol.CanShow(p, profile) {
		return nil, domain.ErrNotFound
	}
	selfEdit := p.ProfileID == id
	adminEdit := uc.pol.CanUpdate(p, profile)
	if !selfEdit && !adminEdit {
		return nil, domain.ErrForbidden
	}

	if in.Name != nil {
		profile.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		profile.Phone = *in.Phone
	}
	if in.Role != nil {
		if !adminEdit {
			return nil, domain.ErrForbidden
		}
		role := entity.Role(*in.Role)
		if !role.Valid() {
			var ve domain.ValidationError
			ve.Add("role", "is not a valid role")
			return nil, ve.ErrOrNil()
		}
		if role == entity.RoleInternalAdmin && !p.InternalAdmin() {
			return nil, domain.ErrForbidden
		}
		profile.Role = role
	}
	if in.SupervisorID != nil {
		if !adminEdit {
			return nil, domain.ErrForbidden
		}
		if *in.SupervisorID == "" {
			profile.SupervisorID = nil
		} else {
			profile.SupervisorID = in.SupervisorID
		}
	}
	if in.BillingCenterID != nil {
		if !adminEdit {
			return nil, domain.ErrForbidden
		}
		if *in.BillingCenterID == "" {
			profile.BillingCenterID = nil
		} else {
			profile.BillingCenterID = in.BillingCenterID
		}
	}
	profile.UpdatedAt = time.Now()

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if profile.SupervisorID != nil {
		supervisor, err := uc.profiles.GetByID(ctx, *profile.SupervisorID)
		if err != nil {
			return nil, err
		}
		if err := profile.ValidateSupervisor(supervisor); err != nil {
			return nil, err
		}
	}
	if profile.BillingCenterID != nil && profile.CompanyID != nil {
		center, err := uc.customers.GetByID(ctx, tenant.ScopeCompany(*profile.CompanyID), *profile.BillingCenterID)
		if err != nil {
			return nil, err
		}
		var ve domain.ValidationError
		if center == nil {
			ve.Add("billing_center_id", "must exist")
		} else if !center.IsBillingCenter {
			ve.Add("billing_center_id", "must be a billing center")
		}
		if err := ve.ErrOrNil(); err != nil {
			return nil, err
		}
	}

	if err := uc.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	resp := auth.ToProfileResponse(profile)
	return &resp, nil
}
