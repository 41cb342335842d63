package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	"github.com/orderdesk/orderdesk-api/internal/domain/tenant"
)

// CustomerUseCase administers the center directory of each company.
type CustomerUseCase struct {
	customers repository.CustomerRepository
	profiles  repository.UserProfileRepository
	pol       policy.CustomerPolicy
}

// NewCustomerUseCase builds the customer use case.
func NewCustomerUseCase(customers repository.CustomerRepository, profiles repository.UserProfileRepository) *CustomerUseCase {
	return &CustomerUseCase{customers: customers, profiles: profiles}
}

// List returns the centers visible to the caller.
func (uc *CustomerUseCase) List(ctx context.Context, p policy.Principal, f repository.CustomerFilter, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	if !uc.pol.CanIndex(p) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	customers, err := uc.customers.List(ctx, uc.pol.Scope(p), f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Get returns one center; outside the caller's scope it reads as absent.
func (uc *CustomerUseCase) Get(ctx context.Context, p policy.Principal, id string) (*dto.CustomerResponse, error) {
	c, err := uc.customers.GetByID(ctx, uc.pol.Scope(p), id)
	if err != nil {
		return nil, err
	}
	if c == nil || !uc.pol.CanShow(p, c) {
		return nil, domain.ErrNotFound
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// ListReceivingCenters returns the active receiving centers billed through
// the given billing center.
func (uc *CustomerUseCase) ListReceivingCenters(ctx context.Context, p policy.Principal, billingCenterID string) ([]dto.CustomerResponse, error) {
	billing, err := uc.customers.GetByID(ctx, uc.pol.Scope(p), billingCenterID)
	if err != nil {
		return nil, err
	}
	if billing == nil || !uc.pol.CanShow(p, billing) {
		return nil, domain.ErrNotFound
	}
	centers, err := uc.customers.ListReceivingCenters(ctx, billing.CompanyID, billing.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(centers))
	for _, c := range centers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Create registers a center for a company.
func (uc *CustomerUseCase) Create(ctx context.Context, p policy.Principal, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if !uc.pol.CanCreate(p) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	c := &entity.Customer{
		ID:                    uuid.New().String(),
		CompanyID:             in.CompanyID,
		CenterCode:            strings.TrimSpace(in.CenterCode),
		CenterName:            strings.TrimSpace(in.CenterName),
		PostalCode:            in.PostalCode,
		Prefecture:            in.Prefecture,
		City:                  in.City,
		Address1:              in.Address1,
		Address2:              in.Address2,
		IsBillingCenter:       in.IsBillingCenter,
		BillingCenterID:       in.BillingCenterID,
		ApproverUserProfileID: in.ApproverUserProfileID,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := uc.customers.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Update mutates a center; nil request fields are left untouched.
func (uc *CustomerUseCase) Update(ctx context.Context, p policy.Principal, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	if !uc.pol.CanUpdate(p) {
		return nil, domain.ErrForbidden
	}
	c, err := uc.customers.GetByID(ctx, uc.pol.Scope(p), id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.CenterName != nil {
		c.CenterName = strings.TrimSpace(*in.CenterName)
	}
	if in.PostalCode != nil {
		c.PostalCode = *in.PostalCode
	}
	if in.Prefecture != nil {
		c.Prefecture = *in.Prefecture
	}
	if in.City != nil {
		c.City = *in.City
	}
	if in.Address1 != nil {
		c.Address1 = *in.Address1
	}
	if in.Address2 != nil {
		c.Address2 = *in.Address2
	}
	if in.BillingCenterID != nil {
		if *in.BillingCenterID == "" {
			c.BillingCenterID = nil
		} else {
			c.BillingCenterID = in.BillingCenterID
		}
	}
	if in.ApproverUserProfileID != nil {
		if *in.ApproverUserProfileID == "" {
			c.ApproverUserProfileID = nil
		} else {
			c.ApproverUserProfileID = in.ApproverUserProfileID
		}
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := uc.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := uc.customers.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCustomerResponse(c)
	return &resp, nil
}

// Deactivate soft-deletes a center.
func (uc *CustomerUseCase) Deactivate(ctx context.Context, p policy.Principal, id string) error {
	if !uc.pol.CanDestroy(p) {
		return domain.ErrForbidden
	}
	c, err := uc.customers.GetByID(ctx, uc.pol.Scope(p), id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.customers.SetActive(ctx, id, false)
}

// validate runs the field checks plus the relational rules that need the
// referenced rows: the billing-center reference and the approver profile.
func (uc *CustomerUseCase) validate(ctx context.Context, c *entity.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.BillingCenterID != nil {
		billing, err := uc.customers.GetByID(ctx, tenant.ScopeCompany(c.CompanyID), *c.BillingCenterID)
		if err != nil {
			return err
		}
		if err := c.ValidateBillingCenter(billing); err != nil {
			return err
		}
	}
	if c.ApproverUserProfileID != nil {
		approver, err := uc.profiles.GetByID(ctx, *c.ApproverUserProfileID)
		if err != nil {
			return err
		}
		var ve domain.ValidationError
		if approver == nil {
			ve.Add("approver_user_profile_id", "must exist")
		} else if approver.CompanyID == nil || *approver.CompanyID != c.CompanyID {
			ve.Add("approver_user_profile_id", "must belong to the same company")
		}
		if err := ve.ErrOrNil(); err != nil {
			return err
		}
	}
	return nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		ID:                    c.ID,
		CompanyID:             c.CompanyID,
		CenterCode:            c.CenterCode,
		CenterName:            c.CenterName,
		PostalCode:            c.PostalCode,
		Prefecture:            c.Prefecture,
		City:                  c.City,
		Address1:              c.Address1,
		Address2:              c.Address2,
		IsBillingCenter:       c.IsBillingCenter,
		BillingCenterID:       c.BillingCenterID,
		ApproverUserProfileID: c.ApproverUserProfileID,
		IsActive:              c.IsActive,
		CreatedAt:             c.CreatedAt,
		UpdatedAt:             c.UpdatedAt,
	}
}
