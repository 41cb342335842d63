// Package usecase holds the administrative CRUD flows for the master data:
// companies, manufacturers, centers, catalog items and member profiles.
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
)

// CompanyUseCase administers tenants. Mutations are platform-operator work.
type CompanyUseCase struct {
	companies repository.CompanyRepository
	pol       policy.CompanyPolicy
}

// NewCompanyUseCase builds the company use case.
func NewCompanyUseCase(companies repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{companies: companies}
}

// List returns the tenants visible to the caller.
func (uc *CompanyUseCase) List(ctx context.Context, p policy.Principal, page dto.PageRequest) ([]dto.CompanyResponse, error) {
	if !p.Active() {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	companies, err := uc.companies.List(ctx, uc.pol.Scope(p), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

// Get returns one tenant; a tenant outside the caller's scope reads as absent.
func (uc *CompanyUseCase) Get(ctx context.Context, p policy.Principal, id string) (*dto.CompanyResponse, error) {
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !uc.pol.CanShow(p, c) {
		return nil, domain.ErrNotFound
	}
	resp := toCompanyResponse(c)
	return &resp, nil
}

// Create registers a tenant.
func (uc *CompanyUseCase) Create(ctx context.Context, p policy.Principal, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if !uc.pol.CanCreate(p) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	c := &entity.Company{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Code:         strings.TrimSpace(in.Code),
		Domains:      normalizeDomains(in.Domains),
		OrderPrefix:  strings.ToUpper(strings.TrimSpace(in.OrderPrefix)),
		PostalCode:   in.PostalCode,
		Prefecture:   in.Prefecture,
		City:         in.City,
		Address1:     in.Address1,
		Address2:     in.Address2,
		PaymentTerms: in.PaymentTerms,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := uc.companies.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := toCompanyResponse(c)
	return &resp, nil
}

// Update mutates a tenant; nil request fields are left untouched.
func (uc *CompanyUseCase) Update(ctx context.Context, p policy.Principal, id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if !uc.pol.CanUpdate(p) {
		return nil, domain.ErrForbidden
	}
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Domains != nil {
		c.Domains = normalizeDomains(*in.Domains)
	}
	if in.OrderPrefix != nil {
		c.OrderPrefix = strings.ToUpper(strings.TrimSpace(*in.OrderPrefix))
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
	if in.PaymentTerms != nil {
		c.PaymentTerms = *in.PaymentTerms
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	c.UpdatedAt = time.Now()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := uc.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := toCompanyResponse(c)
	return &resp, nil
}

// Deactivate soft-deletes a tenant. Existing orders stay readable.
func (uc *CompanyUseCase) Deactivate(ctx context.Context, p policy.Principal, id string) error {
	if !uc.pol.CanDestroy(p) {
		return domain.ErrForbidden
	}
	c, err := uc.companies.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.companies.SetActive(ctx, id, false)
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}

func toCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		Domains:      c.Domains,
		OrderPrefix:  c.OrderPrefix,
		PostalCode:   c.PostalCode,
		Prefecture:   c.Prefecture,
		City:         c.City,
		Address1:     c.Address1,
		Address2:     c.Address2,
		PaymentTerms: c.PaymentTerms,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
