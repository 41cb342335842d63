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

// ManufacturerUseCase administers the platform-level manufacturer masters.
type ManufacturerUseCase struct {
	manufacturers repository.ManufacturerRepository
	pol           policy.ManufacturerPolicy
}

// NewManufacturerUseCase builds the manufacturer use case.
func NewManufacturerUseCase(manufacturers repository.ManufacturerRepository) *ManufacturerUseCase {
	return &ManufacturerUseCase{manufacturers: manufacturers}
}

// List returns the manufacturer masters. They are platform-wide reference
// data, so every active member may read them.
func (uc *ManufacturerUseCase) List(ctx context.Context, p policy.Principal, page dto.PageRequest) ([]dto.ManufacturerResponse, error) {
	if !uc.pol.CanIndex(p) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	manufacturers, err := uc.manufacturers.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ManufacturerResponse, 0, len(manufacturers))
	for _, m := range manufacturers {
		out = append(out, toManufacturerResponse(m))
	}
	return out, nil
}

// Get returns one manufacturer.
func (uc *ManufacturerUseCase) Get(ctx context.Context, p policy.Principal, id string) (*dto.ManufacturerResponse, error) {
	m, err := uc.manufacturers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil || !uc.pol.CanShow(p, m) {
		return nil, domain.ErrNotFound
	}
	resp := toManufacturerResponse(m)
	return &resp, nil
}

// Create registers a manufacturer master.
func (uc *ManufacturerUseCase) Create(ctx context.Context, p policy.Principal, in dto.CreateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	if !uc.pol.CanCreate(p) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	m := &entity.Manufacturer{
		ID:           uuid.New().String(),
		Code:         strings.TrimSpace(in.Code),
		Name:         strings.TrimSpace(in.Name),
		Domains:      normalizeDomains(in.Domains),
		PaymentTerms: in.PaymentTerms,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := uc.manufacturers.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := toManufacturerResponse(m)
	return &resp, nil
}

// Update mutates a manufacturer; nil request fields are left untouched.
func (uc *ManufacturerUseCase) Update(ctx context.Context, p policy.Principal, id string, in dto.UpdateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	if !uc.pol.CanUpdate(p) {
		return nil, domain.ErrForbidden
	}
	m, err := uc.manufacturers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Domains != nil {
		m.Domains = normalizeDomains(*in.Domains)
	}
	if in.PaymentTerms != nil {
		m.PaymentTerms = *in.PaymentTerms
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedAt = time.Now()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := uc.manufacturers.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := toManufacturerResponse(m)
	return &resp, nil
}

func toManufacturerResponse(m *entity.Manufacturer) dto.ManufacturerResponse {
	return dto.ManufacturerResponse{
		ID:           m.ID,
		Code:         m.Code,
		Name:         m.Name,
		Domains:      m.Domains,
		PaymentTerms: m.PaymentTerms,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
