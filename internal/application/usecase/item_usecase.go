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

// ItemUseCase administers the per-company catalog, including the visibility
// grants that let other companies view (not order) an item.
type ItemUseCase struct {
	items         repository.ItemRepository
	companies     repository.CompanyRepository
	manufacturers repository.ManufacturerRepository
	pol           policy.ItemPolicy
}

// NewItemUseCase builds the item use case.
func NewItemUseCase(
	items repository.ItemRepository,
	companies repository.CompanyRepository,
	manufacturers repository.ManufacturerRepository,
) *ItemUseCase {
	return &ItemUseCase{items: items, companies: companies, manufacturers: manufacturers}
}

// List returns the catalog visible to the caller, including items granted to
// the caller's company by other companies.
func (uc *ItemUseCase) List(ctx context.Context, p policy.Principal, f repository.ItemFilter, page dto.PageRequest) ([]dto.ItemResponse, error) {
	if !uc.pol.CanIndex(p) {
		return nil, domain.ErrForbidden
	}
	page.DefaultPage()
	items, err := uc.items.List(ctx, uc.pol.Scope(p), f, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, toItemResponse(i))
	}
	return out, nil
}

// Get returns one item if owned by or granted to the caller's company.
func (uc *ItemUseCase) Get(ctx context.Context, p policy.Principal, id string) (*dto.ItemResponse, error) {
	i, err := uc.items.GetByID(ctx, uc.pol.Scope(p), id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrNotFound
	}
	visible := false
	if p.CompanyID != nil && i.CompanyID != *p.CompanyID {
		visible, err = uc.items.VisibleToCompany(ctx, i.ID, *p.CompanyID)
		if err != nil {
			return nil, err
		}
	}
	if !uc.pol.CanShow(p, i, visible) {
		return nil, domain.ErrNotFound
	}
	resp := toItemResponse(i)
	return &resp, nil
}

// Create registers a catalog item.
func (uc *ItemUseCase) Create(ctx context.Context, p policy.Principal, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if !uc.pol.CanCreate(p) {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	i := &entity.Item{
		ID:             uuid.New().String(),
		CompanyID:      in.CompanyID,
		ManufacturerID: in.ManufacturerID,
		ItemCode:       strings.TrimSpace(in.ItemCode),
		Name:           strings.TrimSpace(in.Name),
		UnitPrice:      in.UnitPrice,
		CostPrice:      in.CostPrice,
		ShippingCost:   in.ShippingCost,
		CO2PerUnit:     in.CO2PerUnit,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.validate(ctx, i); err != nil {
		return nil, err
	}
	if err := uc.items.Create(ctx, i); err != nil {
		return nil, err
	}
	resp := toItemResponse(i)
	return &resp, nil
}

// Update mutates an item; nil request fields are left untouched. Price
// changes never touch snapshots on existing order lines.
func (uc *ItemUseCase) Update(ctx context.Context, p policy.Principal, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if !uc.pol.CanUpdate(p) {
		return nil, domain.ErrForbidden
	}
	i, err := uc.items.GetByID(ctx, uc.pol.Scope(p), id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		i.Name = strings.TrimSpace(*in.Name)
	}
	if in.ManufacturerID != nil {
		if *in.ManufacturerID == "" {
			i.ManufacturerID = nil
		} else {
			i.ManufacturerID = in.ManufacturerID
		}
	}
	if in.UnitPrice != nil {
		i.UnitPrice = *in.UnitPrice
	}
	if in.CostPrice != nil {
		i.CostPrice = *in.CostPrice
	}
	if in.ShippingCost != nil {
		i.ShippingCost = *in.ShippingCost
	}
	if in.CO2PerUnit != nil {
		i.CO2PerUnit = *in.CO2PerUnit
	}
	if in.IsActive != nil {
		i.IsActive = *in.IsActive
	}
	i.UpdatedAt = time.Now()
	if err := uc.validate(ctx, i); err != nil {
		return nil, err
	}
	if err := uc.items.Update(ctx, i); err != nil {
		return nil, err
	}
	resp := toItemResponse(i)
	return &resp, nil
}

// Deactivate soft-deletes an item. Snapshots on past order lines survive.
func (uc *ItemUseCase) Deactivate(ctx context.Context, p policy.Principal, id string) error {
	if !uc.pol.CanDestroy(p) {
		return domain.ErrForbidden
	}
	i, err := uc.items.GetByID(ctx, uc.pol.Scope(p), id)
	if err != nil {
		return err
	}
	if i == nil {
		return domain.ErrNotFound
	}
	return uc.items.SetActive(ctx, id, false)
}

// GrantVisibility lets another company view the item.
func (uc *ItemUseCase) GrantVisibility(ctx context.Context, p policy.Principal, itemID, companyID string) error {
	if !uc.pol.CanUpdate(p) {
		return domain.ErrForbidden
	}
	i, err := uc.items.GetByID(ctx, uc.pol.Scope(p), itemID)
	if err != nil {
		return err
	}
	if i == nil {
		return domain.ErrNotFound
	}
	var ve domain.ValidationError
	if companyID == i.CompanyID {
		ve.Add("company_id", "already owns the item")
		return ve.ErrOrNil()
	}
	target, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if target == nil {
		ve.Add("company_id", "must exist")
		return ve.ErrOrNil()
	}
	return uc.items.GrantVisibility(ctx, itemID, companyID)
}

// RevokeVisibility removes a company's view of the item.
func (uc *ItemUseCase) RevokeVisibility(ctx context.Context, p policy.Principal, itemID, companyID string) error {
	if !uc.pol.CanUpdate(p) {
		return domain.ErrForbidden
	}
	i, err := uc.items.GetByID(ctx, uc.pol.Scope(p), itemID)
	if err != nil {
		return err
	}
	if i == nil {
		return domain.ErrNotFound
	}
	return uc.items.RevokeVisibility(ctx, itemID, companyID)
}

// validate runs the field checks plus the manufacturer reference.
func (uc *ItemUseCase) validate(ctx context.Context, i *entity.Item) error {
	if err := i.Validate(); err != nil {
		return err
	}
	if i.ManufacturerID != nil {
		m, err := uc.manufacturers.GetByID(ctx, *i.ManufacturerID)
		if err != nil {
			return err
		}
		if m == nil {
			var ve domain.ValidationError
			ve.Add("manufacturer_id", "must exist")
			return ve.ErrOrNil()
		}
	}
	return nil
}

func toItemResponse(i *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:             i.ID,
		CompanyID:      i.CompanyID,
		ManufacturerID: i.ManufacturerID,
		ItemCode:       i.ItemCode,
		Name:           i.Name,
		UnitPrice:      i.UnitPrice,
		CostPrice:      i.CostPrice,
		ShippingCost:   i.ShippingCost,
		CO2PerUnit:     i.CO2PerUnit,
		IsActive:       i.IsActive,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}
