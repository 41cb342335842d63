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

// IssuerSettingUseCase administers the platform issuer identity printed on
// invoices and statements.
type IssuerSettingUseCase struct {
	issuer repository.IssuerSettingRepository
	pol    policy.IssuerSettingPolicy
}

// NewIssuerSettingUseCase builds the issuer setting use case.
func NewIssuerSettingUseCase(issuer repository.IssuerSettingRepository) *IssuerSettingUseCase {
	return &IssuerSettingUseCase{issuer: issuer}
}

// Get returns the issuer identity. An unconfigured platform reads as an
// empty, unconfigured response rather than an error.
func (uc *IssuerSettingUseCase) Get(ctx context.Context, p policy.Principal) (*dto.IssuerSettingResponse, error) {
	if !uc.pol.CanShow(p) {
		return nil, domain.ErrForbidden
	}
	s, err := uc.issuer.Get(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return &dto.IssuerSettingResponse{}, nil
	}
	resp := toIssuerResponse(s)
	return &resp, nil
}

// Update replaces the issuer identity, creating the row on first use.
func (uc *IssuerSettingUseCase) Update(ctx context.Context, p policy.Principal, in dto.UpdateIssuerSettingRequest) (*dto.IssuerSettingResponse, error) {
	if !uc.pol.CanUpdate(p) {
		return nil, domain.ErrForbidden
	}
	s, err := uc.issuer.Get(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if s == nil {
		s = &entity.IssuerSetting{ID: uuid.New().String(), CreatedAt: now}
	}
	s.Name = strings.TrimSpace(in.Name)
	s.PostalCode = in.PostalCode
	s.Prefecture = in.Prefecture
	s.City = in.City
	s.Address1 = in.Address1
	s.Address2 = in.Address2
	s.Phone = in.Phone
	s.Fax = in.Fax
	s.RegistrationNumber = in.RegistrationNumber
	s.BankAccount1 = in.BankAccount1
	s.BankAccount2 = in.BankAccount2
	s.UpdatedAt = now
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := uc.issuer.Upsert(ctx, s); err != nil {
		return nil, err
	}
	resp := toIssuerResponse(s)
	return &resp, nil
}

func toIssuerResponse(s *entity.IssuerSetting) dto.IssuerSettingResponse {
	return dto.IssuerSettingResponse{
		Name:               s.Name,
		PostalCode:         s.PostalCode,
		Prefecture:         s.Prefecture,
		City:               s.City,
		Address1:           s.Address1,
		Address2:           s.Address2,
		Phone:              s.Phone,
		Fax:                s.Fax,
		RegistrationNumber: s.RegistrationNumber,
		BankAccount1:       s.BankAccount1,
		BankAccount2:       s.BankAccount2,
		FullAddress:        s.FullAddress(),
		Configured:         s.Configured(),
		UpdatedAt:          s.UpdatedAt,
	}
}
