package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	pkgjwt "github.com/orderdesk/orderdesk-api/pkg/jwt"
)

// JWTConfig configures token generation.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner runs the signup writes (user + profile + approval request) in
// one transaction.
type TxRunner interface {
	RunSignup(ctx context.Context, fn func(
		users repository.UserRepository,
		profiles repository.UserProfileRepository,
		approvals repository.ApprovalRequestRepository,
	) error) error
}

// UseCase implements registration and login. Tenant binding is derived from
// the signup email domain: a company match opens a pending membership with
// an approval request, a manufacturer match activates a manufacturer
// account, no match leaves the profile unassigned.
type UseCase struct {
	tx            TxRunner
	users         repository.UserRepository
	companies     repository.CompanyRepository
	manufacturers repository.ManufacturerRepository
	jwtCfg        JWTConfig
}

// NewUseCase builds the auth use case.
func NewUseCase(
	tx TxRunner,
	users repository.UserRepository,
	companies repository.CompanyRepository,
	manufacturers repository.ManufacturerRepository,
	jwtCfg JWTConfig,
) *UseCase {
	return &UseCase{tx: tx, users: users, companies: companies, manufacturers: manufacturers, jwtCfg: jwtCfg}
}

// SignUp registers a user and routes the membership by email domain.
func (uc *UseCase) SignUp(ctx context.Context, in dto.SignUpRequest) (*dto.SignUpResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.users.GetByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	company, err := uc.findCompanyByEmailDomain(ctx, email)
	if err != nil {
		return nil, err
	}
	var manufacturer *entity.Manufacturer
	if company == nil {
		manufacturer, err = uc.findManufacturerByEmailDomain(ctx, email)
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &entity.UserProfile{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		Name:         name,
		Phone:        in.Phone,
		Role:         entity.RoleNormal,
		MemberStatus: entity.MemberUnassigned,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	var request *entity.ApprovalRequest
	switch {
	case company != nil:
		profile.CompanyID = &company.ID
		profile.MemberStatus = entity.MemberPending
		request = &entity.ApprovalRequest{
			ID:            uuid.New().String(),
			CompanyID:     company.ID,
			UserProfileID: profile.ID,
			Status:        entity.ApprovalPending,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	case manufacturer != nil:
		// Manufacturer accounts skip the membership workflow.
		profile.ManufacturerID = &manufacturer.ID
		profile.MemberStatus = entity.MemberActive
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	err = uc.tx.RunSignup(ctx, func(
		users repository.UserRepository,
		profiles repository.UserProfileRepository,
		approvals repository.ApprovalRequestRepository,
	) error {
		if err := users.Create(ctx, user); err != nil {
			return err
		}
		if err := profiles.Create(ctx, profile); err != nil {
			return err
		}
		if request != nil {
			return approvals.Create(ctx, request)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(profile)
	resp.Email = user.Email
	return &dto.SignUpResponse{Profile: resp, PendingApproval: request != nil}, nil
}

// Login verifies credentials and issues a JWT. Pending and rejected
// memberships cannot log in.
func (uc *UseCase) Login(ctx context.Context, profiles repository.UserProfileRepository, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	profile, err := profiles.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUnauthorized
	}
	switch profile.MemberStatus {
	case entity.MemberPending, entity.MemberRejected:
		return nil, domain.ErrForbidden
	}
	companyID := profile.CompanyIDValue()
	token, err := pkgjwt.Generate(uc.jwtCfg.Secret, user.ID, companyID, string(profile.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	resp := ToProfileResponse(profile)
	resp.Email = user.Email
	return &dto.LoginResponse{Token: token, Profile: resp}, nil
}

func (uc *UseCase) findCompanyByEmailDomain(ctx context.Context, email string) (*entity.Company, error) {
	companies, err := uc.companies.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range companies {
		if c.MatchesEmailDomain(email) {
			return c, nil
		}
	}
	return nil, nil
}

func (uc *UseCase) findManufacturerByEmailDomain(ctx context.Context, email string) (*entity.Manufacturer, error) {
	manufacturers, err := uc.manufacturers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range manufacturers {
		if m.MatchesEmailDomain(email) {
			return m, nil
		}
	}
	return nil, nil
}

// ToProfileResponse maps a profile to its public view.
func ToProfileResponse(p *entity.UserProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		Name:           p.Name,
		Phone:          p.Phone,
		Role:           string(p.Role),
		MemberStatus:   string(p.MemberStatus),
		CompanyID:      p.CompanyID,
		ManufacturerID: p.ManufacturerID,
		SupervisorID:   p.SupervisorID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
