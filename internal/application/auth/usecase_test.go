package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/orderdesk/orderdesk-api/internal/application/auth"
	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/domain"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	pkgjwt "github.com/orderdesk/orderdesk-api/pkg/jwt"
)

type fakeUsers struct {
	repository.UserRepository
	byEmail map[string]*entity.User
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}

func (f *fakeUsers) Create(_ context.Context, u *entity.User) error {
	f.byEmail[u.Email] = u
	return nil
}

type fakeProfiles struct {
	repository.UserProfileRepository
	byUserID map[string]*entity.UserProfile
}

func (f *fakeProfiles) GetByUserID(_ context.Context, userID string) (*entity.UserProfile, error) {
	return f.byUserID[userID], nil
}

func (f *fakeProfiles) Create(_ context.Context, p *entity.UserProfile) error {
	f.byUserID[p.UserID] = p
	return nil
}

type fakeApprovals struct {
	repository.ApprovalRequestRepository
	created []*entity.ApprovalRequest
}

func (f *fakeApprovals) Create(_ context.Context, r *entity.ApprovalRequest) error {
	f.created = append(f.created, r)
	return nil
}

type fakeCompanies struct {
	repository.CompanyRepository
	active []*entity.Company
}

func (f *fakeCompanies) ListActive(_ context.Context) ([]*entity.Company, error) {
	return f.active, nil
}

type fakeManufacturers struct {
	repository.ManufacturerRepository
	active []*entity.Manufacturer
}

func (f *fakeManufacturers) ListActive(_ context.Context) ([]*entity.Manufacturer, error) {
	return f.active, nil
}

type fakeTx struct {
	users     *fakeUsers
	profiles  *fakeProfiles
	approvals *fakeApprovals
}

func (t *fakeTx) RunSignup(ctx context.Context, fn func(
	repository.UserRepository,
	repository.UserProfileRepository,
	repository.ApprovalRequestRepository,
) error) error {
	return fn(t.users, t.profiles, t.approvals)
}

type fixture struct {
	uc        *auth.UseCase
	users     *fakeUsers
	profiles  *fakeProfiles
	approvals *fakeApprovals
}

func newFixture() *fixture {
	f := &fixture{
		users:     &fakeUsers{byEmail: map[string]*entity.User{}},
		profiles:  &fakeProfiles{byUserID: map[string]*entity.UserProfile{}},
		approvals: &fakeApprovals{},
	}
	companies := &fakeCompanies{active: []*entity.Company{{
		ID: "company-1", Name: "Acme Trading", Code: "ACME",
		Domains: []string{"acme.example"}, OrderPrefix: "ACM", IsActive: true,
	}}}
	manufacturers := &fakeManufacturers{active: []*entity.Manufacturer{{
		ID: "manufacturer-1", Code: "MFG-1", Name: "Chairs Inc",
		Domains: []string{"chairs.example"}, IsActive: true,
	}}}
	tx := &fakeTx{users: f.users, profiles: f.profiles, approvals: f.approvals}
	f.uc = auth.NewUseCase(tx, f.users, companies, manufacturers, auth.JWTConfig{
		Secret: "test-secret", ExpMinutes: 60, Issuer: "orderdesk",
	})
	return f
}

func TestSignUpCompanyDomainOpensApproval(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.SignUp(context.Background(), dto.SignUpRequest{
		Email: "Alice@ACME.example", Password: "secret123", Name: "Alice",
	})
	require.NoError(t, err)

	assert.True(t, resp.PendingApproval)
	assert.Equal(t, string(entity.MemberPending), resp.Profile.MemberStatus)
	require.NotNil(t, resp.Profile.CompanyID)
	assert.Equal(t, "company-1", *resp.Profile.CompanyID)
	assert.Equal(t, "alice@acme.example", resp.Profile.Email)

	require.Len(t, f.approvals.created, 1)
	assert.Equal(t, "company-1", f.approvals.created[0].CompanyID)
	assert.Equal(t, entity.ApprovalPending, f.approvals.created[0].Status)
}

func TestSignUpManufacturerDomainActivatesImmediately(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.SignUp(context.Background(), dto.SignUpRequest{
		Email: "bob@chairs.example", Password: "secret123", Name: "Bob",
	})
	require.NoError(t, err)

	assert.False(t, resp.PendingApproval)
	assert.Equal(t, string(entity.MemberActive), resp.Profile.MemberStatus)
	require.NotNil(t, resp.Profile.ManufacturerID)
	assert.Equal(t, "manufacturer-1", *resp.Profile.ManufacturerID)
	assert.Empty(t, f.approvals.created)
}

func TestSignUpUnknownDomainStaysUnassigned(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.SignUp(context.Background(), dto.SignUpRequest{
		Email: "carol@elsewhere.example", Password: "secret123", Name: "Carol",
	})
	require.NoError(t, err)

	assert.False(t, resp.PendingApproval)
	assert.Equal(t, string(entity.MemberUnassigned), resp.Profile.MemberStatus)
	assert.Nil(t, resp.Profile.CompanyID)
	assert.Nil(t, resp.Profile.ManufacturerID)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.uc.SignUp(ctx, dto.SignUpRequest{Email: "alice@acme.example", Password: "secret123"})
	require.NoError(t, err)

	_, err = f.uc.SignUp(ctx, dto.SignUpRequest{Email: "alice@acme.example", Password: "other456"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSignUpRequiresCredentials(t *testing.T) {
	f := newFixture()

	_, err := f.uc.SignUp(context.Background(), dto.SignUpRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.SignUp(context.Background(), dto.SignUpRequest{Email: "a@b.c", Password: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func seedActiveUser(t *testing.T, f *fixture, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	companyID := "company-1"
	f.users.byEmail[email] = &entity.User{ID: "user-1", Email: email, PasswordHash: string(hash)}
	f.profiles.byUserID["user-1"] = &entity.UserProfile{
		ID: "profile-1", UserID: "user-1", Name: "Alice",
		CompanyID: &companyID, Role: entity.RoleCompanyAdmin,
		MemberStatus: entity.MemberActive,
	}
}

func TestLoginIssuesToken(t *testing.T) {
	f := newFixture()
	seedActiveUser(t, f, "alice@acme.example", "secret123")

	resp, err := f.uc.Login(context.Background(), f.profiles, dto.LoginRequest{
		Email: "alice@acme.example", Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, companyID, role, err := pkgjwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "company-1", companyID)
	assert.Equal(t, "company_admin", role)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newFixture()
	seedActiveUser(t, f, "alice@acme.example", "secret123")

	_, err := f.uc.Login(context.Background(), f.profiles, dto.LoginRequest{
		Email: "alice@acme.example", Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Login(context.Background(), f.profiles, dto.LoginRequest{
		Email: "ghost@acme.example", Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLoginBlocksPendingMembership(t *testing.T) {
	f := newFixture()
	seedActiveUser(t, f, "alice@acme.example", "secret123")
	f.profiles.byUserID["user-1"].MemberStatus = entity.MemberPending

	_, err := f.uc.Login(context.Background(), f.profiles, dto.LoginRequest{
		Email: "alice@acme.example", Password: "secret123",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
