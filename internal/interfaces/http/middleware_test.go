package http

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
	pkgjwt "github.com/orderdesk/orderdesk-api/pkg/jwt"
)

const testSecret = "test-secret"

type stubProfiles struct {
	repository.UserProfileRepository
	byUserID map[string]*entity.UserProfile
}

func (s *stubProfiles) GetByUserID(_ context.Context, userID string) (*entity.UserProfile, error) {
	return s.byUserID[userID], nil
}

func authedApp(profiles repository.UserProfileRepository) *fiber.App {
	app := fiber.New()
	app.Use(AuthMiddleware(testSecret, profiles))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		return c.JSON(fiber.Map{"user_id": p.UserID, "role": string(p.Role)})
	})
	return app
}

func TestAuthMiddlewareLoadsPrincipal(t *testing.T) {
	companyID := "company-1"
	profiles := &stubProfiles{byUserID: map[string]*entity.UserProfile{
		"user-1": {
			ID: "profile-1", UserID: "user-1", CompanyID: &companyID,
			Role: entity.RoleCompanyAdmin, MemberStatus: entity.MemberActive,
		},
	}}
	app := authedApp(profiles)

	token, err := pkgjwt.Generate(testSecret, "user-1", companyID, "company_admin", "orderdesk", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	app := authedApp(&stubProfiles{byUserID: map[string]*entity.UserProfile{}})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	app := authedApp(&stubProfiles{byUserID: map[string]*entity.UserProfile{}})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Token abc")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsBadSignature(t *testing.T) {
	app := authedApp(&stubProfiles{byUserID: map[string]*entity.UserProfile{}})

	token, err := pkgjwt.Generate("other-secret", "user-1", "", "normal", "orderdesk", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsUnknownAccount(t *testing.T) {
	// A valid token whose profile was deleted loses access immediately.
	app := authedApp(&stubProfiles{byUserID: map[string]*entity.UserProfile{}})

	token, err := pkgjwt.Generate(testSecret, "user-gone", "", "normal", "orderdesk", 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
