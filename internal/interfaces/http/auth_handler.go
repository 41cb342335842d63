package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderdesk/orderdesk-api/internal/application/auth"
	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// AuthHandler handles registration and login (public).
type AuthHandler struct {
	uc       *auth.UseCase
	profiles repository.UserProfileRepository
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.UseCase, profiles repository.UserProfileRepository) *AuthHandler {
	return &AuthHandler{uc: uc, profiles: profiles}
}

// SignUp godoc
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "Registration data"
// @Success      201   {object}  dto.SignUpResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SignUp(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Authenticate a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), h.profiles, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
