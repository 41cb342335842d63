package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/usecase"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// ProfileHandler handles user profiles and memberships (protected).
type ProfileHandler struct {
	uc *usecase.ProfileUseCase
}

// NewProfileHandler builds the handler.
func NewProfileHandler(uc *usecase.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Me godoc
// @Summary      Get the caller's own profile
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ProfileResponse
// @Router       /api/profiles/me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List profiles visible to the caller
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Param        member_status  query  string  false  "pending | active | rejected"
// @Param        role           query  string  false  "Role filter"
// @Param        limit          query  int     false  "Limit"   default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ProfileResponse
// @Router       /api/profiles [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	f := repository.ProfileFilter{
		MemberStatus: entity.MemberStatus(c.Query("member_status")),
		Role:         entity.Role(c.Query("role")),
	}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), f, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a profile
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Profile ID"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{id} [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a profile
// @Tags         profiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Profile ID"
// @Param        body  body  dto.UpdateProfileRequest  true  "Fields to update"
// @Success      200  {object}  dto.ProfileResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/profiles/{id} [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
