package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/usecase"
)

// IssuerHandler handles the platform issuer identity (internal admin).
type IssuerHandler struct {
	uc *usecase.IssuerSettingUseCase
}

// NewIssuerHandler builds the handler.
func NewIssuerHandler(uc *usecase.IssuerSettingUseCase) *IssuerHandler {
	return &IssuerHandler{uc: uc}
}

// Get godoc
// @Summary      Get the issuer identity
// @Tags         issuer-setting
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.IssuerSettingResponse
// @Router       /api/issuer-setting [get]
func (h *IssuerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetPrincipal(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update the issuer identity
// @Tags         issuer-setting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateIssuerSettingRequest  true  "Issuer identity"
// @Success      200  {object}  dto.IssuerSettingResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/issuer-setting [put]
func (h *IssuerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateIssuerSettingRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
