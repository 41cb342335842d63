package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/usecase"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// ItemHandler handles the item catalog (protected).
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler builds the handler.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// List godoc
// @Summary      List catalog items visible to the caller
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        active_only  query  bool    false  "Only active items"
// @Param        code         query  string  false  "Exact item code"
// @Param        limit        query  int     false  "Limit"   default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	f := repository.ItemFilter{
		ActiveOnly: c.QueryBool("active_only"),
		Code:       c.Query("code"),
	}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), f, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a catalog item
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Item ID"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Register a catalog item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Item data"
// @Success      201  {object}  dto.ItemResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Update a catalog item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.UpdateItemRequest  true  "Fields to update"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Deactivate a catalog item
// @Tags         items
// @Security     Bearer
// @Param        id  path  string  true  "Item ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GrantVisibility godoc
// @Summary      Let another company view this item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "Item ID"
// @Param        body  body  dto.VisibilityRequest  true  "Target company"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/visibility [post]
func (h *ItemHandler) GrantVisibility(c *fiber.Ctx) error {
	var in dto.VisibilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.GrantVisibility(c.UserContext(), GetPrincipal(c), c.Params("id"), in.CompanyID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RevokeVisibility godoc
// @Summary      Revoke another company's view of this item
// @Tags         items
// @Security     Bearer
// @Param        id          path  string  true  "Item ID"
// @Param        company_id  path  string  true  "Company ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id}/visibility/{company_id} [delete]
func (h *ItemHandler) RevokeVisibility(c *fiber.Ctx) error {
	if err := h.uc.RevokeVisibility(c.UserContext(), GetPrincipal(c), c.Params("id"), c.Params("company_id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
