package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/usecase"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// CustomerHandler handles delivery/billing centers (protected).
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler builds the handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// List godoc
// @Summary      List centers
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        billing_only  query  bool    false  "Only billing centers"
// @Param        active_only   query  bool    false  "Only active centers"
// @Param        code          query  string  false  "Exact center code"
// @Param        limit         query  int     false  "Limit"   default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	f := repository.CustomerFilter{
		ActiveOnly: c.QueryBool("active_only"),
		Code:       c.Query("code"),
	}
	if c.Query("billing_only") != "" {
		billing := c.QueryBool("billing_only")
		f.IsBillingCenter = &billing
	}
	out, err := h.uc.List(c.UserContext(), GetPrincipal(c), f, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Get a center
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Center ID"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListReceivingCenters godoc
// @Summary      List the receiving centers billed through a billing center
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Billing center ID"
// @Success      200  {array}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/receiving-centers [get]
func (h *CustomerHandler) ListReceivingCenters(c *fiber.Ctx) error {
	out, err := h.uc.ListReceivingCenters(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Register a center
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "Center data"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
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
// @Summary      Update a center
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Center ID"
// @Param        body  body  dto.UpdateCustomerRequest  true  "Fields to update"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
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
// @Summary      Deactivate a center
// @Tags         customers
// @Security     Bearer
// @Param        id  path  string  true  "Center ID"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), GetPrincipal(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
