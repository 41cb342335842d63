package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/ordering"
)

// OrderHandler handles purchase orders and the manufacturer shipment view
// (protected).
type OrderHandler struct {
	svc *ordering.Service
}

// NewOrderHandler builds the handler.
func NewOrderHandler(svc *ordering.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create godoc
// @Summary      Place an order
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Order data"
// @Success      201  {object}  dto.OrderResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.CreateOrder(c.UserContext(), GetPrincipal(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List orders visible to the caller
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        order_no   query  string  false  "Order number substring"
// @Param        status     query  string  false  "Shipping status"
// @Param        date_from  query  string  false  "Order date from (YYYY-MM-DD)"
// @Param        date_to    query  string  false  "Order date to (YYYY-MM-DD)"
// @Param        mine       query  bool    false  "Only orders placed by the caller"
// @Param        limit      query  int     false  "Limit"   default(20)
// @Param        offset     query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.svc.List(c.UserContext(), GetPrincipal(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportCSV godoc
// @Summary      Export the order list as CSV
// @Tags         orders
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {string}  string
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/orders/export [get]
func (h *OrderHandler) ExportCSV(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	data, err := h.svc.ExportCSV(c.UserContext(), GetPrincipal(c), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	return c.Send(data)
}

// Get godoc
// @Summary      Get an order
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	out, err := h.svc.Get(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a draft order
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.UpdateOrderRequest  true  "Fields to update"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Update(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Ship godoc
// @Summary      Record shipment of a confirmed order
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.ShipOrderRequest  true  "Shipment data"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/ship [post]
func (h *OrderHandler) Ship(c *fiber.Ctx) error {
	var in dto.ShipOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Ship(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deliver godoc
// @Summary      Record delivery of a shipped order
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Order ID"
// @Param        body  body  dto.DeliverOrderRequest  true  "Delivery data"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/deliver [post]
func (h *OrderHandler) Deliver(c *fiber.Ctx) error {
	var in dto.DeliverOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Deliver(c.UserContext(), GetPrincipal(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancel an order that has not shipped
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Order ID"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.svc.Cancel(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListShipmentRequests godoc
// @Summary      List confirmed lines the caller's manufacturer must ship
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        date_from  query  string  false  "Order date from (YYYY-MM-DD)"
// @Param        date_to    query  string  false  "Order date to (YYYY-MM-DD)"
// @Success      200  {array}  dto.ShipmentRequestLine
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/shipment-requests [get]
func (h *OrderHandler) ListShipmentRequests(c *fiber.Ctx) error {
	var q dto.ShipmentRequestQuery
	if err := c.QueryParser(&q); err != nil {
		return badBody(c)
	}
	out, err := h.svc.ListShipmentRequests(c.UserContext(), GetPrincipal(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegisterShipment godoc
// @Summary      Record shipment of an order containing the manufacturer's items
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        order_id  path  string  true  "Order ID"
// @Param        body      body  dto.ShipOrderRequest  true  "Shipment data"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipment-requests/{order_id}/ship [post]
func (h *OrderHandler) RegisterShipment(c *fiber.Ctx) error {
	var in dto.ShipOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.RegisterShipment(c.UserContext(), GetPrincipal(c), c.Params("order_id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
