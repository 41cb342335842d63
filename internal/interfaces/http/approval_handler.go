package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/orderdesk/orderdesk-api/internal/application/approval"
	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/domain/entity"
)

// ApprovalHandler handles membership and order approval queues (protected).
type ApprovalHandler struct {
	svc *approval.Service
}

// NewApprovalHandler builds the handler.
func NewApprovalHandler(svc *approval.Service) *ApprovalHandler {
	return &ApprovalHandler{svc: svc}
}

func statusQuery(c *fiber.Ctx) (entity.ApprovalStatus, bool) {
	s := entity.ApprovalStatus(c.Query("status"))
	if s != "" && !s.Valid() {
		return "", false
	}
	return s, true
}

// ListMemberships godoc
// @Summary      List membership approval requests
// @Tags         approvals
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ApprovalRequestResponse
// @Router       /api/approvals/memberships [get]
func (h *ApprovalHandler) ListMemberships(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	status, ok := statusQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "status must be pending, approved or rejected"})
	}
	out, err := h.svc.ListMemberships(c.UserContext(), GetPrincipal(c), status, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetMembership godoc
// @Summary      Get a membership approval request
// @Tags         approvals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Request ID"
// @Success      200  {object}  dto.ApprovalRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/approvals/memberships/{id} [get]
func (h *ApprovalHandler) GetMembership(c *fiber.Ctx) error {
	out, err := h.svc.GetMembership(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApproveMembership godoc
// @Summary      Approve a pending membership request
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Request ID"
// @Param        body  body  dto.DecisionRequest  false  "Review comment"
// @Success      200  {object}  dto.ApprovalRequestResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/approvals/memberships/{id}/approve [post]
func (h *ApprovalHandler) ApproveMembership(c *fiber.Ctx) error {
	return h.decideMembership(c, entity.ApprovalApproved)
}

// RejectMembership godoc
// @Summary      Reject a pending membership request
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Request ID"
// @Param        body  body  dto.DecisionRequest  false  "Review comment"
// @Success      200  {object}  dto.ApprovalRequestResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/approvals/memberships/{id}/reject [post]
func (h *ApprovalHandler) RejectMembership(c *fiber.Ctx) error {
	return h.decideMembership(c, entity.ApprovalRejected)
}

func (h *ApprovalHandler) decideMembership(c *fiber.Ctx, outcome entity.ApprovalStatus) error {
	var in dto.DecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.svc.DecideMembership(c.UserContext(), GetPrincipal(c), c.Params("id"), outcome, in.Comment)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListOrderApprovals godoc
// @Summary      List order approval requests
// @Tags         approvals
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.OrderApprovalRequestResponse
// @Router       /api/approvals/orders [get]
func (h *ApprovalHandler) ListOrderApprovals(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	status, ok := statusQuery(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_STATUS", Message: "status must be pending, approved or rejected"})
	}
	out, err := h.svc.ListOrderApprovals(c.UserContext(), GetPrincipal(c), status, page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetOrderApproval godoc
// @Summary      Get an order approval request
// @Tags         approvals
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Request ID"
// @Success      200  {object}  dto.OrderApprovalRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/approvals/orders/{id} [get]
func (h *ApprovalHandler) GetOrderApproval(c *fiber.Ctx) error {
	out, err := h.svc.GetOrderApproval(c.UserContext(), GetPrincipal(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ApproveOrder godoc
// @Summary      Approve a pending order request, confirming the order
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Request ID"
// @Param        body  body  dto.DecisionRequest  false  "Review comment"
// @Success      200  {object}  dto.OrderApprovalRequestResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/approvals/orders/{id}/approve [post]
func (h *ApprovalHandler) ApproveOrder(c *fiber.Ctx) error {
	return h.decideOrder(c, entity.ApprovalApproved)
}

// RejectOrder godoc
// @Summary      Reject a pending order request, leaving the order in draft
// @Tags         approvals
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Request ID"
// @Param        body  body  dto.DecisionRequest  false  "Review comment"
// @Success      200  {object}  dto.OrderApprovalRequestResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/approvals/orders/{id}/reject [post]
func (h *ApprovalHandler) RejectOrder(c *fiber.Ctx) error {
	return h.decideOrder(c, entity.ApprovalRejected)
}

func (h *ApprovalHandler) decideOrder(c *fiber.Ctx, outcome entity.ApprovalStatus) error {
	var in dto.DecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.svc.DecideOrder(c.UserContext(), GetPrincipal(c), c.Params("id"), outcome, in.Comment)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
