package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/orderdesk/orderdesk-api/internal/application/documents"
	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/domain/repository"
)

// DocumentHandler serves the generated PDFs: invoices and statements per
// billing center, shipping request sheets per manufacturer (protected).
type DocumentHandler struct {
	svc           *documents.Service
	manufacturers repository.ManufacturerRepository
}

// NewDocumentHandler builds the handler.
func NewDocumentHandler(svc *documents.Service, manufacturers repository.ManufacturerRepository) *DocumentHandler {
	return &DocumentHandler{svc: svc, manufacturers: manufacturers}
}

// period parses date_from/date_to, defaulting to the current calendar month.
func period(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now
	var err error
	if s := c.Query("date_from"); s != "" {
		if from, err = time.Parse("2006-01-02", s); err != nil {
			return from, to, fmt.Errorf("date_from: %w", err)
		}
	}
	if s := c.Query("date_to"); s != "" {
		if to, err = time.Parse("2006-01-02", s); err != nil {
			return from, to, fmt.Errorf("date_to: %w", err)
		}
	}
	return from, to, nil
}

func sendPDF(c *fiber.Ctx, name string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Send(data)
}

// Invoice godoc
// @Summary      Generate the invoice PDF for a billing center
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id         path   string  true   "Billing center ID"
// @Param        date_from  query  string  false  "Period start (YYYY-MM-DD, defaults to month start)"
// @Param        date_to    query  string  false  "Period end (YYYY-MM-DD, defaults to today)"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/invoice [get]
func (h *DocumentHandler) Invoice(c *fiber.Ctx) error {
	from, to, err := period(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: err.Error()})
	}
	data, err := h.svc.GenerateInvoice(c.UserContext(), GetPrincipal(c), c.Params("id"), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, "invoice.pdf", data)
}

// Statement godoc
// @Summary      Generate the statement PDF for a billing center
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        id         path   string  true   "Billing center ID"
// @Param        date_from  query  string  false  "Period start (YYYY-MM-DD, defaults to month start)"
// @Param        date_to    query  string  false  "Period end (YYYY-MM-DD, defaults to today)"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/statement [get]
func (h *DocumentHandler) Statement(c *fiber.Ctx) error {
	from, to, err := period(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: err.Error()})
	}
	data, err := h.svc.GenerateStatement(c.UserContext(), GetPrincipal(c), c.Params("id"), from, to)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, "statement.pdf", data)
}

// ShippingRequest godoc
// @Summary      Generate the shipping request PDF for a manufacturer
// @Tags         documents
// @Security     Bearer
// @Produce      application/pdf
// @Param        manufacturer_id  query  string  false  "Manufacturer ID (internal admin only; defaults to the caller's manufacturer)"
// @Param        date_from        query  string  false  "Period start (YYYY-MM-DD, defaults to month start)"
// @Param        date_to          query  string  false  "Period end (YYYY-MM-DD, defaults to today)"
// @Success      200  {string}  string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipment-requests/document [get]
func (h *DocumentHandler) ShippingRequest(c *fiber.Ctx) error {
	from, to, err := period(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: err.Error()})
	}
	p := GetPrincipal(c)

	manufacturerID := c.Query("manufacturer_id")
	if manufacturerID == "" && p.ManufacturerID != nil {
		manufacturerID = *p.ManufacturerID
	}
	if manufacturerID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_MANUFACTURER", Message: "manufacturer_id required"})
	}
	m, err := h.manufacturers.GetByID(c.UserContext(), manufacturerID)
	if err != nil {
		return writeError(c, err)
	}
	if m == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "manufacturer not found"})
	}

	data, err := h.svc.GenerateShippingRequest(c.UserContext(), p, m, from, to)
	if err != nil {
		return writeError(c, err)
	}
	return sendPDF(c, "shipping-request.pdf", data)
}
