package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/orderdesk/orderdesk-api/internal/application/dto"
	"github.com/orderdesk/orderdesk-api/internal/application/importer"
	"github.com/orderdesk/orderdesk-api/internal/application/policy"
)

// ImportHandler handles the CSV bulk loaders (protected). Files arrive as
// multipart uploads under the "file" field.
type ImportHandler struct {
	im *importer.Importer
}

// NewImportHandler builds the handler.
func NewImportHandler(im *importer.Importer) *ImportHandler {
	return &ImportHandler{im: im}
}

func (h *ImportHandler) openUpload(c *fiber.Ctx) (multipart.File, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	return fh.Open()
}

type importFunc func(p policy.Principal, companyID string, r io.Reader) (any, error)

func (h *ImportHandler) run(c *fiber.Ctx, fn importFunc) error {
	f, err := h.openUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: `multipart field "file" required`})
	}
	defer f.Close()

	out, err := fn(GetPrincipal(c), c.Params("id"), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Customers godoc
// @Summary      Import centers from CSV
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Company ID"
// @Param        file  formData  file    true  "CSV file"
// @Success      200  {object}  dto.ImportResult
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/imports/customers [post]
func (h *ImportHandler) Customers(c *fiber.Ctx) error {
	return h.run(c, func(p policy.Principal, companyID string, r io.Reader) (any, error) {
		return h.im.ImportCustomers(c.UserContext(), p, companyID, r)
	})
}

// Items godoc
// @Summary      Import catalog items from CSV
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Company ID"
// @Param        file  formData  file    true  "CSV file"
// @Success      200  {object}  dto.ImportResult
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/imports/items [post]
func (h *ImportHandler) Items(c *fiber.Ctx) error {
	return h.run(c, func(p policy.Principal, companyID string, r io.Reader) (any, error) {
		return h.im.ImportItems(c.UserContext(), p, companyID, r)
	})
}

// Assignments godoc
// @Summary      Import center approver and member assignments from CSV
// @Tags         imports
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Company ID"
// @Param        file  formData  file    true  "CSV file"
// @Success      200  {object}  dto.AssignmentImportResult
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/imports/assignments [post]
func (h *ImportHandler) Assignments(c *fiber.Ctx) error {
	return h.run(c, func(p policy.Principal, companyID string, r io.Reader) (any, error) {
		return h.im.ImportAssignments(c.UserContext(), p, companyID, r)
	})
}
