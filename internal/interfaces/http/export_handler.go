package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/application/export"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/draft"
)

// ExportHandler maneja la vista previa y la exportación a PDF.
type ExportHandler struct {
	uc *export.UseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.UseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Preview recibe el borrador como estado transitorio de navegación y devuelve
// los números que pintará el documento. Con autoDownload activo además lanza
// la exportación.
// POST /api/preview
func (h *ExportHandler) Preview(c *fiber.Ctx) error {
	var in dto.PreviewRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Invoice == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_INVOICE", Message: "Please create an invoice first before previewing."})
	}

	totals := draft.ComputeTotals(in.Invoice.Items, in.Invoice.Tax, in.Invoice.Discount)
	out := dto.PreviewResponse{
		Invoice: in.Invoice,
		Totals:  dto.NewTotalsResponse(totals),
	}

	if in.AutoDownload {
		job, err := h.uc.Start(c.Context(), in.Invoice)
		if err != nil {
			return exportError(c, err)
		}
		out.JobID = job.JobID
	}
	return c.JSON(out)
}

// Start lanza una exportación a PDF del borrador recibido.
// POST /api/exports
func (h *ExportHandler) Start(c *fiber.Ctx) error {
	var in dto.ExportRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	job, err := h.uc.Start(c.Context(), in.Invoice)
	if err != nil {
		return exportError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(job)
}

// Status consulta el estado de una exportación.
// GET /api/exports/:id
func (h *ExportHandler) Status(c *fiber.Ctx) error {
	job, err := h.uc.Status(c.Params("id"))
	if err != nil {
		return exportError(c, err)
	}
	return c.JSON(job)
}

// Download descarga el PDF de una exportación terminada.
// GET /api/exports/:id/pdf
func (h *ExportHandler) Download(c *fiber.Ctx) error {
	pdf, filename, err := h.uc.Result(c.Params("id"))
	if err != nil {
		return exportError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdf)
}

// exportError traduce errores del caso de uso de exportación a HTTP.
func exportError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDraftMissing):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_INVOICE", Message: "Please create an invoice first before previewing."})
	case errors.Is(err, domain.ErrDraftInvalid):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "DRAFT_INVALID", Message: "Complete required fields before downloading."})
	case errors.Is(err, domain.ErrExportPending):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EXPORT_PENDING", Message: "la exportación aún no termina"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "exportación no encontrada"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
