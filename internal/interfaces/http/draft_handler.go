package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/application/editor"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// DraftHandler maneja las peticiones HTTP del editor de borradores.
type DraftHandler struct {
	uc *editor.UseCase
}

// NewDraftHandler construye el handler.
func NewDraftHandler(uc *editor.UseCase) *DraftHandler {
	return &DraftHandler{uc: uc}
}

// Get devuelve el estado completo del editor.
// GET /api/draft
func (h *DraftHandler) Get(c *fiber.Ctx) error {
	return c.JSON(h.uc.Snapshot())
}

// Replace reemplaza el borrador completo.
// PUT /api/draft
func (h *DraftHandler) Replace(c *fiber.Ctx) error {
	var in entity.InvoiceDraft
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	snap, err := h.uc.Replace(c.Context(), &in)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(snap)
}

// SetField edita un campo de nivel superior.
// PATCH /api/draft/fields
func (h *DraftHandler) SetField(c *fiber.Ctx) error {
	var in dto.SetFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	snap, err := h.uc.SetField(c.Context(), in.Field, in.Value)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(snap)
}

// AddItem agrega una línea nueva.
// POST /api/draft/items
func (h *DraftHandler) AddItem(c *fiber.Ctx) error {
	return c.Status(fiber.StatusCreated).JSON(h.uc.AddItem(c.Context()))
}

// SetItemField edita un campo de una línea ubicada por id.
// PATCH /api/draft/items/:id
func (h *DraftHandler) SetItemField(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de línea inválido"})
	}
	var in dto.SetItemFieldRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	snap, err := h.uc.SetItemField(c.Context(), id, in.Field, in.Value)
	if err != nil {
		return draftError(c, err)
	}
	return c.JSON(snap)
}

// RemoveItem elimina una línea por id (id inexistente es no-op).
// DELETE /api/draft/items/:id
func (h *DraftHandler) RemoveItem(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de línea inválido"})
	}
	return c.JSON(h.uc.RemoveItem(c.Context(), id))
}

// New descarta el borrador actual y vuelve al borrador por defecto.
// POST /api/draft/new
func (h *DraftHandler) New(c *fiber.Ctx) error {
	return c.JSON(h.uc.NewInvoice(c.Context()))
}

// Touch marca un campo como interactuado.
// POST /api/draft/touch
func (h *DraftHandler) Touch(c *fiber.Ctx) error {
	var in dto.TouchRequest
	if err := c.BodyParser(&in); err != nil || in.Key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "clave de campo requerida"})
	}
	return c.JSON(h.uc.Touch(in.Key))
}

// draftError traduce errores de dominio del editor a HTTP.
func draftError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrDraftMissing):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_INVOICE", Message: "Please create an invoice first before previewing."})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
