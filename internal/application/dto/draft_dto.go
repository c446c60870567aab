package dto

import (
	"github.com/jhoicas/Facturador-api/internal/domain/draft"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// SetFieldRequest edición de un campo de nivel superior del borrador.
type SetFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// SetItemFieldRequest edición de un campo de una línea (ubicada por id en la URL).
type SetItemFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// TouchRequest marca un campo como interactuado. Claves: nombre del campo
// para nivel superior, "items.<id>.<campo>" para campos de línea.
type TouchRequest struct {
	Key string `json:"key"`
}

// ValidationResponse resultado de validación serializable. ItemsErrors
// conserva el orden de las líneas; una línea limpia queda en null.
type ValidationResponse struct {
	FieldErrors map[string]string   `json:"fieldErrors"`
	ItemsErrors []map[string]string `json:"itemsErrors"`
	IsValid     bool                `json:"isValid"`
}

// TotalsResponse montos formateados a dos decimales para la vista.
type TotalsResponse struct {
	Subtotal       string `json:"subtotal"`
	TaxAmount      string `json:"taxAmount"`
	DiscountAmount string `json:"discountAmount"`
	Total          string `json:"total"`
}

// DraftSnapshotResponse estado completo para pintar el editor: el borrador,
// la validación total, la validación visible (filtrada por campos tocados)
// y los totales.
type DraftSnapshotResponse struct {
	Invoice    *entity.InvoiceDraft `json:"invoice"`
	Validation ValidationResponse   `json:"validation"`
	Visible    ValidationResponse   `json:"visible"`
	Totals     TotalsResponse       `json:"totals"`
}

// NewValidationResponse convierte el resultado de dominio a su forma JSON.
func NewValidationResponse(res draft.Result) ValidationResponse {
	items := make([]map[string]string, len(res.ItemsErrors))
	for i, e := range res.ItemsErrors {
		if e != nil {
			items[i] = map[string]string(e)
		}
	}
	return ValidationResponse{
		FieldErrors: res.FieldErrors,
		ItemsErrors: items,
		IsValid:     res.IsValid,
	}
}

// NewTotalsResponse formatea los totales con exactamente dos decimales.
func NewTotalsResponse(t draft.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:       t.Subtotal.StringFixed(2),
		TaxAmount:      t.TaxAmount.StringFixed(2),
		DiscountAmount: t.DiscountAmount.StringFixed(2),
		Total:          t.Total.StringFixed(2),
	}
}
