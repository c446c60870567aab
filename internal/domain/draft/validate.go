// Package draft contiene la lógica pura del borrador de factura: validación
// campo a campo y cálculo de totales. No tiene efectos secundarios; los
// errores de validación son datos, nunca excepciones.
package draft

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// Mensajes de validación. Son parte del contrato hacia la UI: un mensaje por
// regla, textos fijos.
const (
	MsgFormMissing           = "Invoice data is missing."
	MsgInvoiceNumberRequired = "Invoice number is required."
	MsgDateRequired          = "Invoice date is required."
	MsgDateBeforeToday       = "Invoice date cannot be earlier than today."
	MsgDueDateRequired       = "Due date is required."
	MsgDueDateBeforeToday    = "Due date cannot be earlier than today."
	MsgDueDateBeforeDate     = "Due date must be on or after the invoice date."
	MsgCompanyNameRequired   = "Company name is required."
	MsgCompanyAddrRequired   = "Company address is required."
	MsgClientNameRequired    = "Client name is required."
	MsgClientAddrRequired    = "Client address is required."
	MsgEmailInvalid          = "Valid email is required."
	MsgPhoneInvalid          = "Valid phone is required."
	MsgTaxOutOfRange         = "Tax must be between 0 and 100."
	MsgDiscountNegative      = "Discount cannot be negative."
	MsgItemDescRequired      = "Description is required."
	MsgItemQuantityInvalid   = "Quantity must be greater than 0."
	MsgItemRateInvalid       = "Rate must be 0 or greater."
)

var (
	// local@dominio.tld: segmentos sin espacios ni '@', un '@', un punto literal.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Dígitos, espacios y puntuación +()-. con mínimo 7 caracteres.
	phonePattern = regexp.MustCompile(`^[+()\-.\s\d]{7,}$`)
)

// ItemErrors errores de una línea, por campo (description, quantity, rate).
type ItemErrors map[string]string

// Result resultado estructurado de la validación del borrador.
// ItemsErrors conserva el orden de Items; la posición de una línea sin
// errores queda en nil.
type Result struct {
	FieldErrors map[string]string
	ItemsErrors []ItemErrors
	IsValid     bool
}

// Validate valida el borrador contra la fecha actual (ISO YYYY-MM-DD). Las
// fechas se comparan como cadenas ISO, sin componente horario. Un borrador
// nulo corta con un único error a nivel de formulario.
func Validate(d *entity.InvoiceDraft, today string) Result {
	if d == nil {
		return Result{
			FieldErrors: map[string]string{"form": MsgFormMissing},
			ItemsErrors: []ItemErrors{},
			IsValid:     false,
		}
	}

	fieldErrors := make(map[string]string)

	if isBlank(d.InvoiceNumber) {
		fieldErrors["invoiceNumber"] = MsgInvoiceNumberRequired
	}

	if isBlank(d.Date) {
		fieldErrors["date"] = MsgDateRequired
	} else if d.Date < today {
		fieldErrors["date"] = MsgDateBeforeToday
	}

	if isBlank(d.DueDate) {
		fieldErrors["dueDate"] = MsgDueDateRequired
	}
	// El chequeo "antes del día de hoy" se evalúa primero; el "antes de la
	// fecha de factura" va después y lo sobrescribe si ambos disparan.
	if d.DueDate != "" && d.DueDate < today {
		fieldErrors["dueDate"] = MsgDueDateBeforeToday
	}
	if d.Date != "" && d.DueDate != "" && d.DueDate < d.Date {
		fieldErrors["dueDate"] = MsgDueDateBeforeDate
	}

	if isBlank(d.CompanyName) {
		fieldErrors["companyName"] = MsgCompanyNameRequired
	}
	if !isValidEmail(d.CompanyEmail) {
		fieldErrors["companyEmail"] = MsgEmailInvalid
	}
	if !isValidPhone(d.CompanyPhone) {
		fieldErrors["companyPhone"] = MsgPhoneInvalid
	}
	if isBlank(d.CompanyAddress) {
		fieldErrors["companyAddress"] = MsgCompanyAddrRequired
	}

	if isBlank(d.ClientName) {
		fieldErrors["clientName"] = MsgClientNameRequired
	}
	if !isValidEmail(d.ClientEmail) {
		fieldErrors["clientEmail"] = MsgEmailInvalid
	}
	if !isValidPhone(d.ClientPhone) {
		fieldErrors["clientPhone"] = MsgPhoneInvalid
	}
	if isBlank(d.ClientAddress) {
		fieldErrors["clientAddress"] = MsgClientAddrRequired
	}

	// Tax y Discount son opcionales: en blanco pasa, presente debe ser un
	// número dentro de rango.
	if !isBlank(d.Tax) {
		if tax, ok := parseNumber(d.Tax); !ok || tax.IsNegative() || tax.GreaterThan(decimal.NewFromInt(100)) {
			fieldErrors["tax"] = MsgTaxOutOfRange
		}
	}
	if !isBlank(d.Discount) {
		if disc, ok := parseNumber(d.Discount); !ok || disc.IsNegative() {
			fieldErrors["discount"] = MsgDiscountNegative
		}
	}

	itemsErrors := make([]ItemErrors, 0, len(d.Items))
	hasItemErrors := false
	for _, it := range d.Items {
		itemErrs := validateItem(it)
		if itemErrs != nil {
			hasItemErrors = true
		}
		itemsErrors = append(itemsErrors, itemErrs)
	}

	return Result{
		FieldErrors: fieldErrors,
		ItemsErrors: itemsErrors,
		IsValid:     len(fieldErrors) == 0 && !hasItemErrors,
	}
}

func validateItem(it entity.LineItem) ItemErrors {
	errs := make(ItemErrors)
	if isBlank(it.Description) {
		errs["description"] = MsgItemDescRequired
	}
	if q, ok := parseNumber(it.Quantity); !ok || !q.IsPositive() {
		errs["quantity"] = MsgItemQuantityInvalid
	}
	if r, ok := parseNumber(it.Rate); !ok || r.IsNegative() {
		errs["rate"] = MsgItemRateInvalid
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func isValidEmail(s string) bool {
	// La ausencia cuenta como inválido, no como "faltante".
	return !isBlank(s) && emailPattern.MatchString(s)
}

func isValidPhone(s string) bool {
	return !isBlank(s) && phonePattern.MatchString(s)
}

// parseNumber interpreta entrada numérica del usuario; texto en blanco o no
// parseable equivale a ausente.
func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
