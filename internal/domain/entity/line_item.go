package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LineItem representa una línea facturable del borrador.
//
// Quantity y Rate se guardan como texto porque el usuario puede dejarlos en
// blanco mientras edita; un valor no numérico cuenta como ausente, nunca como
// error fatal. Amount es siempre derivado (cantidad × tarifa) y nunca se
// asigna de forma independiente.
type LineItem struct {
	ID          int             `json:"id"`
	Description string          `json:"description"`
	Quantity    string          `json:"quantity"`
	Rate        string          `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Recalculate recalcula Amount a partir de Quantity y Rate. Operandos en
// blanco o no numéricos contribuyen 0, sin tocar el campo original.
func (it *LineItem) Recalculate() {
	q := ParseDecimalOrZero(it.Quantity)
	r := ParseDecimalOrZero(it.Rate)
	it.Amount = q.Mul(r)
}

// ParseDecimalOrZero interpreta un campo numérico editable: blanco o
// no parseable equivale a cero.
func ParseDecimalOrZero(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
