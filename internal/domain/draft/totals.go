package draft

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// Totals montos derivados del borrador. Se calculan en decimal para evitar
// deriva de centavos; el formateo a dos decimales es asunto de presentación.
type Totals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// ComputeTotals calcula subtotal, impuesto, descuento y total.
//
//	subtotal  = Σ amount de cada línea
//	taxAmount = subtotal × (tax / 100), tax en blanco o no numérico = 0
//	discount  = monto tal cual, en blanco o no numérico = 0
//	total     = subtotal + taxAmount − discount
//
// El total puede quedar negativo si el descuento supera subtotal + impuesto;
// eso se acepta, no es un error.
func ComputeTotals(items []entity.LineItem, tax, discount string) Totals {
	var subtotal decimal.Decimal
	for _, it := range items {
		subtotal = subtotal.Add(it.Amount)
	}

	taxPercent := entity.ParseDecimalOrZero(tax)
	discountAmount := entity.ParseDecimalOrZero(discount)
	taxAmount := subtotal.Mul(taxPercent).Div(decimal.NewFromInt(100))

	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DiscountAmount: discountAmount,
		Total:          subtotal.Add(taxAmount).Sub(discountAmount),
	}
}
