package draft_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/domain/draft"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

func item(id int, desc, qty, rate string) entity.LineItem {
	it := entity.LineItem{ID: id, Description: desc, Quantity: qty, Rate: rate}
	it.Recalculate()
	return it
}

// Escenario de referencia: una línea {quantity: 2, rate: 50}, tax 10,
// discount 0 → amount 100, subtotal 100, impuesto 10, total 110.
func TestComputeTotals_EscenarioBase(t *testing.T) {
	items := []entity.LineItem{item(1, "Consultoría", "2", "50")}
	require.True(t, items[0].Amount.Equal(decimal.NewFromInt(100)))

	tot := draft.ComputeTotals(items, "10", "0")

	assert.True(t, tot.Subtotal.Equal(decimal.NewFromInt(100)), "subtotal = %s", tot.Subtotal)
	assert.True(t, tot.TaxAmount.Equal(decimal.NewFromInt(10)), "taxAmount = %s", tot.TaxAmount)
	assert.True(t, tot.DiscountAmount.IsZero())
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(110)), "total = %s", tot.Total)
}

func TestComputeTotals_SinItems(t *testing.T) {
	tot := draft.ComputeTotals(nil, "", "")

	assert.True(t, tot.Subtotal.IsZero())
	assert.True(t, tot.TaxAmount.IsZero())
	assert.True(t, tot.DiscountAmount.IsZero())
	assert.True(t, tot.Total.IsZero())
}

func TestComputeTotals_TaxYDiscountEnBlanco(t *testing.T) {
	items := []entity.LineItem{item(1, "a", "3", "9.99")}

	tot := draft.ComputeTotals(items, "", "garbage")

	// Tax y discount en blanco o no parseables valen 0.
	assert.True(t, tot.TaxAmount.IsZero())
	assert.True(t, tot.DiscountAmount.IsZero())
	assert.True(t, tot.Total.Equal(tot.Subtotal))
}

func TestComputeTotals_TotalNegativoPermitido(t *testing.T) {
	items := []entity.LineItem{item(1, "a", "1", "10")}

	tot := draft.ComputeTotals(items, "0", "25")

	// El descuento puede superar subtotal + impuesto; no hay piso en cero.
	assert.True(t, tot.Total.Equal(decimal.NewFromInt(-15)), "total = %s", tot.Total)
}

// El subtotal es lineal: concatenar dos listas y sumar sus subtotales
// individuales da el subtotal de la lista combinada.
func TestComputeTotals_SubtotalLineal(t *testing.T) {
	a := []entity.LineItem{item(1, "a", "2", "3.5"), item(2, "b", "1", "0.1")}
	b := []entity.LineItem{item(3, "c", "7", "19.99")}

	totA := draft.ComputeTotals(a, "", "")
	totB := draft.ComputeTotals(b, "", "")
	totAB := draft.ComputeTotals(append(append([]entity.LineItem{}, a...), b...), "", "")

	assert.True(t, totAB.Subtotal.Equal(totA.Subtotal.Add(totB.Subtotal)))
}

func TestComputeTotals_SinDerivaDeCentavos(t *testing.T) {
	// 0.1 + 0.2 clásico: en decimal la suma es exacta.
	items := []entity.LineItem{
		item(1, "a", "1", "0.1"),
		item(2, "b", "1", "0.2"),
	}

	tot := draft.ComputeTotals(items, "", "")

	assert.Equal(t, "0.30", tot.Subtotal.StringFixed(2))
	assert.True(t, tot.Subtotal.Equal(decimal.NewFromFloat(0.3)))
}

func TestLineItem_RecalculateOperandosInvalidos(t *testing.T) {
	it := entity.LineItem{ID: 1, Quantity: "", Rate: "50"}
	it.Recalculate()
	assert.True(t, it.Amount.IsZero(), "quantity en blanco contribuye 0")

	it.Quantity = "3"
	it.Rate = "n/a"
	it.Recalculate()
	assert.True(t, it.Amount.IsZero(), "rate no numérico contribuye 0")

	it.Rate = "2.50"
	it.Recalculate()
	assert.Equal(t, "7.50", it.Amount.StringFixed(2))
}
