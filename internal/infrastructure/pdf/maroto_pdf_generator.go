// Package pdf implementa el renderizador de documentos con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                         INVOICE                             │
//	│  EMISOR: nombre / email / tel / dirección │ N° + fechas     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: cliente + contacto                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | Tarifa | Importe               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Tax (n%) / Discount / TOTAL            │
//	│  NOTAS                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Facturador-api/internal/domain/draft"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 79, Green: 70, Blue: 229}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa export.DraftPDFGenerator usando Maroto v2.
// Los montos llegan ya calculados; aquí solo se formatean a dos decimales.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateDraftPDF genera el documento y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDraftPDF(
	_ context.Context,
	d *entity.InvoiceDraft,
	totals draft.Totals,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+d.InvoiceNumber, true).
		WithAuthor(d.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow())
	m.AddRows(companyRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(billToRow(d))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(d.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(d, totals))

	if strings.TrimSpace(d.Notes) != "" {
		m.AddRows(notesRows(d.Notes)...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 20, Align: align.Center,
				Color: colorPrimary, Top: 1,
			}),
		),
	)
}

// companyRow: datos del emisor (izq) y número + fechas (der).
func companyRow(d *entity.InvoiceDraft) core.Row {
	return row.New(24).Add(
		col.New(7).Add(
			text.New(d.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 1,
			}),
			text.New(d.CompanyEmail, props.Text{Size: 8, Top: 8, Color: colorGray}),
			text.New(d.CompanyPhone, props.Text{Size: 8, Top: 12, Color: colorGray}),
			text.New(d.CompanyAddress, props.Text{Size: 8, Top: 16, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Invoice #: "+d.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
			}),
			text.New("Date: "+formatDate(d.Date), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Due Date: "+formatDate(d.DueDate), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

// billToRow: datos del cliente.
func billToRow(d *entity.InvoiceDraft) core.Row {
	return row.New(18).Add(
		col.New(12).Add(
			text.New("BILL TO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(d.ClientName, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("%s   |   %s", d.ClientEmail, d.ClientPhone), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
			text.New(d.ClientAddress, props.Text{Size: 8, Top: 15, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 6, align.Left),
		h("Qty", 2, align.Right),
		h("Rate", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

// tableItemRows: una fila por línea del borrador. Quantity y Rate se muestran
// tal como se guardaron (pueden venir en blanco), Amount siempre a dos
// decimales.
func tableItemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(6).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.Quantity,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				it.Rate,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+it.Amount.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha, con los montos que ya
// calculó el dominio.
func totalsRow(d *entity.InvoiceDraft, totals draft.Totals) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	taxLabel := "Tax:"
	if strings.TrimSpace(d.Tax) != "" {
		taxLabel = fmt.Sprintf("Tax (%s%%):", strings.TrimSpace(d.Tax))
	}

	return row.New(30).Add(
		col.New(6), // espacio izquierdo
		col.New(3).Add(
			label("Subtotal:"),
			label(taxLabel),
			label("Discount:"),
			grandLabel("TOTAL:"),
		),
		col.New(3).Add(
			value("$"+totals.Subtotal.StringFixed(2)),
			value("$"+totals.TaxAmount.StringFixed(2)),
			value("-$"+totals.DiscountAmount.StringFixed(2)),
			grandValue("$"+totals.Total.StringFixed(2)),
		),
	)
}

// notesRows: sección de notas, una fila por renglón.
func notesRows(notes string) []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(
			text.New("NOTES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
			}),
		)),
	}
	for _, ln := range strings.Split(notes, "\n") {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(ln, props.Text{Size: 8, Color: colorGray, Top: 0.5}),
		)))
	}
	return rows
}

// formatDate pasa una fecha ISO a dd/mm/aaaa para la vista; si no parsea se
// muestra tal cual.
func formatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
