package export

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/draft"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// DraftPDFGenerator puerto hacia el renderizador de documentos. Recibe el
// borrador finalizado junto con los totales ya calculados: el renderizador
// nunca recalcula por su cuenta, pinta exactamente los números de la vista
// previa.
type DraftPDFGenerator interface {
	GenerateDraftPDF(ctx context.Context, d *entity.InvoiceDraft, totals draft.Totals) ([]byte, error)
}
