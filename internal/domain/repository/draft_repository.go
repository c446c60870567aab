package repository

import (
	"context"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// DraftRepository persiste el único borrador de factura bajo una clave fija.
type DraftRepository interface {
	// Load devuelve el borrador persistido, o el borrador por defecto si no
	// hay nada guardado o el dato guardado no se puede interpretar.
	Load(ctx context.Context) (*entity.InvoiceDraft, error)
	// Save sobrescribe el borrador persistido. Es idempotente.
	Save(ctx context.Context, d *entity.InvoiceDraft) error
	// Clear elimina el estado persistido.
	Clear(ctx context.Context) error
}
