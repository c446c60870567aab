package dto

import "github.com/jhoicas/Facturador-api/internal/domain/entity"

// PreviewRequest estado transitorio de navegación del editor a la vista
// previa: el borrador viaja en el cuerpo, no se persiste por separado.
type PreviewRequest struct {
	Invoice      *entity.InvoiceDraft `json:"invoice"`
	AutoDownload bool                 `json:"autoDownload"`
}

// PreviewResponse la vista previa muestra exactamente los mismos números que
// recibirá el renderizador; si AutoDownload venía activo incluye el job de
// exportación ya lanzado.
type PreviewResponse struct {
	Invoice *entity.InvoiceDraft `json:"invoice"`
	Totals  TotalsResponse       `json:"totals"`
	JobID   string               `json:"jobId,omitempty"`
}

// ExportRequest lanza una exportación del borrador recibido.
type ExportRequest struct {
	Invoice *entity.InvoiceDraft `json:"invoice"`
}

// ExportJobResponse estado de un trabajo de exportación.
type ExportJobResponse struct {
	JobID    string `json:"jobId"`
	Status   string `json:"status"`
	Filename string `json:"filename,omitempty"`
	Error    string `json:"error,omitempty"`
}
