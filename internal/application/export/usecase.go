// Package export implementa la exportación del borrador a PDF como trabajo
// asíncrono de un solo disparo: se lanza, no se espera, y su resultado queda
// disponible por id de trabajo. Una exportación nueva es siempre independiente
// de las anteriores; no hay semántica de cancelación.
package export

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/draft"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// Estados de un trabajo de exportación.
const (
	StatusExporting = "EXPORTING"
	StatusDone      = "DONE"
	StatusFailed    = "FAILED"
)

type job struct {
	id       string
	status   string
	filename string
	errMsg   string
	pdf      []byte
}

// UseCase lanza y consulta trabajos de exportación. La exportación se niega
// por contrato mientras el borrador no sea válido; no hay forma de saltarse
// esa verificación desde fuera.
type UseCase struct {
	generator DraftPDFGenerator
	today     func() string

	mu   sync.RWMutex
	jobs map[string]*job
}

// New construye el caso de uso.
func New(generator DraftPDFGenerator) *UseCase {
	return &UseCase{
		generator: generator,
		today:     func() string { return time.Now().Format("2006-01-02") },
		jobs:      make(map[string]*job),
	}
}

// Start valida el borrador y, solo si es válido, lanza el renderizado en
// segundo plano. Devuelve el trabajo en estado EXPORTING; ese estado
// transitorio siempre se resuelve, tanto en éxito como en fallo.
func (uc *UseCase) Start(ctx context.Context, d *entity.InvoiceDraft) (*dto.ExportJobResponse, error) {
	if d == nil {
		return nil, domain.ErrDraftMissing
	}
	if res := draft.Validate(d, uc.today()); !res.IsValid {
		return nil, fmt.Errorf("%w: no se exporta un borrador inválido", domain.ErrDraftInvalid)
	}

	// Copia propia del borrador y totales calculados una sola vez: el PDF
	// lleva exactamente los números que mostró la vista previa, aunque el
	// usuario siga editando mientras la exportación está en vuelo.
	snapshot := d.Clone()
	totals := draft.ComputeTotals(snapshot.Items, snapshot.Tax, snapshot.Discount)

	j := &job{
		id:       uuid.New().String(),
		status:   StatusExporting,
		filename: fmt.Sprintf("Invoice_%s.pdf", snapshot.InvoiceNumber),
	}
	uc.mu.Lock()
	uc.jobs[j.id] = j
	uc.mu.Unlock()

	// Fire-and-forget: el trabajo no depende del contexto de la petición.
	go uc.render(context.Background(), j.id, snapshot, totals)

	return uc.Status(j.id)
}

// Status devuelve el estado actual de un trabajo.
func (uc *UseCase) Status(id string) (*dto.ExportJobResponse, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	j, ok := uc.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: exportación %s", domain.ErrNotFound, id)
	}
	return &dto.ExportJobResponse{
		JobID:    j.id,
		Status:   j.status,
		Filename: j.filename,
		Error:    j.errMsg,
	}, nil
}

// Result devuelve los bytes del PDF de un trabajo terminado.
// Retorna domain.ErrExportPending si el renderizado sigue en vuelo y el error
// capturado si el trabajo falló.
func (uc *UseCase) Result(id string) (pdf []byte, filename string, err error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	j, ok := uc.jobs[id]
	if !ok {
		return nil, "", fmt.Errorf("%w: exportación %s", domain.ErrNotFound, id)
	}
	switch j.status {
	case StatusExporting:
		return nil, "", domain.ErrExportPending
	case StatusFailed:
		return nil, "", fmt.Errorf("exportación fallida: %s", j.errMsg)
	}
	return j.pdf, j.filename, nil
}

// render ejecuta el renderizado y resuelve el estado transitorio del trabajo.
// Cualquier fallo, pánico incluido, se captura y se refleja en el trabajo;
// nunca queda un trabajo colgado en EXPORTING.
func (uc *UseCase) render(ctx context.Context, id string, d *entity.InvoiceDraft, totals draft.Totals) {
	var pdf []byte
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("pánico en el renderizador: %v", r)
			}
		}()
		pdf, err = uc.generator.GenerateDraftPDF(ctx, d, totals)
	}()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	j := uc.jobs[id]
	if err != nil {
		j.status = StatusFailed
		j.errMsg = err.Error()
		log.Error().Err(err).Str("job", id).Msg("exportación de PDF fallida")
		return
	}
	j.status = StatusDone
	j.pdf = pdf
	log.Info().Str("job", id).Str("file", j.filename).Int("bytes", len(pdf)).Msg("exportación de PDF completada")
}
