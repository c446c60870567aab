// Package editor implementa la mediación del formulario: cada edición produce
// un borrador nuevo reemplazando exactamente el campo cambiado, se revalida y
// se persiste. El borrador en memoria es el dueño único del estado.
package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Facturador-api/internal/application/dto"
	"github.com/jhoicas/Facturador-api/internal/domain"
	"github.com/jhoicas/Facturador-api/internal/domain/draft"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
	"github.com/jhoicas/Facturador-api/internal/domain/repository"
)

// UseCase mantiene el borrador actual, el conjunto efímero de campos tocados
// y la persistencia de mejor esfuerzo tras cada mutación.
//
// Hay un único editor (un solo usuario local), pero el servidor HTTP atiende
// en paralelo, así que el estado se protege con un mutex.
type UseCase struct {
	repo  repository.DraftRepository
	today func() string // fecha actual ISO, inyectable en tests

	mu      sync.Mutex
	current *entity.InvoiceDraft
	touched map[string]struct{}
}

// New construye el caso de uso y restaura el borrador persistido (o el
// borrador por defecto si no hay nada guardado).
func New(ctx context.Context, repo repository.DraftRepository) (*UseCase, error) {
	d, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("editor: restaurar borrador: %w", err)
	}
	return &UseCase{
		repo:    repo,
		today:   func() string { return time.Now().Format("2006-01-02") },
		current: d,
		touched: make(map[string]struct{}),
	}, nil
}

// Snapshot devuelve el estado completo para pintar el editor.
func (uc *UseCase) Snapshot() *dto.DraftSnapshotResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshotLocked()
}

// Replace reemplaza el borrador completo (el formulario entrega el valor
// nuevo entero). Los amounts se recalculan para mantener la invariante de
// campo derivado y se exige unicidad de ids de línea.
func (uc *UseCase) Replace(ctx context.Context, d *entity.InvoiceDraft) (*dto.DraftSnapshotResponse, error) {
	if d == nil {
		return nil, domain.ErrDraftMissing
	}
	if !d.HasUniqueItemIDs() {
		return nil, fmt.Errorf("%w: ids de línea duplicados", domain.ErrInvalidInput)
	}
	next := d.Clone()
	for i := range next.Items {
		next.Items[i].Recalculate()
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.current = next
	uc.persistLocked(ctx)
	return uc.snapshotLocked(), nil
}

// SetField reemplaza exactamente un campo de nivel superior. Para tax y
// discount se conserva la coerción del formulario original: en blanco queda
// en blanco, cualquier otro texto se normaliza a número (o a 0).
func (uc *UseCase) SetField(ctx context.Context, field, value string) (*dto.DraftSnapshotResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.current.Clone()
	switch field {
	case "invoiceNumber":
		next.InvoiceNumber = value
	case "date":
		next.Date = value
	case "dueDate":
		next.DueDate = value
	case "companyName":
		next.CompanyName = value
	case "companyEmail":
		next.CompanyEmail = value
	case "companyPhone":
		next.CompanyPhone = value
	case "companyAddress":
		next.CompanyAddress = value
	case "clientName":
		next.ClientName = value
	case "clientEmail":
		next.ClientEmail = value
	case "clientPhone":
		next.ClientPhone = value
	case "clientAddress":
		next.ClientAddress = value
	case "tax":
		next.Tax = coerceNumericField(value)
	case "discount":
		next.Discount = coerceNumericField(value)
	case "notes":
		next.Notes = value
	default:
		return nil, fmt.Errorf("%w: campo desconocido %q", domain.ErrInvalidInput, field)
	}

	uc.current = next
	uc.persistLocked(ctx)
	return uc.snapshotLocked(), nil
}

// SetItemField reemplaza un campo de la línea ubicada por id, recalculando su
// amount cuando cambia quantity o rate. El amount no es asignable.
func (uc *UseCase) SetItemField(ctx context.Context, id int, field, value string) (*dto.DraftSnapshotResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.current.Clone()
	idx := -1
	for i := range next.Items {
		if next.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: línea %d", domain.ErrNotFound, id)
	}

	it := &next.Items[idx]
	switch field {
	case "description":
		it.Description = value
	case "quantity":
		it.Quantity = value
		it.Recalculate()
	case "rate":
		it.Rate = value
		it.Recalculate()
	default:
		return nil, fmt.Errorf("%w: campo de línea desconocido %q", domain.ErrInvalidInput, field)
	}

	uc.current = next
	uc.persistLocked(ctx)
	return uc.snapshotLocked(), nil
}

// AddItem agrega una línea nueva con id = max(ids, 0) + 1, cantidad 1 y
// tarifa 0. Los ids no se renumeran nunca; si se borró la línea de mayor id,
// el nuevo id puede repetir uno ya eliminado (comportamiento heredado, se
// conserva tal cual).
func (uc *UseCase) AddItem(ctx context.Context) *dto.DraftSnapshotResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.current.Clone()
	it := entity.LineItem{ID: next.NextItemID(), Quantity: "1", Rate: "0"}
	it.Recalculate()
	next.Items = append(next.Items, it)

	uc.current = next
	uc.persistLocked(ctx)
	return uc.snapshotLocked()
}

// RemoveItem elimina la línea por id. Un id inexistente es un no-op; las
// demás líneas conservan sus ids.
func (uc *UseCase) RemoveItem(ctx context.Context, id int) *dto.DraftSnapshotResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next := uc.current.Clone()
	items := next.Items[:0:0]
	for _, it := range next.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	next.Items = items

	uc.current = next
	uc.persistLocked(ctx)
	return uc.snapshotLocked()
}

// NewInvoice descarta el borrador actual, limpia el estado persistido y el
// conjunto de campos tocados, y vuelve al borrador por defecto.
func (uc *UseCase) NewInvoice(ctx context.Context) *dto.DraftSnapshotResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.repo.Clear(ctx); err != nil {
		log.Warn().Err(err).Msg("no se pudo limpiar el borrador persistido")
	}
	uc.current = entity.DefaultDraft()
	uc.touched = make(map[string]struct{})
	return uc.snapshotLocked()
}

// Touch marca un campo como interactuado; solo los campos tocados muestran
// sus errores en la vista "visible". Claves: "companyEmail",
// "items.3.quantity", etc. El conjunto es efímero, nunca se persiste.
func (uc *UseCase) Touch(key string) *dto.DraftSnapshotResponse {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.touched[key] = struct{}{}
	return uc.snapshotLocked()
}

// Current devuelve una copia del borrador actual.
func (uc *UseCase) Current() *entity.InvoiceDraft {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.current.Clone()
}

// ── Internos ──────────────────────────────────────────────────────────────────

// persistLocked guarda el borrador con semántica de mejor esfuerzo: un fallo
// transitorio de almacenamiento se loguea y no interrumpe la edición (el
// último valor persistido válido queda intacto).
func (uc *UseCase) persistLocked(ctx context.Context) {
	if err := uc.repo.Save(ctx, uc.current); err != nil {
		log.Warn().Err(err).Msg("no se pudo persistir el borrador")
	}
}

func (uc *UseCase) snapshotLocked() *dto.DraftSnapshotResponse {
	res := draft.Validate(uc.current, uc.today())
	totals := draft.ComputeTotals(uc.current.Items, uc.current.Tax, uc.current.Discount)
	return &dto.DraftSnapshotResponse{
		Invoice:    uc.current.Clone(),
		Validation: dto.NewValidationResponse(res),
		Visible:    dto.NewValidationResponse(uc.visibleLocked(res)),
		Totals:     dto.NewTotalsResponse(totals),
	}
}

// visibleLocked filtra el resultado de validación dejando solo los errores de
// campos ya tocados; un formulario recién cargado no aparece lleno de errores.
func (uc *UseCase) visibleLocked(res draft.Result) draft.Result {
	fields := make(map[string]string)
	for name, msg := range res.FieldErrors {
		if _, ok := uc.touched[name]; ok {
			fields[name] = msg
		}
	}
	items := make([]draft.ItemErrors, len(res.ItemsErrors))
	for i, itemErrs := range res.ItemsErrors {
		if itemErrs == nil || i >= len(uc.current.Items) {
			continue
		}
		id := uc.current.Items[i].ID
		var visible draft.ItemErrors
		for field, msg := range itemErrs {
			key := fmt.Sprintf("items.%d.%s", id, field)
			if _, ok := uc.touched[key]; ok {
				if visible == nil {
					visible = make(draft.ItemErrors)
				}
				visible[field] = msg
			}
		}
		items[i] = visible
	}
	return draft.Result{FieldErrors: fields, ItemsErrors: items, IsValid: res.IsValid}
}

// coerceNumericField reproduce la normalización del formulario original para
// tax y discount: vacío queda vacío, texto no numérico se vuelve "0".
func coerceNumericField(value string) string {
	if value == "" {
		return ""
	}
	return entity.ParseDecimalOrZero(value).String()
}
