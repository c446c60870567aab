package editor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Facturador-api/internal/application/editor"
	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de repositorio en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeRepo struct {
	saved   *entity.InvoiceDraft
	saves   int
	clears  int
	saveErr error
}

func (r *fakeRepo) Load(context.Context) (*entity.InvoiceDraft, error) {
	if r.saved == nil {
		return entity.DefaultDraft(), nil
	}
	return r.saved.Clone(), nil
}

func (r *fakeRepo) Save(_ context.Context, d *entity.InvoiceDraft) error {
	r.saves++
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = d.Clone()
	return nil
}

func (r *fakeRepo) Clear(context.Context) error {
	r.clears++
	r.saved = nil
	return nil
}

func newEditor(t *testing.T, repo *fakeRepo) *editor.UseCase {
	t.Helper()
	uc, err := editor.New(context.Background(), repo)
	require.NoError(t, err)
	return uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Mediación del formulario
// ──────────────────────────────────────────────────────────────────────────────

func TestNew_RestauraBorradorPersistido(t *testing.T) {
	persisted := entity.DefaultDraft()
	persisted.CompanyName = "Acme Ltda"
	repo := &fakeRepo{saved: persisted}

	uc := newEditor(t, repo)

	assert.Equal(t, "Acme Ltda", uc.Current().CompanyName)
}

func TestSetField_ReemplazaSoloElCampo(t *testing.T) {
	repo := &fakeRepo{}
	uc := newEditor(t, repo)

	snap, err := uc.SetField(context.Background(), "clientName", "Cliente SAS")
	require.NoError(t, err)

	assert.Equal(t, "Cliente SAS", snap.Invoice.ClientName)
	assert.Equal(t, "INV-001", snap.Invoice.InvoiceNumber, "los demás campos no cambian")
	assert.Equal(t, 1, repo.saves, "cada mutación persiste")
}

func TestSetField_CampoDesconocido(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})

	_, err := uc.SetField(context.Background(), "amount", "99")

	require.Error(t, err)
}

func TestSetField_CoercionTaxDiscount(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})
	ctx := context.Background()

	snap, err := uc.SetField(ctx, "tax", "")
	require.NoError(t, err)
	assert.Equal(t, "", snap.Invoice.Tax, "en blanco queda en blanco")

	snap, err = uc.SetField(ctx, "tax", "19")
	require.NoError(t, err)
	assert.Equal(t, "19", snap.Invoice.Tax)

	snap, err = uc.SetField(ctx, "discount", "garbage")
	require.NoError(t, err)
	assert.Equal(t, "0", snap.Invoice.Discount, "texto no numérico se normaliza a 0")
}

func TestSetItemField_RecalculaAmount(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})
	ctx := context.Background()

	_, err := uc.SetItemField(ctx, 1, "quantity", "2")
	require.NoError(t, err)
	snap, err := uc.SetItemField(ctx, 1, "rate", "50")
	require.NoError(t, err)

	require.Len(t, snap.Invoice.Items, 1)
	assert.Equal(t, "100", snap.Invoice.Items[0].Amount.String())
	assert.Equal(t, "100.00", snap.Totals.Subtotal)

	// Vaciar quantity deja amount en 0 pero el campo sigue en blanco.
	snap, err = uc.SetItemField(ctx, 1, "quantity", "")
	require.NoError(t, err)
	assert.True(t, snap.Invoice.Items[0].Amount.IsZero())
	assert.Equal(t, "", snap.Invoice.Items[0].Quantity)
}

func TestSetItemField_LineaInexistente(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})

	_, err := uc.SetItemField(context.Background(), 99, "rate", "10")

	require.Error(t, err)
}

func TestSetItemField_AmountNoAsignable(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})

	_, err := uc.SetItemField(context.Background(), 1, "amount", "1000")

	require.Error(t, err, "amount es derivado, nunca asignable")
}

func TestAddItem_AsignaIDMonotono(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})
	ctx := context.Background()

	snap := uc.AddItem(ctx)
	require.Len(t, snap.Invoice.Items, 2)
	assert.Equal(t, 2, snap.Invoice.Items[1].ID)
	assert.Equal(t, "1", snap.Invoice.Items[1].Quantity)
	assert.Equal(t, "0", snap.Invoice.Items[1].Rate)
	assert.True(t, snap.Invoice.Items[1].Amount.IsZero())

	snap = uc.AddItem(ctx)
	assert.Equal(t, 3, snap.Invoice.Items[2].ID)
}

// Comportamiento heredado que se conserva: si se borra la línea de mayor id,
// el siguiente alta puede repetir un id ya eliminado.
func TestAddItem_ReusoDeIDTrasBorrarElMayor(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})
	ctx := context.Background()

	uc.AddItem(ctx)       // ids 1, 2
	uc.RemoveItem(ctx, 2) // queda la línea 1
	// max(1)+1 = 2 otra vez
	snap := uc.AddItem(ctx)

	require.Len(t, snap.Invoice.Items, 2)
	assert.Equal(t, 2, snap.Invoice.Items[1].ID)
}

func TestRemoveItem_NoRenumera(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})
	ctx := context.Background()

	uc.AddItem(ctx) // ids 1, 2
	uc.AddItem(ctx) // ids 1, 2, 3
	snap := uc.RemoveItem(ctx, 2)

	require.Len(t, snap.Invoice.Items, 2)
	assert.Equal(t, 1, snap.Invoice.Items[0].ID)
	assert.Equal(t, 3, snap.Invoice.Items[1].ID, "los ids restantes no se renumeran")
}

func TestRemoveItem_UltimaLinea(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})

	snap := uc.RemoveItem(context.Background(), 1)

	// Se permite una lista vacía y los totales calculan 0 sin error.
	assert.Empty(t, snap.Invoice.Items)
	assert.Equal(t, "0.00", snap.Totals.Subtotal)
	assert.Equal(t, "0.00", snap.Totals.Total)
	assert.Empty(t, snap.Validation.ItemsErrors, "sin líneas no hay errores de línea")
}

func TestRemoveItem_IDInexistenteEsNoOp(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})

	snap := uc.RemoveItem(context.Background(), 42)

	assert.Len(t, snap.Invoice.Items, 1)
}

func TestNewInvoice_ReseteaTodo(t *testing.T) {
	repo := &fakeRepo{}
	uc := newEditor(t, repo)
	ctx := context.Background()

	_, err := uc.SetField(ctx, "companyName", "Acme")
	require.NoError(t, err)
	uc.Touch("companyEmail")

	snap := uc.NewInvoice(ctx)

	assert.Equal(t, entity.DefaultDraft(), snap.Invoice)
	assert.Equal(t, 1, repo.clears, "se elimina el estado persistido")
	assert.Empty(t, snap.Visible.FieldErrors, "el conjunto de tocados también se resetea")
}

func TestPersistencia_MejorEsfuerzo(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("disco lleno")}
	uc := newEditor(t, repo)

	snap, err := uc.SetField(context.Background(), "notes", "hola")

	// El fallo de guardado no interrumpe la edición.
	require.NoError(t, err)
	assert.Equal(t, "hola", snap.Invoice.Notes)
	assert.Nil(t, repo.saved, "el valor persistido anterior queda intacto")
}

// ──────────────────────────────────────────────────────────────────────────────
// Campos tocados
// ──────────────────────────────────────────────────────────────────────────────

func TestVisible_FiltraPorTocados(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})

	snap := uc.Snapshot()
	assert.NotEmpty(t, snap.Validation.FieldErrors, "la validación completa sí reporta errores")
	assert.Empty(t, snap.Visible.FieldErrors, "un formulario recién cargado no muestra errores")
	assert.False(t, snap.Visible.IsValid, "la validez global no depende de lo visible")

	snap = uc.Touch("companyEmail")
	require.Len(t, snap.Visible.FieldErrors, 1)
	assert.Contains(t, snap.Visible.FieldErrors, "companyEmail")
}

func TestVisible_CamposDeLinea(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})
	ctx := context.Background()

	_, err := uc.SetItemField(ctx, 1, "quantity", "")
	require.NoError(t, err)

	snap := uc.Snapshot()
	require.Len(t, snap.Visible.ItemsErrors, 1)
	assert.Nil(t, snap.Visible.ItemsErrors[0], "sin tocar, el error de la línea no se muestra")

	snap = uc.Touch("items.1.quantity")
	require.NotNil(t, snap.Visible.ItemsErrors[0])
	assert.Contains(t, snap.Visible.ItemsErrors[0], "quantity")
	assert.NotContains(t, snap.Visible.ItemsErrors[0], "rate", "solo el campo tocado es visible")
}

// ──────────────────────────────────────────────────────────────────────────────
// Replace
// ──────────────────────────────────────────────────────────────────────────────

func TestReplace_RecalculaAmountsYValida(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})
	today := time.Now().Format("2006-01-02")

	d := entity.DefaultDraft()
	d.Date = today
	d.DueDate = today
	d.Items = []entity.LineItem{{ID: 1, Description: "x", Quantity: "4", Rate: "2.5"}}

	snap, err := uc.Replace(context.Background(), d)
	require.NoError(t, err)

	assert.Equal(t, "10.00", snap.Invoice.Items[0].Amount.StringFixed(2), "amount siempre se deriva al reemplazar")
	assert.Equal(t, "10.00", snap.Totals.Subtotal)
}

func TestReplace_RechazaIDsDuplicados(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})

	d := entity.DefaultDraft()
	d.Items = []entity.LineItem{{ID: 1}, {ID: 1}}

	_, err := uc.Replace(context.Background(), d)
	require.Error(t, err)
}

func TestReplace_BorradorNulo(t *testing.T) {
	uc := newEditor(t, &fakeRepo{})

	_, err := uc.Replace(context.Background(), nil)
	require.Error(t, err)
}
