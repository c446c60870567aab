package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDraftInvalid  = errors.New("el borrador tiene errores de validación")
	ErrDraftMissing  = errors.New("no hay datos de factura")
	ErrExportPending = errors.New("la exportación aún no termina")
)
