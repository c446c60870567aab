// Package sqlite implementa el almacenamiento local del borrador sobre un
// archivo SQLite embebido: una tabla clave-valor con una única fila bajo la
// clave "invoiceData", con el borrador serializado en JSON. No hay servidor
// de base de datos.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/Facturador-api/internal/domain/entity"
)

// draftKey clave fija bajo la que se guarda el borrador.
const draftKey = "invoiceData"

const schema = `
CREATE TABLE IF NOT EXISTS drafts (
	key        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// DraftStore implementa repository.DraftRepository sobre SQLite.
type DraftStore struct {
	db *sql.DB
}

// Open abre (o crea) el archivo de almacenamiento y aplica el esquema.
func Open(path string) (*DraftStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite: ruta de almacenamiento requerida")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: abrir %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: aplicar esquema: %w", err)
	}
	return &DraftStore{db: db}, nil
}

// Close cierra el archivo.
func (s *DraftStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load devuelve el borrador guardado. Sin fila, o con un payload que no
// deserializa, cae en silencio al borrador por defecto: el estado corrupto
// nunca rompe el flujo de edición.
func (s *DraftStore) Load(ctx context.Context) (*entity.InvoiceDraft, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM drafts WHERE key = ?`, draftKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.DefaultDraft(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: leer borrador: %w", err)
	}

	var d entity.InvoiceDraft
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		log.Warn().Err(err).Msg("borrador persistido corrupto, se usa el borrador por defecto")
		return entity.DefaultDraft(), nil
	}
	return &d, nil
}

// Save sobrescribe el borrador bajo la clave fija. El upsert es atómico: si
// falla, la fila anterior queda intacta.
func (s *DraftStore) Save(ctx context.Context, d *entity.InvoiceDraft) error {
	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("sqlite: serializar borrador: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO drafts (key, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		draftKey, string(payload), time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: guardar borrador: %w", err)
	}
	return nil
}

// Clear elimina el estado persistido.
func (s *DraftStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE key = ?`, draftKey); err != nil {
		return fmt.Errorf("sqlite: limpiar borrador: %w", err)
	}
	return nil
}
