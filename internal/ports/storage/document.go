package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotExist: el documento todavía no fue creado en el backend.
	ErrNotExist = errors.New("document does not exist")

	// ErrUnauthorized: la sesión contra el backend expiró o fue revocada.
	// Quien la recibe debe descartar todo estado cacheado.
	ErrUnauthorized = errors.New("document store unauthorized")
)

// DocumentStore persiste documentos JSON completos por nombre.
// No hay updates parciales ni control de concurrencia: gana el último Save.
type DocumentStore interface {
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, body []byte) error
}

// Nombres de documento usados por el gateway.
const (
	DocCareLogs   = "carelogs.json"
	DocWeightLogs = "weightlogs.json"
	DocSettings   = "settings.json"
)
