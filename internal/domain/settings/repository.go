package settings

import "context"

// Repository es el contrato del gateway para el documento de settings.
type Repository interface {
	// Get devuelve Default() si el documento todavía no existe.
	Get(ctx context.Context) (AppSettings, error)
	// Save reemplaza el documento completo.
	Save(ctx context.Context, s AppSettings) error
}
