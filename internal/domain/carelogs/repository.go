package carelogs

import (
	"context"
	"time"
)

// Repository es el contrato del gateway para la colección de logs.
// Todas las operaciones son read-modify-write del documento completo.
type Repository interface {
	List(ctx context.Context) ([]CareLog, error)
	GetByID(ctx context.Context, id string) (CareLog, error)
	// Create asigna ID si viene vacío y devuelve el log guardado.
	Create(ctx context.Context, l CareLog) (CareLog, error)
	// Update falla con ErrNotFound si el ID no existe.
	Update(ctx context.Context, l CareLog) error
	// Delete falla con ErrNotFound si el ID no existe.
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type ListFilter struct {
	From   *time.Time
	To     *time.Time
	Author string
	Limit  int
}
