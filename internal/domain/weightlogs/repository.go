package weightlogs

import "context"

type Repository interface {
	List(ctx context.Context) ([]WeightLog, error)
	GetByID(ctx context.Context, id string) (WeightLog, error)
	Create(ctx context.Context, w WeightLog) (WeightLog, error)
	Update(ctx context.Context, w WeightLog) error
	Delete(ctx context.Context, id string) error
}
