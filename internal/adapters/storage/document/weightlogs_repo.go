package document

import (
	"context"
	"strings"

	"pet-care-log/internal/domain/weightlogs"

	"github.com/google/uuid"
)

type weightLogRepo struct {
	d *doc[[]weightlogs.WeightLog]
}

func (r *weightLogRepo) List(ctx context.Context) ([]weightlogs.WeightLog, error) {
	items, err := r.d.read(ctx)
	if err != nil {
		return nil, err
	}
	return append([]weightlogs.WeightLog(nil), items...), nil
}

func (r *weightLogRepo) GetByID(ctx context.Context, id string) (weightlogs.WeightLog, error) {
	items, err := r.d.read(ctx)
	if err != nil {
		return weightlogs.WeightLog{}, err
	}
	if i := indexWeightLog(items, id); i >= 0 {
		return items[i], nil
	}
	return weightlogs.WeightLog{}, weightlogs.ErrNotFound
}

func (r *weightLogRepo) Create(ctx context.Context, w weightlogs.WeightLog) (weightlogs.WeightLog, error) {
	if strings.TrimSpace(w.ID) == "" {
		w.ID = uuid.NewString()
	}
	err := r.d.mutate(ctx, func(cur []weightlogs.WeightLog) ([]weightlogs.WeightLog, error) {
		next := make([]weightlogs.WeightLog, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, w), nil
	})
	if err != nil {
		return weightlogs.WeightLog{}, err
	}
	return w, nil
}

func (r *weightLogRepo) Update(ctx context.Context, w weightlogs.WeightLog) error {
	return r.d.mutate(ctx, func(cur []weightlogs.WeightLog) ([]weightlogs.WeightLog, error) {
		i := indexWeightLog(cur, w.ID)
		if i < 0 {
			return nil, weightlogs.ErrNotFound
		}
		next := append([]weightlogs.WeightLog(nil), cur...)
		next[i] = w
		return next, nil
	})
}

func (r *weightLogRepo) Delete(ctx context.Context, id string) error {
	return r.d.mutate(ctx, func(cur []weightlogs.WeightLog) ([]weightlogs.WeightLog, error) {
		i := indexWeightLog(cur, id)
		if i < 0 {
			return nil, weightlogs.ErrNotFound
		}
		next := make([]weightlogs.WeightLog, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		return append(next, cur[i+1:]...), nil
	})
}

func indexWeightLog(items []weightlogs.WeightLog, id string) int {
	for i, w := range items {
		if w.ID == id {
			return i
		}
	}
	return -1
}
