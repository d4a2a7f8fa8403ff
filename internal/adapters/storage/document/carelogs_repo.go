package document

import (
	"context"
	"strings"

	"pet-care-log/internal/domain/carelogs"

	"github.com/google/uuid"
)

type careLogRepo struct {
	d *doc[[]carelogs.CareLog]
}

func (r *careLogRepo) List(ctx context.Context) ([]carelogs.CareLog, error) {
	items, err := r.d.read(ctx)
	if err != nil {
		return nil, err
	}
	return append([]carelogs.CareLog(nil), items...), nil
}

func (r *careLogRepo) GetByID(ctx context.Context, id string) (carelogs.CareLog, error) {
	items, err := r.d.read(ctx)
	if err != nil {
		return carelogs.CareLog{}, err
	}
	if i := indexCareLog(items, id); i >= 0 {
		return items[i], nil
	}
	return carelogs.CareLog{}, carelogs.ErrNotFound
}

func (r *careLogRepo) Create(ctx context.Context, l carelogs.CareLog) (carelogs.CareLog, error) {
	if strings.TrimSpace(l.ID) == "" {
		l.ID = uuid.NewString()
	}
	err := r.d.mutate(ctx, func(cur []carelogs.CareLog) ([]carelogs.CareLog, error) {
		next := make([]carelogs.CareLog, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, l), nil
	})
	if err != nil {
		return carelogs.CareLog{}, err
	}
	return l, nil
}

func (r *careLogRepo) Update(ctx context.Context, l carelogs.CareLog) error {
	return r.d.mutate(ctx, func(cur []carelogs.CareLog) ([]carelogs.CareLog, error) {
		i := indexCareLog(cur, l.ID)
		if i < 0 {
			return nil, carelogs.ErrNotFound
		}
		next := append([]carelogs.CareLog(nil), cur...)
		next[i] = l
		return next, nil
	})
}

func (r *careLogRepo) Delete(ctx context.Context, id string) error {
	return r.d.mutate(ctx, func(cur []carelogs.CareLog) ([]carelogs.CareLog, error) {
		i := indexCareLog(cur, id)
		if i < 0 {
			return nil, carelogs.ErrNotFound
		}
		next := make([]carelogs.CareLog, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		return append(next, cur[i+1:]...), nil
	})
}

func (r *careLogRepo) Clear(ctx context.Context) error {
	return r.d.mutate(ctx, func([]carelogs.CareLog) ([]carelogs.CareLog, error) {
		return []carelogs.CareLog{}, nil
	})
}

func indexCareLog(items []carelogs.CareLog, id string) int {
	for i, l := range items {
		if l.ID == id {
			return i
		}
	}
	return -1
}
