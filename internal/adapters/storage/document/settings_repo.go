package document

import (
	"context"

	"pet-care-log/internal/domain/settings"
)

type settingsRepo struct {
	d *doc[settings.AppSettings]
}

func (r *settingsRepo) Get(ctx context.Context) (settings.AppSettings, error) {
	s, err := r.d.read(ctx)
	if err != nil {
		return settings.AppSettings{}, err
	}
	s.Owners = append([]settings.Owner(nil), s.Owners...)
	return s, nil
}

// Save reemplaza el documento completo.
func (r *settingsRepo) Save(ctx context.Context, s settings.AppSettings) error {
	s.Owners = append([]settings.Owner{}, s.Owners...)
	return r.d.mutate(ctx, func(settings.AppSettings) (settings.AppSettings, error) {
		return s, nil
	})
}
