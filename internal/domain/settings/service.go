package settings

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("owner not found")
	ErrLastOwner         = errors.New("cannot remove the last owner")
	ErrNotConfigured     = errors.New("settings not configured")
	ErrAlreadyConfigured = errors.New("settings already configured")
)

const birthdayLayout = "2006-01-02"

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Service struct {
	repo Repository

	// mu serializa read-modify-write del documento dentro del proceso.
	mu sync.Mutex
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type PetInput struct {
	Name     string
	Type     PetType
	Birthday string
}

type OwnerInput struct {
	Name  string
	Color string // opcional; default por paleta
}

type OnboardInput struct {
	Pet    PetInput
	Owners []OwnerInput
}

func (s *Service) Get(ctx context.Context) (AppSettings, error) {
	return s.repo.Get(ctx)
}

// Onboard configura la app una única vez.
func (s *Service) Onboard(ctx context.Context, in OnboardInput) (AppSettings, error) {
	pet, err := normalizePet(in.Pet)
	if err != nil {
		return AppSettings{}, err
	}
	if len(in.Owners) == 0 {
		return AppSettings{}, ErrInvalidInput
	}

	owners := make([]Owner, 0, len(in.Owners))
	for i, o := range in.Owners {
		owner, err := newOwner(o, i)
		if err != nil {
			return AppSettings{}, err
		}
		owners = append(owners, owner)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Get(ctx)
	if err != nil {
		return AppSettings{}, err
	}
	if current.IsConfigured {
		return AppSettings{}, ErrAlreadyConfigured
	}

	next := AppSettings{
		Pet:          pet,
		Owners:       owners,
		IsConfigured: true,
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return AppSettings{}, err
	}
	return next, nil
}

// PetPatch: punteros para PATCH real, nil = no tocar.
type PetPatch struct {
	Name     *string
	Type     *PetType
	Birthday *string
}

func (s *Service) UpdatePet(ctx context.Context, patch PetPatch) (AppSettings, error) {
	return s.mutate(ctx, func(cur *AppSettings) error {
		pet := PetInput{
			Name:     cur.Pet.Name,
			Type:     cur.Pet.Type,
			Birthday: cur.Pet.Birthday,
		}
		if patch.Name != nil {
			pet.Name = *patch.Name
		}
		if patch.Type != nil {
			pet.Type = *patch.Type
		}
		if patch.Birthday != nil {
			pet.Birthday = *patch.Birthday
		}

		normalized, err := normalizePet(pet)
		if err != nil {
			return err
		}
		cur.Pet = normalized
		return nil
	})
}

func (s *Service) AddOwner(ctx context.Context, in OwnerInput) (Owner, error) {
	var added Owner
	_, err := s.mutate(ctx, func(cur *AppSettings) error {
		o, err := newOwner(in, len(cur.Owners))
		if err != nil {
			return err
		}
		cur.Owners = append(cur.Owners, o)
		added = o
		return nil
	})
	if err != nil {
		return Owner{}, err
	}
	return added, nil
}

type OwnerPatch struct {
	Name  *string
	Color *string
}

func (s *Service) UpdateOwner(ctx context.Context, id string, patch OwnerPatch) (Owner, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Owner{}, ErrInvalidInput
	}

	var updated Owner
	_, err := s.mutate(ctx, func(cur *AppSettings) error {
		idx := indexOf(cur.Owners, id)
		if idx < 0 {
			return ErrNotFound
		}
		o := cur.Owners[idx]
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return ErrInvalidInput
			}
			o.Name = name
		}
		if patch.Color != nil {
			color := strings.TrimSpace(*patch.Color)
			if !hexColor.MatchString(color) {
				return ErrInvalidInput
			}
			o.Color = strings.ToUpper(color)
		}
		cur.Owners[idx] = o
		updated = o
		return nil
	})
	if err != nil {
		return Owner{}, err
	}
	return updated, nil
}

// RemoveOwner quita un dueño del registro. Sus logs históricos no se tocan:
// para scoring su autor pasa a ser "desconocido".
func (s *Service) RemoveOwner(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}

	_, err := s.mutate(ctx, func(cur *AppSettings) error {
		idx := indexOf(cur.Owners, id)
		if idx < 0 {
			return ErrNotFound
		}
		if len(cur.Owners) == 1 {
			return ErrLastOwner
		}
		cur.Owners = append(cur.Owners[:idx], cur.Owners[idx+1:]...)
		return nil
	})
	return err
}

// Owners devuelve el registro ordenado.
func (s *Service) Owners(ctx context.Context) ([]Owner, error) {
	cur, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	return append([]Owner(nil), cur.Owners...), nil
}

// HasOwner implementa carelogs.Household / weightlogs.Household.
func (s *Service) HasOwner(ctx context.Context, ownerID string) (bool, error) {
	cur, err := s.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	_, ok := cur.OwnerByID(ownerID)
	return ok, nil
}

// PetBirthday implementa carelogs.Household.
func (s *Service) PetBirthday(ctx context.Context) (string, error) {
	cur, err := s.repo.Get(ctx)
	if err != nil {
		return "", err
	}
	return cur.Pet.Birthday, nil
}

func (s *Service) mutate(ctx context.Context, fn func(cur *AppSettings) error) (AppSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.repo.Get(ctx)
	if err != nil {
		return AppSettings{}, err
	}
	if !cur.IsConfigured {
		return AppSettings{}, ErrNotConfigured
	}

	next := cur.clone()
	if err := fn(&next); err != nil {
		return AppSettings{}, err
	}
	next.IsConfigured = true

	if err := s.repo.Save(ctx, next); err != nil {
		return AppSettings{}, err
	}
	return next, nil
}

func normalizePet(in PetInput) (PetProfile, error) {
	name := strings.TrimSpace(in.Name)
	birthday := strings.TrimSpace(in.Birthday)
	typ := PetType(strings.ToUpper(strings.TrimSpace(string(in.Type))))
	if typ == "" {
		typ = PetTypeCat
	}

	if name == "" || birthday == "" || !typ.Valid() {
		return PetProfile{}, ErrInvalidInput
	}
	if _, err := time.Parse(birthdayLayout, birthday); err != nil {
		return PetProfile{}, ErrInvalidInput
	}

	return PetProfile{Name: name, Type: typ, Birthday: birthday}, nil
}

func newOwner(in OwnerInput, position int) (Owner, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Owner{}, ErrInvalidInput
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = PaletteColor(position)
	}
	if !hexColor.MatchString(color) {
		return Owner{}, ErrInvalidInput
	}

	return Owner{
		ID:    uuid.NewString(),
		Name:  name,
		Color: strings.ToUpper(color),
	}, nil
}

func indexOf(owners []Owner, id string) int {
	for i, o := range owners {
		if o.ID == id {
			return i
		}
	}
	return -1
}
