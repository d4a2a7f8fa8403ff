package weightlogs

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("weight log not found")
	ErrUnknownAuthor = errors.New("author is not a registered owner")
)

// OwnerLookup evita importar el paquete settings.
type OwnerLookup interface {
	HasOwner(ctx context.Context, ownerID string) (bool, error)
}

type Service struct {
	repo   Repository
	owners OwnerLookup
	now    func() time.Time
}

func NewService(repo Repository, owners OwnerLookup) *Service {
	return &Service{
		repo:   repo,
		owners: owners,
		now:    time.Now,
	}
}

type Input struct {
	Timestamp int64 // 0 = ahora
	Weight    float64
	Author    string
}

func (s *Service) Create(ctx context.Context, in Input) (WeightLog, error) {
	if in.Timestamp == 0 {
		in.Timestamp = s.now().UnixMilli()
	}
	w, err := s.validate(ctx, "", in, "")
	if err != nil {
		return WeightLog{}, err
	}
	return s.repo.Create(ctx, w)
}

func (s *Service) Update(ctx context.Context, id string, in Input) (WeightLog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return WeightLog{}, ErrInvalidInput
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return WeightLog{}, err
	}
	if in.Timestamp == 0 {
		in.Timestamp = current.Timestamp
	}
	if strings.TrimSpace(in.Author) == "" {
		in.Author = current.Author
	}

	w, err := s.validate(ctx, id, in, current.Author)
	if err != nil {
		return WeightLog{}, err
	}
	if err := s.repo.Update(ctx, w); err != nil {
		return WeightLog{}, err
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// List devuelve los pesajes del más reciente al más antiguo.
func (s *Service) List(ctx context.Context) ([]WeightLog, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := append([]WeightLog(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

// Latest devuelve el último pesaje; ErrNotFound si no hay ninguno.
func (s *Service) Latest(ctx context.Context) (WeightLog, error) {
	items, err := s.List(ctx)
	if err != nil {
		return WeightLog{}, err
	}
	if len(items) == 0 {
		return WeightLog{}, ErrNotFound
	}
	return items[0], nil
}

func (s *Service) validate(ctx context.Context, id string, in Input, currentAuthor string) (WeightLog, error) {
	author := strings.TrimSpace(in.Author)
	if author == "" || in.Weight <= 0 || in.Timestamp <= 0 {
		return WeightLog{}, ErrInvalidInput
	}
	if s.owners != nil && author != currentAuthor {
		ok, err := s.owners.HasOwner(ctx, author)
		if err != nil {
			return WeightLog{}, err
		}
		if !ok {
			return WeightLog{}, ErrUnknownAuthor
		}
	}
	return WeightLog{
		ID:        id,
		Timestamp: in.Timestamp,
		Weight:    in.Weight,
		Author:    author,
	}, nil
}
