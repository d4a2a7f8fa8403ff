package carelogs

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"pet-care-log/internal/platform/logger"
)

// Household evita importar el paquete settings (rompe ciclos).
type Household interface {
	HasOwner(ctx context.Context, ownerID string) (bool, error)
	PetBirthday(ctx context.Context) (string, error)
}

// Recorder recibe eventos de métricas del service. Puede ser nil.
type Recorder interface {
	StatusFallback()
	CareLogWritten(op string)
}

type Config struct {
	Location *time.Location
	Logger   logger.Logger
	Metrics  Recorder
}

type Service struct {
	repo      Repository
	household Household
	loc       *time.Location
	log       logger.Logger
	metrics   Recorder
	now       func() time.Time
}

func NewService(repo Repository, household Household, cfg Config) *Service {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:      repo,
		household: household,
		loc:       loc,
		log:       log.With(map[string]any{"component": "carelogs"}),
		metrics:   cfg.Metrics,
		now:       time.Now,
	}
}

// Location devuelve la zona usada para días y tramos.
func (s *Service) Location() *time.Location {
	return s.loc
}

type LogInput struct {
	// 0 = ahora
	Timestamp     int64
	Actions       Actions
	StoolType     StoolType
	UrineStatus   UrineStatus
	IsLitterClean bool
	Weight        *float64
	Author        string
	Note          string
}

func (in LogInput) toLog(id string) CareLog {
	return CareLog{
		ID:            id,
		Timestamp:     in.Timestamp,
		Actions:       in.Actions,
		StoolType:     in.StoolType,
		UrineStatus:   in.UrineStatus,
		IsLitterClean: in.IsLitterClean,
		Weight:        in.Weight,
		Author:        in.Author,
		Note:          in.Note,
	}
}

func (s *Service) Create(ctx context.Context, in LogInput) (CareLog, error) {
	if in.Timestamp == 0 {
		in.Timestamp = s.now().UnixMilli()
	}

	l := Normalize(in.toLog(""))
	if err := Validate(l); err != nil {
		return CareLog{}, err
	}
	if err := s.checkAuthor(ctx, l.Author); err != nil {
		return CareLog{}, err
	}

	saved, err := s.repo.Create(ctx, l)
	if err != nil {
		return CareLog{}, err
	}
	s.record("create")
	return saved, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (CareLog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareLog{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// Update reemplaza el log completo. Timestamp o autor vacíos conservan los
// actuales. El autor solo se valida si cambió, así los logs de dueños
// eliminados siguen siendo editables.
func (s *Service) Update(ctx context.Context, id string, in LogInput) (CareLog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return CareLog{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return CareLog{}, err
	}
	if in.Timestamp == 0 {
		in.Timestamp = current.Timestamp
	}
	if strings.TrimSpace(in.Author) == "" {
		in.Author = current.Author
	}

	l := Normalize(in.toLog(id))
	if err := Validate(l); err != nil {
		return CareLog{}, err
	}
	if l.Author != current.Author {
		if err := s.checkAuthor(ctx, l.Author); err != nil {
			return CareLog{}, err
		}
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return CareLog{}, err
	}
	s.record("update")
	return l, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record("delete")
	return nil
}

// ClearAll borra toda la colección. Exige confirmar con el cumpleaños de la mascota.
func (s *Service) ClearAll(ctx context.Context, confirmBirthday string) error {
	confirmBirthday = strings.TrimSpace(confirmBirthday)
	if confirmBirthday == "" {
		return ErrConfirmationMismatch
	}
	if s.household == nil {
		return ErrConfirmationMismatch
	}
	birthday, err := s.household.PetBirthday(ctx)
	if err != nil {
		return err
	}
	if birthday == "" || birthday != confirmBirthday {
		return ErrConfirmationMismatch
	}

	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.record("clear")
	s.log.Warn("all care logs cleared", nil)
	return nil
}

// List devuelve los logs ordenados por timestamp desc, filtrados.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]CareLog, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	author := strings.TrimSpace(filter.Author)
	out := make([]CareLog, 0, len(items))
	for _, l := range items {
		if filter.From != nil && l.Timestamp < filter.From.UnixMilli() {
			continue
		}
		if filter.To != nil && l.Timestamp > filter.To.UnixMilli() {
			continue
		}
		if author != "" && l.Author != author {
			continue
		}
		out = append(out, l)
	}

	SortNewestFirst(out)

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// All devuelve la colección completa sin filtrar (para scoring).
func (s *Service) All(ctx context.Context) ([]CareLog, error) {
	return s.repo.List(ctx)
}

// TodayStatus nunca falla: si el gateway no responde devuelve el estado vacío
// para que el dashboard siga renderizando. Devuelve también el instante local
// usado, así fecha y tramo actual salen del mismo reloj que el estado.
func (s *Service) TodayStatus(ctx context.Context) (DayStatus, time.Time) {
	now := s.now().In(s.loc)
	items, err := s.repo.List(ctx)
	if err != nil {
		s.log.Warn("today status fallback", map[string]any{"err": err})
		if s.metrics != nil {
			s.metrics.StatusFallback()
		}
		return EmptyDayStatus(), now
	}
	return TodayStatus(items, now), now
}

func (s *Service) checkAuthor(ctx context.Context, author string) error {
	if s.household == nil {
		return nil
	}
	ok, err := s.household.HasOwner(ctx, author)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownAuthor
	}
	return nil
}

func (s *Service) record(op string) {
	if s.metrics != nil {
		s.metrics.CareLogWritten(op)
	}
}

// SortNewestFirst ordena por timestamp desc; empates por ID para salida estable.
func SortNewestFirst(items []CareLog) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Timestamp != items[j].Timestamp {
			return items[i].Timestamp > items[j].Timestamp
		}
		return items[i].ID < items[j].ID
	})
}

// IsValidationError indica errores que se rechazan antes del gateway.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNoAction) ||
		errors.Is(err, ErrLitterConflict) ||
		errors.Is(err, ErrUnknownAuthor) ||
		errors.Is(err, ErrConfirmationMismatch)
}
