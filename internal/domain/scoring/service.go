package scoring

import (
	"context"
	"time"

	"pet-care-log/internal/domain/carelogs"
	"pet-care-log/internal/domain/settings"
)

// LogSource es la lectura completa de la colección de logs.
type LogSource interface {
	All(ctx context.Context) ([]carelogs.CareLog, error)
}

// OwnerSource devuelve el registro ordenado de dueños.
type OwnerSource interface {
	Owners(ctx context.Context) ([]settings.Owner, error)
}

type Service struct {
	logs   LogSource
	owners OwnerSource
	loc    *time.Location
	now    func() time.Time
}

func NewService(logs LogSource, owners OwnerSource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		logs:   logs,
		owners: owners,
		loc:    loc,
		now:    time.Now,
	}
}

type Weekly struct {
	Days    []DayScore
	Totals  []OwnerTotal
	Ranking Ranking
}

type AllTime struct {
	Totals  []OwnerTotal
	Ranking Ranking
}

func (s *Service) Weekly(ctx context.Context) (Weekly, error) {
	logs, owners, err := s.load(ctx)
	if err != nil {
		return Weekly{}, err
	}

	days := DailySeries(logs, owners, s.now().In(s.loc))
	totals := WeeklyTotals(days, owners)
	return Weekly{
		Days:    days,
		Totals:  totals,
		Ranking: Rank(totals),
	}, nil
}

func (s *Service) AllTime(ctx context.Context) (AllTime, error) {
	logs, owners, err := s.load(ctx)
	if err != nil {
		return AllTime{}, err
	}

	totals := AllTimeTotals(logs, owners)
	return AllTime{
		Totals:  totals,
		Ranking: Rank(totals),
	}, nil
}

func (s *Service) load(ctx context.Context) ([]carelogs.CareLog, []settings.Owner, error) {
	owners, err := s.owners.Owners(ctx)
	if err != nil {
		return nil, nil, err
	}
	logs, err := s.logs.All(ctx)
	if err != nil {
		return nil, nil, err
	}
	return logs, owners, nil
}
