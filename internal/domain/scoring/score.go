package scoring

import (
	"strings"
	"time"

	"pet-care-log/internal/domain/carelogs"
	"pet-care-log/internal/domain/settings"
)

// Puntos por acción.
const (
	PointsLitterClean = 1
	PointsLitterDirty = 4
	PointsFood        = 2
	PointsWater       = 2
	PointsMedication  = 2
	PointsWeighing    = 2
	PointsGrooming    = 3
)

// WeekDays es el largo de la serie diaria (hoy incluido).
const WeekDays = 7

// Points devuelve los puntos aditivos de un log.
func Points(l carelogs.CareLog) int {
	p := 0
	if l.Actions.Litter {
		if l.IsLitterClean {
			p += PointsLitterClean
		} else {
			p += PointsLitterDirty
		}
	}
	if l.Actions.Food {
		p += PointsFood
	}
	if l.Actions.Water {
		p += PointsWater
	}
	if l.Actions.Medication {
		p += PointsMedication
	}
	if l.HasWeight() {
		p += PointsWeighing
	}
	if l.Actions.Grooming {
		p += PointsGrooming
	}
	return p
}

// DayScore son los puntos de un día local, uno por dueño en orden de registro.
type DayScore struct {
	Date   time.Time // medianoche local
	Points []int
}

// OwnerTotal acumula los puntos de un dueño.
type OwnerTotal struct {
	Owner  settings.Owner
	Points int
}

// DailySeries arma los últimos 7 días locales terminando en el día de now,
// del más antiguo al más reciente.
func DailySeries(logs []carelogs.CareLog, owners []settings.Owner, now time.Time) []DayScore {
	today := carelogs.StartOfDay(now)

	// bounds[i] = inicio del día i; bounds[WeekDays] = inicio de mañana.
	// AddDate respeta cambios de horario.
	bounds := make([]int64, WeekDays+1)
	for i := 0; i <= WeekDays; i++ {
		bounds[i] = today.AddDate(0, 0, i-(WeekDays-1)).UnixMilli()
	}

	series := make([]DayScore, WeekDays)
	for i := range series {
		series[i] = DayScore{
			Date:   today.AddDate(0, 0, i-(WeekDays-1)),
			Points: make([]int, len(owners)),
		}
	}

	for _, l := range logs {
		if l.Timestamp < bounds[0] || l.Timestamp >= bounds[WeekDays] {
			continue
		}
		idx := authorIndex(owners, l.Author)
		if idx < 0 {
			continue
		}
		day := dayIndex(bounds, l.Timestamp)
		series[day].Points[idx] += Points(l)
	}
	return series
}

// WeeklyTotals suma la serie por dueño.
func WeeklyTotals(series []DayScore, owners []settings.Owner) []OwnerTotal {
	totals := newTotals(owners)
	for _, d := range series {
		for i := range totals {
			if i < len(d.Points) {
				totals[i].Points += d.Points[i]
			}
		}
	}
	return totals
}

// AllTimeTotals suma todos los logs sin filtro de fecha.
func AllTimeTotals(logs []carelogs.CareLog, owners []settings.Owner) []OwnerTotal {
	totals := newTotals(owners)
	for _, l := range logs {
		if idx := authorIndex(owners, l.Author); idx >= 0 {
			totals[idx].Points += Points(l)
		}
	}
	return totals
}

func newTotals(owners []settings.Owner) []OwnerTotal {
	out := make([]OwnerTotal, len(owners))
	for i, o := range owners {
		out[i] = OwnerTotal{Owner: o}
	}
	return out
}

// authorIndex matchea por ID y, para logs viejos que guardaban el nombre,
// por nombre exacto. -1 = autor desconocido (no suma).
func authorIndex(owners []settings.Owner, author string) int {
	author = strings.TrimSpace(author)
	if author == "" {
		return -1
	}
	for i, o := range owners {
		if o.ID == author {
			return i
		}
	}
	for i, o := range owners {
		if o.Name == author {
			return i
		}
	}
	return -1
}

func dayIndex(bounds []int64, ts int64) int {
	for i := 0; i < len(bounds)-1; i++ {
		if ts < bounds[i+1] {
			return i
		}
	}
	return len(bounds) - 2
}
