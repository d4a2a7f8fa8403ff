package carelogs

import "time"

// TaskProgress marca en qué tramos del día se atendió una categoría.
type TaskProgress struct {
	Morning    bool
	Noon       bool
	Evening    bool
	Bedtime    bool
	IsComplete bool
}

func (p *TaskProgress) mark(period Period) {
	switch period {
	case PeriodMorning:
		p.Morning = true
	case PeriodNoon:
		p.Noon = true
	case PeriodEvening:
		p.Evening = true
	case PeriodBedtime:
		p.Bedtime = true
	}
}

func (p *TaskProgress) finish() {
	p.IsComplete = p.Morning && p.Noon && p.Evening && p.Bedtime
}

// Done indica si el tramo period ya fue atendido.
func (p TaskProgress) Done(period Period) bool {
	switch period {
	case PeriodMorning:
		return p.Morning
	case PeriodNoon:
		return p.Noon
	case PeriodEvening:
		return p.Evening
	case PeriodBedtime:
		return p.Bedtime
	default:
		return false
	}
}

// DayStatus tiene un campo fijo por categoría (sin mapas).
type DayStatus struct {
	Food       TaskProgress
	Water      TaskProgress
	Litter     TaskProgress
	Grooming   TaskProgress
	Medication TaskProgress
	Weight     TaskProgress
}

// EmptyDayStatus es el estado "nada hecho"; también se usa como fallback.
func EmptyDayStatus() DayStatus {
	return DayStatus{}
}

// Progress devuelve el progreso de una categoría.
func (s DayStatus) Progress(c Category) TaskProgress {
	if p := s.progress(c); p != nil {
		return *p
	}
	return TaskProgress{}
}

func (s *DayStatus) progress(c Category) *TaskProgress {
	switch c {
	case CategoryFood:
		return &s.Food
	case CategoryWater:
		return &s.Water
	case CategoryLitter:
		return &s.Litter
	case CategoryGrooming:
		return &s.Grooming
	case CategoryMedication:
		return &s.Medication
	case CategoryWeight:
		return &s.Weight
	default:
		return nil
	}
}

// CategoriesOf devuelve las categorías que cubre un log.
// Para weight cuenta la presencia del peso, no un flag de acción.
func CategoriesOf(l CareLog) []Category {
	out := make([]Category, 0, len(Categories))
	if l.Actions.Food {
		out = append(out, CategoryFood)
	}
	if l.Actions.Water {
		out = append(out, CategoryWater)
	}
	if l.Actions.Litter {
		out = append(out, CategoryLitter)
	}
	if l.Actions.Grooming {
		out = append(out, CategoryGrooming)
	}
	if l.Actions.Medication {
		out = append(out, CategoryMedication)
	}
	if l.HasWeight() {
		out = append(out, CategoryWeight)
	}
	return out
}

// TodayStatus calcula el estado del día local de now.
// Solo cuentan logs con timestamp en [medianoche, medianoche siguiente).
func TodayStatus(logs []CareLog, now time.Time) DayStatus {
	start := StartOfDay(now)
	end := start.AddDate(0, 0, 1)
	return Aggregate(logs, now.Location(), start.UnixMilli(), end.UnixMilli())
}

// Aggregate acumula (OR) los tramos de los logs en [fromMs, toMs).
func Aggregate(logs []CareLog, loc *time.Location, fromMs, toMs int64) DayStatus {
	var status DayStatus

	for _, l := range logs {
		if l.Timestamp < fromMs || l.Timestamp >= toMs {
			continue
		}
		period := PeriodAt(l.Timestamp, loc)
		for _, c := range CategoriesOf(l) {
			status.progress(c).mark(period)
		}
	}

	for _, c := range Categories {
		status.progress(c).finish()
	}
	return status
}
