package carelogs

import "time"

// Period es uno de los cuatro tramos fijos del día local.
type Period string

const (
	PeriodMorning Period = "morning" // 00:00 - 10:59
	PeriodNoon    Period = "noon"    // 11:00 - 15:59
	PeriodEvening Period = "evening" // 16:00 - 20:59
	PeriodBedtime Period = "bedtime" // 21:00 - 23:59
)

// Periods en orden cronológico.
var Periods = []Period{PeriodMorning, PeriodNoon, PeriodEvening, PeriodBedtime}

const (
	noonStartHour    = 11
	eveningStartHour = 16
	bedtimeStartHour = 21
)

// PeriodOf clasifica t según su hora en la location de t.
func PeriodOf(t time.Time) Period {
	h := t.Hour()
	switch {
	case h < noonStartHour:
		return PeriodMorning
	case h < eveningStartHour:
		return PeriodNoon
	case h < bedtimeStartHour:
		return PeriodEvening
	default:
		return PeriodBedtime
	}
}

// PeriodAt clasifica un timestamp en ms usando loc (nil = time.Local).
func PeriodAt(ms int64, loc *time.Location) Period {
	if loc == nil {
		loc = time.Local
	}
	return PeriodOf(time.UnixMilli(ms).In(loc))
}

// StartOfDay devuelve la medianoche local del día de t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
