package carelogs

import "time"

type Actions struct {
	Food       bool
	Water      bool
	Litter     bool
	Grooming   bool
	Medication bool
}

// Any indica si al menos una acción está marcada.
func (a Actions) Any() bool {
	return a.Food || a.Water || a.Litter || a.Grooming || a.Medication
}

// CareLog es un evento de cuidado. Se reemplaza completo al editar.
type CareLog struct {
	ID string

	// Timestamp en milisegundos desde epoch (editable por el usuario).
	Timestamp int64

	Actions Actions

	// Solo aplican si Actions.Litter y !IsLitterClean.
	StoolType   StoolType
	UrineStatus UrineStatus

	IsLitterClean bool

	// Peso en kg; nil = no hubo pesaje.
	Weight *float64

	Author string
	Note   string
}

// HasWeight indica un evento de pesaje.
func (l CareLog) HasWeight() bool {
	return l.Weight != nil
}

// HasLitterObservation indica si hay observación de heces u orina.
func (l CareLog) HasLitterObservation() bool {
	return l.StoolType != "" || l.UrineStatus != ""
}

// Time devuelve el timestamp como time.Time en loc.
func (l CareLog) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(l.Timestamp).In(loc)
}
