package carelogs

// StoolType describe la observación de heces en la caja de arena.
// Vacío = sin observación.
type StoolType string

const (
	StoolFormed   StoolType = "FORMED"
	StoolUnformed StoolType = "UNFORMED"
	StoolDiarrhea StoolType = "DIARRHEA"
)

func (s StoolType) Valid() bool {
	switch s {
	case "", StoolFormed, StoolUnformed, StoolDiarrhea:
		return true
	default:
		return false
	}
}

// UrineStatus describe la observación de orina. Vacío = sin observación.
type UrineStatus string

const (
	UrinePresent UrineStatus = "HAS_URINE"
	UrineAbsent  UrineStatus = "NO_URINE"
)

func (u UrineStatus) Valid() bool {
	switch u {
	case "", UrinePresent, UrineAbsent:
		return true
	default:
		return false
	}
}

// Category es una dimensión de cuidado que se sigue de forma independiente.
type Category string

const (
	CategoryFood       Category = "food"
	CategoryWater      Category = "water"
	CategoryLitter     Category = "litter"
	CategoryGrooming   Category = "grooming"
	CategoryMedication Category = "medication"
	CategoryWeight     Category = "weight"
)

// Categories en el orden en que se muestran.
var Categories = []Category{
	CategoryFood,
	CategoryWater,
	CategoryLitter,
	CategoryGrooming,
	CategoryMedication,
	CategoryWeight,
}
