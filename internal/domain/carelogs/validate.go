package carelogs

import (
	"errors"
	"strings"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNoAction       = errors.New("at least one action is required")
	ErrLitterConflict = errors.New("litter cannot be clean and have stool/urine observations")
	ErrNotFound       = errors.New("care log not found")
	ErrUnknownAuthor  = errors.New("author is not a registered owner")

	ErrConfirmationMismatch = errors.New("confirmation does not match pet birthday")
)

// Normalize limpia espacios y descarta el detalle de arena si no hubo litter.
func Normalize(l CareLog) CareLog {
	l.Author = strings.TrimSpace(l.Author)
	l.Note = strings.TrimSpace(l.Note)
	if !l.Actions.Litter {
		l.StoolType = ""
		l.UrineStatus = ""
		l.IsLitterClean = false
	}
	return l
}

// Validate aplica las reglas de escritura. Se llama antes de tocar el gateway.
func Validate(l CareLog) error {
	if !l.Actions.Any() {
		return ErrNoAction
	}
	if l.Timestamp <= 0 || strings.TrimSpace(l.Author) == "" {
		return ErrInvalidInput
	}
	if !l.StoolType.Valid() || !l.UrineStatus.Valid() {
		return ErrInvalidInput
	}
	if l.Weight != nil && *l.Weight <= 0 {
		return ErrInvalidInput
	}
	// Limpia XOR observación: nunca ambas.
	if l.Actions.Litter && l.IsLitterClean && l.HasLitterObservation() {
		return ErrLitterConflict
	}
	if !l.Actions.Litter && (l.IsLitterClean || l.HasLitterObservation()) {
		return ErrInvalidInput
	}
	return nil
}

// Badge es una etiqueta de detalle de arena para mostrar en la UI.
type Badge string

const (
	BadgeClean    Badge = "CLEAN"
	BadgeUrine    Badge = Badge(UrinePresent)
	BadgeNoUrine  Badge = Badge(UrineAbsent)
	BadgeFormed   Badge = Badge(StoolFormed)
	BadgeUnformed Badge = Badge(StoolUnformed)
	BadgeDiarrhea Badge = Badge(StoolDiarrhea)
)

// LitterBadges devuelve las etiquetas de detalle de un log.
// Un log limpio solo aporta CLEAN; nunca orina/heces.
func LitterBadges(l CareLog) []Badge {
	if !l.Actions.Litter {
		return nil
	}
	if l.IsLitterClean {
		return []Badge{BadgeClean}
	}
	out := make([]Badge, 0, 2)
	if l.UrineStatus != "" {
		out = append(out, Badge(l.UrineStatus))
	}
	if l.StoolType != "" {
		out = append(out, Badge(l.StoolType))
	}
	return out
}
