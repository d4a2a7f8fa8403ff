package settings

import "strings"

// PetType define las especies soportadas.
// @Enum CAT, DOG
type PetType string

const (
	PetTypeCat PetType = "CAT"
	PetTypeDog PetType = "DOG"
)

func (t PetType) Valid() bool {
	return t == PetTypeCat || t == PetTypeDog
}

// PetProfile es el perfil de la única mascota del hogar.
type PetProfile struct {
	Name     string
	Type     PetType
	Birthday string // YYYY-MM-DD
}

// Owner es un miembro del hogar que registra cuidados y suma puntos.
type Owner struct {
	ID    string
	Name  string
	Color string // hex, ej. #FF6B6B
}

// AppSettings agrupa mascota + registro ordenado de dueños.
// Una vez configurado nunca vuelve a IsConfigured=false.
type AppSettings struct {
	Pet          PetProfile
	Owners       []Owner
	IsConfigured bool
}

// Default es el estado inicial antes del onboarding.
func Default() AppSettings {
	return AppSettings{
		Pet:    PetProfile{Type: PetTypeCat},
		Owners: []Owner{},
	}
}

// OwnerByID busca un dueño por ID.
func (s AppSettings) OwnerByID(id string) (Owner, bool) {
	id = strings.TrimSpace(id)
	for _, o := range s.Owners {
		if o.ID == id {
			return o, true
		}
	}
	return Owner{}, false
}

func (s AppSettings) clone() AppSettings {
	out := s
	out.Owners = append([]Owner(nil), s.Owners...)
	return out
}

// Palette son los colores que se asignan por posición cuando no se indica uno.
var Palette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEEAD",
	"#D4A5A5", "#9B59B6", "#3498DB", "#E67E22", "#2ECC71",
	"#1ABC9C", "#F1C40F", "#E74C3C", "#34495E", "#95A5A6",
	"#D35400", "#C0392B", "#8E44AD", "#2980B9", "#27AE60",
}

// PaletteColor devuelve el color por defecto para la posición i.
func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
