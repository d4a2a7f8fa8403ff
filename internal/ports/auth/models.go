package auth

// Claims representa la información extraída del token.
type Claims struct {
	UserID      string
	Email       string
	HouseholdID string // opcional; un despliegue sirve a un solo hogar
}
