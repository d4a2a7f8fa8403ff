package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-care-log/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// Headers de modo dev (sin verifier).
const (
	DebugUserHeader      = "X-Debug-User-ID"
	DebugHouseholdHeader = "X-Debug-Household-ID"
)

// AuthContext:
// - verifier != nil: Bearer token => Verify() y setea claims.
// - verifier == nil: modo dev, claims desde X-Debug-User-ID / X-Debug-Household-ID.
// - Sin claims el request sigue; cada handler responde 401.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
				if uid == "" {
					next.ServeHTTP(w, r)
					return
				}
				next.ServeHTTP(w, withClaims(r, auth.Claims{
					UserID:      uid,
					HouseholdID: strings.TrimSpace(r.Header.Get(DebugHouseholdHeader)),
				}))
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				// token inválido = anónimo
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, withClaims(r, claims))
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func withClaims(r *http.Request, c auth.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, c))
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
