package settings

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-care-log/internal/middleware"
	"pet-care-log/internal/ports/storage"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/settings", func(sr chi.Router) {
		sr.Get("/", getSettingsHandler(svc))
		sr.Post("/onboarding", onboardHandler(svc))
		sr.Patch("/pet", updatePetHandler(svc))

		sr.Post("/owners", addOwnerHandler(svc))
		sr.Patch("/owners/{ownerID}", updateOwnerHandler(svc))
		sr.Delete("/owners/{ownerID}", removeOwnerHandler(svc))
	})
}

type petRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`     // CAT | DOG
	Birthday string `json:"birthday"` // YYYY-MM-DD
}

type ownerRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"` // opcional, #RRGGBB
}

type onboardRequest struct {
	Pet    petRequest     `json:"pet"`
	Owners []ownerRequest `json:"owners"`
}

type updatePetRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Birthday *string `json:"birthday"`
}

type updateOwnerRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type petResponse struct {
	Name     string  `json:"name"`
	Type     PetType `json:"type"`
	Birthday string  `json:"birthday"`
}

type ownerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type settingsResponse struct {
	Pet          petResponse     `json:"pet"`
	Owners       []ownerResponse `json:"owners"`
	IsConfigured bool            `json:"is_configured"`
}

// getSettingsHandler godoc
// @Summary Obtener configuración del hogar
// @Description Devuelve mascota, dueños y si el onboarding ya se hizo. Sin documento guardado devuelve la configuración por defecto (no configurada).
// @Tags settings
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} settingsResponse
// @Failure 401 {string} string "unauthorized / session expired"
// @Router /settings [get]
func getSettingsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		s, err := svc.Get(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(s))
	}
}

// onboardHandler godoc
// @Summary Onboarding inicial
// @Description Configura mascota y dueños una única vez. Requiere nombre y cumpleaños de la mascota y al menos un dueño con nombre.
// @Tags settings
// @Accept json
// @Produce json
// @Param payload body onboardRequest true "Mascota y dueños"
// @Success 201 {object} settingsResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized / session expired"
// @Failure 409 {string} string "settings already configured"
// @Router /settings/onboarding [post]
func onboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		var req onboardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := OnboardInput{
			Pet: PetInput{
				Name:     req.Pet.Name,
				Type:     PetType(req.Pet.Type),
				Birthday: req.Pet.Birthday,
			},
		}
		for _, o := range req.Owners {
			in.Owners = append(in.Owners, OwnerInput{Name: o.Name, Color: o.Color})
		}

		s, err := svc.Onboard(r.Context(), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSettingsResponse(s))
	}
}

// updatePetHandler godoc
// @Summary Actualizar perfil de la mascota
// @Tags settings
// @Accept json
// @Produce json
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} settingsResponse
// @Failure 400 {string} string "invalid input"
// @Failure 409 {string} string "settings not configured"
// @Router /settings/pet [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		patch := PetPatch{Name: req.Name, Birthday: req.Birthday}
		if req.Type != nil {
			t := PetType(*req.Type)
			patch.Type = &t
		}

		s, err := svc.UpdatePet(r.Context(), patch)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSettingsResponse(s))
	}
}

// addOwnerHandler godoc
// @Summary Agregar dueño
// @Tags settings
// @Accept json
// @Produce json
// @Param payload body ownerRequest true "Dueño; color opcional"
// @Success 201 {object} ownerResponse
// @Failure 400 {string} string "invalid input"
// @Failure 409 {string} string "settings not configured"
// @Router /settings/owners [post]
func addOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		var req ownerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.AddOwner(r.Context(), OwnerInput{Name: req.Name, Color: req.Color})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toOwnerResponse(o))
	}
}

// updateOwnerHandler godoc
// @Summary Renombrar o recolorear dueño
// @Tags settings
// @Accept json
// @Produce json
// @Param ownerID path string true "ID del dueño"
// @Param payload body updateOwnerRequest true "Campos a modificar"
// @Success 200 {object} ownerResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "owner not found"
// @Router /settings/owners/{ownerID} [patch]
func updateOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		var req updateOwnerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		o, err := svc.UpdateOwner(r.Context(), chi.URLParam(r, "ownerID"), OwnerPatch{
			Name:  req.Name,
			Color: req.Color,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toOwnerResponse(o))
	}
}

// removeOwnerHandler godoc
// @Summary Eliminar dueño
// @Description No se puede eliminar el último dueño. Los logs del dueño eliminado se conservan.
// @Tags settings
// @Param ownerID path string true "ID del dueño"
// @Success 204
// @Failure 404 {string} string "owner not found"
// @Failure 409 {string} string "cannot remove the last owner"
// @Router /settings/owners/{ownerID} [delete]
func removeOwnerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		if err := svc.RemoveOwner(r.Context(), chi.URLParam(r, "ownerID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toSettingsResponse(s AppSettings) settingsResponse {
	owners := make([]ownerResponse, 0, len(s.Owners))
	for _, o := range s.Owners {
		owners = append(owners, toOwnerResponse(o))
	}
	return settingsResponse{
		Pet: petResponse{
			Name:     s.Pet.Name,
			Type:     s.Pet.Type,
			Birthday: s.Pet.Birthday,
		},
		Owners:       owners,
		IsConfigured: s.IsConfigured,
	}
}

func toOwnerResponse(o Owner) ownerResponse {
	return ownerResponse{ID: o.ID, Name: o.Name, Color: o.Color}
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrUnauthorized):
		http.Error(w, "session expired", http.StatusUnauthorized)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrLastOwner),
		errors.Is(err, ErrNotConfigured),
		errors.Is(err, ErrAlreadyConfigured):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON duplicado por módulo, igual que en carelogs/scoring/weightlogs.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
