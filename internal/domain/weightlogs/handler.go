package weightlogs

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
	r.Route("/weights", func(wr chi.Router) {
		wr.Get("/", listWeightsHandler(svc))
		wr.Get("/latest", latestWeightHandler(svc))
		wr.Post("/", createWeightHandler(svc))
		wr.Put("/{weightID}", updateWeightHandler(svc))
		wr.Delete("/{weightID}", deleteWeightHandler(svc))
	})
}

type weightRequest struct {
	Timestamp int64   `json:"timestamp"` // ms; 0 = ahora
	Weight    float64 `json:"weight"`    // kg
	Author    string  `json:"author"`    // ID de dueño; omitido en PUT = sin cambio
}

type weightResponse struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	Weight    float64 `json:"weight"`
	Author    string  `json:"author"`
}

// listWeightsHandler godoc
// @Summary Listar pesajes
// @Tags weights
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {array} weightResponse
// @Failure 401 {string} string "unauthorized / session expired"
// @Router /weights [get]
func listWeightsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]weightResponse, 0, len(items))
		for _, wl := range items {
			out = append(out, toWeightResponse(wl))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// latestWeightHandler godoc
// @Summary Último pesaje
// @Tags weights
// @Produce json
// @Success 200 {object} weightResponse
// @Failure 404 {string} string "weight log not found"
// @Router /weights/latest [get]
func latestWeightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		wl, err := svc.Latest(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toWeightResponse(wl))
	}
}

// createWeightHandler godoc
// @Summary Registrar pesaje
// @Tags weights
// @Accept json
// @Produce json
// @Param payload body weightRequest true "Peso en kg (> 0)"
// @Success 201 {object} weightResponse
// @Failure 400 {string} string "invalid input"
// @Router /weights [post]
func createWeightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		var req weightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		wl, err := svc.Create(r.Context(), Input(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toWeightResponse(wl))
	}
}

// updateWeightHandler godoc
// @Summary Corregir pesaje
// @Tags weights
// @Accept json
// @Produce json
// @Param weightID path string true "ID del pesaje"
// @Param payload body weightRequest true "Pesaje completo"
// @Success 200 {object} weightResponse
// @Failure 400 {string} string "invalid input"
// @Failure 404 {string} string "weight log not found"
// @Router /weights/{weightID} [put]
func updateWeightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		var req weightRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		wl, err := svc.Update(r.Context(), chi.URLParam(r, "weightID"), Input(req))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toWeightResponse(wl))
	}
}

// deleteWeightHandler godoc
// @Summary Eliminar pesaje
// @Tags weights
// @Param weightID path string true "ID del pesaje"
// @Success 204
// @Failure 404 {string} string "weight log not found"
// @Router /weights/{weightID} [delete]
func deleteWeightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "weightID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toWeightResponse(wl WeightLog) weightResponse {
	return weightResponse{
		ID:        wl.ID,
		Timestamp: wl.Timestamp,
		Weight:    wl.Weight,
		Author:    wl.Author,
	}
}

func authorized(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrUnauthorized):
		http.Error(w, "session expired", http.StatusUnauthorized)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrUnknownAuthor):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
