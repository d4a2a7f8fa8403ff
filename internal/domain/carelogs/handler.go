package carelogs

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-log/internal/middleware"
	"pet-care-log/internal/ports/storage"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/logs", func(lr chi.Router) {
		lr.Get("/", listLogsHandler(svc))
		lr.Post("/", createLogHandler(svc))
		lr.Post("/clear", clearLogsHandler(svc))

		lr.Get("/{logID}", getLogHandler(svc))
		lr.Put("/{logID}", updateLogHandler(svc))
		lr.Delete("/{logID}", deleteLogHandler(svc))
	})

	r.Get("/status/today", todayStatusHandler(svc))
}

type actionsPayload struct {
	Food       bool `json:"food"`
	Water      bool `json:"water"`
	Litter     bool `json:"litter"`
	Grooming   bool `json:"grooming"`
	Medication bool `json:"medication"`
}

type logRequest struct {
	// ms desde epoch; 0/omitido = ahora (create) o sin cambio (update)
	Timestamp     int64          `json:"timestamp"`
	Actions       actionsPayload `json:"actions"`
	StoolType     string         `json:"stool_type"`
	UrineStatus   string         `json:"urine_status"`
	IsLitterClean bool           `json:"is_litter_clean"`
	Weight        *float64       `json:"weight"`
	Author        string         `json:"author"` // ID de dueño; requerido al crear, omitido en PUT = sin cambio
	Note          string         `json:"note"`
}

type logResponse struct {
	ID            string         `json:"id"`
	Timestamp     int64          `json:"timestamp"`
	Period        Period         `json:"period"`
	Actions       actionsPayload `json:"actions"`
	StoolType     StoolType      `json:"stool_type,omitempty"`
	UrineStatus   UrineStatus    `json:"urine_status,omitempty"`
	IsLitterClean bool           `json:"is_litter_clean"`
	Badges        []Badge        `json:"badges,omitempty"`
	Weight        *float64       `json:"weight,omitempty"`
	Author        string         `json:"author"`
	Note          string         `json:"note,omitempty"`
}

type clearRequest struct {
	ConfirmBirthday string `json:"confirm_birthday"` // YYYY-MM-DD
}

type progressResponse struct {
	Morning    bool `json:"morning"`
	Noon       bool `json:"noon"`
	Evening    bool `json:"evening"`
	Bedtime    bool `json:"bedtime"`
	IsComplete bool `json:"is_complete"`
}

type statusResponse struct {
	Date          string           `json:"date"` // YYYY-MM-DD local
	CurrentPeriod Period           `json:"current_period"`
	Food          progressResponse `json:"food"`
	Water         progressResponse `json:"water"`
	Litter        progressResponse `json:"litter"`
	Grooming      progressResponse `json:"grooming"`
	Medication    progressResponse `json:"medication"`
	Weight        progressResponse `json:"weight"`
}

// createLogHandler godoc
// @Summary Registrar cuidado
// @Description Crea un log de cuidado. Al menos una acción debe estar marcada. Con arena limpia no se aceptan observaciones de heces u orina. El autor debe ser un dueño registrado.
// @Tags logs
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param payload body logRequest true "Log de cuidado; timestamp en ms"
// @Success 201 {object} logResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 401 {string} string "unauthorized / session expired"
// @Router /logs [post]
func createLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		var req logRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		l, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toLogResponse(l, svc.Location()))
	}
}

// listLogsHandler godoc
// @Summary Listar logs
// @Description Devuelve los logs ordenados del más reciente al más antiguo.
// @Tags logs
// @Produce json
// @Param from query string false "Desde (RFC3339, inclusive)"
// @Param to query string false "Hasta (RFC3339, inclusive)"
// @Param author query string false "ID de dueño"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} logResponse
// @Failure 400 {string} string "from/to must be RFC3339 / invalid limit"
// @Failure 401 {string} string "unauthorized / session expired"
// @Router /logs [get]
func listLogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		q := r.URL.Query()
		filter := ListFilter{Author: q.Get("author")}

		if v := strings.TrimSpace(q.Get("from")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "from must be RFC3339", http.StatusBadRequest)
				return
			}
			filter.From = &t
		}
		if v := strings.TrimSpace(q.Get("to")); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, "to must be RFC3339", http.StatusBadRequest)
				return
			}
			filter.To = &t
		}
		if v := strings.TrimSpace(q.Get("limit")); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			filter.Limit = n
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}

		out := make([]logResponse, 0, len(items))
		for _, l := range items {
			out = append(out, toLogResponse(l, svc.Location()))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getLogHandler godoc
// @Summary Obtener log
// @Tags logs
// @Produce json
// @Param logID path string true "ID del log"
// @Success 200 {object} logResponse
// @Failure 404 {string} string "care log not found"
// @Router /logs/{logID} [get]
func getLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		l, err := svc.GetByID(r.Context(), chi.URLParam(r, "logID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLogResponse(l, svc.Location()))
	}
}

// updateLogHandler godoc
// @Summary Reemplazar log
// @Description Reemplaza el log completo (mismo ID). Si se omiten timestamp o author se conservan los originales.
// @Tags logs
// @Accept json
// @Produce json
// @Param logID path string true "ID del log"
// @Param payload body logRequest true "Log completo"
// @Success 200 {object} logResponse
// @Failure 400 {string} string "invalid json / reglas de validación"
// @Failure 404 {string} string "care log not found"
// @Router /logs/{logID} [put]
func updateLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		var req logRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		l, err := svc.Update(r.Context(), chi.URLParam(r, "logID"), req.toInput())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toLogResponse(l, svc.Location()))
	}
}

// deleteLogHandler godoc
// @Summary Eliminar log
// @Tags logs
// @Param logID path string true "ID del log"
// @Success 204
// @Failure 404 {string} string "care log not found"
// @Router /logs/{logID} [delete]
func deleteLogHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "logID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// clearLogsHandler godoc
// @Summary Borrar todos los logs
// @Description Vacía la colección. Hay que confirmar con el cumpleaños de la mascota.
// @Tags logs
// @Accept json
// @Param payload body clearRequest true "Confirmación"
// @Success 204
// @Failure 400 {string} string "confirmation does not match pet birthday"
// @Router /logs/clear [post]
func clearLogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		var req clearRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.ClearAll(r.Context(), req.ConfirmBirthday); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// todayStatusHandler godoc
// @Summary Estado de hoy
// @Description Progreso por categoría y tramo del día local. Si el almacenamiento falla devuelve todo en false.
// @Tags status
// @Produce json
// @Success 200 {object} statusResponse
// @Failure 401 {string} string "unauthorized"
// @Router /status/today [get]
func todayStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := authorized(w, r); !ok {
			return
		}

		s, now := svc.TodayStatus(r.Context())

		writeJSON(w, http.StatusOK, statusResponse{
			Date:          now.Format("2006-01-02"),
			CurrentPeriod: PeriodOf(now),
			Food:          toProgressResponse(s.Food),
			Water:         toProgressResponse(s.Water),
			Litter:        toProgressResponse(s.Litter),
			Grooming:      toProgressResponse(s.Grooming),
			Medication:    toProgressResponse(s.Medication),
			Weight:        toProgressResponse(s.Weight),
		})
	}
}

func (req logRequest) toInput() LogInput {
	return LogInput{
		Timestamp: req.Timestamp,
		Actions: Actions{
			Food:       req.Actions.Food,
			Water:      req.Actions.Water,
			Litter:     req.Actions.Litter,
			Grooming:   req.Actions.Grooming,
			Medication: req.Actions.Medication,
		},
		StoolType:     StoolType(strings.ToUpper(strings.TrimSpace(req.StoolType))),
		UrineStatus:   UrineStatus(strings.ToUpper(strings.TrimSpace(req.UrineStatus))),
		IsLitterClean: req.IsLitterClean,
		Weight:        req.Weight,
		Author:        req.Author,
		Note:          req.Note,
	}
}

func toLogResponse(l CareLog, loc *time.Location) logResponse {
	return logResponse{
		ID:        l.ID,
		Timestamp: l.Timestamp,
		Period:    PeriodAt(l.Timestamp, loc),
		Actions: actionsPayload{
			Food:       l.Actions.Food,
			Water:      l.Actions.Water,
			Litter:     l.Actions.Litter,
			Grooming:   l.Actions.Grooming,
			Medication: l.Actions.Medication,
		},
		StoolType:     l.StoolType,
		UrineStatus:   l.UrineStatus,
		IsLitterClean: l.IsLitterClean,
		Badges:        LitterBadges(l),
		Weight:        l.Weight,
		Author:        l.Author,
		Note:          l.Note,
	}
}

func toProgressResponse(p TaskProgress) progressResponse {
	return progressResponse{
		Morning:    p.Morning,
		Noon:       p.Noon,
		Evening:    p.Evening,
		Bedtime:    p.Bedtime,
		IsComplete: p.IsComplete,
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
	case IsValidationError(err):
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
