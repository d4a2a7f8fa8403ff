package scoring

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
	r.Route("/scores", func(sr chi.Router) {
		sr.Get("/weekly", weeklyHandler(svc))
		sr.Get("/all-time", allTimeHandler(svc))
	})
}

type ownerPointsResponse struct {
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	Points  int    `json:"points"`
}

type dayResponse struct {
	Date   string                `json:"date"` // YYYY-MM-DD local
	Owners []ownerPointsResponse `json:"owners"`
}

type rankingResponse struct {
	Kind    RankKind              `json:"kind"` // none | winner | tie
	Leaders []ownerPointsResponse `json:"leaders"`
	Points  int                   `json:"points"`
}

type weeklyResponse struct {
	Days    []dayResponse         `json:"days"`
	Totals  []ownerPointsResponse `json:"totals"`
	Ranking rankingResponse       `json:"ranking"`
}

type allTimeResponse struct {
	Totals  []ownerPointsResponse `json:"totals"`
	Ranking rankingResponse       `json:"ranking"`
}

// weeklyHandler godoc
// @Summary Puntajes de la semana
// @Description Puntos por dueño de los últimos 7 días locales (del más antiguo a hoy), totales y favorito. Los logs de autores desconocidos no suman.
// @Tags scores
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {object} weeklyResponse
// @Failure 401 {string} string "unauthorized / session expired"
// @Router /scores/weekly [get]
func weeklyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		wk, err := svc.Weekly(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		days := make([]dayResponse, 0, len(wk.Days))
		for _, d := range wk.Days {
			row := make([]ownerPointsResponse, 0, len(wk.Totals))
			for i, o := range wk.Totals {
				row = append(row, toOwnerPoints(OwnerTotal{Owner: o.Owner, Points: d.Points[i]}))
			}
			days = append(days, dayResponse{Date: d.Date.Format("2006-01-02"), Owners: row})
		}

		writeJSON(w, http.StatusOK, weeklyResponse{
			Days:    days,
			Totals:  toTotals(wk.Totals),
			Ranking: toRanking(wk.Ranking),
		})
	}
}

// allTimeHandler godoc
// @Summary Puntajes históricos
// @Tags scores
// @Produce json
// @Success 200 {object} allTimeResponse
// @Failure 401 {string} string "unauthorized / session expired"
// @Router /scores/all-time [get]
func allTimeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}

		at, err := svc.AllTime(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, allTimeResponse{
			Totals:  toTotals(at.Totals),
			Ranking: toRanking(at.Ranking),
		})
	}
}

func toOwnerPoints(t OwnerTotal) ownerPointsResponse {
	return ownerPointsResponse{
		OwnerID: t.Owner.ID,
		Name:    t.Owner.Name,
		Color:   t.Owner.Color,
		Points:  t.Points,
	}
}

func toTotals(totals []OwnerTotal) []ownerPointsResponse {
	out := make([]ownerPointsResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, toOwnerPoints(t))
	}
	return out
}

func toRanking(rk Ranking) rankingResponse {
	leaders := make([]ownerPointsResponse, 0, len(rk.Leaders))
	for _, o := range rk.Leaders {
		leaders = append(leaders, toOwnerPoints(OwnerTotal{Owner: o, Points: rk.Points}))
	}
	return rankingResponse{Kind: rk.Kind, Leaders: leaders, Points: rk.Points}
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
	if errors.Is(err, storage.ErrUnauthorized) {
		http.Error(w, "session expired", http.StatusUnauthorized)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
