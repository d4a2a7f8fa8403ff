package scoring

import "pet-care-log/internal/domain/settings"

// RankKind resume el resultado del ranking.
type RankKind string

const (
	RankNone   RankKind = "none"   // nadie sumó puntos
	RankWinner RankKind = "winner" // un único favorito
	RankTie    RankKind = "tie"    // varios empatados en el máximo
)

type Ranking struct {
	Kind    RankKind
	Leaders []settings.Owner
	Points  int
}

// Rank elige al "favorito" de la mascota.
func Rank(totals []OwnerTotal) Ranking {
	top := 0
	for _, t := range totals {
		if t.Points > top {
			top = t.Points
		}
	}
	if top <= 0 {
		return Ranking{Kind: RankNone}
	}

	var leaders []settings.Owner
	for _, t := range totals {
		if t.Points == top {
			leaders = append(leaders, t.Owner)
		}
	}

	kind := RankWinner
	if len(leaders) > 1 {
		kind = RankTie
	}
	return Ranking{Kind: kind, Leaders: leaders, Points: top}
}
