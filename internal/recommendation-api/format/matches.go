package format

import (
	"math"
	"sort"
	"strconv"

	"github.com/radieske/betai-backend/internal/recommendation-api/dto"
	"github.com/radieske/betai-backend/internal/recommendation-api/repo"
	"github.com/radieske/betai-backend/internal/recommendation-api/window"
)

// rótulos exibidos na coluna "AI"
var predictionLabels = map[string]string{
	"home": "主胜",
	"away": "客胜",
	"draw": "平局",
}

// Matches lista todas as partidas com odds dentro da janela, por horário crescente
func Matches(rows []repo.MatchEvaluation, w window.Window) []dto.Match {
	inWindow := make([]repo.MatchEvaluation, 0, len(rows))
	for _, r := range rows {
		if r.AverageOdds != nil && r.FixtureDate != nil && w.Contains(*r.FixtureDate) {
			inWindow = append(inWindow, r)
		}
	}
	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].FixtureDate.Before(*inWindow[j].FixtureDate)
	})

	out := make([]dto.Match, 0, len(inWindow))
	for _, r := range inWindow {
		home, draw, away := oddsLegs(r.AverageOdds)

		var date, clock string
		if r.FixtureDate != nil {
			date = r.FixtureDate.Format("01-02")
			clock = r.FixtureDate.Format("15:04")
		}

		out = append(out, dto.Match{
			ID:                  DisplayID(r),
			Date:                date,
			Time:                clock,
			League:              r.LeagueName,
			HomeTeam:            r.HomeName,
			AwayTeam:            r.AwayName,
			HomeOdds:            round2(home),
			DrawOdds:            round2(draw),
			AwayOdds:            round2(away),
			AIPrediction:        PredictionLabel(r.PredictionResult, r.RecommendationIndex),
			IsRecommended:       r.Recommended,
			Analysis:            r.Analysis,
			FixtureDate:         dto.Timestamp{T: r.FixtureDate},
			RecommendationIndex: indexOf(r),
		})
	}
	return out
}

// PredictionLabel traduz o código do 预测结果 e acrescenta a confiança em %.
// Ex.: ("home", 0.8734) -> "主胜 87%". Códigos desconhecidos passam sem tradução.
func PredictionLabel(prediction *string, index *float64) string {
	if prediction == nil || *prediction == "" {
		return ""
	}
	label, ok := predictionLabels[*prediction]
	if !ok {
		label = *prediction
	}
	if index != nil {
		label += " " + strconv.FormatFloat(*index*100, 'f', 0, 64) + "%"
	}
	return label
}

func oddsLegs(o *repo.AverageOdds) (home, draw, away float64) {
	if o == nil {
		return 0, 0, 0
	}
	return deref(o.Home), deref(o.Draw), deref(o.Away)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
