// Package format transforma linhas de ai_eval nas respostas da API.
// As funções são puras: mesma entrada, mesma saída.
package format

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/radieske/betai-backend/internal/recommendation-api/dto"
	"github.com/radieske/betai-backend/internal/recommendation-api/repo"
	"github.com/radieske/betai-backend/internal/recommendation-api/window"
)

const (
	MaxRecommendations = 3
	DefaultLocale      = "zh"
)

// formatos do horário dentro do id: microssegundos com 6 dígitos, omitidos quando zero
const (
	fixtureLayout       = "2006-01-02 15:04:05"
	fixtureLayoutMicros = "2006-01-02 15:04:05.000000"
)

// Recommendations aplica a política de seleção (recomendada, com odds, dentro da
// janela), ordena por 推荐指数 desc (estável) e devolve no máximo 3 itens
func Recommendations(rows []repo.MatchEvaluation, w window.Window, locale string) []dto.Recommendation {
	if locale == "" {
		locale = DefaultLocale
	}

	eligible := make([]repo.MatchEvaluation, 0, len(rows))
	for _, r := range rows {
		if r.Recommended && r.AverageOdds != nil && r.FixtureDate != nil && w.Contains(*r.FixtureDate) {
			eligible = append(eligible, r)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return indexOf(eligible[i]) > indexOf(eligible[j])
	})
	if len(eligible) > MaxRecommendations {
		eligible = eligible[:MaxRecommendations]
	}

	out := make([]dto.Recommendation, 0, len(eligible))
	for _, r := range eligible {
		out = append(out, dto.Recommendation{
			ID:                  DisplayID(r),
			League:              r.LeagueName,
			HomeTeam:            r.HomeName,
			AwayTeam:            r.AwayName,
			Odds:                rawOdds(r.AverageOdds),
			FixtureDate:         dto.Timestamp{T: r.FixtureDate},
			RecommendationIndex: indexOf(r),
			Analysis:            ResolveAnalysis(r, locale),
			PredictionResult:    r.PredictionResult,
			AnalysisI18n:        r.AnalysisI18n,
		})
	}
	return out
}

// ResolveAnalysis escolhe o texto: locale pedido, depois "zh", depois o texto padrão
func ResolveAnalysis(r repo.MatchEvaluation, locale string) string {
	if r.AnalysisI18n != nil {
		if v, ok := r.AnalysisI18n[locale]; ok {
			return v
		}
		if v, ok := r.AnalysisI18n[DefaultLocale]; ok {
			return v
		}
	}
	return r.Analysis
}

// DisplayID monta "home-away-fixture"; não é único se o confronto se repetir no mesmo horário
func DisplayID(r repo.MatchEvaluation) string {
	return r.HomeName + "-" + r.AwayName + "-" + fixtureString(r.FixtureDate)
}

func fixtureString(t *time.Time) string {
	if t == nil {
		return ""
	}
	if t.Nanosecond()/1000 == 0 {
		return t.Format(fixtureLayout)
	}
	return t.Format(fixtureLayoutMicros)
}

func indexOf(r repo.MatchEvaluation) float64 {
	if r.RecommendationIndex == nil {
		return 0
	}
	return *r.RecommendationIndex
}

func rawOdds(o *repo.AverageOdds) json.RawMessage {
	if o == nil {
		return nil
	}
	if len(o.Raw) > 0 {
		return o.Raw
	}
	b, _ := json.Marshal(o)
	return b
}
