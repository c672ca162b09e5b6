package repo

import (
	"encoding/json"
	"time"
)

// AverageOdds é o JSON da coluna 平均赔率: {"home_avg":..,"draw_avg":..,"away_avg":..}
// Pernas ausentes ficam nil e são tratadas como 0 na renderização.
type AverageOdds struct {
	Home *float64 `json:"home_avg"`
	Draw *float64 `json:"draw_avg"`
	Away *float64 `json:"away_avg"`

	// Raw mantém o valor como armazenado, devolvido sem alteração em /ai-recommendations
	Raw json.RawMessage `json:"-"`
}

// MatchEvaluation é uma linha da tabela ai_eval (populada por pipeline externo)
type MatchEvaluation struct {
	LeagueName          string
	HomeName            string
	AwayName            string
	AverageOdds         *AverageOdds // nil quando a coluna é NULL
	FixtureDate         *time.Time
	Recommended         bool
	RecommendationIndex *float64
	PredictionResult    *string
	Analysis            string
	AnalysisI18n        map[string]string // locale -> texto; nil se ausente
}
