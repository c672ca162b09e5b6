package dto

import (
	"encoding/json"
	"time"
)

// Recommendation é um item de /api/ai-recommendations
type Recommendation struct {
	ID                  string            `json:"id"`
	League              string            `json:"league"`
	HomeTeam            string            `json:"home_team"`
	AwayTeam            string            `json:"away_team"`
	Odds                json.RawMessage   `json:"odds"` // 平均赔率 como armazenado
	FixtureDate         Timestamp         `json:"fixture_date"`
	RecommendationIndex float64           `json:"recommendation_index"`
	Analysis            string            `json:"analysis"`
	PredictionResult    *string           `json:"prediction_result"`
	AnalysisI18n        map[string]string `json:"analysis_i18n"`
}

// Match é um item de /api/matches
type Match struct {
	ID                  string    `json:"id"`
	Date                string    `json:"date"` // MM-DD
	Time                string    `json:"time"` // HH:MM
	League              string    `json:"league"`
	HomeTeam            string    `json:"home_team"`
	AwayTeam            string    `json:"away_team"`
	HomeOdds            float64   `json:"home_odds"`
	DrawOdds            float64   `json:"draw_odds"`
	AwayOdds            float64   `json:"away_odds"`
	AIPrediction        string    `json:"ai_prediction"`
	IsRecommended       bool      `json:"is_recommended"`
	Analysis            string    `json:"analysis"`
	FixtureDate         Timestamp `json:"fixture_date"`
	RecommendationIndex float64   `json:"recommendation_index"`
}

// Timestamp serializa o horário de parede sem fuso ("2006-01-02T15:04:05"), ou null
type Timestamp struct {
	T *time.Time
}

const timestampLayout = "2006-01-02T15:04:05.999999"

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.T == nil {
		return []byte("null"), nil
	}
	return json.Marshal(ts.T.Format(timestampLayout))
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		ts.T = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return err
	}
	ts.T = &t
	return nil
}
