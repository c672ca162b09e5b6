package repo

import (
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"
)

// fakeRow copia valores fixos para os destinos do Scan, na ordem de evalColumns
type fakeRow struct {
	vals []any
	err  error
}

func (f fakeRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *sql.NullString:
			if v, ok := f.vals[i].(string); ok {
				*p = sql.NullString{String: v, Valid: true}
			}
		case *sql.NullTime:
			if v, ok := f.vals[i].(time.Time); ok {
				*p = sql.NullTime{Time: v, Valid: true}
			}
		case *sql.NullInt64:
			if v, ok := f.vals[i].(int64); ok {
				*p = sql.NullInt64{Int64: v, Valid: true}
			}
		case *sql.NullFloat64:
			if v, ok := f.vals[i].(float64); ok {
				*p = sql.NullFloat64{Float64: v, Valid: true}
			}
		case *[]byte:
			if v, ok := f.vals[i].(string); ok {
				*p = []byte(v)
			}
		default:
			return errors.New("unexpected destination type")
		}
	}
	return nil
}

func TestScanEvaluation(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	fixture := time.Date(2026, 10, 17, 20, 45, 0, 0, time.UTC)

	row := fakeRow{vals: []any{
		"Premier League", "Arsenal", "Chelsea",
		`{"home_avg": 1.955, "draw_avg": 3.4}`,
		fixture, int64(1), 0.8734, "home", "主队状态更好",
		`{"en": "Home side in better form"}`,
	}}

	e, err := scanEvaluation(row, shanghai)
	if err != nil {
		t.Fatalf("scanEvaluation: %v", err)
	}
	if e.LeagueName != "Premier League" || e.HomeName != "Arsenal" || e.AwayName != "Chelsea" {
		t.Errorf("names = %q %q %q", e.LeagueName, e.HomeName, e.AwayName)
	}
	if !e.Recommended {
		t.Error("Recommended = false, want true")
	}
	if e.AverageOdds == nil || *e.AverageOdds.Home != 1.955 || e.AverageOdds.Away != nil {
		t.Errorf("AverageOdds = %+v", e.AverageOdds)
	}
	if string(e.AverageOdds.Raw) != `{"home_avg": 1.955, "draw_avg": 3.4}` {
		t.Errorf("Raw = %s", e.AverageOdds.Raw)
	}
	// horário de parede preservado, fuso substituído
	want := time.Date(2026, 10, 17, 20, 45, 0, 0, shanghai)
	if e.FixtureDate == nil || !e.FixtureDate.Equal(want) {
		t.Errorf("FixtureDate = %v, want %v", e.FixtureDate, want)
	}
	if e.RecommendationIndex == nil || *e.RecommendationIndex != 0.8734 {
		t.Errorf("RecommendationIndex = %v", e.RecommendationIndex)
	}
	if e.PredictionResult == nil || *e.PredictionResult != "home" {
		t.Errorf("PredictionResult = %v", e.PredictionResult)
	}
	if e.AnalysisI18n["en"] != "Home side in better form" {
		t.Errorf("AnalysisI18n = %v", e.AnalysisI18n)
	}
}

func TestScanEvaluationNulls(t *testing.T) {
	row := fakeRow{vals: []any{nil, "A", "B", nil, nil, nil, nil, nil, nil, "null"}}
	e, err := scanEvaluation(row, time.UTC)
	if err != nil {
		t.Fatalf("scanEvaluation: %v", err)
	}
	if e.AverageOdds != nil || e.FixtureDate != nil || e.RecommendationIndex != nil || e.PredictionResult != nil || e.AnalysisI18n != nil {
		t.Errorf("expected nil optionals, got %+v", e)
	}
	if e.Recommended {
		t.Error("NULL flag must read as not recommended")
	}
}

func TestScanEvaluationBadJSON(t *testing.T) {
	row := fakeRow{vals: []any{"L", "A", "B", `{not json`, nil, int64(0), nil, nil, "", nil}}
	if _, err := scanEvaluation(row, time.UTC); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRecommendedQueryLeavesTruncationToFormatter(t *testing.T) {
	if strings.Contains(strings.ToUpper(recommendedQuery), "LIMIT") {
		t.Errorf("recommended query must not limit rows:\n%s", recommendedQuery)
	}
	odds, err := decodeOdds([]byte("null"))
	if err != nil || odds != nil {
		t.Errorf("decodeOdds(null) = %v, %v; want nil odds", odds, err)
	}
}
