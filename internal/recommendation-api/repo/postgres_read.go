package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnavailable marca falhas de acesso ao banco (mapeadas para 500 pela API)
var ErrUnavailable = errors.New("data store unavailable")

// colunas lidas de ai_eval, na ordem usada por scanEvaluation
const evalColumns = `
	league_name,
	home_name,
	away_name,
	平均赔率,
	fixture_date,
	比赛是否推荐,
	推荐指数,
	预测结果,
	比赛预测及原因,
	analysis_i18n`

// ReadRepo executa apenas SELECTs parametrizados no banco principal.
// fixture_date é timestamp sem fuso com o horário de parede de Location.
type ReadRepo struct {
	DB       *sql.DB
	Location *time.Location
}

func NewReadRepo(db *sql.DB, loc *time.Location) *ReadRepo {
	if loc == nil {
		loc = time.Local
	}
	return &ReadRepo{DB: db, Location: loc}
}

// recommendedQuery não usa LIMIT: linhas com 平均赔率 = JSON null passam no
// IS NOT NULL e só são descartadas na formatação, que faz o corte em 3
const recommendedQuery = `SELECT` + evalColumns + `
		FROM ai_eval
		WHERE 比赛是否推荐 = 1
		  AND 平均赔率 IS NOT NULL
		  AND fixture_date >= $1
		  AND fixture_date <= $2
		ORDER BY 推荐指数 DESC NULLS LAST`

// ListRecommended retorna as partidas recomendadas com odds dentro de [from, to],
// por 推荐指数 desc
func (r *ReadRepo) ListRecommended(ctx context.Context, from, to time.Time) ([]MatchEvaluation, error) {
	return r.query(ctx, recommendedQuery, from, to)
}

// ListMatches retorna todas as partidas com odds dentro de [from, to], por horário
func (r *ReadRepo) ListMatches(ctx context.Context, from, to time.Time) ([]MatchEvaluation, error) {
	q := `SELECT` + evalColumns + `
		FROM ai_eval
		WHERE 平均赔率 IS NOT NULL
		  AND fixture_date >= $1
		  AND fixture_date <= $2
		ORDER BY fixture_date ASC`
	return r.query(ctx, q, from, to)
}

// Ping executa SELECT 1 para o endpoint de teste de conexão
func (r *ReadRepo) Ping(ctx context.Context) (int, error) {
	var v int
	if err := r.DB.QueryRowContext(ctx, `SELECT 1 AS test`).Scan(&v); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v, nil
}

// CountWithOdds conta as linhas com 平均赔率 preenchido
func (r *ReadRepo) CountWithOdds(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM ai_eval WHERE 平均赔率 IS NOT NULL`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n, nil
}

func (r *ReadRepo) query(ctx context.Context, q string, args ...any) ([]MatchEvaluation, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	out := make([]MatchEvaluation, 0)
	for rows.Next() {
		e, err := scanEvaluation(rows, r.Location)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvaluation(s scanner, loc *time.Location) (MatchEvaluation, error) {
	var (
		e           MatchEvaluation
		odds, i18n  []byte
		fixture     sql.NullTime
		recommended sql.NullInt64
		index       sql.NullFloat64
		prediction  sql.NullString
		analysis    sql.NullString
		league      sql.NullString
		home, away  sql.NullString
	)
	if err := s.Scan(&league, &home, &away, &odds, &fixture,
		&recommended, &index, &prediction, &analysis, &i18n); err != nil {
		return e, err
	}

	e.LeagueName = league.String
	e.HomeName = home.String
	e.AwayName = away.String
	e.Analysis = analysis.String
	e.Recommended = recommended.Valid && recommended.Int64 != 0
	if fixture.Valid {
		t := wallClockIn(fixture.Time, loc)
		e.FixtureDate = &t
	}
	if index.Valid {
		v := index.Float64
		e.RecommendationIndex = &v
	}
	if prediction.Valid {
		v := prediction.String
		e.PredictionResult = &v
	}

	var err error
	if e.AverageOdds, err = decodeOdds(odds); err != nil {
		return e, err
	}
	if e.AnalysisI18n, err = decodeI18n(i18n); err != nil {
		return e, err
	}
	return e, nil
}

// decodeOdds interpreta o JSON de 平均赔率; NULL vira nil
func decodeOdds(raw []byte) (*AverageOdds, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var o AverageOdds
	if err := json.Unmarshal(raw, &o); err != nil {
		return nil, fmt.Errorf("decode 平均赔率: %w", err)
	}
	o.Raw = append(json.RawMessage(nil), raw...)
	return &o, nil
}

func decodeI18n(raw []byte) (map[string]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode analysis_i18n: %w", err)
	}
	return m, nil
}

// wallClockIn reinterpreta o horário de parede lido do banco no fuso configurado
func wallClockIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}
