package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"github.com/radieske/betai-backend/internal/recommendation-api/repo"
	"github.com/radieske/betai-backend/internal/shared/metrics"
)

// Store é a leitura de ai_eval usada pelos handlers (implementada por *repo.ReadRepo)
type Store interface {
	ListRecommended(ctx context.Context, from, to time.Time) ([]repo.MatchEvaluation, error)
	ListMatches(ctx context.Context, from, to time.Time) ([]repo.MatchEvaluation, error)
	Ping(ctx context.Context) (int, error)
	CountWithOdds(ctx context.Context) (int64, error)
}

// ResponseCache guarda respostas já formatadas (implementada por *cache.Cache)
type ResponseCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
}

type Notifier interface {
	SendBindingSuccess(ctx context.Context, chatID int64, userName string) bool
}

type BotStatus interface {
	Running() bool
	TokenConfigured() bool
}

// API expõe os endpoints REST de recomendações, partidas e integração Telegram
type API struct {
	Log      *zap.Logger
	Store    Store
	Cache    ResponseCache       // opcional
	Notifier Notifier            // nil quando o bot não subiu
	Bot      BotStatus
	Metrics  *metrics.Collectors // opcional
	Location *time.Location      // fuso da janela ativa

	CORSOrigins []string
	// limite por IP nas rotas /api/telegram
	TelegramRateLimit int

	Now func() time.Time
}

// Router retorna o roteador HTTP com CORS, métricas e todas as rotas
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   a.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(a.countRequests)

	r.Get("/", a.root)
	r.Get("/health", a.health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/hello", a.hello)

		r.Get("/ai-recommendations", a.listRecommendations)
		r.Get("/ai-recommendations/test", a.testRecommendations)

		r.Get("/matches", a.listMatches)
		r.Get("/matches/test", a.testMatches)

		r.Route("/telegram", func(r chi.Router) {
			limit := a.TelegramRateLimit
			if limit <= 0 {
				limit = 60
			}
			r.Use(httprate.LimitByIP(limit, time.Minute))
			r.Post("/binding-success", a.bindingSuccess)
			r.Get("/status", a.telegramStatus)
		})
	})
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// countRequests conta requisições por padrão de rota e status
func (a *API) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		if a.Metrics == nil {
			return
		}
		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		a.Metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *API) root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "betai backend is running!"})
}

func (a *API) hello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "hello world"})
}

func (a *API) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "message": "API is working properly"})
}
