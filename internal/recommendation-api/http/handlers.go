package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/betai-backend/internal/recommendation-api/cache"
	"github.com/radieske/betai-backend/internal/recommendation-api/dto"
	"github.com/radieske/betai-backend/internal/recommendation-api/format"
	"github.com/radieske/betai-backend/internal/recommendation-api/repo"
	"github.com/radieske/betai-backend/internal/recommendation-api/window"
)

// listRecommendations retorna até 3 partidas recomendadas da janela ativa
func (a *API) listRecommendations(w http.ResponseWriter, r *http.Request) {
	locale := r.URL.Query().Get("locale")
	if locale == "" {
		locale = format.DefaultLocale
	}
	win := window.Active(a.now(), a.Location)
	key := cache.RecommendationsKey(locale, win.Key())

	var fromCache []dto.Recommendation
	if a.cacheGet(r.Context(), "recommendations", key, &fromCache) {
		writeJSON(w, http.StatusOK, fromCache)
		return
	}

	rows, err := a.Store.ListRecommended(r.Context(), win.Start, win.End)
	if err != nil {
		a.dbError(w, "Database error", err)
		return
	}
	out := format.Recommendations(rows, win, locale)

	a.cacheSet(r.Context(), key, out)
	writeJSON(w, http.StatusOK, out)
}

// listMatches retorna todas as partidas com odds da janela ativa
func (a *API) listMatches(w http.ResponseWriter, r *http.Request) {
	win := window.Active(a.now(), a.Location)
	key := cache.MatchesKey(win.Key())

	var fromCache []dto.Match
	if a.cacheGet(r.Context(), "matches", key, &fromCache) {
		writeJSON(w, http.StatusOK, fromCache)
		return
	}

	rows, err := a.Store.ListMatches(r.Context(), win.Start, win.End)
	if err != nil {
		a.dbError(w, "Database error", err)
		return
	}
	out := format.Matches(rows, win)

	a.cacheSet(r.Context(), key, out)
	writeJSON(w, http.StatusOK, out)
}

func (a *API) testRecommendations(w http.ResponseWriter, r *http.Request) {
	v, err := a.Store.Ping(r.Context())
	if err != nil {
		a.dbError(w, "Database connection failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"message":     "Database connection successful",
		"test_result": map[string]int{"test": v},
	})
}

func (a *API) testMatches(w http.ResponseWriter, r *http.Request) {
	n, err := a.Store.CountWithOdds(r.Context())
	if err != nil {
		a.dbError(w, "Database connection failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":        "success",
		"message":       "Matches API connection successful",
		"total_matches": n,
	})
}

// bindingSuccess envia a mensagem de parabéns para o chat recém-vinculado
func (a *API) bindingSuccess(w http.ResponseWriter, r *http.Request) {
	var req dto.BindingSuccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: "invalid json: " + err.Error()})
		return
	}
	if req.ChatID == nil || req.UserName == nil {
		writeJSON(w, http.StatusUnprocessableEntity, dto.ErrorResponse{Detail: "chat_id and user_name are required"})
		return
	}

	if a.Notifier == nil || !a.Notifier.SendBindingSuccess(r.Context(), *req.ChatID, *req.UserName) {
		writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Detail: "Failed to send message"})
		return
	}
	writeJSON(w, http.StatusOK, dto.StatusResponse{Status: "success", Message: "Binding success message sent"})
}

func (a *API) telegramStatus(w http.ResponseWriter, _ *http.Request) {
	resp := dto.BotStatusResponse{Status: "stopped"}
	if a.Bot != nil {
		if a.Bot.Running() {
			resp.Status = "running"
		}
		resp.BotTokenConfigured = a.Bot.TokenConfigured()
	}
	writeJSON(w, http.StatusOK, resp)
}

// dbError responde 500 com {"detail": "<prefixo>: <causa>"}
func (a *API) dbError(w http.ResponseWriter, prefix string, err error) {
	a.Log.Error("data access failed", zap.Error(err))
	cause := err.Error()
	if errors.Is(err, repo.ErrUnavailable) {
		cause = strings.TrimPrefix(cause, repo.ErrUnavailable.Error()+": ")
	}
	writeJSON(w, http.StatusInternalServerError, dto.ErrorResponse{Detail: prefix + ": " + cause})
}

// cacheGet retorna true apenas em hit; falhas do Redis viram miss
func (a *API) cacheGet(ctx context.Context, resource, key string, dst any) bool {
	if a.Cache == nil {
		return false
	}
	ok, err := a.Cache.Get(ctx, key, dst)
	result := "miss"
	switch {
	case err != nil:
		a.Log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		result, ok = "error", false
	case ok:
		result = "hit"
	}
	if a.Metrics != nil {
		a.Metrics.CacheLookups.WithLabelValues(resource, result).Inc()
	}
	return ok
}

func (a *API) cacheSet(ctx context.Context, key string, v any) {
	if a.Cache == nil {
		return
	}
	if err := a.Cache.Set(ctx, key, v); err != nil {
		a.Log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
