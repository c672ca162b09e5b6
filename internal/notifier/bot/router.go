package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Handler func(ctx context.Context, api API, u tgbotapi.Update)

// Router mapeia comandos (/start) e callback data (back_to_main) para handlers
type Router struct {
	commands  map[string]Handler
	callbacks map[string]Handler
}

func NewRouter() *Router {
	return &Router{
		commands:  map[string]Handler{},
		callbacks: map[string]Handler{},
	}
}

func (r *Router) Command(name string, h Handler) { r.commands[name] = h }

func (r *Router) Callback(data string, h Handler) { r.callbacks[data] = h }

// Dispatch executa o handler do update; false quando nada corresponde
func (r *Router) Dispatch(ctx context.Context, api API, u tgbotapi.Update) bool {
	var h Handler
	switch {
	case u.Message != nil && u.Message.IsCommand():
		h = r.commands[u.Message.Command()]
	case u.CallbackQuery != nil:
		h = r.callbacks[u.CallbackQuery.Data]
	}
	if h == nil {
		return false
	}
	h(ctx, api, u)
	return true
}
