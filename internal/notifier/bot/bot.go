// Package bot integra o serviço ao Telegram via long polling.
package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/radieske/betai-backend/internal/notifier/dispatcher"
)

var (
	ErrNoToken        = errors.New("bot token not configured")
	ErrNotRunning     = errors.New("bot not running")
	ErrAlreadyStarted = errors.New("bot already started")
)

// API é o subconjunto de *tgbotapi.BotAPI usado pelo serviço
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Connector cria o cliente da Bot API e valida o token
type Connector func(token string) (API, error)

func DefaultConnector(token string) (API, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return api, nil
}

type state int

const (
	stateStopped state = iota
	stateRunning
)

// Bot mantém o ciclo de vida do polling: stopped -> running -> stopped.
// Start é tentado uma única vez; Stop encerra definitivamente.
type Bot struct {
	log     *zap.Logger
	token   string
	connect Connector

	mu       sync.RWMutex
	state    state
	started  bool
	stopping bool
	api      API
	done     chan struct{}
}

func New(log *zap.Logger, token string, connect Connector) *Bot {
	if connect == nil {
		connect = DefaultConnector
	}
	return &Bot{log: log, token: token, connect: connect}
}

func (b *Bot) TokenConfigured() bool { return b.token != "" }

func (b *Bot) Running() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state == stateRunning
}

// Start conecta na Bot API e inicia o polling em goroutine própria.
// Os updates são tratados em série pelo router.
func (b *Bot) Start(ctx context.Context, r *Router) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return ErrAlreadyStarted
	}
	b.started = true

	if b.token == "" {
		return ErrNoToken
	}
	api, err := b.connect(b.token)
	if err != nil {
		return fmt.Errorf("connect bot api: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	b.api = api
	b.state = stateRunning
	b.done = make(chan struct{})

	go b.poll(ctx, api, r, updates, b.done)

	b.log.Info("telegram bot polling started")
	return nil
}

func (b *Bot) poll(ctx context.Context, api API, r *Router, updates tgbotapi.UpdatesChannel, done chan struct{}) {
	defer close(done)
	for u := range updates {
		if !r.Dispatch(ctx, api, u) {
			b.log.Debug("update ignored", zap.Int("update_id", u.UpdateID))
		}
	}
}

// Stop interrompe o polling e aguarda o handler em andamento (ex.: um broadcast)
// terminar antes de soltar o cliente. Se ctx expirar, o cliente continua válido
// até o loop acabar.
func (b *Bot) Stop(ctx context.Context) error {
	b.mu.Lock()
	if b.state != stateRunning || b.stopping {
		b.mu.Unlock()
		return nil
	}
	b.stopping = true
	api, done := b.api, b.done
	b.mu.Unlock()

	api.StopReceivingUpdates()

	select {
	case <-done:
	case <-ctx.Done():
		b.mu.Lock()
		b.state = stateStopped
		b.mu.Unlock()
		return ctx.Err()
	}

	b.mu.Lock()
	b.state = stateStopped
	b.api = nil
	b.mu.Unlock()

	b.log.Info("telegram bot polling stopped")
	return nil
}

// SendMessage envia texto com teclado inline opcional (um botão por linha)
func (b *Bot) SendMessage(_ context.Context, chatID int64, text string, buttons ...dispatcher.Button) error {
	b.mu.RLock()
	api := b.api
	b.mu.RUnlock()
	if api == nil {
		return ErrNotRunning
	}

	msg := tgbotapi.NewMessage(chatID, text)
	if len(buttons) > 0 {
		msg.ReplyMarkup = Keyboard(buttons...)
	}
	_, err := api.Send(msg)
	return err
}

func Keyboard(buttons ...dispatcher.Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, btn := range buttons {
		if btn.URL != "" {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL(btn.Text, btn.URL)))
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.CallbackData)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
