package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/radieske/betai-backend/internal/notifier/dispatcher"
)

const (
	bindButton     = "🔗 立即绑定"
	msgForbidden   = "⛔ 您没有权限执行此命令"
	msgUsage       = "❌ 请输入广播内容，例如：/broadcast 今晚有重要比赛推荐"
	msgBroadcastOK = "✅ 广播完成，成功发送 %d 条"
)

type Broadcaster interface {
	Broadcast(ctx context.Context, text string) int
}

// Commands implementa /start, /broadcast e o callback back_to_main
type Commands struct {
	log         *zap.Logger
	siteURL     string
	admins      map[int64]struct{}
	broadcaster Broadcaster
}

func NewCommands(log *zap.Logger, siteURL string, adminIDs []int64, br Broadcaster) *Commands {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	return &Commands{
		log:         log,
		siteURL:     strings.TrimRight(siteURL, "/"),
		admins:      admins,
		broadcaster: br,
	}
}

// Router registra os handlers na tabela de despacho
func (c *Commands) Router() *Router {
	r := NewRouter()
	r.Command("start", c.start)
	r.Command("broadcast", c.broadcast)
	r.Callback(dispatcher.BackToMainData, c.backToMain)
	return r
}

func WelcomeText(firstName string) string {
	return fmt.Sprintf("🎉 欢迎，%s！\n\n点击下方按钮绑定您的账户，享受完整服务体验！", firstName)
}

// BindURL monta o link de login que carrega os ids do Telegram para o site
func BindURL(siteURL string, userID, chatID int64) string {
	return fmt.Sprintf("%s/login?tg_user_id=%d&tg_chat_id=%d", siteURL, userID, chatID)
}

func (c *Commands) welcome(user *tgbotapi.User, chatID int64) (string, tgbotapi.InlineKeyboardMarkup) {
	link := BindURL(c.siteURL, user.ID, chatID)
	return WelcomeText(user.FirstName), Keyboard(dispatcher.Button{Text: bindButton, URL: link})
}

func (c *Commands) start(_ context.Context, api API, u tgbotapi.Update) {
	m := u.Message
	if m.From == nil || m.Chat == nil {
		return
	}
	text, kb := c.welcome(m.From, m.Chat.ID)

	msg := tgbotapi.NewMessage(m.Chat.ID, text)
	msg.ReplyMarkup = kb
	if _, err := api.Send(msg); err != nil {
		c.log.Warn("send welcome", zap.Int64("chat_id", m.Chat.ID), zap.Error(err))
		return
	}
	c.log.Info("user started bot", zap.Int64("user_id", m.From.ID), zap.Int64("chat_id", m.Chat.ID))
}

func (c *Commands) backToMain(_ context.Context, api API, u tgbotapi.Update) {
	q := u.CallbackQuery
	if _, err := api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		c.log.Warn("answer callback", zap.Error(err))
	}
	if q.From == nil || q.Message == nil || q.Message.Chat == nil {
		return
	}

	chatID := q.Message.Chat.ID
	text, kb := c.welcome(q.From, chatID)
	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, q.Message.MessageID, text, kb)
	if _, err := api.Send(edit); err != nil {
		c.log.Warn("edit welcome", zap.Int64("chat_id", chatID), zap.Error(err))
		return
	}
	c.log.Info("user returned to main menu", zap.Int64("user_id", q.From.ID))
}

// broadcast roda em série no loop de updates; a resposta sai após o último envio
func (c *Commands) broadcast(ctx context.Context, api API, u tgbotapi.Update) {
	m := u.Message
	if m.Chat == nil {
		return
	}
	reply := func(text string) {
		if _, err := api.Send(tgbotapi.NewMessage(m.Chat.ID, text)); err != nil {
			c.log.Warn("broadcast reply", zap.Int64("chat_id", m.Chat.ID), zap.Error(err))
		}
	}

	if m.From == nil || !c.isAdmin(m.From.ID) {
		reply(msgForbidden)
		return
	}
	text := strings.TrimSpace(m.CommandArguments())
	if text == "" {
		reply(msgUsage)
		return
	}

	n := c.broadcaster.Broadcast(ctx, text)
	c.log.Info("broadcast requested", zap.Int64("admin_id", m.From.ID), zap.Int("succeeded", n))
	reply(fmt.Sprintf(msgBroadcastOK, n))
}

func (c *Commands) isAdmin(userID int64) bool {
	_, ok := c.admins[userID]
	return ok
}
