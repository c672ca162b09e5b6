package dispatcher

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/radieske/betai-backend/pkg/contracts/events"
)

const (
	BroadcastPrefix  = "📢 系统广播\n\n"
	BackToMainData   = "back_to_main"
	backToMainButton = "🏠 返回主菜单"
)

// Button é um botão inline; URL ou CallbackData deve estar preenchido
type Button struct {
	Text         string
	URL          string
	CallbackData string
}

// Transport é o canal de envio do bot (Telegram)
type Transport interface {
	Running() bool
	SendMessage(ctx context.Context, chatID int64, text string, buttons ...Button) error
}

// Recipients fornece os chats vinculados para o broadcast
type Recipients interface {
	ChatIDs(ctx context.Context) ([]int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.Notification) error
}

// Dispatcher envia mensagens individuais e broadcasts, isolando falhas por destinatário
type Dispatcher struct {
	Log        *zap.Logger
	Transport  Transport
	Recipients Recipients
	Events     EventPublisher
	Interval   time.Duration // atraso fixo entre envios consecutivos do broadcast

	OnSent func(kind string, ok bool) // métricas
}

func New(log *zap.Logger, t Transport, r Recipients, ev EventPublisher, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		Log:        log,
		Transport:  t,
		Recipients: r,
		Events:     ev,
		Interval:   interval,
	}
}

// BindingSuccessText é o template de parabéns enviado após o vínculo da conta
func BindingSuccessText(userName string) string {
	return fmt.Sprintf("🎉 恭喜 %s！\n\n"+
		"✅ 账户绑定成功！\n"+
		"🚀 现在您可以享受完整的服务体验了！\n\n"+
		"感谢您的使用！", userName)
}

// SendBindingSuccess envia a confirmação de vínculo para um chat.
// Falha do transporte é logada e retornada como false.
func (d *Dispatcher) SendBindingSuccess(ctx context.Context, chatID int64, userName string) bool {
	if !d.transportReady() {
		d.Log.Warn("bot not running, binding message dropped", zap.Int64("chat_id", chatID))
		d.sent(events.KindBindingSuccess, false)
		return false
	}

	err := d.Transport.SendMessage(ctx, chatID, BindingSuccessText(userName),
		Button{Text: backToMainButton, CallbackData: BackToMainData})
	if err != nil {
		d.Log.Error("send binding success message", zap.Int64("chat_id", chatID), zap.Error(err))
		d.sent(events.KindBindingSuccess, false)
		return false
	}

	d.Log.Info("binding success message sent", zap.Int64("chat_id", chatID))
	d.sent(events.KindBindingSuccess, true)
	d.publish(ctx, events.Notification{Kind: events.KindBindingSuccess, ChatID: chatID, Succeeded: 1})
	return true
}

// Broadcast envia text (com prefixo de sistema) para todos os chats vinculados,
// em sequência e com Interval entre envios. Retorna quantos envios tiveram sucesso.
// Não é cancelável: roda até o fim da lista mesmo se o chamador desistir.
func (d *Dispatcher) Broadcast(ctx context.Context, text string) int {
	ctx = context.WithoutCancel(ctx)

	if !d.transportReady() {
		d.Log.Warn("bot not running, broadcast skipped")
		return 0
	}

	ids, err := d.Recipients.ChatIDs(ctx)
	if err != nil {
		d.Log.Error("load broadcast recipients", zap.Error(err))
		ids = nil
	}

	// intervalo fixo entre envios; o primeiro sai imediatamente
	limiter := rate.NewLimiter(rate.Every(d.Interval), 1)
	msg := BroadcastPrefix + text

	succeeded := 0
	for _, id := range ids {
		if err := limiter.Wait(ctx); err != nil {
			d.Log.Warn("broadcast limiter", zap.Error(err))
		}
		if err := d.Transport.SendMessage(ctx, id, msg); err != nil {
			d.Log.Warn("broadcast send failed", zap.Int64("chat_id", id), zap.Error(err))
			d.sent(events.KindBroadcast, false)
			continue
		}
		succeeded++
		d.sent(events.KindBroadcast, true)
	}

	d.Log.Info("broadcast finished", zap.Int("recipients", len(ids)), zap.Int("succeeded", succeeded))
	d.publish(ctx, events.Notification{Kind: events.KindBroadcast, Recipients: len(ids), Succeeded: succeeded})
	return succeeded
}

func (d *Dispatcher) transportReady() bool {
	return d.Transport != nil && d.Transport.Running()
}

func (d *Dispatcher) sent(kind string, ok bool) {
	if d.OnSent != nil {
		d.OnSent(kind, ok)
	}
}

// publish registra o evento no Kafka; falhas não alteram o resultado do envio
func (d *Dispatcher) publish(ctx context.Context, e events.Notification) {
	if d.Events == nil {
		return
	}
	e.EventID = uuid.NewString()
	e.Ts = time.Now().UTC()
	if err := d.Events.Publish(ctx, e); err != nil {
		d.Log.Warn("notification event not published", zap.String("kind", e.Kind), zap.Error(err))
	}
}
