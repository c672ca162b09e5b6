package publisher

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/radieske/betai-backend/internal/shared/kafka"
	"github.com/radieske/betai-backend/pkg/contracts/events"
)

// KafkaPublisher publica eventos de notificação no tópico configurado
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(brokers, topic string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: kafka.NewWriter(brokers, topic),
		log:    log,
	}
}

// Publish serializa o evento em JSON; a chave é o chat_id (ou o tipo, no broadcast)
func (p *KafkaPublisher) Publish(ctx context.Context, e events.Notification) error {
	if err := kafka.WriteJSON(ctx, p.writer, messageKey(e), e); err != nil {
		return fmt.Errorf("publish %s event: %w", e.Kind, err)
	}
	p.log.Debug("published notification event", zap.String("event_id", e.EventID))
	return nil
}

func messageKey(e events.Notification) string {
	if e.ChatID != 0 {
		return strconv.FormatInt(e.ChatID, 10)
	}
	return e.Kind
}

// Close finaliza o writer e libera recursos associados.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Nop descarta eventos (Kafka não configurado)
type Nop struct{}

func (Nop) Publish(context.Context, events.Notification) error { return nil }
func (Nop) Close() error { return nil }
