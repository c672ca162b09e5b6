package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type Writer = kafka.Writer

// NewWriter cria um writer para a lista "a:9092, b:9092"
func NewWriter(brokers string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokerList(brokers)...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}
}

func brokerList(s string) []string {
	var out []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// WriteJSON serializa v e publica uma mensagem com a chave de particionamento
func WriteJSON(ctx context.Context, w *kafka.Writer, key string, v any) error {
	msg, err := encode(key, v)
	if err != nil {
		return err
	}
	return w.WriteMessages(ctx, msg)
}

func encode(key string, v any) (kafka.Message, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode kafka payload: %w", err)
	}
	return kafka.Message{Key: []byte(key), Value: b, Time: time.Now().UTC()}, nil
}
