package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache guarda respostas já formatadas no Redis.
// Um *Cache nil é válido e funciona como cache desligado.
type Cache struct {
	R   *redis.Client
	TTL time.Duration
}

func New(r *redis.Client, ttl time.Duration) *Cache { return &Cache{R: r, TTL: ttl} }

// RecommendationsKey inclui o dia da janela para nunca servir a janela anterior
func RecommendationsKey(locale, windowKey string) string {
	return "betai:recs:" + locale + ":" + windowKey
}

func MatchesKey(windowKey string) string { return "betai:matches:" + windowKey }

// Get devolve (false, nil) quando a chave não existe ou o cache está desligado
func (c *Cache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c == nil || c.R == nil {
		return false, nil
	}
	b, err := c.R.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Cache) Set(ctx context.Context, key string, v any) error {
	if c == nil || c.R == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, key, b, c.TTL).Err()
}
