package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	ctopics "github.com/radieske/betai-backend/pkg/contracts/topics"
)

// Config centraliza variáveis de ambiente e parâmetros de execução do serviço
// Inclui conexões (banco principal, banco de bindings, Redis, Kafka), bot e portas
type Config struct {
	Env         string // "local", "dev", "prod"
	ServiceName string // ex: "recommendation-api"

	PostgresDSN       string
	BindingDSN        string // banco separado com os chat_ids vinculados; vazio desativa broadcast
	RedisAddr         string // vazio desativa o cache de respostas
	KafkaBrokers      string // "a:9092,b:9092"; vazio desativa eventos de notificação
	TopicNotification string

	// Telegram
	BotToken    string
	BotAdminIDs []int64 // usuários autorizados a usar /broadcast
	SiteURL     string  // base do link de vínculo (/login?tg_user_id=...)

	CORSOrigins []string
	Location    *time.Location // fuso usado para calcular a janela ativa

	CacheTTL          time.Duration
	BroadcastInterval time.Duration // atraso fixo entre envios do broadcast

	// Portas do serviço
	HTTPPort    string // Porta pública (API REST)
	MetricsPort string // Porta exclusiva para /metrics e /healthz
}

// Load carrega variáveis de ambiente e define defaults
func Load() (Config, error) {
	cfg := Config{
		Env:         getEnv("ENV", "local"),
		ServiceName: getEnv("SERVICE_NAME", "recommendation-api"),

		PostgresDSN:       getEnv("POSTGRES_DSN", ""),
		BindingDSN:        getEnv("BINDING_DATABASE_URL", ""),
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", ""),
		TopicNotification: getEnv("KAFKA_TOPIC_NOTIFICATIONS", ctopics.NotificationEvents),

		BotToken: getEnv("BOT_TOKEN", ""),
		SiteURL:  strings.TrimRight(getEnv("SITE_URL", "http://localhost:3000"), "/"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),

		HTTPPort:    getEnv("HTTP_PORT", "8000"),
		MetricsPort: getEnv("METRICS_PORT", "9095"),
	}

	// DSN explícito tem prioridade; senão monta a partir das variáveis POSTGRES_*
	if cfg.PostgresDSN == "" {
		cfg.PostgresDSN = postgresDSNFromParts(
			getEnv("POSTGRES_HOST", "localhost"),
			getEnv("POSTGRES_PORT", "5432"),
			getEnv("POSTGRES_DB", ""),
			getEnv("POSTGRES_USER", ""),
			getEnv("POSTGRES_PASSWORD", ""),
			getEnv("POSTGRES_SSLMODE", "disable"),
		)
	}

	ids, err := parseIDs(getEnv("BOT_ADMIN_IDS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("BOT_ADMIN_IDS: %w", err)
	}
	cfg.BotAdminIDs = ids

	cfg.Location = time.Local
	if tz := getEnv("APP_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("APP_TIMEZONE: %w", err)
		}
		cfg.Location = loc
	}

	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.BroadcastInterval, err = getDuration("BROADCAST_SEND_INTERVAL", 50*time.Millisecond); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// BotConfigured indica se há credencial para subir o bot
func (c Config) BotConfigured() bool { return c.BotToken != "" }

// getEnv retorna o valor da variável de ambiente ou o default
func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func postgresDSNFromParts(host, port, name, user, password, sslmode string) string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     host + ":" + port,
		Path:     "/" + name,
		RawQuery: "sslmode=" + url.QueryEscape(sslmode),
	}
	if user != "" {
		u.User = url.UserPassword(user, password)
	}
	return u.String()
}

// splitList quebra "a, b,,c" em ["a","b","c"]
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIDs(s string) ([]int64, error) {
	var out []int64
	for _, p := range splitList(s) {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q: %w", p, err)
		}
		out = append(out, id)
	}
	return out, nil
}
