package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/betai-backend/internal/notifier/binding"
	"github.com/radieske/betai-backend/internal/notifier/bot"
	"github.com/radieske/betai-backend/internal/notifier/dispatcher"
	"github.com/radieske/betai-backend/internal/notifier/publisher"
	"github.com/radieske/betai-backend/internal/recommendation-api/cache"
	httpapi "github.com/radieske/betai-backend/internal/recommendation-api/http"
	"github.com/radieske/betai-backend/internal/recommendation-api/repo"
	sharedcache "github.com/radieske/betai-backend/internal/shared/cache"
	"github.com/radieske/betai-backend/internal/shared/config"
	"github.com/radieske/betai-backend/internal/shared/db"
	"github.com/radieske/betai-backend/internal/shared/logger"
	"github.com/radieske/betai-backend/internal/shared/metrics"
	"github.com/radieske/betai-backend/pkg/contracts/events"
)

type eventPublisher interface {
	Publish(ctx context.Context, e events.Notification) error
	Close() error
}

func main() {
	// carrega config
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("config: %w", err))
	}

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("timezone", cfg.Location.String()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// pool do Postgres (ai_eval); banco fora do ar vira 500 por requisição
	pg, err := db.OpenPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to open postgres", zap.Error(err))
	}
	defer pg.Close()

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	if err := pg.PingContext(pingCtx); err != nil {
		log.Warn("postgres unreachable at startup, serving anyway", zap.Error(err))
	} else {
		log.Info("postgres connected")
	}
	cancelPing()

	// Redis é opcional: sem ele as respostas saem sempre do banco
	var respCache httpapi.ResponseCache
	rdb, err := sharedcache.ConnectRedis(ctx, cfg.RedisAddr)
	switch {
	case errors.Is(err, sharedcache.ErrNotConfigured):
		log.Info("response cache disabled")
	case err != nil:
		log.Warn("redis unavailable, response cache disabled", zap.Error(err))
	default:
		defer rdb.Close()
		respCache = cache.New(rdb, cfg.CacheTTL)
		log.Info("redis connected", zap.Duration("ttl", cfg.CacheTTL))
	}

	// Kafka é opcional: sem brokers os eventos de notificação são descartados
	var pub eventPublisher = publisher.Nop{}
	if cfg.KafkaBrokers != "" {
		pub = publisher.NewKafkaPublisher(cfg.KafkaBrokers, cfg.TopicNotification, log.Named("publisher"))
		log.Info("kafka writer ready", zap.String("topic", cfg.TopicNotification))
	}
	defer pub.Close()

	if cfg.BindingDSN == "" {
		log.Warn("BINDING_DATABASE_URL not set, broadcasts will reach nobody")
	}

	// métricas
	collectors := metrics.NewCollectors()
	collectors.MustRegister(prometheus.DefaultRegisterer)

	// bot + dispatcher
	tg := bot.New(log.Named("bot"), cfg.BotToken, nil)
	disp := dispatcher.New(log.Named("dispatcher"), tg, binding.NewStore(cfg.BindingDSN), pub, cfg.BroadcastInterval)
	disp.OnSent = func(kind string, ok bool) {
		outcome := "success"
		if !ok {
			outcome = "failure"
		}
		collectors.Notifications.WithLabelValues(kind, outcome).Inc()
	}

	commands := bot.NewCommands(log.Named("commands"), cfg.SiteURL, cfg.BotAdminIDs, disp)
	if !cfg.BotConfigured() {
		log.Warn("BOT_TOKEN not set, telegram features disabled")
	} else if err := tg.Start(ctx, commands.Router()); err != nil {
		// sem retry: recursos de notificação ficam inertes até o próximo deploy
		log.Warn("telegram bot not started", zap.Error(err))
	}

	metricsSrv := metrics.StartMetricsServer(log, cfg.MetricsPort, func(ctx context.Context) error {
		return pg.PingContext(ctx)
	})

	api := &httpapi.API{
		Log:         log.Named("http"),
		Store:       repo.NewReadRepo(pg, cfg.Location),
		Cache:       respCache,
		Notifier:    disp,
		Bot:         tg,
		Metrics:     collectors,
		Location:    cfg.Location,
		CORSOrigins: cfg.CORSOrigins,
	}
	apiSrv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("recommendation-api listening", zap.String("addr", apiSrv.Addr))
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("api shutdown", zap.Error(err))
	}
	if err := tg.Stop(shutdownCtx); err != nil {
		log.Warn("bot shutdown", zap.Error(err))
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("metrics shutdown", zap.Error(err))
	}
}
