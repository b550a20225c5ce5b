package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"lojachat/internal/bootstrap"
	"lojachat/internal/chat"
	"lojachat/internal/config"
	"lojachat/internal/httpapi"
	"lojachat/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("configuração inválida")
	}
	logger := bootstrap.Logger(cfg, "lojachat-api", os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	observability.Start(cfg.MetricsPort, logger)

	snapshot, err := bootstrap.Snapshot(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.DataSource).Msg("Erro ao carregar dados")
	}

	var sessions chat.HistoryStore
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			// REDIS_URL antigo era só host:porta
			opts = &redis.Options{Addr: cfg.RedisURL}
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn().Err(err).Msg("redis indisponível, histórico fica só no cliente")
		} else {
			sessions = &chat.SessionStore{Client: redisClient, TTL: cfg.SessionTTL}
		}
	}

	svc := chat.NewService(snapshot, bootstrap.LLM(cfg, logger), sessions, cfg.StoreName, logger)

	srv := newServer(cfg, svc, logger)

	go func() {
		logger.Info().Msgf("Aplicação rodando em: http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("servidor parou")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("erro ao encerrar servidor")
	}
	logger.Info().Msg("servidor encerrado")
}

func newServer(cfg *config.Config, svc *chat.Service, logger zerolog.Logger) *http.Server {
	return &http.Server{
		Addr: ":" + cfg.Port,
		Handler: httpapi.NewRouter(httpapi.Options{
			Chat:               chat.Handler(svc, logger),
			StaticDir:          cfg.StaticDir,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			Logger:             logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
