// File: cmd/app/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"image-gateway/internal/config"
	"image-gateway/internal/domain/ports/adapter"
	notifyAdapters "image-gateway/internal/infra/adapters/notify"
	"image-gateway/internal/infra/adapters/upstream"
	pg "image-gateway/internal/infra/db/postgres"
	"image-gateway/internal/infra/logging"
	"image-gateway/internal/infra/metrics"
	red "image-gateway/internal/infra/redis"
	"image-gateway/internal/infra/storage"
	"image-gateway/internal/infra/web"
	"image-gateway/internal/provider"
	"image-gateway/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, verbose prompts)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("[DEV MODE] enabled")
	}

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()
	locker := red.NewLocker(redisClient)
	credCache := red.NewCredentialCache(redisClient, cfg.Redis.TTL)

	// ---- Repositories ----
	credRepo := pg.NewCredentialRepoCacheDecorator(pg.NewCredentialRepo(pool), credCache)
	quotaRepo := pg.NewQuotaRepo(pool)
	auditRepo := pg.NewAuditRepo(pool)

	// ---- Adapters ----
	upstreamClient := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.RequestTimeout)

	objStore, err := storage.NewS3Storage(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	var notifier adapter.OperatorNotifier
	if cfg.Alerts.TelegramToken != "" {
		notifier, err = notifyAdapters.NewTelegramNotifier(cfg.Alerts.TelegramToken, cfg.Alerts.TelegramChatID)
		if err != nil {
			log.Fatalf("telegram notifier: %v", err)
		}
		logger.Info().Msg("operator alerts: telegram")
	} else {
		notifier = notifyAdapters.NewNoopNotifier()
	}

	// ---- Metrics ----
	metrics.MustRegister()

	// ---- Use cases ----
	catalog := provider.DefaultCatalog().WithDefaultModel(cfg.Upstream.DefaultModel)
	poller := usecase.NewJobPoller(upstreamClient, usecase.PollerConfig{
		MaxAttempts: cfg.Upstream.PollAttempts,
		Interval:    cfg.Upstream.PollInterval,
	}, logger)
	mat := usecase.NewMaterializer(upstreamClient, objStore, auditRepo, notifier, cfg.Storage.SignTTL, logger)
	quotaUC := usecase.NewQuotaUseCase(quotaRepo, locker, notifier, logger)
	genUC := usecase.NewGenerationUseCase(catalog, poller, mat, auditRepo, credRepo, logger)

	// ---- HTTP servers ----
	srv := web.NewServer(genUC, quotaUC, credRepo, cfg.Admin, logger)

	public := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.PublicRouter(),
	}
	admin := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.AdminPort),
		Handler: srv.AdminRouter(),
	}

	go func() {
		logger.Info().Str("addr", public.Addr).Msg("public api listening")
		if err := public.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("public server error")
		}
	}()
	go func() {
		logger.Info().Str("addr", admin.Addr).Msg("admin api listening")
		if err := admin.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("admin server error")
		}
	}()

	// ---- Graceful shutdown ----
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = public.Shutdown(shutdownCtx)
	_ = admin.Shutdown(shutdownCtx)
}
