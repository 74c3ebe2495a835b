package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"devicegate/internal/integrity/cache"
	"devicegate/internal/integrity/checker"
	"devicegate/internal/integrity/events"
	"devicegate/internal/integrity/handler"
	"devicegate/internal/integrity/reputation"
	"devicegate/internal/integrity/service"
	devicestore "devicegate/internal/integrity/store/device"
	logstore "devicegate/internal/integrity/store/integritylog"
	"devicegate/internal/platform/config"
	"devicegate/internal/platform/httpserver"
	"devicegate/internal/platform/logger"
	"devicegate/internal/platform/postgres"
	platformredis "devicegate/internal/platform/redis"
	httptransport "devicegate/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal/integrity packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres unavailable", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis unavailable", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	sharedCache := cache.NewRedis(redisClient)
	if len(cfg.WhitelistedCountries) > 0 {
		if err := sharedCache.SeedSet(ctx, checker.WhitelistSetName, cfg.WhitelistedCountries...); err != nil {
			log.Error("seed whitelist failed", "error", err)
			os.Exit(1)
		}
	}

	apiSource := reputation.NewClient(cfg.VPNAPI.BaseURL, cfg.VPNAPI.Key, cfg.VPNAPI.Timeout)
	sources := reputation.NewSources(sharedCache, reputation.NewCacheSource(sharedCache), apiSource)

	chain := checker.NewChain(
		checker.NewCountry(sharedCache),
		checker.NewRootedDevice(),
		checker.NewPrivacyTools(sources, sharedCache, log),
	)

	devices := devicestore.NewPostgres(db)
	logs := logstore.NewPostgres(db)

	opts := []service.Option{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Error("kafka unavailable", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()

		recorder := events.NewRecorder(256, log)
		worker := events.NewWorker(recorder, publisher, log)
		go worker.Run(ctx)
		opts = append(opts, service.WithEventRecorder(recorder))
	}

	processor, err := service.New(devices, logs, chain, postgres.NewTxRunner(db), log, opts...)
	if err != nil {
		log.Error("service wiring failed", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(
		handler.New(processor, log),
		map[string]httptransport.HealthCheck{
			"postgres": db.PingContext,
			"redis":    redisClient.Health,
		},
	)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting devicegate", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
