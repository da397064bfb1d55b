package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"medledger/internal/audit"
	"medledger/internal/consent"
	"medledger/internal/events"
	"medledger/internal/platform/clock"
	"medledger/internal/platform/config"
	"medledger/internal/platform/httpserver"
	"medledger/internal/platform/logger"
	"medledger/internal/platform/metrics"
	platformredis "medledger/internal/platform/redis"
	"medledger/internal/registry"
	"medledger/internal/reporting"
	"medledger/internal/state"
	httptransport "medledger/internal/transport/http"
	id "medledger/pkg/domain"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	admin, err := id.ParsePrincipal(cfg.AdminPrincipal)
	if err != nil {
		log.Error("invalid administrator principal", "error", err.Error())
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var tx state.Tx
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err.Error())
			os.Exit(1)
		}
		defer pool.Close()
		if err := state.EnsureSchema(ctx, pool); err != nil {
			log.Error("schema bootstrap failed", "error", err.Error())
			os.Exit(1)
		}
		tx = state.NewPostgresTx(pool)
		log.Info("state store: postgres")
	} else {
		tx = state.NewMemoryTx(state.NewInMemoryStore())
		log.Warn("state store: in-memory, state will not survive restarts")
	}

	sink, cleanup, err := buildSink(cfg, log)
	if err != nil {
		log.Error("event sink setup failed", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	publisher := events.NewPublisher(cfg.EventBuffer, log)
	worker := events.NewWorker(sink, publisher.Inbox(), log)

	m := metrics.New()
	registrySvc := registry.NewService(tx, admin, publisher, m)
	consentSvc := consent.NewService(tx, publisher, m)
	reportingSvc := reporting.NewService(tx, admin, publisher, m)
	auditSvc := audit.NewService(tx)

	handler := httptransport.NewHandler(log, registrySvc, consentSvc, reportingSvc, auditSvc, clock.NewWall(cfg.TickInterval))
	router := httptransport.NewRouter(handler, log)
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting medledger", "addr", cfg.Addr, "admin", admin.String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err.Error())
		os.Exit(1)
	}
}

// buildSink picks the configured observability channel: Kafka when brokers
// are set, a Redis stream when a Redis URL is set, process memory otherwise.
func buildSink(cfg config.Server, log *slog.Logger) (events.Sink, func(), error) {
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := events.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, nil, err
		}
		log.Info("event sink: kafka", "topic", cfg.Kafka.Topic)
		return sink, sink.Close, nil
	}

	client, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, nil, err
	}
	if client != nil {
		log.Info("event sink: redis stream", "stream", cfg.EventStream)
		return events.NewRedisSink(client.Client, cfg.EventStream), func() { _ = client.Close() }, nil
	}

	log.Info("event sink: in-memory")
	return events.NewMemorySink(), func() {}, nil
}
