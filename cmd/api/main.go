package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/josh-kwaku/razorpay-kafka-relay/internal/config"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/domain"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/handler"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/logging"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/queue"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/razorpay"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/repository"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/server"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/service"
	"github.com/josh-kwaku/razorpay-kafka-relay/internal/tracing"
)

func main() {
	if err := run(); err != nil {
		slog.Error("razorpay relay exited", "error", err)
		os.Exit(1)
	}
}

type userStore interface {
	AddPayment(ctx context.Context, userID string, p domain.PaymentEntry) error
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logging.Init("razorpay-kafka-relay", cfg.LogLevel, cfg.AppEnv)

	var spanOut io.Writer
	if cfg.TraceStdout {
		spanOut = os.Stdout
	}
	tp, err := tracing.Init("razorpay-kafka-relay", spanOut)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Error("failed to flush traces", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handler.Check{}

	var users userStore
	if cfg.UsePostgres() {
		db, err := repository.NewPostgresDB(ctx, cfg.DatabaseURL, repository.PoolConfig{
			MaxOpenConns:     cfg.DBMaxOpenConns,
			MaxIdleConns:     cfg.DBMaxIdleConns,
			ConnMaxLifetimeS: cfg.DBConnMaxLifetimeS,
			ConnMaxIdleTimeS: cfg.DBConnMaxIdleTimeS,
		})
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()

		repo := repository.NewUserRepository(db)
		checks["database"] = repo.Ping
		users = repo
		log.Info("using postgres user store")
	} else {
		users = repository.NewMemoryUserRepository(repository.DemoUsers()...)
		log.Warn("DATABASE_URL not set, using in-memory user store")
	}

	publisher := queue.NewKafkaPublisher(queue.Config{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaTopic,
		ClientID:    cfg.KafkaClientID,
		DialTimeout: cfg.KafkaDialTimeout,
		MaxAttempts: cfg.PublishMaxAttempts,
		RetryDelay:  cfg.PublishRetryDelay,
	}, log)
	if err := publisher.Connect(ctx); err != nil {
		return fmt.Errorf("connect kafka: %w", err)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("failed to close kafka producer", "error", err)
		}
	}()
	checks["kafka"] = publisher.Ping

	orders := razorpay.NewOrderClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	if orders == nil {
		log.Warn("razorpay API credentials not set, payment initiation disabled")
	}

	router := server.NewRouter(log, server.Handlers{
		Webhooks: handler.NewWebhookHandler(service.NewRecordUpdater(users), publisher, cfg.WebhookSecret),
		Payments: handler.NewPaymentHandler(orders),
		Health:   handler.NewHealthHandler(checks),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server started", "addr", addr, "topic", cfg.KafkaTopic)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}
