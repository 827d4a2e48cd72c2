package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/neoyoli49-wq/mybudgetny/internal/accounts"
	"github.com/neoyoli49-wq/mybudgetny/internal/config"
	apphttp "github.com/neoyoli49-wq/mybudgetny/internal/http"
	"github.com/neoyoli49-wq/mybudgetny/internal/log"
	"github.com/neoyoli49-wq/mybudgetny/internal/notify"
	"github.com/neoyoli49-wq/mybudgetny/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	var (
		st  store.Store
		err error
	)
	switch cfg.StateBackend {
	case "sqlite":
		st, err = store.NewSQLiteStore(cfg.SQLiteDBPath, logger)
	case "memory":
		st = store.NewMemoryStore()
	default:
		st, err = store.NewFileStore(cfg.StateFilePath, logger)
	}
	if err != nil {
		logger.Error("Failed to initialize state store",
			log.FieldError, err, log.FieldBackend, cfg.StateBackend)
		os.Exit(1)
	}
	defer st.Close()

	var notifier notify.Publisher = notify.Noop{}
	if cfg.AMQPURL != "" {
		amqpPub, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			// Key events are best-effort; run without them.
			logger.Warn("AMQP notifier unavailable, key events disabled", log.FieldError, err)
		} else {
			notifier = amqpPub
			defer amqpPub.Close()
		}
	}

	manager := accounts.NewManager(st, notifier, logger)

	srv := apphttp.NewServer(":"+cfg.Port, manager, logger)
	srv.ReadTimeout = cfg.ReadTimeout
	srv.WriteTimeout = cfg.WriteTimeout
	srv.IdleTimeout = cfg.IdleTimeout
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting mybudgetny server",
			"port", cfg.Port, log.FieldBackend, cfg.StateBackend, log.FieldOperation, log.OpStartup)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)
		return srv.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
