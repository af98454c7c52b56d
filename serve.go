package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront-api/auth"
	"storefront-api/cache"
	"storefront-api/config"
	"storefront-api/events"
	"storefront-api/handler"
	"storefront-api/service"
	"storefront-api/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply migrations and start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	pg, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB connection failed: %w", err)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		return fmt.Errorf("failed running migrations: %w", err)
	}
	logger.Info("Database migrations executed successfully")

	var st store.Store = pg

	// --- Cache (optional) ---
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = cache.ConnectRedis(ctx, cache.Options{Addr: cfg.RedisURL, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		st = cache.NewCachedStore(pg, rdb, logger)
		logger.Info("Catalog cache enabled", zap.String("redis", cfg.RedisURL))
	}

	// --- Events (optional) ---
	var pub events.Publisher = events.Discard{}
	if cfg.KafkaBrokers != "" {
		pub = events.NewKafkaProducer(cfg.KafkaBrokers, cfg.OrderTopic, logger)
		logger.Info("Order events enabled",
			zap.String("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.OrderTopic))
	}
	defer pub.Close()

	// --- Service ---
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	svc := service.NewService(st, auth.NewPasswords(cfg.BcryptCost), tokens, pub, logger,
		service.Options{DecrementStock: cfg.DecrementStock})
	var serviceInterface service.ServiceInterface = svc

	// --- Handlers ---
	limiter, err := handler.NewRateLimiter(cfg.RateLimit, cfg.RateWindow, rdb)
	if err != nil {
		return err
	}
	h := handler.NewHandler(serviceInterface, tokens, limiter, logger)

	r := mux.NewRouter()
	h.RegisterRoutes(r)

	// --- Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", zap.String("port", cfg.Port),
			zap.Bool("decrement_stock", cfg.DecrementStock))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("Server exited")
	return nil
}
