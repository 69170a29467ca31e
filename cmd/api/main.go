package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	accountshttp "github.com/shopcore/storefront/internal/accounts/adapters/http"
	accountspostgres "github.com/shopcore/storefront/internal/accounts/adapters/postgres"
	accountsapp "github.com/shopcore/storefront/internal/accounts/app"
	cartshttp "github.com/shopcore/storefront/internal/cart/adapters/http"
	cartsmemory "github.com/shopcore/storefront/internal/cart/adapters/memory"
	cartspostgres "github.com/shopcore/storefront/internal/cart/adapters/postgres"
	cartsredis "github.com/shopcore/storefront/internal/cart/adapters/redis"
	cartsapp "github.com/shopcore/storefront/internal/cart/app"
	cartports "github.com/shopcore/storefront/internal/cart/ports"
	cataloghttp "github.com/shopcore/storefront/internal/catalog/adapters/http"
	catalogpostgres "github.com/shopcore/storefront/internal/catalog/adapters/postgres"
	catalogapp "github.com/shopcore/storefront/internal/catalog/app"
	"github.com/shopcore/storefront/internal/config"
	"github.com/shopcore/storefront/internal/database"
	idempostgres "github.com/shopcore/storefront/internal/idempotency/postgres"
	"github.com/shopcore/storefront/internal/kafka"
	"github.com/shopcore/storefront/internal/orders/adapters"
	ordershttp "github.com/shopcore/storefront/internal/orders/adapters/http"
	orderspostgres "github.com/shopcore/storefront/internal/orders/adapters/postgres"
	ordersapp "github.com/shopcore/storefront/internal/orders/app"
	ordersmetrics "github.com/shopcore/storefront/internal/orders/metrics"
	"github.com/shopcore/storefront/internal/orders/ports"
	reviewshttp "github.com/shopcore/storefront/internal/reviews/adapters/http"
	reviewspostgres "github.com/shopcore/storefront/internal/reviews/adapters/postgres"
	reviewsapp "github.com/shopcore/storefront/internal/reviews/app"
	"github.com/shopcore/storefront/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		slog.Error("service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := telemetry.NewLogger(telemetry.ParseLevel(cfg.Telemetry.LogLevel))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tel, err := telemetry.Initialize(ctx, telemetry.Config{
		ServiceName:    cfg.Service.Name,
		ServiceVersion: cfg.Service.Version,
		Environment:    cfg.Service.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTelEndpoint,
		EnableTracing:  cfg.Telemetry.EnableTracing,
		EnableMetrics:  cfg.Telemetry.EnableMetrics,
		SampleRate:     cfg.Telemetry.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		logger.Info("running database migrations", "path", cfg.Database.MigrationsPath)
		if err := database.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsPath); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("migrations completed")
	}

	meter := tel.MeterProvider().Meter(cfg.Service.Name)

	dbMetrics, err := database.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create database metrics: %w", err)
	}
	kafkaMetrics, err := kafka.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create kafka metrics: %w", err)
	}
	httpMetrics, err := ordershttp.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create http metrics: %w", err)
	}
	orderMetrics, err := ordersmetrics.NewMetrics(meter)
	if err != nil {
		return fmt.Errorf("create order metrics: %w", err)
	}

	// Orders wiring: repository and event bus carry their observable decorators.
	var orderRepo ports.OrderRepository = orderspostgres.NewRepository(pool)
	orderRepo = adapters.NewObservableRepository(orderRepo, dbMetrics)

	var eventBus ports.EventBus
	if len(cfg.Kafka.Brokers) > 0 {
		bus := kafka.NewEventBus(kafka.Config{
			Brokers:            cfg.Kafka.Brokers,
			OrderPlacedTopic:   cfg.Kafka.OrderPlacedTopic,
			StatusChangedTopic: cfg.Kafka.StatusChangedTopic,
		})
		defer func() {
			if err := bus.Close(); err != nil {
				logger.Warn("kafka writer close failed", "error", err)
			}
		}()
		eventBus = adapters.NewObservableEventBus(bus, kafkaMetrics)
		logger.Info("kafka event bus enabled", "brokers", cfg.Kafka.Brokers)
	} else {
		eventBus = kafka.NewNoopEventBus()
		logger.Info("kafka brokers not configured, events are logged only")
	}

	ordersService := ordersapp.NewService(
		orderRepo,
		orderspostgres.NewInventory(pool),
		orderspostgres.NewUserReader(pool),
		orderspostgres.NewAddressReader(pool),
		eventBus,
		idempostgres.NewStore(pool),
		logger,
		orderMetrics,
	)

	catalogService := catalogapp.NewService(
		catalogpostgres.NewProductRepository(pool),
		catalogpostgres.NewCategoryRepository(pool),
	)

	accountsService := accountsapp.NewService(
		accountspostgres.NewUserRepository(pool),
		accountspostgres.NewAddressRepository(pool),
	)

	// Guest carts live in Redis when configured, in process memory otherwise.
	var guestCarts cartports.GuestCartStore
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Warn("redis close failed", "error", err)
			}
		}()
		guestCarts = cartsredis.NewGuestCartStore(rdb, cfg.Redis.GuestCartTTL)
		logger.Info("redis guest cart store enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.GuestCartTTL)
	} else {
		guestCarts = cartsmemory.NewGuestCartStore()
		logger.Warn("redis not configured, guest carts are in-memory and volatile")
	}

	cartService := cartsapp.NewService(cartspostgres.NewCartStore(pool), guestCarts)

	reviewsService := reviewsapp.NewService(reviewspostgres.NewReviewRepository(pool))

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := database.CheckHealth(r.Context(), pool); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "error": err.Error()})
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	ordershttp.NewHandler(ordersService).Register(mux)
	cataloghttp.NewHandler(catalogService).Register(mux)
	accountshttp.NewHandler(accountsService).Register(mux)
	cartshttp.NewHandler(cartService).Register(mux)
	reviewshttp.NewHandler(reviewsService).Register(mux)

	handler := withRecovery(ordershttp.WithMetrics(mux, httpMetrics))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "port", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownGrace)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("http server stopped")
	return nil
}

func withRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "error", rec, "path", r.URL.Path)
				respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
