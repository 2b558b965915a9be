package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/Ms-You/emmerce-api-sub000/api/routes"
	"github.com/Ms-You/emmerce-api-sub000/internal/deliveries"
	"github.com/Ms-You/emmerce-api-sub000/internal/orders"
	"github.com/Ms-You/emmerce-api-sub000/internal/payments"
	"github.com/Ms-You/emmerce-api-sub000/internal/products"
	"github.com/Ms-You/emmerce-api-sub000/internal/reviews"
	"github.com/Ms-You/emmerce-api-sub000/pkg/config"
	"github.com/Ms-You/emmerce-api-sub000/pkg/db"
	"github.com/Ms-You/emmerce-api-sub000/pkg/kakaopay"
	"github.com/Ms-You/emmerce-api-sub000/pkg/logger"
	"github.com/Ms-You/emmerce-api-sub000/pkg/migrate"
	"github.com/Ms-You/emmerce-api-sub000/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	gateway, err := kakaopay.NewClient(cfg.Gateway)
	if err != nil {
		logg.Error(ctx, "failed to create payment gateway client", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	productsRepo := products.NewRepository(gormDB)
	deliveriesRepo := deliveries.NewRepository(gormDB)
	ordersRepo := orders.NewRepository(gormDB)
	reviewsRepo := reviews.NewRepository(gormDB)
	paymentsRepo := payments.NewRepository(gormDB)

	deliveryService, err := deliveries.NewService(deliveriesRepo)
	if err != nil {
		logg.Error(ctx, "failed to create delivery service", err)
		os.Exit(1)
	}
	orderService, err := orders.NewService(ordersRepo, dbClient, productsRepo, deliveriesRepo, reviewsRepo)
	if err != nil {
		logg.Error(ctx, "failed to create order service", err)
		os.Exit(1)
	}
	reviewService, err := reviews.NewService(reviewsRepo, ordersRepo, deliveriesRepo)
	if err != nil {
		logg.Error(ctx, "failed to create review service", err)
		os.Exit(1)
	}
	paymentService, err := payments.NewService(paymentsRepo, ordersRepo, productsRepo, deliveriesRepo, gateway, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create payment service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	handler := routes.NewRouter(routes.Deps{
		Config:      cfg,
		Logger:      logg,
		DBPinger:    dbClient,
		RedisPinger: redisClient,
		IdemStore:   redisClient,
		Registry:    registry,
		Orders:      orderService,
		Payments:    paymentService,
		Deliveries:  deliveryService,
		Reviews:     reviewService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			_ = closeResources(dbClient, redisClient)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "graceful shutdown failed", err)
		}
	}

	if err := closeResources(dbClient, redisClient); err != nil {
		logg.Error(logCtx, "error closing resources", err)
		os.Exit(1)
	}
	logg.Info(logCtx, "api server stopped")
}

func closeResources(dbClient *db.Client, redisClient *redis.Client) error {
	return multierr.Combine(
		dbClient.Close(),
		redisClient.Close(),
	)
}
