package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tttsupply/inventory-backend/api/controllers"
	"github.com/tttsupply/inventory-backend/api/routes"
	"github.com/tttsupply/inventory-backend/internal/assignments"
	"github.com/tttsupply/inventory-backend/internal/auth"
	"github.com/tttsupply/inventory-backend/internal/balances"
	hubsvc "github.com/tttsupply/inventory-backend/internal/hubs"
	"github.com/tttsupply/inventory-backend/internal/ledger"
	"github.com/tttsupply/inventory-backend/internal/notifications"
	productsvc "github.com/tttsupply/inventory-backend/internal/products"
	"github.com/tttsupply/inventory-backend/internal/shipments"
	"github.com/tttsupply/inventory-backend/internal/supplyrequests"
	usersvc "github.com/tttsupply/inventory-backend/internal/users"
	"github.com/tttsupply/inventory-backend/pkg/config"
	"github.com/tttsupply/inventory-backend/pkg/db"
	"github.com/tttsupply/inventory-backend/pkg/logger"
	"github.com/tttsupply/inventory-backend/pkg/metrics"
	"github.com/tttsupply/inventory-backend/pkg/migrate"
	"github.com/tttsupply/inventory-backend/pkg/redis"
)

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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, login rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	ledgerMetrics := metrics.NewLedgerMetrics(registry)

	gormDB := dbClient.DB()

	authService, err := auth.NewService(usersvc.NewRepository(gormDB), cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	usersService, err := usersvc.NewService(usersvc.NewRepository(gormDB), cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}

	hubsService, err := hubsvc.NewService(hubsvc.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create hubs service", err)
		os.Exit(1)
	}

	productsService, err := productsvc.NewService(productsvc.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create products service", err)
		os.Exit(1)
	}

	assignmentsService, err := assignments.NewService(assignments.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create assignments service", err)
		os.Exit(1)
	}

	ledgerService, err := ledger.NewService(ledger.NewRepository(gormDB), ledgerMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create ledger service", err)
		os.Exit(1)
	}

	balancesService, err := balances.NewService(balances.NewRepository(gormDB), cfg.Stock.LowStockThreshold)
	if err != nil {
		logg.Error(context.Background(), "failed to create balances service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	supplyRequestsService, err := supplyrequests.NewService(supplyrequests.NewRepository(gormDB), notificationsService, usersService)
	if err != nil {
		logg.Error(context.Background(), "failed to create supply requests service", err)
		os.Exit(1)
	}

	shipmentsService, err := shipments.NewService(shipments.NewRepository(gormDB))
	if err != nil {
		logg.Error(context.Background(), "failed to create shipments service", err)
		os.Exit(1)
	}

	deps := map[string]controllers.Pinger{"postgres": dbClient}
	if redisClient != nil {
		deps["redis"] = redisClient
	}

	handler := routes.NewRouter(cfg, logg, deps, redisClient, registry, routes.Services{
		Auth:           authService,
		Users:          usersService,
		Hubs:           hubsService,
		Products:       productsService,
		Assignments:    assignmentsService,
		Ledger:         ledgerService,
		Balances:       balancesService,
		Notifications:  notificationsService,
		SupplyRequests: supplyRequestsService,
		Shipments:      shipmentsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during shutdown", err)
		}
	}
}
