package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tiendaops/tienda-backend/api/routes"
	"github.com/tiendaops/tienda-backend/internal/currency"
	"github.com/tiendaops/tienda-backend/internal/customers"
	"github.com/tiendaops/tienda-backend/internal/inventory"
	"github.com/tiendaops/tienda-backend/internal/invoices"
	"github.com/tiendaops/tienda-backend/internal/orders"
	"github.com/tiendaops/tienda-backend/internal/payments"
	"github.com/tiendaops/tienda-backend/internal/products"
	"github.com/tiendaops/tienda-backend/internal/reports"
	"github.com/tiendaops/tienda-backend/pkg/config"
	"github.com/tiendaops/tienda-backend/pkg/db"
	"github.com/tiendaops/tienda-backend/pkg/logger"
	"github.com/tiendaops/tienda-backend/pkg/metrics"
	"github.com/tiendaops/tienda-backend/pkg/migrate"
	"github.com/tiendaops/tienda-backend/pkg/redis"
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

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	ops := metrics.NewOpsMetrics(prometheus.DefaultRegisterer)

	productService, err := products.NewService(products.NewRepository(dbClient.DB()))
	requireService(logg, "products", err)

	customerService, err := customers.NewService(customers.NewRepository(dbClient.DB()))
	requireService(logg, "customers", err)

	orderService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()), dbClient, inventory.Engine{}, ops)
	requireService(logg, "orders", err)

	invoiceService, err := invoices.NewService(
		invoices.NewRepository(dbClient.DB()), dbClient, ops)
	requireService(logg, "invoices", err)

	paymentService, err := payments.NewService(
		payments.NewRepository(dbClient.DB()), dbClient, ops)
	requireService(logg, "payments", err)

	rateFetcher, err := currency.NewHTTPFetcher(cfg.Currency.RateAPIURL,
		&http.Client{Timeout: cfg.Currency.RequestTimeout})
	requireService(logg, "currency fetcher", err)

	currencyService, err := currency.NewService(
		dbClient.DB(), redisClient, rateFetcher, cfg.Currency, logg)
	requireService(logg, "currency", err)

	reportService, err := reports.NewService(dbClient.DB())
	requireService(logg, "reports", err)

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
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, routes.Services{
			Products:  productService,
			Customers: customerService,
			Orders:    orderService,
			Invoices:  invoiceService,
			Payments:  paymentService,
			Currency:  currencyService,
			Reports:   reportService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+name+" service", err)
	os.Exit(1)
}
