package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/palazzem/cash-register/internal/adapter/cache"
	"github.com/palazzem/cash-register/internal/adapter/handler"
	"github.com/palazzem/cash-register/internal/adapter/middleware"
	"github.com/palazzem/cash-register/internal/adapter/storage"
	"github.com/palazzem/cash-register/internal/adapter/storage/memory"
	"github.com/palazzem/cash-register/internal/core/catalog"
	"github.com/palazzem/cash-register/internal/core/config"
	"github.com/palazzem/cash-register/internal/core/domain"
	"github.com/palazzem/cash-register/internal/core/receipts"
	"github.com/palazzem/cash-register/internal/core/worker"
	"github.com/palazzem/cash-register/internal/pkg/grpcserver"
	logx "github.com/palazzem/cash-register/internal/pkg/logger"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		logx.Fatal().Err(err).Msg("❌ Invalid configuration")
	}

	// 2. Setup Logger
	logx.Init(cfg.Environment())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var closers []io.Closer

	// 3. Storage: Postgres, or process memory for local development
	var (
		products     catalog.Repository
		productsByID receipts.Catalog
		store        receipts.Store
	)
	if cfg.Database.URL == "" {
		if cfg.Environment().IsProduction() {
			logx.Fatal().Msg("❌ DATABASE_URL is required in production")
		}
		logx.Warn().Msg("⚠️ DATABASE_URL is not set, data is kept in memory only")
		mem := memory.New()
		products, productsByID, store = mem, mem, mem
	} else {
		dbPool, err := storage.ConnectDB(ctx, cfg.Database.URL, cfg.Database.MaxConns)
		if err != nil {
			logx.Fatal().Err(err).Msg("❌ Database connection failed")
		}
		defer dbPool.Close()
		if err := storage.Migrate(ctx, dbPool); err != nil {
			logx.Fatal().Err(err).Msg("❌ Database migration failed")
		}
		productRepo := storage.NewProductRepository(dbPool)
		products, productsByID = productRepo, productRepo
		store = storage.NewReceiptRepository(dbPool)
	}

	// 4. Catalog cache
	if cfg.Redis.Enabled() {
		rdb, err := cfg.Redis.New(ctx)
		if err != nil {
			logx.Fatal().Err(err).Msg("❌ Redis connection failed")
		}
		closers = append(closers, rdb)
		productsByID = cache.NewCatalog(rdb, productsByID, cfg.CatalogCacheTTL)
		logx.Info().Dur("ttl", cfg.CatalogCacheTTL).Msg("catalog cache enabled")
	}

	// 5. Push adapters, in the configured order
	registry, adapterClosers, err := buildRegistry(cfg, prometheus.DefaultRegisterer)
	if err != nil {
		logx.Fatal().Err(err).Msg("❌ Push adapters setup failed")
	}
	closers = append(closers, adapterClosers...)

	// 6. Services & Handlers
	currencies := make([]domain.Currency, 0, len(cfg.Currencies))
	for _, c := range cfg.Currencies {
		currencies = append(currencies, domain.Currency(c))
	}
	validator := receipts.NewValidator(productsByID, currencies...)
	receiptService := receipts.NewService(validator, store, registry)
	catalogService := catalog.NewService(products, validator.DefaultCurrency())

	backfill := worker.NewBackfillWorker(receiptService, cfg.BackfillQueueSize)
	backfill.Start(ctx)

	productHandler := &handler.ProductHandler{Catalog: catalogService}
	receiptHandler := &handler.ReceiptHandler{Service: receiptService, Backfill: backfill}

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.NewServerMetrics(prometheus.DefaultRegisterer).Handler())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "adapters": registry.Len()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 8. Routes (admin only)
	api := app.Group("/v1")
	if cfg.AdminAPIKeyHash != "" {
		api.Use(middleware.Protected(cfg.AdminAPIKeyHash))
	} else {
		logx.Warn().Msg("⚠️ ADMIN_API_KEY_HASH is not set, the API is not protected")
	}
	handler.Mount(api, productHandler, receiptHandler)

	// 9. Optional gRPC health probe
	var grpcSrv *grpcserver.Server
	if cfg.GRPCAddr != "" {
		grpcSrv = grpcserver.New(cfg.GRPCAddr)
		lis, err := grpcSrv.Listen()
		if err != nil {
			logx.Fatal().Err(err).Str("addr", cfg.GRPCAddr).Msg("❌ gRPC listen failed")
		}
		go func() {
			logx.Info().Str("addr", lis.Addr().String()).Msg("gRPC health server starting")
			if err := grpcSrv.Serve(lis); err != nil {
				logx.Error().Err(err).Msg("gRPC server stopped")
			}
		}()
		grpcSrv.SetServing(true)
	}

	// Create a channel to listen for OS signals (Ctrl+C, Docker Stop)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logx.Info().
			Str("env", cfg.Env).
			Str("port", cfg.Port).
			Strs("adapters", cfg.PushAdapters).
			Msg("🚀 Server starting")
		if err := app.Listen(":" + cfg.Port); err != nil {
			logx.Error().Err(err).Msg("Server forced to shutdown")
		}
	}()

	// Block here until we receive a stop signal
	<-stop
	logx.Info().Msg("🛑 Shutting down server...")

	if grpcSrv != nil {
		grpcSrv.SetServing(false)
		grpcSrv.Stop()
	}

	// Finish active requests before the adapters go away
	if err := app.Shutdown(); err != nil {
		logx.Error().Err(err).Msg("Server shutdown failed")
	}

	cancel()
	backfill.Wait()

	for _, c := range closers {
		if err := c.Close(); err != nil {
			logx.Warn().Err(err).Msg("close failed")
		}
	}

	logx.Info().Msg("👋 Server exited successfully")
}
