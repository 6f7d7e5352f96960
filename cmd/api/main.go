package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"caseapi/docs"
	"caseapi/internal/config"
	"caseapi/internal/database"
	"caseapi/internal/database/migration"
	handlers "caseapi/internal/http/handler"
	"caseapi/internal/http/middleware"
	"caseapi/internal/logger"
	"caseapi/internal/otel"
	"caseapi/internal/repository/postgres"
	"caseapi/internal/service"
	"caseapi/internal/storage"
)

// @title Procurement Case API
// @version 1.0
// @description Tracks procurement cases, their documents and status history.
// @BasePath /
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid_config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.Fatal("tracing_init_failed", zap.Error(err))
	}

	db, err := database.NewSQLX(cfg.Database)
	if err != nil {
		log.Fatal("db_connect_failed", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.Fatal("db_migration_failed", zap.Error(err))
	}

	fallbacks, err := storage.NewFallbackCounter(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("metrics_init_failed", zap.Error(err))
	}
	store, err := storage.New(cfg, log, storage.WithFallbackCounter(fallbacks))
	if err != nil {
		log.Fatal("storage_init_failed", zap.Error(err))
	}

	var files *storage.LocalStore
	if cfg.Storage.ServeLocal {
		if files, err = storage.NewLocalStore(cfg.Storage.LocalPath); err != nil {
			log.Fatal("storage_init_failed", zap.Error(err))
		}
	}

	caseSvc, err := service.NewCaseService(
		postgres.NewCasePostgres(db),
		postgres.NewDocumentPostgres(db),
		postgres.NewHistoryPostgres(db),
		store,
		cfg.CaseNumberPrefix,
		validator.New(),
		log.Named("service"),
	)
	if err != nil {
		log.Fatal("service_init_failed", zap.Error(err))
	}

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatal("metrics_init_failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "caseapi",
		BodyLimit:    int(cfg.MaxUploadBytes),
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(otelfiber.Middleware())
	// RequestID must run before Logger so every log line carries the id.
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log.Named("http")))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, caseSvc, files)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error("server_shutdown_failed", zap.Error(err))
		}
		if err := shutdownTracing(shutdownCtx); err != nil {
			log.Error("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	log.Info("server_starting",
		zap.String("addr", addr),
		zap.String("env", cfg.Env),
		zap.Bool("remote_storage", store.RemoteEnabled()),
	)
	if err := app.Listen(addr); err != nil {
		log.Fatal("server_start_failed", zap.Error(err))
	}
}
