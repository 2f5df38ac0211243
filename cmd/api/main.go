package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studyhub/internal/chat"
	"studyhub/internal/config"
	"studyhub/internal/database"
	"studyhub/internal/database/migration"
	handlers "studyhub/internal/http/handler"
	"studyhub/internal/http/middleware"
	"studyhub/internal/logging"
	"studyhub/internal/otel"
	"studyhub/internal/repository/postgres"
	"studyhub/internal/service"
	"studyhub/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title Study Hub API
// @version 1.0
// @description Study assistant backend: uploads with text extraction, exam catalog, chat and study streaks.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := logging.Location(cfg.Timezone)
	log := logging.New(os.Stdout, cfg.LogLevel, loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize tracing")
	}

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		log.WithError(err).Fatal("failed to apply database schema")
	}

	store, err := storage.Open(cfg.Storage, cfg.MinIO)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize upload storage")
	}
	log.WithField("backend", cfg.Storage.Backend).Info("upload storage ready")

	services := handlers.Services{
		Uploads:  service.NewUploadService(store, postgres.NewUploadPostgres(db), log, cfg.Upload.AutoProcess),
		Exams:    service.NewExamService(postgres.NewExamPostgres(db), log),
		Chat:     service.NewChatService(postgres.NewChatPostgres(db), chat.NewResponder(nil, chat.DefaultReply), log),
		Account:  service.NewAccountService(postgres.NewAccountPostgres(db), log),
		Location: loc,
	}

	prom, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.WithError(err).Fatal("failed to register http metrics")
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    cfg.Upload.MaxBytes,
	})

	app.Use(recover.New())
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(prom.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	handlers.RegisterRoutes(app, db, services)

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.WithError(err).Error("http shutdown failed")
		}
	}()

	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("listening")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Error("server stopped")
	}

	tctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := shutdownTracing(tctx); err != nil {
		log.WithError(err).Warn("tracing shutdown failed")
	}
}
