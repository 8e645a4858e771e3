package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/trogers1052/bond-crm-service/internal/analyzer"
	"github.com/trogers1052/bond-crm-service/internal/api"
	"github.com/trogers1052/bond-crm-service/internal/config"
	"github.com/trogers1052/bond-crm-service/internal/database"
	"github.com/trogers1052/bond-crm-service/internal/direction"
	"github.com/trogers1052/bond-crm-service/internal/gemini"
	"github.com/trogers1052/bond-crm-service/internal/kafka"
	"github.com/trogers1052/bond-crm-service/internal/logging"
	"github.com/trogers1052/bond-crm-service/internal/metrics"
	"github.com/trogers1052/bond-crm-service/internal/redis"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	// Connect to database
	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := runMigrations(cfg.Database.MigrationsPath, cfg.Database.ConnectionString(), logger); err != nil {
		return err
	}
	logger.Info("Connected to PostgreSQL database")

	institutions, err := cfg.Validation.LoadInstitutions()
	if err != nil {
		return err
	}
	if institutions == nil {
		institutions = direction.DefaultInstitutions
	}
	classifier, err := direction.NewClassifier(institutions)
	if err != nil {
		return err
	}

	m := metrics.New()
	opts := analyzer.Options{
		Store:    db,
		Metrics:  m,
		CacheTTL: cfg.Redis.CacheTTL,
		Logger:   logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	model, err := gemini.NewModel(ctx, cfg.Gemini)
	switch {
	case errors.Is(err, gemini.ErrNotConfigured):
		logger.Warn("GEMINI_API_KEY not set, transcript analysis disabled")
	case err != nil:
		return err
	default:
		opts.Extractor = gemini.NewExtractor(model, cfg.Gemini.Model, cfg.Gemini.Timeout, logger)
		logger.Info("Transcript extractor initialized", zap.String("model", cfg.Gemini.Model))
	}

	deps := api.Dependencies{Repo: db, Logger: logger}

	// Connect to Redis
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		logger.Warn("Failed to connect to Redis, continuing without cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		opts.Cache = redisClient
		deps.Cache = redisClient
		logger.Info("Connected to Redis cache")
	}

	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ActivitiesTopic)
		defer producer.Close()
		opts.Publisher = producer
		deps.Publishing = true
		logger.Info("Kafka producer initialized",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.ActivitiesTopic))
	}

	service := analyzer.New(direction.NewValidator(classifier), opts)
	deps.Service = service

	var consumer *kafka.TranscriptConsumer
	if cfg.Kafka.Enabled {
		consumer = kafka.NewTranscriptConsumer(
			cfg.Kafka.Brokers,
			cfg.Kafka.TranscriptsTopic,
			cfg.Kafka.ConsumerGroup,
			service,
			logger,
		)
		deps.Consumer = consumer
	}

	router := api.SetupRoutes(api.NewHandler(deps), m.Handler())

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Gemini.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if consumer != nil {
		g.Go(func() error {
			logger.Info("Starting Kafka transcript consumer",
				zap.String("topic", cfg.Kafka.TranscriptsTopic),
				zap.String("group", cfg.Kafka.ConsumerGroup))
			defer consumer.Close()
			return consumer.Start(gctx)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func runMigrations(sourceURL, databaseURL string, logger *zap.Logger) error {
	m, err := migrate.New(sourceURL, databaseURL)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No migrations to apply; database is up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database migrations applied")
	return nil
}
