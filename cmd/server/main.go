package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"medexplain/internal/config"
	"medexplain/internal/faq"
	"medexplain/internal/handler"
	"medexplain/internal/matrix"
	"medexplain/internal/observability/logging"
	"medexplain/internal/observability/metrics"
	"medexplain/internal/observability/tracing"
	"medexplain/internal/parser"
	_ "medexplain/internal/parser/claude"
	_ "medexplain/internal/parser/gemini"
	_ "medexplain/internal/parser/openai"
	"medexplain/internal/port"
	"medexplain/internal/repository/memory"
	"medexplain/internal/repository/postgres"
	"medexplain/internal/repository/sqlite"
	"medexplain/internal/router"
	"medexplain/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
		logger.Info("sentry error reporting enabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tp, err := tracing.Init(ctx, cfg.Tracing, cfg.Server.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize session store
	sessionRepo, closer, err := openSessionStore(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	// Initialize the document understanding chain
	chain, err := parser.BuildChain(&cfg.Parser, cfg.Breaker, logger, m)
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}
	understanding := parser.NewUnderstanding(chain, logger)
	engine := matrix.NewEngine(understanding, cfg.Matrix, logger, m)
	logger.Info("interaction matrix configured",
		zap.String("failure_policy", string(engine.Policy())),
		zap.Int("max_pairs", cfg.Matrix.MaxPairs))

	// Initialize services
	sessionSvc := service.NewSessionService(sessionRepo, cfg.Session.TTL, logger, m)
	extractionSvc := service.NewExtractionService(understanding, sessionRepo, logger)
	reportSvc := service.NewReportService(understanding, sessionRepo, logger)
	interactionSvc := service.NewInteractionService(engine, sessionRepo, logger)

	sweeper := service.NewSessionSweeper(sessionRepo, cfg.Session.SweepSchedule, logger, m)
	if err := sweeper.Start(); err != nil {
		return err
	}
	defer sweeper.Stop()

	faqEntries, err := faq.Default()
	if err != nil {
		return fmt.Errorf("failed to load faq: %w", err)
	}

	// Initialize handlers
	errs := handler.NewErrorHandler(logger)
	maxBytes := cfg.Upload.MaxBytes()
	r := router.Setup(router.Handlers{
		Health:      handler.NewHealthHandler(sessionRepo),
		FAQ:         handler.NewFAQHandler(faqEntries),
		Session:     handler.NewSessionHandler(sessionSvc, errs),
		Medication:  handler.NewMedicationHandler(extractionSvc, errs, maxBytes),
		Report:      handler.NewReportHandler(reportSvc, errs, maxBytes),
		Interaction: handler.NewInteractionHandler(interactionSvc, sessionSvc, errs),
	}, router.Options{
		Logger:         logger,
		Metrics:        m,
		Gatherer:       reg,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		ServiceName:    cfg.Tracing.ServiceName,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", cfg.Server.Port), zap.String("store", cfg.Store.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openSessionStore(cfg *config.Config, logger *zap.Logger) (port.SessionRepository, io.Closer, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		logger.Info("using postgres session store", zap.String("host", cfg.DB.Host), zap.String("db", cfg.DB.Name))
		return postgres.NewSessionRepo(db), db, nil
	case "sqlite":
		store, err := sqlite.NewSessionStore(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("using sqlite session store", zap.String("path", cfg.Store.SQLitePath))
		return store, store, nil
	default:
		logger.Info("using in-memory session store")
		return memory.NewSessionRepo(), nopCloser{}, nil
	}
}
