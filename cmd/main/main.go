package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	_ "time/tzdata" // Agenda time zones must resolve in minimal containers

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Ovitozinn/luxe-dash-suite/internal/config"
	"github.com/Ovitozinn/luxe-dash-suite/internal/events"
	"github.com/Ovitozinn/luxe-dash-suite/internal/httpapi"
	"github.com/Ovitozinn/luxe-dash-suite/internal/observer"
	"github.com/Ovitozinn/luxe-dash-suite/internal/storage"
	"github.com/Ovitozinn/luxe-dash-suite/internal/usecase"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/logger"
	"github.com/Ovitozinn/luxe-dash-suite/pkg/utils"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

// dispatchSink is a dispatch publisher that owns a connection.
type dispatchSink interface {
	usecase.DispatchPublisher
	Close()
}

func main() {
	// A local .env is optional
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	metricsEnabled := cfg.Metrics.Enabled
	observer.InitMetrics(metricsEnabled)

	loc := cfg.Agenda.Location()
	logger.Log.Info("Starting luxe-dash-suite",
		zap.String("environment", cfg.Environment),
		zap.String("version", version),
		zap.String("timezone", loc.String()),
		zap.Bool("nats_enabled", cfg.NATS.URL != ""),
	)

	// Initialize repositories
	postgresRepo, err := storage.NewPostgresRepo(storage.Options{
		DSN:             cfg.Database.PostgresDSN,
		Schema:          cfg.Database.Schema,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	})
	if err != nil {
		logger.Log.Fatal("Failed to initialize Postgres repository", zap.Error(err))
	}
	repo := storage.NewRepository(postgresRepo)

	// Agenda join strategy
	var (
		joiner       usecase.ContactJoiner
		lookupWorker *usecase.ContactLookupWorker
	)
	if cfg.Agenda.BatchContactLookup {
		joiner = usecase.NewBatchContactJoiner(repo)
		logger.Log.Info("Agenda contacts resolved with a single batched query")
	} else {
		lookupWorker, err = usecase.NewContactLookupWorker(cfg.Agenda.LookupPool, repo, logger.Log)
		if err != nil {
			logger.Log.Fatal("Failed to initialize contact lookup pool", zap.Error(err))
		}
		joiner = lookupWorker
	}

	// Dispatch audit events
	var publisher dispatchSink = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.Connect(cfg.NATS.URL, cfg.NATS.DispatchSubject)
		if err != nil {
			logger.Log.Fatal("Failed to connect to NATS", zap.Error(err))
		}
		publisher = natsPublisher
	}

	server := httpapi.NewServer(httpapi.Options{
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Version:        version,
	}, httpapi.Deps{
		Health:     repo,
		Dashboard:  usecase.NewDashboardService(repo),
		Agenda:     usecase.NewAgendaService(repo, joiner),
		Contacts:   usecase.NewContactsService(repo),
		Linker:     usecase.NewChatLinker(cfg.Chat.BaseURL),
		Calendar:   usecase.NewCalendar(loc, cfg.Agenda.WeekStart()),
		Classifier: usecase.NewRecencyClassifier(cfg.Dispatch.StaleAfterDays),
		Publisher:  publisher,
		Clock:      utils.Now,
	}, logger.Log)

	// Register metrics handler if enabled BEFORE starting the server
	if metricsEnabled {
		server.RegisterMetricsHandler(promhttp.Handler())
	} else {
		logger.Log.Info("Metrics endpoint disabled", zap.String("environment", cfg.Environment))
	}

	serverErr := server.Start()
	logger.Log.Info("HTTP API available",
		zap.String("api", fmt.Sprintf("http://localhost:%d/api", cfg.Server.Port)),
		zap.String("health", fmt.Sprintf("http://localhost:%d/health", cfg.Server.Port)),
		zap.String("readiness", fmt.Sprintf("http://localhost:%d/ready", cfg.Server.Port)),
	)

	// Wait for termination signal or a listener failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		logger.Log.Info("Received termination signal", zap.String("signal", sig.String()))
	case err, ok := <-serverErr:
		if ok && err != nil {
			logger.Log.Error("HTTP server failed, initiating shutdown", zap.Error(err))
		}
	}

	// Graceful shutdown with timeout
	timeout := cfg.Server.ShutdownTimeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), timeout)
	defer shutdownCancel()

	logger.Log.Info("Starting graceful shutdown", zap.Duration("timeout", timeout))

	// The server drains first so no request reaches a closed pool or connection
	func() {
		defer utils.RecoverWithLog(shutdownCtx, "http server shutdown")
		start := time.Now()
		if err := server.Stop(shutdownCtx); err != nil {
			logger.Log.Error("[shutdown] Error stopping HTTP server", zap.Error(err))
			return
		}
		logger.Log.Info("[shutdown] HTTP server stopped", zap.Duration("duration", time.Since(start)))
	}()

	var wg sync.WaitGroup
	wg.Add(2)

	// Shutdown contact lookup pool
	utils.SafeGo(func() {
		defer wg.Done()
		if lookupWorker == nil {
			return
		}
		logger.Log.Info("[shutdown] Stopping contact lookup pool")
		start := time.Now()
		lookupWorker.Stop(timeout)
		logger.Log.Info("[shutdown] Contact lookup pool stopped",
			zap.Duration("duration", time.Since(start)))
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while stopping contact lookup pool",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Close database and NATS connections
	utils.SafeGo(func() {
		defer wg.Done()

		logger.Log.Info("[shutdown] Closing PostgreSQL connection")
		pgStart := time.Now()
		if err := repo.Close(shutdownCtx); err != nil {
			logger.Log.Error("[shutdown] Failed to close PostgreSQL connection", zap.Error(err))
		} else {
			logger.Log.Info("[shutdown] PostgreSQL connection closed",
				zap.Duration("duration", time.Since(pgStart)))
		}

		publisher.Close()
		logger.Log.Info("[shutdown] Dispatch publisher closed")
	}, func(r interface{}, stack []byte) {
		logger.Log.Error("[shutdown] Panic while closing connections",
			zap.Any("panic", r),
			zap.ByteString("stack", stack),
		)
		wg.Done()
	})

	// Wait with a timeout for all components to shut down
	waitCh := make(chan struct{})
	go func() {
		wg.Wait()
		close(waitCh)
	}()

	select {
	case <-waitCh:
		logger.Log.Info("[shutdown] All components stopped gracefully")
	case <-shutdownCtx.Done():
		logger.Log.Warn("[shutdown] Graceful shutdown timed out, forcing exit")
	}

	logger.Log.Info("luxe-dash-suite shutdown complete")
}
