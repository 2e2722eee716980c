package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/panjf2000/ants/v2"
	"github.com/sarrafi-backoffice/internal/config"
	"github.com/sarrafi-backoffice/internal/data/mongo"
	"github.com/sarrafi-backoffice/internal/data/postgres"
	"github.com/sarrafi-backoffice/internal/logger"
	"github.com/sarrafi-backoffice/internal/platform/cache"
	"github.com/sarrafi-backoffice/internal/platform/messaging/producers"
	"github.com/sarrafi-backoffice/internal/platform/persistence"
	"github.com/sarrafi-backoffice/internal/reportserver"
	"github.com/sarrafi-backoffice/internal/reportserver/service"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("report_server")
	if err != nil {
		// logger is not initialized yet, so we use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewLogger(cfg)

	// Initialize databases with app context
	postgresDB, err := persistence.NewPostgresDB(appCtx, log, &cfg.Postgres)
	if err != nil {
		log.Error("Failed to initialize PostgreSQL", "error", err)
		os.Exit(1)
	}

	mongoDB, err := persistence.NewMongoDB(appCtx, log, &cfg.MongoDB)
	if err != nil {
		log.Error("Failed to initialize MongoDB", "error", err)
		os.Exit(1)
	}

	// Initialize the report cache. The server can run without it, so a
	// failure here degrades to recompute-per-request instead of aborting.
	var reportCache *cache.ReportCache
	reportCache, err = cache.NewReportCache(appCtx, log, &cfg.Redis)
	if err != nil {
		log.Warn("Report cache unavailable, net-worth reports will be recomputed per request", "error", err)
		reportCache = nil
	}

	// Initialize Kafka producer (publishes ledger record requests)
	kafkaProducer, err := producers.NewRecordReqMessageProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize Kafka producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	entityRepo := postgres.NewEntityRepository(log, postgresDB)
	rateRepo := postgres.NewRateRepository(log, postgresDB)
	transferRepo := postgres.NewCommissionRepository(log, postgresDB)
	txRepo := mongo.NewTransactionRepository(log, mongoDB.Database())
	snapshotRepo := mongo.NewSnapshotRepository(log, mongoDB.Database())

	// Worker pool for net-worth recomputes
	recomputePool, err := ants.NewPool(cfg.WorkerPool.Size)
	if err != nil {
		log.Error("Failed to create recompute worker pool", "error", err)
		os.Exit(1)
	}

	// Initialize services
	var cacheForReports service.ReportCache
	if reportCache != nil {
		cacheForReports = reportCache
	}
	svcs := reportserver.Services{
		Account:     service.NewAccountService(accountRepo, txRepo),
		Transaction: service.NewTransactionService(log, txRepo, kafkaProducer),
		Balance:     service.NewBalanceService(entityRepo, accountRepo, txRepo, snapshotRepo),
		Rate:        service.NewRateService(log, rateRepo),
		Commission:  service.NewCommissionService(log, transferRepo),
		Report:      service.NewReportService(log, accountRepo, txRepo, rateRepo, transferRepo, cacheForReports, recomputePool),
	}

	// Initialize REST server
	server := reportserver.NewServer(log, cfg, svcs)
	log.Info("REST server initialized")

	// Create error channel for server errors
	errChan := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.Start(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var serverErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Server error occurred", "error", err)
		serverErr = err
	}

	// Cancel the application context
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first so no new recomputes are scheduled
	if err = server.Stop(shutdownCtx); err != nil {
		log.Error("Error during server shutdown", "error", err)
	}

	recomputePool.Release()

	if err = kafkaProducer.Close(); err != nil {
		log.Error("Error closing Kafka producer", "error", err)
	}

	if reportCache != nil {
		if err = reportCache.Close(); err != nil {
			log.Error("Error closing report cache", "error", err)
		}
	}

	postgresDB.Close()

	if err = mongoDB.Close(shutdownCtx); err != nil {
		log.Error("Error closing MongoDB connection", "error", err)
	}

	// Final status
	if serverErr != nil {
		log.Error("HTTP server shutdown with errors", "error", serverErr)
	}
	if err != nil {
		log.Error("Server shutdown completed with errors")
	} else {
		log.Info("Server shutdown completed successfully")
	}
}
