package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sarrafi-backoffice/internal/config"
	"github.com/sarrafi-backoffice/internal/data/mongo"
	"github.com/sarrafi-backoffice/internal/data/postgres"
	"github.com/sarrafi-backoffice/internal/ingestor/components"
	"github.com/sarrafi-backoffice/internal/ingestor/consumer"
	"github.com/sarrafi-backoffice/internal/ingestor/service"
	"github.com/sarrafi-backoffice/internal/logger"
	"github.com/sarrafi-backoffice/internal/platform/cache"
	"github.com/sarrafi-backoffice/internal/platform/messaging/consumers"
	"github.com/sarrafi-backoffice/internal/platform/messaging/producers"
	"github.com/sarrafi-backoffice/internal/platform/persistence"
)

func main() {
	// Create base context with cancellation
	appCtx, cancelAppCtx := context.WithCancel(context.Background())
	defer cancelAppCtx()

	// Initialize configuration
	cfg, err := config.LoadConfig("ledger_ingestor")
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

	// The ingestor invalidates the cached net-worth report after each append.
	// Without Redis it still appends, reports just go stale until their TTL.
	reportCache, err := cache.NewReportCache(appCtx, log, &cfg.Redis)
	if err != nil {
		log.Warn("Report cache unavailable, skipping invalidation after appends", "error", err)
		reportCache = nil
	}

	// Initialize Kafka consumer and DLQ producer
	kafkaConsumer := consumers.NewKafkaConsumer(appCtx, log, &cfg.Kafka)

	dlqProducer, err := producers.NewDLQProducer(appCtx, log, &cfg.Kafka)
	if err != nil {
		log.Error("Failed to initialize DLQ producer", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	accountRepo := postgres.NewAccountRepository(log, postgresDB)
	txRepo := mongo.NewTransactionRepository(log, mongoDB.Database())

	// Wire the ingestion pipeline
	var invalidator service.CacheInvalidator
	if reportCache != nil {
		invalidator = reportCache
	}
	ingestionService := components.CreateIngestionService(accountRepo, txRepo, invalidator, log, cfg)
	eventHandler := consumer.NewRecordEventHandler(log, ingestionService, dlqProducer)

	// Create error channel for consumer errors
	errChan := make(chan error, 1)

	// Start consuming in goroutine
	go func() {
		log.Info("Starting record consumer",
			"topic", cfg.Kafka.RecordTopic,
			"group", cfg.Kafka.ConsumerGroup)
		if err := kafkaConsumer.Subscribe(appCtx, cfg.Kafka.RecordTopic, cfg.Kafka.ConsumerGroup, eventHandler.HandleMessage); err != nil {
			errChan <- fmt.Errorf("kafka consumer error: %w", err)
		}
	}()

	// Set up signal handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	// Wait for a shutdown signal or error
	var consumerErr error
	select {
	case <-quit:
		log.Info("Shutdown signal received")
	case err := <-errChan:
		log.Error("Consumer error occurred", "error", err)
		consumerErr = err
	}

	// Cancel the application context to stop the consumer loop
	cancelAppCtx()

	// Create a shutdown context with timeout
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelShutdown()

	// Graceful shutdown sequence
	log.Info("Starting graceful shutdown...")

	// Drain the worker pool before closing its downstream dependencies
	if workerPool, ok := ingestionService.(*service.WorkerPoolIngestionService); ok {
		log.Info("Shutting down worker pool", "running_tasks", workerPool.Running())
		workerPool.Shutdown()
	}

	if err = kafkaConsumer.Close(); err != nil {
		log.Error("Error closing Kafka consumer", "error", err)
	}

	if err = dlqProducer.Close(); err != nil {
		log.Error("Error closing DLQ producer", "error", err)
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
	if consumerErr != nil {
		log.Error("Ingestor shutdown with errors", "error", consumerErr)
	} else {
		log.Info("Ingestor shutdown completed successfully")
	}
}
