package components

import (
	"log/slog"

	"github.com/sarrafi-backoffice/internal/config"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/sarrafi-backoffice/internal/ingestor/service"
)

// CreateIngestionService wires the validator and ledger append path, wrapped
// in a worker pool sized from configuration.
func CreateIngestionService(
	accountRepo account.Repository,
	txRepo transaction.Repository,
	cache service.CacheInvalidator,
	logger *slog.Logger,
	cfg *config.Config,
) service.IngestionService {
	validator := NewRecordValidator(accountRepo, txRepo, logger)

	baseService := service.NewIngestionService(
		validator,
		txRepo,
		cache,
		logger,
	)

	workerPoolService, err := service.NewWorkerPoolIngestionService(
		baseService,
		service.WorkerPoolConfig{
			Size: cfg.WorkerPool.Size,
		},
		logger.With("component", "worker_pool"),
	)

	if err != nil {
		logger.Error("Failed to create worker pool service, falling back to base service", "error", err)
		return baseService
	}

	logger.Info("Created worker pool ingestion service", "pool_size", cfg.WorkerPool.Size)
	return workerPoolService
}
