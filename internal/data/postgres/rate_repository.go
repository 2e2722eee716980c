package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sarrafi-backoffice/internal/domain/rate"
	"github.com/sarrafi-backoffice/internal/platform/persistence"
)

// RateRepository implements the rate.Repository interface for PostgreSQL
type RateRepository struct {
	querier persistence.Querier
	logger  *slog.Logger
}

// NewRateRepository creates a new PostgreSQL exchange-rate repository.
func NewRateRepository(logger *slog.Logger, db *persistence.PostgresDB) rate.Repository {
	return &RateRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Upsert stores or replaces the quote for one currency.
func (r *RateRepository) Upsert(ctx context.Context, quote *rate.Rate) error {
	query := `
		INSERT INTO exchange_rates (currency, rate_to_reference, updated_by, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (currency) DO UPDATE
		SET rate_to_reference = EXCLUDED.rate_to_reference, updated_by = EXCLUDED.updated_by, updated_at = EXCLUDED.updated_at
	`

	_, err := r.querier.Exec(ctx, query,
		quote.Currency,
		quote.RateToReference,
		quote.UpdatedBy,
		quote.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to upsert exchange rate", "currency", string(quote.Currency), "error", err)
		return fmt.Errorf("failed to upsert exchange rate: %w", err)
	}

	return nil
}

// ListAll retrieves every stored quote.
func (r *RateRepository) ListAll(ctx context.Context) ([]*rate.Rate, error) {
	query := `
		SELECT currency, rate_to_reference, updated_by, updated_at
		FROM exchange_rates
		ORDER BY currency
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list exchange rates", "error", err)
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	defer rows.Close()

	var quotes []*rate.Rate
	for rows.Next() {
		var q rate.Rate
		if err := rows.Scan(&q.Currency, &q.RateToReference, &q.UpdatedBy, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		quotes = append(quotes, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exchange rates: %w", err)
	}

	return quotes, nil
}
