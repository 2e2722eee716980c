package service

import (
	"context"
	"log/slog"

	"github.com/sarrafi-backoffice/internal/domain/rate"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

// RateServiceImpl implements the RateService interface
type RateServiceImpl struct {
	rateRepo rate.Repository
	logger   *slog.Logger
}

// NewRateService creates a new rate service
func NewRateService(logger *slog.Logger, rateRepo rate.Repository) RateService {
	return &RateServiceImpl{
		rateRepo: rateRepo,
		logger:   logger,
	}
}

// ListRates returns every stored quote
func (s *RateServiceImpl) ListRates(ctx context.Context) ([]*rate.Rate, error) {
	return s.rateRepo.ListAll(ctx)
}

// UpsertRate validates and stores a quote for a currency
func (s *RateServiceImpl) UpsertRate(ctx context.Context, currency shared.Currency, value float64, updatedBy string) (*rate.Rate, error) {
	r, err := rate.New(currency, value, updatedBy)
	if err != nil {
		return nil, err
	}
	if err := s.rateRepo.Upsert(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("Exchange rate updated",
		"currency", string(currency),
		"rate", value,
		"updated_by", updatedBy,
	)
	return r, nil
}
