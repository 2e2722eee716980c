package rate

import (
	"context"

	"github.com/sarrafi-backoffice/internal/domain/shared"
)

// Repository defines exchange-rate persistence operations
type Repository interface {
	Upsert(ctx context.Context, rate *Rate) error
	ListAll(ctx context.Context) ([]*Rate, error)
}

// ErrRateNotFound indicates a currency with no stored quote
type ErrRateNotFound struct {
	Currency shared.Currency
}

func (e ErrRateNotFound) Error() string {
	return "no exchange rate for currency: " + string(e.Currency)
}
