package rate

import (
	"errors"
	"time"

	"github.com/sarrafi-backoffice/internal/domain/shared"
)

var (
	ErrNonPositiveRate    = errors.New("exchange rate must be greater than zero")
	ErrReferenceImmutable = errors.New("reference currency rate is fixed at 1")
)

// Rate quotes one currency against the reference currency. An amount in
// Currency divided by RateToReference yields the reference-currency amount.
type Rate struct {
	Currency        shared.Currency `json:"currency"`
	RateToReference float64         `json:"rate_to_reference"`
	UpdatedBy       string          `json:"updated_by,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// New validates and builds a rate quote.
func New(currency shared.Currency, value float64, updatedBy string) (*Rate, error) {
	if !currency.IsKnown() {
		return nil, shared.ErrInvalidCurrency
	}
	if currency == shared.ReferenceCurrency && value != 1 {
		return nil, ErrReferenceImmutable
	}
	if !(value > 0) {
		return nil, ErrNonPositiveRate
	}
	return &Rate{
		Currency:        currency,
		RateToReference: value,
		UpdatedBy:       updatedBy,
		UpdatedAt:       time.Now(),
	}, nil
}
