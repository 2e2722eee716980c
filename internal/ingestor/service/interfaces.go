package service

import (
	"context"

	"github.com/sarrafi-backoffice/internal/domain/shared"
)

// IngestionService appends validated record requests to the ledger log.
type IngestionService interface {
	ProcessRecord(ctx context.Context, request *shared.RecordRequest) error
}

// RecordValidator checks a record request against the account registry and
// the receipt-serial index before it may reach the log.
type RecordValidator interface {
	// Validate returns a Rejection error for requests the ledger must never
	// accept, and a plain error for transient failures worth retrying.
	Validate(ctx context.Context, request *shared.RecordRequest) error
}

// CacheInvalidator drops the cached net-worth report after a successful
// append, so the next report request recomputes from the changed log.
type CacheInvalidator interface {
	InvalidateNetWorthReport(ctx context.Context) error
}

// Rejection marks a request as permanently unacceptable. Rejected requests
// are routed to the dead letter queue instead of being retried.
type Rejection struct {
	Reason shared.RejectReason
	Detail string
}

func (r Rejection) Error() string {
	if r.Detail == "" {
		return string(r.Reason)
	}
	return string(r.Reason) + ": " + r.Detail
}
