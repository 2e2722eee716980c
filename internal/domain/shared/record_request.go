package shared

import (
	"time"

	"github.com/google/uuid"
)

// RecordRequest defines a Kafka message asking the ingestor to append one
// movement to the ledger log.
type RecordRequest struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	AccountID     uuid.UUID `json:"account_id"`
	Namespace     Namespace `json:"namespace"`
	Direction     Direction `json:"direction"`
	Amount        float64   `json:"amount"`
	CommissionPct float64   `json:"commission_pct,omitempty"`
	Currency      Currency  `json:"currency"`
	BankName      string    `json:"bank_name,omitempty"`
	CardDigits    string    `json:"card_digits,omitempty"`
	ReceiptSerial string    `json:"receipt_serial,omitempty"`
	LinkedRef     LinkedRef `json:"linked_ref,omitempty"`
	CreatedBy     string    `json:"created_by"`
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// RejectReason defines ingestion failure categories routed to the DLQ.
type RejectReason string

const (
	RejectReasonAccountNotFound  RejectReason = "ACCOUNT_NOT_FOUND"
	RejectReasonAccountInactive  RejectReason = "ACCOUNT_INACTIVE"
	RejectReasonCurrencyMismatch RejectReason = "CURRENCY_MISMATCH"
	RejectReasonUnknownCurrency  RejectReason = "UNKNOWN_CURRENCY"
	RejectReasonInvalidAmount    RejectReason = "INVALID_AMOUNT"
	RejectReasonDuplicateReceipt RejectReason = "DUPLICATE_RECEIPT_SERIAL"
	RejectReasonUnknownError     RejectReason = "UNKNOWN_ERROR"
)
