package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

var (
	ErrInvalidCommissionPct = errors.New("commission percentage must be between 0 and 100")
	ErrNotOpeningBalance    = errors.New("only opening balance rows may be modified")
)

// Transaction is one immutable monetary movement against exactly one account.
// Corrections are recorded as new offsetting transactions, never by mutating
// an existing row. The single administrative exception is the opening-balance
// flag: flagged rows may be updated or deleted to fix initial imports.
type Transaction struct {
	ID               uuid.UUID        `json:"id" bson:"transaction_id"`
	AccountID        uuid.UUID        `json:"account_id" bson:"account_id"`
	Namespace        shared.Namespace `json:"namespace" bson:"namespace"`
	Direction        shared.Direction `json:"direction" bson:"direction"`
	Amount           float64          `json:"amount" bson:"amount"`
	CommissionPct    float64          `json:"commission_pct,omitempty" bson:"commission_pct,omitempty"`
	CommissionAmount float64          `json:"commission_amount,omitempty" bson:"commission_amount,omitempty"`
	TotalAmount      float64          `json:"total_amount" bson:"total_amount"`
	Currency         shared.Currency  `json:"currency" bson:"currency"`
	BankName         string           `json:"bank_name,omitempty" bson:"bank_name,omitempty"`
	CardDigits       string           `json:"card_digits,omitempty" bson:"card_digits,omitempty"`
	ReceiptSerial    string           `json:"receipt_serial,omitempty" bson:"receipt_serial,omitempty"`
	LinkedRef        shared.LinkedRef `json:"linked_ref,omitempty" bson:"linked_ref,omitempty"`
	OpeningBalance   bool             `json:"opening_balance,omitempty" bson:"opening_balance,omitempty"`
	CreatedBy        string           `json:"created_by" bson:"created_by"`
	CorrelationID    string           `json:"correlation_id,omitempty" bson:"correlation_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at" bson:"created_at"`
}

// New builds a validated transaction from an ingestion request. Commission
// only applies to withdrawals: the total effective amount is
// amount + commission for withdrawals and exactly amount for deposits.
func New(req *shared.RecordRequest) (*Transaction, error) {
	if !req.Direction.Valid() {
		return nil, shared.ErrInvalidDirection
	}
	if !req.Currency.IsKnown() {
		return nil, shared.ErrInvalidCurrency
	}
	if !shared.ValidAmount(req.Amount) {
		return nil, shared.ErrInvalidAmount
	}
	if req.CommissionPct < 0 || req.CommissionPct > 100 {
		return nil, ErrInvalidCommissionPct
	}

	tx := &Transaction{
		ID:            req.TransactionID,
		AccountID:     req.AccountID,
		Namespace:     req.Namespace,
		Direction:     req.Direction,
		Amount:        req.Amount,
		Currency:      req.Currency,
		BankName:      req.BankName,
		CardDigits:    req.CardDigits,
		ReceiptSerial: req.ReceiptSerial,
		LinkedRef:     req.LinkedRef.Normalize(),
		CreatedBy:     req.CreatedBy,
		CorrelationID: req.CorrelationID,
		CreatedAt:     req.Timestamp,
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	if tx.Namespace == "" {
		tx.Namespace = shared.NamespaceMain
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	if req.Direction == shared.DirectionWithdrawal && req.CommissionPct > 0 {
		tx.CommissionPct = req.CommissionPct
		tx.CommissionAmount = req.Amount * req.CommissionPct / 100
		tx.TotalAmount = req.Amount + tx.CommissionAmount
	} else {
		tx.TotalAmount = req.Amount
	}

	return tx, nil
}

// Signed returns the movement's contribution to a running balance: +amount
// for deposits, -totalAmount (amount plus commission) for withdrawals.
func (t *Transaction) Signed() float64 {
	if t.Direction == shared.DirectionDeposit {
		return t.Amount
	}
	return -t.TotalAmount
}
