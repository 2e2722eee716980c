package handler

import "github.com/sarrafi-backoffice/internal/domain/shared"

// CreateAccountRequest represents a request to register a cash or bank account
type CreateAccountRequest struct {
	Name      string `json:"name" binding:"required"`
	OwnerKind string `json:"owner_kind" binding:"required,oneof=CUSTOMER PARTNER NONE"`
	OwnerID   string `json:"owner_id,omitempty"`
	Namespace string `json:"namespace" binding:"omitempty,oneof=MAIN RENTED DEDICATED"`
	Currency  string `json:"currency" binding:"required,len=3"`
}

// AccountResponse represents an account in API responses. Accounts carry no
// stored balance; balances are derived views served elsewhere.
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerKind string `json:"owner_kind"`
	OwnerID   string `json:"owner_id,omitempty"`
	Namespace string `json:"namespace"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// LinkedRefDTO ties a movement to its origin
type LinkedRefDTO struct {
	Kind        string `json:"kind" binding:"required,oneof=CASHBOX BANK_ACCOUNT CUSTOMER PARTNER OTHER"`
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateTransactionRequest represents a request to append a ledger movement
type CreateTransactionRequest struct {
	AccountID     string        `json:"account_id" binding:"required,uuid"`
	Namespace     string        `json:"namespace" binding:"omitempty,oneof=MAIN RENTED DEDICATED"`
	Direction     string        `json:"direction" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount        float64       `json:"amount" binding:"required,gt=0"`
	CommissionPct float64       `json:"commission_pct" binding:"omitempty,gte=0,lte=100"`
	Currency      string        `json:"currency" binding:"required,len=3"`
	BankName      string        `json:"bank_name,omitempty"`
	CardDigits    string        `json:"card_digits,omitempty"`
	ReceiptSerial string        `json:"receipt_serial,omitempty"`
	LinkedRef     *LinkedRefDTO `json:"linked_ref,omitempty"`
	CreatedBy     string        `json:"created_by" binding:"required"`
}

// UpdateOpeningBalanceRequest corrects an opening-balance row
type UpdateOpeningBalanceRequest struct {
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Currency  string  `json:"currency" binding:"required,len=3"`
	UpdatedBy string  `json:"updated_by,omitempty"`
}

// TransactionResponse represents a ledger movement in API responses
type TransactionResponse struct {
	TransactionID    string  `json:"transaction_id"`
	AccountID        string  `json:"account_id"`
	Namespace        string  `json:"namespace"`
	Direction        string  `json:"direction"`
	Amount           float64 `json:"amount"`
	CommissionPct    float64 `json:"commission_pct,omitempty"`
	CommissionAmount float64 `json:"commission_amount,omitempty"`
	TotalAmount      float64 `json:"total_amount"`
	Currency         string  `json:"currency"`
	BankName         string  `json:"bank_name,omitempty"`
	ReceiptSerial    string  `json:"receipt_serial,omitempty"`
	OpeningBalance   bool    `json:"opening_balance,omitempty"`
	CreatedBy        string  `json:"created_by"`
	CreatedAt        string  `json:"created_at"`
}

// EntityBalanceResponse is the unified balance view for one entity. Main and
// rented stay separate maps: merging them into one number would cross
// namespaces that must not be summed.
type EntityBalanceResponse struct {
	EntityID string            `json:"entity_id"`
	Kind     string            `json:"kind"`
	Name     string            `json:"name"`
	Main     shared.BalanceMap `json:"main"`
	Rented   shared.BalanceMap `json:"rented"`
}

// CreateSnapshotRequest captures the caller's annotation for a new snapshot
type CreateSnapshotRequest struct {
	Summary   string `json:"summary,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedBy string `json:"created_by" binding:"required"`
}

// UpsertRateRequest sets the quote for one currency against the reference
type UpsertRateRequest struct {
	Rate      float64 `json:"rate" binding:"required,gt=0"`
	UpdatedBy string  `json:"updated_by,omitempty"`
}

// RateResponse represents a stored exchange rate quote
type RateResponse struct {
	Currency        string  `json:"currency"`
	RateToReference float64 `json:"rate_to_reference"`
	UpdatedBy       string  `json:"updated_by,omitempty"`
	UpdatedAt       string  `json:"updated_at"`
}

// CreateTransferRequest opens a two-phase commission transfer
type CreateTransferRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	CommissionPct float64 `json:"commission_pct" binding:"omitempty,gte=0,lte=100"`
	Currency      string  `json:"currency" binding:"required,len=3"`
	Counterparty  string  `json:"counterparty" binding:"required"`
	CreatedBy     string  `json:"created_by" binding:"required"`
}

// TransferResponse represents a commission transfer in API responses
type TransferResponse struct {
	ID               string  `json:"id"`
	Amount           float64 `json:"amount"`
	CommissionPct    float64 `json:"commission_pct"`
	Commission       float64 `json:"commission"`
	LiabilityPortion float64 `json:"liability_portion"`
	Currency         string  `json:"currency"`
	Counterparty     string  `json:"counterparty"`
	Status           string  `json:"status"`
	CreatedBy        string  `json:"created_by"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}
