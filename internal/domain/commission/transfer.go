package commission

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
)

// Status defines the two-phase transfer workflow states.
type Status string

const (
	// Phase 1: a deposit arrived and awaits approval, then waits for payout.
	StatusPendingDepositApproval Status = "PENDING_DEPOSIT_APPROVAL"
	StatusPendingExecution       Status = "PENDING_EXECUTION"
	// Phase 2: the payout was executed and awaits approval.
	StatusPendingWithdrawalApproval Status = "PENDING_WITHDRAWAL_APPROVAL"
	StatusCompleted                 Status = "COMPLETED"
	StatusRejected                  Status = "REJECTED"
)

// transitions is the validated forward-transition table. Rejection is handled
// separately: it is reachable from any state except COMPLETED.
var transitions = map[Status]Status{
	StatusPendingDepositApproval:    StatusPendingExecution,
	StatusPendingExecution:          StatusPendingWithdrawalApproval,
	StatusPendingWithdrawalApproval: StatusCompleted,
}

// ErrInvalidTransition reports a workflow step the state machine forbids.
type ErrInvalidTransition struct {
	From Status
	To   Status
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("invalid commission transfer transition: %s -> %s", e.From, e.To)
}

// Transfer is a two-phase commission transfer. While it sits in
// PENDING_EXECUTION or PENDING_WITHDRAWAL_APPROVAL, the principal minus the
// commission is a business liability and the commission itself a receivable.
type Transfer struct {
	ID            uuid.UUID       `json:"id"`
	Amount        float64         `json:"amount"`
	CommissionPct float64         `json:"commission_pct"`
	Currency      shared.Currency `json:"currency"`
	Counterparty  string          `json:"counterparty"`
	Status        Status          `json:"status"`
	CreatedBy     string          `json:"created_by"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewTransfer opens a transfer in the initial PENDING_DEPOSIT_APPROVAL state.
func NewTransfer(amount, commissionPct float64, currency shared.Currency, counterparty, createdBy string) (*Transfer, error) {
	if !shared.ValidAmount(amount) {
		return nil, shared.ErrInvalidAmount
	}
	if !currency.IsKnown() {
		return nil, shared.ErrInvalidCurrency
	}
	if commissionPct < 0 || commissionPct > 100 {
		return nil, fmt.Errorf("commission percentage out of range: %v", commissionPct)
	}

	now := time.Now()
	return &Transfer{
		ID:            uuid.New(),
		Amount:        amount,
		CommissionPct: commissionPct,
		Currency:      currency,
		Counterparty:  counterparty,
		Status:        StatusPendingDepositApproval,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Advance moves the transfer one step forward in the workflow.
func (t *Transfer) Advance() error {
	next, ok := transitions[t.Status]
	if !ok {
		return ErrInvalidTransition{From: t.Status, To: next}
	}
	t.Status = next
	t.UpdatedAt = time.Now()
	return nil
}

// Reject terminates the transfer. Completed transfers cannot be rejected.
func (t *Transfer) Reject() error {
	if t.Status == StatusCompleted || t.Status == StatusRejected {
		return ErrInvalidTransition{From: t.Status, To: StatusRejected}
	}
	t.Status = StatusRejected
	t.UpdatedAt = time.Now()
	return nil
}

// CountsTowardLiability reports whether the transfer is in one of the two
// pending states that weigh on the net-worth report. Settled transfers
// (completed or rejected) never do.
func (t *Transfer) CountsTowardLiability() bool {
	return t.Status == StatusPendingExecution || t.Status == StatusPendingWithdrawalApproval
}

// Commission returns the office's fee portion of the principal.
func (t *Transfer) Commission() float64 {
	return t.Amount * t.CommissionPct / 100
}

// LiabilityPortion returns the principal net of commission, owed to the
// counterparty while the transfer is pending.
func (t *Transfer) LiabilityPortion() float64 {
	return t.Amount - t.Commission()
}
