package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/domain/transaction"
	"github.com/sarrafi-backoffice/internal/reportserver/middleware"
	"github.com/sarrafi-backoffice/internal/reportserver/service"
)

// TransactionHandler handles HTTP requests for ledger transaction operations
type TransactionHandler struct {
	transactionService service.TransactionService
	logger             *slog.Logger
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(logger *slog.Logger, transactionService service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		logger:             logger,
	}
}

// Create accepts a new ledger movement and hands it to the ingestion
// pipeline. The append is asynchronous so the response is 202 with the
// pending transaction ID.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		h.logger.Error("Invalid account ID", "account_id", req.AccountID, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	if !shared.Currency(req.Currency).IsKnown() {
		h.logger.Error("Unknown currency", "currency", req.Currency)
		RespondBadRequest(c, "Unknown currency")
		return
	}

	var linkedRef shared.LinkedRef
	if req.LinkedRef != nil {
		linkedRef = shared.LinkedRef{
			Kind:        shared.LinkedRefKind(req.LinkedRef.Kind),
			ID:          req.LinkedRef.ID,
			Description: req.LinkedRef.Description,
		}.Normalize()
	}

	recordRequest := &shared.RecordRequest{
		TransactionID: uuid.New(),
		AccountID:     accountID,
		Namespace:     shared.Namespace(req.Namespace),
		Direction:     shared.Direction(req.Direction),
		Amount:        req.Amount,
		CommissionPct: req.CommissionPct,
		Currency:      shared.Currency(req.Currency),
		BankName:      req.BankName,
		CardDigits:    req.CardDigits,
		ReceiptSerial: req.ReceiptSerial,
		LinkedRef:     linkedRef,
		CreatedBy:     req.CreatedBy,
		CorrelationID: middleware.GetCorrelationID(c),
		Timestamp:     time.Now(),
	}

	transactionID, err := h.transactionService.RecordTransaction(c.Request.Context(), recordRequest)
	if err != nil {
		h.logger.Error("Failed to record transaction", "error", err)
		RespondInternalError(c)
		return
	}

	RespondAccepted(c, gin.H{
		"transaction_id": transactionID,
		"status":         "PENDING",
	})
}

// GetByID retrieves a ledger row by its ID, returns 404 if not found
func (h *TransactionHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.transactionService.GetTransactionByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get transaction", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	if tx == nil {
		RespondNotFound(c, "Transaction not found")
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// UpdateOpening corrects an opening-balance row. Rows without the flag are
// immutable and come back as 409.
func (h *TransactionHandler) UpdateOpening(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	var req UpdateOpeningBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if !shared.Currency(req.Currency).IsKnown() {
		h.logger.Error("Unknown currency", "currency", req.Currency)
		RespondBadRequest(c, "Unknown currency")
		return
	}

	tx, err := h.transactionService.UpdateOpeningBalance(c.Request.Context(), id, req.Amount, shared.Currency(req.Currency), req.UpdatedBy)
	if err != nil {
		h.respondOpeningError(c, idParam, err)
		return
	}

	RespondOK(c, mapTransactionToResponse(tx))
}

// DeleteOpening removes an opening-balance row
func (h *TransactionHandler) DeleteOpening(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transaction ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.DeleteOpeningBalance(c.Request.Context(), id); err != nil {
		h.respondOpeningError(c, idParam, err)
		return
	}

	RespondOK(c, gin.H{
		"transaction_id": id.String(),
		"deleted":        true,
	})
}

// respondOpeningError shares the error mapping between the two opening-balance
// operations
func (h *TransactionHandler) respondOpeningError(c *gin.Context, idParam string, err error) {
	var notFound transaction.ErrTransactionNotFound
	if errors.As(err, &notFound) {
		RespondNotFound(c, "Transaction not found")
		return
	}
	if errors.Is(err, transaction.ErrNotOpeningBalance) {
		RespondConflict(c, err.Error())
		return
	}
	if errors.Is(err, shared.ErrInvalidAmount) || errors.Is(err, shared.ErrInvalidCurrency) {
		RespondBadRequest(c, err.Error())
		return
	}
	h.logger.Error("Failed to modify opening balance row", "id", idParam, "error", err)
	RespondInternalError(c)
}

// mapTransactionToResponse maps a ledger row to a transaction response DTO
func mapTransactionToResponse(tx *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:    tx.ID.String(),
		AccountID:        tx.AccountID.String(),
		Namespace:        string(tx.Namespace),
		Direction:        string(tx.Direction),
		Amount:           tx.Amount,
		CommissionPct:    tx.CommissionPct,
		CommissionAmount: tx.CommissionAmount,
		TotalAmount:      tx.TotalAmount,
		Currency:         string(tx.Currency),
		BankName:         tx.BankName,
		ReceiptSerial:    tx.ReceiptSerial,
		OpeningBalance:   tx.OpeningBalance,
		CreatedBy:        tx.CreatedBy,
		CreatedAt:        tx.CreatedAt.Format(time.RFC3339),
	}
}
