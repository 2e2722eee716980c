package handler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/commission"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/reportserver/service"
)

// CommissionHandler handles HTTP requests for the commission transfer workflow
type CommissionHandler struct {
	commissionService service.CommissionService
	logger            *slog.Logger
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(logger *slog.Logger, commissionService service.CommissionService) *CommissionHandler {
	return &CommissionHandler{
		commissionService: commissionService,
		logger:            logger,
	}
}

// Create opens a transfer in the initial pending state
func (h *CommissionHandler) Create(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	t, err := h.commissionService.CreateTransfer(c.Request.Context(), req.Amount, req.CommissionPct, shared.Currency(req.Currency), req.Counterparty, req.CreatedBy)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidAmount) || errors.Is(err, shared.ErrInvalidCurrency) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create commission transfer", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapTransferToResponse(t))
}

// Advance moves a transfer one step forward in the workflow. Steps the state
// machine forbids come back as 409.
func (h *CommissionHandler) Advance(c *gin.Context) {
	h.transition(c, h.commissionService.AdvanceTransfer)
}

// Reject terminates a non-completed transfer
func (h *CommissionHandler) Reject(c *gin.Context) {
	h.transition(c, h.commissionService.RejectTransfer)
}

// List returns every transfer regardless of state
func (h *CommissionHandler) List(c *gin.Context) {
	transfers, err := h.commissionService.ListTransfers(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list commission transfers", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		responses = append(responses, mapTransferToResponse(t))
	}
	RespondOK(c, responses)
}

// transition shares the parse/step/respond flow between Advance and Reject
func (h *CommissionHandler) transition(c *gin.Context, step func(ctx context.Context, id uuid.UUID) (*commission.Transfer, error)) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid transfer ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid transfer ID")
		return
	}

	t, err := step(c.Request.Context(), id)
	if err != nil {
		var notFound commission.ErrTransferNotFound
		if errors.As(err, &notFound) {
			RespondNotFound(c, "Commission transfer not found")
			return
		}
		var invalid commission.ErrInvalidTransition
		if errors.As(err, &invalid) {
			RespondConflict(c, invalid.Error())
			return
		}
		h.logger.Error("Failed to transition commission transfer", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapTransferToResponse(t))
}

// mapTransferToResponse maps a transfer to its response DTO
func mapTransferToResponse(t *commission.Transfer) TransferResponse {
	return TransferResponse{
		ID:               t.ID.String(),
		Amount:           t.Amount,
		CommissionPct:    t.CommissionPct,
		Commission:       t.Commission(),
		LiabilityPortion: t.LiabilityPortion(),
		Currency:         string(t.Currency),
		Counterparty:     t.Counterparty,
		Status:           string(t.Status),
		CreatedBy:        t.CreatedBy,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        t.UpdatedAt.Format(time.RFC3339),
	}
}
