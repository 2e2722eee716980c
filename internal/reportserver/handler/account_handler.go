package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/account"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/reportserver/service"
)

// AccountHandler handles HTTP requests for account operations
type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(logger *slog.Logger, accountService service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		logger:         logger,
	}
}

// Create handles registration of a new cash or bank account
func (h *AccountHandler) Create(c *gin.Context) {
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	ownerID := uuid.Nil
	if req.OwnerID != "" {
		parsed, err := uuid.Parse(req.OwnerID)
		if err != nil {
			h.logger.Error("Invalid owner ID", "owner_id", req.OwnerID, "error", err)
			RespondBadRequest(c, "Invalid owner ID")
			return
		}
		ownerID = parsed
	}

	ns := shared.Namespace(req.Namespace)
	if ns == "" {
		ns = shared.NamespaceMain
	}

	acc, err := h.accountService.CreateAccount(c.Request.Context(), req.Name, shared.OwnerKind(req.OwnerKind), ownerID, ns, shared.Currency(req.Currency))
	if err != nil {
		switch {
		case errors.Is(err, account.ErrEmptyName),
			errors.Is(err, account.ErrUnknownCurrency),
			errors.Is(err, account.ErrOwnerRequired),
			errors.Is(err, account.ErrInvalidNamespace):
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create account", "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, mapAccountToResponse(acc))
}

// GetByID retrieves an account by its ID, returning 404 if not found
func (h *AccountHandler) GetByID(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid account ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	acc, err := h.accountService.GetAccountByID(c.Request.Context(), id)
	if err != nil {
		var accNotFound account.ErrAccountNotFound
		if errors.As(err, &accNotFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to get account", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// Deactivate closes an account for new movements. History is preserved.
func (h *AccountHandler) Deactivate(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid account ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	acc, err := h.accountService.DeactivateAccount(c.Request.Context(), id)
	if err != nil {
		var accNotFound account.ErrAccountNotFound
		if errors.As(err, &accNotFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		if errors.Is(err, account.ErrAlreadyInactive) {
			RespondConflict(c, "Account is already inactive")
			return
		}
		h.logger.Error("Failed to deactivate account", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapAccountToResponse(acc))
}

// GetStatement returns the account's chronological statement with running
// balances, derived fresh from the ledger log.
func (h *AccountHandler) GetStatement(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid account ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid account ID")
		return
	}

	table, anomalies, err := h.accountService.GetStatement(c.Request.Context(), id)
	if err != nil {
		var accNotFound account.ErrAccountNotFound
		if errors.As(err, &accNotFound) {
			RespondNotFound(c, "Account not found")
			return
		}
		h.logger.Error("Failed to derive statement", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, gin.H{
		"statement": table,
		"anomalies": anomalies,
	})
}

// mapAccountToResponse maps an account entity to an account response DTO
func mapAccountToResponse(acc *account.Account) AccountResponse {
	resp := AccountResponse{
		ID:        acc.ID.String(),
		Name:      acc.Name,
		OwnerKind: string(acc.OwnerKind),
		Namespace: string(acc.Namespace),
		Currency:  string(acc.Currency),
		Status:    string(acc.Status),
		CreatedAt: acc.CreatedAt.Format(time.RFC3339),
		UpdatedAt: acc.UpdatedAt.Format(time.RFC3339),
	}
	if acc.OwnerID != uuid.Nil {
		resp.OwnerID = acc.OwnerID.String()
	}
	return resp
}
