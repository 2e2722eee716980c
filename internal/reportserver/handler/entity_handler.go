package handler

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sarrafi-backoffice/internal/domain/entity"
	"github.com/sarrafi-backoffice/internal/reportserver/service"
)

// EntityHandler handles HTTP requests for entity balance and snapshot operations
type EntityHandler struct {
	balanceService service.BalanceService
	logger         *slog.Logger
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(logger *slog.Logger, balanceService service.BalanceService) *EntityHandler {
	return &EntityHandler{
		balanceService: balanceService,
		logger:         logger,
	}
}

// GetBalance returns the entity's unified balance view: the main and rented
// aggregates side by side, derived fresh from the ledger log.
func (h *EntityHandler) GetBalance(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid entity ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid entity ID")
		return
	}

	ent, unified, err := h.balanceService.GetEntityBalance(c.Request.Context(), id)
	if err != nil {
		var entNotFound entity.ErrEntityNotFound
		if errors.As(err, &entNotFound) {
			RespondNotFound(c, "Entity not found")
			return
		}
		h.logger.Error("Failed to derive entity balance", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, EntityBalanceResponse{
		EntityID: ent.ID.String(),
		Kind:     string(ent.Kind),
		Name:     ent.Name,
		Main:     unified.Main,
		Rented:   unified.Rented,
	})
}

// CreateSnapshot captures the entity's current derived balances as an
// immutable historical record.
func (h *EntityHandler) CreateSnapshot(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid entity ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid entity ID")
		return
	}

	var req CreateSnapshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	snap, err := h.balanceService.CreateSnapshot(c.Request.Context(), id, req.Summary, req.Notes, req.CreatedBy)
	if err != nil {
		var entNotFound entity.ErrEntityNotFound
		if errors.As(err, &entNotFound) {
			RespondNotFound(c, "Entity not found")
			return
		}
		h.logger.Error("Failed to create snapshot", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondCreated(c, snap)
}

// ListSnapshots returns the entity's historical snapshots, newest first
func (h *EntityHandler) ListSnapshots(c *gin.Context) {
	idParam := c.Param("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		h.logger.Error("Invalid entity ID", "id", idParam, "error", err)
		RespondBadRequest(c, "Invalid entity ID")
		return
	}

	snaps, err := h.balanceService.ListSnapshots(c.Request.Context(), id)
	if err != nil {
		var entNotFound entity.ErrEntityNotFound
		if errors.As(err, &entNotFound) {
			RespondNotFound(c, "Entity not found")
			return
		}
		h.logger.Error("Failed to list snapshots", "id", idParam, "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, snaps)
}
