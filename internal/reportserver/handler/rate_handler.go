package handler

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sarrafi-backoffice/internal/domain/rate"
	"github.com/sarrafi-backoffice/internal/domain/shared"
	"github.com/sarrafi-backoffice/internal/reportserver/service"
)

// RateHandler handles HTTP requests for exchange rate operations
type RateHandler struct {
	rateService service.RateService
	logger      *slog.Logger
}

// NewRateHandler creates a new rate handler
func NewRateHandler(logger *slog.Logger, rateService service.RateService) *RateHandler {
	return &RateHandler{
		rateService: rateService,
		logger:      logger,
	}
}

// List returns every stored quote
func (h *RateHandler) List(c *gin.Context) {
	quotes, err := h.rateService.ListRates(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list exchange rates", "error", err)
		RespondInternalError(c)
		return
	}

	responses := make([]RateResponse, 0, len(quotes))
	for _, q := range quotes {
		responses = append(responses, mapRateToResponse(q))
	}
	RespondOK(c, responses)
}

// Upsert stores the quote for one currency. Zero and negative rates are
// rejected here so the fail-soft conversion path never sees one.
func (h *RateHandler) Upsert(c *gin.Context) {
	currency := shared.Currency(c.Param("currency"))

	var req UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request body", "error", err)
		RespondBadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	r, err := h.rateService.UpsertRate(c.Request.Context(), currency, req.Rate, req.UpdatedBy)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrInvalidCurrency),
			errors.Is(err, rate.ErrNonPositiveRate),
			errors.Is(err, rate.ErrReferenceImmutable):
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to upsert exchange rate", "currency", string(currency), "error", err)
		RespondInternalError(c)
		return
	}

	RespondOK(c, mapRateToResponse(r))
}

// mapRateToResponse maps a rate quote to its response DTO
func mapRateToResponse(r *rate.Rate) RateResponse {
	return RateResponse{
		Currency:        string(r.Currency),
		RateToReference: r.RateToReference,
		UpdatedBy:       r.UpdatedBy,
		UpdatedAt:       r.UpdatedAt.Format(time.RFC3339),
	}
}
