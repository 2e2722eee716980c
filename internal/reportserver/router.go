package reportserver

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sarrafi-backoffice/internal/reportserver/handler"
	"github.com/sarrafi-backoffice/internal/reportserver/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	accountHandler *handler.AccountHandler,
	transactionHandler *handler.TransactionHandler,
	entityHandler *handler.EntityHandler,
	rateHandler *handler.RateHandler,
	commissionHandler *handler.CommissionHandler,
	reportHandler *handler.ReportHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Account operations
		accounts := v1.Group("/accounts")
		{
			accounts.POST("", accountHandler.Create)
			accounts.GET("/:id", accountHandler.GetByID)
			accounts.POST("/:id/deactivate", accountHandler.Deactivate)
			accounts.GET("/:id/statement", accountHandler.GetStatement)
		}

		// Ledger movement operations. Only opening-balance rows are mutable.
		transactions := v1.Group("/transactions")
		{
			transactions.POST("", transactionHandler.Create)
			transactions.GET("/:id", transactionHandler.GetByID)
			transactions.PUT("/:id/opening", transactionHandler.UpdateOpening)
			transactions.DELETE("/:id/opening", transactionHandler.DeleteOpening)
		}

		// Entity balance and snapshot operations
		entities := v1.Group("/entities")
		{
			entities.GET("/:id/balance", entityHandler.GetBalance)
			entities.POST("/:id/snapshots", entityHandler.CreateSnapshot)
			entities.GET("/:id/snapshots", entityHandler.ListSnapshots)
		}

		// Exchange rate operations
		rates := v1.Group("/rates")
		{
			rates.GET("", rateHandler.List)
			rates.PUT("/:currency", rateHandler.Upsert)
		}

		// Commission transfer workflow
		transfers := v1.Group("/commission-transfers")
		{
			transfers.POST("", commissionHandler.Create)
			transfers.GET("", commissionHandler.List)
			transfers.POST("/:id/advance", commissionHandler.Advance)
			transfers.POST("/:id/reject", commissionHandler.Reject)
		}

		// Consolidated reporting
		reports := v1.Group("/reports")
		{
			reports.GET("/net-worth", reportHandler.GetNetWorth)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
