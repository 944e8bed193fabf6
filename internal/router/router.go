package router

import (
	"github.com/gin-gonic/gin"

	"recibo/internal/handler"
	"recibo/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	receiptH *handler.ReceiptHandler,
	webhookH *handler.WebhookHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Receipt routes
	receipts := v1.Group("/receipts")
	receipts.POST("", receiptH.Upload)
	receipts.GET("", receiptH.List)
	receipts.GET("/export", receiptH.Export)
	receipts.GET("/:id", receiptH.GetByID)
	receipts.GET("/:id/history", receiptH.History)
	receipts.GET("/:id/file", receiptH.FileURL)
	receipts.POST("/:id/approve", receiptH.Approve)
	receipts.POST("/:id/reject", receiptH.Reject)

	// Email decision links (HTML responses)
	webhooks := r.Group("/webhooks/receipts")
	webhooks.GET("/:id/approve", webhookH.Approve)
	webhooks.GET("/:id/reject", webhookH.RejectForm)
	webhooks.POST("/:id/reject", webhookH.RejectSubmit)

	return r
}
