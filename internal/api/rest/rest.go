package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-event-scanner/internal/api/middleware"
)

// SetupRoutes configures all REST API routes. Reads are public, writes need
// a JWT or an API key.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	auth := middleware.Auth(authCfg)

	v1 := router.Group("/api/v1")
	{
		contracts := v1.Group("/contracts")
		contracts.GET("", handler.ListContracts)
		contracts.POST("", auth, handler.CreateContract)
		contracts.GET("/:id", handler.GetContract)
		contracts.PUT("/:id", auth, handler.UpdateContract)
		contracts.DELETE("/:id", auth, handler.DeleteContract)
		contracts.GET("/:id/statistics", handler.GetContractStatistics)

		contracts.GET("/:id/listeners", handler.ListEventListeners)
		contracts.POST("/:id/listeners", auth, handler.CreateEventListener)
		contracts.GET("/:id/listeners/:listener_id", handler.GetEventListener)
		contracts.PUT("/:id/listeners/:listener_id", auth, handler.UpdateEventListener)
		contracts.DELETE("/:id/listeners/:listener_id", auth, handler.DeleteEventListener)

		listeners := v1.Group("/listeners")
		listeners.GET("/:id/history-syncs", handler.ListHistorySyncs)
		listeners.POST("/:id/history-syncs", auth, handler.CreateHistorySync)
		listeners.PUT("/:id/promptly-sync", auth, handler.EnablePromptlySync)
		listeners.DELETE("/:id/promptly-sync", auth, handler.DisablePromptlySync)

		v1.GET("/reports/sync-progress", handler.GetSyncProgressReport)
		v1.GET("/reports/sync-progress/:network", handler.GetNetworkSyncProgress)

		v1.GET("/tasks/:id", handler.GetTask)

		v1.GET("/addresses/:address", handler.GetAddressInteractions)
		v1.POST("/addresses/bulk", handler.GetBulkAddressInteractions)
	}
}
