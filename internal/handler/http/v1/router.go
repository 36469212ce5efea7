package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	zones := api.Group("/zones")
	{
		zones.GET("", h.listZones)
		zones.GET("/nearest", h.nearestZone)
		zones.GET("/within", h.zonesWithin)
		zones.GET("/stats", h.getStats)
		zones.GET("/events", h.streamEvents)
		zones.GET("/:id", h.getZone)
		zones.POST("/:id/reports", h.submitReport)
	}

	// Административные маршруты
	admin := api.Group("", APIKeyAuthMiddleware(h.cfg, h.logger))
	{
		admin.POST("/zones", h.createZone)
		admin.DELETE("/zones/:id", h.deleteZone)
		admin.POST("/zones/:id/incidents", h.addIncidents)
		admin.POST("/admin/snapshots", h.createSnapshot)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
