package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ornamenta/storefront/internal/dashboard"
)

func registerDashboardRoutes(admin *gin.RouterGroup, svc *dashboard.Service) {
	admin.GET("/dashboard/summary", func(c *gin.Context) {
		summary, err := svc.Summarize(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage_unavailable"})
			return
		}
		c.JSON(http.StatusOK, summary)
	})
}
