package routes

import (
	"net/http"

	"scopus-dashboard/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, h *controllers.Handlers) {
	// HTML dashboard
	router.GET("/", h.ShowDashboard)

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", h.Health)

		// Dataset
		dataset := v1.Group("/dataset")
		{
			dataset.GET("", h.GetDataset)
			dataset.POST("/reload", h.ReloadDataset)
		}

		// Publications view
		publications := v1.Group("/publications")
		{
			publications.GET("", h.ListPublications)
			publications.GET("/kpis", h.GetKPIs)
			publications.GET("/top-sources", h.GetTopSources)
			publications.GET("/top-authors", h.GetTopAuthors)

			// Exports of the filtered view
			publications.GET("/export", h.ExportAvailability)
			publications.GET("/export/:format", h.DownloadExport)
			publications.POST("/export/email", h.EmailExport)
		}

		// Export audit trail
		v1.GET("/exports/history", h.ExportHistory)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "NOT_FOUND", "details": "route not found"})
	})
}
