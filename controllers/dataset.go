package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/v1/dataset
func (h *Handlers) GetDataset(c *gin.Context) {
	info, err := h.Dashboard.Info(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": info})
}

// POST /api/v1/dataset/reload
func (h *Handlers) ReloadDataset(c *gin.Context) {
	ds, err := h.Dashboard.Reload(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	log.Printf("dataset: reloaded on request, %d publications", len(ds.Publications))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"version":   ds.Version,
			"rows":      len(ds.Publications),
			"loaded_at": ds.LoadedAt,
		},
	})
}
