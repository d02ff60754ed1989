package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"scopus-dashboard/services"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

func (h *Handlers) queryView(c *gin.Context) (*services.PublicationView, bool) {
	q, err := services.ParseViewQuery(c.Request.URL.Query())
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	view, err := h.Dashboard.Query(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return view, true
}

func parseLimit(raw string, fallback, max int) int {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

// GET /api/v1/publications
func (h *Handlers) ListPublications(c *gin.Context) {
	view, ok := h.queryView(c)
	if !ok {
		return
	}

	limit := parseLimit(c.Query("limit"), defaultPageSize, maxPageSize)
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	total := len(view.Publications)
	start := offset
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"data":            view.Publications[start:end],
		"total":           total,
		"limit":           limit,
		"offset":          offset,
		"columns":         view.Columns,
		"kpis":            services.ComputeKPIs(view.Publications),
		"dataset_version": view.Dataset.Version,
	})
}

// GET /api/v1/publications/kpis
func (h *Handlers) GetKPIs(c *gin.Context) {
	view, ok := h.queryView(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services.ComputeKPIs(view.Publications)})
}

// GET /api/v1/publications/top-sources?limit=10
func (h *Handlers) GetTopSources(c *gin.Context) {
	view, ok := h.queryView(c)
	if !ok {
		return
	}
	limit := parseLimit(c.Query("limit"), h.Dashboard.Options().TopSourcesLimit, maxPageSize)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services.TopSources(view.Publications, limit)})
}

// GET /api/v1/publications/top-authors?limit=10
func (h *Handlers) GetTopAuthors(c *gin.Context) {
	view, ok := h.queryView(c)
	if !ok {
		return
	}
	limit := parseLimit(c.Query("limit"), h.Dashboard.Options().TopAuthorsLimit, maxPageSize)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": services.TopAuthors(view.Publications, limit)})
}
