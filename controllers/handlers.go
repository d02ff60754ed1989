package controllers

import (
	"errors"
	"log"
	"net/http"

	"scopus-dashboard/services"

	"github.com/gin-gonic/gin"
)

// Handlers serves the dashboard API and page.
type Handlers struct {
	Dashboard *services.DashboardService
	Runs      *services.ExportRunService
	Mailer    *services.ReportMailer
	Title     string
}

func NewHandlers(dashboard *services.DashboardService, runs *services.ExportRunService, mailer *services.ReportMailer, title string) *Handlers {
	if title == "" {
		title = "Zh Scopus — Жубанов"
	}
	return &Handlers{Dashboard: dashboard, Runs: runs, Mailer: mailer, Title: title}
}

// errorStatus maps a service error to an HTTP status and an error code.
func errorStatus(err error) (int, string) {
	var loadErr *services.LoadError
	var exportErr *services.ExportError
	switch {
	case errors.As(err, &loadErr):
		return http.StatusServiceUnavailable, "DATASET_UNAVAILABLE"
	case errors.Is(err, services.ErrNoValidYears):
		return http.StatusServiceUnavailable, "NO_VALID_YEARS"
	case errors.Is(err, services.ErrInvalidSortKey),
		errors.Is(err, services.ErrInvalidSortOrder),
		errors.Is(err, services.ErrInvalidPreset),
		errors.Is(err, services.ErrInvalidParameter):
		return http.StatusBadRequest, "INVALID_PARAMETER"
	case errors.Is(err, services.ErrUnsupportedFormat):
		return http.StatusBadRequest, "UNSUPPORTED_FORMAT"
	case errors.Is(err, services.ErrMailerNotConfigured):
		return http.StatusServiceUnavailable, "MAIL_NOT_CONFIGURED"
	case errors.Is(err, services.ErrExportHistoryDisabled):
		return http.StatusServiceUnavailable, "HISTORY_DISABLED"
	case errors.As(err, &exportErr):
		return http.StatusInternalServerError, "EXPORT_FAILED"
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR"
}

func respondError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	details := err.Error()
	if code == "NO_VALID_YEARS" {
		details = "В данных нет валидных значений года."
	}
	c.JSON(status, gin.H{"success": false, "error": code, "details": details})
}

// GET /api/v1/health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"message":         "Scopus dashboard is running",
		"export_history":  h.Runs.Enabled(),
		"mail_configured": h.Mailer.Configured(),
	})
}
