package controllers

import (
	"bytes"
	"log"
	"net/http"

	"scopus-dashboard/services"
	"scopus-dashboard/views"

	"github.com/gin-gonic/gin"
)

const exportBasePath = "/api/v1/publications/export"

// GET /
func (h *Handlers) ShowDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	q, err := services.ParseViewQuery(c.Request.URL.Query())
	if err != nil {
		h.renderError(c, err)
		return
	}
	info, err := h.Dashboard.Info(ctx)
	if err != nil {
		h.renderError(c, err)
		return
	}
	view, err := h.Dashboard.Query(ctx, q)
	if err != nil {
		h.renderError(c, err)
		return
	}

	page := views.NewDashboardPage(h.Title, info, view, h.Dashboard.Summarize(view), exportBasePath)
	h.render(c, http.StatusOK, page)
}

func (h *Handlers) renderError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	message := err.Error()
	if code == "NO_VALID_YEARS" {
		message = "В данных нет валидных значений года."
	}
	h.render(c, status, views.NewErrorPage(h.Title, message))
}

func (h *Handlers) render(c *gin.Context, status int, page *views.DashboardPage) {
	var buf bytes.Buffer
	if err := views.RenderDashboard(&buf, page); err != nil {
		log.Printf("render dashboard: %v", err)
		c.String(http.StatusInternalServerError, "failed to render dashboard")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
