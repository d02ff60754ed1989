package controllers

import (
	"fmt"
	"mime"
	"net/http"
	"strconv"

	"scopus-dashboard/models"
	"scopus-dashboard/services"

	"github.com/gin-gonic/gin"
)

type exportLink struct {
	Format   services.ExportFormat `json:"format"`
	FileName string                `json:"file_name"`
	Rows     int                   `json:"rows"`
	Pages    int                   `json:"pages,omitempty"`
	Href     string                `json:"href"`
}

type emailExportRequest struct {
	To      []string `json:"to" binding:"required"`
	Formats []string `json:"formats"`
	Subject string   `json:"subject"`
	Note    string   `json:"note"`
}

// GET /api/v1/publications/export
func (h *Handlers) ExportAvailability(c *gin.Context) {
	view, ok := h.queryView(c)
	if !ok {
		return
	}
	formats, err := services.ParseExportFormats(c.QueryArray("format"))
	if err != nil {
		respondError(c, err)
		return
	}

	plans, warnings := h.Dashboard.PlanExports(c.Request.Context(), view, formats)
	params := view.Query.Encode().Encode()
	links := make([]exportLink, 0, len(plans))
	for _, a := range plans {
		href := "/api/v1/publications/export/" + string(a.Format)
		if params != "" {
			href += "?" + params
		}
		links = append(links, exportLink{
			Format:   a.Format,
			FileName: a.FileName,
			Rows:     a.Rows,
			Pages:    a.Pages,
			Href:     href,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"data":     links,
		"warnings": warnings,
	})
}

// GET /api/v1/publications/export/:format
func (h *Handlers) DownloadExport(c *gin.Context) {
	format, err := services.ParseExportFormat(c.Param("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	view, ok := h.queryView(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	artifact, err := h.Runs.Track(ctx, format, models.ExportChannelDownload, view, func() (*services.ExportArtifact, error) {
		return h.Dashboard.Export(ctx, view, format)
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": artifact.FileName}))
	c.Header("X-Export-Rows", strconv.Itoa(artifact.Rows))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

// POST /api/v1/publications/export/email
func (h *Handlers) EmailExport(c *gin.Context) {
	if !h.Mailer.Configured() {
		respondError(c, services.ErrMailerNotConfigured)
		return
	}

	var req emailExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: %v", services.ErrInvalidParameter, err))
		return
	}
	formats, err := services.ParseExportFormats(req.Formats)
	if err != nil {
		respondError(c, err)
		return
	}
	view, ok := h.queryView(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	runs := make([]*models.ExportRun, 0, len(formats))
	for _, f := range formats {
		if run, err := h.Runs.Start(ctx, f, models.ExportChannelEmail, view); err == nil && run != nil {
			runs = append(runs, run)
		}
	}

	artifacts, warnings := h.Dashboard.ExportAll(ctx, view, formats)
	sendErr := h.Mailer.Send(ctx, services.ReportEmail{
		To:        req.To,
		Subject:   req.Subject,
		Note:      req.Note,
		KPIs:      services.ComputeKPIs(view.Publications),
		Artifacts: artifacts,
		Warnings:  warnings,
	})

	for _, run := range runs {
		artifact, runErr := matchArtifact(run.Format, artifacts, warnings)
		if runErr == nil {
			runErr = sendErr
		}
		h.Runs.Complete(ctx, run, artifact, runErr)
	}

	if sendErr != nil {
		respondError(c, sendErr)
		return
	}

	sent := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		sent = append(sent, a.FileName)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "report sent",
		"data":     gin.H{"attachments": sent, "rows": len(view.Publications)},
		"warnings": warnings,
	})
}

func matchArtifact(format string, artifacts []*services.ExportArtifact, warnings []services.ExportWarning) (*services.ExportArtifact, error) {
	for _, a := range artifacts {
		if string(a.Format) == format {
			return a, nil
		}
	}
	for _, w := range warnings {
		if string(w.Format) == format {
			return nil, fmt.Errorf("%s", w.Message)
		}
	}
	return nil, nil
}

// GET /api/v1/exports/history?limit=20
func (h *Handlers) ExportHistory(c *gin.Context) {
	limit := parseLimit(c.Query("limit"), 20, 100)
	runs, err := h.Runs.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": runs, "total": len(runs)})
}
