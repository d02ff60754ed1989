package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"scopus-dashboard/models"

	"golang.org/x/sync/errgroup"
)

type ExportFormat string

const (
	ExportCSVFormat  ExportFormat = "csv"
	ExportXLSXFormat ExportFormat = "xlsx"
	ExportPDFFormat  ExportFormat = "pdf"
)

// ExportFormats lists the formats in the order they are offered.
var ExportFormats = []ExportFormat{ExportCSVFormat, ExportXLSXFormat, ExportPDFFormat}

const (
	DefaultExportBaseName = "zh_scopus"
	DefaultReportTitle    = "Zh Scopus — Отчёт (фильтр)"
)

// ParseExportFormat resolves a format name, case-insensitively.
func ParseExportFormat(raw string) (ExportFormat, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for _, f := range ExportFormats {
		if string(f) == raw {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
}

// ParseExportFormats resolves a list of names; "all" or an empty list selects every format.
func ParseExportFormats(names []string) ([]ExportFormat, error) {
	var formats []ExportFormat
	seen := make(map[ExportFormat]bool)
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), "all") {
			return ExportFormats, nil
		}
		f, err := ParseExportFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	if len(formats) == 0 {
		return ExportFormats, nil
	}
	return formats, nil
}

// ContentType is the MIME type served for the format.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportCSVFormat:
		return "text/csv; charset=utf-8"
	case ExportXLSXFormat:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportPDFFormat:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// FileName builds the download name for base.
func (f ExportFormat) FileName(base string) string {
	if base == "" {
		base = DefaultExportBaseName
	}
	if f == ExportPDFFormat {
		return base + "_report.pdf"
	}
	return base + "_export." + string(f)
}

// ExportArtifact is one serialized view.
type ExportArtifact struct {
	Format      ExportFormat
	FileName    string
	ContentType string
	Data        []byte
	Rows        int
	Pages       int
}

// ExportWarning names a format that could not be produced.
type ExportWarning struct {
	Format  ExportFormat `json:"format"`
	Message string       `json:"message"`
}

type ExportOptions struct {
	BaseName string
	Title    string
	// FontPath points at a UTF-8 TrueType font for the PDF report. Empty uses core Helvetica.
	FontPath string
}

// Exporter serializes views in the supported formats.
type Exporter struct {
	opts ExportOptions
}

func NewExporter(opts ExportOptions) *Exporter {
	if opts.BaseName == "" {
		opts.BaseName = DefaultExportBaseName
	}
	if opts.Title == "" {
		opts.Title = DefaultReportTitle
	}
	return &Exporter{opts: opts}
}

// Options returns the effective options.
func (e *Exporter) Options() ExportOptions { return e.opts }

// Build serializes the view in one format. Failures are *ExportError.
func (e *Exporter) Build(ctx context.Context, format ExportFormat, view []*models.Publication, columns []models.Field) (*ExportArtifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ExportError{Format: format, Err: err}
	}

	var (
		data  []byte
		pages int
		err   error
	)
	switch format {
	case ExportCSVFormat:
		data, err = ExportCSV(view, columns)
	case ExportXLSXFormat:
		data, err = ExportXLSX(view, columns)
	case ExportPDFFormat:
		var report *PDFReport
		report, err = ExportPDF(view, columns, PDFOptions{Title: e.opts.Title, FontPath: e.opts.FontPath})
		if report != nil {
			data, pages = report.Data, report.Pages
		}
	default:
		return nil, &ExportError{Format: format, Err: ErrUnsupportedFormat}
	}
	if err != nil {
		return nil, err
	}

	return &ExportArtifact{
		Format:      format,
		FileName:    format.FileName(e.opts.BaseName),
		ContentType: format.ContentType(),
		Data:        data,
		Rows:        len(view),
		Pages:       pages,
	}, nil
}

// ExportPlan describes a format that Build would produce, without the bytes.
type ExportPlan struct {
	Format      ExportFormat
	FileName    string
	ContentType string
	Rows        int
	Pages       int
}

// Plan checks which formats can be built for the view without rendering them.
// PDF pages come from the layout; a configured font must be readable.
func (e *Exporter) Plan(ctx context.Context, formats []ExportFormat, view []*models.Publication, columns []models.Field) ([]ExportPlan, []ExportWarning) {
	plans := make([]ExportPlan, 0, len(formats))
	var warnings []ExportWarning
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			warnings = append(warnings, ExportWarning{Format: format, Message: (&ExportError{Format: format, Err: err}).Error()})
			continue
		}
		plan := ExportPlan{
			Format:      format,
			FileName:    format.FileName(e.opts.BaseName),
			ContentType: format.ContentType(),
			Rows:        len(view),
		}
		if format == ExportPDFFormat {
			if e.opts.FontPath != "" {
				f, err := os.Open(e.opts.FontPath)
				if err != nil {
					warnings = append(warnings, ExportWarning{Format: format, Message: (&ExportError{Format: format, Err: fmt.Errorf("read font: %w", err)}).Error()})
					continue
				}
				f.Close()
			}
			plan.Pages = len(LayoutPDF(view, columns, e.opts.Title).Pages)
		}
		plans = append(plans, plan)
	}
	return plans, warnings
}

// BuildAll produces every requested format concurrently. A failing format is
// reported as a warning and never prevents the others.
func (e *Exporter) BuildAll(ctx context.Context, formats []ExportFormat, view []*models.Publication, columns []models.Field) ([]*ExportArtifact, []ExportWarning) {
	results := make([]*ExportArtifact, len(formats))
	var (
		mu       sync.Mutex
		warnings []ExportWarning
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		i, format := i, format
		g.Go(func() error {
			artifact, err := e.Build(gctx, format, view, columns)
			if err != nil {
				log.Printf("export: %s failed: %v", format, err)
				mu.Lock()
				warnings = append(warnings, ExportWarning{Format: format, Message: err.Error()})
				mu.Unlock()
				return nil
			}
			results[i] = artifact
			return nil
		})
	}
	_ = g.Wait()

	artifacts := make([]*ExportArtifact, 0, len(formats))
	for _, a := range results {
		if a != nil {
			artifacts = append(artifacts, a)
		}
	}
	// keep warnings in request order regardless of completion order
	ordered := make([]ExportWarning, 0, len(warnings))
	for _, format := range formats {
		for _, w := range warnings {
			if w.Format == format {
				ordered = append(ordered, w)
			}
		}
	}
	return artifacts, ordered
}
