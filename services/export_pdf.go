package services

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"scopus-dashboard/models"

	"github.com/go-pdf/fpdf"
	pdfreader "github.com/ledongthuc/pdf"
)

const (
	pdfMaxColumns  = 8
	pdfRowsPerPage = 35
	pdfMaxLineLen  = 220
	pdfRule        = 120

	pdfMarginX     = 20.0
	pdfTitleY      = 20.0
	pdfBodyY       = 30.0
	pdfLineHeight  = 4.2
	pdfTitleSize   = 18.0
	pdfBodySize    = 7.0
	pdfUTF8Family  = "report"
	pdfCoreFamily  = "Helvetica"
	pdfColumnSep   = " | "
	pdfHeaderSep   = ", "
	pdfTruncMarker = "..."
)

type PDFOptions struct {
	Title    string
	FontPath string
}

// PDFReport is a rendered report and its page count.
type PDFReport struct {
	Data  []byte
	Pages int
}

// PDFLayout is the text content of a report before rendering. Pages holds the
// data lines of each page; the title, header and rule go on the first page only.
type PDFLayout struct {
	Title  string
	Header string
	Rule   string
	Pages  [][]string
}

// LayoutPDF arranges the view into report pages. Only the first eight columns
// are printed, lines are cut at 220 characters and every page carries at most
// 35 rows. An empty view still yields one page.
func LayoutPDF(view []*models.Publication, columns []models.Field, title string) PDFLayout {
	if len(columns) > pdfMaxColumns {
		columns = columns[:pdfMaxColumns]
	}
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = string(c)
	}

	layout := PDFLayout{
		Title:  title,
		Header: strings.Join(names, pdfHeaderSep),
		Rule:   strings.Repeat("-", pdfRule),
	}

	page := make([]string, 0, pdfRowsPerPage)
	values := make([]string, len(columns))
	for _, p := range view {
		for i, c := range columns {
			values[i] = p.Display(c)
		}
		page = append(page, truncateLine(strings.Join(values, pdfColumnSep), pdfMaxLineLen))
		if len(page) == pdfRowsPerPage {
			layout.Pages = append(layout.Pages, page)
			page = make([]string, 0, pdfRowsPerPage)
		}
	}
	if len(page) > 0 || len(layout.Pages) == 0 {
		layout.Pages = append(layout.Pages, page)
	}
	return layout
}

func truncateLine(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-len(pdfTruncMarker)]) + pdfTruncMarker
}

// ExportPDF renders the view as a landscape A4 text report.
func ExportPDF(view []*models.Publication, columns []models.Field, opts PDFOptions) (report *PDFReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			report = nil
			err = &ExportError{Format: ExportPDFFormat, Err: fmt.Errorf("render panic: %v", r)}
		}
	}()

	layout := LayoutPDF(view, columns, opts.Title)
	data, pages, err := renderPDF(layout, opts.FontPath)
	if err != nil {
		return nil, &ExportError{Format: ExportPDFFormat, Err: err}
	}

	if n, err := countPDFPages(data); err != nil {
		log.Printf("export: pdf read-back failed: %v", err)
	} else {
		pages = n
	}
	return &PDFReport{Data: data, Pages: pages}, nil
}

func renderPDF(layout PDFLayout, fontPath string) ([]byte, int, error) {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetCreationDate(time.Now())

	family := pdfCoreFamily
	titleStyle := "B"
	encode := func(s string) string { return s }
	if fontPath != "" {
		font, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, 0, fmt.Errorf("read font: %w", err)
		}
		doc.AddUTF8FontFromBytes(pdfUTF8Family, "", font)
		family, titleStyle = pdfUTF8Family, ""
	} else {
		// core fonts only cover cp1252; other runes print as '.'
		encode = doc.UnicodeTranslatorFromDescriptor("")
	}
	if doc.Err() {
		return nil, 0, doc.Error()
	}

	for i, lines := range layout.Pages {
		doc.AddPage()
		y := pdfTitleY
		if i == 0 {
			doc.SetFont(family, titleStyle, pdfTitleSize)
			doc.Text(pdfMarginX, y, encode(layout.Title))
			doc.SetFont(family, "", pdfBodySize)
			y = pdfBodyY
			doc.Text(pdfMarginX, y, encode(layout.Header))
			y += pdfLineHeight
			doc.Text(pdfMarginX, y, layout.Rule)
			y += pdfLineHeight
		} else {
			doc.SetFont(family, "", pdfBodySize)
		}
		for _, line := range lines {
			doc.Text(pdfMarginX, y, encode(line))
			y += pdfLineHeight
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), doc.PageCount(), nil
}

// countPDFPages parses a rendered document and returns its page count.
func countPDFPages(data []byte) (int, error) {
	r, err := pdfreader.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, err
	}
	return r.NumPage(), nil
}
