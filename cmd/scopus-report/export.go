package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"scopus-dashboard/config"
	"scopus-dashboard/models"
	"scopus-dashboard/services"

	"github.com/spf13/cobra"
)

var (
	exportFormats []string
	exportOut     string
)

func init() {
	exportCmd.Flags().StringSliceVar(&exportFormats, "format", []string{"all"}, "Formats to write: csv, xlsx, pdf or all")
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "Output directory")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the filtered view as CSV, Excel and/or PDF",
	Long: `Write the filtered view as CSV, Excel and/or PDF.

A format that fails is reported as a warning; the others are still written.

Examples:
  scopus-report export --format all --out ./out
  scopus-report export --format pdf --preset last10 --sort cited_by`,
	RunE: runExport,
}

type writtenFile struct {
	Format services.ExportFormat `json:"format"`
	Path   string                `json:"path"`
	Bytes  int                   `json:"bytes"`
	Rows   int                   `json:"rows"`
	Pages  int                   `json:"pages,omitempty"`
}

func runExport(cmd *cobra.Command, args []string) error {
	formats, err := services.ParseExportFormats(exportFormats)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := os.MkdirAll(exportOut, 0o755); err != nil {
		exitWithError(ExitError, "creating output directory: %v", err)
	}

	if err := config.InitDB(settings.Database); err != nil {
		log.Printf("Warning: export history unavailable: %v", err)
	}
	runs := services.NewExportRunService(config.DB)

	ctx := context.Background()
	dashboard := newDashboard()
	view := mustQueryView(ctx, dashboard)

	var written []writtenFile
	var failed []services.ExportWarning
	for _, format := range formats {
		format := format
		artifact, err := runs.Track(ctx, format, models.ExportChannelCLI, view, func() (*services.ExportArtifact, error) {
			return dashboard.Export(ctx, view, format)
		})
		if err != nil {
			failed = append(failed, services.ExportWarning{Format: format, Message: err.Error()})
			fmt.Fprintf(os.Stderr, "warning: %s export unavailable: %v\n", format, err)
			continue
		}

		path := filepath.Join(exportOut, artifact.FileName)
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			exitWithError(ExitError, "writing %s: %v", path, err)
		}
		written = append(written, writtenFile{
			Format: format,
			Path:   path,
			Bytes:  len(artifact.Data),
			Rows:   artifact.Rows,
			Pages:  artifact.Pages,
		})
	}

	if humanOutput {
		for _, w := range written {
			fmt.Printf("%-5s %s (%d rows, %d bytes)\n", w.Format, w.Path, w.Rows, w.Bytes)
		}
	} else if err := outputJSON(map[string]interface{}{"written": written, "warnings": failed}); err != nil {
		return err
	}

	if len(written) == 0 {
		os.Exit(ExitError)
	}
	return nil
}
