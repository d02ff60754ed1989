// Package main provides the scopus-report CLI: the dashboard pipeline without
// the HTTP server.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"scopus-dashboard/config"
	"scopus-dashboard/services"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess     = 0
	ExitError       = 1 // dataset unavailable, export or runtime failure
	ExitConfigError = 2 // invalid settings or flags
)

var (
	settings     config.Settings
	datasetPath  string
	datasetSheet string
	humanOutput  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scopus-report",
	Short: "Filter, summarize and export the Scopus publications workbook",
	Long: `scopus-report runs the dashboard pipeline offline.

Settings come from .env, the YAML file named by DASHBOARD_CONFIG and the
environment; --dataset and --sheet override the workbook location.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		s, err := config.LoadSettings()
		if err != nil {
			exitWithError(ExitConfigError, "loading settings: %v", err)
		}
		if datasetPath != "" {
			s.DatasetPath = datasetPath
		}
		if datasetSheet != "" {
			s.DatasetSheet = datasetSheet
		}
		settings = s
		return nil
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "Workbook path (default from DATASET_PATH)")
	rootCmd.PersistentFlags().StringVar(&datasetSheet, "sheet", "", "Worksheet name (default from DATASET_SHEET)")
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	registerViewFlags(rootCmd)
}

// newDashboard wires the pipeline from the loaded settings.
func newDashboard() *services.DashboardService {
	repo := services.NewDatasetRepository(services.NewDatasetLoader(), settings.DatasetPath, settings.DatasetSheet)
	exporter := services.NewExporter(services.ExportOptions{
		BaseName: settings.ExportBaseName,
		Title:    settings.ReportTitle,
		FontPath: settings.PDFFontPath,
	})
	return services.NewDashboardService(repo, exporter, services.DashboardOptions{
		TopSourcesLimit: settings.TopSourcesLimit,
		TopAuthorsLimit: settings.TopAuthorsLimit,
	})
}

// mustQueryView parses the view flags and runs the query, exiting on error.
func mustQueryView(ctx context.Context, dashboard *services.DashboardService) *services.PublicationView {
	q, err := services.ParseViewQuery(viewFlagValues())
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	view, err := dashboard.Query(ctx, q)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return view
}

func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		_ = json.NewEncoder(os.Stderr).Encode(map[string]string{"error": msg})
	}
	os.Exit(code)
}
