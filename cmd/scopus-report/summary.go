package main

import (
	"context"
	"fmt"

	"scopus-dashboard/utils"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(summaryCmd)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print KPIs and top sources/authors of the filtered view",
	Long: `Print KPIs and top sources/authors of the filtered view.

Examples:
  scopus-report summary --preset last5
  scopus-report summary --quartile Q1,Q2 --human`,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	dashboard := newDashboard()
	view := mustQueryView(ctx, dashboard)
	summary := dashboard.Summarize(view)

	if !humanOutput {
		return outputJSON(summary)
	}

	k := summary.KPIs.Display
	fmt.Printf("Публикаций:                %s\n", k.Total)
	fmt.Printf("Суммарные цитирования:     %s\n", k.TotalCitations)
	fmt.Printf("Средний процентиль (2024): %s\n", k.MeanPercentile)
	fmt.Printf("Чаще всего квартиль:       %s\n", k.TopQuartile)

	fmt.Println("\nТоп источники:")
	for i, g := range summary.TopSources {
		fmt.Printf("%3d. %s (%d, %s cites)\n", i+1, g.Key, g.PubCount, utils.FormatThousands(g.Cites))
	}
	fmt.Println("\nТоп авторы:")
	for i, g := range summary.TopAuthors {
		fmt.Printf("%3d. %s (%d, %s cites)\n", i+1, g.Key, g.PubCount, utils.FormatThousands(g.Cites))
	}
	return nil
}
