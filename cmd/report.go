package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salespulse/salespulse/core"
	"github.com/salespulse/salespulse/internal/contract"
)

// reportCmd runs the full analysis and prints the combined report.
var reportCmd = &cobra.Command{
	Use:   "report [data-file]",
	Short: "Show KPIs, customer segments, product tiers and the revenue forecast.",
	Long: `Run the full analysis over a transaction history and print a combined report.

The report covers:
- Headline KPIs (revenue, orders, customers, growth, seasonality)
- Customer counts and value per RFM segment
- Product counts and revenue per ABC tier
- The ensemble revenue forecast with confidence bounds

Examples:
  # Analyze a CSV export
  salespulse report transactions.csv

  # Analyze a MySQL table instead of a file
  salespulse report --source-dsn "user:pass@tcp(localhost:3306)/sales"

  # Weekly buckets with a one-quarter forecast
  salespulse report transactions.csv --granularity week --horizon 13

  # Machine-readable output for dashboards
  salespulse report transactions.csv --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run report analysis", err)
		}
	},
}
