package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salespulse/salespulse/core"
	"github.com/salespulse/salespulse/internal/contract"
)

// customersCmd performs RFM customer segmentation.
var customersCmd = &cobra.Command{
	Use:   "customers [data-file]",
	Short: "Show customers ranked by RFM score with their segment.",
	Long: `Score every customer on recency, frequency and monetary value and map the
scores to a fixed segment taxonomy.

Each dimension is bucketed into quantile ranks, so scores compare customers
against each other rather than against absolute thresholds. Use this to:
- Find the champions worth retaining at any cost
- Spot high-value customers drifting toward churn
- Separate one-off buyers from loyal repeaters

Examples:
  # Top customers by RFM score
  salespulse customers transactions.csv

  # Count repeat purchases by line item instead of invoice
  salespulse customers transactions.csv --frequency lines

  # Coarser buckets for a small customer base
  salespulse customers transactions.csv --buckets 3

  # Export segments to CSV for a campaign tool
  salespulse customers transactions.csv --output csv --output-file segments.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCustomers(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run customer analysis", err)
		}
	},
}
