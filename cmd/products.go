package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salespulse/salespulse/core"
	"github.com/salespulse/salespulse/internal/contract"
)

// productsCmd performs ABC product classification.
var productsCmd = &cobra.Command{
	Use:   "products [data-file]",
	Short: "Show products ranked by revenue with their ABC tier.",
	Long: `Rank products by total revenue and classify them into ABC tiers by
cumulative revenue share.

Tier A covers the first 80% of revenue, tier B the next 15% and tier C the
long tail. Use this to:
- Identify the core products that carry the business
- Decide where inventory and marketing attention should go
- Find candidates for discontinuation in the long tail

Examples:
  # Top products by revenue
  salespulse products transactions.csv

  # Include quantity, order and customer counts
  salespulse products transactions.csv --detail

  # Export the full catalog ranking
  salespulse products transactions.csv --limit 10000 --output csv --output-file products.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteProducts(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run product analysis", err)
		}
	},
}
