package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salespulse/salespulse/core"
	"github.com/salespulse/salespulse/internal/contract"
)

// taxonomyCmd displays the segment and tier reference tables.
var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Print the segment and tier definitions.",
	Long: `Display the formal definitions of the customer segments and product tiers.

This is a static reference that does not require any dataset. It shows the
rank rules behind each RFM segment and the cumulative revenue bands behind
each ABC tier.

Examples:
  # Human-readable reference
  salespulse taxonomy

  # Machine-readable for documentation tooling
  salespulse taxonomy --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTaxonomy(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot print taxonomy", err)
		}
	},
}
