package cmd

import (
	"github.com/spf13/cobra"

	"github.com/salespulse/salespulse/core"
	"github.com/salespulse/salespulse/internal/contract"
)

// forecastCmd runs the revenue forecast.
var forecastCmd = &cobra.Command{
	Use:   "forecast [data-file]",
	Short: "Forecast future revenue with confidence bounds.",
	Long: `Build a gap-filled revenue series and forecast future periods with an
ensemble of linear trend, polynomial trend and seasonal naive models.

The ensemble combines member forecasts by configurable weights and derives
confidence bounds from in-sample residuals. Custom weights go in the config
file, for example:

  weights:
    linear: 0.5
    polynomial: 0.3
    seasonal: 0.2

Examples:
  # Six months ahead on monthly buckets
  salespulse forecast transactions.csv

  # Daily buckets with a weekly seasonal cycle
  salespulse forecast transactions.csv --granularity day --horizon 30

  # Wider bounds for conservative planning
  salespulse forecast transactions.csv --confidence 0.99

  # Show per-model forecasts and fit diagnostics
  salespulse forecast transactions.csv --detail`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteForecast(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run forecast", err)
		}
	},
}
