package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/internal/ingest"
)

// generateCmd produces a synthetic transaction dataset.
var generateCmd = &cobra.Command{
	Use:   "generate [output-file]",
	Short: "Generate a synthetic transaction dataset for testing.",
	Long: `Write a seeded synthetic transaction CSV with realistic retail texture.

The generated dataset includes:
- Holiday seasonality (November/December uplift, January/February dip)
- A pool of repeat customers alongside one-off buyers
- Multi-line invoices and occasional bulk orders

The same seed always yields the same dataset, so generated files are safe
to use in reproducible benchmarks and tests.

Examples:
  # Default dataset of 10k line items
  salespulse generate sample.csv

  # A larger dataset over two years
  salespulse generate sample.csv --transactions 100000 --start 2010-01-01 --end 2011-12-31

  # A different but still reproducible dataset
  salespulse generate sample.csv --seed 7`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(_ *cobra.Command, _ []string) error {
		return loadConfigFile()
	},
	RunE: func(_ *cobra.Command, args []string) error {
		outputFile := "sample.csv"
		if len(args) == 1 {
			outputFile = args[0]
		}

		start, err := parseGenerateDate(viper.GetString("start"))
		if err != nil {
			return fmt.Errorf("invalid --start date: %w", err)
		}
		end, err := parseGenerateDate(viper.GetString("end"))
		if err != nil {
			return fmt.Errorf("invalid --end date: %w", err)
		}
		if !end.After(start) {
			return fmt.Errorf("--end must be after --start")
		}

		opts := ingest.GeneratorOptions{
			Transactions: viper.GetInt("transactions"),
			Customers:    viper.GetInt("customers"),
			Start:        start,
			End:          end,
			Seed:         viper.GetInt64("seed"),
			ShowProgress: true,
		}
		records := ingest.GenerateSample(opts)
		if err := ingest.WriteSampleCSV(outputFile, records); err != nil {
			return err
		}

		fmt.Printf("Wrote %d transactions to %s\n", len(records), outputFile)
		return nil
	},
}

// parseGenerateDate parses a date-only flag value.
func parseGenerateDate(value string) (time.Time, error) {
	return time.Parse(contract.DateOnlyFormat, value)
}
