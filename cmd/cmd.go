// Package cmd defines the command-line interface for salespulse.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(customersCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(forecastCmd)
	rootCmd.AddCommand(taxonomyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper.
	// Custom ensemble weights have no flags; they come from the config file.
	rootCmd.PersistentFlags().String("as-of", "", "Reference date for recency in ISO8601 (derived from data when empty)")
	rootCmd.PersistentFlags().IntP("buckets", "b", contract.DefaultBuckets, "Quantile buckets per RFM dimension (2-10)")
	rootCmd.PersistentFlags().String("frequency", string(schema.OrderFrequency), "Frequency basis: orders or lines")
	rootCmd.PersistentFlags().StringP("granularity", "g", string(schema.MonthlyGranularity), "Series granularity: day or week or month")
	rootCmd.PersistentFlags().Int("period", 0, "Seasonal period in buckets (0 = derive from granularity)")
	rootCmd.PersistentFlags().Int("horizon", contract.DefaultHorizon, "Number of future periods to forecast")
	rootCmd.PersistentFlags().Float64("confidence", contract.DefaultConfidence, "Confidence level for forecast bounds")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-target metadata (recency, frequency, counts)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("source-dsn", "", "MySQL DSN for loading transactions instead of a CSV file")
	rootCmd.PersistentFlags().String("run-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of generateCmd to Viper
	generateCmd.Flags().Int("transactions", 10000, "Number of line items to generate")
	generateCmd.Flags().Int("customers", 500, "Number of distinct customers to generate")
	generateCmd.Flags().String("start", "2010-12-01", "Start date of the generated range")
	generateCmd.Flags().String("end", "2011-12-09", "End date of the generated range")
	generateCmd.Flags().Int64("seed", 42, "Random seed for reproducible datasets")
	if err := viper.BindPFlags(generateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding generate flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
