package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/internal/parquet"
	"github.com/salespulse/salespulse/schema"
)

// PrintCustomerResults outputs customer profiles, dispatching based on the output format configured.
func PrintCustomerResults(report *schema.AnalyticsReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	customers := limitResults(report.Customers, cfg.ResultLimit)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printCustomerJSONResults(customers, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printCustomerCSVResults(customers, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printCustomerParquetResults(customers, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCustomerTable(customers, report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// printCustomerJSONResults handles opening the file and calling the JSON writer.
func printCustomerJSONResults(customers []schema.CustomerProfile, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForCustomers(w, customers)
	}, "Wrote JSON")
}

// printCustomerCSVResults handles opening the file and calling the CSV writer.
func printCustomerCSVResults(customers []schema.CustomerProfile, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"customer_id",
			"recency_days",
			"frequency",
			"monetary",
			"rfm_score",
			"segment",
			"avg_order_value",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForCustomers(csvWriter, customers, fmtFloat, intFmt)
		})
	}, "Wrote CSV")
}

// printCustomerParquetResults writes customer profiles as a Parquet file.
func printCustomerParquetResults(customers []schema.CustomerProfile, cfg *contract.Config) error {
	if err := requireOutputFile(cfg); err != nil {
		return err
	}
	if err := parquet.WriteCustomersParquet(parquet.ConvertCustomerProfiles(customers), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeCustomerTable generates and writes the human-readable table.
func writeCustomerTable(customers []schema.CustomerProfile, report *schema.AnalyticsReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Customer", "RFM", "Segment", "Monetary"}
	if cfg.Detail {
		headers = append(headers, "Recency", "Frequency", "AOV")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, c := range customers {
		row := []string{
			strconv.Itoa(i + 1),             // Rank
			c.CustomerID,                    // Customer
			c.RFMScore,                      // RFM
			segmentLabel(cfg, c.Segment),    // Segment
			fmtFloat(c.Monetary),            // Monetary
		}
		if cfg.Detail {
			row = append(
				row,
				fmt.Sprintf(intFmt, c.RecencyDays), // Recency in days
				fmt.Sprintf(intFmt, c.Frequency),   // Frequency
				fmtFloat(c.AvgOrderValue),          // AOV
			)
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d of %d customers (as of %s)\n",
		len(customers), len(report.Customers), report.AsOf.Format(contract.DateOnlyFormat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForCustomers writes customer profiles in CSV format.
func writeCSVResultsForCustomers(w *csv.Writer, customers []schema.CustomerProfile, fmtFloat func(float64) string, intFmt string) error {
	for i, c := range customers {
		rec := []string{
			strconv.Itoa(i + 1),                  // Rank
			c.CustomerID,                         // Customer ID
			fmt.Sprintf(intFmt, c.RecencyDays),   // Recency in days
			fmt.Sprintf(intFmt, c.Frequency),     // Frequency
			fmtFloat(c.Monetary),                 // Monetary
			c.RFMScore,                           // RFM score
			string(c.Segment),                    // Segment
			fmtFloat(c.AvgOrderValue),            // Average order value
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForCustomers writes customer profiles in JSON format.
func writeJSONResultsForCustomers(w io.Writer, customers []schema.CustomerProfile) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONCustomerResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.CustomerProfile
	}

	output := make([]JSONCustomerResult, len(customers))
	for i, c := range customers {
		output[i] = JSONCustomerResult{
			Rank:            i + 1,
			Label:           contract.GetPlainSegmentLabel(c.Segment),
			CustomerProfile: c,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
