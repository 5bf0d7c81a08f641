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

// PrintProductResults outputs product performance, dispatching based on the output format configured.
func PrintProductResults(report *schema.AnalyticsReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)
	products := limitResults(report.Products, cfg.ResultLimit)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printProductJSONResults(products, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printProductCSVResults(products, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printProductParquetResults(products, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeProductTable(products, report, cfg, fmtFloat, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// printProductJSONResults handles opening the file and calling the JSON writer.
func printProductJSONResults(products []schema.ProductPerformance, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForProducts(w, products)
	}, "Wrote JSON")
}

// printProductCSVResults handles opening the file and calling the CSV writer.
func printProductCSVResults(products []schema.ProductPerformance, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{
			"rank",
			"product_id",
			"description",
			"tier",
			"total_quantity",
			"total_revenue",
			"revenue_share",
			"cumulative_share",
			"order_count",
			"customer_count",
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForProducts(csvWriter, products, fmtFloat, intFmt)
		})
	}, "Wrote CSV")
}

// printProductParquetResults writes product performance as a Parquet file.
func printProductParquetResults(products []schema.ProductPerformance, cfg *contract.Config) error {
	if err := requireOutputFile(cfg); err != nil {
		return err
	}
	if err := parquet.WriteProductsParquet(parquet.ConvertProductPerformance(products), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeProductTable generates and writes the human-readable table.
func writeProductTable(products []schema.ProductPerformance, report *schema.AnalyticsReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Product", "Description", "Tier", "Revenue", "Share", "Cumulative"}
	if cfg.Detail {
		headers = append(headers, "Quantity", "Orders", "Customers")
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	descWidth := getMaxTableDescWidth(cfg)
	var data [][]string
	for i, p := range products {
		row := []string{
			strconv.Itoa(i + 1),                          // Rank
			p.ProductID,                                  // Product
			contract.TruncateText(p.Description, descWidth), // Description
			tierLabel(cfg, p.Tier),                       // Tier
			fmtFloat(p.TotalRevenue),                     // Revenue
			contract.FormatPercent(p.RevenueShare, cfg.Precision),    // Share
			contract.FormatPercent(p.CumulativeShare, cfg.Precision), // Cumulative
		}
		if cfg.Detail {
			row = append(
				row,
				fmt.Sprintf(intFmt, p.TotalQuantity), // Quantity
				fmt.Sprintf(intFmt, p.OrderCount),    // Orders
				fmt.Sprintf(intFmt, p.CustomerCount), // Customers
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
	if _, err := fmt.Fprintf(writer, "Showing top %d of %d products (total revenue: %s)\n",
		len(products), len(report.Products), fmtFloat(report.KPIs.TotalRevenue)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForProducts writes product performance in CSV format.
func writeCSVResultsForProducts(w *csv.Writer, products []schema.ProductPerformance, fmtFloat func(float64) string, intFmt string) error {
	for i, p := range products {
		rec := []string{
			strconv.Itoa(i + 1),                  // Rank
			p.ProductID,                          // Product ID
			p.Description,                        // Description
			string(p.Tier),                       // Tier
			fmt.Sprintf(intFmt, p.TotalQuantity), // Quantity
			fmtFloat(p.TotalRevenue),             // Revenue
			fmtFloat(p.RevenueShare),             // Share of revenue
			fmtFloat(p.CumulativeShare),          // Cumulative share
			fmt.Sprintf(intFmt, p.OrderCount),    // Orders
			fmt.Sprintf(intFmt, p.CustomerCount), // Customers
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForProducts writes product performance in JSON format.
func writeJSONResultsForProducts(w io.Writer, products []schema.ProductPerformance) error {
	// 1. Prepare the data structure for JSON with rank and label added
	type JSONProductResult struct {
		Rank  int    `json:"rank"`
		Label string `json:"label"`
		schema.ProductPerformance
	}

	output := make([]JSONProductResult, len(products))
	for i, p := range products {
		output[i] = JSONProductResult{
			Rank:               i + 1,
			Label:              schema.TierDescription(p.Tier),
			ProductPerformance: p,
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
