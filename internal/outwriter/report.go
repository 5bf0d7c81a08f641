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

// PrintReportResults outputs the full analytics report, dispatching based on the output format configured.
func PrintReportResults(report *schema.AnalyticsReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		// The report marshals as-is, so no wrapper struct is needed
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printReportCSVResults(report, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printReportParquetResults(report, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable summary
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(report, cfg, fmtFloat, duration, w)
		}, "Wrote report")
	}
	return nil
}

// printReportCSVResults flattens the report into section rows.
func printReportCSVResults(report *schema.AnalyticsReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"section", "name", "count", "value"}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForReport(csvWriter, report, fmtFloat, intFmt)
		})
	}, "Wrote CSV")
}

// printReportParquetResults writes the report tables as a set of Parquet files.
// The output file is used as a prefix since Parquet holds one schema per file.
func printReportParquetResults(report *schema.AnalyticsReport, cfg *contract.Config) error {
	if err := requireOutputFile(cfg); err != nil {
		return err
	}

	customersFile := cfg.OutputFile + ".customers.parquet"
	if err := parquet.WriteCustomersParquet(parquet.ConvertCustomerProfiles(report.Customers), customersFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", customersFile)

	productsFile := cfg.OutputFile + ".products.parquet"
	if err := parquet.WriteProductsParquet(parquet.ConvertProductPerformance(report.Products), productsFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", productsFile)

	forecastFile := cfg.OutputFile + ".forecast.parquet"
	if err := parquet.WriteForecastParquet(parquet.ConvertForecastResult(&report.Forecast), forecastFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", forecastFile)

	return nil
}

// writeReportText writes the human-readable report summary.
func writeReportText(report *schema.AnalyticsReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	kpis := report.KPIs

	if _, err := fmt.Fprintf(writer, "%s\n", headerText(cfg, "📊", "Business Overview")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "As of: %s (data range %s to %s)\n",
		report.AsOf.Format(contract.DateOnlyFormat),
		kpis.RangeStart.Format(contract.DateOnlyFormat),
		kpis.RangeEnd.Format(contract.DateOnlyFormat)); err != nil {
		return err
	}
	kpiLines := []struct {
		name  string
		value string
	}{
		{"Total revenue", fmtFloat(kpis.TotalRevenue)},
		{"Total orders", strconv.Itoa(kpis.TotalOrders)},
		{"Total customers", strconv.Itoa(kpis.TotalCustomers)},
		{"Total products", strconv.Itoa(kpis.TotalProducts)},
		{"Avg order value", fmtFloat(kpis.AvgOrderValue)},
		{"Repeat rate", fmtFloat(kpis.RepeatRatePct) + "%"},
		{"Revenue growth", fmtFloat(kpis.RevenueGrowthPct) + "%"},
		{"Seasonality score", fmtFloat(kpis.SeasonalityScore)},
	}
	for _, line := range kpiLines {
		if _, err := fmt.Fprintf(writer, "  %-18s %s\n", line.name, line.value); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(writer, "\n%s\n", headerText(cfg, "👥", "Customer Segments")); err != nil {
		return err
	}
	if err := writeSegmentTable(report.Segments, cfg, fmtFloat, writer); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "\n%s\n", headerText(cfg, "📦", "Product Tiers")); err != nil {
		return err
	}
	if err := writeTierTable(report.Tiers, cfg, fmtFloat, writer); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "\n%s\n", headerText(cfg, "🔮", "Revenue Forecast")); err != nil {
		return err
	}
	forecast := report.Forecast
	total := 0.0
	for _, p := range forecast.PointEstimates {
		total += p
	}
	if len(forecast.Periods) > 0 {
		if _, err := fmt.Fprintf(writer, "Next period (%s): %s [%s, %s]\n",
			forecast.Periods[0].Format(contract.DateOnlyFormat),
			fmtFloat(forecast.PointEstimates[0]),
			fmtFloat(forecast.LowerBound[0]),
			fmtFloat(forecast.UpperBound[0])); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(writer, "Total over %d periods: %s at %s confidence\n",
		forecast.Horizon, fmtFloat(total), contract.FormatPercent(forecast.ConfidenceLevel, 0)); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "\nAnalysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeSegmentTable renders the per-segment summary table.
func writeSegmentTable(segments []schema.SegmentSummary, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Segment", "Customers", "Monetary"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, s := range segments {
		data = append(data, []string{
			segmentLabel(cfg, s.Segment),
			strconv.Itoa(s.CustomerCount),
			fmtFloat(s.TotalMonetary),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeTierTable renders the per-tier summary table.
func writeTierTable(tiers []schema.TierSummary, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Tier", "Products", "Revenue", "Share"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, t := range tiers {
		data = append(data, []string{
			tierLabel(cfg, t.Tier),
			strconv.Itoa(t.ProductCount),
			fmtFloat(t.TotalRevenue),
			contract.FormatPercent(t.RevenueShare, cfg.Precision),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVResultsForReport writes the report summaries in CSV format.
func writeCSVResultsForReport(w *csv.Writer, report *schema.AnalyticsReport, fmtFloat func(float64) string, intFmt string) error {
	kpis := report.KPIs
	kpiRows := []struct {
		name  string
		value string
	}{
		{"total_revenue", fmtFloat(kpis.TotalRevenue)},
		{"total_orders", fmt.Sprintf(intFmt, kpis.TotalOrders)},
		{"total_customers", fmt.Sprintf(intFmt, kpis.TotalCustomers)},
		{"total_products", fmt.Sprintf(intFmt, kpis.TotalProducts)},
		{"avg_order_value", fmtFloat(kpis.AvgOrderValue)},
		{"repeat_rate_pct", fmtFloat(kpis.RepeatRatePct)},
		{"revenue_growth_pct", fmtFloat(kpis.RevenueGrowthPct)},
		{"seasonality_score", fmtFloat(kpis.SeasonalityScore)},
	}
	for _, row := range kpiRows {
		if err := w.Write([]string{"kpi", row.name, "", row.value}); err != nil {
			return err
		}
	}
	for _, s := range report.Segments {
		rec := []string{"segment", string(s.Segment), strconv.Itoa(s.CustomerCount), fmtFloat(s.TotalMonetary)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	for _, t := range report.Tiers {
		rec := []string{"tier", string(t.Tier), strconv.Itoa(t.ProductCount), fmtFloat(t.TotalRevenue)}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
