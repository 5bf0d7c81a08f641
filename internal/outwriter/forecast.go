package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/internal/parquet"
	"github.com/salespulse/salespulse/schema"
)

// PrintForecastResults outputs the revenue forecast, dispatching based on the output format configured.
func PrintForecastResults(report *schema.AnalyticsReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)
	forecast := &report.Forecast

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := printForecastJSONResults(forecast, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := printForecastCSVResults(forecast, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := printForecastParquetResults(forecast, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeForecastTable(forecast, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// printForecastJSONResults handles opening the file and calling the JSON writer.
func printForecastJSONResults(forecast *schema.ForecastResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, forecast)
	}, "Wrote JSON")
}

// printForecastCSVResults handles opening the file and calling the CSV writer.
func printForecastCSVResults(forecast *schema.ForecastResult, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		header := []string{"period", "point_estimate", "lower_bound", "upper_bound"}
		for _, m := range forecast.Models {
			header = append(header, string(m.Model))
		}
		return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
			return writeCSVResultsForForecast(csvWriter, forecast, fmtFloat)
		})
	}, "Wrote CSV")
}

// printForecastParquetResults writes the forecast as a Parquet file.
func printForecastParquetResults(forecast *schema.ForecastResult, cfg *contract.Config) error {
	if err := requireOutputFile(cfg); err != nil {
		return err
	}
	if err := parquet.WriteForecastParquet(parquet.ConvertForecastResult(forecast), cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	return nil
}

// writeForecastTable generates and writes the human-readable table.
func writeForecastTable(forecast *schema.ForecastResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Period", "Forecast", "Lower", "Upper"}
	if cfg.Detail {
		for _, m := range forecast.Models {
			headers = append(headers, string(m.Model))
		}
	}
	table.Header(headers)

	// 2. Configure Alignment
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i := range forecast.Periods {
		row := []string{
			forecast.Periods[i].Format(contract.DateOnlyFormat), // Period
			fmtFloat(forecast.PointEstimates[i]),                // Forecast
			fmtFloat(forecast.LowerBound[i]),                    // Lower
			fmtFloat(forecast.UpperBound[i]),                    // Upper
		}
		if cfg.Detail {
			for _, m := range forecast.Models {
				row = append(row, fmtFloat(m.Points[i]))
			}
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
	if _, err := fmt.Fprintf(writer, "Forecast horizon: %d periods at %s confidence\n",
		forecast.Horizon, contract.FormatPercent(forecast.ConfidenceLevel, 0)); err != nil {
		return err
	}
	if cfg.Detail {
		for _, m := range forecast.Models {
			weight := forecast.ModelWeights[m.Model]
			if _, err := fmt.Fprintf(writer, "Model %s: weight=%.2f r2=%s mae=%s residual_std=%s\n",
				m.Model, weight, fmtFloat(m.R2), fmtFloat(m.MAE), fmtFloat(m.ResidualStd)); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(writer, "Analysis completed in %v with %d workers\n", duration, cfg.Workers); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForForecast writes the forecast in CSV format.
func writeCSVResultsForForecast(w *csv.Writer, forecast *schema.ForecastResult, fmtFloat func(float64) string) error {
	for i := range forecast.Periods {
		rec := []string{
			forecast.Periods[i].Format(contract.DateOnlyFormat), // Period
			fmtFloat(forecast.PointEstimates[i]),                // Point estimate
			fmtFloat(forecast.LowerBound[i]),                    // Lower bound
			fmtFloat(forecast.UpperBound[i]),                    // Upper bound
		}
		for _, m := range forecast.Models {
			rec = append(rec, fmtFloat(m.Points[i]))
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
