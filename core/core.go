// Package core has core logic for scoring, classification and forecasting.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/internal/ingest"
	"github.com/salespulse/salespulse/internal/outwriter"
	"github.com/salespulse/salespulse/internal/runstore"
	"github.com/salespulse/salespulse/schema"
)

// ExecutorFunc defines the function signature for executing different analysis modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteReport runs the full analysis and prints the combined report.
// It serves as the main entry point for the 'report' mode.
func ExecuteReport(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := runAnalysisCore(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteReport(report, cfg, duration)
}

// ExecuteCustomers runs the analysis and prints customer segmentation results.
// It serves as the main entry point for the 'customers' mode.
func ExecuteCustomers(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := runAnalysisCore(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteCustomers(report, cfg, duration)
}

// ExecuteProducts runs the analysis and prints product classification results.
// It serves as the main entry point for the 'products' mode.
func ExecuteProducts(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := runAnalysisCore(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteProducts(report, cfg, duration)
}

// ExecuteForecast runs the analysis and prints the revenue forecast.
// It serves as the main entry point for the 'forecast' mode.
func ExecuteForecast(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := runAnalysisCore(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteForecast(report, cfg, duration)
}

// ExecuteTaxonomy displays the segment and tier reference tables.
// This is a static display that does not require any dataset.
func ExecuteTaxonomy(_ context.Context, cfg *contract.Config) error {
	return outwriter.NewOutWriter().WriteTaxonomy(cfg)
}

// GetAnalyticsReport runs the full analysis and returns the report without
// printing it. It backs the MCP tool handlers.
func GetAnalyticsReport(ctx context.Context, cfg *contract.Config) (*schema.AnalyticsReport, error) {
	return runAnalysisCore(ctx, cfg)
}

// newRecordSource selects the transaction source for the run. A DSN takes
// precedence over a CSV path.
func newRecordSource(cfg *contract.Config) (contract.RecordSource, error) {
	if cfg.SourceDSN != "" {
		return ingest.NewMySQLSource(cfg.SourceDSN), nil
	}
	if cfg.DataFile != "" {
		return ingest.NewCSVSource(cfg.DataFile), nil
	}
	return nil, errors.New("no dataset configured: provide a CSV path or --source-dsn")
}

// runAnalysisCore performs the common Loading, Analysis and Tracking steps.
func runAnalysisCore(ctx context.Context, cfg *contract.Config) (*schema.AnalyticsReport, error) {
	logAnalysisHeader(cfg)

	source, err := newRecordSource(cfg)
	if err != nil {
		return nil, err
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var runID int64
	runStore := runstore.Manager.GetRunStore()
	if runStore != nil {
		startTime := time.Now()
		configParams := map[string]any{
			"source":      source.Name(),
			"buckets":     cfg.Buckets,
			"frequency":   string(cfg.FrequencyBasis),
			"granularity": string(cfg.Granularity),
			"period":      cfg.SeasonalPeriod,
			"horizon":     cfg.Horizon,
			"confidence":  cfg.Confidence,
			"workers":     cfg.Workers,
		}
		runID, err = runStore.BeginRun(startTime, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
			runID = 0
		}
	}

	// --- 1. Loading Phase ---
	records, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions from %s: %w", source.Name(), err)
	}

	// --- 2. Core Analysis ---
	report, err := BuildReport(ctx, cfg, records)
	if err != nil {
		return nil, err
	}

	// --- 3. End Run Tracking ---
	if runStore != nil && runID > 0 {
		if err := runStore.RecordSegments(runID, report.Segments); err != nil {
			contract.LogWarn("Failed to record segment counts", err)
		}
		if err := runStore.RecordForecast(runID, &report.Forecast); err != nil {
			contract.LogWarn("Failed to record forecast", err)
		}
		endTime := time.Now()
		if err := runStore.EndRun(runID, endTime, len(report.Customers), len(report.Products)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return report, nil
}

// logAnalysisHeader prints the run banner to stdout for table output only.
// Structured formats stay clean for piping.
func logAnalysisHeader(cfg *contract.Config) {
	if cfg.Output != schema.TextOut {
		return
	}
	dataset := cfg.DataFile
	if cfg.SourceDSN != "" {
		dataset = "mysql"
	}
	if cfg.UseEmojis {
		fmt.Printf("🚀 Analyzing %s (granularity: %s, buckets: %d)\n", dataset, cfg.Granularity, cfg.Buckets)
	} else {
		fmt.Printf("Analyzing %s (granularity: %s, buckets: %d)\n", dataset, cfg.Granularity, cfg.Buckets)
	}
}
