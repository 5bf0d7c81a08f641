package runstore

import (
	"errors"
	"fmt"

	"github.com/salespulse/salespulse/internal/parquet"
)

// ExecuteRunsExport performs the actual export of run history to Parquet files.
func ExecuteRunsExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run tracking is disabled, nothing to export")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run store status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	segmentCounts, err := store.GetAllSegmentCounts()
	if err != nil {
		return fmt.Errorf("failed to retrieve segment counts: %w", err)
	}
	forecastPoints, err := store.GetAllForecastPoints()
	if err != nil {
		return fmt.Errorf("failed to retrieve forecast points: %w", err)
	}

	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquet.ConvertRunRecords(runs), runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(runs), runsFile)

	segmentsFile := outputFile + ".segment_counts.parquet"
	if err := parquet.WriteSegmentCountsParquet(parquet.ConvertSegmentCountRecords(segmentCounts), segmentsFile); err != nil {
		return fmt.Errorf("failed to write segment counts: %w", err)
	}
	fmt.Printf("Exported %d segment records to: %s\n", len(segmentCounts), segmentsFile)

	forecastFile := outputFile + ".forecast_points.parquet"
	if err := parquet.WriteForecastPointsParquet(parquet.ConvertForecastPointRecords(forecastPoints), forecastFile); err != nil {
		return fmt.Errorf("failed to write forecast points: %w", err)
	}
	fmt.Printf("Exported %d forecast records to: %s\n", len(forecastPoints), forecastFile)

	return nil
}
