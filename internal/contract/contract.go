// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/salespulse/salespulse/schema"
)

// RecordSource defines the operations for acquiring a cleaned transaction
// dataset. This allows the core analysis logic to be tested without touching
// files or databases.
type RecordSource interface {
	// Load returns the full cleaned transaction snapshot for one analysis run.
	Load(ctx context.Context) ([]schema.TransactionRecord, error)

	// Name identifies the source in headers and run tracking.
	Name() string
}

// RunStore defines the interface for tracking analysis runs and storing
// summarized results. This allows mocking the store for testing.
type RunStore interface {
	// BeginRun creates a new analysis run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the analysis run with completion data
	EndRun(runID int64, endTime time.Time, customerCount, productCount int) error

	// RecordSegments stores per-segment customer counts for a run
	RecordSegments(runID int64, segments []schema.SegmentSummary) error

	// RecordForecast stores the ensemble forecast points for a run
	RecordForecast(runID int64, forecast *schema.ForecastResult) error

	// GetAllRuns returns every tracked run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllSegmentCounts returns every stored segment count row
	GetAllSegmentCounts() ([]schema.SegmentCountRecord, error)

	// GetAllForecastPoints returns every stored forecast point row
	GetAllForecastPoints() ([]schema.ForecastPointRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStoreStatus, error)

	// Close closes the underlying connection
	Close() error
}
