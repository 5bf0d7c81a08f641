package schema

import "time"

// RunRecord mirrors one row of the run tracking table.
type RunRecord struct {
	RunID         int64      `json:"run_id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time"`
	CustomerCount int        `json:"customer_count"`
	ProductCount  int        `json:"product_count"`
	ConfigParams  string     `json:"config_params"` // JSON-encoded configuration
}

// SegmentCountRecord mirrors one row of the segment counts table.
type SegmentCountRecord struct {
	RunID         int64   `json:"run_id"`
	Segment       string  `json:"segment"`
	CustomerCount int     `json:"customer_count"`
	TotalMonetary float64 `json:"total_monetary"`
}

// ForecastPointRecord mirrors one row of the forecast points table.
type ForecastPointRecord struct {
	RunID           int64     `json:"run_id"`
	Period          time.Time `json:"period"`
	PointEstimate   float64   `json:"point_estimate"`
	LowerBound      float64   `json:"lower_bound"`
	UpperBound      float64   `json:"upper_bound"`
	ConfidenceLevel float64   `json:"confidence_level"`
}

// RunStoreStatus holds status information about the run tracking store.
type RunStoreStatus struct {
	Backend       DatabaseBackend  `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int64            `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}
