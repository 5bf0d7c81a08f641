// Package parquet provides data structures and functions for exporting
// salespulse analytics data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/salespulse/salespulse/schema"
)

// Run represents a single analysis run with metadata.
// This struct maps to the salespulse_runs database table.
type Run struct {
	RunID         int64      `parquet:"run_id,snappy"`
	StartTime     time.Time  `parquet:"start_time,snappy"`
	EndTime       *time.Time `parquet:"end_time,optional,snappy"`
	CustomerCount int32      `parquet:"customer_count,snappy"`
	ProductCount  int32      `parquet:"product_count,snappy"`
	ConfigParams  *string    `parquet:"config_params,optional,snappy"`
}

// SegmentCount represents the segment breakdown stored for a run.
// This struct maps to the salespulse_segment_counts database table.
type SegmentCount struct {
	RunID         int64   `parquet:"run_id,snappy"`
	Segment       string  `parquet:"segment,snappy"`
	CustomerCount int32   `parquet:"customer_count,snappy"`
	TotalMonetary float64 `parquet:"total_monetary,snappy"`
}

// ForecastPoint represents one forecast bucket stored for a run.
// This struct maps to the salespulse_forecast_points database table.
type ForecastPoint struct {
	RunID           int64     `parquet:"run_id,snappy"`
	Period          time.Time `parquet:"period,snappy"`
	PointEstimate   float64   `parquet:"point_estimate,snappy"`
	LowerBound      float64   `parquet:"lower_bound,snappy"`
	UpperBound      float64   `parquet:"upper_bound,snappy"`
	ConfidenceLevel float64   `parquet:"confidence_level,snappy"`
}

// CustomerRow is the Parquet layout for customer profile output.
type CustomerRow struct {
	CustomerID    string  `parquet:"customer_id,snappy"`
	RecencyDays   int32   `parquet:"recency_days,snappy"`
	Frequency     int32   `parquet:"frequency,snappy"`
	Monetary      float64 `parquet:"monetary,snappy"`
	RFMScore      string  `parquet:"rfm_score,snappy"`
	Segment       string  `parquet:"segment,snappy"`
	AvgOrderValue float64 `parquet:"avg_order_value,snappy"`
}

// ProductRow is the Parquet layout for product classification output.
type ProductRow struct {
	ProductID       string  `parquet:"product_id,snappy"`
	Description     *string `parquet:"description,optional,snappy"`
	TotalQuantity   int32   `parquet:"total_quantity,snappy"`
	TotalRevenue    float64 `parquet:"total_revenue,snappy"`
	RevenueShare    float64 `parquet:"revenue_share,snappy"`
	CumulativeShare float64 `parquet:"cumulative_share,snappy"`
	Tier            string  `parquet:"tier,snappy"`
}

// ForecastRow is the Parquet layout for forecast output.
type ForecastRow struct {
	Period          time.Time `parquet:"period,snappy"`
	PointEstimate   float64   `parquet:"point_estimate,snappy"`
	LowerBound      float64   `parquet:"lower_bound,snappy"`
	UpperBound      float64   `parquet:"upper_bound,snappy"`
	ConfidenceLevel float64   `parquet:"confidence_level,snappy"`
}

// writeParquet writes any row type to a Parquet file using struct schema
// inference.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes run records to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteSegmentCountsParquet writes segment count records to a Parquet file.
func WriteSegmentCountsParquet(data []SegmentCount, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteForecastPointsParquet writes forecast point records to a Parquet file.
func WriteForecastPointsParquet(data []ForecastPoint, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteCustomersParquet writes customer profile rows to a Parquet file.
func WriteCustomersParquet(data []CustomerRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteProductsParquet writes product rows to a Parquet file.
func WriteProductsParquet(data []ProductRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteForecastParquet writes forecast rows to a Parquet file.
func WriteForecastParquet(data []ForecastRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		row := Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			CustomerCount: int32(record.CustomerCount),
			ProductCount:  int32(record.ProductCount),
		}
		if record.ConfigParams != "" {
			params := record.ConfigParams
			row.ConfigParams = &params
		}
		result[i] = row
	}
	return result
}

// ConvertSegmentCountRecords converts schema.SegmentCountRecord to
// SegmentCount for Parquet export.
func ConvertSegmentCountRecords(records []schema.SegmentCountRecord) []SegmentCount {
	result := make([]SegmentCount, len(records))
	for i, record := range records {
		result[i] = SegmentCount{
			RunID:         record.RunID,
			Segment:       record.Segment,
			CustomerCount: int32(record.CustomerCount),
			TotalMonetary: record.TotalMonetary,
		}
	}
	return result
}

// ConvertForecastPointRecords converts schema.ForecastPointRecord to
// ForecastPoint for Parquet export.
func ConvertForecastPointRecords(records []schema.ForecastPointRecord) []ForecastPoint {
	result := make([]ForecastPoint, len(records))
	for i, record := range records {
		result[i] = ForecastPoint{
			RunID:           record.RunID,
			Period:          record.Period,
			PointEstimate:   record.PointEstimate,
			LowerBound:      record.LowerBound,
			UpperBound:      record.UpperBound,
			ConfidenceLevel: record.ConfidenceLevel,
		}
	}
	return result
}

// ConvertCustomerProfiles converts schema.CustomerProfile to CustomerRow for
// Parquet export.
func ConvertCustomerProfiles(profiles []schema.CustomerProfile) []CustomerRow {
	result := make([]CustomerRow, len(profiles))
	for i, p := range profiles {
		result[i] = CustomerRow{
			CustomerID:    p.CustomerID,
			RecencyDays:   int32(p.RecencyDays),
			Frequency:     int32(p.Frequency),
			Monetary:      p.Monetary,
			RFMScore:      p.RFMScore,
			Segment:       string(p.Segment),
			AvgOrderValue: p.AvgOrderValue,
		}
	}
	return result
}

// ConvertProductPerformance converts schema.ProductPerformance to ProductRow
// for Parquet export.
func ConvertProductPerformance(products []schema.ProductPerformance) []ProductRow {
	result := make([]ProductRow, len(products))
	for i, p := range products {
		row := ProductRow{
			ProductID:       p.ProductID,
			TotalQuantity:   int32(p.TotalQuantity),
			TotalRevenue:    p.TotalRevenue,
			RevenueShare:    p.RevenueShare,
			CumulativeShare: p.CumulativeShare,
			Tier:            string(p.Tier),
		}
		if p.Description != "" {
			desc := p.Description
			row.Description = &desc
		}
		result[i] = row
	}
	return result
}

// ConvertForecastResult converts schema.ForecastResult to ForecastRow slices
// for Parquet export.
func ConvertForecastResult(forecast *schema.ForecastResult) []ForecastRow {
	if forecast == nil {
		return nil
	}
	result := make([]ForecastRow, len(forecast.Periods))
	for i, period := range forecast.Periods {
		result[i] = ForecastRow{
			Period:          period,
			PointEstimate:   forecast.PointEstimates[i],
			LowerBound:      forecast.LowerBound[i],
			UpperBound:      forecast.UpperBound[i],
			ConfidenceLevel: forecast.ConfidenceLevel,
		}
	}
	return result
}
