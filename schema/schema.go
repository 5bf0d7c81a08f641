// Package schema has configs, models and shared constants for all parts of salespulse.
package schema

import "time"

// TransactionRecord represents a single cleaned line item from the transaction
// history. Records are expected to have passed upstream validation: quantity
// and unit price are non-negative and the timestamp is set.
type TransactionRecord struct {
	InvoiceID   string    // Order identifier grouping line items
	CustomerID  string    // Customer who placed the order
	ProductID   string    // Stock code of the purchased product
	Description string    // Human-readable product description
	Quantity    int       // Units purchased, >= 0 after cleaning
	UnitPrice   float64   // Price per unit, >= 0 after cleaning
	Timestamp   time.Time // Invoice time
}

// LineRevenue returns the revenue contribution of this line item.
func (r TransactionRecord) LineRevenue() float64 {
	return float64(r.Quantity) * r.UnitPrice
}

// CustomerProfile holds the per-customer RFM metrics, bucket ranks and the
// derived segment for one analysis run. Profiles are recomputed from the
// dataset snapshot on every run and never persisted across runs.
type CustomerProfile struct {
	CustomerID    string  `json:"customer_id"`
	RecencyDays   int     `json:"recency_days"`
	Frequency     int     `json:"frequency"`
	Monetary      float64 `json:"monetary"`
	RecencyRank   int     `json:"recency_rank"`   // 1-5, 5 = most recent
	FrequencyRank int     `json:"frequency_rank"` // 1-5, 5 = most frequent
	MonetaryRank  int     `json:"monetary_rank"`  // 1-5, 5 = highest spend
	RFMScore      string  `json:"rfm_score"`      // Concatenated R/F/M digits, e.g. "543"
	Segment       Segment `json:"segment"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

// ProductPerformance holds per-product revenue metrics and the ABC tier for
// one analysis run.
type ProductPerformance struct {
	ProductID       string  `json:"product_id"`
	Description     string  `json:"description"`
	TotalQuantity   int     `json:"total_quantity"`
	TotalRevenue    float64 `json:"total_revenue"`
	RevenueShare    float64 `json:"revenue_share"`    // 0-1 fraction of total revenue
	CumulativeShare float64 `json:"cumulative_share"` // 0-1, non-decreasing in sorted order
	Tier            Tier    `json:"tier"`
	OrderCount      int     `json:"order_count"`
	CustomerCount   int     `json:"customer_count"`
}

// RevenuePoint is one bucket of the revenue time series.
type RevenuePoint struct {
	Period  time.Time `json:"period"`
	Revenue float64   `json:"revenue"`
}

// RevenueSeries is a contiguous, gap-filled revenue time series. Buckets with
// no transactions carry zero revenue so period alignment never shifts.
type RevenueSeries struct {
	Granularity Granularity    `json:"granularity"`
	Points      []RevenuePoint `json:"points"`
}

// Revenues returns just the revenue values in period order.
func (s RevenueSeries) Revenues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Revenue
	}
	return out
}

// Decomposition holds the classical additive decomposition of a revenue
// series. Trend entries are NaN where the centered window is incomplete.
type Decomposition struct {
	Period   int       // Seasonal period length in buckets
	Trend    []float64 // Centered moving-average trend
	Seasonal []float64 // Position-within-period indices, sum to zero over a period
	Residual []float64 // Observed - trend - seasonal
}

// ModelForecast is the output of one ensemble member.
type ModelForecast struct {
	Model       ModelName `json:"model"`
	Points      []float64 `json:"points"`       // Horizon-length point forecasts
	ResidualStd float64   `json:"residual_std"` // In-sample residual standard error
	R2          float64   `json:"r2"`           // In-sample coefficient of determination
	MAE         float64   `json:"mae"`          // In-sample mean absolute error
}

// ForecastResult is the combined ensemble forecast with confidence bounds.
type ForecastResult struct {
	Horizon         int                   `json:"horizon"`
	Periods         []time.Time           `json:"periods"`
	PointEstimates  []float64             `json:"point_estimates"`
	LowerBound      []float64             `json:"lower_bound"`
	UpperBound      []float64             `json:"upper_bound"`
	ConfidenceLevel float64               `json:"confidence_level"`
	ModelWeights    map[ModelName]float64 `json:"model_weights"` // Sums to 1
	Models          []ModelForecast       `json:"models"`
}

// KPISummary holds headline business metrics over the analysis window.
type KPISummary struct {
	TotalRevenue     float64   `json:"total_revenue"`
	TotalOrders      int       `json:"total_orders"`
	TotalCustomers   int       `json:"total_customers"`
	TotalProducts    int       `json:"total_products"`
	AvgOrderValue    float64   `json:"avg_order_value"`
	RepeatRatePct    float64   `json:"repeat_rate_pct"`    // Customers with 2+ orders
	RevenueGrowthPct float64   `json:"revenue_growth_pct"` // First vs last bucket
	SeasonalityScore float64   `json:"seasonality_score"`  // 0-100 coefficient of variation
	RangeStart       time.Time `json:"range_start"`
	RangeEnd         time.Time `json:"range_end"`
}

// SegmentSummary aggregates customer counts and value per RFM segment.
type SegmentSummary struct {
	Segment       Segment `json:"segment"`
	CustomerCount int     `json:"customer_count"`
	TotalMonetary float64 `json:"total_monetary"`
}

// TierSummary aggregates product counts and revenue per ABC tier.
type TierSummary struct {
	Tier         Tier    `json:"tier"`
	ProductCount int     `json:"product_count"`
	TotalRevenue float64 `json:"total_revenue"`
	RevenueShare float64 `json:"revenue_share"` // 0-1 fraction of total revenue
}

// AnalyticsReport is the sole artifact handed to presentation layers. It is
// built once per run and never mutated in place.
type AnalyticsReport struct {
	AsOf      time.Time            `json:"as_of"`
	KPIs      KPISummary           `json:"kpis"`
	Customers []CustomerProfile    `json:"customers"` // Sorted by customer ID
	Products  []ProductPerformance `json:"products"`  // Sorted by revenue desc, then product ID
	Segments  []SegmentSummary     `json:"segments"`  // One entry per segment, taxonomy order
	Tiers     []TierSummary        `json:"tiers"`     // One entry per tier, A then B then C
	Series    RevenueSeries        `json:"series"`
	Forecast  ForecastResult       `json:"forecast"`
}
