package outwriter

import (
	"time"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// testConfig returns a text-mode config suitable for buffer-backed tests.
func testConfig() *contract.Config {
	return &contract.Config{
		Buckets:        5,
		FrequencyBasis: schema.OrderFrequency,
		Granularity:    schema.MonthlyGranularity,
		SeasonalPeriod: 12,
		Horizon:        2,
		Confidence:     0.95,
		ModelWeights:   schema.GetDefaultModelWeights(),
		Workers:        4,
		ResultLimit:    25,
		Precision:      2,
		Output:         schema.TextOut,
		Width:          120,
	}
}

// testReport returns a small hand-built report covering every section.
func testReport() *schema.AnalyticsReport {
	jan := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	feb := jan.AddDate(0, 1, 0)
	mar := jan.AddDate(0, 2, 0)
	apr := jan.AddDate(0, 3, 0)

	return &schema.AnalyticsReport{
		AsOf: time.Date(2011, 3, 16, 0, 0, 0, 0, time.UTC),
		KPIs: schema.KPISummary{
			TotalRevenue:     1650.0,
			TotalOrders:      5,
			TotalCustomers:   2,
			TotalProducts:    2,
			AvgOrderValue:    330.0,
			RevenueGrowthPct: 10.0,
			SeasonalityScore: 12.5,
			RangeStart:       jan,
			RangeEnd:         mar.AddDate(0, 0, 14),
		},
		Customers: []schema.CustomerProfile{
			{
				CustomerID:    "alice",
				RecencyDays:   1,
				Frequency:     3,
				Monetary:      1200.0,
				RecencyRank:   5,
				FrequencyRank: 5,
				MonetaryRank:  5,
				RFMScore:      "555",
				Segment:       schema.SegmentChampions,
				AvgOrderValue: 400.0,
			},
			{
				CustomerID:    "bob",
				RecencyDays:   60,
				Frequency:     2,
				Monetary:      450.0,
				RecencyRank:   1,
				FrequencyRank: 1,
				MonetaryRank:  1,
				RFMScore:      "111",
				Segment:       schema.SegmentLost,
				AvgOrderValue: 225.0,
			},
		},
		Products: []schema.ProductPerformance{
			{
				ProductID:       "85123A",
				Description:     "WHITE HANGING HEART T-LIGHT HOLDER",
				TotalQuantity:   40,
				TotalRevenue:    1400.0,
				RevenueShare:    0.8485,
				CumulativeShare: 0.8485,
				Tier:            schema.TierA,
				OrderCount:      4,
				CustomerCount:   2,
			},
			{
				ProductID:       "22423",
				Description:     "REGENCY CAKESTAND 3 TIER",
				TotalQuantity:   5,
				TotalRevenue:    250.0,
				RevenueShare:    0.1515,
				CumulativeShare: 1.0,
				Tier:            schema.TierC,
				OrderCount:      1,
				CustomerCount:   1,
			},
		},
		Segments: []schema.SegmentSummary{
			{Segment: schema.SegmentChampions, CustomerCount: 1, TotalMonetary: 1200.0},
			{Segment: schema.SegmentLost, CustomerCount: 1, TotalMonetary: 450.0},
		},
		Tiers: []schema.TierSummary{
			{Tier: schema.TierA, ProductCount: 1, TotalRevenue: 1400.0, RevenueShare: 0.8485},
			{Tier: schema.TierC, ProductCount: 1, TotalRevenue: 250.0, RevenueShare: 0.1515},
		},
		Series: schema.RevenueSeries{
			Granularity: schema.MonthlyGranularity,
			Points: []schema.RevenuePoint{
				{Period: jan, Revenue: 500.0},
				{Period: feb, Revenue: 600.0},
				{Period: mar, Revenue: 550.0},
			},
		},
		Forecast: schema.ForecastResult{
			Horizon:         2,
			Periods:         []time.Time{apr, apr.AddDate(0, 1, 0)},
			PointEstimates:  []float64{580.0, 605.0},
			LowerBound:      []float64{520.0, 540.0},
			UpperBound:      []float64{640.0, 670.0},
			ConfidenceLevel: 0.95,
			ModelWeights:    schema.GetDefaultModelWeights(),
			Models: []schema.ModelForecast{
				{Model: schema.LinearModel, Points: []float64{575.0, 600.0}, ResidualStd: 20.0, R2: 0.9, MAE: 15.0},
				{Model: schema.PolynomialModel, Points: []float64{585.0, 610.0}, ResidualStd: 25.0, R2: 0.92, MAE: 18.0},
				{Model: schema.SeasonalNaiveModel, Points: []float64{580.0, 605.0}, ResidualStd: 30.0, R2: 0.85, MAE: 22.0},
			},
		},
	}
}
