package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLineRevenue(t *testing.T) {
	sale := TransactionRecord{Quantity: 3, UnitPrice: 2.5}
	assert.InDelta(t, 7.5, sale.LineRevenue(), 1e-9)

	refund := TransactionRecord{Quantity: -2, UnitPrice: 10}
	assert.InDelta(t, -20, refund.LineRevenue(), 1e-9)
}

func TestRevenueSeriesRevenues(t *testing.T) {
	series := RevenueSeries{
		Granularity: MonthlyGranularity,
		Points: []RevenuePoint{
			{Period: time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), Revenue: 100},
			{Period: time.Date(2011, 2, 1, 0, 0, 0, 0, time.UTC), Revenue: 250},
		},
	}
	assert.Equal(t, []float64{100, 250}, series.Revenues())
}

func TestGetDefaultModelWeights(t *testing.T) {
	weights := GetDefaultModelWeights()
	assert.Len(t, weights, len(AllModels))

	var sum float64
	for _, model := range AllModels {
		sum += weights[model]
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// Each call returns a fresh map.
	weights[LinearModel] = 0.9
	assert.NotEqual(t, weights[LinearModel], GetDefaultModelWeights()[LinearModel])
}

func TestSeasonalPeriods(t *testing.T) {
	assert.Equal(t, 7, SeasonalPeriods[DailyGranularity])
	assert.Equal(t, 52, SeasonalPeriods[WeeklyGranularity])
	assert.Equal(t, 12, SeasonalPeriods[MonthlyGranularity])
}
