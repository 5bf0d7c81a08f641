package core

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// monthlySeries wraps raw values in a RevenueSeries starting January 2011.
func monthlySeries(values []float64) *schema.RevenueSeries {
	start := time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]schema.RevenuePoint, len(values))
	for i, v := range values {
		points[i] = schema.RevenuePoint{Period: start.AddDate(0, i, 0), Revenue: v}
	}
	return &schema.RevenueSeries{Granularity: schema.MonthlyGranularity, Points: points}
}

func TestForecastRevenue(t *testing.T) {
	cfg := testConfig()
	series := monthlySeries(seasonalSeries(12, 3))

	result, err := ForecastRevenue(context.Background(), cfg, series)
	require.NoError(t, err)
	require.Len(t, result.PointEstimates, cfg.Horizon)
	require.Len(t, result.Periods, cfg.Horizon)
	require.Len(t, result.Models, 3)

	// Bounds bracket the point estimates.
	for h := range result.PointEstimates {
		assert.LessOrEqual(t, result.LowerBound[h], result.PointEstimates[h])
		assert.GreaterOrEqual(t, result.UpperBound[h], result.PointEstimates[h])
	}

	// Future periods continue the monthly grid.
	lastHist := series.Points[len(series.Points)-1].Period
	assert.True(t, result.Periods[0].Equal(lastHist.AddDate(0, 1, 0)))
	for h := 1; h < cfg.Horizon; h++ {
		assert.True(t, result.Periods[h].Equal(result.Periods[h-1].AddDate(0, 1, 0)))
	}

	// The ensemble is the weighted average of the member models.
	for h := range result.PointEstimates {
		var expected float64
		for _, model := range result.Models {
			expected += result.ModelWeights[model.Model] * model.Points[h]
		}
		assert.InDelta(t, expected, result.PointEstimates[h], 1e-9)
	}
}

func TestForecastRevenueCustomWeights(t *testing.T) {
	cfg := testConfig()
	cfg.ModelWeights = map[schema.ModelName]float64{
		schema.LinearModel:        1,
		schema.PolynomialModel:    0,
		schema.SeasonalNaiveModel: 0,
	}
	series := monthlySeries(seasonalSeries(12, 3))

	result, err := ForecastRevenue(context.Background(), cfg, series)
	require.NoError(t, err)

	// With full weight on the linear model the ensemble equals it.
	var linear schema.ModelForecast
	for _, model := range result.Models {
		if model.Model == schema.LinearModel {
			linear = model
		}
	}
	for h := range result.PointEstimates {
		assert.InDelta(t, linear.Points[h], result.PointEstimates[h], 1e-9)
	}
}

func TestForecastRevenueInvalidWeights(t *testing.T) {
	cfg := testConfig()
	cfg.ModelWeights = map[schema.ModelName]float64{
		schema.LinearModel:        0.5,
		schema.PolynomialModel:    0.5,
		schema.SeasonalNaiveModel: 0.5,
	}

	_, err := ForecastRevenue(context.Background(), cfg, monthlySeries(seasonalSeries(12, 3)))
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrInvalidWeights)
}

func TestForecastRevenueInsufficientHistory(t *testing.T) {
	_, err := ForecastRevenue(context.Background(), testConfig(), monthlySeries([]float64{100}))
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrInsufficientHistory)
}

func TestForecastRevenueTwoPoints(t *testing.T) {
	cfg := testConfig()

	// Two points pin the trend line, the smallest history that forecasts.
	result, err := ForecastRevenue(context.Background(), cfg, monthlySeries([]float64{100, 200}))
	require.NoError(t, err)
	require.Len(t, result.PointEstimates, cfg.Horizon)
	assert.InDelta(t, 300, result.PointEstimates[0], 1e-9)
}

func TestForecastRevenueCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ForecastRevenue(ctx, testConfig(), monthlySeries(seasonalSeries(12, 3)))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestForecastRevenueShortHistoryDegradesSeasonal(t *testing.T) {
	cfg := testConfig()
	// Six points cannot cover two cycles of period 12, so the seasonal
	// model falls back to the trend line.
	series := monthlySeries([]float64{100, 110, 120, 130, 140, 150})

	result, err := ForecastRevenue(context.Background(), cfg, series)
	require.NoError(t, err)

	var linear, seasonal schema.ModelForecast
	for _, model := range result.Models {
		switch model.Model {
		case schema.LinearModel:
			linear = model
		case schema.SeasonalNaiveModel:
			seasonal = model
		}
	}
	for h := range linear.Points {
		assert.InDelta(t, linear.Points[h], seasonal.Points[h], 1e-9)
	}
}

func TestSeasonalModelContinuesTrend(t *testing.T) {
	// 100 + 2i plus a repeating pattern of period 4 over three cycles.
	values := seasonalSeries(4, 3)
	n := len(values)

	model := fitSeasonalNaiveModel(values, 4, 4)
	require.Len(t, model.Points, 4)

	// The forecast extends the series exactly: trend line plus index.
	for h, p := range model.Points {
		idx := n + h
		expected := 100 + 2*float64(idx) + float64(idx%4)*10
		assert.InDelta(t, expected, p, 1e-6)
	}

	// Cycle means carry the trend lift of slope times period instead of
	// repeating the last cycle flat.
	var lastMean, nextMean float64
	for i := n - 4; i < n; i++ {
		lastMean += values[i] / 4
	}
	for _, p := range model.Points {
		nextMean += p / 4
	}
	assert.InDelta(t, 8, nextMean-lastMean, 1e-6)
}

func TestSeasonalModelDiagnostics(t *testing.T) {
	// A perfectly regular trending series is fully explained.
	values := seasonalSeries(4, 3)
	model := fitSeasonalNaiveModel(values, 4, 4)
	assert.InDelta(t, 0, model.ResidualStd, 1e-6)
	assert.InDelta(t, 1, model.R2, 1e-6)

	// A spike inside the first cycle shows up as a real residual.
	values = seasonalSeries(4, 3)
	values[1] += 120
	model = fitSeasonalNaiveModel(values, 4, 4)
	assert.Greater(t, model.ResidualStd, 10.0)
	assert.Greater(t, model.MAE, 5.0)
	assert.Less(t, model.R2, 1.0)
}

func TestLinearFit(t *testing.T) {
	t.Run("exact line", func(t *testing.T) {
		slope, intercept := linearFit([]float64{5, 7, 9, 11})
		assert.InDelta(t, 2, slope, 1e-9)
		assert.InDelta(t, 5, intercept, 1e-9)
	})

	t.Run("constant series", func(t *testing.T) {
		slope, intercept := linearFit([]float64{42, 42, 42})
		assert.InDelta(t, 0, slope, 1e-9)
		assert.InDelta(t, 42, intercept, 1e-9)
	})
}

func TestPolyFit2(t *testing.T) {
	// y = 3 + 2x + x^2
	values := make([]float64, 10)
	for i := range values {
		x := float64(i)
		values[i] = 3 + 2*x + x*x
	}

	coeffs, ok := polyFit2(values)
	require.True(t, ok)
	assert.InDelta(t, 3, coeffs[0], 1e-6)
	assert.InDelta(t, 2, coeffs[1], 1e-6)
	assert.InDelta(t, 1, coeffs[2], 1e-6)
}

func TestPolynomialClamp(t *testing.T) {
	// A steep convex series forces extrapolation into the clamp.
	values := make([]float64, 12)
	for i := range values {
		x := float64(i)
		values[i] = x * x * 50
	}

	model := fitPolynomialModel(values, 24)
	histMax := values[len(values)-1]
	for _, p := range model.Points {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, PolynomialClampFactor*histMax)
	}
}

func TestNormalQuantile(t *testing.T) {
	tests := []struct {
		p        float64
		expected float64
	}{
		{p: 0.975, expected: 1.959964},
		{p: 0.995, expected: 2.575829},
		{p: 0.5, expected: 0},
		{p: 0.025, expected: -1.959964},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, normalQuantile(tt.p), 1e-4)
	}

	assert.True(t, math.IsNaN(normalQuantile(0)))
	assert.True(t, math.IsNaN(normalQuantile(1)))
}

func TestBuildModelForecastDiagnostics(t *testing.T) {
	actual := []float64{10, 20, 30, 40}
	model := fitLinearModel(actual, 2)

	// A perfect linear series has zero residuals and full explained variance.
	assert.InDelta(t, 0, model.ResidualStd, 1e-9)
	assert.InDelta(t, 1, model.R2, 1e-9)
	assert.InDelta(t, 0, model.MAE, 1e-9)
}

func BenchmarkForecastRevenue(b *testing.B) {
	cfg := testConfig()
	series := monthlySeries(seasonalSeries(12, 10))

	b.ResetTimer()
	for b.Loop() {
		if _, err := ForecastRevenue(context.Background(), cfg, series); err != nil {
			b.Fatal(err)
		}
	}
}
