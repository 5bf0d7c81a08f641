package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse/internal/contract"
)

// seasonalSeries builds cycles full periods of a sawtooth pattern riding on a
// linear trend.
func seasonalSeries(period, cycles int) []float64 {
	pattern := make([]float64, period)
	for i := range pattern {
		pattern[i] = float64(i%4) * 10
	}
	values := make([]float64, 0, period*cycles)
	for c := range cycles {
		for i := range pattern {
			trend := float64(c*period+i) * 2
			values = append(values, 100+trend+pattern[i])
		}
	}
	return values
}

func TestDecomposeSeries(t *testing.T) {
	period := 12
	values := seasonalSeries(period, 3)

	decomp, err := DecomposeSeries(values, period)
	require.NoError(t, err)
	require.Len(t, decomp.Trend, len(values))
	require.Len(t, decomp.Seasonal, len(values))
	require.Len(t, decomp.Residual, len(values))

	// Seasonal indices sum to zero across a full cycle.
	var indexSum float64
	for _, idx := range SeasonalIndices(decomp) {
		indexSum += idx
	}
	assert.InDelta(t, 0, indexSum, 1e-9)

	// Seasonal pattern repeats each cycle.
	for i := period; i < len(values); i++ {
		assert.InDelta(t, decomp.Seasonal[i-period], decomp.Seasonal[i], 1e-9)
	}

	// Trend carries NaN at the half-window edges and values elsewhere.
	half := period / 2
	for i := 0; i < half; i++ {
		assert.True(t, math.IsNaN(decomp.Trend[i]))
		assert.True(t, math.IsNaN(decomp.Trend[len(values)-1-i]))
	}
	for i := half; i < len(values)-half; i++ {
		assert.False(t, math.IsNaN(decomp.Trend[i]))
	}

	// Components reassemble the original where the trend is defined.
	for i := half; i < len(values)-half; i++ {
		reassembled := decomp.Trend[i] + decomp.Seasonal[i] + decomp.Residual[i]
		assert.InDelta(t, values[i], reassembled, 1e-9)
	}
}

func TestDecomposeSeriesOddPeriod(t *testing.T) {
	period := 7
	values := seasonalSeries(period, 4)

	decomp, err := DecomposeSeries(values, period)
	require.NoError(t, err)

	// A linear trend under an odd simple window is recovered exactly.
	half := period / 2
	for i := half; i < len(values)-half; i++ {
		assert.False(t, math.IsNaN(decomp.Trend[i]))
	}

	var indexSum float64
	for _, idx := range SeasonalIndices(decomp) {
		indexSum += idx
	}
	assert.InDelta(t, 0, indexSum, 1e-9)
}

func TestDecomposeSeriesInsufficientHistory(t *testing.T) {
	values := seasonalSeries(12, 1) // one cycle only

	_, err := DecomposeSeries(values, 12)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrInsufficientHistory)
}

func TestDecomposeSeriesBadPeriod(t *testing.T) {
	_, err := DecomposeSeries(seasonalSeries(12, 3), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrInvalidConfiguration)
}

func TestSeasonalityScore(t *testing.T) {
	t.Run("flat series scores zero", func(t *testing.T) {
		values := make([]float64, 36)
		for i := range values {
			values[i] = 100
		}
		decomp, err := DecomposeSeries(values, 12)
		require.NoError(t, err)
		assert.InDelta(t, 0, SeasonalityScore(decomp, values), 1e-9)
	})

	t.Run("strong seasonality scores higher", func(t *testing.T) {
		values := seasonalSeries(12, 3)
		decomp, err := DecomposeSeries(values, 12)
		require.NoError(t, err)

		score := SeasonalityScore(decomp, values)
		assert.Greater(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	})
}
