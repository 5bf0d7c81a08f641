package core

import (
	"fmt"
	"math"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// MinPeriodsForDecomposition is the number of full seasonal cycles required
// before seasonal indices can be estimated.
const MinPeriodsForDecomposition = 2

// DecomposeSeries performs a classical additive decomposition of a revenue
// series into trend, seasonal and residual components. The trend is a
// centered moving average, so the first and last half-window positions carry
// NaN. Seasonal indices are normalized to sum to zero across one cycle.
func DecomposeSeries(values []float64, period int) (*schema.Decomposition, error) {
	if period < 2 {
		return nil, fmt.Errorf("%w: seasonal period must be at least 2 (received %d)",
			contract.ErrInvalidConfiguration, period)
	}
	if len(values) < MinPeriodsForDecomposition*period {
		return nil, fmt.Errorf("%w: decomposition needs %d full cycles of %d points (have %d points)",
			contract.ErrInsufficientHistory, MinPeriodsForDecomposition, period, len(values))
	}

	trend := centeredMovingAverage(values, period)

	// Average the detrended values at each cycle position.
	indexSums := make([]float64, period)
	indexCounts := make([]int, period)
	for i, v := range values {
		if math.IsNaN(trend[i]) {
			continue
		}
		pos := i % period
		indexSums[pos] += v - trend[i]
		indexCounts[pos]++
	}

	seasonalIndex := make([]float64, period)
	var indexMean float64
	for pos := range seasonalIndex {
		if indexCounts[pos] > 0 {
			seasonalIndex[pos] = indexSums[pos] / float64(indexCounts[pos])
		}
		indexMean += seasonalIndex[pos]
	}
	indexMean /= float64(period)

	// Normalize so the indices sum to zero over a full cycle.
	for pos := range seasonalIndex {
		seasonalIndex[pos] -= indexMean
	}

	seasonal := make([]float64, len(values))
	residual := make([]float64, len(values))
	for i, v := range values {
		seasonal[i] = seasonalIndex[i%period]
		if math.IsNaN(trend[i]) {
			residual[i] = math.NaN()
		} else {
			residual[i] = v - trend[i] - seasonal[i]
		}
	}

	return &schema.Decomposition{
		Period:   period,
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
	}, nil
}

// centeredMovingAverage computes the trend component. Odd periods use a
// simple centered window. Even periods use a 2-by-m average where the two
// window endpoints carry half weight, which keeps the window centered on the
// observation.
func centeredMovingAverage(values []float64, period int) []float64 {
	n := len(values)
	trend := make([]float64, n)
	half := period / 2

	for i := range trend {
		trend[i] = math.NaN()
	}

	if period%2 == 1 {
		for i := half; i < n-half; i++ {
			var sum float64
			for j := i - half; j <= i+half; j++ {
				sum += values[j]
			}
			trend[i] = sum / float64(period)
		}
		return trend
	}

	for i := half; i < n-half; i++ {
		sum := values[i-half]/2 + values[i+half]/2
		for j := i - half + 1; j <= i+half-1; j++ {
			sum += values[j]
		}
		trend[i] = sum / float64(period)
	}
	return trend
}

// SeasonalIndices extracts the per-position index values from a
// decomposition, covering exactly one cycle.
func SeasonalIndices(d *schema.Decomposition) []float64 {
	indices := make([]float64, d.Period)
	copy(indices, d.Seasonal[:d.Period])
	return indices
}

// SeasonalityScore summarizes seasonal strength as a 0-100 score. It is the
// coefficient of variation of the seasonal swing relative to mean revenue,
// capped at 100. Flat series score zero.
func SeasonalityScore(d *schema.Decomposition, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0
	}

	indices := SeasonalIndices(d)
	var variance float64
	for _, idx := range indices {
		variance += idx * idx
	}
	variance /= float64(len(indices))

	cv := math.Sqrt(variance) / math.Abs(mean)
	return math.Min(cv*100, 100)
}
