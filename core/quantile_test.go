package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantileRanks(t *testing.T) {
	t.Run("distinct values spread across buckets", func(t *testing.T) {
		values := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
		ranks := QuantileRanks(values, 5)
		require.Len(t, ranks, len(values))

		// Ranks ascend with the values and stay within 1..5.
		for i := 1; i < len(ranks); i++ {
			assert.GreaterOrEqual(t, ranks[i], ranks[i-1])
		}
		assert.Equal(t, 1, ranks[0])
		assert.Equal(t, 5, ranks[len(ranks)-1])
	})

	t.Run("equal values share a rank", func(t *testing.T) {
		values := []float64{5, 5, 5, 5, 5, 5, 5, 5}
		ranks := QuantileRanks(values, 5)
		for _, r := range ranks {
			assert.Equal(t, ranks[0], r)
		}
	})

	t.Run("heavy ties degrade bucket count", func(t *testing.T) {
		values := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 100}
		ranks := QuantileRanks(values, 5)
		assert.LessOrEqual(t, MaxRank(ranks), 5)
		// All tied values share one rank and the outlier sits above them.
		for i := 0; i < 9; i++ {
			assert.Equal(t, ranks[0], ranks[i])
		}
		assert.Greater(t, ranks[9], ranks[0])
	})

	t.Run("three value ordering", func(t *testing.T) {
		values := []float64{100, 500, 1000}
		ranks := QuantileRanks(values, 5)
		assert.Less(t, ranks[0], ranks[1])
		assert.Less(t, ranks[1], ranks[2])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, QuantileRanks(nil, 5))
	})
}

func TestInvertRank(t *testing.T) {
	assert.Equal(t, 5, InvertRank(1, 5))
	assert.Equal(t, 1, InvertRank(5, 5))
	assert.Equal(t, 3, InvertRank(3, 5))
	assert.Equal(t, 2, InvertRank(2, 3))
}

func TestInterpolatedQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 1, interpolatedQuantile(sorted, 0), 1e-9)
	assert.InDelta(t, 3, interpolatedQuantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 5, interpolatedQuantile(sorted, 1), 1e-9)
	assert.InDelta(t, 2, interpolatedQuantile(sorted, 0.25), 1e-9)
}

func FuzzQuantileRanks(f *testing.F) {
	f.Add(10.0, 20.0, 30.0, 40.0, 50.0)
	f.Add(0.0, 0.0, 0.0, 0.0, 0.0)
	f.Add(-5.0, 3.14, 1e9, -1e9, 0.5)

	f.Fuzz(func(t *testing.T, a, b, c, d, e float64) {
		values := []float64{a, b, c, d, e}
		for _, v := range values {
			if v != v { // skip NaN inputs
				t.Skip()
			}
		}
		ranks := QuantileRanks(values, 5)
		require.Len(t, ranks, 5)
		for i, r := range ranks {
			assert.GreaterOrEqual(t, r, 1)
			assert.LessOrEqual(t, r, 5)
			// Equal values must always share the same rank.
			for j := range values {
				if values[i] == values[j] {
					assert.Equal(t, ranks[i], ranks[j])
				}
			}
		}
	})
}
