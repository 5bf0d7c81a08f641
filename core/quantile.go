package core

import "sort"

// interpolatedQuantile computes the q-th quantile of a sorted slice using
// linear interpolation between order statistics.
func interpolatedQuantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}
	h := q * float64(n-1)
	lo := int(h)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// bucketEdges computes the interior quantile cut points for the requested
// bucket count. Duplicate edges collapse, which shrinks the effective number
// of buckets when the data has heavy ties.
func bucketEdges(values []float64, buckets int) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	edges := make([]float64, 0, buckets-1)
	for i := 1; i < buckets; i++ {
		edge := interpolatedQuantile(sorted, float64(i)/float64(buckets))
		if len(edges) == 0 || edge > edges[len(edges)-1] {
			edges = append(edges, edge)
		}
	}
	return edges
}

// QuantileRanks assigns each value an ascending rank from 1 to at most
// buckets, where higher values receive higher ranks. Upper bucket edges are
// inclusive, so equal values always share a rank. When the data has fewer
// distinct values than buckets the top rank degrades below the requested
// bucket count.
func QuantileRanks(values []float64, buckets int) []int {
	if len(values) == 0 {
		return nil
	}
	edges := bucketEdges(values, buckets)

	ranks := make([]int, len(values))
	for i, v := range values {
		rank := len(edges) + 1
		for j, edge := range edges {
			if v <= edge {
				rank = j + 1
				break
			}
		}
		ranks[i] = rank
	}
	return ranks
}

// InvertRank flips a rank within the effective bucket range so that low raw
// values map to high ranks. Recency uses this: fewer days since the last
// purchase means a better score.
func InvertRank(rank, maxRank int) int {
	return maxRank + 1 - rank
}

// MaxRank returns the highest rank present in the slice, or zero when empty.
func MaxRank(ranks []int) int {
	maxRank := 0
	for _, r := range ranks {
		if r > maxRank {
			maxRank = r
		}
	}
	return maxRank
}
