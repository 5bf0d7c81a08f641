package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRFMScore(t *testing.T) {
	assert.Equal(t, "555", FormatRFMScore(5, 5, 5))
	assert.Equal(t, "111", FormatRFMScore(1, 1, 1))
	assert.Equal(t, "352", FormatRFMScore(3, 5, 2))
}

func TestSegmentForRanks(t *testing.T) {
	tests := []struct {
		name     string
		r, f, m  int
		expected Segment
	}{
		{name: "top scores on all axes", r: 5, f: 5, m: 5, expected: SegmentChampions},
		{name: "champion threshold", r: 4, f: 4, m: 4, expected: SegmentChampions},
		{name: "high value gone quiet", r: 1, f: 5, m: 5, expected: SegmentAtRisk},
		{name: "at risk threshold", r: 2, f: 4, m: 4, expected: SegmentAtRisk},
		{name: "solid mid scores", r: 3, f: 3, m: 3, expected: SegmentLoyal},
		{name: "long gone low value", r: 1, f: 1, m: 1, expected: SegmentLost},
		{name: "lost threshold", r: 2, f: 2, m: 3, expected: SegmentLost},
		{name: "fresh first purchase", r: 5, f: 1, m: 1, expected: SegmentNew},
		{name: "new threshold", r: 4, f: 2, m: 5, expected: SegmentNew},
		{name: "recent with some spend", r: 3, f: 3, m: 2, expected: SegmentPotentialLoyalist},
		{name: "no strong signal", r: 3, f: 1, m: 1, expected: SegmentOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SegmentForRanks(tt.r, tt.f, tt.m))
		})
	}
}

func TestSegmentForRanksIsTotal(t *testing.T) {
	// Every rank combination maps to a known segment.
	known := make(map[Segment]bool)
	for _, s := range AllSegments {
		known[s] = true
	}
	for r := 1; r <= 5; r++ {
		for f := 1; f <= 5; f++ {
			for m := 1; m <= 5; m++ {
				segment := SegmentForRanks(r, f, m)
				assert.True(t, known[segment], "ranks %d%d%d mapped to unknown segment %s", r, f, m, segment)
			}
		}
	}
}

func TestDescriptions(t *testing.T) {
	for _, s := range AllSegments {
		assert.NotEmpty(t, SegmentDescription(s))
	}
	for _, tier := range AllTiers {
		assert.NotEmpty(t, TierDescription(tier))
	}
}
