package schema

import "fmt"

// FormatRFMScore renders the three bucket ranks as the composite score string.
func FormatRFMScore(r, f, m int) string {
	return fmt.Sprintf("%d%d%d", r, f, m)
}

// SegmentForRanks maps a triple of RFM bucket ranks to its segment. The rules
// form a total function over rank space: identical ranks always yield the
// same segment. Rank 5 is best on every dimension (most recent, most
// frequent, highest spend); ranks below the bucket count appear when the
// population has fewer distinct values than buckets.
func SegmentForRanks(r, f, m int) Segment {
	switch {
	case r >= 4 && f >= 4 && m >= 4:
		return SegmentChampions
	case r <= 2 && f >= 4 && m >= 4:
		// Previously frequent, high-value buyers gone quiet.
		return SegmentAtRisk
	case r >= 3 && f >= 3 && m >= 3:
		return SegmentLoyal
	case r <= 2 && f <= 2:
		return SegmentLost
	case r >= 4 && f <= 2:
		// Recent first purchases with little history.
		return SegmentNew
	case r >= 3 && m >= 2:
		return SegmentPotentialLoyalist
	default:
		return SegmentOther
	}
}

// SegmentDescription returns a short human-readable explanation for a segment.
func SegmentDescription(s Segment) string {
	switch s {
	case SegmentChampions:
		return "Bought recently, buy often and spend the most"
	case SegmentLoyal:
		return "Consistent buyers with solid spend across all dimensions"
	case SegmentPotentialLoyalist:
		return "Recent buyers with moderate frequency or spend"
	case SegmentNew:
		return "Very recent first purchases with little history"
	case SegmentAtRisk:
		return "Previously frequent high spenders who have gone quiet"
	case SegmentLost:
		return "Long-inactive customers with low engagement"
	default:
		return "Customers that match no stronger pattern"
	}
}

// TierDescription returns a short human-readable explanation for a tier.
func TierDescription(t Tier) string {
	switch t {
	case TierA:
		return "Top products driving the first 80% of revenue"
	case TierB:
		return "Mid products covering the next 15% of revenue"
	default:
		return "Long-tail products in the final 5% of revenue"
	}
}
