package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// TruncatePeriod maps a timestamp to the start of its bucket in UTC.
// Weekly buckets start on Monday.
func TruncatePeriod(t time.Time, granularity schema.Granularity) time.Time {
	t = t.UTC()
	switch granularity {
	case schema.DailyGranularity:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case schema.WeeklyGranularity:
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
		return day.AddDate(0, 0, -offset)
	default:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
}

// NextPeriod returns the start of the bucket following t.
func NextPeriod(t time.Time, granularity schema.Granularity) time.Time {
	switch granularity {
	case schema.DailyGranularity:
		return t.AddDate(0, 0, 1)
	case schema.WeeklyGranularity:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 1, 0)
	}
}

// BuildRevenueSeries aggregates line revenue into a contiguous time series at
// the given granularity. Buckets with no sales are filled with zero revenue so
// downstream decomposition and forecasting see evenly spaced points. Lines
// with non-positive revenue (returns, cancellations) do not contribute.
func BuildRevenueSeries(records []schema.TransactionRecord, granularity schema.Granularity) (*schema.RevenueSeries, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no transactions to build a revenue series from", contract.ErrInsufficientData)
	}

	totals := make(map[time.Time]float64)
	for _, rec := range records {
		revenue := rec.LineRevenue()
		if revenue <= 0 {
			continue
		}
		period := TruncatePeriod(rec.Timestamp, granularity)
		totals[period] += revenue
	}
	if len(totals) == 0 {
		return nil, fmt.Errorf("%w: no positive-revenue transactions in dataset", contract.ErrInsufficientData)
	}

	periods := make([]time.Time, 0, len(totals))
	for period := range totals {
		periods = append(periods, period)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	// Fill interior gaps with zero-revenue points.
	first, last := periods[0], periods[len(periods)-1]
	points := make([]schema.RevenuePoint, 0, len(periods))
	for period := first; !period.After(last); period = NextPeriod(period, granularity) {
		points = append(points, schema.RevenuePoint{
			Period:  period,
			Revenue: totals[period],
		})
	}

	return &schema.RevenueSeries{
		Granularity: granularity,
		Points:      points,
	}, nil
}

// DeriveAsOf returns the reference date for recency computations. When the
// configured value is zero it falls back to one day past the latest
// transaction, so the most recent buyers land at recency zero or one.
func DeriveAsOf(cfg *contract.Config, records []schema.TransactionRecord) time.Time {
	if !cfg.AsOf.IsZero() {
		return cfg.AsOf
	}
	var maxTs time.Time
	for _, rec := range records {
		if rec.Timestamp.After(maxTs) {
			maxTs = rec.Timestamp
		}
	}
	return maxTs.UTC().Add(24 * time.Hour)
}
