package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// BuildReport runs customer scoring, product classification and revenue
// forecasting concurrently and assembles the combined report. The first
// failure cancels the remaining work and no partial report is returned.
// Repeated calls over the same dataset and config produce identical reports.
func BuildReport(ctx context.Context, cfg *contract.Config, records []schema.TransactionRecord) (*schema.AnalyticsReport, error) {
	asOf := DeriveAsOf(cfg, records)

	series, err := BuildRevenueSeries(records, cfg.Granularity)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		customers []schema.CustomerProfile
		products  []schema.ProductPerformance
		forecast  *schema.ForecastResult

		mu       sync.Mutex
		firstErr error
	)

	// Record the first failure and cancel the siblings.
	fail := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		result, err := ScoreCustomers(ctx, cfg, records, asOf)
		if err != nil {
			fail(err)
			return
		}
		customers = result
	})
	wg.Go(func() {
		result, err := ClassifyProducts(ctx, records)
		if err != nil {
			fail(err)
			return
		}
		products = result
	})
	wg.Go(func() {
		result, err := ForecastRevenue(ctx, cfg, series)
		if err != nil {
			fail(err)
			return
		}
		forecast = result
	})
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	kpis := computeKPIs(cfg, records, series)

	return &schema.AnalyticsReport{
		AsOf:      asOf,
		KPIs:      kpis,
		Customers: customers,
		Products:  products,
		Segments:  SummarizeSegments(customers),
		Tiers:     SummarizeTiers(products),
		Series:    *series,
		Forecast:  *forecast,
	}, nil
}

// computeKPIs derives the headline numbers for the report summary.
func computeKPIs(cfg *contract.Config, records []schema.TransactionRecord, series *schema.RevenueSeries) schema.KPISummary {
	var totalRevenue float64
	invoices := make(map[string]struct{})
	customerInvoices := make(map[string]map[string]struct{})
	productIDs := make(map[string]struct{})
	var rangeStart, rangeEnd time.Time

	for _, rec := range records {
		invoices[rec.InvoiceID] = struct{}{}
		if rec.CustomerID != "" {
			if customerInvoices[rec.CustomerID] == nil {
				customerInvoices[rec.CustomerID] = make(map[string]struct{})
			}
			customerInvoices[rec.CustomerID][rec.InvoiceID] = struct{}{}
		}
		if rec.ProductID != "" {
			productIDs[rec.ProductID] = struct{}{}
		}
		if revenue := rec.LineRevenue(); revenue > 0 {
			totalRevenue += revenue
		}
		if rangeStart.IsZero() || rec.Timestamp.Before(rangeStart) {
			rangeStart = rec.Timestamp
		}
		if rec.Timestamp.After(rangeEnd) {
			rangeEnd = rec.Timestamp
		}
	}

	avgOrderValue := 0.0
	if len(invoices) > 0 {
		avgOrderValue = totalRevenue / float64(len(invoices))
	}

	repeatRatePct := 0.0
	if len(customerInvoices) > 0 {
		repeaters := 0
		for _, orders := range customerInvoices {
			if len(orders) >= 2 {
				repeaters++
			}
		}
		repeatRatePct = float64(repeaters) / float64(len(customerInvoices)) * 100
	}

	return schema.KPISummary{
		TotalRevenue:     totalRevenue,
		TotalOrders:      len(invoices),
		TotalCustomers:   len(customerInvoices),
		TotalProducts:    len(productIDs),
		AvgOrderValue:    avgOrderValue,
		RepeatRatePct:    repeatRatePct,
		RevenueGrowthPct: revenueGrowthPct(series),
		SeasonalityScore: seasonalityScoreForSeries(cfg, series),
		RangeStart:       rangeStart.UTC(),
		RangeEnd:         rangeEnd.UTC(),
	}
}

// revenueGrowthPct compares the last bucket against the first bucket of the
// series. A zero first bucket yields zero growth rather than a division blowup.
func revenueGrowthPct(series *schema.RevenueSeries) float64 {
	if len(series.Points) < 2 {
		return 0
	}
	first := series.Points[0].Revenue
	last := series.Points[len(series.Points)-1].Revenue
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

// seasonalityScoreForSeries scores seasonal strength when enough history
// exists, and reports zero otherwise.
func seasonalityScoreForSeries(cfg *contract.Config, series *schema.RevenueSeries) float64 {
	values := series.Revenues()
	decomp, err := DecomposeSeries(values, cfg.SeasonalPeriod)
	if err != nil {
		if errors.Is(err, contract.ErrInsufficientHistory) {
			return 0
		}
		return 0
	}
	return SeasonalityScore(decomp, values)
}
