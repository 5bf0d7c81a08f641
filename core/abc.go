package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// ABC cumulative revenue share cutoffs.
const (
	TierACutoff = 0.80
	TierBCutoff = 0.95
)

// productAccumulator collects raw per-product facts before classification.
type productAccumulator struct {
	description string
	quantity    int
	revenue     float64
	invoices    map[string]struct{}
	customers   map[string]struct{}
}

// ClassifyProducts ranks products by revenue and assigns ABC tiers based on
// cumulative revenue share. Products inside the first 80% of revenue are tier
// A, the next 15% tier B, and the remaining tail tier C. Ties on revenue are
// broken by product ID so classification is deterministic.
func ClassifyProducts(ctx context.Context, records []schema.TransactionRecord) ([]schema.ProductPerformance, error) {
	accs := make(map[string]*productAccumulator)
	for _, rec := range records {
		if rec.ProductID == "" {
			continue
		}
		acc, ok := accs[rec.ProductID]
		if !ok {
			acc = &productAccumulator{
				invoices:  make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			accs[rec.ProductID] = acc
		}
		if acc.description == "" && rec.Description != "" {
			acc.description = rec.Description
		}
		acc.invoices[rec.InvoiceID] = struct{}{}
		if rec.CustomerID != "" {
			acc.customers[rec.CustomerID] = struct{}{}
		}
		if revenue := rec.LineRevenue(); revenue > 0 {
			acc.quantity += rec.Quantity
			acc.revenue += revenue
		}
	}

	if len(accs) == 0 {
		return nil, fmt.Errorf("%w: no products found in dataset", contract.ErrInsufficientData)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := make([]schema.ProductPerformance, 0, len(accs))
	var grandTotal float64
	for id, acc := range accs {
		products = append(products, schema.ProductPerformance{
			ProductID:     id,
			Description:   acc.description,
			TotalQuantity: acc.quantity,
			TotalRevenue:  acc.revenue,
			OrderCount:    len(acc.invoices),
			CustomerCount: len(acc.customers),
		})
		grandTotal += acc.revenue
	}

	sort.Slice(products, func(i, j int) bool {
		if products[i].TotalRevenue != products[j].TotalRevenue {
			return products[i].TotalRevenue > products[j].TotalRevenue
		}
		return products[i].ProductID < products[j].ProductID
	})

	// A product's tier comes from the cumulative share of everything ranked
	// ahead of it, so the product that crosses a cutoff keeps the tier of
	// the region it starts in. Shares are single divisions by the grand
	// total: summing per-product shares drifts off exact boundaries like
	// 950/1000.
	var cumulativeRevenue float64
	for i := range products {
		p := &products[i]
		prior := cumulativeRevenue
		cumulativeRevenue += p.TotalRevenue

		var priorShare float64
		if grandTotal > 0 {
			p.RevenueShare = p.TotalRevenue / grandTotal
			p.CumulativeShare = cumulativeRevenue / grandTotal
			priorShare = prior / grandTotal
		}

		switch {
		case p.TotalRevenue <= 0:
			// Zero-revenue products never make the core tiers.
			p.Tier = schema.TierC
		case priorShare < TierACutoff:
			p.Tier = schema.TierA
		case priorShare < TierBCutoff:
			p.Tier = schema.TierB
		default:
			p.Tier = schema.TierC
		}
	}

	return products, nil
}

// SummarizeTiers aggregates product counts and revenue per ABC tier.
func SummarizeTiers(products []schema.ProductPerformance) []schema.TierSummary {
	counts := make(map[schema.Tier]int)
	revenue := make(map[schema.Tier]float64)
	var grandTotal float64
	for _, p := range products {
		counts[p.Tier]++
		revenue[p.Tier] += p.TotalRevenue
		grandTotal += p.TotalRevenue
	}

	summaries := make([]schema.TierSummary, 0, len(schema.AllTiers))
	for _, tier := range schema.AllTiers {
		if counts[tier] == 0 {
			continue
		}
		share := 0.0
		if grandTotal > 0 {
			share = revenue[tier] / grandTotal
		}
		summaries = append(summaries, schema.TierSummary{
			Tier:         tier,
			ProductCount: counts[tier],
			TotalRevenue: revenue[tier],
			RevenueShare: share,
		})
	}
	return summaries
}
