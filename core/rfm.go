package core

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// customerAccumulator collects the raw per-customer facts before scoring.
type customerAccumulator struct {
	lastPurchase time.Time
	invoices     map[string]struct{}
	lineCount    int
	monetary     float64
}

// MinCustomersForScoring is the smallest population that quantile bucketing
// can meaningfully split.
const MinCustomersForScoring = 2

// ScoreCustomers computes recency, frequency and monetary metrics for every
// customer, assigns quantile ranks on each dimension and maps the combined
// ranks to a behavioral segment. Results are sorted by customer ID so repeated
// runs over the same dataset produce identical output.
func ScoreCustomers(ctx context.Context, cfg *contract.Config, records []schema.TransactionRecord, asOf time.Time) ([]schema.CustomerProfile, error) {
	accs := make(map[string]*customerAccumulator)
	for _, rec := range records {
		if rec.CustomerID == "" {
			continue
		}
		acc, ok := accs[rec.CustomerID]
		if !ok {
			acc = &customerAccumulator{invoices: make(map[string]struct{})}
			accs[rec.CustomerID] = acc
		}
		// Returns and cancellations still count as customer activity for
		// recency and frequency, but only positive revenue accrues.
		if rec.Timestamp.After(acc.lastPurchase) {
			acc.lastPurchase = rec.Timestamp
		}
		acc.invoices[rec.InvoiceID] = struct{}{}
		acc.lineCount++
		if revenue := rec.LineRevenue(); revenue > 0 {
			acc.monetary += revenue
		}
	}

	if len(accs) < MinCustomersForScoring {
		return nil, fmt.Errorf("%w: need at least %d customers for scoring (found %d)",
			contract.ErrInsufficientData, MinCustomersForScoring, len(accs))
	}

	customerIDs := make([]string, 0, len(accs))
	for id := range accs {
		customerIDs = append(customerIDs, id)
	}
	sort.Strings(customerIDs)

	recency := make([]float64, len(customerIDs))
	frequency := make([]float64, len(customerIDs))
	monetary := make([]float64, len(customerIDs))
	for i, id := range customerIDs {
		acc := accs[id]
		recency[i] = asOf.Sub(acc.lastPurchase).Hours() / 24
		if recency[i] < 0 {
			recency[i] = 0
		}
		if cfg.FrequencyBasis == schema.LineFrequency {
			frequency[i] = float64(acc.lineCount)
		} else {
			frequency[i] = float64(len(acc.invoices))
		}
		monetary[i] = acc.monetary
	}

	recencyRanks := QuantileRanks(recency, cfg.Buckets)
	frequencyRanks := QuantileRanks(frequency, cfg.Buckets)
	monetaryRanks := QuantileRanks(monetary, cfg.Buckets)
	maxRecencyRank := MaxRank(recencyRanks)

	profiles := buildProfiles(ctx, cfg, profileInputs{
		customerIDs:    customerIDs,
		accs:           accs,
		recency:        recency,
		frequency:      frequency,
		monetary:       monetary,
		recencyRanks:   recencyRanks,
		frequencyRanks: frequencyRanks,
		monetaryRanks:  monetaryRanks,
		maxRecencyRank: maxRecencyRank,
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CustomerID < profiles[j].CustomerID
	})
	return profiles, nil
}

// profileInputs bundles the precomputed scoring arrays for the worker pool.
type profileInputs struct {
	customerIDs    []string
	accs           map[string]*customerAccumulator
	recency        []float64
	frequency      []float64
	monetary       []float64
	recencyRanks   []int
	frequencyRanks []int
	monetaryRanks  []int
	maxRecencyRank int
}

// buildProfiles assembles the final profile records in parallel using a
// worker pool. Each goroutine writes to a unique index, which is safe.
func buildProfiles(ctx context.Context, cfg *contract.Config, in profileInputs) []schema.CustomerProfile {
	idxCh := make(chan int, len(in.customerIDs))
	profiles := make([]schema.CustomerProfile, len(in.customerIDs))

	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Go(func() {
			for i := range idxCh {
				if ctx.Err() != nil {
					continue
				}
				profiles[i] = buildProfile(cfg, in, i)
			}
		})
	}

	for i := range in.customerIDs {
		idxCh <- i
	}
	close(idxCh)
	wg.Wait()

	return profiles
}

// buildProfile computes the derived fields for a single customer.
func buildProfile(cfg *contract.Config, in profileInputs, i int) schema.CustomerProfile {
	id := in.customerIDs[i]
	acc := in.accs[id]

	// Recency uses an inverted rank: buyers with the fewest days since
	// their last purchase score highest.
	rRank := InvertRank(in.recencyRanks[i], in.maxRecencyRank)
	fRank := in.frequencyRanks[i]
	mRank := in.monetaryRanks[i]

	orderCount := len(acc.invoices)
	avgOrderValue := 0.0
	if orderCount > 0 {
		avgOrderValue = acc.monetary / float64(orderCount)
	}

	return schema.CustomerProfile{
		CustomerID:    id,
		RecencyDays:   int(in.recency[i]),
		Frequency:     int(in.frequency[i]),
		Monetary:      acc.monetary,
		RecencyRank:   rRank,
		FrequencyRank: fRank,
		MonetaryRank:  mRank,
		RFMScore:      schema.FormatRFMScore(rRank, fRank, mRank),
		Segment:       schema.SegmentForRanks(rRank, fRank, mRank),
		AvgOrderValue: avgOrderValue,
	}
}

// SummarizeSegments aggregates customer counts and monetary totals per
// segment, in the canonical segment order.
func SummarizeSegments(profiles []schema.CustomerProfile) []schema.SegmentSummary {
	counts := make(map[schema.Segment]int)
	totals := make(map[schema.Segment]float64)
	for _, p := range profiles {
		counts[p.Segment]++
		totals[p.Segment] += p.Monetary
	}

	summaries := make([]schema.SegmentSummary, 0, len(schema.AllSegments))
	for _, segment := range schema.AllSegments {
		if counts[segment] == 0 {
			continue
		}
		summaries = append(summaries, schema.SegmentSummary{
			Segment:       segment,
			CustomerCount: counts[segment],
			TotalMonetary: totals[segment],
		})
	}
	return summaries
}
