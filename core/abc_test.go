package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

func TestClassifyProducts(t *testing.T) {
	ts := time.Date(2011, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []schema.TransactionRecord{
		txn("I1", "alice", "P1", 1, 800, ts),
		txn("I2", "bob", "P2", 1, 100, ts),
		txn("I3", "carol", "P3", 1, 50, ts),
		txn("I4", "dave", "P4", 1, 30, ts),
		txn("I5", "erin", "P5", 1, 20, ts),
	}

	products, err := ClassifyProducts(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, products, 5)

	// Ranked by revenue descending.
	assert.Equal(t, "P1", products[0].ProductID)
	assert.Equal(t, "P5", products[4].ProductID)

	// Cumulative shares: 0.80, 0.90, 0.95, 0.98, 1.00.
	assert.Equal(t, schema.TierA, products[0].Tier)
	assert.Equal(t, schema.TierB, products[1].Tier)
	assert.Equal(t, schema.TierB, products[2].Tier)
	assert.Equal(t, schema.TierC, products[3].Tier)
	assert.Equal(t, schema.TierC, products[4].Tier)

	// Cumulative share is monotone and ends at 1.
	for i := 1; i < len(products); i++ {
		assert.GreaterOrEqual(t, products[i].CumulativeShare, products[i-1].CumulativeShare)
	}
	assert.InDelta(t, 1.0, products[len(products)-1].CumulativeShare, 1e-9)
}

func TestClassifyProductsCutoffBoundaries(t *testing.T) {
	ts := time.Date(2011, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("single product", func(t *testing.T) {
		records := []schema.TransactionRecord{
			txn("I1", "alice", "P1", 1, 1234, ts),
		}

		products, err := ClassifyProducts(context.Background(), records)
		require.NoError(t, err)
		require.Len(t, products, 1)

		// One product is all of the revenue, which still makes it tier A.
		assert.Equal(t, schema.TierA, products[0].Tier)
		assert.InDelta(t, 1.0, products[0].CumulativeShare, 1e-9)
	})

	t.Run("crossing the A cutoff", func(t *testing.T) {
		records := []schema.TransactionRecord{
			txn("I1", "alice", "P1", 1, 850, ts),
			txn("I2", "bob", "P2", 1, 150, ts),
		}

		products, err := ClassifyProducts(context.Background(), records)
		require.NoError(t, err)
		require.Len(t, products, 2)

		// P1 starts the A region and keeps the tier even though its own
		// cumulative share lands past 0.80.
		assert.Equal(t, schema.TierA, products[0].Tier)
		assert.Equal(t, schema.TierB, products[1].Tier)
	})

	t.Run("exact 95 percent boundary", func(t *testing.T) {
		records := []schema.TransactionRecord{
			txn("I1", "alice", "P1", 1, 950, ts),
			txn("I2", "bob", "P2", 1, 50, ts),
		}

		products, err := ClassifyProducts(context.Background(), records)
		require.NoError(t, err)
		require.Len(t, products, 2)

		// P2 begins exactly at cumulative share 0.95 and falls to tier C.
		assert.Equal(t, schema.TierA, products[0].Tier)
		assert.Equal(t, schema.TierC, products[1].Tier)
	})
}

func TestClassifyProductsRevenueTies(t *testing.T) {
	ts := time.Date(2011, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []schema.TransactionRecord{
		txn("I1", "alice", "P_B", 1, 100, ts),
		txn("I2", "bob", "P_A", 1, 100, ts),
		txn("I3", "carol", "P_C", 1, 100, ts),
	}

	products, err := ClassifyProducts(context.Background(), records)
	require.NoError(t, err)

	// Equal revenue breaks ties by product ID ascending.
	assert.Equal(t, "P_A", products[0].ProductID)
	assert.Equal(t, "P_B", products[1].ProductID)
	assert.Equal(t, "P_C", products[2].ProductID)
}

func TestClassifyProductsZeroRevenue(t *testing.T) {
	ts := time.Date(2011, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []schema.TransactionRecord{
		txn("I1", "alice", "P1", 1, 500, ts),
		// Only a return for P2, so its revenue is zero.
		txn("C1", "bob", "P2", -2, 50, ts),
	}

	products, err := ClassifyProducts(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, products, 2)

	byID := make(map[string]schema.ProductPerformance)
	for _, p := range products {
		byID[p.ProductID] = p
	}
	assert.Equal(t, schema.TierA, byID["P1"].Tier)
	assert.Equal(t, schema.TierC, byID["P2"].Tier)
	assert.Zero(t, byID["P2"].TotalRevenue)
}

func TestClassifyProductsAllZeroRevenue(t *testing.T) {
	ts := time.Date(2011, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []schema.TransactionRecord{
		txn("C1", "alice", "P1", -1, 10, ts),
		txn("C2", "bob", "P2", -1, 10, ts),
	}

	products, err := ClassifyProducts(context.Background(), records)
	require.NoError(t, err)
	for _, p := range products {
		assert.Equal(t, schema.TierC, p.Tier)
		assert.Zero(t, p.RevenueShare)
	}
}

func TestClassifyProductsEmpty(t *testing.T) {
	_, err := ClassifyProducts(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrInsufficientData)
}

func TestClassifyProductsCounts(t *testing.T) {
	ts := time.Date(2011, 6, 1, 0, 0, 0, 0, time.UTC)
	records := []schema.TransactionRecord{
		txn("I1", "alice", "P1", 2, 10, ts),
		txn("I1", "alice", "P1", 3, 10, ts),
		txn("I2", "bob", "P1", 1, 10, ts),
	}

	products, err := ClassifyProducts(context.Background(), records)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 6, products[0].TotalQuantity)
	assert.Equal(t, 2, products[0].OrderCount)
	assert.Equal(t, 2, products[0].CustomerCount)
}

func TestSummarizeTiers(t *testing.T) {
	products := []schema.ProductPerformance{
		{ProductID: "P1", Tier: schema.TierA, TotalRevenue: 800},
		{ProductID: "P2", Tier: schema.TierB, TotalRevenue: 150},
		{ProductID: "P3", Tier: schema.TierC, TotalRevenue: 50},
	}

	summaries := SummarizeTiers(products)
	require.Len(t, summaries, 3)
	assert.Equal(t, schema.TierA, summaries[0].Tier)
	assert.InDelta(t, 0.8, summaries[0].RevenueShare, 1e-9)
	assert.Equal(t, 1, summaries[0].ProductCount)
}
