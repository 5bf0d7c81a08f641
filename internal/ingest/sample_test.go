package ingest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generatorOptions() GeneratorOptions {
	return GeneratorOptions{
		Transactions: 500,
		Customers:    50,
		Start:        time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2011, 12, 31, 0, 0, 0, 0, time.UTC),
		Seed:         42,
	}
}

func TestGenerateSample(t *testing.T) {
	opts := generatorOptions()
	records := GenerateSample(opts)
	require.Len(t, records, opts.Transactions)

	for i, rec := range records {
		assert.NotEmpty(t, rec.InvoiceID)
		assert.NotEmpty(t, rec.CustomerID)
		assert.NotEmpty(t, rec.ProductID)
		assert.Greater(t, rec.Quantity, 0)
		assert.Greater(t, rec.UnitPrice, 0.0)
		assert.False(t, rec.Timestamp.Before(opts.Start))
		assert.True(t, rec.Timestamp.Before(opts.End.AddDate(0, 0, 1)))
		if i > 0 {
			assert.False(t, rec.Timestamp.Before(records[i-1].Timestamp))
		}
	}
}

func TestGenerateSampleDeterministic(t *testing.T) {
	first := GenerateSample(generatorOptions())
	second := GenerateSample(generatorOptions())
	assert.Equal(t, first, second)

	opts := generatorOptions()
	opts.Seed = 7
	different := GenerateSample(opts)
	assert.NotEqual(t, first, different)
}

func TestWriteSampleCSVRoundTrip(t *testing.T) {
	opts := generatorOptions()
	opts.Transactions = 50
	records := GenerateSample(opts)

	path := filepath.Join(t.TempDir(), "sample.csv")
	require.NoError(t, WriteSampleCSV(path, records))

	loaded, err := NewCSVSource(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, len(records))

	for i := range records {
		assert.Equal(t, records[i].InvoiceID, loaded[i].InvoiceID)
		assert.Equal(t, records[i].Quantity, loaded[i].Quantity)
		assert.True(t, records[i].Timestamp.Equal(loaded[i].Timestamp))
	}
}
