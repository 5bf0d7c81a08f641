package outwriter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONResultsForProducts(t *testing.T) {
	report := testReport()

	var buf bytes.Buffer
	err := writeJSONResultsForProducts(&buf, report.Products)
	require.NoError(t, err)

	var result []map[string]interface{}
	err = json.Unmarshal(buf.Bytes(), &result)
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, float64(1), result[0]["rank"])
	assert.Equal(t, "85123A", result[0]["product_id"])
	assert.Equal(t, "A", result[0]["tier"])
	assert.Contains(t, result[0]["label"], "80%")
}

func TestWriteCSVResultsForProducts(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	report := testReport()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForProducts(w, report.Products, fmtFloat, intFmt)
	require.NoError(t, err)
	w.Flush()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.Contains(t, lines[0], "85123A")
	assert.Contains(t, lines[0], "1400.00")
	assert.Contains(t, lines[0], "0.85")
	assert.Contains(t, lines[1], "22423")
	assert.Contains(t, lines[1], "C")
}

func TestWriteProductTable(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	report := testReport()
	cfg := testConfig()

	var buf bytes.Buffer
	err := writeProductTable(report.Products, report, cfg, fmtFloat, intFmt, time.Second, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "85123A")
	assert.Contains(t, output, "84.85%")
	assert.Contains(t, output, "Showing top 2 of 2 products")
	assert.NotContains(t, output, "QUANTITY")
}

func TestWriteProductTableDetail(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	report := testReport()
	cfg := testConfig()
	cfg.Detail = true

	var buf bytes.Buffer
	err := writeProductTable(report.Products, report, cfg, fmtFloat, intFmt, time.Second, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "QUANTITY")
	assert.Contains(t, output, "ORDERS")
	assert.Contains(t, output, "CUSTOMERS")
}

func TestWriteProductTableTruncatesDescription(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	report := testReport()
	cfg := testConfig()
	cfg.Width = 40 // forces the minimum description width

	var buf bytes.Buffer
	err := writeProductTable(report.Products, report, cfg, fmtFloat, intFmt, time.Second, &buf)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "WHITE HANGIN...")
}
