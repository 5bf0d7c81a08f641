package outwriter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVResultsForForecast(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	report := testReport()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	err := writeCSVResultsForForecast(w, &report.Forecast, fmtFloat)
	require.NoError(t, err)
	w.Flush()

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	// period + estimate + bounds + one column per model
	require.Len(t, records[0], 7)
	assert.Equal(t, "2011-04-01", records[0][0])
	assert.Equal(t, "580.00", records[0][1])
	assert.Equal(t, "520.00", records[0][2])
	assert.Equal(t, "640.00", records[0][3])
	assert.Equal(t, "575.00", records[0][4])
}

func TestWriteForecastTable(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	report := testReport()
	cfg := testConfig()

	var buf bytes.Buffer
	err := writeForecastTable(&report.Forecast, cfg, fmtFloat, time.Second, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "2011-04-01")
	assert.Contains(t, output, "2011-05-01")
	assert.Contains(t, output, "580.00")
	assert.Contains(t, output, "Forecast horizon: 2 periods at 95% confidence")
	// Model diagnostics are hidden by default
	assert.NotContains(t, output, "residual_std")
}

func TestWriteForecastTableDetail(t *testing.T) {
	fmtFloat, _ := createFormatters(2)
	report := testReport()
	cfg := testConfig()
	cfg.Detail = true

	var buf bytes.Buffer
	err := writeForecastTable(&report.Forecast, cfg, fmtFloat, time.Second, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "linear")
	assert.Contains(t, output, "polynomial")
	assert.Contains(t, output, "seasonal")
	assert.Contains(t, output, "Model linear: weight=0.33 r2=0.90 mae=15.00 residual_std=20.00")
}

func TestPrintForecastJSONToFile(t *testing.T) {
	report := testReport()
	cfg := testConfig()
	cfg.OutputFile = t.TempDir() + "/forecast.json"

	err := printForecastJSONResults(&report.Forecast, cfg)
	require.NoError(t, err)
}
