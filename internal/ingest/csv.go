// Package ingest loads transaction datasets from CSV files and MySQL
// databases, and generates synthetic datasets for demos and tests.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// Required CSV column names, matching the UCI Online Retail layout.
var requiredColumns = []string{
	"InvoiceNo", "StockCode", "Quantity", "InvoiceDate", "UnitPrice", "CustomerID",
}

// timestampLayouts are the accepted InvoiceDate formats, tried in order.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"1/2/2006 15:04", // UCI Online Retail export format
	"1/2/2006",
}

// CSVSource loads transactions from a CSV file on disk.
type CSVSource struct {
	path string
}

var _ contract.RecordSource = &CSVSource{}

// NewCSVSource creates a source reading from the given file path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name returns a short description of the source for log output.
func (s *CSVSource) Name() string {
	return "csv:" + s.path
}

// Load reads and parses the full dataset. A missing required column or an
// unparseable cell fails the load with a row-level error rather than
// silently dropping data.
func (s *CSVSource) Load(ctx context.Context) ([]schema.TransactionRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseCSV(ctx, f)
}

// ParseCSV parses transaction records from CSV content. The first row must
// be a header containing all required columns; extra columns are ignored.
func ParseCSV(ctx context.Context, r io.Reader) ([]schema.TransactionRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read CSV header: %v", contract.ErrDataIntegrity, err)
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", contract.ErrDataIntegrity, col)
		}
	}
	descIdx, hasDesc := colIdx["Description"]

	var records []schema.TransactionRecord
	rowNum := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", contract.ErrDataIntegrity, rowNum+1, err)
		}
		rowNum++

		cell := func(col string) string {
			idx := colIdx[col]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		quantity, err := strconv.Atoi(cell("Quantity"))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid Quantity %q", contract.ErrDataIntegrity, rowNum, cell("Quantity"))
		}
		unitPrice, err := strconv.ParseFloat(cell("UnitPrice"), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid UnitPrice %q", contract.ErrDataIntegrity, rowNum, cell("UnitPrice"))
		}
		ts, err := parseTimestamp(cell("InvoiceDate"))
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: invalid InvoiceDate %q", contract.ErrDataIntegrity, rowNum, cell("InvoiceDate"))
		}

		rec := schema.TransactionRecord{
			InvoiceID:  cell("InvoiceNo"),
			CustomerID: cell("CustomerID"),
			ProductID:  cell("StockCode"),
			Quantity:   quantity,
			UnitPrice:  unitPrice,
			Timestamp:  ts,
		}
		if hasDesc && descIdx < len(row) {
			rec.Description = strings.TrimSpace(row[descIdx])
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: dataset has a header but no rows", contract.ErrInsufficientData)
	}
	return records, nil
}

// parseTimestamp tries each accepted layout in order.
func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}
