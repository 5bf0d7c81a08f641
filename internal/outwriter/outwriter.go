// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/salespulse/salespulse/internal/contract"
	"github.com/salespulse/salespulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCustomers prints customer segmentation results using the configured output format.
func (ow *OutWriter) WriteCustomers(report *schema.AnalyticsReport, cfg *contract.Config, duration time.Duration) error {
	return PrintCustomerResults(report, cfg, duration)
}

// WriteProducts prints product classification results using the configured output format.
func (ow *OutWriter) WriteProducts(report *schema.AnalyticsReport, cfg *contract.Config, duration time.Duration) error {
	return PrintProductResults(report, cfg, duration)
}

// WriteForecast prints the revenue forecast using the configured output format.
func (ow *OutWriter) WriteForecast(report *schema.AnalyticsReport, cfg *contract.Config, duration time.Duration) error {
	return PrintForecastResults(report, cfg, duration)
}

// WriteReport prints the full analytics report using the configured output format.
func (ow *OutWriter) WriteReport(report *schema.AnalyticsReport, cfg *contract.Config, duration time.Duration) error {
	return PrintReportResults(report, cfg, duration)
}

// WriteTaxonomy prints the segment and tier reference tables.
func (ow *OutWriter) WriteTaxonomy(cfg *contract.Config) error {
	return PrintTaxonomy(cfg)
}

// getMaxTableDescWidth calculates the maximum width for product descriptions
// in table output based on terminal width and table configuration.
func getMaxTableDescWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		// Get terminal width
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default for narrow terminals and CI
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 45 // Rank + Product + Tier + Revenue + Share with borders/padding

	// Add detail columns with formatting
	if cfg.Detail {
		baseWidth += 30 // Quantity + Orders + Customers with formatting
	}

	// Reserve generous space for table borders, separators, and padding
	baseWidth += 10

	// Calculate available space for the description
	available := termWidth - baseWidth
	if available < 15 {
		// Minimum reasonable description width
		return 15
	}
	if available > 60 {
		// Maximum description width to prevent overly long rows
		return 60
	}
	return available
}
