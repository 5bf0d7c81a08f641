package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/salespulse/salespulse/schema"
)

// Color variables for console output.
var (
	ChampionColor = color.New(color.FgGreen, color.Bold)   // championColor marks the best customers.
	AtRiskColor   = color.New(color.FgMagenta, color.Bold) // atRiskColor marks high-value churn risk.
	LostColor     = color.New(color.FgRed)                 // lostColor marks churned customers.
	NeutralColor  = color.New(color.FgCyan)                // neutralColor marks everything in between.

	TierAColor = color.New(color.FgGreen, color.Bold) // tierAColor marks the revenue core.
	TierBColor = color.New(color.FgYellow)            // tierBColor marks the middle band.
	TierCColor = color.New(color.FgCyan)              // tierCColor marks the long tail.
)

// GetPlainSegmentLabel returns a plain text label for a customer segment.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainSegmentLabel(segment schema.Segment) string {
	switch segment {
	case schema.SegmentChampions:
		return "Champions"
	case schema.SegmentLoyal:
		return "Loyal"
	case schema.SegmentPotentialLoyalist:
		return "Potential Loyalist"
	case schema.SegmentNew:
		return "New"
	case schema.SegmentAtRisk:
		return "At Risk"
	case schema.SegmentLost:
		return "Lost"
	default:
		return "Other"
	}
}

// GetColorSegmentLabel returns a colored text label for console output (table).
// It uses GetPlainSegmentLabel to determine the string, and then applies the
// appropriate color.
func GetColorSegmentLabel(segment schema.Segment) string {
	text := GetPlainSegmentLabel(segment)

	switch segment {
	case schema.SegmentChampions, schema.SegmentLoyal:
		return ChampionColor.Sprint(text)
	case schema.SegmentAtRisk:
		return AtRiskColor.Sprint(text)
	case schema.SegmentLost:
		return LostColor.Sprint(text)
	default:
		return NeutralColor.Sprint(text)
	}
}

// GetColorTierLabel returns a colored tier label for console output.
func GetColorTierLabel(tier schema.Tier) string {
	switch tier {
	case schema.TierA:
		return TierAColor.Sprint(string(tier))
	case schema.TierB:
		return TierBColor.Sprint(string(tier))
	default:
		return TierCColor.Sprint(string(tier))
	}
}

// FormatMoney formats a monetary amount with the configured precision.
func FormatMoney(amount float64, precision int) string {
	return strconv.FormatFloat(amount, 'f', precision, 64)
}

// FormatPercent formats a ratio in [0, 1] as a percentage string.
func FormatPercent(ratio float64, precision int) string {
	return strconv.FormatFloat(ratio*100, 'f', precision, 64) + "%"
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".salespulse_runs.db"
	}
	return filepath.Join(homeDir, ".salespulse_runs.db")
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 to ensure there's space for both the "..." suffix and
// at least one character of content.
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
