package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salespulse/salespulse/schema"
)

func TestGetPlainSegmentLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    schema.Segment
		expected string
	}{
		{
			name:     "champions",
			input:    schema.SegmentChampions,
			expected: "Champions",
		},
		{
			name:     "at risk",
			input:    schema.SegmentAtRisk,
			expected: "At Risk",
		},
		{
			name:     "potential loyalist",
			input:    schema.SegmentPotentialLoyalist,
			expected: "Potential Loyalist",
		},
		{
			name:     "unknown falls back to other",
			input:    schema.Segment("mystery"),
			expected: "Other",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetPlainSegmentLabel(tt.input))
		})
	}
}

func TestGetColorSegmentLabel(t *testing.T) {
	// Colored labels must still contain the plain text regardless of
	// whether the terminal strips ANSI codes.
	for _, segment := range schema.AllSegments {
		label := GetColorSegmentLabel(segment)
		assert.Contains(t, label, GetPlainSegmentLabel(segment))
	}
}

func TestGetColorTierLabel(t *testing.T) {
	for _, tier := range schema.AllTiers {
		label := GetColorTierLabel(tier)
		assert.Contains(t, label, string(tier))
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "1234.57", FormatMoney(1234.567, 2))
	assert.Equal(t, "1235", FormatMoney(1234.567, 0))
	assert.Equal(t, "0.00", FormatMoney(0, 2))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "80.0%", FormatPercent(0.80, 1))
	assert.Equal(t, "100%", FormatPercent(1.0, 0))
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("empty path returns stdout", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("path creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.NotEqual(t, os.Stdout, f)

		_, statErr := os.Stat(path)
		assert.NoError(t, statErr)
	})
}

func TestGetRunDBFilePath(t *testing.T) {
	path := GetRunDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".salespulse_runs.db"))
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		expected string
	}{
		{
			name:     "short string unchanged",
			input:    "mug",
			maxWidth: 10,
			expected: "mug",
		},
		{
			name:     "long string truncated",
			input:    "WHITE HANGING HEART T-LIGHT HOLDER",
			maxWidth: 10,
			expected: "WHITE H...",
		},
		{
			name:     "tiny width left alone",
			input:    "lantern",
			maxWidth: 3,
			expected: "lantern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateText(tt.input, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
		wantErr  bool
	}{
		{input: "yes", expected: true},
		{input: "TRUE", expected: true},
		{input: "1", expected: true},
		{input: "no", expected: false},
		{input: "False", expected: false},
		{input: "0", expected: false},
		{input: "maybe", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}
