package contract

import (
	"fmt"
	"maps"
	"math"
	"runtime"
	"strings"
	"time"

	"github.com/salespulse/salespulse/schema"
)

// Default values for configuration.
const (
	DefaultBuckets     = 5
	MaxBuckets         = 10
	DefaultHorizon     = 6
	MaxHorizon         = 60
	DefaultConfidence  = 0.95
	DefaultResultLimit = 25
	MaxResultLimit     = 10000
	DefaultPrecision   = 2
)

// WeightSumTolerance is the allowed deviation when checking that ensemble
// weights sum to 1.
const WeightSumTolerance = 1e-9

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// DateOnlyFormat accepts plain dates for the as-of flag.
const DateOnlyFormat = "2006-01-02"

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// WeightsRawInput holds custom ensemble weights from the YAML config file or
// flags. Use float64 pointers so unset fields fall back to defaults.
type WeightsRawInput struct {
	Linear     *float64 `mapstructure:"linear"`
	Polynomial *float64 `mapstructure:"polynomial"`
	Seasonal   *float64 `mapstructure:"seasonal"`
}

// Config holds the runtime configuration for an analysis run.
// This struct remains the "final, validated" config.
type Config struct {
	DataFile  string    // CSV dataset path, empty when SourceDSN is set
	SourceDSN string    // MySQL DSN for loading transactions, optional
	AsOf      time.Time // Reference date for recency; zero = derive from data

	Buckets        int // Quantile buckets per RFM dimension
	FrequencyBasis schema.FrequencyBasis

	Granularity    schema.Granularity
	SeasonalPeriod int // Buckets per seasonal cycle
	Horizon        int // Future periods to forecast
	Confidence     float64

	// ModelWeights is the validated ensemble weight map; always sums to 1.
	ModelWeights map[schema.ModelName]float64

	Workers     int
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)

	RunBackend   schema.DatabaseBackend
	RunDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataFileStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	AsOf         string `mapstructure:"as-of"`
	Buckets      int    `mapstructure:"buckets"`
	Frequency    string `mapstructure:"frequency"`
	Granularity  string `mapstructure:"granularity"`
	Period       int    `mapstructure:"period"`
	Horizon      int    `mapstructure:"horizon"`
	Confidence   float64 `mapstructure:"confidence"`
	Limit        int    `mapstructure:"limit"`
	Workers      int    `mapstructure:"workers"`
	Precision    int    `mapstructure:"precision"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Detail       bool   `mapstructure:"detail"`
	Width        int    `mapstructure:"width"`
	SourceDSN    string `mapstructure:"source-dsn"`
	RunBackend   string `mapstructure:"run-backend"`
	RunDBConnect string `mapstructure:"run-db-connect"`
	Emoji        string `mapstructure:"emoji"`
	Color        string `mapstructure:"color"`

	// --- Custom ensemble weights from config file ---
	Weights WeightsRawInput `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.ModelWeights != nil {
		clone.ModelWeights = make(map[schema.ModelName]float64, len(c.ModelWeights))
		maps.Copy(clone.ModelWeights, c.ModelWeights)
	}
	return &clone
}

// CloneWithAsOf creates a copy of the Config with a new reference date.
func (c *Config) CloneWithAsOf(asOf time.Time) *Config {
	clone := c.Clone()
	clone.AsOf = asOf
	return clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAsOf(cfg, input); err != nil {
		return err
	}
	if err := processModelWeights(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.DataFile = input.DataFileStr
	cfg.SourceDSN = input.SourceDSN
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Buckets Validation ---
	if input.Buckets < 2 || input.Buckets > MaxBuckets {
		return fmt.Errorf("%w: buckets must be between 2 and %d (received %d)",
			ErrInvalidConfiguration, MaxBuckets, input.Buckets)
	}
	cfg.Buckets = input.Buckets

	// --- Frequency Basis Validation ---
	cfg.FrequencyBasis = schema.FrequencyBasis(strings.ToLower(input.Frequency))
	if _, ok := schema.ValidFrequencyBases[cfg.FrequencyBasis]; !ok {
		return fmt.Errorf("%w: invalid frequency basis '%s'. must be orders or lines",
			ErrInvalidConfiguration, input.Frequency)
	}

	// --- Granularity Validation ---
	cfg.Granularity = schema.Granularity(strings.ToLower(input.Granularity))
	if _, ok := schema.ValidGranularities[cfg.Granularity]; !ok {
		return fmt.Errorf("%w: invalid granularity '%s'. must be day, week, month",
			ErrInvalidConfiguration, input.Granularity)
	}

	// --- Seasonal Period Validation ---
	cfg.SeasonalPeriod = input.Period
	if cfg.SeasonalPeriod == 0 {
		cfg.SeasonalPeriod = schema.SeasonalPeriods[cfg.Granularity]
	}
	if cfg.SeasonalPeriod < 2 {
		return fmt.Errorf("%w: seasonal period must be at least 2 (received %d)",
			ErrInvalidConfiguration, cfg.SeasonalPeriod)
	}

	// --- Horizon Validation ---
	if input.Horizon <= 0 || input.Horizon > MaxHorizon {
		return fmt.Errorf("%w: horizon must be between 1 and %d (received %d)",
			ErrInvalidConfiguration, MaxHorizon, input.Horizon)
	}
	cfg.Horizon = input.Horizon

	// --- Confidence Validation ---
	if input.Confidence <= 0 || input.Confidence >= 1 {
		return fmt.Errorf("%w: confidence must be in (0, 1) (received %g)",
			ErrInvalidConfiguration, input.Confidence)
	}
	cfg.Confidence = input.Confidence

	// --- ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("%w: limit must be greater than 0 and cannot exceed %d (received %d)",
			ErrInvalidConfiguration, MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("%w: workers must be greater than 0 (received %d)",
			ErrInvalidConfiguration, input.Workers)
	}
	cfg.Workers = input.Workers

	// --- Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > 4 {
		return fmt.Errorf("%w: precision must be between 0 and 4 (received %d)",
			ErrInvalidConfiguration, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("%w: invalid output format '%s'. must be text, csv, json, parquet",
			ErrInvalidConfiguration, input.Output)
	}

	return nil
}

// processAsOf parses the optional reference date. An empty value leaves the
// zero time, which tells the engine to derive it from the dataset.
func processAsOf(cfg *Config, input *ConfigRawInput) error {
	if input.AsOf == "" {
		cfg.AsOf = time.Time{}
		return nil
	}
	if t, err := time.Parse(DateTimeFormat, input.AsOf); err == nil {
		cfg.AsOf = t.UTC()
		return nil
	}
	if t, err := time.Parse(DateOnlyFormat, input.AsOf); err == nil {
		cfg.AsOf = t.UTC()
		return nil
	}
	return fmt.Errorf("%w: invalid as-of date '%s'. use %s or %s",
		ErrInvalidConfiguration, input.AsOf, DateOnlyFormat, DateTimeFormat)
}

// processModelWeights merges custom weight overrides onto the default equal
// weights and validates the final map.
func processModelWeights(cfg *Config, input *ConfigRawInput) error {
	weights := schema.GetDefaultModelWeights()
	custom := false
	if input.Weights.Linear != nil {
		weights[schema.LinearModel] = *input.Weights.Linear
		custom = true
	}
	if input.Weights.Polynomial != nil {
		weights[schema.PolynomialModel] = *input.Weights.Polynomial
		custom = true
	}
	if input.Weights.Seasonal != nil {
		weights[schema.SeasonalNaiveModel] = *input.Weights.Seasonal
		custom = true
	}
	if custom {
		if err := ValidateModelWeights(weights); err != nil {
			return err
		}
	}
	cfg.ModelWeights = weights
	return nil
}

// ValidateModelWeights checks that every ensemble member has a non-negative
// weight and that the weights sum to 1 within tolerance.
func ValidateModelWeights(weights map[schema.ModelName]float64) error {
	var sum float64
	for _, model := range schema.AllModels {
		w, ok := weights[model]
		if !ok {
			return fmt.Errorf("%w: missing weight for model %s", ErrInvalidWeights, model)
		}
		if w < 0 {
			return fmt.Errorf("%w: weight for model %s is negative (%g)", ErrInvalidWeights, model, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > WeightSumTolerance {
		return fmt.Errorf("%w: weights sum to %g, want 1", ErrInvalidWeights, sum)
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("run-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// validateBackendConfigs validates the run store backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.RunBackend = schema.DatabaseBackend(strings.ToLower(input.RunBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.RunBackend]; !ok {
		return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
	}
	cfg.RunDBConnect = input.RunDBConnect
	return ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect)
}
