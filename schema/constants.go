package schema

// Custom string types for type safety.
type (
	// Segment represents one of the fixed RFM customer segments.
	Segment string

	// Tier represents an ABC revenue classification tier.
	Tier string

	// Granularity represents the time bucket size for the revenue series.
	Granularity string

	// ModelName identifies one member of the forecast ensemble.
	ModelName string

	// FrequencyBasis controls what the frequency metric counts.
	FrequencyBasis string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run tracking.
	DatabaseBackend string
)

// The fixed customer segment taxonomy. Closed set: every RFM score maps to
// exactly one of these.
const (
	SegmentChampions         Segment = "champions"
	SegmentLoyal             Segment = "loyal"
	SegmentPotentialLoyalist Segment = "potential_loyalist"
	SegmentNew               Segment = "new"
	SegmentAtRisk            Segment = "at_risk"
	SegmentLost              Segment = "lost"
	SegmentOther             Segment = "other"
)

// The fixed ABC tiers.
const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

// All revenue series granularities supported.
const (
	DailyGranularity   Granularity = "day"
	WeeklyGranularity  Granularity = "week"
	MonthlyGranularity Granularity = "month" // default
)

// The forecast ensemble members.
const (
	LinearModel        ModelName = "linear"
	PolynomialModel    ModelName = "polynomial"
	SeasonalNaiveModel ModelName = "seasonal"
)

// All frequency bases supported.
const (
	OrderFrequency FrequencyBasis = "orders" // distinct invoice IDs (default)
	LineFrequency  FrequencyBasis = "lines"  // raw line item count
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All run store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllSegments lists the segment taxonomy in presentation order.
var AllSegments = []Segment{
	SegmentChampions,
	SegmentLoyal,
	SegmentPotentialLoyalist,
	SegmentNew,
	SegmentAtRisk,
	SegmentLost,
	SegmentOther,
}

// AllTiers lists the ABC tiers in presentation order.
var AllTiers = []Tier{TierA, TierB, TierC}

// AllModels lists the ensemble members in combination order.
var AllModels = []ModelName{LinearModel, PolynomialModel, SeasonalNaiveModel}

// ValidGranularities lists all valid series granularities.
var ValidGranularities = map[Granularity]struct{}{
	DailyGranularity:   {},
	WeeklyGranularity:  {},
	MonthlyGranularity: {},
}

// ValidFrequencyBases lists all valid frequency bases.
var ValidFrequencyBases = map[FrequencyBasis]struct{}{
	OrderFrequency: {},
	LineFrequency:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid run store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// SeasonalPeriods maps each granularity to its default seasonal period length.
var SeasonalPeriods = map[Granularity]int{
	DailyGranularity:   7,  // weekly cycle
	WeeklyGranularity:  52, // yearly cycle
	MonthlyGranularity: 12, // yearly cycle
}

// GetDefaultModelWeights returns the default equal-weight map for the ensemble.
func GetDefaultModelWeights() map[ModelName]float64 {
	return map[ModelName]float64{
		LinearModel:        1.0 / 3.0,
		PolynomialModel:    1.0 / 3.0,
		SeasonalNaiveModel: 1.0 / 3.0,
	}
}
