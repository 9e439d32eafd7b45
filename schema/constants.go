package schema

// Custom string types for type safety.
type (
	// ViewKind identifies one of the ranked leaderboard views.
	ViewKind string

	// SeriesMode selects what the time series plots.
	SeriesMode string

	// OutputMode represents the format of the output.
	OutputMode string

	// SourceFormat represents the encoding of a snapshot file.
	SourceFormat string

	// DatabaseBackend represents the database backend for caching, history and SQL sources.
	DatabaseBackend string
)

// Score scale constants.
const (
	MinGuesses = 1
	MaxGuesses = 6
	DNFScore   = 7 // Normalized value of a did-not-finish attempt
)

// Default rating constants.
const (
	DefaultAlpha              = 20.0
	DefaultRecencyScaleDays   = 40.0
	DefaultAttemptsBonusScale = 0.2
	DefaultNeutralPrior       = 4.5
)

// View gating and shape constants.
const (
	WeeklyDays         = 5 // Weekly denominator, fixed regardless of played days
	MinAllTimeAttempts = 3
	MinRawAttempts     = 5
)

// DefaultTimezone is the home-region civil timezone used to derive effective dates.
const DefaultTimezone = "Europe/London"

// All leaderboard views.
const (
	DailyView       ViewKind = "daily"
	WeeklyView      ViewKind = "weekly"
	AllTimeView     ViewKind = "alltime"
	RawAverageView  ViewKind = "raw"
	MostActiveView  ViewKind = "active"
	WoodenSpoonView ViewKind = "spoon"
	AllViews        ViewKind = "all" // pseudo-view selecting every view
)

// All time series modes.
const (
	BayesianSeries SeriesMode = "bayesian" // default
	RawSeries      SeriesMode = "raw"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All snapshot file formats supported.
const (
	AutoFormat    SourceFormat = "auto" // default, from file extension
	JSONFormat    SourceFormat = "json"
	CSVFormat     SourceFormat = "csv"
	ParquetFormat SourceFormat = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// OrderedViews lists the concrete views in display order.
var OrderedViews = []ViewKind{DailyView, WeeklyView, AllTimeView, RawAverageView, MostActiveView, WoodenSpoonView}

// ValidViews lists all valid view selectors.
var ValidViews = map[ViewKind]struct{}{
	DailyView:       {},
	WeeklyView:      {},
	AllTimeView:     {},
	RawAverageView:  {},
	MostActiveView:  {},
	WoodenSpoonView: {},
	AllViews:        {},
}

// ValidSeriesModes lists all valid time series modes.
var ValidSeriesModes = map[SeriesMode]struct{}{
	BayesianSeries: {},
	RawSeries:      {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidSourceFormats lists all valid snapshot file formats.
var ValidSourceFormats = map[SourceFormat]struct{}{
	AutoFormat:    {},
	JSONFormat:    {},
	CSVFormat:     {},
	ParquetFormat: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ViewTitle returns the human-facing title of a view.
func ViewTitle(view ViewKind) string {
	switch view {
	case DailyView:
		return "Daily"
	case WeeklyView:
		return "Weekly"
	case AllTimeView:
		return "All-time (Bayesian)"
	case RawAverageView:
		return "Raw average"
	case MostActiveView:
		return "Most active"
	case WoodenSpoonView:
		return "Wooden spoon"
	default:
		return string(view)
	}
}

// AscendingView reports whether lower metrics rank first in view.
func AscendingView(view ViewKind) bool {
	switch view {
	case MostActiveView, WoodenSpoonView:
		return false
	default:
		return true
	}
}
