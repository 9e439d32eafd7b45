package contract

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata" // embedded zone database so the home timezone resolves everywhere

	"github.com/huangsam/wordboard/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 10
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
	DefaultCacheTTL    = 5 * time.Minute
	DefaultSourceTable = "scores"
)

// DBSource is the --source value that selects the SQL snapshot source.
const DBSource = "db"

// StdinSource is the --source value that reads a JSON snapshot from standard input.
const StdinSource = "-"

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// identifierRe matches SQL identifiers that are safe to interpolate as table names.
var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// RatingRawInput holds rating formula overrides from the YAML config file.
// Pointers distinguish "not provided" from zero.
type RatingRawInput struct {
	Alpha         *float64 `mapstructure:"alpha"`
	RecencyDays   *float64 `mapstructure:"recency_days"`
	AttemptsBonus *float64 `mapstructure:"attempts_bonus"`
	NeutralPrior  *float64 `mapstructure:"neutral_prior"`
}

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a wordboard run.
// This struct is the "final, validated" config.
type Config struct {
	Source          string
	SourceFormat    schema.SourceFormat
	SourceBackend   schema.DatabaseBackend
	SourceDBConnect string // Please use env var as this is plaintext
	SourceTable     string

	Timezone string
	Location *time.Location
	AsOf     time.Time
	AsOfSet  bool // AsOf came from the user rather than the clock

	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	Width       int // Terminal width override (0 = auto-detect)

	View        schema.ViewKind
	Mode        schema.SeriesMode
	ConnectGaps bool
	Players     []string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration
	Refresh        bool

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Params schema.RatingParams

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Source           string `mapstructure:"source"`
	SourceFormat     string `mapstructure:"source-format"`
	SourceBackend    string `mapstructure:"source-backend"`
	SourceDBConnect  string `mapstructure:"source-db-connect"`
	SourceTable      string `mapstructure:"source-table"`
	Timezone         string `mapstructure:"timezone"`
	AsOf             string `mapstructure:"as-of"`
	Limit            int    `mapstructure:"limit"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Detail           bool   `mapstructure:"detail"`
	Width            int    `mapstructure:"width"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	CacheTTL         string `mapstructure:"cache-ttl"`
	Refresh          bool   `mapstructure:"refresh"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from boardsCmd.Flags() ---
	View string `mapstructure:"view"`

	// --- Fields from timeseriesCmd.Flags() ---
	Mode        string `mapstructure:"mode"`
	ConnectGaps bool   `mapstructure:"connect-gaps"`
	Players     string `mapstructure:"players"`

	// --- Rating overrides from config file ---
	Rating RatingRawInput `mapstructure:"rating"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Players != nil {
		clone.Players = make([]string, len(c.Players))
		copy(clone.Players, c.Players)
	}
	return &clone
}

// CloneWithAsOf creates a copy of the Config with a different as-of instant.
func (c *Config) CloneWithAsOf(asOf time.Time) *Config {
	clone := c.Clone()
	clone.AsOf = asOf
	return clone
}

// AsOfDate returns the as-of instant projected into the configured timezone.
func (c *Config) AsOfDate() schema.Date {
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return schema.DateOf(c.AsOf.In(loc))
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processSource(cfg, input); err != nil {
		return err
	}
	if err := processTimeSettings(cfg, input); err != nil {
		return err
	}
	if err := processTimeseriesMode(cfg, input); err != nil {
		return err
	}
	if err := processRatingParams(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
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

// ValidateTableName reports whether name can be used as an unquoted SQL table name.
func ValidateTableName(name string) error {
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("invalid table name %q: must match %s", name, identifierRe.String())
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	// Cache and history must not share one SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the presentation fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.Refresh = input.Refresh

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	cfg.View = schema.ViewKind(strings.ToLower(input.View))
	if cfg.View == "" {
		cfg.View = schema.AllViews
	}
	if _, ok := schema.ValidViews[cfg.View]; !ok {
		return fmt.Errorf("invalid view '%s'. must be daily, weekly, alltime, raw, active, spoon, all", input.View)
	}
	return nil
}

// processSource validates where the snapshot comes from.
func processSource(cfg *Config, input *ConfigRawInput) error {
	cfg.Source = strings.TrimSpace(input.Source)

	cfg.SourceFormat = schema.SourceFormat(strings.ToLower(input.SourceFormat))
	if cfg.SourceFormat == "" {
		cfg.SourceFormat = schema.AutoFormat
	}
	if _, ok := schema.ValidSourceFormats[cfg.SourceFormat]; !ok {
		return fmt.Errorf("invalid source format '%s'. must be auto, json, csv, parquet", input.SourceFormat)
	}
	if cfg.Source == StdinSource && cfg.SourceFormat != schema.AutoFormat && cfg.SourceFormat != schema.JSONFormat {
		return fmt.Errorf("stdin source only supports json (received %s)", cfg.SourceFormat)
	}

	if cfg.Source != DBSource {
		return nil
	}

	cfg.SourceBackend = schema.DatabaseBackend(strings.ToLower(input.SourceBackend))
	if cfg.SourceBackend == "" {
		cfg.SourceBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.SourceBackend]; !ok || cfg.SourceBackend == schema.NoneBackend {
		return fmt.Errorf("invalid source backend '%s'. must be sqlite, mysql, postgresql", input.SourceBackend)
	}
	cfg.SourceDBConnect = input.SourceDBConnect
	if cfg.SourceBackend == schema.SQLiteBackend && cfg.SourceDBConnect == "" {
		return fmt.Errorf("source-db-connect is required for the sqlite source backend")
	}
	if err := ValidateDatabaseConnectionString(cfg.SourceBackend, cfg.SourceDBConnect); err != nil {
		return fmt.Errorf("source-db-connect: %w", err)
	}

	cfg.SourceTable = input.SourceTable
	if cfg.SourceTable == "" {
		cfg.SourceTable = DefaultSourceTable
	}
	return ValidateTableName(cfg.SourceTable)
}

// processTimeSettings resolves the timezone, as-of instant, and cache TTL.
func processTimeSettings(cfg *Config, input *ConfigRawInput) error {
	cfg.Timezone = strings.TrimSpace(input.Timezone)
	if cfg.Timezone == "" {
		cfg.Timezone = schema.DefaultTimezone
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	asOf, err := ParseAsOf(input.AsOf, time.Now(), loc)
	if err != nil {
		return err
	}
	cfg.AsOf = asOf
	cfg.AsOfSet = strings.TrimSpace(input.AsOf) != ""

	cfg.CacheTTL = DefaultCacheTTL
	if strings.TrimSpace(input.CacheTTL) != "" {
		ttl, err := ParseLookbackDuration(input.CacheTTL)
		if err != nil {
			return fmt.Errorf("invalid cache-ttl: %w", err)
		}
		cfg.CacheTTL = ttl
	}
	return nil
}

// processTimeseriesMode handles the time series parameters.
func processTimeseriesMode(cfg *Config, input *ConfigRawInput) error {
	cfg.Mode = schema.SeriesMode(strings.ToLower(input.Mode))
	if cfg.Mode == "" {
		cfg.Mode = schema.BayesianSeries
	}
	if _, ok := schema.ValidSeriesModes[cfg.Mode]; !ok {
		return fmt.Errorf("invalid mode '%s'. must be bayesian, raw", input.Mode)
	}
	cfg.ConnectGaps = input.ConnectGaps
	cfg.Players = schema.SplitPlayers(input.Players)
	return nil
}

// ProcessRatingRawInput applies overrides on top of the default rating parameters and validates them.
func ProcessRatingRawInput(raw RatingRawInput) (schema.RatingParams, error) {
	params := schema.DefaultRatingParams()
	if raw.Alpha != nil {
		params.Alpha = *raw.Alpha
	}
	if raw.RecencyDays != nil {
		params.RecencyScaleDays = *raw.RecencyDays
	}
	if raw.AttemptsBonus != nil {
		params.AttemptsBonusScale = *raw.AttemptsBonus
	}
	if raw.NeutralPrior != nil {
		params.NeutralPrior = *raw.NeutralPrior
	}

	if params.Alpha < 0 {
		return params, fmt.Errorf("rating alpha cannot be negative (received %.3f)", params.Alpha)
	}
	if params.RecencyScaleDays <= 0 {
		return params, fmt.Errorf("rating recency_days must be positive (received %.3f)", params.RecencyScaleDays)
	}
	if params.AttemptsBonusScale < 0 {
		return params, fmt.Errorf("rating attempts_bonus cannot be negative (received %.3f)", params.AttemptsBonusScale)
	}
	if params.NeutralPrior < schema.MinGuesses || params.NeutralPrior > schema.DNFScore {
		return params, fmt.Errorf("rating neutral_prior must be between %d and %d (received %.3f)", schema.MinGuesses, schema.DNFScore, params.NeutralPrior)
	}
	return params, nil
}

// processRatingParams converts the raw rating block into cfg.Params.
func processRatingParams(cfg *Config, input *ConfigRawInput) error {
	params, err := ProcessRatingRawInput(input.Rating)
	if err != nil {
		return err
	}
	cfg.Params = params
	return nil
}

// ProcessProfilingConfig enables profiling when a file prefix is given.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	profilePrefix = strings.TrimSpace(profilePrefix)
	if profilePrefix == "" {
		return nil
	}
	if strings.ContainsAny(profilePrefix, "\x00") {
		return fmt.Errorf("invalid profile prefix %q", profilePrefix)
	}
	profile.Enabled = true
	profile.Prefix = profilePrefix
	return nil
}
