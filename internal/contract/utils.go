package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/wordboard/schema"
)

// Performance label constants.
const (
	EliteValue      = "Elite"      // Elite value
	StrongValue     = "Strong"     // Strong value
	SteadyValue     = "Steady"     // Steady value
	StrugglingValue = "Struggling" // Struggling value
)

// Color variables for console output.
var (
	EliteColor      = color.New(color.FgGreen, color.Bold) // EliteColor represents a standout result.
	StrongColor     = color.New(color.FgCyan, color.Bold)  // StrongColor represents a solid result.
	SteadyColor     = color.New(color.FgYellow)            // SteadyColor represents an average result, not bold.
	StrugglingColor = color.New(color.FgRed)               // StrugglingColor represents a poor result.
)

// GetPlainLabel returns a plain text label for a guess-scale metric.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(metric float64) string {
	return schema.GetPlainLabel(metric)
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(metric float64) string {
	text := GetPlainLabel(metric)

	switch text {
	case EliteValue:
		return EliteColor.Sprint(text)
	case StrongValue:
		return StrongColor.Sprint(text)
	case SteadyValue:
		return SteadyColor.Sprint(text)
	default: // "Struggling"
		return StrugglingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It returns os.Stdout for an empty path.
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

// LogInfo logs an informational line to stderr.
func LogInfo(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for snapshot caching.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".wordboard_cache.db"
	}
	return filepath.Join(homeDir, ".wordboard_cache.db")
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".wordboard_history.db"
	}
	return filepath.Join(homeDir, ".wordboard_history.db")
}

// TruncateName truncates a player name to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and at least one character.
func TruncateName(name string, maxWidth int) string {
	runes := []rune(name)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return name
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
