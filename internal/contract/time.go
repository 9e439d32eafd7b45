package contract

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// relativeTimeRe captures "N [units] ago", e.g. "2 days ago" or "1 week ago".
var relativeTimeRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// ParseRelativeTime converts strings like "2 weeks ago" into a time.Time in the past.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	matches := relativeTimeRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	switch matches[2] {
	case "year":
		return now.AddDate(-value, 0, 0), nil
	case "month":
		return now.AddDate(0, -value, 0), nil
	case "week":
		return now.AddDate(0, 0, -7*value), nil
	case "day":
		return now.AddDate(0, 0, -value), nil
	case "hour":
		return now.Add(time.Duration(-value) * time.Hour), nil
	case "minute":
		return now.Add(time.Duration(-value) * time.Minute), nil
	default:
		return time.Time{}, fmt.Errorf("unsupported time unit: %s", matches[2])
	}
}

// lookbackDurationRe captures "N [units]".
var lookbackDurationRe = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute|second)s?$`)

// ParseLookbackDuration converts strings like "5 minutes" or "300s" into a time.Duration.
// It first tries time.ParseDuration, then falls back to the human-readable form.
func ParseLookbackDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if duration, err := time.ParseDuration(s); err == nil {
		if duration <= 0 {
			return 0, errors.New("duration must be positive")
		}
		return duration, nil
	}

	matches := lookbackDurationRe.FindStringSubmatch(strings.ToLower(s))
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid duration format: %s", s)
	}

	value, _ := strconv.Atoi(matches[1])
	var unit time.Duration
	switch matches[2] {
	case "year":
		unit = 365 * 24 * time.Hour // approximation
	case "month":
		unit = 30 * 24 * time.Hour // approximation
	case "week":
		unit = 7 * 24 * time.Hour
	case "day":
		unit = 24 * time.Hour
	case "hour":
		unit = time.Hour
	case "minute":
		unit = time.Minute
	case "second":
		unit = time.Second
	}

	total := time.Duration(value) * unit
	if total == 0 {
		return 0, errors.New("duration must be positive")
	}
	return total, nil
}

// ParseAsOf resolves an as-of value into an instant. It accepts RFC 3339 instants,
// YYYY-MM-DD dates (noon in loc, so the civil date is unambiguous), and "N units ago".
// An empty value means now.
func ParseAsOf(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t.Add(12 * time.Hour), nil
	}
	if t, err := ParseRelativeTime(s, now); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid as-of %q: expected RFC 3339, YYYY-MM-DD or 'N [units] ago'", s)
}
