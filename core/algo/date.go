package algo

import (
	"strings"
	"time"

	"github.com/huangsam/wordboard/schema"
)

// submittedLayouts are the instant formats accepted for submittedAt, tried in order.
var submittedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999", // no offset, treated as UTC
}

// ParseSubmitted parses a submittedAt instant. The bool is false when the value
// is absent or unparseable.
func ParseSubmitted(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range submittedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// EffectiveDate projects the record's submission instant into loc and returns its calendar date.
// The bool is false for records without a usable submittedAt; callers must drop those.
func EffectiveDate(record schema.ScoreRecord, loc *time.Location) (schema.Date, bool) {
	t, ok := ParseSubmitted(record.SubmittedAt)
	if !ok {
		return schema.Date{}, false
	}
	return DateIn(t, loc), true
}

// DateIn returns the civil date of t in loc (UTC when loc is nil).
func DateIn(t time.Time, loc *time.Location) schema.Date {
	if loc == nil {
		loc = time.UTC
	}
	return schema.DateOf(t.In(loc))
}

// RecentWeekdays walks backward from today inclusive, skipping Saturday and Sunday,
// until n weekday dates are collected. The result is ordered newest first.
func RecentWeekdays(today schema.Date, n int) []schema.Date {
	days := make([]schema.Date, 0, max(n, 0))
	for d := today; len(days) < n; d = d.AddDays(-1) {
		if d.IsWeekend() {
			continue
		}
		days = append(days, d)
	}
	return days
}
