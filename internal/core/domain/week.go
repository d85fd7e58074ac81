package domain

import (
	"fmt"
	"time"
)

// weekKeyLayout is the calendar-date format of a week bucket key.
const weekKeyLayout = "2006-01-02"

// WeekKey maps an instant to its pay-week bucket key: the calendar date of the
// week's Sunday, formatted YYYY-MM-DD. Every place the engine groups, filters,
// or correlates by week must use this key, so it is deliberately the only week
// computation that exists outside of display labels.
//
// WeekKey is idempotent over its own output: feeding the key back in as a date
// yields the same key.
func WeekKey(t time.Time) string {
	t = t.UTC()
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return sunday.Format(weekKeyLayout)
}

// WeekKeyDate parses a week bucket key back into its Sunday date (UTC midnight).
func WeekKeyDate(key string) (time.Time, error) {
	d, err := time.Parse(weekKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week key %q: %w", key, err)
	}
	return d, nil
}

// IsWeekKey reports whether s is a well-formed week bucket key.
func IsWeekKey(s string) bool {
	_, err := WeekKeyDate(s)
	return err == nil
}

// ISOWeekLabel renders a human-readable ISO-8601 week label for an instant.
//
// Display only. The ISO week number disagrees with the Sunday-anchored bucket
// around year boundaries and on Sundays, so it must never be used for
// grouping, filtering, or review-request correlation.
func ISOWeekLabel(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("Week %02d, %d", week, year)
}
