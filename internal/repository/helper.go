package repository

import (
	"fmt"
	"time"
)

// dateLayout is the canonical on-disk form of calendar dates.
const dateLayout = "2006-01-02"

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse(dateLayout, str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// ParseTimestamp parses a stored created_at value, accepting the SQLite
// CURRENT_TIMESTAMP form alongside RFC3339.
func ParseTimestamp(str string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", dateLayout} {
		if ts, err := time.Parse(layout, str); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp: %q", str)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
