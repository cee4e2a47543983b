package db

import "time"

// TimeFormat renders a time as RFC3339 in UTC, the canonical column format.
func TimeFormat(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TimeParse parses an RFC3339 string as stored in the database.
// The zero string parses to the zero time without error.
func TimeParse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
