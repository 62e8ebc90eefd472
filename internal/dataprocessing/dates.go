package dataprocessing

import (
	"time"

	"rosterctl/internal/errors"
)

// iso8601 matches the prefix of timestamps like "2014-10-18T23:47:06.722897";
// sub-second precision and zone suffixes are ignored.
const iso8601 = "2006-01-02T15:04:05"

// userDateLayouts are the additional formats accepted from user input.
var userDateLayouts = []string{
	"02.01.2006,15:04",
	"02-01-2006",
	"2006-01-02",
}

// ParseISO8601 parses an ISO-8601 timestamp, truncating anything beyond
// second precision.
func ParseISO8601(value string) (time.Time, error) {
	s := value
	if len(s) > len(iso8601) {
		s = s[:len(iso8601)]
	}
	t, err := time.Parse(iso8601, s)
	if err != nil {
		return time.Time{}, errors.ParseError("ISO-8601 timestamp", err)
	}
	return t, nil
}

// ParseDate parses a user-supplied date string, trying ISO-8601 first and
// then the common manual formats. The first matching format wins.
func ParseDate(value string) (time.Time, error) {
	if t, err := ParseISO8601(value); err == nil {
		return t, nil
	}
	for _, layout := range userDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.ParseErrorf(
		"cannot interpret %q as a date; stick to ISO-8601 (eg. 2014-10-18T23:47:06)", value)
}
