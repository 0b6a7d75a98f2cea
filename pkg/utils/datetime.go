package utils

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidDate is returned when a client date or time matches none of the accepted layouts.
var ErrInvalidDate = errors.New("invalid date/time")

var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"2006-01-02",
}

var timeLayouts = []string{
	"15:04:05",
	"15:04",
}

// ParseLocalDateTime normalizes a client-supplied date ("dd/mm/yyyy" or "yyyy-mm-dd")
// and time ("HH:MM" or "HH:MM:SS") into an absolute time in loc.
// An empty date means today, an empty time means the current clock time.
// A date carrying a full RFC 3339 timestamp is accepted as-is.
func ParseLocalDateTime(date, clock string, loc *time.Location, now time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	now = now.In(loc)
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if date != "" && clock == "" {
		if ts, err := time.Parse(time.RFC3339, date); err == nil {
			return ts.In(loc), nil
		}
	}

	year, month, day := now.Date()
	if date != "" {
		d, err := parseFirst(dateLayouts, date, loc)
		if err != nil {
			return time.Time{}, err
		}
		year, month, day = d.Date()
	}

	hour, minute, second := now.Clock()
	if clock != "" {
		c, err := parseFirst(timeLayouts, clock, loc)
		if err != nil {
			return time.Time{}, err
		}
		hour, minute, second = c.Clock()
	}

	return time.Date(year, month, day, hour, minute, second, 0, loc), nil
}

func parseFirst(layouts []string, value string, loc *time.Location) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
