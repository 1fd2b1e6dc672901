package domain

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are the accepted forms of an entry date, most precise first
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate reads an optional entry date
// An empty string yields the zero time, which callers treat as "not provided"
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised date %q", ErrInvalidEntry, s)
}
