package bucket

import (
	"fmt"
	"strings"
	"time"
)

// Resolution is the calendar period a bucket covers.
type Resolution string

const (
	Month Resolution = "MONTH"
	Year  Resolution = "YEAR"
)

// ParseResolution accepts MONTH or YEAR in any case.
func ParseResolution(s string) (Resolution, error) {
	switch Resolution(strings.ToUpper(strings.TrimSpace(s))) {
	case Month:
		return Month, nil
	case Year:
		return Year, nil
	}
	return "", fmt.Errorf("invalid resolution %q (want MONTH or YEAR)", s)
}

func (r Resolution) String() string { return string(r) }

// Floor truncates t to the start of its period, in UTC.
func (r Resolution) Floor(t time.Time) time.Time {
	t = t.UTC()
	if r == Year {
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the start of the period after the one starting at t.
// t must already be floored, otherwise month arithmetic may normalize
// (Jan 31 + 1 month is Mar 3).
func (r Resolution) Next(t time.Time) time.Time {
	if r == Year {
		return t.AddDate(1, 0, 0)
	}
	return t.AddDate(0, 1, 0)
}

// Label formats the period containing t: "2006-01" or "2006".
func (r Resolution) Label(t time.Time) string {
	if r == Year {
		return t.UTC().Format("2006")
	}
	return t.UTC().Format("2006-01")
}
