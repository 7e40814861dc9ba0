// Package dateutils normalizes the European date formats found in fuel-card
// exports into canonical naive timestamps.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Layout constants for the canonical timestamp forms.
const (
	LayoutISO            = "2006-01-02"
	LayoutTimestamp      = "2006-01-02 15:04:05"
	LayoutTimestampShort = "2006-01-02 15:04"
)

var europeanDate = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)

// NormalizeDate reorders DD.MM.YYYY dates into YYYY-MM-DD. Anything that does
// not match the dot-separated three-group pattern passes through unchanged;
// malformed dates are tolerated here, not rejected.
func NormalizeDate(date string) string {
	date = strings.TrimSpace(date)
	m := europeanDate.FindStringSubmatch(date)
	if m == nil {
		return date
	}
	return fmt.Sprintf("%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// CombineDateTime joins a normalized date and a time with a single space,
// producing the canonical naive timestamp string.
func CombineDateTime(date, clock string) string {
	return strings.TrimSpace(NormalizeDate(date) + " " + strings.TrimSpace(clock))
}

// ParseTimestamp parses a canonical naive timestamp. Timestamps that fit none
// of the known layouts yield a zero time rather than an error, matching the
// tolerant contract of NormalizeDate.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{LayoutTimestamp, LayoutTimestampShort, LayoutISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
