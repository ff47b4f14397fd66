// Package timestamp formats the XML schema dateTime values used by the
// X-DC-modified manifest attribute.
package timestamp

import (
	"fmt"
	"strings"
	"time"
)

// XMLUTCLayout is the dateTime layout written by FormatAsXMLUTC.
const XMLUTCLayout = "2006-01-02T15:04:05.000Z"

// FormatAsXMLUTC renders t in UTC with millisecond precision, e.g.
// "2011-11-11T11:11:11.111Z".
func FormatAsXMLUTC(t time.Time) string {
	return t.UTC().Format(XMLUTCLayout)
}

// ParseXMLUTC parses a value produced by FormatAsXMLUTC. RFC 3339 values with
// an explicit offset are accepted too. The result is in UTC and truncated to
// milliseconds.
func ParseXMLUTC(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(XMLUTCLayout, s)
	if err != nil {
		var rfcErr error
		t, rfcErr = time.Parse(time.RFC3339Nano, s)
		if rfcErr != nil {
			return time.Time{}, fmt.Errorf("failed to parse xml dateTime %q: %w", s, err)
		}
	}
	return t.UTC().Truncate(time.Millisecond), nil
}
