package timeplugin

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// dateLayouts are tried in order, each as an exact match, before falling
// back to dateparse
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"1/2/2006",
	"2/1/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006/01/02",
	"02-Jan-2006",
}

// AcceptedFormats lists the explicit formats in the notation shown to users
var AcceptedFormats = []string{
	"yyyy-MM-dd",
	"MM/dd/yyyy",
	"dd/MM/yyyy",
	"M/d/yyyy",
	"d/M/yyyy",
	"MMM d, yyyy",
	"MMMM d, yyyy",
	"yyyy/MM/dd",
	"dd-MMM-yyyy",
}

// ParseDate parses s in the local time zone. The explicit layouts win over
// the general parser, so "03/04/2024" is March 4th.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return time.Time{}, &ErrDateParse{Input: s, Err: err}
	}
	return t, nil
}
