// Package timeplugin implements the TimePlugin: the current timestamp and the
// year, month and weekday of either today or a supplied date string.
package timeplugin

import (
	"strconv"
	"strings"
	"time"
)

const (
	// PluginName is the name the plugin is registered under
	PluginName = "TimePlugin"

	FunctionCurrentTime = "get_current_time"
	FunctionCurrentDate = "get_current_date"
	FunctionYear        = "get_year"
	FunctionMonth       = "get_month"
	FunctionDayOfWeek   = "get_day_of_week"

	// TimestampLayout is the format of CurrentTimestamp
	TimestampLayout = "2006-01-02 15:04:05"
)

// Clock answers date questions relative to its time source
type Clock struct {
	now func() time.Time
}

// NewClock returns a Clock reading the local system time
func NewClock() *Clock {
	return &Clock{now: time.Now}
}

// NewClockAt returns a Clock whose time source is now
func NewClockAt(now func() time.Time) *Clock {
	return &Clock{now: now}
}

// CurrentTimestamp returns the local time as "YYYY-MM-DD HH:MM:SS"
func (c *Clock) CurrentTimestamp() string {
	return c.now().Format(TimestampLayout)
}

// Year returns the four-digit year of dateStr, or of today when dateStr is empty
func (c *Clock) Year(dateStr string) (string, error) {
	t, err := c.resolve(dateStr)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(t.Year()), nil
}

// MonthName returns the English month name of dateStr, or of today
func (c *Clock) MonthName(dateStr string) (string, error) {
	t, err := c.resolve(dateStr)
	if err != nil {
		return "", err
	}
	return t.Month().String(), nil
}

// DayOfWeekName returns the English weekday name of dateStr, or of today
func (c *Clock) DayOfWeekName(dateStr string) (string, error) {
	t, err := c.resolve(dateStr)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}

func (c *Clock) resolve(dateStr string) (time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return c.now(), nil
	}
	return ParseDate(dateStr)
}
