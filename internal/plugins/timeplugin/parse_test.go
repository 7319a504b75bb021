package timeplugin

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestParseDateFormats(t *testing.T) {
	tests := []struct {
		input string
		year  int
		month time.Month
		day   int
	}{
		{"2023-05-15", 2023, time.May, 15},
		{"05/15/2023", 2023, time.May, 15},
		{"03/04/2024", 2024, time.March, 4},
		{"15/05/2023", 2023, time.May, 15},
		{"5/15/2023", 2023, time.May, 15},
		{"15/5/2023", 2023, time.May, 15},
		{"May 15, 2023", 2023, time.May, 15},
		{"Sep 5, 2023", 2023, time.September, 5},
		{"September 5, 2023", 2023, time.September, 5},
		{"2023/05/15", 2023, time.May, 15},
		{"15-May-2023", 2023, time.May, 15},
		{"  2023-05-15  ", 2023, time.May, 15},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.input, err)
			}
			if got.Year() != tt.year || got.Month() != tt.month || got.Day() != tt.day {
				t.Errorf("ParseDate(%q) = %s, want %d-%02d-%02d", tt.input, got.Format("2006-01-02"), tt.year, tt.month, tt.day)
			}
			if got.Location() != time.Local {
				t.Errorf("ParseDate(%q) location = %s, want Local", tt.input, got.Location())
			}
		})
	}
}

func TestParseDateFallback(t *testing.T) {
	for _, input := range []string{"2023-05-15 09:30:00", "2023-05-15T09:30:00Z", "20230515"} {
		got, err := ParseDate(input)
		if err != nil {
			t.Errorf("ParseDate(%q) failed: %v", input, err)
			continue
		}
		if got.Year() != 2023 || got.Month() != time.May || got.Day() != 15 {
			t.Errorf("ParseDate(%q) = %s", input, got)
		}
	}
}

func TestParseDateInvalid(t *testing.T) {
	_, err := ParseDate("not-a-date")

	var parseErr *ErrDateParse
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ErrDateParse, got %v", err)
	}
	if parseErr.Input != "not-a-date" {
		t.Errorf("Input = %q", parseErr.Input)
	}
	msg := err.Error()
	if !strings.Contains(msg, "not-a-date") || !strings.Contains(msg, "yyyy-MM-dd") {
		t.Errorf("message should name the input and the formats: %s", msg)
	}
}

func TestLayoutsMatchAcceptedFormats(t *testing.T) {
	if len(dateLayouts) != len(AcceptedFormats) {
		t.Fatalf("%d layouts but %d documented formats", len(dateLayouts), len(AcceptedFormats))
	}
}
