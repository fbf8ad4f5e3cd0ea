package hours

import (
	"testing"
	"time"
)

func TestDateHourString(t *testing.T) {
	dh := DateHour{Date: "2025-06-01", Hour: 5}
	expected := "2025-06-01 H5"
	if s := dh.String(); s != expected {
		t.Errorf("String() expected %q, got %q", expected, s)
	}
}

func TestDateHourCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     DateHour
		expected int
	}{
		{
			name:     "equal",
			a:        DateHour{Date: "2025-06-01", Hour: 5},
			b:        DateHour{Date: "2025-06-01", Hour: 5},
			expected: 0,
		},
		{
			name:     "earlier date",
			a:        DateHour{Date: "2025-05-31", Hour: 24},
			b:        DateHour{Date: "2025-06-01", Hour: 1},
			expected: -1,
		},
		{
			name:     "same date earlier hour",
			a:        DateHour{Date: "2025-06-01", Hour: 2},
			b:        DateHour{Date: "2025-06-01", Hour: 10},
			expected: -1,
		},
		{
			name:     "later hour",
			a:        DateHour{Date: "2025-06-01", Hour: 10},
			b:        DateHour{Date: "2025-06-01", Hour: 2},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.expected {
				t.Errorf("Compare() expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestDateHourIsZero(t *testing.T) {
	var dh DateHour
	if !dh.IsZero() {
		t.Errorf("expected a zero value DateHour to be zero")
	}
	dh = DateHour{Date: "2025-06-01", Hour: 0}
	if dh.IsZero() {
		t.Errorf("expected a DateHour with a date not to be zero")
	}
}

func TestFromTime(t *testing.T) {
	// 13:45 UTC in summer is 15:45 in Budapest, which falls in H16.
	tm := time.Date(2025, time.June, 1, 13, 45, 0, 0, time.UTC)
	dh := FromTime(tm)
	expected := DateHour{Date: "2025-06-01", Hour: 16}
	if dh != expected {
		t.Errorf("FromTime() expected %+v, got %+v", expected, dh)
	}

	var zero time.Time
	if !FromTime(zero).IsZero() {
		t.Errorf("FromTime() with zero time expected a zero DateHour")
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		days     int
		expected string
	}{
		{"forward", "2025-06-01", 1, "2025-06-02"},
		{"backward across month", "2025-06-01", -1, "2025-05-31"},
		{"leap february", "2024-02-28", 1, "2024-02-29"},
		{"malformed input unchanged", "junk", 3, "junk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AddDays(tt.date, tt.days); got != tt.expected {
				t.Errorf("AddDays(%q, %d) expected %q, got %q", tt.date, tt.days, tt.expected, got)
			}
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year     int
		month    time.Month
		expected int
	}{
		{2025, time.June, 30},
		{2025, time.July, 31},
		{2025, time.February, 28},
		{2024, time.February, 29},
	}

	for _, tt := range tests {
		if got := DaysInMonth(tt.year, tt.month); got != tt.expected {
			t.Errorf("DaysInMonth(%d, %v) expected %d, got %d", tt.year, tt.month, tt.expected, got)
		}
	}
}

func TestMonthDate(t *testing.T) {
	if got := MonthDate(2025, time.June, 5); got != "2025-06-05" {
		t.Errorf(`MonthDate() expected "2025-06-05", got %q`, got)
	}
}

func TestValidDate(t *testing.T) {
	if !ValidDate("2025-06-01") {
		t.Errorf("expected a well-formed date to be valid")
	}
	if ValidDate("2025-13-01") || ValidDate("not-a-date") {
		t.Errorf("expected malformed dates to be invalid")
	}
}
