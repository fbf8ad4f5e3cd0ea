package hours

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var (
	budapestLoc *time.Location
	guiLocation *time.Location = time.UTC
)

func init() {
	var err error
	budapestLoc, err = time.LoadLocation("Europe/Budapest")
	if err != nil {
		panic(fmt.Sprintf("failed to load Budapest location: %v", err))
	}
}

func SetGuiTimezone(timezone string) error {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return fmt.Errorf("failed to load timezone %s: %v", timezone, err)
	}
	guiLocation = loc
	return nil
}

// DateHour identifies one market hour: a delivery date plus the 1-based
// hour label used by the day-ahead market (H1 covers 00:00-01:00).
// Hour is normally in 1..24 but can reach 25 on long DST days.
type DateHour struct {
	Date string
	Hour uint8
}

func (dh DateHour) String() string {
	return fmt.Sprintf("%s %s", dh.Date, dh.Label())
}

// Label renders the market hour label, e.g. "H7".
func (dh DateHour) Label() string {
	return FormatLabel(dh.Hour)
}

func (dh DateHour) Compare(other DateHour) int {
	if dh == other {
		return 0
	}
	if dh.Date < other.Date {
		return -1
	}
	if dh.Date > other.Date {
		return 1
	}
	if dh.Hour < other.Hour {
		return -1
	}
	return 1
}

func (dh DateHour) IsZero() bool {
	return dh.Date == "" && dh.Hour == 0
}

// FromTime maps a point in time to the market hour containing it,
// so 13:45 falls in H14.
func FromTime(t time.Time) DateHour {
	if t.IsZero() {
		return DateHour{}
	}
	t = t.In(budapestLoc)
	return DateHour{
		Date: t.Format(dateLayout),
		Hour: uint8(t.Hour() + 1),
	}
}

func FromNow() DateHour {
	return FromTime(time.Now())
}

// Today is the current delivery date in market time.
func Today() string {
	return time.Now().In(budapestLoc).Format(dateLayout)
}

// AddDays shifts a date string by n calendar days, returning the
// input unchanged when it doesn't parse.
func AddDays(date string, n int) string {
	t, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(dateLayout)
}

// ValidDate reports whether str is a well-formed YYYY-MM-DD date.
func ValidDate(str string) bool {
	_, err := time.ParseInLocation(dateLayout, str, time.UTC)
	return err == nil
}

// DaysInMonth returns the number of calendar days in the month,
// leap years included.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDate formats day d of the given month as YYYY-MM-DD.
func MonthDate(year int, month time.Month, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), d)
}

func LocationBudapest(t time.Time) time.Time {
	return t.In(budapestLoc)
}

func FormatTimeInGuiTimezone(t time.Time) string {
	return t.In(guiLocation).Format("2006-01-02 15:04:05")
}
