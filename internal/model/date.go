package model

import (
    "errors"
    "time"
)

// DateLayout is the wire format for calendar dates.  Dates have day
// granularity throughout the service: no time-of-day, no timezone.
// Internally they are represented as UTC midnight.
const DateLayout = "2006-01-02"

// ErrInvalidDate is returned when a raw string is not a YYYY-MM-DD date.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate parses a YYYY-MM-DD string into a day-granular date.
func ParseDate(raw string) (time.Time, error) {
    t, err := time.ParseInLocation(DateLayout, raw, time.UTC)
    if err != nil {
        return time.Time{}, ErrInvalidDate
    }
    return t, nil
}

// FormatDate renders a date in the YYYY-MM-DD wire format.
func FormatDate(t time.Time) string {
    return t.Format(DateLayout)
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) time.Time {
    y, m, d := t.UTC().Date()
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// IsWeekday reports whether d falls on Monday through Friday.  Slots do
// not exist on weekends.
func IsWeekday(d time.Time) bool {
    wd := d.Weekday()
    return wd != time.Saturday && wd != time.Sunday
}

// PreviousMonday returns the Monday of the week containing d.  When d
// itself is a Monday it is returned unchanged; a Sunday maps to the
// Monday six days earlier (ISO weekday numbering, Monday = 1).
func PreviousMonday(d time.Time) time.Time {
    iso := int(d.Weekday())
    if iso == 0 { // Sunday
        iso = 7
    }
    return DateOf(d).AddDate(0, 0, -(iso - 1))
}

// WeekWindow returns the Monday and Friday of the week containing d,
// both inclusive.  This is the window over which the one-reservation-
// per-user-per-week rule is enforced.
func WeekWindow(d time.Time) (monday, friday time.Time) {
    monday = PreviousMonday(d)
    friday = monday.AddDate(0, 0, 4)
    return monday, friday
}
