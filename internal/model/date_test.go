package model

import (
    "errors"
    "testing"
    "time"
)

func date(y int, m time.Month, d int) time.Time {
    return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
    got, err := ParseDate("2026-03-04")
    if err != nil {
        t.Fatalf("ParseDate = %v, want nil", err)
    }
    if !got.Equal(date(2026, time.March, 4)) {
        t.Errorf("ParseDate = %v, want 2026-03-04 UTC midnight", got)
    }
    for _, raw := range []string{"", "2026/03/04", "04-03-2026", "2026-13-01", "2026-03-04T10:00:00Z"} {
        if _, err := ParseDate(raw); !errors.Is(err, ErrInvalidDate) {
            t.Errorf("ParseDate(%q) = %v, want ErrInvalidDate", raw, err)
        }
    }
}

func TestFormatDate(t *testing.T) {
    if got := FormatDate(date(2026, time.March, 4)); got != "2026-03-04" {
        t.Errorf("FormatDate = %q, want 2026-03-04", got)
    }
}

func TestDateOf(t *testing.T) {
    in := time.Date(2026, time.March, 4, 23, 59, 59, 0, time.UTC)
    if got := DateOf(in); !got.Equal(date(2026, time.March, 4)) {
        t.Errorf("DateOf = %v, want 2026-03-04 UTC midnight", got)
    }
}

func TestIsWeekday(t *testing.T) {
    // 2026-03-02 is a Monday.
    for d := 2; d <= 6; d++ {
        if !IsWeekday(date(2026, time.March, d)) {
            t.Errorf("IsWeekday(2026-03-%02d) = false, want true", d)
        }
    }
    if IsWeekday(date(2026, time.March, 7)) { // Saturday
        t.Error("IsWeekday(Saturday) = true, want false")
    }
    if IsWeekday(date(2026, time.March, 8)) { // Sunday
        t.Error("IsWeekday(Sunday) = true, want false")
    }
}

func TestPreviousMonday(t *testing.T) {
    monday := date(2026, time.March, 2)
    cases := []struct {
        in   time.Time
        want time.Time
    }{
        {monday, monday},                        // Monday maps to itself
        {date(2026, time.March, 4), monday},     // Wednesday
        {date(2026, time.March, 6), monday},     // Friday
        {date(2026, time.March, 7), monday},     // Saturday
        {date(2026, time.March, 8), monday},     // Sunday still belongs to this week
        {date(2026, time.March, 9), date(2026, time.March, 9)}, // next Monday
    }
    for _, tc := range cases {
        if got := PreviousMonday(tc.in); !got.Equal(tc.want) {
            t.Errorf("PreviousMonday(%s) = %s, want %s",
                FormatDate(tc.in), FormatDate(got), FormatDate(tc.want))
        }
    }
}

func TestWeekWindow(t *testing.T) {
    monday, friday := WeekWindow(date(2026, time.March, 4))
    if !monday.Equal(date(2026, time.March, 2)) {
        t.Errorf("monday = %s, want 2026-03-02", FormatDate(monday))
    }
    if !friday.Equal(date(2026, time.March, 6)) {
        t.Errorf("friday = %s, want 2026-03-06", FormatDate(friday))
    }
}
