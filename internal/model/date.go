package model

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseDate parses a YYYY-MM-DD string as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func ValidStartTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// Today truncates now to its calendar date in now's location and returns it
// as midnight UTC so it compares cleanly with ParseDate results.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TodayString(now time.Time) string {
	return FormatDate(Today(now))
}

func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// AddDays shifts a YYYY-MM-DD date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

type Range struct {
	Start string
	End   string
}

// Contains uses string comparison, which matches chronological order for
// YYYY-MM-DD dates.
func (r Range) Contains(date string) bool {
	return r.Start <= date && date <= r.End
}

// WeekRange returns the Monday..Sunday week containing date.
func WeekRange(date string) (Range, error) {
	t, err := ParseDate(date)
	if err != nil {
		return Range{}, err
	}
	offset := (int(t.Weekday()) + 6) % 7
	start := t.AddDate(0, 0, -offset)
	return Range{
		Start: FormatDate(start),
		End:   FormatDate(start.AddDate(0, 0, 6)),
	}, nil
}

// WeekDays lists the seven dates of the week containing date, Monday first.
func WeekDays(date string) ([]string, error) {
	r, err := WeekRange(date)
	if err != nil {
		return nil, err
	}
	start, _ := ParseDate(r.Start)
	days := make([]string, 7)
	for i := range days {
		days[i] = FormatDate(start.AddDate(0, 0, i))
	}
	return days, nil
}
