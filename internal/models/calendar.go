package models

import (
	"fmt"
	"time"
)

// CalendarDate is a calendar day with no time component. Arithmetic
// returns new values; nothing mutates in place.
type CalendarDate struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Day   int        `json:"day"`
}

const calendarKeyLayout = "2006-01-02"

func NewCalendarDate(t time.Time) CalendarDate {
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func ParseCalendarDate(key string) (CalendarDate, error) {
	t, err := time.Parse(calendarKeyLayout, key)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return NewCalendarDate(t), nil
}

// Time returns midnight UTC of the calendar day. Normalisation through
// time.Date also makes AddDays safe across month and year boundaries.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Key is the ISO date string used for map keys (skip matrix, per-date
// menu assignments).
func (d CalendarDate) Key() string {
	return d.Time().Format(calendarKeyLayout)
}

func (d CalendarDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

func (d CalendarDate) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d CalendarDate) AddDays(n int) CalendarDate {
	return NewCalendarDate(d.Time().AddDate(0, 0, n))
}

func (d CalendarDate) Equal(o CalendarDate) bool {
	return d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

func (d CalendarDate) Before(o CalendarDate) bool {
	return d.Time().Before(o.Time())
}

func (d CalendarDate) After(o CalendarDate) bool {
	return d.Time().After(o.Time())
}

func (d CalendarDate) String() string {
	return d.Key()
}
