// Package epiweek implements CDC/MMWR epidemiological week arithmetic.
// Epiweeks start on Sunday; week 1 of a year is the Sunday-start week whose
// fourth day (Wednesday) falls in that year.
package epiweek

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// Time granularities used by the upstream API.
const (
	TimeTypeDay  = "day"
	TimeTypeWeek = "week"
)

// ErrDateParse is wrapped by every date-string parsing failure in this package.
var ErrDateParse = errors.New("malformed date")

// Epiweek identifies one epidemiological week. Two epiweeks are equal iff
// both year and week match.
type Epiweek struct {
	Year int
	Week int
}

// FromDate returns the epiweek containing the given calendar date.
func FromDate(t time.Time) Epiweek {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	sunday := d.AddDate(0, 0, -int(d.Weekday()))
	year := sunday.AddDate(0, 0, 3).Year() // year owning the week's Wednesday
	first := weekOneStart(year)
	week := int(sunday.Sub(first).Hours()/(24*7)) + 1
	return Epiweek{Year: year, Week: week}
}

// weekOneStart returns the Sunday starting epiweek 1 of the given year.
func weekOneStart(year int) time.Time {
	jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	sunday := jan1.AddDate(0, 0, -int(jan1.Weekday()))
	if sunday.AddDate(0, 0, 3).Year() < year {
		sunday = sunday.AddDate(0, 0, 7)
	}
	return sunday
}

// StartDate returns the Sunday on which the epiweek begins.
func (w Epiweek) StartDate() time.Time {
	return weekOneStart(w.Year).AddDate(0, 0, (w.Week-1)*7)
}

// EndDate returns the Saturday on which the epiweek ends.
func (w Epiweek) EndDate() time.Time {
	return w.StartDate().AddDate(0, 0, 6)
}

// Key returns the canonical numeric form YYYYWW, matching the upstream API's
// weekly time_value format (e.g. 202032).
func (w Epiweek) Key() int {
	return w.Year*100 + w.Week
}

// Label formats the epiweek for display, e.g. "2020-W03".
func (w Epiweek) Label() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Week)
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrDateParse, s)
	}
	return t, nil
}

// DayKey returns the canonical numeric form YYYYMMDD of a calendar date.
func DayKey(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

// normalizeRange parses both bounds and swaps them when end < start.
func normalizeRange(start, end string) (time.Time, time.Time, error) {
	s, err := ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if e.Before(s) {
		s, e = e, s
	}
	return s, e, nil
}

// WeeksInRange enumerates every distinct epiweek overlapping the inclusive
// date range, in chronological order. Reversed bounds are swapped, not an
// error.
func WeeksInRange(start, end string) ([]Epiweek, error) {
	s, e, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	startWeek := FromDate(s)
	endWeek := FromDate(e)

	var weeks []Epiweek
	seen := make(map[Epiweek]bool)
	for d := startWeek.StartDate(); !d.After(endWeek.EndDate()); d = d.AddDate(0, 0, 7) {
		w := FromDate(d)
		if !seen[w] {
			weeks = append(weeks, w)
			seen[w] = true
		}
	}
	return weeks, nil
}

// DaysInRange enumerates every calendar day in the inclusive date range.
// Reversed bounds are swapped, not an error.
func DaysInRange(start, end string) ([]time.Time, error) {
	s, e, err := normalizeRange(start, end)
	if err != nil {
		return nil, err
	}

	var days []time.Time
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}
