// Package chart holds the time-series alignment pipeline: building the
// unified day-granularity timeline, projecting heterogeneous upstream rows
// onto it, and rescaling series for visual comparison.
package chart

import (
	"time"

	"epiportal-server/epiweek"
)

// Granularity markers for timeline positions.
const (
	GranularityDay  = "day"
	GranularityWeek = "week"
)

// Timeline is an ordered sequence of day positions covering an inclusive
// date range. All slices have one entry per day: DayLabels is the
// YYYY-MM-DD label, WeekLabels is empty except on a requested epiweek's
// starting Sunday, Granularity marks whether the position anchors a week
// aggregate, and TimePositions carries the canonical YYYYMMDD key.
type Timeline struct {
	Days          []time.Time
	DayLabels     []string
	WeekLabels    []string
	Granularity   []string
	TimePositions []int
}

// Len returns the number of day positions.
func (tl *Timeline) Len() int {
	return len(tl.Days)
}

// BuildTimeline constructs the unified timeline for [start, end]. Daily
// series land on their exact day; weekly series anchor on their epiweek's
// starting Sunday. A malformed bound is a contract violation and is
// returned to the caller (it wraps epiweek.ErrDateParse).
func BuildTimeline(start, end string) (*Timeline, error) {
	days, err := epiweek.DaysInRange(start, end)
	if err != nil {
		return nil, err
	}
	weeks, err := epiweek.WeeksInRange(start, end)
	if err != nil {
		return nil, err
	}

	requested := make(map[epiweek.Epiweek]bool, len(weeks))
	for _, w := range weeks {
		requested[w] = true
	}

	tl := &Timeline{
		Days:          days,
		DayLabels:     make([]string, len(days)),
		WeekLabels:    make([]string, len(days)),
		Granularity:   make([]string, len(days)),
		TimePositions: make([]int, len(days)),
	}
	for i, d := range days {
		tl.DayLabels[i] = d.Format(epiweek.DateLayout)
		tl.TimePositions[i] = epiweek.DayKey(d)
		w := epiweek.FromDate(d)
		if requested[w] && d.Equal(w.StartDate()) {
			tl.WeekLabels[i] = w.Label()
			tl.Granularity[i] = GranularityWeek
		} else {
			tl.Granularity[i] = GranularityDay
		}
	}
	return tl, nil
}
