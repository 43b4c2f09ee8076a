package chart

import (
	"strconv"
	"strings"
	"time"

	"epiportal-server/epiweek"
	"epiportal-server/models"
)

// dayKeyThreshold separates the two canonical time-key forms: week keys are
// six digits (YYYYWW), day keys eight (YYYYMMDD), so any key at or above
// this magnitude is a day key.
const dayKeyThreshold = 10_000_000

// seriesAccumulator collects one series' observations keyed by canonical
// time key before projection onto the timeline.
type seriesAccumulator struct {
	label  string
	values map[int]*float64
}

// AlignSeries groups upstream rows into series and projects each series onto
// the timeline, producing one ordered value slice per series with nil at
// every position lacking data.
//
// Each row's granularity is resolved in order of preference: the row's own
// time_type, then timeTypeHint, then a one-time inference from the textual
// length of the first undeclared row's time_value (8 digits means day, 6
// means week, anything else week) which is reused for subsequent undeclared
// rows. Rows whose time_value cannot be converted are dropped individually;
// within a series, a later row overwrites an earlier one at the same key.
func AlignSeries(rows []models.DataRow, tl *Timeline, seriesBy []string, timeTypeHint string) []models.Series {
	if len(seriesBy) == 0 {
		seriesBy = []string{"signal"}
	}

	var order []string
	accs := make(map[string]*seriesAccumulator)
	inferred := ""

	for _, row := range rows {
		granularity := row.TimeType
		if granularity == "" {
			granularity = timeTypeHint
		}
		if granularity == "" {
			if inferred == "" {
				inferred = inferGranularity(row.TimeValue)
			}
			granularity = inferred
		}

		key, ok := timeKey(row.TimeValue, granularity)
		if !ok {
			continue // malformed row, never fatal to the batch
		}

		label := seriesLabel(row, seriesBy)
		acc, exists := accs[label]
		if !exists {
			acc = &seriesAccumulator{label: label, values: make(map[int]*float64)}
			accs[label] = acc
			order = append(order, label)
		}
		acc.values[key] = row.Value
	}

	// Position lookups for the projection step: day keys match their exact
	// day, week keys match only their week's start-day anchor.
	dayIndex := make(map[int]int, tl.Len())
	weekIndex := make(map[int]int)
	for i, pos := range tl.TimePositions {
		dayIndex[pos] = i
		if tl.Granularity[i] == GranularityWeek {
			weekIndex[epiweek.FromDate(tl.Days[i]).Key()] = i
		}
	}

	series := make([]models.Series, 0, len(order))
	for _, label := range order {
		acc := accs[label]
		data := make([]*float64, tl.Len())
		dayKeys, weekKeys := 0, 0
		for key, value := range acc.values {
			if key >= dayKeyThreshold {
				dayKeys++
				if i, ok := dayIndex[key]; ok {
					data[i] = value
				}
			} else {
				weekKeys++
				if i, ok := weekIndex[key]; ok {
					data[i] = value
				}
			}
		}
		timeType := GranularityWeek
		if dayKeys > weekKeys {
			timeType = GranularityDay
		}
		series = append(series, models.Series{Label: label, Data: data, TimeType: timeType})
	}
	return series
}

// seriesLabel joins the grouping fields' values, e.g. "confirmed_incidence"
// or "confirmed_incidence - pa" for a composite key.
func seriesLabel(row models.DataRow, seriesBy []string) string {
	if len(seriesBy) == 1 {
		return row.FieldValue(seriesBy[0])
	}
	parts := make([]string, len(seriesBy))
	for i, field := range seriesBy {
		parts[i] = row.FieldValue(field)
	}
	return strings.Join(parts, " - ")
}

// inferGranularity guesses a time value's granularity from its textual
// length. This mirrors the upstream data quirk: daily values are YYYYMMDD,
// weekly values YYYYWW, and anything irregular is treated as weekly.
func inferGranularity(timeValue string) string {
	switch len(timeValue) {
	case 8:
		return GranularityDay
	case 6:
		return GranularityWeek
	default:
		return GranularityWeek
	}
}

// timeKey converts an upstream time value to its canonical integer key under
// the effective granularity. A day-formatted value under week granularity is
// folded into its containing epiweek. Returns false for values that cannot
// be converted.
func timeKey(timeValue, granularity string) (int, bool) {
	switch granularity {
	case GranularityDay:
		if len(timeValue) != 8 {
			return 0, false
		}
		if _, err := time.Parse("20060102", timeValue); err != nil {
			return 0, false
		}
		key, err := strconv.Atoi(timeValue)
		if err != nil {
			return 0, false
		}
		return key, true
	case GranularityWeek:
		switch len(timeValue) {
		case 6:
			key, err := strconv.Atoi(timeValue)
			if err != nil {
				return 0, false
			}
			return key, true
		case 8:
			d, err := time.Parse("20060102", timeValue)
			if err != nil {
				return 0, false
			}
			return epiweek.FromDate(d).Key(), true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}
