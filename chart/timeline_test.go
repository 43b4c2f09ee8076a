package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"epiportal-server/epiweek"
)

func TestBuildTimeline_ParallelSlicesSameLength(t *testing.T) {
	tl, err := BuildTimeline("2020-01-01", "2020-03-15")
	require.NoError(t, err)

	wantLen := 31 + 29 + 15 // Jan + Feb (leap) + half of Mar
	assert.Equal(t, wantLen, tl.Len())
	assert.Len(t, tl.DayLabels, wantLen)
	assert.Len(t, tl.WeekLabels, wantLen)
	assert.Len(t, tl.Granularity, wantLen)
	assert.Len(t, tl.TimePositions, wantLen)
}

func TestBuildTimeline_WeekAnchors(t *testing.T) {
	tl, err := BuildTimeline("2020-01-01", "2020-01-20")
	require.NoError(t, err)

	// 2020-01-05 is the Sunday starting epiweek 2020-W02.
	idx := -1
	for i, l := range tl.DayLabels {
		if l == "2020-01-05" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "2020-W02", tl.WeekLabels[idx])
	assert.Equal(t, GranularityWeek, tl.Granularity[idx])

	// Mid-week days carry no week label.
	assert.Equal(t, "", tl.WeekLabels[idx+1])
	assert.Equal(t, GranularityDay, tl.Granularity[idx+1])

	// The range starts mid-week, so position 0 is a plain day even though
	// its epiweek is one of the requested weeks.
	assert.Equal(t, "2020-01-01", tl.DayLabels[0])
	assert.Equal(t, "", tl.WeekLabels[0])
	assert.Equal(t, GranularityDay, tl.Granularity[0])
}

func TestBuildTimeline_TimePositionsAreDayKeys(t *testing.T) {
	tl, err := BuildTimeline("2024-01-14", "2024-01-16")
	require.NoError(t, err)
	assert.Equal(t, []int{20240114, 20240115, 20240116}, tl.TimePositions)
}

func TestBuildTimeline_SwappedRange(t *testing.T) {
	forward, err := BuildTimeline("2020-01-01", "2020-01-20")
	require.NoError(t, err)
	reversed, err := BuildTimeline("2020-01-20", "2020-01-01")
	require.NoError(t, err)
	assert.Equal(t, forward.DayLabels, reversed.DayLabels)
	assert.Equal(t, forward.WeekLabels, reversed.WeekLabels)
}

func TestBuildTimeline_MalformedRange(t *testing.T) {
	_, err := BuildTimeline("2020-99-01", "2020-01-20")
	require.Error(t, err)
	assert.ErrorIs(t, err, epiweek.ErrDateParse)
}
