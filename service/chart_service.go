package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"epiportal-server/api/epidata"
	"epiportal-server/chart"
	"epiportal-server/config"
	"epiportal-server/directory"
	"epiportal-server/epiweek"
	"epiportal-server/models"
)

// ChartService assembles the dashboard chart payload: it fetches every
// selected indicator at one geography, aligns the rows onto a shared
// timeline and rescales each series for visual comparison.
type ChartService struct {
	epidataApi epidata.EpidataAPI
	geoDir     *directory.GeographyDirectory
	now        func() time.Time
}

// NewChartService constructs a ChartService with its upstream client and
// geography directory injected.
func NewChartService(
	epidataApi epidata.EpidataAPI,
	geoDir *directory.GeographyDirectory) *ChartService {

	return &ChartService{
		epidataApi: epidataApi,
		geoDir:     geoDir,
		now:        time.Now,
	}
}

// BuildChartPayload fetches data for the selected indicators at the given
// geo token and returns the aligned, normalized chart payload. The fetch
// range covers the last ten years so the UI can pan without refetching; the
// initial view window covers the last two. A single indicator's upstream
// failure contributes nothing and never aborts the rest.
func (cs *ChartService) BuildChartPayload(indicators []models.IndicatorDescriptor, geoToken string) (*models.ChartPayload, error) {
	now := cs.now()
	fetchStart := now.AddDate(-config.CHART_FETCH_YEARS, 0, 0).Format(epiweek.DateLayout)
	fetchEnd := now.Format(epiweek.DateLayout)
	viewStart := now.AddDate(-config.CHART_INITIAL_VIEW_YEARS, 0, 0).Format(epiweek.DateLayout)

	tl, err := chart.BuildTimeline(fetchStart, fetchEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to build chart timeline: %w", err)
	}

	geoType, geoID := SplitGeoToken(geoToken)
	geoText := geoID
	if name, ok := cs.geoDir.DisplayName(geoType, geoID); ok {
		geoText = name
	}

	payload := &models.ChartPayload{
		Labels:           []string{},
		DayLabels:        []string{},
		TimePositions:    []int{},
		Datasets:         []models.Series{},
		InitialViewStart: viewStart,
		InitialViewEnd:   fetchEnd,
	}

	// The timeline is adopted from the first indicator that yields data;
	// callers rely on iteration order here.
	timelineAdopted := false
	for _, indicator := range indicators {
		rows := fetchIndicatorRows(cs.epidataApi, indicator, geoType, geoID, fetchStart, fetchEnd)
		if len(rows) == 0 {
			log.Printf("[ChartService] No data for %s/%s at %s, skipping",
				indicator.DataSource, indicator.Name, geoToken)
			continue
		}
		if !timelineAdopted {
			payload.Labels = tl.WeekLabels
			payload.DayLabels = tl.DayLabels
			payload.TimePositions = tl.TimePositions
			timelineAdopted = true
		}

		for _, series := range chart.AlignSeries(rows, tl, []string{"signal"}, indicator.TimeType) {
			// Keep the aligner's grouping label so two series of one
			// indicator stay distinguishable.
			series.Label = indicator.DisplayTitle(geoText) + " - " + series.Label
			series.BorderColor = chart.RandomColor()
			series.BackgroundColor = chart.FillColor(series.BorderColor)
			series.Data = chart.NormalizeDataset(series.Data, tl.DayLabels, viewStart, fetchEnd)
			payload.Datasets = append(payload.Datasets, series)
		}
	}
	return payload, nil
}

// fetchIndicatorRows dispatches one indicator to the adapter its endpoint
// family requires.
func fetchIndicatorRows(epidataApi epidata.EpidataAPI, indicator models.IndicatorDescriptor, geoType, geoID, startDate, endDate string) []models.DataRow {
	if indicator.Endpoint == models.EndpointCovidcast || indicator.Endpoint == "" {
		return epidataApi.FetchCovidcast(epidata.CovidcastParams{
			Source:    indicator.DataSource,
			Signal:    indicator.Name,
			TimeType:  indicator.TimeType,
			GeoType:   geoType,
			GeoValue:  geoID,
			StartDate: startDate,
			EndDate:   endDate,
		})
	}

	startWeek, endWeek, err := epidata.WeekBounds(startDate, endDate)
	if err != nil {
		log.Printf("[ChartService] Failed to compute epiweek bounds for %s: %v", indicator.Name, err)
		return nil
	}
	return epidataApi.FetchLegacy(indicator.Endpoint, indicator.Name, geoID, startWeek, endWeek)
}

// SplitGeoToken splits a "geoType:geoId" token. A token without a separator
// is treated as a bare geo id.
func SplitGeoToken(token string) (geoType, geoID string) {
	parts := strings.SplitN(token, ":", 2)
	if len(parts) < 2 {
		return "", token
	}
	return parts[0], parts[1]
}
