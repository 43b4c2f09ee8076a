// models/chart.go

package models

// Series is one plotted line: values aligned 1:1 with the payload's
// timeline. Missing observations are nil, never omitted.
type Series struct {
	Label string     `json:"label"`
	Data  []*float64 `json:"data"`
	// TimeType tags the series' native granularity, "day" or "week".
	TimeType        string `json:"time_type"`
	BorderColor     string `json:"borderColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// ChartPayload is the full response for the dashboard chart. Labels,
// DayLabels and TimePositions all describe one shared day-granularity
// timeline; every dataset's Data has the same length.
type ChartPayload struct {
	// Labels holds week labels, empty except at epiweek start positions.
	Labels    []string `json:"labels"`
	DayLabels []string `json:"dayLabels"`
	// TimePositions holds the canonical YYYYMMDD key of each position.
	TimePositions    []int    `json:"timePositions"`
	Datasets         []Series `json:"datasets"`
	InitialViewStart string   `json:"initialViewStart"`
	InitialViewEnd   string   `json:"initialViewEnd"`
}
