// models/epidata.go

package models

import "encoding/json"

// CovidcastResponse is the envelope returned by the tabular signal endpoint.
type CovidcastResponse struct {
	Result  int            `json:"result"`
	Message string         `json:"message"`
	Epidata []CovidcastRow `json:"epidata"`
}

// CovidcastRow is one raw upstream observation. TimeValue is numeric on the
// wire (20240115 or 202403) and kept as json.Number so both forms survive
// the trip into DataRow's textual time value.
type CovidcastRow struct {
	TimeValue json.Number `json:"time_value"`
	Value     *float64    `json:"value"`
	GeoValue  string      `json:"geo_value"`
	Signal    string      `json:"signal"`
	TimeType  string      `json:"time_type"`
}

// LegacyResponse is the envelope returned by the legacy regional-surveillance
// endpoints. Rows are kept as raw maps because the value field is named after
// the indicator (e.g. "wili"); the adapter validates and reshapes them.
type LegacyResponse struct {
	Result  int                      `json:"result"`
	Message string                   `json:"message"`
	Epidata []map[string]interface{} `json:"epidata"`
}

// CoverageResponse is the envelope returned by the geo coverage endpoint.
type CoverageResponse struct {
	Result  int      `json:"result"`
	Message string   `json:"message"`
	Epidata []string `json:"epidata"`
}
