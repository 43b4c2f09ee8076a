// models/datarow.go

package models

// DataRow is one observation normalized from an upstream endpoint. Both the
// tabular covidcast adapter and the legacy regional-surveillance adapters
// produce this shape, so the alignment layer never has to know which endpoint
// a row came from. Rows are request-scoped and never persisted.
type DataRow struct {
	// TimeValue carries the upstream time representation as text:
	// YYYYMMDD for daily rows, YYYYWW for weekly rows.
	TimeValue string   `json:"time_value"`
	Value     *float64 `json:"value"`
	Signal    string   `json:"signal"`
	GeoValue  string   `json:"geo_value"`
	// TimeType is "day", "week" or empty when the upstream row did not
	// declare its granularity.
	TimeType string `json:"time_type"`
}

// FieldValue resolves a series-grouping field name to the row's value for it.
// Unknown fields resolve to the empty string.
func (r DataRow) FieldValue(field string) string {
	switch field {
	case "signal":
		return r.Signal
	case "geo_value":
		return r.GeoValue
	case "time_type":
		return r.TimeType
	case "time_value":
		return r.TimeValue
	default:
		return ""
	}
}
