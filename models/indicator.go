// models/indicator.go

package models

// Endpoint families an indicator can be served from. Anything other than
// covidcast is one of the legacy per-source endpoints (fluview, nidss_flu,
// nidss_dengue, flusurv) whose path equals the endpoint name.
const (
	EndpointCovidcast = "covidcast"
	EndpointFluview   = "fluview"
)

// IndicatorDescriptor carries the catalog attributes the pipeline needs for
// one selected indicator. It mirrors the shape the catalog UI posts.
type IndicatorDescriptor struct {
	Name       string `json:"name"`
	DataSource string `json:"data_source"`
	// TimeType is the indicator's native granularity, "day" or "week".
	TimeType string `json:"time_type"`
	// Endpoint selects the adapter family, e.g. "covidcast" or "fluview".
	Endpoint string `json:"_endpoint"`

	// Display metadata resolved from the catalog.
	IndicatorSetShortName string `json:"indicator_set_short_name"`
	MemberShortName       string `json:"member_short_name"`
}

// DisplayTitle builds the human-readable series title for this indicator at
// the given geography, e.g. "NSSP:ILI ED visits : Pennsylvania".
func (d IndicatorDescriptor) DisplayTitle(geoText string) string {
	return d.IndicatorSetShortName + ":" + d.MemberShortName + " : " + geoText
}
