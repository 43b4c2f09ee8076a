package epidata

import (
	"epiportal-server/models"
)

// CovidcastParams identifies one tabular-signal query: a signal of a data
// source, at one geography, over an inclusive date range. StartDate and
// EndDate are YYYY-MM-DD regardless of TimeType; weekly signals get their
// bounds converted to epiweeks when the request is built.
type CovidcastParams struct {
	Source    string
	Signal    string
	TimeType  string
	GeoType   string
	GeoValue  string
	StartDate string
	EndDate   string
}

// EpidataAPI defines the interface for interacting with the upstream
// epidemiological data service.
//
// All fetch methods share one failure contract: a non-200 status, transport
// error, timeout or empty payload yields an empty slice, never an error.
// Missing upstream data is a display concern, not a server fault.
type EpidataAPI interface {
	// FetchCovidcast retrieves rows from the tabular signal endpoint.
	FetchCovidcast(params CovidcastParams) []models.DataRow
	// FetchLegacy retrieves rows from a legacy regional-surveillance
	// endpoint (fluview, nidss_flu, nidss_dengue, flusurv) and reshapes
	// them into the common row form, reading the named indicator field as
	// the value. startWeek and endWeek are epiweek keys (YYYYWW).
	FetchLegacy(endpoint, indicator, location string, startWeek, endWeek int) []models.DataRow
	// FetchGeoCoverage returns the "geoLevel:geoId" tokens covered by the
	// comma-joined signals of one data source.
	FetchGeoCoverage(dataSource, signals string) []string
	SetCredentials(apiKey string)
	// WithAPIKey returns a client whose upstream requests carry the given
	// key instead of the configured one, leaving the receiver untouched.
	// The client is shared across requests, so a caller-supplied key must
	// never be set on it directly. An empty key returns the receiver.
	WithAPIKey(apiKey string) EpidataAPI
}
