package epidata

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"epiportal-server/api"
	"epiportal-server/epiweek"
	"epiportal-server/models"
)

// legacyLocationMapping translates catalog geography ids to the region codes
// the legacy endpoints expect. Unmapped locations pass through unchanged.
var legacyLocationMapping = map[string]string{
	"us":       "nat",
	"usa":      "nat",
	"national": "nat",
}

// legacyLocationParam names the query parameter each legacy endpoint uses
// for its geography list. Endpoints not listed here use "regions".
var legacyLocationParam = map[string]string{
	"nidss_dengue": "locations",
	"flusurv":      "locations",
}

// EpidataApiClient embeds the common HTTPClient
type EpidataApiClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties

	apiKey string
}

// NewEpidataApiClient creates a new instance of EpidataApiClient
func NewEpidataApiClient(httpClient *api.HTTPClient) *EpidataApiClient {
	return &EpidataApiClient{
		HTTPClient: httpClient,
	}
}

// SetCredentials sets the API key sent with every upstream request. Meant
// for wiring time only; per-request keys go through WithAPIKey.
func (c *EpidataApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

// WithAPIKey returns a copy of the client carrying the given key, sharing
// the underlying HTTP client. The receiver's configured credentials are
// left untouched.
func (c *EpidataApiClient) WithAPIKey(apiKey string) EpidataAPI {
	if apiKey == "" {
		return c
	}
	scoped := *c
	scoped.apiKey = apiKey
	return &scoped
}

// FetchCovidcast retrieves rows from the tabular signal endpoint and
// normalizes them into DataRows. Any upstream failure yields an empty slice.
func (c *EpidataApiClient) FetchCovidcast(p CovidcastParams) []models.DataRow {
	timeValues := p.StartDate + "--" + p.EndDate
	if p.TimeType == epiweek.TimeTypeWeek {
		startWeek, endWeek, err := WeekBounds(p.StartDate, p.EndDate)
		if err != nil {
			log.Printf("[EpidataAPI] covidcast %s:%s: %v", p.Source, p.Signal, err)
			return nil
		}
		timeValues = fmt.Sprintf("%d-%d", startWeek, endWeek)
	}

	params := url.Values{}
	params.Set("time_type", p.TimeType)
	params.Set("time_values", timeValues)
	params.Set("data_source", p.Source)
	params.Set("signal", p.Signal)
	params.Set("geo_type", p.GeoType)
	params.Set("geo_values", NormalizeGeoValue(p.GeoType, p.GeoValue))
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	var response models.CovidcastResponse
	status, err := c.Get("covidcast", params, nil, &response)
	if err != nil {
		log.Printf("[EpidataAPI] covidcast %s:%s request failed: %v", p.Source, p.Signal, err)
		return nil
	}
	if status != http.StatusOK || len(response.Epidata) == 0 {
		log.Printf("[EpidataAPI] covidcast %s:%s: no data (status %d)", p.Source, p.Signal, status)
		return nil
	}

	return CovidcastDataRows(&response, p.Signal, p.TimeType)
}

// CovidcastDataRows converts a covidcast envelope into DataRows, filling
// signal and time_type from the request when a row omits them.
func CovidcastDataRows(response *models.CovidcastResponse, signal, timeType string) []models.DataRow {
	rows := make([]models.DataRow, 0, len(response.Epidata))
	for _, raw := range response.Epidata {
		row := models.DataRow{
			TimeValue: raw.TimeValue.String(),
			Value:     raw.Value,
			GeoValue:  raw.GeoValue,
			Signal:    raw.Signal,
			TimeType:  raw.TimeType,
		}
		if row.Signal == "" {
			row.Signal = signal
		}
		if row.TimeType == "" {
			row.TimeType = timeType
		}
		rows = append(rows, row)
	}
	return rows
}

// FetchLegacy retrieves rows from one of the legacy regional-surveillance
// endpoints and reshapes each record into the common row form.
func (c *EpidataApiClient) FetchLegacy(endpoint, indicator, location string, startWeek, endWeek int) []models.DataRow {
	resolved := ResolveLegacyLocation(location)

	params := url.Values{}
	params.Set(LocationParamName(endpoint), resolved)
	params.Set("epiweeks", fmt.Sprintf("%d-%d", startWeek, endWeek))
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}

	var response models.LegacyResponse
	status, err := c.Get(endpoint, params, nil, &response)
	if err != nil {
		log.Printf("[EpidataAPI] %s %s request failed: %v", endpoint, indicator, err)
		return nil
	}
	if status != http.StatusOK || len(response.Epidata) == 0 {
		log.Printf("[EpidataAPI] %s %s: no data (status %d)", endpoint, indicator, status)
		return nil
	}

	rows := make([]models.DataRow, 0, len(response.Epidata))
	for _, record := range response.Epidata {
		row, ok := reshapeLegacyRecord(record, indicator, resolved)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	return rows
}

// FetchGeoCoverage returns the coverage tokens for the given source's
// signals, or nothing on any upstream failure.
func (c *EpidataApiClient) FetchGeoCoverage(dataSource, signals string) []string {
	params := url.Values{}
	params.Set("data_source", dataSource)
	params.Set("signals", signals)

	auth := &api.BasicAuth{Username: "epidata", Password: c.apiKey}
	var response models.CoverageResponse
	status, err := c.Get("covidcast/geo_indicator_coverage", params, auth, &response)
	if err != nil {
		log.Printf("[EpidataAPI] geo coverage for %s request failed: %v", dataSource, err)
		return nil
	}
	if status != http.StatusOK {
		log.Printf("[EpidataAPI] geo coverage for %s: no data (status %d)", dataSource, status)
		return nil
	}
	return response.Epidata
}

// reshapeLegacyRecord converts one raw legacy record, copying the named
// indicator field into the value and tagging the time value from the
// record's own epiweek field. Records missing the epiweek are dropped.
func reshapeLegacyRecord(record map[string]interface{}, indicator, location string) (models.DataRow, bool) {
	week, ok := record["epiweek"].(float64)
	if !ok {
		return models.DataRow{}, false
	}

	var value *float64
	if v, ok := record[indicator].(float64); ok {
		value = &v
	}

	geoValue := location
	if region, ok := record["region"].(string); ok {
		geoValue = region
	} else if loc, ok := record["location"].(string); ok {
		geoValue = loc
	}

	return models.DataRow{
		TimeValue: strconv.Itoa(int(week)),
		Value:     value,
		Signal:    indicator,
		GeoValue:  geoValue,
		TimeType:  epiweek.TimeTypeWeek,
	}, true
}

// ResolveLegacyLocation translates a catalog geography id to the region code
// the legacy endpoints expect. Unmapped locations pass through unchanged.
func ResolveLegacyLocation(location string) string {
	if resolved, ok := legacyLocationMapping[strings.ToLower(location)]; ok {
		return resolved
	}
	return location
}

// LocationParamName returns the query parameter a legacy endpoint expects
// its geography list under.
func LocationParamName(endpoint string) string {
	if param, ok := legacyLocationParam[endpoint]; ok {
		return param
	}
	return "regions"
}

// NormalizeGeoValue lower-cases geography values for the levels where the
// upstream convention requires it.
func NormalizeGeoValue(geoType, geoValue string) string {
	if geoType == "nation" || geoType == "state" {
		return strings.ToLower(geoValue)
	}
	return geoValue
}

// WeekBounds converts a YYYY-MM-DD date range to epiweek keys.
func WeekBounds(startDate, endDate string) (int, int, error) {
	start, err := epiweek.ParseDate(startDate)
	if err != nil {
		return 0, 0, err
	}
	end, err := epiweek.ParseDate(endDate)
	if err != nil {
		return 0, 0, err
	}
	return epiweek.FromDate(start).Key(), epiweek.FromDate(end).Key(), nil
}
