package epidata

import (
	"fmt"
	"strconv"

	"epiportal-server/config"
	"epiportal-server/models"
	"epiportal-server/util"
)

// EpidataApiClientMock serves canned upstream responses from JSON fixtures,
// for local development without an API key and for wiring tests.
type EpidataApiClientMock struct {
}

// NewEpidataApiClientMock creates a new instance of EpidataApiClientMock
func NewEpidataApiClientMock() *EpidataApiClientMock {
	return &EpidataApiClientMock{}
}

// FetchCovidcast returns the fixture covidcast rows, tagged with the
// requested signal and time type.
func (c *EpidataApiClientMock) FetchCovidcast(p CovidcastParams) []models.DataRow {
	response, err := util.ReadCovidcastResponseFromJSON(config.GetResourcePath(config.COVIDCAST_RESPONSE_RESOURCE))
	if err != nil {
		fmt.Println("Could not read covidcast response from json")
		return nil
	}
	return CovidcastDataRows(response, p.Signal, p.TimeType)
}

// FetchLegacy returns the fixture legacy rows reshaped for the requested
// indicator.
func (c *EpidataApiClientMock) FetchLegacy(endpoint, indicator, location string, startWeek, endWeek int) []models.DataRow {
	response, err := util.ReadLegacyResponseFromJSON(config.GetResourcePath(config.LEGACY_RESPONSE_RESOURCE))
	if err != nil {
		fmt.Println("Could not read legacy response from json")
		return nil
	}
	rows := make([]models.DataRow, 0, len(response.Epidata))
	for _, record := range response.Epidata {
		week, ok := record["epiweek"].(float64)
		if !ok {
			continue
		}
		var value *float64
		if v, ok := record[indicator].(float64); ok {
			value = &v
		}
		rows = append(rows, models.DataRow{
			TimeValue: strconv.Itoa(int(week)),
			Value:     value,
			Signal:    indicator,
			GeoValue:  location,
			TimeType:  "week",
		})
	}
	return rows
}

// FetchGeoCoverage returns the fixture coverage tokens.
func (c *EpidataApiClientMock) FetchGeoCoverage(dataSource, signals string) []string {
	response, err := util.ReadCoverageResponseFromJSON(config.GetResourcePath(config.COVERAGE_RESPONSE_RESOURCE))
	if err != nil {
		fmt.Println("Could not read coverage response from json")
		return nil
	}
	return response.Epidata
}

// SetCredentials is a no-op for the mock.
func (c *EpidataApiClientMock) SetCredentials(apiKey string) {
}

// WithAPIKey returns the mock itself; fixtures ignore credentials.
func (c *EpidataApiClientMock) WithAPIKey(apiKey string) EpidataAPI {
	return c
}
