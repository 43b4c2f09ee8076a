package services

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"epiportal-server/api/epidata"
	"epiportal-server/chart"
	"epiportal-server/models"
)

// FLUVIEW_INDICATORS_MAPPING maps fluview indicator names to their
// conventional display titles.
var FLUVIEW_INDICATORS_MAPPING = map[string]string{
	"wili": "%wILI",
	"ili":  "%ILI",
}

// ExportService generates the artifacts users take away from a selection:
// wget-able CSV export URLs, Python/R query snippets and a link into the
// external visualization tool.
type ExportService struct {
	epidataURL string
	epivisURL  string
}

// NewExportService constructs an ExportService pointing at the upstream API
// and visualization tool base URLs.
func NewExportService(epidataURL, epivisURL string) *ExportService {
	return &ExportService{
		epidataURL: epidataURL,
		epivisURL:  epivisURL,
	}
}

// ExportURLs builds one wget command per exportable query: tabular-signal
// indicators get a CSV endpoint URL per geo type, legacy indicators get a
// CSV-formatted endpoint URL per endpoint family.
func (es *ExportService) ExportURLs(indicators []models.IndicatorDescriptor, geos []models.GeographyUnit, startDate, endDate, apiKey string) ([]string, error) {
	commands := []string{}
	geoTypes, geoValuesByType := groupGeoValuesByType(geos)

	seenEndpoints := map[string]bool{}
	for _, indicator := range indicators {
		if indicator.Endpoint == models.EndpointCovidcast || indicator.Endpoint == "" {
			startBound, endBound := startDate, endDate
			if indicator.TimeType == "week" {
				startWeek, endWeek, err := epidata.WeekBounds(startDate, endDate)
				if err != nil {
					return nil, fmt.Errorf("failed to compute epiweek bounds: %w", err)
				}
				startBound, endBound = fmt.Sprintf("%d", startWeek), fmt.Sprintf("%d", endWeek)
			}
			for _, geoType := range geoTypes {
				exportURL := fmt.Sprintf("%scovidcast/csv?signal=%s:%s&start_day=%s&end_day=%s&geo_type=%s&geo_values=%s",
					es.epidataURL, indicator.DataSource, indicator.Name,
					startBound, endBound, geoType, strings.Join(geoValuesByType[geoType], ","))
				if apiKey != "" {
					exportURL += "&api_key=" + apiKey
				}
				commands = append(commands, "wget --content-disposition "+exportURL)
			}
			continue
		}

		if seenEndpoints[indicator.Endpoint] {
			continue
		}
		seenEndpoints[indicator.Endpoint] = true

		startWeek, endWeek, err := epidata.WeekBounds(startDate, endDate)
		if err != nil {
			return nil, fmt.Errorf("failed to compute epiweek bounds: %w", err)
		}
		exportURL := fmt.Sprintf("%s%s/?%s=%s&epiweeks=%d-%d&format=csv",
			es.epidataURL, indicator.Endpoint,
			epidata.LocationParamName(indicator.Endpoint), legacyRegions(geos),
			startWeek, endWeek)
		if apiKey != "" {
			exportURL += "&api_key=" + apiKey
		}
		commands = append(commands, "wget --content-disposition "+exportURL)
	}
	return commands, nil
}

// QueryCode generates Python and R snippets reproducing the selection
// against the upstream API client packages.
func (es *ExportService) QueryCode(indicators []models.IndicatorDescriptor, geos []models.GeographyUnit, startDate, endDate string) (*models.QueryCode, error) {
	code := &models.QueryCode{Python: []string{}, R: []string{}}
	geoTypes, geoValuesByType := groupGeoValuesByType(geos)

	startWeek, endWeek, err := epidata.WeekBounds(startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute epiweek bounds: %w", err)
	}

	sources, signalsBySource := groupSignalsBySource(filterByEndpoint(indicators, models.EndpointCovidcast))
	for _, source := range sources {
		timeType := covidcastTimeType(indicators, source)
		startBound := strings.ReplaceAll(startDate, "-", "")
		endBound := strings.ReplaceAll(endDate, "-", "")
		if timeType == "week" {
			startBound, endBound = fmt.Sprintf("%d", startWeek), fmt.Sprintf("%d", endWeek)
		}
		signals := strings.Join(signalsBySource[source], ",")
		sourceIdent := strings.ReplaceAll(source, "-", "_")
		for _, geoType := range geoTypes {
			geoValues := strings.Join(geoValuesByType[geoType], ",")
			code.Python = append(code.Python, fmt.Sprintf(
				"%s_%s_df = epidata.pub_covidcast(\n"+
					"    data_source=%q,\n"+
					"    signals=%q,\n"+
					"    geo_type=%q,\n"+
					"    time_type=%q,\n"+
					"    geo_values=%q,\n"+
					"    time_values=EpiRange(%s, %s),\n"+
					").df()\n",
				sourceIdent, geoType, source, signals, geoType, timeType, geoValues, startBound, endBound))
			code.R = append(code.R, fmt.Sprintf(
				"epidata_%s_%s <- pub_covidcast(\n"+
					"    source = %q,\n"+
					"    signals = %q,\n"+
					"    geo_type = %q,\n"+
					"    time_type = %q,\n"+
					"    geo_values = %q,\n"+
					"    time_values = epirange(%s, %s)\n"+
					")\n",
				sourceIdent, geoType, source, signals, geoType, timeType, geoValues, startBound, endBound))
		}
	}

	seenEndpoints := map[string]bool{}
	for _, indicator := range indicators {
		if indicator.Endpoint == models.EndpointCovidcast || indicator.Endpoint == "" || seenEndpoints[indicator.Endpoint] {
			continue
		}
		seenEndpoints[indicator.Endpoint] = true
		locationParam := epidata.LocationParamName(indicator.Endpoint)
		regions := legacyRegions(geos)
		code.Python = append(code.Python, fmt.Sprintf(
			"%s_df = epidata.pub_%s(\n"+
				"    %s=%q,\n"+
				"    epiweeks=\"%d-%d\",\n"+
				").df()\n",
			indicator.Endpoint, indicator.Endpoint, locationParam, regions, startWeek, endWeek))
		code.R = append(code.R, fmt.Sprintf(
			"epidata_%s <- pub_%s(\n"+
				"    %s = %q,\n"+
				"    epiweeks = epirange(%d, %d)\n"+
				")\n",
			indicator.Endpoint, indicator.Endpoint, locationParam, regions, startWeek, endWeek))
	}
	return code, nil
}

// EpivisLink serializes one dataset descriptor per indicator/geography pair
// and base64-encodes them into a fragment link for the visualization tool.
func (es *ExportService) EpivisLink(indicators []models.IndicatorDescriptor, geos []models.GeographyUnit) (string, error) {
	datasets := []models.EpivisDataset{}
	for _, indicator := range indicators {
		for _, geo := range geos {
			datasets = append(datasets, epivisDataset(indicator, geo))
		}
	}

	payload, err := json.Marshal(map[string][]models.EpivisDataset{"datasets": datasets})
	if err != nil {
		return "", fmt.Errorf("failed to marshal epivis datasets: %w", err)
	}
	return es.epivisURL + "#" + base64.StdEncoding.EncodeToString(payload), nil
}

// epivisDataset builds the descriptor for one indicator at one geography,
// shaped the way the visualization tool decodes its fragment.
func epivisDataset(indicator models.IndicatorDescriptor, geo models.GeographyUnit) models.EpivisDataset {
	customTitle := indicator.DisplayTitle(geo.Text)
	_, geoID := SplitGeoToken(geo.ID)

	if indicator.Endpoint == models.EndpointCovidcast || indicator.Endpoint == "" {
		return models.EpivisDataset{
			Color: chart.RandomColor(),
			Title: "value",
			Params: map[string]string{
				"_endpoint":    models.EndpointCovidcast,
				"data_source":  indicator.DataSource,
				"signal":       indicator.Name,
				"time_type":    indicator.TimeType,
				"geo_type":     geo.GeoType,
				"geo_value":    epidata.NormalizeGeoValue(geo.GeoType, geoID),
				"custom_title": customTitle,
			},
		}
	}

	title := indicator.Name
	if indicator.Endpoint == models.EndpointFluview {
		if mapped, ok := FLUVIEW_INDICATORS_MAPPING[indicator.Name]; ok {
			title = mapped
		}
	}
	return models.EpivisDataset{
		Color: chart.RandomColor(),
		Title: title,
		Params: map[string]string{
			"_endpoint": indicator.Endpoint,
			epidata.LocationParamName(indicator.Endpoint): epidata.ResolveLegacyLocation(geoID),
			"custom_title": customTitle,
		},
	}
}

// groupGeoValuesByType collects normalized geo values per geo type,
// preserving first-appearance order of the types.
func groupGeoValuesByType(geos []models.GeographyUnit) ([]string, map[string][]string) {
	geoTypes := []string{}
	valuesByType := map[string][]string{}
	for _, geo := range geos {
		_, geoID := SplitGeoToken(geo.ID)
		if _, seen := valuesByType[geo.GeoType]; !seen {
			geoTypes = append(geoTypes, geo.GeoType)
		}
		valuesByType[geo.GeoType] = append(valuesByType[geo.GeoType], epidata.NormalizeGeoValue(geo.GeoType, geoID))
	}
	return geoTypes, valuesByType
}

// legacyRegions joins the geographies as the region codes the legacy
// endpoints expect.
func legacyRegions(geos []models.GeographyUnit) string {
	regions := make([]string, 0, len(geos))
	for _, geo := range geos {
		_, geoID := SplitGeoToken(geo.ID)
		regions = append(regions, epidata.ResolveLegacyLocation(geoID))
	}
	return strings.Join(regions, ",")
}

// filterByEndpoint keeps the indicators of one endpoint family. An empty
// endpoint counts as the tabular-signal family.
func filterByEndpoint(indicators []models.IndicatorDescriptor, endpoint string) []models.IndicatorDescriptor {
	filtered := []models.IndicatorDescriptor{}
	for _, indicator := range indicators {
		if indicator.Endpoint == endpoint || (endpoint == models.EndpointCovidcast && indicator.Endpoint == "") {
			filtered = append(filtered, indicator)
		}
	}
	return filtered
}

// covidcastTimeType returns the native granularity of the given source's
// first indicator, matching how the snippets pick a shared time_type.
func covidcastTimeType(indicators []models.IndicatorDescriptor, source string) string {
	for _, indicator := range indicators {
		if indicator.DataSource == source {
			return indicator.TimeType
		}
	}
	return "day"
}
