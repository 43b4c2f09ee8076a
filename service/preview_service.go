package services

import (
	"epiportal-server/api/epidata"
	"epiportal-server/models"
)

// PreviewService fetches a small sample of upstream data so users can sanity
// check an indicator selection before exporting it.
type PreviewService struct {
	epidataApi epidata.EpidataAPI
}

// NewPreviewService constructs a PreviewService with its upstream client
// injected.
func NewPreviewService(epidataApi epidata.EpidataAPI) *PreviewService {
	return &PreviewService{epidataApi: epidataApi}
}

// Preview fetches rows for every indicator/geography pair over the requested
// range and reports the first row plus a row count per pair. Pairs that
// yield nothing contribute nothing. A caller-supplied API key applies to
// these calls only; the shared client keeps its configured credentials.
func (ps *PreviewService) Preview(indicators []models.IndicatorDescriptor, geos []models.GeographyUnit, startDate, endDate, apiKey string) []models.PreviewItem {
	client := ps.epidataApi.WithAPIKey(apiKey)

	items := []models.PreviewItem{}
	for _, indicator := range indicators {
		for _, geo := range geos {
			_, geoID := SplitGeoToken(geo.ID)
			rows := fetchIndicatorRows(client, indicator, geo.GeoType, geoID, startDate, endDate)
			if len(rows) == 0 {
				continue
			}
			sample := rows[0]
			items = append(items, models.PreviewItem{
				DataSource: indicator.DataSource,
				Indicator:  indicator.Name,
				RowCount:   len(rows),
				Sample:     &sample,
			})
		}
	}
	return items
}
