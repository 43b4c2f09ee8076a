package services

import (
	"log"
	"sort"
	"strings"
	"time"

	"epiportal-server/api/epidata"
	"epiportal-server/dao/redis"
	"epiportal-server/directory"
	"epiportal-server/models"
)

// GeoCoverageService resolves which geographies the selected indicators have
// data for, shaped into nested groups for the UI select widget. Results are
// cached with a fixed TTL; recomputation under race is harmless.
type GeoCoverageService struct {
	epidataApi  epidata.EpidataAPI
	geoDir      *directory.GeographyDirectory
	coverageDao *redis.RedisCoverageDAO
	cacheTTL    time.Duration
}

// NewGeoCoverageService constructs a GeoCoverageService with its upstream
// client, geography directory and cache DAO injected.
func NewGeoCoverageService(
	epidataApi epidata.EpidataAPI,
	geoDir *directory.GeographyDirectory,
	coverageDao *redis.RedisCoverageDAO,
	cacheTTL time.Duration) *GeoCoverageService {

	return &GeoCoverageService{
		epidataApi:  epidataApi,
		geoDir:      geoDir,
		coverageDao: coverageDao,
		cacheTTL:    cacheTTL,
	}
}

// AvailableGeographies groups the indicators by data source, queries
// upstream coverage per group and intersects the returned geo tokens with
// the local geography directory. A failing or empty coverage query for one
// source contributes no geographies from that source.
func (gs *GeoCoverageService) AvailableGeographies(indicators []models.IndicatorDescriptor) ([]models.GeographyGroup, error) {
	cacheKey := coverageCacheKey(indicators)
	if groups, found, err := gs.coverageDao.GetGeoGroups(cacheKey); err == nil && found {
		log.Printf("[GeoCoverageService] Coverage cache hit for %s", cacheKey)
		return groups, nil
	}

	sources, signalsBySource := groupSignalsBySource(indicators)

	tokens := []string{}
	for _, source := range sources {
		covered := gs.epidataApi.FetchGeoCoverage(source, strings.Join(signalsBySource[source], ","))
		tokens = append(tokens, covered...)
	}

	units := gs.geoDir.UnitsFor(tokens)
	groups := groupByGeoType(units)

	if err := gs.coverageDao.SetGeoGroups(cacheKey, groups, gs.cacheTTL); err != nil {
		log.Printf("[GeoCoverageService] Failed to cache coverage for %s: %v", cacheKey, err)
	}
	return groups, nil
}

// groupSignalsBySource collects signal names per data source, preserving the
// order sources first appear in.
func groupSignalsBySource(indicators []models.IndicatorDescriptor) ([]string, map[string][]string) {
	sources := []string{}
	signalsBySource := map[string][]string{}
	for _, indicator := range indicators {
		if _, seen := signalsBySource[indicator.DataSource]; !seen {
			sources = append(sources, indicator.DataSource)
		}
		signalsBySource[indicator.DataSource] = append(signalsBySource[indicator.DataSource], indicator.Name)
	}
	return sources, signalsBySource
}

// groupByGeoType nests rank-ordered units under their geo-type display name.
func groupByGeoType(units []models.GeographyUnit) []models.GeographyGroup {
	groups := []models.GeographyGroup{}
	index := map[string]int{}
	for _, unit := range units {
		i, ok := index[unit.GeoTypeDisplayName]
		if !ok {
			i = len(groups)
			index[unit.GeoTypeDisplayName] = i
			groups = append(groups, models.GeographyGroup{Text: unit.GeoTypeDisplayName})
		}
		groups[i].Children = append(groups[i].Children, unit)
	}
	return groups
}

// coverageCacheKey builds a deterministic cache key for an indicator
// selection, independent of the order indicators were passed in.
func coverageCacheKey(indicators []models.IndicatorDescriptor) string {
	parts := make([]string, 0, len(indicators))
	for _, indicator := range indicators {
		parts = append(parts, indicator.DataSource+"/"+indicator.Name)
	}
	sort.Strings(parts)
	return strings.Join(parts, ";")
}
