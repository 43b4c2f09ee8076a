package directory

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"epiportal-server/models"
	"epiportal-server/util"
)

// GeographyDirectory is the local read-only lookup of known geography units,
// loaded once from a JSON resource file.
type GeographyDirectory struct {
	units []models.GeographyUnit
	byID  map[string]models.GeographyUnit
}

// NewGeographyDirectory loads the directory from the given resource path.
func NewGeographyDirectory(resourcePath string) (*GeographyDirectory, error) {
	units, err := util.ReadGeographyUnitsFromJSON(resourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load geography directory: %w", err)
	}
	log.Printf("[GeographyDirectory] Loaded %d geography units", len(units))
	return NewGeographyDirectoryFromUnits(units), nil
}

// NewGeographyDirectoryFromUnits builds a directory from in-memory units.
func NewGeographyDirectoryFromUnits(units []models.GeographyUnit) *GeographyDirectory {
	byID := make(map[string]models.GeographyUnit, len(units))
	for _, u := range units {
		byID[u.ID] = u
	}
	return &GeographyDirectory{units: units, byID: byID}
}

// UnitsFor resolves geo tokens ("geoType:geoId") against the directory,
// ordered by display rank then text. Unknown tokens contribute nothing.
func (d *GeographyDirectory) UnitsFor(tokens []string) []models.GeographyUnit {
	resolved := make([]models.GeographyUnit, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		unit, ok := d.byID[strings.ToLower(token)]
		if !ok || seen[unit.ID] {
			continue
		}
		seen[unit.ID] = true
		resolved = append(resolved, unit)
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		if resolved[i].Level != resolved[j].Level {
			return resolved[i].Level < resolved[j].Level
		}
		return resolved[i].Text < resolved[j].Text
	})
	return resolved
}

// DisplayName looks up the display text for a geo type + id pair.
func (d *GeographyDirectory) DisplayName(geoType, geoID string) (string, bool) {
	unit, ok := d.byID[strings.ToLower(geoType+":"+geoID)]
	if !ok {
		return "", false
	}
	return unit.Text, true
}

// Units returns all known units, unordered.
func (d *GeographyDirectory) Units() []models.GeographyUnit {
	return d.units
}
