package util

import (
	"encoding/json"
	"fmt"
	"os"

	"epiportal-server/models"
)

// ReadCovidcastResponseFromJSON loads a CovidcastResponse from JSON on disk.
func ReadCovidcastResponseFromJSON(filePath string) (*models.CovidcastResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.CovidcastResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CovidcastResponse: %w", err)
	}
	return &resp, nil
}

// ReadLegacyResponseFromJSON loads a LegacyResponse from JSON on disk.
func ReadLegacyResponseFromJSON(filePath string) (*models.LegacyResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.LegacyResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LegacyResponse: %w", err)
	}
	return &resp, nil
}

// ReadCoverageResponseFromJSON loads a CoverageResponse from JSON on disk.
func ReadCoverageResponseFromJSON(filePath string) (*models.CoverageResponse, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var resp models.CoverageResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CoverageResponse: %w", err)
	}
	return &resp, nil
}

// ReadGeographyUnitsFromJSON loads the geography directory entries from JSON
// on disk.
func ReadGeographyUnitsFromJSON(filePath string) ([]models.GeographyUnit, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var units []models.GeographyUnit
	if err := json.Unmarshal(data, &units); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geography units: %w", err)
	}
	return units, nil
}

// ReadIndicatorsFromJSON loads a slice of indicator descriptors from JSON on
// disk.
func ReadIndicatorsFromJSON(filePath string) ([]models.IndicatorDescriptor, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var indicators []models.IndicatorDescriptor
	if err := json.Unmarshal(data, &indicators); err != nil {
		return nil, fmt.Errorf("failed to unmarshal indicators: %w", err)
	}
	return indicators, nil
}
