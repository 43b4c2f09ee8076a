package config

import (
	"os"
	"path/filepath"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Geography coverage cache
const GEO_COVERAGE_CACHE_TTL_MINUTES = 60

// Epidata API
const EPIDATA_URL_DEFAULT = "https://api.delphi.cmu.edu/epidata/"
const EPIVIS_URL_DEFAULT = "https://delphi.cmu.edu/epivis/"

// Chart windows: fetch wide once so the UI can pan without refetching,
// open on the most recent slice.
const CHART_FETCH_YEARS = 10
const CHART_INITIAL_VIEW_YEARS = 2

// HTTP server
const SERVER_ADDRESS_DEFAULT = ":8080"

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const COVIDCAST_RESPONSE_RESOURCE = "covidcast_response.json"
const LEGACY_RESPONSE_RESOURCE = "fluview_response.json"
const COVERAGE_RESPONSE_RESOURCE = "geo_coverage_response.json"
const GEOGRAPHY_UNITS_RESOURCE = "geography_units.json"
const DEMO_INDICATORS_RESOURCE = "demo_indicators.json"

// EpidataURL returns the upstream API base URL.
func EpidataURL() string {
	return getEnv("EPIDATA_URL", EPIDATA_URL_DEFAULT)
}

// EpidataAPIKey returns the upstream API key, empty when unset.
func EpidataAPIKey() string {
	return os.Getenv("EPIDATA_API_KEY")
}

// EpivisURL returns the external visualization tool base URL.
func EpivisURL() string {
	return getEnv("EPIVIS_URL", EPIVIS_URL_DEFAULT)
}

// RedisAddress returns the redis host:port.
func RedisAddress() string {
	return getEnv("REDIS_ADDRESS", REDIS_DB_ADDRESS)
}

// ServerAddress returns the listen address for the HTTP server.
func ServerAddress() string {
	return getEnv("SERVER_ADDRESS", SERVER_ADDRESS_DEFAULT)
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}
