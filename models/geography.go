// models/geography.go

package models

// GeographyUnit is one entry of the local geography directory, shaped the
// way the UI select widget consumes it.
type GeographyUnit struct {
	// ID is the geo token, "geoType:geoId" (e.g. "state:pa").
	ID      string `json:"id"`
	GeoType string `json:"geoType"`
	Text    string `json:"text"`
	// GeoTypeDisplayName is the human-readable group label, e.g. "States".
	GeoTypeDisplayName string `json:"geoTypeDisplayName"`
	// Level is the configured display rank of the geo type (nation first).
	Level int `json:"level"`
}

// GeographyGroup is one group of geography units sharing a geo-type display
// name, nested for UI rendering.
type GeographyGroup struct {
	Text     string          `json:"text"`
	Children []GeographyUnit `json:"children"`
}
