package handlers

import (
	"encoding/json"
	"net/http"

	"epiportal-server/models"
	services "epiportal-server/service"
)

// GeoCoverageRequest is the POST body selecting indicators to resolve
// coverage for.
type GeoCoverageRequest struct {
	Indicators []models.IndicatorDescriptor `json:"indicators"`
}

type GeoCoverageHandler struct {
	geoCoverageService *services.GeoCoverageService
}

func NewGeoCoverageHandler(geoCoverageService *services.GeoCoverageService) *GeoCoverageHandler {
	return &GeoCoverageHandler{geoCoverageService: geoCoverageService}
}

// GetCoverage handles POST /v1/geo/coverage.
func (h *GeoCoverageHandler) GetCoverage(w http.ResponseWriter, r *http.Request) {
	var req GeoCoverageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	groups, err := h.geoCoverageService.AvailableGeographies(req.Indicators)
	if err != nil {
		writeServiceError(w, "Error resolving geography coverage", err)
		return
	}
	writeJSON(w, groups)
}
