package handlers

import (
	"encoding/json"
	"net/http"

	"epiportal-server/epiweek"
	"epiportal-server/models"
	services "epiportal-server/service"
)

// PreviewRequest is the POST body for the data preview route.
type PreviewRequest struct {
	Indicators  []models.IndicatorDescriptor `json:"indicators"`
	Geographies []models.GeographyUnit       `json:"geographies"`
	StartDate   string                       `json:"start_date"`
	EndDate     string                       `json:"end_date"`
	APIKey      string                       `json:"api_key"`
}

type PreviewHandler struct {
	previewService *services.PreviewService
}

func NewPreviewHandler(previewService *services.PreviewService) *PreviewHandler {
	return &PreviewHandler{previewService: previewService}
}

// GetPreview handles POST /v1/preview.
func (h *PreviewHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if _, err := epiweek.ParseDate(req.StartDate); err != nil {
		http.Error(w, "Invalid start_date", http.StatusBadRequest)
		return
	}
	if _, err := epiweek.ParseDate(req.EndDate); err != nil {
		http.Error(w, "Invalid end_date", http.StatusBadRequest)
		return
	}

	items := h.previewService.Preview(req.Indicators, req.Geographies, req.StartDate, req.EndDate, req.APIKey)
	writeJSON(w, items)
}
