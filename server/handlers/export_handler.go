package handlers

import (
	"encoding/json"
	"net/http"

	"epiportal-server/epiweek"
	"epiportal-server/models"
	services "epiportal-server/service"
)

// ExportRequest is the POST body shared by the export and epivis routes.
type ExportRequest struct {
	Indicators  []models.IndicatorDescriptor `json:"indicators"`
	Geographies []models.GeographyUnit       `json:"geographies"`
	StartDate   string                       `json:"start_date"`
	EndDate     string                       `json:"end_date"`
	APIKey      string                       `json:"api_key"`
}

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// GetExportURLs handles POST /v1/export/urls.
func (h *ExportHandler) GetExportURLs(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r, true)
	if !ok {
		return
	}

	commands, err := h.exportService.ExportURLs(req.Indicators, req.Geographies, req.StartDate, req.EndDate, req.APIKey)
	if err != nil {
		writeServiceError(w, "Error building export URLs", err)
		return
	}
	writeJSON(w, map[string][]string{"export_urls": commands})
}

// GetQueryCode handles POST /v1/export/code.
func (h *ExportHandler) GetQueryCode(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r, true)
	if !ok {
		return
	}

	code, err := h.exportService.QueryCode(req.Indicators, req.Geographies, req.StartDate, req.EndDate)
	if err != nil {
		writeServiceError(w, "Error generating query code", err)
		return
	}
	writeJSON(w, code)
}

// GetEpivisLink handles POST /v1/epivis.
func (h *ExportHandler) GetEpivisLink(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r, false)
	if !ok {
		return
	}

	link, err := h.exportService.EpivisLink(req.Indicators, req.Geographies)
	if err != nil {
		writeServiceError(w, "Error building epivis link", err)
		return
	}
	writeJSON(w, map[string]string{"epivis_url": link})
}

// parseRequest decodes the shared body and, when the operation needs a date
// range, validates it up front so malformed dates fail fast as 400s.
func (h *ExportHandler) parseRequest(w http.ResponseWriter, r *http.Request, needDates bool) (ExportRequest, bool) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return req, false
	}
	if needDates {
		if _, err := epiweek.ParseDate(req.StartDate); err != nil {
			http.Error(w, "Invalid start_date", http.StatusBadRequest)
			return req, false
		}
		if _, err := epiweek.ParseDate(req.EndDate); err != nil {
			http.Error(w, "Invalid end_date", http.StatusBadRequest)
			return req, false
		}
	}
	return req, true
}
