package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"epiportal-server/config"
	"epiportal-server/epiweek"
	"epiportal-server/models"
	services "epiportal-server/service"
	"epiportal-server/util"
)

const GEOGRAPHY_QUERY_ARG = "geography"

// ChartRequest is the POST body selecting indicators and one geography.
type ChartRequest struct {
	Indicators []models.IndicatorDescriptor `json:"indicators"`
	Geography  string                       `json:"geography"`
}

type ChartHandler struct {
	chartService *services.ChartService
}

func NewChartHandler(chartService *services.ChartService) *ChartHandler {
	return &ChartHandler{chartService: chartService}
}

// GetChartData handles POST /v1/chart/data.
func (h *ChartHandler) GetChartData(w http.ResponseWriter, r *http.Request) {
	var req ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Geography == "" {
		http.Error(w, "Missing "+GEOGRAPHY_QUERY_ARG, http.StatusBadRequest)
		return
	}

	payload, err := h.chartService.BuildChartPayload(req.Indicators, req.Geography)
	if err != nil {
		writeServiceError(w, "Error building chart payload", err)
		return
	}
	writeJSON(w, payload)
}

// GetChartHTML handles GET /v1/chart/html. Without an explicit selection it
// charts the bundled demo indicators, which makes the route usable straight
// from a browser.
func (h *ChartHandler) GetChartHTML(w http.ResponseWriter, r *http.Request) {
	geography := r.URL.Query().Get(GEOGRAPHY_QUERY_ARG)
	if geography == "" {
		geography = "nation:us"
	}

	indicators, err := util.ReadIndicatorsFromJSON(config.GetResourcePath(config.DEMO_INDICATORS_RESOURCE))
	if err != nil {
		log.Println("Error loading demo indicators:", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	payload, err := h.chartService.BuildChartPayload(indicators, geography)
	if err != nil {
		writeServiceError(w, "Error building chart payload", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.RenderChartHTML(payload, w); err != nil {
		log.Println("Error rendering chart:", err)
	}
}

// Ping handles GET /ping
func (h *ChartHandler) Ping(w http.ResponseWriter, r *http.Request) {
	log.Println("Pinging server")
	writeJSON(w, map[string]string{"status": "pong"})
}

// writeJSON encodes a 200 JSON response.
func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Println("Error encoding response:", err)
	}
}

// writeServiceError maps a service failure onto a status code: date parse
// failures are the caller's fault, everything else is ours.
func writeServiceError(w http.ResponseWriter, message string, err error) {
	log.Println(message+":", err)
	if errors.Is(err, epiweek.ErrDateParse) {
		http.Error(w, "Invalid date range", http.StatusBadRequest)
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}
