package server

import (
	"epiportal-server/server/handlers"

	"github.com/gorilla/mux"
)

type Router struct {
	chartHandler   *handlers.ChartHandler
	geoHandler     *handlers.GeoCoverageHandler
	previewHandler *handlers.PreviewHandler
	exportHandler  *handlers.ExportHandler
	router         *mux.Router
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	chartHandler *handlers.ChartHandler,
	geoHandler *handlers.GeoCoverageHandler,
	previewHandler *handlers.PreviewHandler,
	exportHandler *handlers.ExportHandler,
	router *mux.Router) *Router {
	return &Router{
		chartHandler:   chartHandler,
		geoHandler:     geoHandler,
		previewHandler: previewHandler,
		exportHandler:  exportHandler,
		router:         router,
	}
}

func (r *Router) RegisterRoutes() {
	// expects {"indicators": [...], "geography": "geoType:geoId"}
	r.router.HandleFunc("/v1/chart/data", r.chartHandler.GetChartData).Methods("POST")
	// expects ?geography={geoType:geoId}, charts the bundled demo indicators
	r.router.HandleFunc("/v1/chart/html", r.chartHandler.GetChartHTML).Methods("GET")

	r.router.HandleFunc("/v1/geo/coverage", r.geoHandler.GetCoverage).Methods("POST")
	r.router.HandleFunc("/v1/preview", r.previewHandler.GetPreview).Methods("POST")

	r.router.HandleFunc("/v1/export/urls", r.exportHandler.GetExportURLs).Methods("POST")
	r.router.HandleFunc("/v1/export/code", r.exportHandler.GetQueryCode).Methods("POST")
	r.router.HandleFunc("/v1/epivis", r.exportHandler.GetEpivisLink).Methods("POST")

	r.router.HandleFunc("/ping", r.chartHandler.Ping).Methods("GET")
}
