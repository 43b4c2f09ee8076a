package di

import (
	"context"
	"fmt"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"epiportal-server/api"
	"epiportal-server/api/epidata"
	"epiportal-server/config"
	"epiportal-server/dao/redis"
	"epiportal-server/db"
	"epiportal-server/directory"
	"epiportal-server/server"
	"epiportal-server/server/handlers"
	services "epiportal-server/service"
)

// Container holds all application dependencies.
type Container struct {
	RedisClient         db.RedisClient
	CoverageDao         *redis.RedisCoverageDAO
	GeographyDirectory  *directory.GeographyDirectory
	EpidataAPI          epidata.EpidataAPI
	ChartService        *services.ChartService
	GeoCoverageService  *services.GeoCoverageService
	PreviewService      *services.PreviewService
	ExportService       *services.ExportService
	ChartHandler        *handlers.ChartHandler
	GeoCoverageHandler  *handlers.GeoCoverageHandler
	PreviewHandler      *handlers.PreviewHandler
	ExportHandler       *handlers.ExportHandler
	MuxRouter           *mux.Router
	Router              *server.Router
	EpiPortalHttpServer *server.EpiPortalHttpServer
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(env string) *Container {
	log.Printf("initializing container - env: %s", env)
	ctx := context.Background()

	// Initialize Redis client
	var redisClient db.RedisClient
	if env != "prod" {
		redisClient = db.NewMockRedisClient()
		log.Printf("Using mock redis client")
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     config.RedisAddress(),
			Password: config.REDIS_DB_PASSWORD,
			DB:       config.REDIS_DB,
		})
		redisClient = db.NewStoreRedisClient(ctx, redisInternalClient)
		if err := redisClient.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
		}
	}

	// Initialize coverage cache DAO
	coverageDao := redis.NewRedisCoverageDAO(redisClient)

	// Initialize geography directory from the bundled resource
	geoDir, err := directory.NewGeographyDirectory(config.GetResourcePath(config.GEOGRAPHY_UNITS_RESOURCE))
	if err != nil {
		panic(fmt.Sprintf("Failed to load geography directory: %v", err))
	}

	// Initialize EpidataAPI - mock outside prod
	var epidataApiClient epidata.EpidataAPI
	if env != "prod" {
		epidataApiClient = epidata.NewEpidataApiClientMock()
		log.Printf("Using mock epidata api")
	} else {
		log.Printf("Using prod epidata api")
		httpClient := api.NewHTTPClient(config.EpidataURL())

		epidataApiClient = epidata.NewEpidataApiClient(httpClient)
		epidataApiClient.SetCredentials(config.EpidataAPIKey())
	}

	// Initialize service layer
	chartService := services.NewChartService(epidataApiClient, geoDir)
	geoCoverageService := services.NewGeoCoverageService(
		epidataApiClient, geoDir, coverageDao,
		config.GEO_COVERAGE_CACHE_TTL_MINUTES*time.Minute)
	previewService := services.NewPreviewService(epidataApiClient)
	exportService := services.NewExportService(config.EpidataURL(), config.EpivisURL())

	// Initialize handlers
	chartHandler := handlers.NewChartHandler(chartService)
	geoCoverageHandler := handlers.NewGeoCoverageHandler(geoCoverageService)
	previewHandler := handlers.NewPreviewHandler(previewService)
	exportHandler := handlers.NewExportHandler(exportService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(chartHandler, geoCoverageHandler, previewHandler, exportHandler, muxRouter)

	// initialize epiportal server
	epiPortalHttpServer := server.NewEpiPortalHttpServer(router, muxRouter, config.ServerAddress())

	return &Container{
		RedisClient:         redisClient,
		CoverageDao:         coverageDao,
		GeographyDirectory:  geoDir,
		EpidataAPI:          epidataApiClient,
		ChartService:        chartService,
		GeoCoverageService:  geoCoverageService,
		PreviewService:      previewService,
		ExportService:       exportService,
		ChartHandler:        chartHandler,
		GeoCoverageHandler:  geoCoverageHandler,
		PreviewHandler:      previewHandler,
		ExportHandler:       exportHandler,
		MuxRouter:           muxRouter,
		Router:              router,
		EpiPortalHttpServer: epiPortalHttpServer,
	}
}
