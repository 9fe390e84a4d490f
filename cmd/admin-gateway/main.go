package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/dirm02/course-admin-api/api/swagger"
	"github.com/dirm02/course-admin-api/internal/cache"
	"github.com/dirm02/course-admin-api/internal/handler"
	"github.com/dirm02/course-admin-api/internal/middleware"
	"github.com/dirm02/course-admin-api/internal/service"
	"github.com/dirm02/course-admin-api/internal/upstream"
	"github.com/dirm02/course-admin-api/pkg/config"
	"github.com/dirm02/course-admin-api/pkg/logger"
	corsmiddleware "github.com/dirm02/course-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/dirm02/course-admin-api/pkg/middleware/requestid"
)

// @title Course Catalog Admin API
// @version 0.1.0
// @description Admin gateway for the course catalog
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()
	client := upstream.NewClient(cfg.Upstream, logr, metricsSvc)

	courseCache := cache.NewCourseCache(cfg.Cache.CourseTTL, cfg.Cache.CleanupInterval)
	lookupCache := cache.NewLookupCache(cfg.Cache.LookupTTL, cfg.Cache.CleanupInterval)

	validate := validator.New()
	lookupSvc := service.NewLookupService(client, lookupCache, logr)
	courseSvc := service.NewCourseService(client, lookupSvc, courseCache, metricsSvc, validate, logr)

	courseHandler := handler.NewCourseHandler(courseSvc, nil)
	if cfg.Export.Enabled {
		exportSvc := service.NewExportService(client, cfg.Export.MaxPages, logr)
		courseHandler = handler.NewCourseHandler(courseSvc, exportSvc)
	}
	lookupHandler := handler.NewLookupHandler(lookupSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		courses := api.Group("/courses")
		courses.GET("", courseHandler.List)
		courses.POST("", courseHandler.Create)
		courses.GET("/export", courseHandler.Export)
		courses.GET("/:id", courseHandler.Get)
		courses.PUT("/:id", courseHandler.Update)
		courses.DELETE("/:id", courseHandler.Delete)

		lookups := api.Group("/lookups")
		lookups.GET("/universities", lookupHandler.Universities)
		lookups.GET("/cities", lookupHandler.Cities)
		lookups.GET("/countries", lookupHandler.Countries)
		lookups.GET("/currencies", lookupHandler.Currencies)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
