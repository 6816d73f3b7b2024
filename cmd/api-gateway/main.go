package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/lms-insight-api/api/swagger"
	"github.com/noah-isme/lms-insight-api/internal/handler"
	"github.com/noah-isme/lms-insight-api/internal/middleware"
	"github.com/noah-isme/lms-insight-api/internal/repository"
	"github.com/noah-isme/lms-insight-api/internal/service"
	"github.com/noah-isme/lms-insight-api/pkg/cache"
	"github.com/noah-isme/lms-insight-api/pkg/config"
	"github.com/noah-isme/lms-insight-api/pkg/database"
	"github.com/noah-isme/lms-insight-api/pkg/export"
	"github.com/noah-isme/lms-insight-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/lms-insight-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/lms-insight-api/pkg/middleware/requestid"
)

// @title LMS Insight API
// @version 0.1.0
// @description Read-only performance analytics over native LMS activity data
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, true)
	}

	aggregator := service.NewAggregationService(service.AggregationServiceParams{
		Enrollments: repository.NewEnrollmentRepository(db),
		Activities:  repository.NewActivityRepository(db),
		Signals:     repository.NewSignalRepository(db),
		Cache:       cacheSvc,
		Metrics:     metricsSvc,
		Logger:      logr,
		Config: service.AggregationConfig{
			FetchTimeout:       cfg.Engine.FetchTimeout,
			AttendanceWindow:   time.Duration(cfg.Engine.AttendanceWindowDays) * 24 * time.Hour,
			TopPerformerLimit:  cfg.Engine.TopPerformerLimit,
			HoursPerCompletion: cfg.Engine.HoursPerCompletion,
		},
	})

	analyticsHandler := handler.NewAnalyticsHandler(aggregator)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, cacheSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.GET("/system/metrics", metricsHandler.System)
	api.DELETE("/system/cache", metricsHandler.FlushBundleCache)
	api.GET("/courses/:courseId/metrics", analyticsHandler.CourseMetrics)
	api.GET("/students/:studentId/metrics", analyticsHandler.StudentMetrics)

	if cfg.Exports.Enabled {
		exportSvc := service.NewExportService(aggregator, export.NewCSVExporter(), export.NewPDFExporter(), logr)
		exportHandler := handler.NewExportHandler(exportSvc)
		api.GET("/courses/:courseId/report", exportHandler.CourseReport)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
