package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/uniplan/uniplan-api/api/swagger"
	"github.com/uniplan/uniplan-api/internal/handler"
	"github.com/uniplan/uniplan-api/internal/middleware"
	"github.com/uniplan/uniplan-api/internal/repository"
	"github.com/uniplan/uniplan-api/internal/service"
	"github.com/uniplan/uniplan-api/internal/timetable"
	"github.com/uniplan/uniplan-api/pkg/cache"
	"github.com/uniplan/uniplan-api/pkg/config"
	"github.com/uniplan/uniplan-api/pkg/database"
	"github.com/uniplan/uniplan-api/pkg/logger"
	corsmiddleware "github.com/uniplan/uniplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/uniplan/uniplan-api/pkg/middleware/requestid"
)

// @title UniPlan API
// @version 0.1.0
// @description Course planning API: conflict checks, timetable generation, sharing, export
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	courseRepo := repository.NewCourseRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Catalog.CacheTTL, logr,
		cfg.Catalog.CacheEnabled && redisClient != nil)
	catalogSvc := service.NewCatalogService(courseRepo, cacheSvc, cfg.Catalog.CacheTTL, logr)

	limits := timetable.Limits{
		MinCredits:       cfg.Planner.MinCredits,
		MaxCredits:       cfg.Planner.MaxCredits,
		MaxCoursesPerDay: cfg.Planner.MaxCoursesPerDay,
	}
	plannerSvc := service.NewPlannerService(limits, validate, logr)

	var assistant *service.AssistantClient
	if cfg.Assistant.Enabled && cfg.Assistant.BaseURL != "" {
		assistant = service.NewAssistantClient(cfg.Assistant.BaseURL, cfg.Assistant.Timeout, logr)
	}
	generatorSvc := service.NewGeneratorService(
		catalogSvc,
		enrollmentRepo,
		scheduleRepo,
		assistantOrNil(assistant),
		timetable.GenerateOptions{
			MaxCredits:    cfg.Generator.MaxCredits,
			TargetCredits: cfg.Generator.TargetCredits,
		},
		cfg.Generator.ProposalTTL,
		metricsSvc,
		validate,
		logr,
	)

	shareSvc := service.NewShareService(limits, metricsSvc, validate, logr)
	exportSvc := service.NewExportService(validate, logr, cfg.Export.PDFFontPath)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
	})

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(catalogSvc)
	plannerHandler := handler.NewPlannerHandler(plannerSvc)
	scheduleHandler := handler.NewScheduleHandler(generatorSvc)
	shareHandler := handler.NewShareHandler(shareSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

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
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", authHandler.Login)
		api.GET("/share", shareHandler.View)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	{
		authed.GET("/courses", courseHandler.List)
		authed.GET("/courses/:id", courseHandler.Get)
		authed.POST("/planner/conflicts", plannerHandler.Conflicts)
		authed.POST("/planner/consolidate", plannerHandler.Consolidate)
		authed.POST("/planner/validate-add", plannerHandler.ValidateAdd)
		authed.POST("/schedules/generate", scheduleHandler.Generate)
		authed.POST("/schedules/save", scheduleHandler.Save)
		authed.GET("/schedules", scheduleHandler.List)
		authed.DELETE("/schedules/:id", scheduleHandler.Delete)
		authed.POST("/share/encode", shareHandler.Encode)
		authed.POST("/export/:format", exportHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

// assistantOrNil keeps a typed-nil *AssistantClient from ending up as a
// non-nil interface inside the generator.
func assistantOrNil(c *service.AssistantClient) service.PlanAssistant {
	if c == nil {
		return nil
	}
	return c
}
